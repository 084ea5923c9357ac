package domain

import "errors"

var (
	// ErrUserExists is returned when registering with an email already in use.
	ErrUserExists = errors.New("user already exists")
	// ErrInvalidCredentials covers both unknown email and wrong password so the
	// response never reveals which part failed.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUserNotFound is returned when a token's subject no longer resolves to a row.
	ErrUserNotFound = errors.New("user not found")
	// ErrInvalidToken covers malformed, badly signed, and expired tokens alike.
	ErrInvalidToken = errors.New("invalid token")
	// ErrClientNotFound is returned for missing clients and for clients owned
	// by another user; the two cases are deliberately indistinguishable.
	ErrClientNotFound = errors.New("client not found")
)
