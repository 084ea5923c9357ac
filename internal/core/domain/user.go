package domain

// User models an authenticated account. Role is a free-text category chosen
// at registration (e.g. "hr", "insurance", "admin"); it carries no
// authorization semantics.
type User struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
	Role         string `json:"role"`
}
