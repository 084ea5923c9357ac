package ports

import (
	"context"
	"io"
)

// ExportOptions selects optional columns and filtering for a CSV export.
type ExportOptions struct {
	IncludeNotes        bool
	IncludeCustomFields bool
	ExcludeInactive     bool
}

// TransferService implements CSV import and export of clients.
type TransferService interface {
	Import(ctx context.Context, userID int64, file io.Reader) (int, error)
	Export(ctx context.Context, userID int64, opts ExportOptions) ([]byte, error)
}
