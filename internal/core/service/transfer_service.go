package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/loomra/crm-api/internal/api/metrics"
	"github.com/loomra/crm-api/internal/core/ports"
)

// TransferService implements CSV import and export of clients. Parsing and
// serialization live here; the repository owns the SQL and the import
// transaction.
type TransferService struct {
	repo ports.ClientRepository
}

func NewTransferService(repo ports.ClientRepository) *TransferService {
	return &TransferService{repo: repo}
}

// Import parses a headered CSV and inserts its rows in a single transaction
// spanning the whole file. Rows whose email already exists for this user are
// skipped silently; only inserted rows count toward the returned total.
func (s *TransferService) Import(ctx context.Context, userID int64, file io.Reader) (int, error) {
	rows, err := parseImport(file)
	if err != nil {
		return 0, err
	}

	imported, err := s.repo.Import(ctx, userID, rows)
	if err != nil {
		return 0, err
	}

	metrics.ImportRowsTotal.WithLabelValues("imported").Add(float64(imported))
	metrics.ImportRowsTotal.WithLabelValues("skipped").Add(float64(len(rows) - imported))
	metrics.ClientsCreatedTotal.WithLabelValues("import").Add(float64(imported))
	return imported, nil
}

// parseImport reads a CSV whose first record names the columns. Unknown
// columns are ignored; missing ones yield empty fields. A tags cell is split
// on commas into individual tag names.
func parseImport(file io.Reader) ([]ports.ImportRow, error) {
	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	col := make(map[string]int, len(records[0]))
	for i, name := range records[0] {
		col[strings.ToLower(strings.TrimSpace(name))] = i
	}
	cell := func(record []string, name string) string {
		i, ok := col[name]
		if !ok || i >= len(record) {
			return ""
		}
		return record[i]
	}

	rows := make([]ports.ImportRow, 0, len(records)-1)
	for _, record := range records[1:] {
		row := ports.ImportRow{
			Name:    cell(record, "name"),
			Email:   cell(record, "email"),
			Phone:   cell(record, "phone"),
			Company: cell(record, "company"),
			Address: cell(record, "address"),
			Notes:   cell(record, "notes"),
		}
		if raw := cell(record, "tags"); raw != "" {
			for _, tag := range strings.Split(raw, ",") {
				if tag = strings.TrimSpace(tag); tag != "" {
					row.Tags = append(row.Tags, tag)
				}
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// Export serializes the user's clients to CSV. Fixed column ordering: id,
// name, email, phone, company, address, tags, then notes when requested,
// then one custom_<field> column per custom-field name (sorted) when
// requested.
func (s *TransferService) Export(ctx context.Context, userID int64, opts ports.ExportOptions) ([]byte, error) {
	clients, err := s.repo.FindForExport(ctx, userID, opts.ExcludeInactive)
	if err != nil {
		return nil, err
	}

	fieldsByClient := make(map[int64]map[string]string, len(clients))
	var customColumns []string
	if opts.IncludeCustomFields {
		seen := map[string]struct{}{}
		for _, c := range clients {
			fields, err := s.repo.FindCustomFields(ctx, c.ID)
			if err != nil {
				return nil, err
			}
			fieldsByClient[c.ID] = fields
			for name := range fields {
				if _, ok := seen[name]; !ok {
					seen[name] = struct{}{}
					customColumns = append(customColumns, name)
				}
			}
		}
		sort.Strings(customColumns)
	}

	header := []string{"id", "name", "email", "phone", "company", "address", "tags"}
	if opts.IncludeNotes {
		header = append(header, "notes")
	}
	for _, name := range customColumns {
		header = append(header, "custom_"+name)
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(header); err != nil {
		return nil, err
	}

	for _, c := range clients {
		record := []string{
			strconv.FormatInt(c.ID, 10),
			c.Name,
			c.Email,
			c.Phone,
			c.Company,
			c.Address,
			strings.Join(c.Tags, ", "),
		}
		if opts.IncludeNotes {
			record = append(record, c.Notes)
		}
		for _, name := range customColumns {
			record = append(record, fieldsByClient[c.ID][name])
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}

	metrics.ExportsTotal.Inc()
	return buf.Bytes(), nil
}
