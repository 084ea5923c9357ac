package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"reflect"
	"strings"
	"testing"

	"github.com/loomra/crm-api/internal/core/domain"
	"github.com/loomra/crm-api/internal/core/ports"
)

func TestTransferService_Import_ParsesRows(t *testing.T) {
	var got []ports.ImportRow
	repo := &stubClientRepo{
		importFn: func(ctx context.Context, userID int64, rows []ports.ImportRow) (int, error) {
			got = rows
			return len(rows), nil
		},
	}
	svc := NewTransferService(repo)

	csvData := strings.Join([]string{
		"Name,Email,Phone,Company,Address,Notes,Tags",
		`Acme,a@x.com,555-1234,Acme Inc,1 Main St,Key account,"vip, active"`,
		"Globex,g@x.com,,,,,",
	}, "\n")

	imported, err := svc.Import(context.Background(), 1, strings.NewReader(csvData))
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if imported != 2 {
		t.Fatalf("expected 2 imported, got %d", imported)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 parsed rows, got %d", len(got))
	}
	if got[0].Name != "Acme" || got[0].Email != "a@x.com" || got[0].Notes != "Key account" {
		t.Fatalf("unexpected first row: %+v", got[0])
	}
	if !reflect.DeepEqual(got[0].Tags, []string{"vip", "active"}) {
		t.Fatalf("tags not split and trimmed: %v", got[0].Tags)
	}
	if got[1].Tags != nil {
		t.Fatalf("expected no tags for empty cell, got %v", got[1].Tags)
	}
}

func TestTransferService_Import_IgnoresUnknownAndMissingColumns(t *testing.T) {
	var got []ports.ImportRow
	repo := &stubClientRepo{
		importFn: func(ctx context.Context, userID int64, rows []ports.ImportRow) (int, error) {
			got = rows
			return len(rows), nil
		},
	}
	svc := NewTransferService(repo)

	csvData := "email,nickname,name\nz@x.com,Zed,Zenith\n"
	if _, err := svc.Import(context.Background(), 1, strings.NewReader(csvData)); err != nil {
		t.Fatalf("import: %v", err)
	}
	if got[0].Name != "Zenith" || got[0].Email != "z@x.com" {
		t.Fatalf("unexpected row: %+v", got[0])
	}
	if got[0].Phone != "" || got[0].Company != "" {
		t.Fatalf("missing columns should be empty: %+v", got[0])
	}
}

func TestTransferService_Import_EmptyFile(t *testing.T) {
	repo := &stubClientRepo{
		importFn: func(ctx context.Context, userID int64, rows []ports.ImportRow) (int, error) {
			if len(rows) != 0 {
				t.Fatalf("expected no rows, got %d", len(rows))
			}
			return 0, nil
		},
	}
	svc := NewTransferService(repo)

	imported, err := svc.Import(context.Background(), 1, strings.NewReader(""))
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if imported != 0 {
		t.Fatalf("expected 0 imported, got %d", imported)
	}
}

func TestTransferService_Export_ColumnOrdering(t *testing.T) {
	repo := &stubClientRepo{
		findForExportFn: func(ctx context.Context, userID int64, excludeInactive bool) ([]domain.Client, error) {
			if excludeInactive {
				t.Fatalf("did not expect inactive filter")
			}
			return []domain.Client{
				{ID: 1, Name: "Acme", Email: "a@x.com", Tags: []string{"vip", "active"}, Notes: "Key account"},
				{ID: 2, Name: "Globex", Email: "g@x.com"},
			}, nil
		},
		findCustomFieldsFn: func(ctx context.Context, clientID int64) (map[string]string, error) {
			if clientID == 1 {
				return map[string]string{"industry": "software", "budget": "high"}, nil
			}
			return map[string]string{"industry": "energy"}, nil
		},
	}
	svc := NewTransferService(repo)

	data, err := svc.Export(context.Background(), 1, ports.ExportOptions{
		IncludeNotes:        true,
		IncludeCustomFields: true,
	})
	if err != nil {
		t.Fatalf("export: %v", err)
	}

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	if err != nil {
		t.Fatalf("parse exported csv: %v", err)
	}
	wantHeader := []string{"id", "name", "email", "phone", "company", "address", "tags", "notes", "custom_budget", "custom_industry"}
	if !reflect.DeepEqual(records[0], wantHeader) {
		t.Fatalf("unexpected header: %v", records[0])
	}
	if len(records) != 3 {
		t.Fatalf("expected header plus 2 rows, got %d records", len(records))
	}
	if records[1][6] != "vip, active" {
		t.Fatalf("tags not joined: %q", records[1][6])
	}
	if records[1][8] != "high" || records[1][9] != "software" {
		t.Fatalf("unexpected custom cells: %v", records[1])
	}
	if records[2][8] != "" || records[2][9] != "energy" {
		t.Fatalf("missing custom field should be blank: %v", records[2])
	}
}

func TestTransferService_Export_MinimalColumns(t *testing.T) {
	repo := &stubClientRepo{
		findForExportFn: func(ctx context.Context, userID int64, excludeInactive bool) ([]domain.Client, error) {
			if !excludeInactive {
				t.Fatalf("expected inactive filter")
			}
			return []domain.Client{{ID: 1, Name: "Acme"}}, nil
		},
		findCustomFieldsFn: func(ctx context.Context, clientID int64) (map[string]string, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	svc := NewTransferService(repo)

	data, err := svc.Export(context.Background(), 1, ports.ExportOptions{ExcludeInactive: true})
	if err != nil {
		t.Fatalf("export: %v", err)
	}

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	if err != nil {
		t.Fatalf("parse exported csv: %v", err)
	}
	wantHeader := []string{"id", "name", "email", "phone", "company", "address", "tags"}
	if !reflect.DeepEqual(records[0], wantHeader) {
		t.Fatalf("unexpected header: %v", records[0])
	}
}
