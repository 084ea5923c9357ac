package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/loomra/crm-api/internal/core/ports"
)

type stubTransferService struct {
	importFn func(ctx context.Context, userID int64, file io.Reader) (int, error)
	exportFn func(ctx context.Context, userID int64, opts ports.ExportOptions) ([]byte, error)
}

func (s *stubTransferService) Import(ctx context.Context, userID int64, file io.Reader) (int, error) {
	return s.importFn(ctx, userID, file)
}

func (s *stubTransferService) Export(ctx context.Context, userID int64, opts ports.ExportOptions) ([]byte, error) {
	return s.exportFn(ctx, userID, opts)
}

func newUploadContext(t *testing.T, field, filename, content string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	fw, err := w.CreateFormFile(field, filename)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := fw.Write([]byte(content)); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/clients/import", &body)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestTransferHandler_Import_Success(t *testing.T) {
	stub := &stubTransferService{
		importFn: func(ctx context.Context, userID int64, file io.Reader) (int, error) {
			if userID != 1 {
				t.Fatalf("unexpected user id %d", userID)
			}
			data, err := io.ReadAll(file)
			if err != nil {
				t.Fatalf("read upload: %v", err)
			}
			if !strings.HasPrefix(string(data), "name,email") {
				t.Fatalf("unexpected upload content: %q", data)
			}
			return 3, nil
		},
	}
	h := NewTransferHandler(stub)

	c, rec := newUploadContext(t, "file", "clients.csv", "name,email\nAcme,a@x.com\n")
	c.Set("userID", int64(1))

	if err := h.Import(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["message"] != "Successfully imported 3 clients." {
		t.Fatalf("unexpected message: %v", resp["message"])
	}
	if resp["importedCount"] != float64(3) {
		t.Fatalf("unexpected importedCount: %v", resp["importedCount"])
	}
}

func TestTransferHandler_Import_MissingFile(t *testing.T) {
	stub := &stubTransferService{
		importFn: func(ctx context.Context, userID int64, file io.Reader) (int, error) {
			t.Fatalf("should not be called")
			return 0, nil
		},
	}
	h := NewTransferHandler(stub)

	c, rec := newUploadContext(t, "attachment", "clients.csv", "name\nAcme\n")
	c.Set("userID", int64(1))

	_ = h.Import(c)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "No file uploaded.") {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestTransferHandler_Export_QueryFlags(t *testing.T) {
	stub := &stubTransferService{
		exportFn: func(ctx context.Context, userID int64, opts ports.ExportOptions) ([]byte, error) {
			if !opts.IncludeNotes || !opts.IncludeCustomFields || !opts.ExcludeInactive {
				t.Fatalf("unexpected options: %+v", opts)
			}
			return []byte("id,name\n1,Acme\n"), nil
		},
	}
	h := NewTransferHandler(stub)

	c, rec := newTestContext(t, http.MethodGet,
		"/api/clients/export?includeNotes=true&includeCustomFields=true&includeInactiveClients=false", "")
	c.Set("userID", int64(1))

	if err := h.Export(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get(echo.HeaderContentType); !strings.HasPrefix(ct, "text/csv") {
		t.Fatalf("unexpected content type: %q", ct)
	}
	if cd := rec.Header().Get(echo.HeaderContentDisposition); !strings.Contains(cd, "loomra_clients.csv") {
		t.Fatalf("unexpected content disposition: %q", cd)
	}
	if rec.Body.String() != "id,name\n1,Acme\n" {
		t.Fatalf("unexpected body: %q", rec.Body.String())
	}
}

func TestTransferHandler_Export_DefaultsIncludeInactive(t *testing.T) {
	stub := &stubTransferService{
		exportFn: func(ctx context.Context, userID int64, opts ports.ExportOptions) ([]byte, error) {
			if opts.IncludeNotes || opts.IncludeCustomFields || opts.ExcludeInactive {
				t.Fatalf("unexpected options: %+v", opts)
			}
			return []byte{}, nil
		},
	}
	h := NewTransferHandler(stub)

	c, rec := newTestContext(t, http.MethodGet, "/api/clients/export", "")
	c.Set("userID", int64(1))

	if err := h.Export(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
