package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/loomra/crm-api/internal/core/domain"
	"github.com/loomra/crm-api/internal/core/ports"
)

type stubClientService struct {
	listFn   func(ctx context.Context, userID int64) ([]domain.Client, error)
	getFn    func(ctx context.Context, userID, clientID int64) (*domain.Client, error)
	createFn func(ctx context.Context, userID int64, in ports.ClientInput) (*domain.Client, error)
	updateFn func(ctx context.Context, userID, clientID int64, in ports.ClientInput) (*domain.Client, error)
	deleteFn func(ctx context.Context, userID, clientID int64) error
}

func (s *stubClientService) List(ctx context.Context, userID int64) ([]domain.Client, error) {
	return s.listFn(ctx, userID)
}

func (s *stubClientService) Get(ctx context.Context, userID, clientID int64) (*domain.Client, error) {
	return s.getFn(ctx, userID, clientID)
}

func (s *stubClientService) Create(ctx context.Context, userID int64, in ports.ClientInput) (*domain.Client, error) {
	return s.createFn(ctx, userID, in)
}

func (s *stubClientService) Update(ctx context.Context, userID, clientID int64, in ports.ClientInput) (*domain.Client, error) {
	return s.updateFn(ctx, userID, clientID, in)
}

func (s *stubClientService) Delete(ctx context.Context, userID, clientID int64) error {
	return s.deleteFn(ctx, userID, clientID)
}

func TestClientHandler_Get_NotFound(t *testing.T) {
	stub := &stubClientService{
		getFn: func(ctx context.Context, userID, clientID int64) (*domain.Client, error) {
			if userID != 1 || clientID != 7 {
				t.Fatalf("unexpected args: %d %d", userID, clientID)
			}
			return nil, domain.ErrClientNotFound
		},
	}
	h := NewClientHandler(stub)

	c, rec := newTestContext(t, http.MethodGet, "/api/clients/7", "")
	c.Set("userID", int64(1))
	c.SetParamNames("id")
	c.SetParamValues("7")

	_ = h.Get(c)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestClientHandler_Get_IncludesEmptyCustomFields(t *testing.T) {
	stub := &stubClientService{
		getFn: func(ctx context.Context, userID, clientID int64) (*domain.Client, error) {
			return &domain.Client{
				ID: 7, Name: "Acme", UserID: 1, CreatedAt: time.Now(),
				Tags: []string{"prospect"},
			}, nil
		},
	}
	h := NewClientHandler(stub)

	c, rec := newTestContext(t, http.MethodGet, "/api/clients/7", "")
	c.Set("userID", int64(1))
	c.SetParamNames("id")
	c.SetParamValues("7")

	if err := h.Get(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	fields, ok := resp["customFields"].(map[string]any)
	if !ok {
		t.Fatalf("expected customFields object, got %v", resp["customFields"])
	}
	if len(fields) != 0 {
		t.Fatalf("expected empty customFields, got %v", fields)
	}
	tags, ok := resp["tags"].([]any)
	if !ok || len(tags) != 1 || tags[0] != "prospect" {
		t.Fatalf("unexpected tags: %v", resp["tags"])
	}
}

func TestClientHandler_Create_EchoesTagsAndFields(t *testing.T) {
	stub := &stubClientService{
		createFn: func(ctx context.Context, userID int64, in ports.ClientInput) (*domain.Client, error) {
			if in.Tags == nil || len(*in.Tags) != 2 {
				t.Fatalf("expected two tags, got %v", in.Tags)
			}
			return &domain.Client{
				ID: 8, Name: in.Name, UserID: userID,
				Tags:         *in.Tags,
				CustomFields: *in.CustomFields,
			}, nil
		},
	}
	h := NewClientHandler(stub)

	c, rec := newTestContext(t, http.MethodPost, "/api/clients",
		`{"name":"Acme","tags":["vip","active"],"customFields":{"industry":"software"}}`)
	c.Set("userID", int64(1))

	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	tags, _ := resp["tags"].([]any)
	if len(tags) != 2 {
		t.Fatalf("expected two tags, got %v", resp["tags"])
	}
	fields, _ := resp["customFields"].(map[string]any)
	if fields["industry"] != "software" {
		t.Fatalf("unexpected customFields: %v", resp["customFields"])
	}
}

func TestClientHandler_Update_OmittedTagsStayNil(t *testing.T) {
	stub := &stubClientService{
		updateFn: func(ctx context.Context, userID, clientID int64, in ports.ClientInput) (*domain.Client, error) {
			if in.Tags != nil {
				t.Fatalf("expected nil tags for omitted field, got %v", *in.Tags)
			}
			if in.CustomFields == nil || len(*in.CustomFields) != 0 {
				t.Fatalf("expected empty customFields map, got %v", in.CustomFields)
			}
			return &domain.Client{ID: clientID, Name: in.Name, UserID: userID, Tags: []string{}}, nil
		},
	}
	h := NewClientHandler(stub)

	c, rec := newTestContext(t, http.MethodPut, "/api/clients/7",
		`{"name":"Acme Corp","customFields":{}}`)
	c.Set("userID", int64(1))
	c.SetParamNames("id")
	c.SetParamValues("7")

	if err := h.Update(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestClientHandler_Delete_Success(t *testing.T) {
	stub := &stubClientService{
		deleteFn: func(ctx context.Context, userID, clientID int64) error {
			return nil
		},
	}
	h := NewClientHandler(stub)

	c, rec := newTestContext(t, http.MethodDelete, "/api/clients/7", "")
	c.Set("userID", int64(1))
	c.SetParamNames("id")
	c.SetParamValues("7")

	if err := h.Delete(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["message"] != "Client deleted successfully." {
		t.Fatalf("unexpected message: %q", resp["message"])
	}
}

func TestClientHandler_Delete_ForeignClient(t *testing.T) {
	stub := &stubClientService{
		deleteFn: func(ctx context.Context, userID, clientID int64) error {
			return domain.ErrClientNotFound
		},
	}
	h := NewClientHandler(stub)

	c, rec := newTestContext(t, http.MethodDelete, "/api/clients/7", "")
	c.Set("userID", int64(2))
	c.SetParamNames("id")
	c.SetParamValues("7")

	_ = h.Delete(c)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestClientHandler_Get_NonNumericID(t *testing.T) {
	stub := &stubClientService{
		getFn: func(ctx context.Context, userID, clientID int64) (*domain.Client, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	h := NewClientHandler(stub)

	c, rec := newTestContext(t, http.MethodGet, "/api/clients/abc", "")
	c.Set("userID", int64(1))
	c.SetParamNames("id")
	c.SetParamValues("abc")

	_ = h.Get(c)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}
