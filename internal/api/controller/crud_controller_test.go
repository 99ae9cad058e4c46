package controller

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bassista/go_sitework/internal/backend"
	"github.com/bassista/go_sitework/internal/cache"
	"github.com/bassista/go_sitework/internal/domain"
	"github.com/gin-gonic/gin"
)

// mockCrudService implements CrudService[domain.Material]
type mockCrudService struct {
	removeErr error
	items     []domain.Material
	removed   []string
}

func (m *mockCrudService) All() cache.State[[]domain.Material] {
	return cache.State[[]domain.Material]{Data: m.items}
}

func (m *mockCrudService) Remove(_ context.Context, id string) error {
	if m.removeErr != nil {
		return m.removeErr
	}
	m.removed = append(m.removed, id)
	kept := m.items[:0]
	for _, it := range m.items {
		if it.ID != id {
			kept = append(kept, it)
		}
	}
	m.items = kept
	return nil
}

func TestCrudController_Delete_MissingID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cc := &CrudController[domain.Material]{Service: &mockCrudService{}}

	r := gin.New()
	// Register route without :id to simulate missing id param
	r.DELETE("/resource/", cc.Delete)

	req := httptest.NewRequest(http.MethodDelete, "/resource/", nil)
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", w.Code)
	}
}

func TestCrudController_Delete_Success(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := &mockCrudService{items: []domain.Material{{ID: "m1", Name: "Brick"}, {ID: "m2", Name: "Cement"}}}
	cc := &CrudController[domain.Material]{Service: svc}

	r := gin.New()
	cc.RegisterCrudRoutes(r.Group("/stores"), "materials")

	req := httptest.NewRequest(http.MethodDelete, "/stores/materials/m1", nil)
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	var resp cache.State[[]domain.Material]
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if len(resp.Data) != 1 || resp.Data[0].ID != "m2" {
		t.Errorf("unexpected response body: %+v", resp)
	}
	if len(svc.removed) != 1 || svc.removed[0] != "m1" {
		t.Errorf("expected m1 removed, got %v", svc.removed)
	}
}

func TestCrudController_Delete_Errors(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name   string
		err    error
		status int
	}{
		{name: "missing token", err: backend.MissingToken(), status: http.StatusUnauthorized},
		{name: "backend not found", err: &backend.Error{Kind: backend.KindServer, Status: 404, Message: "Material not found"}, status: http.StatusNotFound},
		{name: "transport", err: &backend.Error{Kind: backend.KindTransport, Message: "Failed to delete material."}, status: http.StatusBadGateway},
		{name: "plain error", err: errors.New("boom"), status: http.StatusBadGateway},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cc := &CrudController[domain.Material]{Service: &mockCrudService{removeErr: tt.err}}
			r := gin.New()
			r.DELETE("/resource/:id", cc.Delete)

			req := httptest.NewRequest(http.MethodDelete, "/resource/x", nil)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != tt.status {
				t.Errorf("expected %d, got %d", tt.status, w.Code)
			}
		})
	}
}
