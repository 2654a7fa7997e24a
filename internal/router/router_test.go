package router

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"firebase.google.com/go/v4/auth"

	"github.com/GregMSThompson/budget-backend/internal/dto"
	"github.com/GregMSThompson/budget-backend/internal/handlers"
	"github.com/GregMSThompson/budget-backend/internal/models"
	"github.com/GregMSThompson/budget-backend/internal/response"
)

type stubVerifier struct{}

func (stubVerifier) VerifyIDToken(_ context.Context, idToken string) (*auth.Token, error) {
	if idToken != "good" {
		return nil, errors.New("bad token")
	}
	return &auth.Token{UID: "uid-1"}, nil
}

type stubCategoryService struct{ uid string }

func (s *stubCategoryService) AddCategory(context.Context, string, dto.AddCategoryRequest) (*models.Category, error) {
	return nil, errors.New("not used")
}

func (s *stubCategoryService) ListCategories(_ context.Context, uid string) ([]*models.Category, error) {
	s.uid = uid
	return []*models.Category{{Name: "Groceries"}}, nil
}

func newTestRouter(cats *stubCategoryService) http.Handler {
	return NewRouter(&handlers.Deps{
		Log:             slog.New(slog.DiscardHandler),
		Firebase:        stubVerifier{},
		ResponseHandler: response.New(),
		CategorySvc:     cats,
	})
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	cats := &stubCategoryService{}
	r := newTestRouter(cats)

	for _, path := range []string{"/categories/", "/savings-plans/current", "/transactions/summary"} {
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
		if rr.Code != http.StatusUnauthorized {
			t.Fatalf("%s: expected 401, got %d", path, rr.Code)
		}
	}
	if cats.uid != "" {
		t.Fatal("service reached without a token")
	}
}

func TestAuthenticatedRequestReachesHandler(t *testing.T) {
	cats := &stubCategoryService{}
	r := newTestRouter(cats)

	req := httptest.NewRequest(http.MethodGet, "/categories/", nil)
	req.Header.Set("Authorization", "Bearer good")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if cats.uid != "uid-1" {
		t.Fatalf("uid not propagated: %q", cats.uid)
	}
	var body struct {
		Success bool              `json:"success"`
		Data    []models.Category `json:"data"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !body.Success || len(body.Data) != 1 || body.Data[0].Name != "Groceries" {
		t.Fatalf("unexpected body: %+v", body)
	}
}

func TestHealthzIsPublic(t *testing.T) {
	rr := httptest.NewRecorder()
	newTestRouter(&stubCategoryService{}).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
}
