package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/GregMSThompson/budget-backend/internal/dto"
	"github.com/GregMSThompson/budget-backend/internal/middleware"
	"github.com/GregMSThompson/budget-backend/internal/models"
	"github.com/GregMSThompson/budget-backend/internal/response"
)

type CategoryService interface {
	AddCategory(ctx context.Context, uid string, req dto.AddCategoryRequest) (*models.Category, error)
	ListCategories(ctx context.Context, uid string) ([]*models.Category, error)
}

type categoryHandlers struct {
	ResponseHandler response.ResponseHandler
	CategorySvc     CategoryService
}

func NewCategoryHandlers(deps *Deps) *categoryHandlers {
	return &categoryHandlers{
		ResponseHandler: deps.ResponseHandler,
		CategorySvc:     deps.CategorySvc,
	}
}

func (h *categoryHandlers) CategoryRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.List)
	r.Post("/", h.Add)
	return r
}

func (h *categoryHandlers) List(w http.ResponseWriter, r *http.Request) {
	uid := middleware.UID(r.Context())
	cats, err := h.CategorySvc.ListCategories(r.Context(), uid)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	if cats == nil {
		cats = []*models.Category{}
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, cats)
}

func (h *categoryHandlers) Add(w http.ResponseWriter, r *http.Request) {
	var req dto.AddCategoryRequest
	if err := decodeJSON(r, &req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	uid := middleware.UID(r.Context())
	c, err := h.CategorySvc.AddCategory(r.Context(), uid, req)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusCreated, c)
}
