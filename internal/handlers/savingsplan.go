package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/GregMSThompson/budget-backend/internal/dto"
	"github.com/GregMSThompson/budget-backend/internal/middleware"
	"github.com/GregMSThompson/budget-backend/internal/models"
	"github.com/GregMSThompson/budget-backend/internal/response"
)

type SavingsPlanService interface {
	GetCurrent(ctx context.Context, uid string, now time.Time) (*models.SavingsPlan, error)
	Create(ctx context.Context, uid string, req dto.CreateSavingsPlanRequest) (*models.SavingsPlan, error)
	Update(ctx context.Context, planID, callerID string, req dto.UpdateSavingsPlanRequest) (*models.SavingsPlan, error)
	Delete(ctx context.Context, planID, callerID string) error
	History(ctx context.Context, uid string) ([]*models.SavingsPlan, error)
}

type ExpenseService interface {
	RecordExpense(ctx context.Context, uid string, req dto.RecordExpenseRequest) (*models.SavingsPlan, error)
}

type savingsPlanHandlers struct {
	ResponseHandler response.ResponseHandler
	PlanSvc         SavingsPlanService
	ExpenseSvc      ExpenseService
	now             func() time.Time
}

func NewSavingsPlanHandlers(deps *Deps) *savingsPlanHandlers {
	return &savingsPlanHandlers{
		ResponseHandler: deps.ResponseHandler,
		PlanSvc:         deps.SavingsPlanSvc,
		ExpenseSvc:      deps.ExpenseSvc,
		now:             deps.now,
	}
}

func (h *savingsPlanHandlers) SavingsPlanRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/current", h.GetCurrent)
	r.Get("/history", h.History)
	r.Post("/", h.Create)
	r.Post("/expense", h.RecordExpense)
	r.Put("/{planId}", h.Update)
	r.Delete("/{planId}", h.Delete)
	return r
}

func (h *savingsPlanHandlers) GetCurrent(w http.ResponseWriter, r *http.Request) {
	uid := middleware.UID(r.Context())
	plan, err := h.PlanSvc.GetCurrent(r.Context(), uid, h.now())
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, plan)
}

func (h *savingsPlanHandlers) History(w http.ResponseWriter, r *http.Request) {
	uid := middleware.UID(r.Context())
	plans, err := h.PlanSvc.History(r.Context(), uid)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	if plans == nil {
		plans = []*models.SavingsPlan{}
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, plans)
}

func (h *savingsPlanHandlers) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateSavingsPlanRequest
	if err := decodeJSON(r, &req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	uid := middleware.UID(r.Context())
	plan, err := h.PlanSvc.Create(r.Context(), uid, req)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusCreated, plan)
}

func (h *savingsPlanHandlers) Update(w http.ResponseWriter, r *http.Request) {
	planID := chi.URLParam(r, "planId")
	var req dto.UpdateSavingsPlanRequest
	if err := decodeJSON(r, &req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	uid := middleware.UID(r.Context())
	plan, err := h.PlanSvc.Update(r.Context(), planID, uid, req)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, plan)
}

func (h *savingsPlanHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	planID := chi.URLParam(r, "planId")
	uid := middleware.UID(r.Context())
	if err := h.PlanSvc.Delete(r.Context(), planID, uid); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, map[string]string{"id": planID})
}

func (h *savingsPlanHandlers) RecordExpense(w http.ResponseWriter, r *http.Request) {
	var req dto.RecordExpenseRequest
	if err := decodeJSON(r, &req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	uid := middleware.UID(r.Context())
	plan, err := h.ExpenseSvc.RecordExpense(r.Context(), uid, req)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, plan)
}
