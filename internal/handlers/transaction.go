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

type TransactionService interface {
	AddTransaction(ctx context.Context, uid string, req dto.AddTransactionRequest) (*models.Transaction, error)
	ListTransactions(ctx context.Context, uid string, f dto.TransactionFilter) (dto.TransactionListResult, error)
	GetSummary(ctx context.Context, uid string) (dto.TransactionSummaryResult, error)
	GetDailySpending(ctx context.Context, uid string, now time.Time) (dto.DailySpendingResult, error)
}

type GraphService interface {
	GetGraph(ctx context.Context, uid string, req dto.GraphRequest) (dto.GraphResult, error)
}

type CategorySummaryService interface {
	Summarize(ctx context.Context, uid string, rng dto.DateRange) (dto.CategorySummaryResult, error)
	CategoryTransactions(ctx context.Context, uid string, rng dto.DateRange) (dto.CategoryTransactionsResult, error)
}

type transactionHandlers struct {
	ResponseHandler response.ResponseHandler
	TransactionSvc  TransactionService
	GraphSvc        GraphService
	SummarySvc      CategorySummaryService
	now             func() time.Time
}

func NewTransactionHandlers(deps *Deps) *transactionHandlers {
	return &transactionHandlers{
		ResponseHandler: deps.ResponseHandler,
		TransactionSvc:  deps.TransactionSvc,
		GraphSvc:        deps.GraphSvc,
		SummarySvc:      deps.SummarySvc,
		now:             deps.now,
	}
}

func (h *transactionHandlers) TransactionRoutes() chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.Add)
	r.Get("/", h.List)
	r.Get("/summary", h.Summary)
	r.Get("/graph", h.Graph)
	r.Get("/daily", h.Daily)
	r.Get("/categories-summary", h.CategorySummary)
	r.Get("/by-category", h.ByCategory)
	return r
}

func (h *transactionHandlers) Add(w http.ResponseWriter, r *http.Request) {
	var req dto.AddTransactionRequest
	if err := decodeJSON(r, &req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	uid := middleware.UID(r.Context())
	tx, err := h.TransactionSvc.AddTransaction(r.Context(), uid, req)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusCreated, tx)
}

func (h *transactionHandlers) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	uid := middleware.UID(r.Context())
	result, err := h.TransactionSvc.ListTransactions(r.Context(), uid, dto.TransactionFilter{
		Type:      q.Get("type"),
		Category:  q.Get("category"),
		StartDate: q.Get("startDate"),
		EndDate:   q.Get("endDate"),
	})
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, result)
}

func (h *transactionHandlers) Summary(w http.ResponseWriter, r *http.Request) {
	uid := middleware.UID(r.Context())
	result, err := h.TransactionSvc.GetSummary(r.Context(), uid)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, result)
}

func (h *transactionHandlers) Graph(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	uid := middleware.UID(r.Context())
	result, err := h.GraphSvc.GetGraph(r.Context(), uid, dto.GraphRequest{
		StartDate: q.Get("startDate"),
		EndDate:   q.Get("endDate"),
		Period:    q.Get("period"),
	})
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, result)
}

func (h *transactionHandlers) Daily(w http.ResponseWriter, r *http.Request) {
	uid := middleware.UID(r.Context())
	result, err := h.TransactionSvc.GetDailySpending(r.Context(), uid, h.now())
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, result)
}

func (h *transactionHandlers) CategorySummary(w http.ResponseWriter, r *http.Request) {
	uid := middleware.UID(r.Context())
	result, err := h.SummarySvc.Summarize(r.Context(), uid, dateRange(r))
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, result)
}

func (h *transactionHandlers) ByCategory(w http.ResponseWriter, r *http.Request) {
	uid := middleware.UID(r.Context())
	result, err := h.SummarySvc.CategoryTransactions(r.Context(), uid, dateRange(r))
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, result)
}

func dateRange(r *http.Request) dto.DateRange {
	q := r.URL.Query()
	return dto.DateRange{StartDate: q.Get("startDate"), EndDate: q.Get("endDate")}
}
