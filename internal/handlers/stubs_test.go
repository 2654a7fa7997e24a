package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/GregMSThompson/budget-backend/internal/dto"
	"github.com/GregMSThompson/budget-backend/internal/middleware"
	"github.com/GregMSThompson/budget-backend/internal/models"
)

type stubResponseHandler struct {
	writeSuccessCalled bool
	writeSuccessStatus int
	writeSuccessData   any

	handleErrorCalled bool
	handleError       error
}

func (s *stubResponseHandler) WriteSuccess(w http.ResponseWriter, _ *http.Request, status int, data any) {
	s.writeSuccessCalled = true
	s.writeSuccessStatus = status
	s.writeSuccessData = data

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write([]byte(`{"success":true}`))
}

func (s *stubResponseHandler) WriteError(w http.ResponseWriter, _ *http.Request, status int, _, _ string) {
	w.WriteHeader(status)
}

func (s *stubResponseHandler) HandleError(w http.ResponseWriter, _ *http.Request, err error) {
	s.handleErrorCalled = true
	s.handleError = err
	w.WriteHeader(http.StatusInternalServerError)
}

func withUID(r *http.Request, uid string) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), middleware.UIDKey, uid))
}

type stubPlanService struct {
	uid, planID, callerID string
	now                   time.Time
	createReq             dto.CreateSavingsPlanRequest
	updateReq             dto.UpdateSavingsPlanRequest
	plan                  *models.SavingsPlan
	plans                 []*models.SavingsPlan
	err                   error
}

func (s *stubPlanService) GetCurrent(_ context.Context, uid string, now time.Time) (*models.SavingsPlan, error) {
	s.uid, s.now = uid, now
	return s.plan, s.err
}

func (s *stubPlanService) Create(_ context.Context, uid string, req dto.CreateSavingsPlanRequest) (*models.SavingsPlan, error) {
	s.uid, s.createReq = uid, req
	return s.plan, s.err
}

func (s *stubPlanService) Update(_ context.Context, planID, callerID string, req dto.UpdateSavingsPlanRequest) (*models.SavingsPlan, error) {
	s.planID, s.callerID, s.updateReq = planID, callerID, req
	return s.plan, s.err
}

func (s *stubPlanService) Delete(_ context.Context, planID, callerID string) error {
	s.planID, s.callerID = planID, callerID
	return s.err
}

func (s *stubPlanService) History(_ context.Context, uid string) ([]*models.SavingsPlan, error) {
	s.uid = uid
	return s.plans, s.err
}

type stubExpenseService struct {
	uid string
	req dto.RecordExpenseRequest
	err error
}

func (s *stubExpenseService) RecordExpense(_ context.Context, uid string, req dto.RecordExpenseRequest) (*models.SavingsPlan, error) {
	s.uid, s.req = uid, req
	return &models.SavingsPlan{}, s.err
}

type stubTransactionService struct {
	uid    string
	addReq dto.AddTransactionRequest
	filter dto.TransactionFilter
	now    time.Time
	err    error
}

func (s *stubTransactionService) AddTransaction(_ context.Context, uid string, req dto.AddTransactionRequest) (*models.Transaction, error) {
	s.uid, s.addReq = uid, req
	return &models.Transaction{}, s.err
}

func (s *stubTransactionService) ListTransactions(_ context.Context, uid string, f dto.TransactionFilter) (dto.TransactionListResult, error) {
	s.uid, s.filter = uid, f
	return dto.TransactionListResult{}, s.err
}

func (s *stubTransactionService) GetSummary(_ context.Context, uid string) (dto.TransactionSummaryResult, error) {
	s.uid = uid
	return dto.TransactionSummaryResult{}, s.err
}

func (s *stubTransactionService) GetDailySpending(_ context.Context, uid string, now time.Time) (dto.DailySpendingResult, error) {
	s.uid, s.now = uid, now
	return dto.DailySpendingResult{}, s.err
}

type stubGraphService struct {
	req dto.GraphRequest
	err error
}

func (s *stubGraphService) GetGraph(_ context.Context, _ string, req dto.GraphRequest) (dto.GraphResult, error) {
	s.req = req
	return dto.GraphResult{}, s.err
}

type stubSummaryService struct {
	rng        dto.DateRange
	joinedCall bool
}

func (s *stubSummaryService) Summarize(_ context.Context, _ string, rng dto.DateRange) (dto.CategorySummaryResult, error) {
	s.rng = rng
	return dto.CategorySummaryResult{}, nil
}

func (s *stubSummaryService) CategoryTransactions(_ context.Context, _ string, rng dto.DateRange) (dto.CategoryTransactionsResult, error) {
	s.rng, s.joinedCall = rng, true
	return dto.CategoryTransactionsResult{}, nil
}

type stubCategoryService struct {
	uid  string
	req  dto.AddCategoryRequest
	cats []*models.Category
	err  error
}

func (s *stubCategoryService) AddCategory(_ context.Context, uid string, req dto.AddCategoryRequest) (*models.Category, error) {
	s.uid, s.req = uid, req
	return &models.Category{Name: req.Name}, s.err
}

func (s *stubCategoryService) ListCategories(_ context.Context, uid string) ([]*models.Category, error) {
	s.uid = uid
	return s.cats, s.err
}
