package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/GregMSThompson/budget-backend/internal/errs"
	"github.com/GregMSThompson/budget-backend/internal/models"
)

func newPlanRouter(plans *stubPlanService, expenses *stubExpenseService, resp *stubResponseHandler, now time.Time) http.Handler {
	h := NewSavingsPlanHandlers(&Deps{
		ResponseHandler: resp,
		SavingsPlanSvc:  plans,
		ExpenseSvc:      expenses,
		Now:             func() time.Time { return now },
	})
	return h.SavingsPlanRoutes()
}

func TestGetCurrentPlan(t *testing.T) {
	now := time.Date(2025, 4, 10, 0, 0, 0, 0, time.UTC)
	plans := &stubPlanService{plan: &models.SavingsPlan{PlanID: "p1"}}
	resp := &stubResponseHandler{}
	router := newPlanRouter(plans, &stubExpenseService{}, resp, now)

	req := withUID(httptest.NewRequest(http.MethodGet, "/current", nil), "uid-1")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if plans.uid != "uid-1" || !plans.now.Equal(now) {
		t.Fatalf("service got uid %q now %v", plans.uid, plans.now)
	}
	if !resp.writeSuccessCalled || resp.writeSuccessStatus != http.StatusOK {
		t.Fatal("WriteSuccess not called with status 200")
	}
	if resp.writeSuccessData.(*models.SavingsPlan).PlanID != "p1" {
		t.Fatalf("unexpected data: %+v", resp.writeSuccessData)
	}
}

func TestCreatePlan(t *testing.T) {
	plans := &stubPlanService{plan: &models.SavingsPlan{PlanID: "p1"}}
	resp := &stubResponseHandler{}
	router := newPlanRouter(plans, &stubExpenseService{}, resp, time.Now())

	body := `{"month":"April","year":"2025","fixedIncome":3000,"fixedCosts":1000,"savingsPercentage":20}`
	req := withUID(httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body)), "uid-1")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusCreated {
		t.Fatalf("unexpected status: %d", rr.Code)
	}
	got := plans.createReq
	if got.Month != "April" || got.Year != "2025" || *got.FixedIncome != 3000 || *got.SavingsPercentage != 20 {
		t.Fatalf("service received wrong request: %+v", got)
	}
}

func TestCreatePlanInvalidJSON(t *testing.T) {
	plans := &stubPlanService{}
	resp := &stubResponseHandler{}
	router := newPlanRouter(plans, &stubExpenseService{}, resp, time.Now())

	req := withUID(httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"fixedIncome":"lots"}`)), "uid-1")
	router.ServeHTTP(httptest.NewRecorder(), req)

	if !resp.handleErrorCalled {
		t.Fatal("HandleError not called")
	}
	if _, ok := resp.handleError.(*errs.ValidationError); !ok {
		t.Fatalf("expected ValidationError, got %T", resp.handleError)
	}
	if plans.uid != "" {
		t.Fatal("service called for invalid body")
	}
}

func TestUpdatePlanPassesIDAndCaller(t *testing.T) {
	plans := &stubPlanService{plan: &models.SavingsPlan{}}
	resp := &stubResponseHandler{}
	router := newPlanRouter(plans, &stubExpenseService{}, resp, time.Now())

	req := withUID(httptest.NewRequest(http.MethodPut, "/p-42", strings.NewReader(`{"fixedCosts":1200}`)), "uid-1")
	router.ServeHTTP(httptest.NewRecorder(), req)

	if plans.planID != "p-42" || plans.callerID != "uid-1" {
		t.Fatalf("wrong identifiers: %q %q", plans.planID, plans.callerID)
	}
	if plans.updateReq.FixedCosts == nil || *plans.updateReq.FixedCosts != 1200 || plans.updateReq.FixedIncome != nil {
		t.Fatalf("wrong update request: %+v", plans.updateReq)
	}
}

func TestDeletePlanError(t *testing.T) {
	plans := &stubPlanService{err: errs.NewPermissionError("not yours")}
	resp := &stubResponseHandler{}
	router := newPlanRouter(plans, &stubExpenseService{}, resp, time.Now())

	req := withUID(httptest.NewRequest(http.MethodDelete, "/p-1", nil), "uid-1")
	router.ServeHTTP(httptest.NewRecorder(), req)

	if _, ok := resp.handleError.(*errs.PermissionError); !ok {
		t.Fatalf("expected PermissionError to reach HandleError, got %T", resp.handleError)
	}
	if resp.writeSuccessCalled {
		t.Fatal("WriteSuccess called on error")
	}
}

func TestPlanHistoryEmptyIsArray(t *testing.T) {
	resp := &stubResponseHandler{}
	router := newPlanRouter(&stubPlanService{}, &stubExpenseService{}, resp, time.Now())

	router.ServeHTTP(httptest.NewRecorder(), withUID(httptest.NewRequest(http.MethodGet, "/history", nil), "uid-1"))

	plans, ok := resp.writeSuccessData.([]*models.SavingsPlan)
	if !ok || plans == nil {
		t.Fatalf("expected empty slice, got %#v", resp.writeSuccessData)
	}
}

func TestRecordExpenseHandler(t *testing.T) {
	expenses := &stubExpenseService{}
	resp := &stubResponseHandler{}
	router := newPlanRouter(&stubPlanService{}, expenses, resp, time.Now())

	body := `{"amount":12.5,"category":"Food","date":"2025-04-10"}`
	req := withUID(httptest.NewRequest(http.MethodPost, "/expense", strings.NewReader(body)), "uid-1")
	router.ServeHTTP(httptest.NewRecorder(), req)

	if expenses.uid != "uid-1" || *expenses.req.Amount != 12.5 || expenses.req.Category != "Food" || expenses.req.Date != "2025-04-10" {
		t.Fatalf("wrong expense request: %+v", expenses.req)
	}
	if resp.writeSuccessStatus != http.StatusOK {
		t.Fatalf("unexpected status: %d", resp.writeSuccessStatus)
	}
}
