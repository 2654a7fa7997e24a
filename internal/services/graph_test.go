package services

import (
	"errors"
	"testing"
	"time"

	"github.com/GregMSThompson/budget-backend/internal/dto"
	"github.com/GregMSThompson/budget-backend/internal/errs"
	"github.com/GregMSThompson/budget-backend/internal/models"
	"github.com/GregMSThompson/budget-backend/pkg/helpers"
)

func utc(y int, m time.Month, d, h int) time.Time {
	return time.Date(y, m, d, h, 0, 0, 0, time.UTC)
}

func TestGraphDaily(t *testing.T) {
	store := &fakeTxStore{txs: []*models.Transaction{
		txAt("t1", models.TransactionExpense, "Food", 100, utc(2025, 1, 1, 9)),
		txAt("t2", models.TransactionIncome, "Income", 200, utc(2025, 1, 1, 18)),
		txAt("t3", models.TransactionExpense, "Food", 50, utc(2025, 1, 2, 23)),
		txAt("t4", models.TransactionExpense, "Food", 999, utc(2025, 1, 3, 0)),
	}}
	svc := NewGraphService(store, time.UTC)

	got, err := svc.GetGraph(helpers.TestCtx(), "user", dto.GraphRequest{
		StartDate: "2025-01-01",
		EndDate:   "2025-01-02",
		Period:    "daily",
	})
	if err != nil {
		t.Fatalf("GetGraph error: %v", err)
	}

	if len(got.Dates) != 2 || got.Dates[0] != "01/01" || got.Dates[1] != "02/01" {
		t.Fatalf("dates mismatch: %v", got.Dates)
	}
	if got.ExpenseData[0] != 100 || got.ExpenseData[1] != 50 {
		t.Fatalf("expense series mismatch: %v", got.ExpenseData)
	}
	if got.IncomeData[0] != 200 || got.IncomeData[1] != 0 {
		t.Fatalf("income series mismatch: %v", got.IncomeData)
	}
	if got.TotalIncome != 200 || got.TotalExpenses != 150 {
		t.Fatalf("totals mismatch: %v %v", got.TotalIncome, got.TotalExpenses)
	}
}

func TestGraphSeriesAlignAndSum(t *testing.T) {
	store := &fakeTxStore{txs: []*models.Transaction{
		txAt("t1", models.TransactionExpense, "Food", 10.1, utc(2025, 2, 3, 1)),
		txAt("t2", models.TransactionExpense, "Food", 20.2, utc(2025, 3, 9, 1)),
		txAt("t3", models.TransactionIncome, "Pay", 0.3, utc(2025, 3, 9, 1)),
		txAt("t4", models.TransactionIncome, "Pay", 1000, utc(2025, 5, 31, 1)),
	}}
	svc := NewGraphService(store, time.UTC)

	for _, period := range []string{"daily", "monthly", "yearly"} {
		t.Run(period, func(t *testing.T) {
			got, err := svc.GetGraph(helpers.TestCtx(), "user", dto.GraphRequest{
				StartDate: "2025-01-15",
				EndDate:   "2025-05-31",
				Period:    period,
			})
			if err != nil {
				t.Fatalf("GetGraph error: %v", err)
			}
			if len(got.Dates) != len(got.IncomeData) || len(got.Dates) != len(got.ExpenseData) {
				t.Fatalf("series misaligned: %d %d %d", len(got.Dates), len(got.IncomeData), len(got.ExpenseData))
			}
			var income, expense float64
			for i := range got.Dates {
				income += got.IncomeData[i]
				expense += got.ExpenseData[i]
			}
			if !approx(income, got.TotalIncome) || !approx(expense, got.TotalExpenses) {
				t.Fatalf("series do not sum to totals: %v/%v %v/%v", income, got.TotalIncome, expense, got.TotalExpenses)
			}
			if !approx(got.TotalIncome, 1000.3) || !approx(got.TotalExpenses, 30.3) {
				t.Fatalf("totals mismatch: %v %v", got.TotalIncome, got.TotalExpenses)
			}
		})
	}
}

func TestGraphYearly(t *testing.T) {
	store := &fakeTxStore{txs: []*models.Transaction{
		txAt("t1", models.TransactionExpense, "Food", 5, utc(2025, 1, 20, 1)),
		txAt("t2", models.TransactionExpense, "Food", 7, utc(2025, 2, 1, 1)),
	}}
	svc := NewGraphService(store, time.UTC)

	got, err := svc.GetGraph(helpers.TestCtx(), "user", dto.GraphRequest{
		StartDate: "2025-01-15",
		EndDate:   "2025-03-01",
		Period:    "yearly",
	})
	if err != nil {
		t.Fatalf("GetGraph error: %v", err)
	}
	want := []string{"01/2025", "02/2025", "03/2025"}
	if len(got.Dates) != len(want) {
		t.Fatalf("dates mismatch: %v", got.Dates)
	}
	for i := range want {
		if got.Dates[i] != want[i] {
			t.Fatalf("dates mismatch: %v", got.Dates)
		}
	}
	if got.ExpenseData[0] != 5 || got.ExpenseData[1] != 7 || got.ExpenseData[2] != 0 {
		t.Fatalf("expense series mismatch: %v", got.ExpenseData)
	}
}

func TestGraphSkipsMalformedTimestamps(t *testing.T) {
	store := &fakeTxStore{txs: []*models.Transaction{
		txAt("good", models.TransactionExpense, "Food", 10, utc(2025, 1, 1, 1)),
		txAt("epoch", models.TransactionExpense, "Food", 5, map[string]any{"_seconds": utc(2025, 1, 1, 2).Unix()}),
		txAt("iso", models.TransactionIncome, "Pay", 3, "2025-01-01T03:00:00Z"),
		txAt("absent", models.TransactionExpense, "Food", 1000, nil),
		txAt("garbage", models.TransactionExpense, "Food", 1000, "yesterday"),
		txAt("weird", models.TransactionExpense, "Food", 1000, true),
	}}
	svc := NewGraphService(store, time.UTC)

	got, err := svc.GetGraph(helpers.TestCtx(), "user", dto.GraphRequest{
		StartDate: "2025-01-01",
		EndDate:   "2025-01-01",
	})
	if err != nil {
		t.Fatalf("GetGraph error: %v", err)
	}
	if got.Period != "daily" {
		t.Fatalf("expected daily default, got %q", got.Period)
	}
	if got.TotalExpenses != 15 || got.TotalIncome != 3 {
		t.Fatalf("totals mismatch: %v %v", got.TotalIncome, got.TotalExpenses)
	}
}

func TestGraphBucketsInLocation(t *testing.T) {
	loc := time.FixedZone("UTC-5", -5*60*60)
	store := &fakeTxStore{txs: []*models.Transaction{
		// 2 Jan 03:00 UTC is still 1 Jan at UTC-5.
		txAt("t1", models.TransactionExpense, "Food", 10, utc(2025, 1, 2, 3)),
	}}
	svc := NewGraphService(store, loc)

	got, err := svc.GetGraph(helpers.TestCtx(), "user", dto.GraphRequest{
		StartDate: "2025-01-01",
		EndDate:   "2025-01-02",
		Period:    "daily",
	})
	if err != nil {
		t.Fatalf("GetGraph error: %v", err)
	}
	if got.ExpenseData[0] != 10 || got.ExpenseData[1] != 0 {
		t.Fatalf("expense series mismatch: %v", got.ExpenseData)
	}
}

func TestGraphValidation(t *testing.T) {
	cases := map[string]dto.GraphRequest{
		"missingStart":  {EndDate: "2025-01-02", Period: "daily"},
		"missingEnd":    {StartDate: "2025-01-02", Period: "daily"},
		"badStart":      {StartDate: "nope", EndDate: "2025-01-02", Period: "daily"},
		"endBefore":     {StartDate: "2025-01-03", EndDate: "2025-01-02", Period: "daily"},
		"unknownPeriod": {StartDate: "2025-01-01", EndDate: "2025-01-02", Period: "weekly"},
	}
	for name, req := range cases {
		t.Run(name, func(t *testing.T) {
			svc := NewGraphService(&fakeTxStore{}, time.UTC)
			_, err := svc.GetGraph(helpers.TestCtx(), "user", req)
			var verr *errs.ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
		})
	}
}

func TestGraphStoreError(t *testing.T) {
	storeErr := errs.NewDatabaseError("read", "failed to query transactions", errors.New("unavailable"))
	svc := NewGraphService(&fakeTxStore{err: storeErr}, time.UTC)

	_, err := svc.GetGraph(helpers.TestCtx(), "user", dto.GraphRequest{StartDate: "2025-01-01", EndDate: "2025-01-01"})
	var dbErr *errs.DatabaseError
	if !errors.As(err, &dbErr) {
		t.Fatalf("expected DatabaseError, got %v", err)
	}
}

func TestGraphReadsZonelessStringsInLocation(t *testing.T) {
	loc := time.FixedZone("UTC-5", -5*60*60)
	store := &fakeTxStore{txs: []*models.Transaction{
		// Read as UTC this would be 21:00 on 2 Jan at UTC-5.
		txAt("t1", models.TransactionExpense, "Food", 10, "2025-01-03T02:00:00"),
	}}
	svc := NewGraphService(store, loc)

	got, err := svc.GetGraph(helpers.TestCtx(), "user", dto.GraphRequest{
		StartDate: "2025-01-01",
		EndDate:   "2025-01-03",
		Period:    "daily",
	})
	if err != nil {
		t.Fatalf("GetGraph error: %v", err)
	}
	if got.ExpenseData[1] != 0 || got.ExpenseData[2] != 10 {
		t.Fatalf("zoneless timestamp bucketed on the wrong day: %v", got.ExpenseData)
	}
}
