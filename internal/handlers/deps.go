package handlers

import (
	"log/slog"
	"time"

	"github.com/GregMSThompson/budget-backend/internal/middleware"
	"github.com/GregMSThompson/budget-backend/internal/response"
)

type Deps struct {
	Log             *slog.Logger
	Firebase        middleware.TokenVerifier
	ResponseHandler response.ResponseHandler
	SavingsPlanSvc  SavingsPlanService
	ExpenseSvc      ExpenseService
	TransactionSvc  TransactionService
	GraphSvc        GraphService
	SummarySvc      CategorySummaryService
	CategorySvc     CategoryService
	Now             func() time.Time
}

func (d *Deps) now() time.Time {
	if d.Now == nil {
		return time.Now()
	}
	return d.Now()
}
