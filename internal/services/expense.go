package services

import (
	"context"
	"strings"
	"time"

	"github.com/GregMSThompson/budget-backend/internal/calendar"
	"github.com/GregMSThompson/budget-backend/internal/dto"
	"github.com/GregMSThompson/budget-backend/internal/errs"
	"github.com/GregMSThompson/budget-backend/internal/models"
	"github.com/GregMSThompson/budget-backend/pkg/logger"
)

type expensePlanStore interface {
	FindByPeriod(ctx context.Context, uid, month, year string) (*models.SavingsPlan, error)
	Mutate(ctx context.Context, planID string, fn func(*models.SavingsPlan) (dto.SavingsPlanChanges, error)) (*models.SavingsPlan, error)
}

type expenseService struct {
	plans expensePlanStore
	loc   *time.Location
}

func NewExpenseService(plans expensePlanStore, loc *time.Location) *expenseService {
	if loc == nil {
		loc = time.UTC
	}
	return &expenseService{plans: plans, loc: loc}
}

// RecordExpense charges an expense to the plan covering its date. The spending total, the history
// append and the new progress are computed from the committed plan and written in one commit, so
// concurrent calls against the same plan never lose an increment.
func (s *expenseService) RecordExpense(ctx context.Context, uid string, req dto.RecordExpenseRequest) (*models.SavingsPlan, error) {
	if req.Amount == nil || !finite(*req.Amount) || *req.Amount <= 0 {
		return nil, errs.NewValidationError("amount must be a positive number")
	}
	category := strings.TrimSpace(req.Category)
	if category == "" {
		return nil, errs.NewValidationError("category is required")
	}
	date, err := calendar.ParseDate(req.Date, s.loc)
	if err != nil {
		return nil, errs.NewValidationError("date must be YYYY-MM-DD or an RFC 3339 timestamp")
	}

	month, year := calendar.PeriodOf(date, s.loc)
	plan, err := s.plans.FindByPeriod(ctx, uid, month, year)
	if err != nil {
		return nil, err
	}

	amount := *req.Amount
	entry := models.SpendingEntry{
		Date:     strings.TrimSpace(req.Date),
		Amount:   amount,
		Category: category,
	}
	updated, err := s.plans.Mutate(ctx, plan.PlanID, func(current *models.SavingsPlan) (dto.SavingsPlanChanges, error) {
		spending := current.CurrentSpending + amount
		progress := current.ProgressFor(spending)
		return dto.SavingsPlanChanges{
			CurrentSpending: &spending,
			Progress:        &progress,
			AppendSpending:  []models.SpendingEntry{entry},
		}, nil
	})
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info("expense recorded", "plan_id", updated.PlanID, "category", category)
	return updated, nil
}
