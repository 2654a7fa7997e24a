package services

import (
	"context"
	"math"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/GregMSThompson/budget-backend/internal/calendar"
	"github.com/GregMSThompson/budget-backend/internal/dto"
	"github.com/GregMSThompson/budget-backend/internal/errs"
	"github.com/GregMSThompson/budget-backend/internal/models"
	"github.com/GregMSThompson/budget-backend/pkg/logger"
)

// savingsPlanStore is the Firestore storage interface for savings plans. Mutate must apply fn's
// changes atomically against the state fn was given.
type savingsPlanStore interface {
	Create(ctx context.Context, plan *models.SavingsPlan) error
	Get(ctx context.Context, planID string) (*models.SavingsPlan, error)
	FindByPeriod(ctx context.Context, uid, month, year string) (*models.SavingsPlan, error)
	ListByUser(ctx context.Context, uid string) ([]*models.SavingsPlan, error)
	Mutate(ctx context.Context, planID string, fn func(*models.SavingsPlan) (dto.SavingsPlanChanges, error)) (*models.SavingsPlan, error)
	Delete(ctx context.Context, planID string) error
}

type savingsPlanService struct {
	store savingsPlanStore
	loc   *time.Location
}

func NewSavingsPlanService(store savingsPlanStore, loc *time.Location) *savingsPlanService {
	if loc == nil {
		loc = time.UTC
	}
	return &savingsPlanService{store: store, loc: loc}
}

// GetCurrent returns the plan for the month containing now.
func (s *savingsPlanService) GetCurrent(ctx context.Context, uid string, now time.Time) (*models.SavingsPlan, error) {
	month, year := calendar.PeriodOf(now, s.loc)
	plan, err := s.store.FindByPeriod(ctx, uid, month, year)
	if err != nil {
		return nil, err
	}
	return plan, nil
}

func (s *savingsPlanService) Create(ctx context.Context, uid string, req dto.CreateSavingsPlanRequest) (*models.SavingsPlan, error) {
	log := logger.FromContext(ctx)

	month, ok := calendar.CanonicalMonth(req.Month)
	if !ok {
		return nil, errs.NewValidationError("month must be an English month name")
	}
	year, err := calendar.ParseYear(req.Year)
	if err != nil {
		return nil, errs.NewValidationError("year must be a four digit year")
	}
	if req.FixedIncome == nil || req.FixedCosts == nil || req.SavingsPercentage == nil {
		return nil, errs.NewValidationError("fixedIncome, fixedCosts and savingsPercentage are required")
	}
	if err := validatePlanFields(req.FixedIncome, req.FixedCosts, req.SavingsPercentage); err != nil {
		return nil, err
	}

	days, err := calendar.DaysInMonth(month, year)
	if err != nil {
		return nil, errs.NewValidationError(err.Error())
	}

	plan := &models.SavingsPlan{
		PlanID:            uuid.New().String(),
		UserID:            uid,
		Month:             month,
		Year:              strconv.Itoa(year),
		FixedIncome:       *req.FixedIncome,
		FixedCosts:        *req.FixedCosts,
		SavingsPercentage: *req.SavingsPercentage,
		SpendingHistory:   []models.SpendingEntry{},
		CreatedAt:         time.Now(),
	}
	plan.DailySpendingLimit, plan.Progress = plan.Derive(days)

	if err := s.store.Create(ctx, plan); err != nil {
		return nil, err
	}

	log.Info("savings plan created", "plan_id", plan.PlanID, "month", plan.Month, "year", plan.Year)
	return plan, nil
}

// Update merges the supplied base fields and rewrites both derived fields in the same commit.
// Progress is measured against the new budget; currentSpending is left as is.
func (s *savingsPlanService) Update(ctx context.Context, planID, callerID string, req dto.UpdateSavingsPlanRequest) (*models.SavingsPlan, error) {
	if req.Empty() {
		return nil, errs.NewValidationError("at least one of fixedIncome, fixedCosts or savingsPercentage is required")
	}
	if err := validatePlanFields(req.FixedIncome, req.FixedCosts, req.SavingsPercentage); err != nil {
		return nil, err
	}

	plan, err := s.store.Mutate(ctx, planID, func(current *models.SavingsPlan) (dto.SavingsPlanChanges, error) {
		if current.UserID != callerID {
			return dto.SavingsPlanChanges{}, errs.NewPermissionError("not authorized to modify this savings plan")
		}
		changes := dto.SavingsPlanChanges{
			FixedIncome:       req.FixedIncome,
			FixedCosts:        req.FixedCosts,
			SavingsPercentage: req.SavingsPercentage,
		}
		merged := *current
		changes.ApplyTo(&merged)
		if err := withDerived(&merged, &changes); err != nil {
			return dto.SavingsPlanChanges{}, err
		}
		return changes, nil
	})
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info("savings plan updated", "plan_id", planID)
	return plan, nil
}

func (s *savingsPlanService) Delete(ctx context.Context, planID, callerID string) error {
	plan, err := s.store.Get(ctx, planID)
	if err != nil {
		return err
	}
	if plan.UserID != callerID {
		return errs.NewPermissionError("not authorized to delete this savings plan")
	}
	if err := s.store.Delete(ctx, planID); err != nil {
		return err
	}

	logger.FromContext(ctx).Info("savings plan deleted", "plan_id", planID)
	return nil
}

func (s *savingsPlanService) History(ctx context.Context, uid string) ([]*models.SavingsPlan, error) {
	return s.store.ListByUser(ctx, uid)
}

// Recompute rewrites the derived fields of every plan the user owns from its base fields and
// returns how many plans changed.
func (s *savingsPlanService) Recompute(ctx context.Context, uid string) (int, error) {
	log := logger.FromContext(ctx)

	plans, err := s.store.ListByUser(ctx, uid)
	if err != nil {
		return 0, err
	}

	changed := 0
	for _, p := range plans {
		var drifted bool
		_, err := s.store.Mutate(ctx, p.PlanID, func(current *models.SavingsPlan) (dto.SavingsPlanChanges, error) {
			var changes dto.SavingsPlanChanges
			if err := withDerived(current, &changes); err != nil {
				return dto.SavingsPlanChanges{}, err
			}
			drifted = *changes.DailySpendingLimit != current.DailySpendingLimit || *changes.Progress != current.Progress
			if !drifted {
				return dto.SavingsPlanChanges{}, nil
			}
			return changes, nil
		})
		if err != nil {
			return changed, err
		}
		if drifted {
			changed++
			log.Info("savings plan derived fields repaired", "plan_id", p.PlanID)
		}
	}
	return changed, nil
}

// withDerived sets the derived fields on changes from the base fields of p.
func withDerived(p *models.SavingsPlan, changes *dto.SavingsPlanChanges) error {
	year, err := calendar.ParseYear(p.Year)
	if err != nil {
		return errs.NewValidationError("savings plan has an invalid year")
	}
	days, err := calendar.DaysInMonth(p.Month, year)
	if err != nil {
		return errs.NewValidationError("savings plan has an invalid month")
	}
	limit, progress := p.Derive(days)
	changes.DailySpendingLimit = &limit
	changes.Progress = &progress
	return nil
}

func validatePlanFields(fixedIncome, fixedCosts, savingsPercentage *float64) error {
	var bad []string
	for name, v := range map[string]*float64{
		"fixedIncome":       fixedIncome,
		"fixedCosts":        fixedCosts,
		"savingsPercentage": savingsPercentage,
	} {
		if v != nil && !finite(*v) {
			bad = append(bad, name)
		}
	}
	if len(bad) > 0 {
		slices.Sort(bad)
		return errs.NewValidationError("fields must be numeric: " + strings.Join(bad, ", "))
	}
	if savingsPercentage != nil && (*savingsPercentage < 0 || *savingsPercentage > 100) {
		return errs.NewValidationError("savingsPercentage must be between 0 and 100")
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
