package store

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/GregMSThompson/budget-backend/internal/dto"
	"github.com/GregMSThompson/budget-backend/internal/errs"
	"github.com/GregMSThompson/budget-backend/internal/models"
)

const savingsPlansCollection = "savingsPlans"

type savingsPlanStore struct {
	client *firestore.Client
}

func NewSavingsPlanStore(client *firestore.Client) *savingsPlanStore {
	return &savingsPlanStore{client: client}
}

func (s *savingsPlanStore) collection() *firestore.CollectionRef {
	return s.client.Collection(savingsPlansCollection)
}

func (s *savingsPlanStore) periodQuery(uid, month, year string) firestore.Query {
	return s.collection().
		Where("userId", "==", uid).
		Where("month", "==", month).
		Where("year", "==", year).
		Limit(1)
}

// Create stores plan under plan.PlanID unless the user already has a plan for the same month and
// year. The existence check and the write commit together or not at all.
func (s *savingsPlanStore) Create(ctx context.Context, plan *models.SavingsPlan) error {
	ref := s.collection().Doc(plan.PlanID)
	err := s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		existing, err := tx.Documents(s.periodQuery(plan.UserID, plan.Month, plan.Year)).GetAll()
		if err != nil {
			return err
		}
		if len(existing) > 0 {
			return errs.NewAlreadyExistsError("a savings plan already exists for this month and year")
		}
		return tx.Create(ref, plan)
	})
	if err != nil {
		return passThroughOr(err, "create", "failed to create savings plan")
	}
	return nil
}

func (s *savingsPlanStore) Get(ctx context.Context, planID string) (*models.SavingsPlan, error) {
	doc, err := s.collection().Doc(planID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errs.NewNotFoundError("savings plan not found")
		}
		return nil, errs.NewDatabaseError("read", "failed to get savings plan", err)
	}
	return decodePlan(doc)
}

func (s *savingsPlanStore) FindByPeriod(ctx context.Context, uid, month, year string) (*models.SavingsPlan, error) {
	iter := s.periodQuery(uid, month, year).Documents(ctx)
	defer iter.Stop()

	doc, err := iter.Next()
	if err == iterator.Done {
		return nil, errs.NewNotFoundError("no savings plan found for " + month + " " + year)
	}
	if err != nil {
		return nil, errs.NewDatabaseError("read", "failed to query savings plan", err)
	}
	return decodePlan(doc)
}

// ListByUser returns the user's plans, newest year first and newest plan first within a year.
func (s *savingsPlanStore) ListByUser(ctx context.Context, uid string) ([]*models.SavingsPlan, error) {
	docs, err := s.collection().
		Where("userId", "==", uid).
		OrderBy("year", firestore.Desc).
		OrderBy("createdAt", firestore.Desc).
		Documents(ctx).GetAll()
	if err != nil {
		return nil, errs.NewDatabaseError("read", "failed to list savings plans", err)
	}
	plans := make([]*models.SavingsPlan, 0, len(docs))
	for _, d := range docs {
		p, err := decodePlan(d)
		if err != nil {
			return nil, err
		}
		plans = append(plans, p)
	}
	return plans, nil
}

// Mutate runs a read-modify-write on one plan inside a Firestore transaction. fn sees the
// committed state and returns the fields to change; an error from fn aborts without writing.
// Firestore re-runs fn when a concurrent write lands first, so fn must not have side effects.
// The returned plan is the state that was committed.
func (s *savingsPlanStore) Mutate(ctx context.Context, planID string, fn func(*models.SavingsPlan) (dto.SavingsPlanChanges, error)) (*models.SavingsPlan, error) {
	ref := s.collection().Doc(planID)
	var result *models.SavingsPlan

	err := s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(ref)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return errs.NewNotFoundError("savings plan not found")
			}
			return err
		}
		plan, err := decodePlan(doc)
		if err != nil {
			return err
		}
		changes, err := fn(plan)
		if err != nil {
			return err
		}
		if changes.Empty() {
			result = plan
			return nil
		}

		now := time.Now()
		updates := planUpdates(plan, changes)
		updates = append(updates, firestore.Update{Path: "updatedAt", Value: now})
		if err := tx.Update(ref, updates); err != nil {
			return err
		}

		changes.ApplyTo(plan)
		plan.UpdatedAt = now
		result = plan
		return nil
	})
	if err != nil {
		return nil, passThroughOr(err, "update", "failed to update savings plan")
	}
	return result, nil
}

func (s *savingsPlanStore) Delete(ctx context.Context, planID string) error {
	_, err := s.collection().Doc(planID).Delete(ctx, firestore.Exists)
	if status.Code(err) == codes.NotFound {
		return errs.NewNotFoundError("savings plan not found")
	}
	if err != nil {
		return errs.NewDatabaseError("delete", "failed to delete savings plan", err)
	}
	return nil
}

func planUpdates(current *models.SavingsPlan, c dto.SavingsPlanChanges) []firestore.Update {
	var updates []firestore.Update
	add := func(path string, v *float64) {
		if v != nil {
			updates = append(updates, firestore.Update{Path: path, Value: *v})
		}
	}
	add("fixedIncome", c.FixedIncome)
	add("fixedCosts", c.FixedCosts)
	add("savingsPercentage", c.SavingsPercentage)
	add("currentSpending", c.CurrentSpending)
	add("dailySpendingLimit", c.DailySpendingLimit)
	add("progress", c.Progress)
	if len(c.AppendSpending) > 0 {
		// ArrayUnion would collapse two identical expenses, so write the whole history.
		history := append(append([]models.SpendingEntry{}, current.SpendingHistory...), c.AppendSpending...)
		updates = append(updates, firestore.Update{Path: "spendingHistory", Value: history})
	}
	return updates
}

func decodePlan(doc *firestore.DocumentSnapshot) (*models.SavingsPlan, error) {
	var p models.SavingsPlan
	if err := doc.DataTo(&p); err != nil {
		return nil, errs.NewDatabaseError("read", "failed to parse savings plan data", err)
	}
	p.PlanID = doc.Ref.ID
	return &p, nil
}
