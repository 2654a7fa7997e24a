package services

import (
	"context"
	"sync"
	"time"

	"github.com/GregMSThompson/budget-backend/internal/dto"
	"github.com/GregMSThompson/budget-backend/internal/errs"
	"github.com/GregMSThompson/budget-backend/internal/models"
	"github.com/GregMSThompson/budget-backend/internal/timestamp"
)

// fakePlanStore keeps plans in memory. Mutate holds the lock across read, fn and write, which is
// the guarantee the Firestore transaction gives the real store.
type fakePlanStore struct {
	mu          sync.Mutex
	plans       map[string]*models.SavingsPlan
	mutateCalls int
	err         error
}

func newFakePlanStore(plans ...*models.SavingsPlan) *fakePlanStore {
	f := &fakePlanStore{plans: map[string]*models.SavingsPlan{}}
	for _, p := range plans {
		f.plans[p.PlanID] = clonePlan(p)
	}
	return f
}

func clonePlan(p *models.SavingsPlan) *models.SavingsPlan {
	c := *p
	c.SpendingHistory = append([]models.SpendingEntry(nil), p.SpendingHistory...)
	return &c
}

func (f *fakePlanStore) Create(_ context.Context, plan *models.SavingsPlan) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	for _, p := range f.plans {
		if p.UserID == plan.UserID && p.Month == plan.Month && p.Year == plan.Year {
			return errs.NewAlreadyExistsError("a savings plan already exists for this month and year")
		}
	}
	f.plans[plan.PlanID] = clonePlan(plan)
	return nil
}

func (f *fakePlanStore) Get(_ context.Context, planID string) (*models.SavingsPlan, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.plans[planID]
	if !ok {
		return nil, errs.NewNotFoundError("savings plan not found")
	}
	return clonePlan(p), nil
}

func (f *fakePlanStore) FindByPeriod(_ context.Context, uid, month, year string) (*models.SavingsPlan, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	for _, p := range f.plans {
		if p.UserID == uid && p.Month == month && p.Year == year {
			return clonePlan(p), nil
		}
	}
	return nil, errs.NewNotFoundError("no savings plan found for " + month + " " + year)
}

func (f *fakePlanStore) ListByUser(_ context.Context, uid string) ([]*models.SavingsPlan, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.SavingsPlan
	for _, p := range f.plans {
		if p.UserID == uid {
			out = append(out, clonePlan(p))
		}
	}
	return out, nil
}

func (f *fakePlanStore) Mutate(_ context.Context, planID string, fn func(*models.SavingsPlan) (dto.SavingsPlanChanges, error)) (*models.SavingsPlan, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.mutateCalls++
	p, ok := f.plans[planID]
	if !ok {
		return nil, errs.NewNotFoundError("savings plan not found")
	}
	working := clonePlan(p)
	changes, err := fn(working)
	if err != nil {
		return nil, err
	}
	next := clonePlan(p)
	changes.ApplyTo(next)
	if !changes.Empty() {
		next.UpdatedAt = time.Now()
	}
	f.plans[planID] = next
	return clonePlan(next), nil
}

func (f *fakePlanStore) Delete(_ context.Context, planID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.plans, planID)
	return nil
}

func (f *fakePlanStore) stored(planID string) *models.SavingsPlan {
	f.mu.Lock()
	defer f.mu.Unlock()
	return clonePlan(f.plans[planID])
}

// fakeTxStore filters on the same fields the Firestore query does.
type fakeTxStore struct {
	txs       []*models.Transaction
	added     []*models.Transaction
	addedAt   time.Time
	err       error
	lastQuery dto.TransactionQuery
}

func (f *fakeTxStore) Query(_ context.Context, uid string, q dto.TransactionQuery, handle func(*models.Transaction) error) error {
	f.lastQuery = q
	if f.err != nil {
		return f.err
	}
	for _, tx := range f.txs {
		if tx.UserID != uid {
			continue
		}
		if q.Type != nil && tx.Type != *q.Type {
			continue
		}
		if q.Category != nil && tx.Category != *q.Category {
			continue
		}
		c := *tx
		if err := handle(&c); err != nil {
			return err
		}
	}
	return nil
}

func (f *fakeTxStore) Add(_ context.Context, tx *models.Transaction, createdAt time.Time) error {
	if f.err != nil {
		return f.err
	}
	f.added = append(f.added, tx)
	f.addedAt = createdAt
	return nil
}

func txAt(id string, typ models.TransactionType, category string, amount float64, at any) *models.Transaction {
	return &models.Transaction{
		TransactionID: id,
		UserID:        "user",
		Type:          typ,
		Category:      category,
		Amount:        amount,
		CreatedAt:     timestamp.FromValue(at),
	}
}
