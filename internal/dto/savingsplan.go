package dto

import (
	"github.com/GregMSThompson/budget-backend/internal/models"
	"github.com/GregMSThompson/budget-backend/pkg/helpers"
)

type CreateSavingsPlanRequest struct {
	Month             string   `json:"month"`
	Year              string   `json:"year"`
	FixedIncome       *float64 `json:"fixedIncome"`
	FixedCosts        *float64 `json:"fixedCosts"`
	SavingsPercentage *float64 `json:"savingsPercentage"`
}

// UpdateSavingsPlanRequest carries only the fields the caller wants to change.
type UpdateSavingsPlanRequest struct {
	FixedIncome       *float64 `json:"fixedIncome,omitempty"`
	FixedCosts        *float64 `json:"fixedCosts,omitempty"`
	SavingsPercentage *float64 `json:"savingsPercentage,omitempty"`
}

func (r UpdateSavingsPlanRequest) Empty() bool {
	return r.FixedIncome == nil && r.FixedCosts == nil && r.SavingsPercentage == nil
}

type RecordExpenseRequest struct {
	Amount   *float64 `json:"amount"`
	Category string   `json:"category"`
	Date     string   `json:"date"`
}

// SavingsPlanChanges is the partial write applied to a plan inside one store transaction.
// Nil fields are left untouched; AppendSpending entries are appended to spendingHistory.
type SavingsPlanChanges struct {
	FixedIncome        *float64
	FixedCosts         *float64
	SavingsPercentage  *float64
	CurrentSpending    *float64
	DailySpendingLimit *float64
	Progress           *float64
	AppendSpending     []models.SpendingEntry
}

func (c SavingsPlanChanges) Empty() bool {
	return c.FixedIncome == nil && c.FixedCosts == nil && c.SavingsPercentage == nil &&
		c.CurrentSpending == nil && c.DailySpendingLimit == nil && c.Progress == nil &&
		len(c.AppendSpending) == 0
}

// ApplyTo copies the changes onto p.
func (c SavingsPlanChanges) ApplyTo(p *models.SavingsPlan) {
	p.FixedIncome = helpers.ValueOr(c.FixedIncome, p.FixedIncome)
	p.FixedCosts = helpers.ValueOr(c.FixedCosts, p.FixedCosts)
	p.SavingsPercentage = helpers.ValueOr(c.SavingsPercentage, p.SavingsPercentage)
	p.CurrentSpending = helpers.ValueOr(c.CurrentSpending, p.CurrentSpending)
	p.DailySpendingLimit = helpers.ValueOr(c.DailySpendingLimit, p.DailySpendingLimit)
	p.Progress = helpers.ValueOr(c.Progress, p.Progress)
	if len(c.AppendSpending) > 0 {
		p.SpendingHistory = append(append([]models.SpendingEntry{}, p.SpendingHistory...), c.AppendSpending...)
	}
}
