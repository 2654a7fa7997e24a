package models

import (
	"time"
)

// SavingsPlan is a user's budget for one calendar month. There is at most one per (UserID, Month, Year).
// DailySpendingLimit and Progress are cached derivations of the other fields; see Derive.
type SavingsPlan struct {
	PlanID             string          `firestore:"-" json:"id"`
	UserID             string          `firestore:"userId" json:"userId"`
	Month              string          `firestore:"month" json:"month"` // English month name, e.g. "March"
	Year               string          `firestore:"year" json:"year"`   // four digits, kept as a string for ordering
	FixedIncome        float64         `firestore:"fixedIncome" json:"fixedIncome"`
	FixedCosts         float64         `firestore:"fixedCosts" json:"fixedCosts"`
	SavingsPercentage  float64         `firestore:"savingsPercentage" json:"savingsPercentage"`
	CurrentSpending    float64         `firestore:"currentSpending" json:"currentSpending"`
	DailySpendingLimit float64         `firestore:"dailySpendingLimit" json:"dailySpendingLimit"`
	Progress           float64         `firestore:"progress" json:"progress"`
	SpendingHistory    []SpendingEntry `firestore:"spendingHistory" json:"spendingHistory"`
	CreatedAt          time.Time       `firestore:"createdAt" json:"createdAt"`
	UpdatedAt          time.Time       `firestore:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}

// SpendingEntry is one recorded expense. It has no identity outside its plan.
type SpendingEntry struct {
	Date     string  `firestore:"date" json:"date"`
	Amount   float64 `firestore:"amount" json:"amount"`
	Category string  `firestore:"category" json:"category"`
}

// DiscretionaryIncome is fixed income minus fixed costs.
func (p *SavingsPlan) DiscretionaryIncome() float64 {
	return p.FixedIncome - p.FixedCosts
}

func (p *SavingsPlan) PlannedSavings() float64 {
	return p.DiscretionaryIncome() * p.SavingsPercentage / 100
}

// Budget is what is left for day-to-day spending once fixed costs and savings are set aside.
func (p *SavingsPlan) Budget() float64 {
	return p.DiscretionaryIncome() - p.PlannedSavings()
}

// ProgressFor returns spending as a percentage of the budget, or 0 when the budget is not positive.
func (p *SavingsPlan) ProgressFor(spending float64) float64 {
	budget := p.Budget()
	if budget <= 0 {
		return 0
	}
	return spending / budget * 100
}

// Derive computes the cached fields from the base fields.
func (p *SavingsPlan) Derive(daysInMonth int) (dailyLimit, progress float64) {
	if daysInMonth > 0 {
		dailyLimit = p.Budget() / float64(daysInMonth)
	}
	return dailyLimit, p.ProgressFor(p.CurrentSpending)
}
