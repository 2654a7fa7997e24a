package models

import (
	"github.com/GregMSThompson/budget-backend/internal/timestamp"
)

type TransactionType string

const (
	TransactionIncome  TransactionType = "INCOME"
	TransactionExpense TransactionType = "EXPENSE"
)

func (t TransactionType) Valid() bool {
	return t == TransactionIncome || t == TransactionExpense
}

// Transaction is immutable once written. CreatedAt keeps the stored encoding; read it with
// CreatedAt.Time().
type Transaction struct {
	TransactionID string           `json:"id"`
	UserID        string           `json:"userId"`
	Type          TransactionType  `json:"type"`
	Category      string           `json:"category"`
	Amount        float64          `json:"amount"`
	Description   string           `json:"description"`
	PaymentMethod string           `json:"paymentMethod"`
	CreatedAt     timestamp.Stored `json:"createdAt"`
}
