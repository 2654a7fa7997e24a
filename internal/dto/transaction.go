package dto

import "github.com/GregMSThompson/budget-backend/internal/models"

type AddTransactionRequest struct {
	Type          string   `json:"type"`
	Category      string   `json:"category"`
	Amount        *float64 `json:"amount"`
	Description   string   `json:"description,omitempty"`
	PaymentMethod string   `json:"paymentMethod,omitempty"`
}

// TransactionFilter narrows a listing. Dates are YYYY-MM-DD or RFC 3339; the range only applies
// when both ends are given.
type TransactionFilter struct {
	Type      string
	Category  string
	StartDate string
	EndDate   string
}

// TransactionQuery is what the store can filter on server side. Date ranges are applied after
// timestamps are normalised, since not every stored encoding is range-comparable.
type TransactionQuery struct {
	Type     *models.TransactionType
	Category *string
}

type TransactionListResult struct {
	Transactions []models.Transaction `json:"transactions"`
	Count        int                  `json:"count"`
}

type DailySpendingDay struct {
	Date         string               `json:"date"`
	TotalAmount  float64              `json:"totalAmount"`
	Transactions []models.Transaction `json:"transactions"`
}

type DailySpendingStats struct {
	TotalTransactions int     `json:"totalTransactions"`
	TotalSpending     float64 `json:"totalSpending"`
	From              string  `json:"from"`
	To                string  `json:"to"`
}

type DailySpendingResult struct {
	DailySpending []DailySpendingDay `json:"dailySpending"`
	Statistics    DailySpendingStats `json:"statistics"`
}
