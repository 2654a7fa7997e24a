package dto

import "github.com/GregMSThompson/budget-backend/internal/models"

type GraphRequest struct {
	StartDate string
	EndDate   string
	Period    string
}

// GraphResult holds aligned series: IncomeData[i] and ExpenseData[i] belong to Dates[i].
type GraphResult struct {
	Period        string    `json:"period"`
	Dates         []string  `json:"dates"`
	IncomeData    []float64 `json:"incomeData"`
	ExpenseData   []float64 `json:"expenseData"`
	TotalIncome   float64   `json:"totalIncome"`
	TotalExpenses float64   `json:"totalExpenses"`
}

// DateRange is optional on summaries; either end may be empty.
type DateRange struct {
	StartDate string
	EndDate   string
}

type CategorySummaryItem struct {
	Category   string  `json:"category"`
	Amount     float64 `json:"amount"`
	Percentage float64 `json:"percentage"`
	Count      int     `json:"count"`
	Icon       string  `json:"icon,omitempty"`
	Color      string  `json:"color,omitempty"`
}

type CategorySummaryResult struct {
	Categories    []CategorySummaryItem `json:"categories"`
	TotalExpenses float64               `json:"totalExpenses"`
	CategoryCount int                   `json:"categoryCount"`
}

type CategoryTransactionsItem struct {
	Category         string               `json:"category"`
	TotalAmount      float64              `json:"totalAmount"`
	TransactionCount int                  `json:"transactionCount"`
	Transactions     []models.Transaction `json:"transactions"`
}

type CategoryTransactionsResult struct {
	CategorySpending  []CategoryTransactionsItem `json:"categorySpending"`
	TotalCategories   int                        `json:"totalCategories"`
	TotalTransactions int                        `json:"totalTransactions"`
	TotalSpending     float64                    `json:"totalSpending"`
}

type TransactionSummaryResult struct {
	AvailableBalance float64               `json:"availableBalance"`
	TotalIncome      float64               `json:"totalIncome"`
	TotalExpenses    float64               `json:"totalExpenses"`
	TransactionCount int                   `json:"transactionCount"`
	CategoryCount    int                   `json:"categoryCount"`
	CategorySummary  []CategorySummaryItem `json:"categorySummary"`
}
