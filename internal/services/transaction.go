package services

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/GregMSThompson/budget-backend/internal/calendar"
	"github.com/GregMSThompson/budget-backend/internal/categories"
	"github.com/GregMSThompson/budget-backend/internal/dto"
	"github.com/GregMSThompson/budget-backend/internal/errs"
	"github.com/GregMSThompson/budget-backend/internal/models"
	"github.com/GregMSThompson/budget-backend/internal/timestamp"
	"github.com/GregMSThompson/budget-backend/pkg/logger"
)

const defaultPaymentMethod = "Other"

type transactionStore interface {
	transactionReader
	Add(ctx context.Context, tx *models.Transaction, createdAt time.Time) error
}

type transactionService struct {
	store  transactionStore
	styles *categories.Table
	loc    *time.Location
}

func NewTransactionService(store transactionStore, styles *categories.Table, loc *time.Location) *transactionService {
	if loc == nil {
		loc = time.UTC
	}
	return &transactionService{store: store, styles: styles, loc: loc}
}

func (s *transactionService) AddTransaction(ctx context.Context, uid string, req dto.AddTransactionRequest) (*models.Transaction, error) {
	typ := models.TransactionType(req.Type)
	if !typ.Valid() {
		return nil, errs.NewValidationError("type must be either EXPENSE or INCOME")
	}
	category := strings.TrimSpace(req.Category)
	if category == "" {
		return nil, errs.NewValidationError("category is required")
	}
	if req.Amount == nil || !finite(*req.Amount) || *req.Amount <= 0 {
		return nil, errs.NewValidationError("amount must be a positive number")
	}
	paymentMethod := strings.TrimSpace(req.PaymentMethod)
	if paymentMethod == "" {
		paymentMethod = defaultPaymentMethod
	}

	now := time.Now()
	tx := &models.Transaction{
		TransactionID: uuid.New().String(),
		UserID:        uid,
		Type:          typ,
		Category:      category,
		Amount:        *req.Amount,
		Description:   req.Description,
		PaymentMethod: paymentMethod,
		CreatedAt:     timestamp.FromTime(now),
	}
	if err := s.store.Add(ctx, tx, now); err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info("transaction added", "transaction_id", tx.TransactionID, "type", string(typ))
	return tx, nil
}

type datedTransaction struct {
	tx models.Transaction
	at time.Time // zero when createdAt is malformed
}

// ListTransactions returns the user's transactions, newest first. The date filter only applies
// when both ends are given; without it, records whose createdAt cannot be decoded are listed last.
func (s *transactionService) ListTransactions(ctx context.Context, uid string, f dto.TransactionFilter) (dto.TransactionListResult, error) {
	var q dto.TransactionQuery
	if f.Type != "" {
		typ := models.TransactionType(f.Type)
		if !typ.Valid() {
			return dto.TransactionListResult{}, errs.NewValidationError("type must be either EXPENSE or INCOME")
		}
		q.Type = &typ
	}
	if f.Category != "" {
		q.Category = &f.Category
	}

	var rows []datedTransaction
	if f.StartDate != "" && f.EndDate != "" {
		r, err := requiredRange(f.StartDate, f.EndDate, s.loc)
		if err != nil {
			return dto.TransactionListResult{}, err
		}
		err = eachInRange(ctx, s.store, s.loc, uid, q, r, func(tx *models.Transaction, at time.Time) error {
			rows = append(rows, datedTransaction{tx: *tx, at: at})
			return nil
		})
		if err != nil {
			return dto.TransactionListResult{}, err
		}
	} else {
		err := s.store.Query(ctx, uid, q, func(tx *models.Transaction) error {
			at, _ := tx.CreatedAt.TimeIn(s.loc)
			rows = append(rows, datedTransaction{tx: *tx, at: at})
			return nil
		})
		if err != nil {
			return dto.TransactionListResult{}, err
		}
	}

	slices.SortStableFunc(rows, func(a, b datedTransaction) int {
		return b.at.Compare(a.at)
	})

	out := make([]models.Transaction, len(rows))
	for i, r := range rows {
		out[i] = r.tx
	}
	return dto.TransactionListResult{Transactions: out, Count: len(out)}, nil
}

// GetSummary totals all of the user's transactions and breaks expenses down by category.
func (s *transactionService) GetSummary(ctx context.Context, uid string) (dto.TransactionSummaryResult, error) {
	var income decimal.Decimal
	var count int
	expenses := newCategoryTotals()

	err := eachInRange(ctx, s.store, s.loc, uid, dto.TransactionQuery{}, instantRange{}, func(tx *models.Transaction, _ time.Time) error {
		count++
		switch tx.Type {
		case models.TransactionIncome:
			income = income.Add(decimal.NewFromFloat(tx.Amount))
		case models.TransactionExpense:
			expenses.add(tx, false)
		}
		return nil
	})
	if err != nil {
		return dto.TransactionSummaryResult{}, err
	}

	items := expenses.items(s.styles)
	return dto.TransactionSummaryResult{
		AvailableBalance: income.Sub(expenses.total).InexactFloat64(),
		TotalIncome:      income.InexactFloat64(),
		TotalExpenses:    expenses.total.InexactFloat64(),
		TransactionCount: count,
		CategoryCount:    len(items),
		CategorySummary:  items,
	}, nil
}

// GetDailySpending returns the expenses recorded on the calendar day containing now.
func (s *transactionService) GetDailySpending(ctx context.Context, uid string, now time.Time) (dto.DailySpendingResult, error) {
	from, to := calendar.DayBounds(now, now, s.loc)
	expense := models.TransactionExpense

	days := map[string]*dto.DailySpendingDay{}
	totals := map[string]decimal.Decimal{}
	var total decimal.Decimal
	var count int

	err := eachInRange(ctx, s.store, s.loc, uid, dto.TransactionQuery{Type: &expense}, instantRange{from: from, to: to}, func(tx *models.Transaction, at time.Time) error {
		key := at.In(s.loc).Format(calendar.DateLayout)
		day, ok := days[key]
		if !ok {
			day = &dto.DailySpendingDay{Date: key}
			days[key] = day
		}
		amount := decimal.NewFromFloat(tx.Amount)
		totals[key] = totals[key].Add(amount)
		day.Transactions = append(day.Transactions, *tx)
		total = total.Add(amount)
		count++
		return nil
	})
	if err != nil {
		return dto.DailySpendingResult{}, err
	}

	result := dto.DailySpendingResult{
		DailySpending: make([]dto.DailySpendingDay, 0, len(days)),
		Statistics: dto.DailySpendingStats{
			TotalTransactions: count,
			TotalSpending:     total.InexactFloat64(),
			From:              from.Format(time.RFC3339Nano),
			To:                to.Format(time.RFC3339Nano),
		},
	}
	for key, day := range days {
		day.TotalAmount = totals[key].InexactFloat64()
		result.DailySpending = append(result.DailySpending, *day)
	}
	slices.SortFunc(result.DailySpending, func(a, b dto.DailySpendingDay) int {
		return strings.Compare(b.Date, a.Date)
	})
	return result, nil
}
