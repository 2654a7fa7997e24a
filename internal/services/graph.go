package services

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/GregMSThompson/budget-backend/internal/calendar"
	"github.com/GregMSThompson/budget-backend/internal/dto"
	"github.com/GregMSThompson/budget-backend/internal/errs"
	"github.com/GregMSThompson/budget-backend/internal/models"
)

type graphService struct {
	txs transactionReader
	loc *time.Location
}

func NewGraphService(txs transactionReader, loc *time.Location) *graphService {
	if loc == nil {
		loc = time.UTC
	}
	return &graphService{txs: txs, loc: loc}
}

type bucket struct {
	income  decimal.Decimal
	expense decimal.Decimal
}

// GetGraph buckets the user's transactions in [StartDate, EndDate] into income and expense
// series, one point per label. An empty period means daily.
func (s *graphService) GetGraph(ctx context.Context, uid string, req dto.GraphRequest) (dto.GraphResult, error) {
	periodName := req.Period
	if periodName == "" {
		periodName = string(calendar.Daily)
	}
	period, ok := calendar.ParsePeriod(periodName)
	if !ok {
		return dto.GraphResult{}, errs.NewValidationError("period must be daily, monthly, or yearly")
	}
	r, err := requiredRange(req.StartDate, req.EndDate, s.loc)
	if err != nil {
		return dto.GraphResult{}, err
	}

	result := dto.GraphResult{Period: string(period)}
	buckets := map[string]*bucket{}
	for label := range calendar.Labels(period, r.from, r.to) {
		result.Dates = append(result.Dates, label)
		buckets[label] = &bucket{}
	}

	err = eachInRange(ctx, s.txs, s.loc, uid, dto.TransactionQuery{}, r, func(tx *models.Transaction, at time.Time) error {
		b, ok := buckets[calendar.Label(at.In(s.loc), period)]
		if !ok {
			return nil
		}
		amount := decimal.NewFromFloat(tx.Amount)
		switch tx.Type {
		case models.TransactionIncome:
			b.income = b.income.Add(amount)
		case models.TransactionExpense:
			b.expense = b.expense.Add(amount)
		}
		return nil
	})
	if err != nil {
		return dto.GraphResult{}, err
	}

	var totalIncome, totalExpense decimal.Decimal
	result.IncomeData = make([]float64, len(result.Dates))
	result.ExpenseData = make([]float64, len(result.Dates))
	for i, label := range result.Dates {
		b := buckets[label]
		result.IncomeData[i] = b.income.InexactFloat64()
		result.ExpenseData[i] = b.expense.InexactFloat64()
		totalIncome = totalIncome.Add(b.income)
		totalExpense = totalExpense.Add(b.expense)
	}
	result.TotalIncome = totalIncome.InexactFloat64()
	result.TotalExpenses = totalExpense.InexactFloat64()
	return result, nil
}
