package services

import (
	"cmp"
	"context"
	"slices"
	"time"

	"github.com/shopspring/decimal"

	"github.com/GregMSThompson/budget-backend/internal/categories"
	"github.com/GregMSThompson/budget-backend/internal/dto"
	"github.com/GregMSThompson/budget-backend/internal/models"
)

const uncategorized = "Uncategorized"

var hundred = decimal.NewFromInt(100)

type categorySummaryService struct {
	txs    transactionReader
	styles *categories.Table
	loc    *time.Location
}

func NewCategorySummaryService(txs transactionReader, styles *categories.Table, loc *time.Location) *categorySummaryService {
	if loc == nil {
		loc = time.UTC
	}
	return &categorySummaryService{txs: txs, styles: styles, loc: loc}
}

// categoryTotals accumulates expenses per category.
type categoryTotals struct {
	order  []string
	byName map[string]*categoryTotal
	total  decimal.Decimal
	count  int
}

type categoryTotal struct {
	amount decimal.Decimal
	count  int
	txs    []models.Transaction
}

func newCategoryTotals() *categoryTotals {
	return &categoryTotals{byName: map[string]*categoryTotal{}}
}

func (c *categoryTotals) add(tx *models.Transaction, keep bool) {
	key := tx.Category
	if key == "" {
		key = uncategorized
	}
	ct, ok := c.byName[key]
	if !ok {
		ct = &categoryTotal{}
		c.byName[key] = ct
		c.order = append(c.order, key)
	}
	amount := decimal.NewFromFloat(tx.Amount)
	ct.amount = ct.amount.Add(amount)
	ct.count++
	if keep {
		ct.txs = append(ct.txs, *tx)
	}
	c.total = c.total.Add(amount)
	c.count++
}

// sorted returns category names by amount, largest first. Equal amounts sort by name.
func (c *categoryTotals) sorted() []string {
	names := slices.Clone(c.order)
	slices.SortFunc(names, func(a, b string) int {
		if d := c.byName[b].amount.Cmp(c.byName[a].amount); d != 0 {
			return d
		}
		return cmp.Compare(a, b)
	})
	return names
}

func (c *categoryTotals) items(styles *categories.Table) []dto.CategorySummaryItem {
	names := c.sorted()
	out := make([]dto.CategorySummaryItem, 0, len(names))
	for _, name := range names {
		ct := c.byName[name]
		item := dto.CategorySummaryItem{
			Category: name,
			Amount:   ct.amount.InexactFloat64(),
			Count:    ct.count,
		}
		if c.total.IsPositive() {
			item.Percentage = ct.amount.Div(c.total).Mul(hundred).InexactFloat64()
		}
		if styles != nil {
			if style, ok := styles.Lookup(name); ok {
				item.Icon = style.Icon
				item.Color = style.Color
			}
		}
		out = append(out, item)
	}
	return out
}

// Summarize groups the user's expenses by category. Percentages are of the total and are all zero
// when the total is zero.
func (s *categorySummaryService) Summarize(ctx context.Context, uid string, rng dto.DateRange) (dto.CategorySummaryResult, error) {
	totals, err := s.collect(ctx, uid, rng, false)
	if err != nil {
		return dto.CategorySummaryResult{}, err
	}
	items := totals.items(s.styles)
	return dto.CategorySummaryResult{
		Categories:    items,
		TotalExpenses: totals.total.InexactFloat64(),
		CategoryCount: len(items),
	}, nil
}

// CategoryTransactions is Summarize with each category's transactions attached.
func (s *categorySummaryService) CategoryTransactions(ctx context.Context, uid string, rng dto.DateRange) (dto.CategoryTransactionsResult, error) {
	totals, err := s.collect(ctx, uid, rng, true)
	if err != nil {
		return dto.CategoryTransactionsResult{}, err
	}

	names := totals.sorted()
	result := dto.CategoryTransactionsResult{
		CategorySpending:  make([]dto.CategoryTransactionsItem, 0, len(names)),
		TotalCategories:   len(names),
		TotalTransactions: totals.count,
		TotalSpending:     totals.total.InexactFloat64(),
	}
	for _, name := range names {
		ct := totals.byName[name]
		result.CategorySpending = append(result.CategorySpending, dto.CategoryTransactionsItem{
			Category:         name,
			TotalAmount:      ct.amount.InexactFloat64(),
			TransactionCount: ct.count,
			Transactions:     ct.txs,
		})
	}
	return result, nil
}

func (s *categorySummaryService) collect(ctx context.Context, uid string, rng dto.DateRange, keep bool) (*categoryTotals, error) {
	r, err := optionalRange(rng.StartDate, rng.EndDate, s.loc)
	if err != nil {
		return nil, err
	}
	expense := models.TransactionExpense
	totals := newCategoryTotals()
	err = eachInRange(ctx, s.txs, s.loc, uid, dto.TransactionQuery{Type: &expense}, r, func(tx *models.Transaction, _ time.Time) error {
		totals.add(tx, keep)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return totals, nil
}
