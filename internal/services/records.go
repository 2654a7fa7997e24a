package services

import (
	"context"
	"time"

	"github.com/GregMSThompson/budget-backend/internal/calendar"
	"github.com/GregMSThompson/budget-backend/internal/dto"
	"github.com/GregMSThompson/budget-backend/internal/errs"
	"github.com/GregMSThompson/budget-backend/internal/models"
	"github.com/GregMSThompson/budget-backend/pkg/logger"
)

// transactionReader streams a user's stored transactions. Every read-side service consumes it.
type transactionReader interface {
	Query(ctx context.Context, uid string, q dto.TransactionQuery, handle func(*models.Transaction) error) error
}

// instantRange is an inclusive window. A zero bound is open.
type instantRange struct {
	from time.Time
	to   time.Time
}

func (r instantRange) contains(t time.Time) bool {
	if !r.from.IsZero() && t.Before(r.from) {
		return false
	}
	if !r.to.IsZero() && t.After(r.to) {
		return false
	}
	return true
}

// requiredRange parses both ends of a day range and widens it to whole days in loc.
func requiredRange(start, end string, loc *time.Location) (instantRange, error) {
	if start == "" || end == "" {
		return instantRange{}, errs.NewValidationError("startDate and endDate are required")
	}
	return optionalRange(start, end, loc)
}

// optionalRange parses whichever ends are present. Each end covers its whole calendar day.
func optionalRange(start, end string, loc *time.Location) (instantRange, error) {
	var r instantRange
	if start != "" {
		t, err := calendar.ParseDate(start, loc)
		if err != nil {
			return r, errs.NewValidationError("startDate must be YYYY-MM-DD or an RFC 3339 timestamp")
		}
		r.from, _ = calendar.DayBounds(t, t, loc)
	}
	if end != "" {
		t, err := calendar.ParseDate(end, loc)
		if err != nil {
			return r, errs.NewValidationError("endDate must be YYYY-MM-DD or an RFC 3339 timestamp")
		}
		_, r.to = calendar.DayBounds(t, t, loc)
	}
	if !r.from.IsZero() && !r.to.IsZero() && r.to.Before(r.from) {
		return r, errs.NewValidationError("endDate must not be before startDate")
	}
	return r, nil
}

// eachInRange hands handle every transaction whose createdAt decodes and falls inside r, along
// with the decoded instant. Zoneless strings are read in loc. Records with a malformed createdAt
// are logged and skipped.
func eachInRange(ctx context.Context, txs transactionReader, loc *time.Location, uid string, q dto.TransactionQuery, r instantRange, handle func(*models.Transaction, time.Time) error) error {
	log := logger.FromContext(ctx)
	skipped := 0

	err := txs.Query(ctx, uid, q, func(tx *models.Transaction) error {
		at, err := tx.CreatedAt.TimeIn(loc)
		if err != nil {
			skipped++
			log.Warn("skipping transaction with malformed createdAt",
				"transaction_id", tx.TransactionID, "encoding", tx.CreatedAt.Kind().String())
			return nil
		}
		if !r.contains(at) {
			return nil
		}
		return handle(tx, at)
	})
	if err != nil {
		return err
	}
	if skipped > 0 {
		log.Info("transactions skipped", "count", skipped)
	}
	return nil
}
