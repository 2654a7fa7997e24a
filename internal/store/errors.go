package store

import (
	"errors"

	"github.com/GregMSThompson/budget-backend/internal/errs"
)

// passThroughOr returns err unchanged when it already carries a domain error raised inside a
// transaction callback, and wraps it as a DatabaseError otherwise.
func passThroughOr(err error, operation, message string) error {
	var (
		validation *errs.ValidationError
		notFound   *errs.NotFoundError
		exists     *errs.AlreadyExistsError
		permission *errs.PermissionError
	)
	switch {
	case errors.As(err, &validation):
		return validation
	case errors.As(err, &notFound):
		return notFound
	case errors.As(err, &exists):
		return exists
	case errors.As(err, &permission):
		return permission
	}
	return errs.NewDatabaseError(operation, message, err)
}
