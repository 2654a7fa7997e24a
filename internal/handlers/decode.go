package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/GregMSThompson/budget-backend/internal/errs"
)

// decodeJSON reads the request body into v. Any decode failure is the caller's fault.
func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return errs.NewValidationError("request body must be valid JSON: " + err.Error())
	}
	return nil
}
