// Package middleware provides HTTP middleware for request validation and processing.
package middleware

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/hverma/stock-tracker-backend/internal/api/response"
	"github.com/hverma/stock-tracker-backend/internal/validation"
)

// ValidateAccountIDMiddleware validates that the accountId URL parameter is
// present and is a valid UUID. Returns 400 Bad Request otherwise.
//
// Example usage in router:
//
//	r.Route("/{accountId}", func(r chi.Router) {
//	    r.Use(middleware.ValidateAccountIDMiddleware)
//	    r.Get("/holdings", handler.Holdings)
//	})
func ValidateAccountIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		accountID := chi.URLParam(r, "accountId")

		if accountID == "" {
			response.RespondError(w, http.StatusBadRequest, "valid account ID is required", "")
			return
		}

		if err := validation.ValidateUUID(accountID); err != nil {
			response.RespondError(w, http.StatusBadRequest, "invalid account ID format", err.Error())
			return
		}

		next.ServeHTTP(w, r)
	})
}
