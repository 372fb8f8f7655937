package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/hverma/stock-tracker-backend/internal/api/middleware"
)

func newRequestWithAccountID(accountID string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	rctx := chi.NewRouteContext()
	if accountID != "" {
		rctx.URLParams.Add("accountId", accountID)
	}
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func TestValidateAccountIDMiddleware(t *testing.T) {
	t.Run("allows a valid UUID", func(t *testing.T) {
		handlerCalled := false
		mw := middleware.ValidateAccountIDMiddleware(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			handlerCalled = true
			w.WriteHeader(http.StatusOK)
		}))

		w := httptest.NewRecorder()
		mw.ServeHTTP(w, newRequestWithAccountID("b5e9b0a3-4d8a-4f6e-9d3c-2f1a8c7e6b5d"))

		if !handlerCalled {
			t.Error("Expected handler to complete.")
		}
		if w.Code != http.StatusOK {
			t.Errorf("Expected 200, got %d", w.Code)
		}
	})

	t.Run("rejects a malformed UUID", func(t *testing.T) {
		handlerCalled := false
		mw := middleware.ValidateAccountIDMiddleware(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			handlerCalled = true
		}))

		w := httptest.NewRecorder()
		mw.ServeHTTP(w, newRequestWithAccountID("not-a-uuid"))

		if handlerCalled {
			t.Error("Expected request not to complete.")
		}
		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d", w.Code)
		}
	})

	t.Run("rejects a missing account ID", func(t *testing.T) {
		handlerCalled := false
		mw := middleware.ValidateAccountIDMiddleware(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			handlerCalled = true
		}))

		w := httptest.NewRecorder()
		mw.ServeHTTP(w, newRequestWithAccountID(""))

		if handlerCalled {
			t.Error("Expected request not to complete.")
		}
		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d", w.Code)
		}
	})
}
