package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/hverma/stock-tracker-backend/internal/api/handlers"
	"github.com/hverma/stock-tracker-backend/internal/api/request"
	"github.com/hverma/stock-tracker-backend/internal/model"
	"github.com/hverma/stock-tracker-backend/internal/testutil"
)

func TestHoldingHandler_CreateHolding(t *testing.T) {
	t.Run("creates a holding and returns 201", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := handlers.NewHoldingHandler(testutil.NewTestHoldingService(t, db))
		accountID := testutil.NewAccountID()

		body := request.CreateHoldingRequest{Symbol: "AAPL", DisplayName: "Apple", Quantity: 10}
		req := testutil.NewRequestWithURLParamsAndBody(
			http.MethodPost,
			"/api/accounts/"+accountID+"/holdings",
			map[string]string{"accountId": accountID},
			body,
		)
		w := httptest.NewRecorder()
		handler.CreateHolding(w, req)

		if w.Code != http.StatusCreated {
			t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
		}

		var holding model.Holding
		testutil.DecodeJSON(t, w, &holding)
		if holding.Symbol != "AAPL" || holding.Quantity != 10 {
			t.Errorf("Expected AAPL/10, got %s/%v", holding.Symbol, holding.Quantity)
		}
	})

	t.Run("returns 409 for a duplicate symbol", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := handlers.NewHoldingHandler(testutil.NewTestHoldingService(t, db))
		accountID := testutil.NewAccountID()
		testutil.CreateHolding(t, db, accountID, "AAPL", "Apple", 10)

		body := request.CreateHoldingRequest{Symbol: "AAPL", DisplayName: "Apple", Quantity: 5}
		req := testutil.NewRequestWithURLParamsAndBody(
			http.MethodPost,
			"/api/accounts/"+accountID+"/holdings",
			map[string]string{"accountId": accountID},
			body,
		)
		w := httptest.NewRecorder()
		handler.CreateHolding(w, req)

		if w.Code != http.StatusConflict {
			t.Fatalf("Expected 409, got %d", w.Code)
		}
	})

	t.Run("returns 400 for invalid quantity", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := handlers.NewHoldingHandler(testutil.NewTestHoldingService(t, db))
		accountID := testutil.NewAccountID()

		body := request.CreateHoldingRequest{Symbol: "AAPL", Quantity: -1}
		req := testutil.NewRequestWithURLParamsAndBody(
			http.MethodPost,
			"/api/accounts/"+accountID+"/holdings",
			map[string]string{"accountId": accountID},
			body,
		)
		w := httptest.NewRecorder()
		handler.CreateHolding(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("Expected 400, got %d", w.Code)
		}
	})
}

func TestHoldingHandler_Holdings(t *testing.T) {
	t.Run("lists the account's holdings", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := handlers.NewHoldingHandler(testutil.NewTestHoldingService(t, db))
		accountID := testutil.NewAccountID()
		testutil.CreateHolding(t, db, accountID, "AAPL", "Apple", 10)
		testutil.CreateHolding(t, db, accountID, "MSFT", "Microsoft", 5)
		testutil.CreateHolding(t, db, testutil.NewAccountID(), "GOOG", "Alphabet", 2)

		req := testutil.NewRequestWithURLParams(
			http.MethodGet,
			"/api/accounts/"+accountID+"/holdings",
			map[string]string{"accountId": accountID},
		)
		w := httptest.NewRecorder()
		handler.Holdings(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d", w.Code)
		}

		var holdings []model.Holding
		testutil.DecodeJSON(t, w, &holdings)
		if len(holdings) != 2 {
			t.Errorf("Expected 2 holdings, got %d", len(holdings))
		}
	})
}

func TestHoldingHandler_UpdateHolding(t *testing.T) {
	t.Run("updates the quantity", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := handlers.NewHoldingHandler(testutil.NewTestHoldingService(t, db))
		accountID := testutil.NewAccountID()
		holding := testutil.CreateHolding(t, db, accountID, "AAPL", "Apple", 10)

		quantity := 15.0
		body := request.UpdateHoldingRequest{Quantity: &quantity}
		req := testutil.NewRequestWithURLParamsAndBody(
			http.MethodPut,
			"/api/accounts/"+accountID+"/holdings/"+holding.ID,
			map[string]string{"accountId": accountID, "holdingId": holding.ID},
			body,
		)
		w := httptest.NewRecorder()
		handler.UpdateHolding(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var updated model.Holding
		testutil.DecodeJSON(t, w, &updated)
		if updated.Quantity != 15 {
			t.Errorf("Expected quantity 15, got %v", updated.Quantity)
		}
	})

	t.Run("requires a quantity field", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := handlers.NewHoldingHandler(testutil.NewTestHoldingService(t, db))
		accountID := testutil.NewAccountID()
		holding := testutil.CreateHolding(t, db, accountID, "AAPL", "Apple", 10)

		req := testutil.NewRequestWithURLParamsAndBody(
			http.MethodPut,
			"/api/accounts/"+accountID+"/holdings/"+holding.ID,
			map[string]string{"accountId": accountID, "holdingId": holding.ID},
			request.UpdateHoldingRequest{},
		)
		w := httptest.NewRecorder()
		handler.UpdateHolding(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("Expected 400, got %d", w.Code)
		}
	})

	t.Run("returns 404 for an unknown holding", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := handlers.NewHoldingHandler(testutil.NewTestHoldingService(t, db))
		accountID := testutil.NewAccountID()

		quantity := 15.0
		req := testutil.NewRequestWithURLParamsAndBody(
			http.MethodPut,
			"/api/accounts/"+accountID+"/holdings/"+testutil.NewAccountID(),
			map[string]string{"accountId": accountID, "holdingId": testutil.NewAccountID()},
			request.UpdateHoldingRequest{Quantity: &quantity},
		)
		w := httptest.NewRecorder()
		handler.UpdateHolding(w, req)

		if w.Code != http.StatusNotFound {
			t.Fatalf("Expected 404, got %d", w.Code)
		}
	})
}

func TestHoldingHandler_DeleteHolding(t *testing.T) {
	t.Run("deletes and returns 204", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := handlers.NewHoldingHandler(testutil.NewTestHoldingService(t, db))
		accountID := testutil.NewAccountID()
		holding := testutil.CreateHolding(t, db, accountID, "AAPL", "Apple", 10)

		req := testutil.NewRequestWithURLParams(
			http.MethodDelete,
			"/api/accounts/"+accountID+"/holdings/"+holding.ID,
			map[string]string{"accountId": accountID, "holdingId": holding.ID},
		)
		w := httptest.NewRecorder()
		handler.DeleteHolding(w, req)

		if w.Code != http.StatusNoContent {
			t.Fatalf("Expected 204, got %d", w.Code)
		}
	})

	t.Run("returns 404 for an unknown holding", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := handlers.NewHoldingHandler(testutil.NewTestHoldingService(t, db))
		accountID := testutil.NewAccountID()

		req := testutil.NewRequestWithURLParams(
			http.MethodDelete,
			"/api/accounts/"+accountID+"/holdings/"+testutil.NewAccountID(),
			map[string]string{"accountId": accountID, "holdingId": testutil.NewAccountID()},
		)
		w := httptest.NewRecorder()
		handler.DeleteHolding(w, req)

		if w.Code != http.StatusNotFound {
			t.Fatalf("Expected 404, got %d", w.Code)
		}
	})
}
