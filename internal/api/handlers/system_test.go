package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/hverma/stock-tracker-backend/internal/api/handlers"
	"github.com/hverma/stock-tracker-backend/internal/netcheck"
	"github.com/hverma/stock-tracker-backend/internal/service"
	"github.com/hverma/stock-tracker-backend/internal/testutil"
)

func TestSystemHandler_Health(t *testing.T) {
	t.Run("reports healthy with a live database", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := handlers.NewSystemHandler(service.NewSystemService(db), netcheck.NewChecker("localhost", "http://localhost"))

		req := httptest.NewRequest(http.MethodGet, "/api/system/health", nil)
		w := httptest.NewRecorder()
		handler.Health(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d", w.Code)
		}

		var resp handlers.HealthResponse
		testutil.DecodeJSON(t, w, &resp)
		if resp.Status != "healthy" || resp.Database != "connected" {
			t.Errorf("Expected healthy/connected, got %s/%s", resp.Status, resp.Database)
		}
	})

	t.Run("reports unhealthy when the database is closed", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		db.Close()
		handler := handlers.NewSystemHandler(service.NewSystemService(db), netcheck.NewChecker("localhost", "http://localhost"))

		req := httptest.NewRequest(http.MethodGet, "/api/system/health", nil)
		w := httptest.NewRecorder()
		handler.Health(w, req)

		if w.Code != http.StatusServiceUnavailable {
			t.Fatalf("Expected 503, got %d", w.Code)
		}

		var resp handlers.HealthResponse
		testutil.DecodeJSON(t, w, &resp)
		if resp.Status != "unhealthy" {
			t.Errorf("Expected unhealthy, got %s", resp.Status)
		}
	})
}

func TestSystemHandler_Connectivity(t *testing.T) {
	t.Run("reports ok when both probes succeed", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))
		defer upstream.Close()

		handler := handlers.NewSystemHandler(service.NewSystemService(db), netcheck.NewChecker("localhost", upstream.URL))

		req := httptest.NewRequest(http.MethodGet, "/api/system/connectivity", nil)
		w := httptest.NewRecorder()
		handler.Connectivity(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var resp handlers.ConnectivityResponse
		testutil.DecodeJSON(t, w, &resp)
		if resp.Internet != "ok" || resp.API != "ok" {
			t.Errorf("Expected ok/ok, got %s/%s", resp.Internet, resp.API)
		}
	})

	t.Run("reports unreachable when the provider probe fails", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		upstream.Close()

		handler := handlers.NewSystemHandler(service.NewSystemService(db), netcheck.NewChecker("localhost", upstream.URL))

		req := httptest.NewRequest(http.MethodGet, "/api/system/connectivity", nil)
		w := httptest.NewRecorder()
		handler.Connectivity(w, req)

		if w.Code != http.StatusServiceUnavailable {
			t.Fatalf("Expected 503, got %d", w.Code)
		}

		var resp handlers.ConnectivityResponse
		testutil.DecodeJSON(t, w, &resp)
		if resp.API != "unreachable" {
			t.Errorf("Expected API unreachable, got %s", resp.API)
		}
	})
}
