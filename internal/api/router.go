package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/hverma/stock-tracker-backend/internal/api/handlers"
	custommiddleware "github.com/hverma/stock-tracker-backend/internal/api/middleware"
	"github.com/hverma/stock-tracker-backend/internal/config"
	"github.com/hverma/stock-tracker-backend/internal/netcheck"
	"github.com/hverma/stock-tracker-backend/internal/service"
)

// NewRouter creates and configures the HTTP router
func NewRouter(
	systemService *service.SystemService,
	holdingService *service.HoldingService,
	valuationService *service.ValuationService,
	checker *netcheck.Checker,
	cfg *config.Config,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommiddleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS middleware
	corsMiddleware := custommiddleware.NewCORS(cfg.CORS.AllowedOrigins)
	r.Use(corsMiddleware.Handler)

	// API routes
	r.Route("/api", func(r chi.Router) {
		// System namespace
		r.Route("/system", func(r chi.Router) {
			systemHandler := handlers.NewSystemHandler(systemService, checker)
			r.Get("/health", systemHandler.Health)
			r.Get("/connectivity", systemHandler.Connectivity)
		})

		r.Route("/accounts/{accountId}", func(r chi.Router) {
			r.Use(custommiddleware.ValidateAccountIDMiddleware)

			holdingHandler := handlers.NewHoldingHandler(holdingService)
			valuationHandler := handlers.NewValuationHandler(valuationService)

			r.Get("/holdings", holdingHandler.Holdings)
			r.Get("/totals/latest", valuationHandler.LatestTotal)
			r.Get("/totals", valuationHandler.TotalHistory)
			r.Get("/snapshots", valuationHandler.Snapshots)
			r.Get("/compare", valuationHandler.Compare)

			// Mutating routes require the internal API key
			r.Group(func(r chi.Router) {
				r.Use(custommiddleware.APIKeyMiddleware)

				r.Post("/holdings", holdingHandler.CreateHolding)
				r.Put("/holdings/{holdingId}", holdingHandler.UpdateHolding)
				r.Delete("/holdings/{holdingId}", holdingHandler.DeleteHolding)
				r.Post("/refresh", valuationHandler.Refresh)
			})
		})
	})

	return r
}
