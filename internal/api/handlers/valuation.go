package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hverma/stock-tracker-backend/internal/api/response"
	"github.com/hverma/stock-tracker-backend/internal/apperrors"
	"github.com/hverma/stock-tracker-backend/internal/service"
)

// ValuationHandler handles valuation refresh and daily-total HTTP requests
type ValuationHandler struct {
	valuationService *service.ValuationService
}

// NewValuationHandler creates a new ValuationHandler
func NewValuationHandler(valuationService *service.ValuationService) *ValuationHandler {
	return &ValuationHandler{valuationService: valuationService}
}

// Refresh triggers an on-demand valuation run for the account.
//
// Endpoint: POST /api/accounts/{accountId}/refresh
// Response: 200 OK with the reconciled daily total and per-holding snapshots
// Error: 502 Bad Gateway when the conversion rate is unavailable
func (h *ValuationHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "accountId")

	result, err := h.valuationService.Reconcile(r.Context(), accountID)
	switch {
	case errors.Is(err, apperrors.ErrRateUnavailable):
		response.RespondError(w, http.StatusBadGateway, "conversion rate unavailable", err.Error())
		return
	case errors.Is(err, apperrors.ErrPriceUnavailable):
		response.RespondError(w, http.StatusBadGateway, "price unavailable", err.Error())
		return
	case err != nil:
		response.RespondError(w, http.StatusInternalServerError, "refresh failed", err.Error())
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// LatestTotal returns the most recent daily total for the account
func (h *ValuationHandler) LatestTotal(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "accountId")

	total, err := h.valuationService.LatestTotal(accountID)
	switch {
	case errors.Is(err, apperrors.ErrTotalNotFound):
		response.RespondError(w, http.StatusNotFound, "no totals recorded", "")
		return
	case err != nil:
		response.RespondError(w, http.StatusInternalServerError, "failed to retrieve total", err.Error())
		return
	}

	respondJSON(w, http.StatusOK, total)
}

// TotalHistory returns daily totals within a date range, for charting
func (h *ValuationHandler) TotalHistory(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "accountId")

	startDay := r.URL.Query().Get("start_date")
	endDay := r.URL.Query().Get("end_date")
	if startDay == "" || endDay == "" {
		response.RespondError(w, http.StatusBadRequest, "start_date and end_date are required", "")
		return
	}

	totals, err := h.valuationService.TotalHistory(accountID, startDay, endDay)
	switch {
	case errors.Is(err, apperrors.ErrInvalidDateRange):
		response.RespondError(w, http.StatusBadRequest, "invalid date range", err.Error())
		return
	case err != nil:
		response.RespondError(w, http.StatusInternalServerError, "failed to retrieve history", err.Error())
		return
	}

	respondJSON(w, http.StatusOK, totals)
}

// Snapshots returns the per-holding valuation snapshots recorded for a day
func (h *ValuationHandler) Snapshots(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "accountId")

	day := r.URL.Query().Get("day")
	if day == "" {
		response.RespondError(w, http.StatusBadRequest, "day is required", "")
		return
	}

	snapshots, err := h.valuationService.SnapshotsForDay(accountID, day)
	switch {
	case errors.Is(err, apperrors.ErrInvalidDateRange):
		response.RespondError(w, http.StatusBadRequest, "invalid day", err.Error())
		return
	case err != nil:
		response.RespondError(w, http.StatusInternalServerError, "failed to retrieve snapshots", err.Error())
		return
	}

	respondJSON(w, http.StatusOK, snapshots)
}

// Compare returns the totals recorded at exactly two days and their difference.
//
// Endpoint: GET /api/accounts/{accountId}/compare?day1=YYYY-MM-DD&day2=YYYY-MM-DD
// Error: 404 Not Found when either day has no recorded total
func (h *ValuationHandler) Compare(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "accountId")

	day1 := r.URL.Query().Get("day1")
	day2 := r.URL.Query().Get("day2")
	if day1 == "" || day2 == "" {
		response.RespondError(w, http.StatusBadRequest, "day1 and day2 are required", "")
		return
	}

	comparison, err := h.valuationService.Compare(r.Context(), accountID, day1, day2)
	switch {
	case errors.Is(err, apperrors.ErrTotalNotFound):
		response.RespondError(w, http.StatusNotFound, "no total recorded for requested day", "")
		return
	case errors.Is(err, apperrors.ErrInvalidDateRange):
		response.RespondError(w, http.StatusBadRequest, "invalid day", err.Error())
		return
	case err != nil:
		response.RespondError(w, http.StatusInternalServerError, "comparison failed", err.Error())
		return
	}

	respondJSON(w, http.StatusOK, comparison)
}
