package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hverma/stock-tracker-backend/internal/api/request"
	"github.com/hverma/stock-tracker-backend/internal/api/response"
	"github.com/hverma/stock-tracker-backend/internal/apperrors"
	"github.com/hverma/stock-tracker-backend/internal/service"
)

// HoldingHandler handles holding-related HTTP requests
type HoldingHandler struct {
	holdingService *service.HoldingService
}

// NewHoldingHandler creates a new HoldingHandler
func NewHoldingHandler(holdingService *service.HoldingService) *HoldingHandler {
	return &HoldingHandler{holdingService: holdingService}
}

// Holdings returns all holdings tracked by the account
func (h *HoldingHandler) Holdings(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "accountId")

	holdings, err := h.holdingService.ListHoldings(accountID)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to retrieve holdings", err.Error())
		return
	}

	respondJSON(w, http.StatusOK, holdings)
}

// CreateHolding adds a new tracked position to the account
func (h *HoldingHandler) CreateHolding(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "accountId")

	var req request.CreateHoldingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	holding, err := h.holdingService.AddHolding(accountID, req.Symbol, req.DisplayName, req.Quantity)
	switch {
	case errors.Is(err, apperrors.ErrDuplicateHolding):
		response.RespondError(w, http.StatusConflict, "holding already exists", err.Error())
		return
	case errors.Is(err, apperrors.ErrInvalidQuantity), errors.Is(err, apperrors.ErrMissingRequiredField):
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	case err != nil:
		response.RespondError(w, http.StatusInternalServerError, "failed to create holding", err.Error())
		return
	}

	respondJSON(w, http.StatusCreated, holding)
}

// UpdateHolding mutates the quantity of an existing holding
func (h *HoldingHandler) UpdateHolding(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "accountId")
	holdingID := chi.URLParam(r, "holdingId")

	var req request.UpdateHoldingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if req.Quantity == nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", "quantity is required")
		return
	}

	holding, err := h.holdingService.UpdateQuantity(accountID, holdingID, *req.Quantity)
	switch {
	case errors.Is(err, apperrors.ErrHoldingNotFound):
		response.RespondError(w, http.StatusNotFound, "holding not found", "")
		return
	case errors.Is(err, apperrors.ErrInvalidQuantity):
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	case err != nil:
		response.RespondError(w, http.StatusInternalServerError, "failed to update holding", err.Error())
		return
	}

	respondJSON(w, http.StatusOK, holding)
}

// DeleteHolding removes a holding from the account
func (h *HoldingHandler) DeleteHolding(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "accountId")
	holdingID := chi.URLParam(r, "holdingId")

	err := h.holdingService.RemoveHolding(accountID, holdingID)
	switch {
	case errors.Is(err, apperrors.ErrHoldingNotFound):
		response.RespondError(w, http.StatusNotFound, "holding not found", "")
		return
	case err != nil:
		response.RespondError(w, http.StatusInternalServerError, "failed to delete holding", err.Error())
		return
	}

	respondJSON(w, http.StatusNoContent, nil)
}
