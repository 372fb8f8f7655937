package handlers

import (
	"net/http"

	"github.com/hverma/stock-tracker-backend/internal/netcheck"
	"github.com/hverma/stock-tracker-backend/internal/service"
)

// SystemHandler handles system-related HTTP requests
type SystemHandler struct {
	systemService *service.SystemService
	checker       *netcheck.Checker
}

// NewSystemHandler creates a new SystemHandler
func NewSystemHandler(systemService *service.SystemService, checker *netcheck.Checker) *SystemHandler {
	return &SystemHandler{
		systemService: systemService,
		checker:       checker,
	}
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Error    string `json:"error,omitempty"`
}

// Health checks the health of the system and database connectivity
func (h *SystemHandler) Health(w http.ResponseWriter, r *http.Request) {
	// Check database health
	if err := h.systemService.CheckHealth(); err != nil {
		response := HealthResponse{
			Status:   "unhealthy",
			Database: "disconnected",
			Error:    err.Error(),
		}
		respondJSON(w, http.StatusServiceUnavailable, response)
		return
	}

	// System is healthy
	response := HealthResponse{
		Status:   "healthy",
		Database: "connected",
	}
	respondJSON(w, http.StatusOK, response)
}

// ConnectivityResponse reports the state of the internet and market-data probes.
type ConnectivityResponse struct {
	Internet string `json:"internet"`
	API      string `json:"api"`
	Error    string `json:"error,omitempty"`
}

// Connectivity probes general internet access and market-data provider
// reachability. A failed probe reports "unreachable" with the cause; the
// valuation endpoints do not depend on this check.
func (h *SystemHandler) Connectivity(w http.ResponseWriter, r *http.Request) {
	resp := ConnectivityResponse{Internet: "ok", API: "ok"}

	if err := h.checker.CheckInternet(r.Context()); err != nil {
		resp.Internet = "unreachable"
		resp.Error = err.Error()
		respondJSON(w, http.StatusServiceUnavailable, resp)
		return
	}

	if err := h.checker.CheckAPI(r.Context()); err != nil {
		resp.API = "unreachable"
		resp.Error = err.Error()
		respondJSON(w, http.StatusServiceUnavailable, resp)
		return
	}

	respondJSON(w, http.StatusOK, resp)
}
