package handlers

import (
	"net/http"

	"guvi-backend/internal/services"
	"guvi-backend/pkg/utils"
)

type DashboardHandler struct {
	Service *services.DashboardService
}

func NewDashboardHandler(s *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{Service: s}
}

func (h *DashboardHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Service.GetStats(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, stats)
}
