package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"guvi-backend/internal/models"
	"guvi-backend/internal/services"
	"guvi-backend/pkg/utils"
)

type SystemSettingHandler struct {
	Service *services.SystemSettingService
}

func NewSystemSettingHandler(s *services.SystemSettingService) *SystemSettingHandler {
	return &SystemSettingHandler{Service: s}
}

func (h *SystemSettingHandler) List(w http.ResponseWriter, r *http.Request) {
	settings, err := h.Service.List(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, settings)
}

func (h *SystemSettingHandler) Update(w http.ResponseWriter, r *http.Request) {
	key := mux.Vars(r)["key"]

	var req models.UpdateSettingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	setting, err := h.Service.Update(r.Context(), key, req.SettingValue)
	if err != nil {
		respondError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, setting)
}
