package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"guvi-backend/internal/middleware"
	"guvi-backend/internal/models"
	"guvi-backend/internal/services"
	"guvi-backend/pkg/utils"
)

type POHandler struct {
	Service *services.POService
}

func NewPOHandler(s *services.POService) *POHandler {
	return &POHandler{Service: s}
}

// GenerateClientPO raises the caller's purchase order for their budget.
func (h *POHandler) GenerateClientPO(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())

	po, err := h.Service.GenerateClientPO(r.Context(), userID)
	if err != nil {
		respondError(w, err)
		return
	}
	utils.JSON(w, http.StatusCreated, po)
}

// Process deducts the admin margin and issues the trainer PO.
func (h *POHandler) Process(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	userID, _ := middleware.GetUserIDFromContext(r.Context())

	var req models.ProcessPORequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && err != io.EOF {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	trainerPO, err := h.Service.ProcessClientPO(r.Context(), id, userID, req)
	if err != nil {
		respondError(w, err)
		return
	}
	utils.JSON(w, http.StatusCreated, trainerPO)
}

// Acknowledge lets the trainer confirm receipt of their PO.
func (h *POHandler) Acknowledge(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	userID, _ := middleware.GetUserIDFromContext(r.Context())

	po, err := h.Service.AcknowledgeTrainerPO(r.Context(), id, userID)
	if err != nil {
		respondError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, po)
}

func (h *POHandler) List(w http.ResponseWriter, r *http.Request) {
	role, _ := middleware.GetRoleFromContext(r.Context())
	userID, _ := middleware.GetUserIDFromContext(r.Context())

	switch role {
	case models.RoleClient:
		pos, err := h.Service.ListForClient(r.Context(), userID)
		if err != nil {
			respondError(w, err)
			return
		}
		utils.JSON(w, http.StatusOK, pos)
	case models.RoleTrainer:
		pos, err := h.Service.ListForTrainer(r.Context(), userID)
		if err != nil {
			respondError(w, err)
			return
		}
		utils.JSON(w, http.StatusOK, pos)
	default:
		pos, err := h.Service.List(r.Context(), r.URL.Query().Get("type"))
		if err != nil {
			respondError(w, err)
			return
		}
		utils.JSON(w, http.StatusOK, pos)
	}
}

func (h *POHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	po, err := h.Service.GetByID(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, po)
}
