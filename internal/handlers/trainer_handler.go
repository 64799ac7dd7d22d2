package handlers

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"guvi-backend/internal/middleware"
	"guvi-backend/internal/services"
	"guvi-backend/pkg/utils"
)

type TrainerHandler struct {
	Service *services.TrainerService
}

func NewTrainerHandler(s *services.TrainerService) *TrainerHandler {
	return &TrainerHandler{Service: s}
}

func (h *TrainerHandler) List(w http.ResponseWriter, r *http.Request) {
	trainers, err := h.Service.List(r.Context(), r.URL.Query().Get("status"))
	if err != nil {
		respondError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, trainers)
}

func (h *TrainerHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	trainer, err := h.Service.GetByID(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, trainer)
}

// Me returns the trainer record belonging to the calling login.
func (h *TrainerHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())
	trainer, err := h.Service.GetByUserID(r.Context(), userID)
	if err != nil {
		respondError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, trainer)
}

func (h *TrainerHandler) Approve(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	trainer, err := h.Service.Approve(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, trainer)
}

func (h *TrainerHandler) Reject(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	trainer, err := h.Service.Reject(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, trainer)
}
