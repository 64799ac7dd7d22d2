package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"guvi-backend/internal/middleware"
	"guvi-backend/internal/models"
	"guvi-backend/internal/services"
	"guvi-backend/pkg/utils"
)

type TrainingHandler struct {
	Service *services.TrainingService
}

func NewTrainingHandler(s *services.TrainingService) *TrainingHandler {
	return &TrainingHandler{Service: s}
}

// CreateMapping maps an approved client to an approved trainer.
func (h *TrainingHandler) CreateMapping(w http.ResponseWriter, r *http.Request) {
	var req models.CreateMappingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	training, err := h.Service.CreateMapping(r.Context(), req)
	if err != nil {
		respondError(w, err)
		return
	}
	utils.JSON(w, http.StatusCreated, training)
}

func (h *TrainingHandler) List(w http.ResponseWriter, r *http.Request) {
	role, _ := middleware.GetRoleFromContext(r.Context())
	userID, _ := middleware.GetUserIDFromContext(r.Context())

	var (
		trainings []models.TrainingWithNames
		err       error
	)
	switch role {
	case models.RoleClient:
		trainings, err = h.Service.ListForClient(r.Context(), userID)
	case models.RoleTrainer:
		trainings, err = h.Service.ListForTrainer(r.Context(), userID)
	default:
		trainings, err = h.Service.List(r.Context())
	}
	if err != nil {
		respondError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, trainings)
}

func (h *TrainingHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	training, err := h.Service.GetByID(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, training)
}

func (h *TrainingHandler) GetMilestones(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	milestones, err := h.Service.GetMilestones(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, milestones)
}

// CompleteMilestone is the client half of milestone sign-off.
func (h *TrainingHandler) CompleteMilestone(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	userID, _ := middleware.GetUserIDFromContext(r.Context())

	milestone, err := h.Service.CompleteMilestone(r.Context(), id, userID)
	if err != nil {
		respondError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, milestone)
}

// VerifyMilestone is the trainer half of milestone sign-off.
func (h *TrainingHandler) VerifyMilestone(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	userID, _ := middleware.GetUserIDFromContext(r.Context())

	training, err := h.Service.VerifyMilestone(r.Context(), id, userID)
	if err != nil {
		respondError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, training)
}

// VerifyTraining records the client's final sign-off.
func (h *TrainingHandler) VerifyTraining(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	userID, _ := middleware.GetUserIDFromContext(r.Context())

	training, err := h.Service.VerifyTraining(r.Context(), id, userID)
	if err != nil {
		respondError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, training)
}
