package handlers

import (
	"encoding/json"
	"net/http"

	"guvi-backend/internal/models"
	"guvi-backend/internal/services"
	"guvi-backend/pkg/utils"
)

type AuthHandler struct {
	Users    *services.UserService
	Clients  *services.ClientService
	Trainers *services.TrainerService
}

func NewAuthHandler(users *services.UserService, clients *services.ClientService, trainers *services.TrainerService) *AuthHandler {
	return &AuthHandler{Users: users, Clients: clients, Trainers: trainers}
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	resp, err := h.Users.Login(r.Context(), req)
	if err != nil {
		respondError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, resp)
}

func (h *AuthHandler) RegisterClient(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterClientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	client, err := h.Clients.Register(r.Context(), req)
	if err != nil {
		respondError(w, err)
		return
	}
	utils.JSON(w, http.StatusCreated, client)
}

func (h *AuthHandler) RegisterTrainer(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterTrainerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	trainer, err := h.Trainers.Register(r.Context(), req)
	if err != nil {
		respondError(w, err)
		return
	}
	utils.JSON(w, http.StatusCreated, trainer)
}
