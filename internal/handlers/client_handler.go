package handlers

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"guvi-backend/internal/middleware"
	"guvi-backend/internal/services"
	"guvi-backend/pkg/utils"
)

type ClientHandler struct {
	Service *services.ClientService
}

func NewClientHandler(s *services.ClientService) *ClientHandler {
	return &ClientHandler{Service: s}
}

func (h *ClientHandler) List(w http.ResponseWriter, r *http.Request) {
	clients, err := h.Service.List(r.Context(), r.URL.Query().Get("status"))
	if err != nil {
		respondError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, clients)
}

func (h *ClientHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	client, err := h.Service.GetByID(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, client)
}

// Me returns the client record belonging to the calling login.
func (h *ClientHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())
	client, err := h.Service.GetByUserID(r.Context(), userID)
	if err != nil {
		respondError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, client)
}

func (h *ClientHandler) Approve(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	client, err := h.Service.Approve(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, client)
}

func (h *ClientHandler) Reject(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	client, err := h.Service.Reject(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, client)
}
