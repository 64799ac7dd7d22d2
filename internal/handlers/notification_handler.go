package handlers

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"guvi-backend/internal/middleware"
	"guvi-backend/internal/services"
	"guvi-backend/pkg/utils"
)

type NotificationHandler struct {
	Service *services.NotificationService
}

func NewNotificationHandler(s *services.NotificationService) *NotificationHandler {
	return &NotificationHandler{Service: s}
}

func (h *NotificationHandler) ListUnread(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())
	role, _ := middleware.GetRoleFromContext(r.Context())

	notifications, err := h.Service.ListUnread(r.Context(), userID, role)
	if err != nil {
		respondError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, notifications)
}

func (h *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	userID, _ := middleware.GetUserIDFromContext(r.Context())
	role, _ := middleware.GetRoleFromContext(r.Context())

	if err := h.Service.MarkRead(r.Context(), id, userID, role); err != nil {
		respondError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *NotificationHandler) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())
	role, _ := middleware.GetRoleFromContext(r.Context())

	if err := h.Service.MarkAllRead(r.Context(), userID, role); err != nil {
		respondError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
