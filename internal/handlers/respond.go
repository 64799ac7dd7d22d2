package handlers

import (
	"errors"
	"log"
	"net/http"

	"guvi-backend/internal/services"
	"guvi-backend/pkg/utils"
)

// respondError maps service errors onto HTTP status codes.
func respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrValidation):
		utils.Error(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrNotFound):
		utils.Error(w, http.StatusNotFound, "not found")
	case errors.Is(err, services.ErrConflict):
		utils.Error(w, http.StatusConflict, err.Error())
	case errors.Is(err, services.ErrForbidden):
		utils.Error(w, http.StatusForbidden, "forbidden")
	default:
		log.Printf("[Handler] internal error: %v", err)
		utils.Error(w, http.StatusInternalServerError, "internal server error")
	}
}
