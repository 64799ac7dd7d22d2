package handlers

import (
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"

	"guvi-backend/internal/cache"
	"guvi-backend/pkg/utils"
)

type HealthHandler struct {
	DB *pgxpool.Pool
}

func NewHealthHandler(db *pgxpool.Pool) *HealthHandler {
	return &HealthHandler{DB: db}
}

// Check reports database and cache health. The cache being down is not
// fatal, the database being down is.
func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	dbHealthy := h.DB.Ping(r.Context()) == nil

	status := http.StatusOK
	overall := "ok"
	if !dbHealthy {
		status = http.StatusServiceUnavailable
		overall = "degraded"
	}

	utils.JSON(w, status, map[string]interface{}{
		"status": overall,
		"checks": map[string]bool{
			"database": dbHealthy,
			"cache":    cache.IsHealthy(),
		},
	})
}
