package repositories

import (
	"errors"

	"github.com/jackc/pgx/v5"

	"guvi-backend/internal/services"
)

// scanErr translates a pgx no-rows result into the sentinel the service
// layer matches on.
func scanErr(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return services.ErrNotFound
	}
	return err
}
