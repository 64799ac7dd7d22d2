package repositories

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"guvi-backend/internal/models"
)

// DashboardRepository runs the aggregate queries behind the admin
// overview.
type DashboardRepository struct {
	DB *pgxpool.Pool
}

func NewDashboardRepository(db *pgxpool.Pool) *DashboardRepository {
	return &DashboardRepository{DB: db}
}

func (r *DashboardRepository) count(ctx context.Context, query string, args ...any) (int, error) {
	var n int
	err := r.DB.QueryRow(ctx, query, args...).Scan(&n)
	return n, err
}

func (r *DashboardRepository) CountClientsByStatus(ctx context.Context, status string) (int, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM clients WHERE status=$1`, status)
}

func (r *DashboardRepository) CountTrainersByStatus(ctx context.Context, status string) (int, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM trainers WHERE status=$1`, status)
}

func (r *DashboardRepository) CountTrainingsByStatus(ctx context.Context, status string) (int, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM trainings WHERE status=$1`, status)
}

func (r *DashboardRepository) CountPOsByStatus(ctx context.Context, status string) (int, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM purchase_orders WHERE status=$1`, status)
}

func (r *DashboardRepository) CountInvoicesByStatus(ctx context.Context, status string) (int, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM invoices WHERE status=$1`, status)
}

// TotalPaidMargin sums the retained margin over settled client invoices.
func (r *DashboardRepository) TotalPaidMargin(ctx context.Context) (float64, error) {
	var total float64
	err := r.DB.QueryRow(ctx,
		`SELECT COALESCE(SUM(guvi_margin), 0) FROM invoices WHERE type=$1 AND status=$2`,
		models.InvoiceTypeClient, models.InvoiceStatusPaid,
	).Scan(&total)
	return total, err
}

func (r *DashboardRepository) AverageProgress(ctx context.Context) (float64, error) {
	var avg float64
	err := r.DB.QueryRow(ctx,
		`SELECT COALESCE(AVG(progress_percentage), 0) FROM trainings`,
	).Scan(&avg)
	return avg, err
}
