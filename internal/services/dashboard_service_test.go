package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDashboardRepo struct {
	clients   map[string]int
	trainers  map[string]int
	trainings map[string]int
	pos       map[string]int
	invoices  map[string]int
	revenue   float64
	progress  float64
}

func (r *fakeDashboardRepo) CountClientsByStatus(ctx context.Context, status string) (int, error) {
	return r.clients[status], nil
}

func (r *fakeDashboardRepo) CountTrainersByStatus(ctx context.Context, status string) (int, error) {
	return r.trainers[status], nil
}

func (r *fakeDashboardRepo) CountTrainingsByStatus(ctx context.Context, status string) (int, error) {
	return r.trainings[status], nil
}

func (r *fakeDashboardRepo) CountPOsByStatus(ctx context.Context, status string) (int, error) {
	return r.pos[status], nil
}

func (r *fakeDashboardRepo) CountInvoicesByStatus(ctx context.Context, status string) (int, error) {
	return r.invoices[status], nil
}

func (r *fakeDashboardRepo) TotalPaidMargin(ctx context.Context) (float64, error) {
	return r.revenue, nil
}

func (r *fakeDashboardRepo) AverageProgress(ctx context.Context) (float64, error) {
	return r.progress, nil
}

func TestDashboardStats(t *testing.T) {
	repo := &fakeDashboardRepo{
		clients:   map[string]int{"REQUESTED": 2},
		trainers:  map[string]int{"PENDING_APPROVAL": 3},
		trainings: map[string]int{"ONGOING": 4, "COMPLETED": 1},
		pos:       map[string]int{"GENERATED": 1},
		invoices:  map[string]int{"SUBMITTED": 2},
		revenue:   1234.5678,
		progress:  42.3456,
	}
	svc := NewDashboardService(repo)

	stats, err := svc.GetStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, stats.PendingClients)
	assert.Equal(t, 3, stats.PendingTrainers)
	assert.Equal(t, 4, stats.OngoingTrainings)
	assert.Equal(t, 1, stats.CompletedTrainings)
	assert.Equal(t, 1, stats.PendingPOs)
	assert.Equal(t, 2, stats.PendingInvoices)
	assert.Equal(t, 1234.57, stats.TotalRevenue)
	assert.Equal(t, 42.35, stats.AverageProgress)
}
