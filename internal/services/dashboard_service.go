package services

import (
	"context"
	"encoding/json"
	"time"

	"guvi-backend/internal/cache"
	"guvi-backend/internal/models"
)

const dashboardCacheTTL = 30 * time.Second

// DashboardRepository aggregates the counters the admin overview shows.
type DashboardRepository interface {
	CountClientsByStatus(ctx context.Context, status string) (int, error)
	CountTrainersByStatus(ctx context.Context, status string) (int, error)
	CountTrainingsByStatus(ctx context.Context, status string) (int, error)
	CountPOsByStatus(ctx context.Context, status string) (int, error)
	CountInvoicesByStatus(ctx context.Context, status string) (int, error)
	// TotalPaidMargin sums guvi_margin over paid client invoices.
	TotalPaidMargin(ctx context.Context) (float64, error)
	AverageProgress(ctx context.Context) (float64, error)
}

type DashboardService struct {
	repo DashboardRepository
}

func NewDashboardService(repo DashboardRepository) *DashboardService {
	return &DashboardService{repo: repo}
}

// GetStats recomputes the admin overview from the database, serving a
// short-lived cached copy when one exists.
func (s *DashboardService) GetStats(ctx context.Context) (*models.DashboardStats, error) {
	if data, ok := cache.GetCached(ctx, cache.DashboardStatsKey); ok {
		var stats models.DashboardStats
		if err := json.Unmarshal(data, &stats); err == nil {
			return &stats, nil
		}
	}

	stats := &models.DashboardStats{}
	var err error

	if stats.PendingClients, err = s.repo.CountClientsByStatus(ctx, models.ClientStatusRequested); err != nil {
		return nil, err
	}
	if stats.PendingTrainers, err = s.repo.CountTrainersByStatus(ctx, models.TrainerStatusPending); err != nil {
		return nil, err
	}
	if stats.OngoingTrainings, err = s.repo.CountTrainingsByStatus(ctx, models.TrainingStatusOngoing); err != nil {
		return nil, err
	}
	if stats.CompletedTrainings, err = s.repo.CountTrainingsByStatus(ctx, models.TrainingStatusCompleted); err != nil {
		return nil, err
	}
	if stats.PendingPOs, err = s.repo.CountPOsByStatus(ctx, models.POStatusGenerated); err != nil {
		return nil, err
	}
	if stats.PendingInvoices, err = s.repo.CountInvoicesByStatus(ctx, models.InvoiceStatusSubmitted); err != nil {
		return nil, err
	}
	if stats.TotalRevenue, err = s.repo.TotalPaidMargin(ctx); err != nil {
		return nil, err
	}
	stats.TotalRevenue = Round2(stats.TotalRevenue)
	if stats.AverageProgress, err = s.repo.AverageProgress(ctx); err != nil {
		return nil, err
	}
	stats.AverageProgress = Round2(stats.AverageProgress)

	if data, err := json.Marshal(stats); err == nil {
		cache.SetCached(ctx, cache.DashboardStatsKey, data, dashboardCacheTTL)
	}

	return stats, nil
}
