package services

import (
	"context"
	"errors"
	"log"
	"strconv"

	"guvi-backend/internal/models"
	"guvi-backend/internal/timeutil"
)

// SystemSettingRepository is the persistence surface for settings.
type SystemSettingRepository interface {
	Get(ctx context.Context, key string) (*models.SystemSetting, error)
	List(ctx context.Context) ([]models.SystemSetting, error)
	Upsert(ctx context.Context, setting *models.SystemSetting) error
}

type SystemSettingService struct {
	repo SystemSettingRepository
}

func NewSystemSettingService(repo SystemSettingRepository) *SystemSettingService {
	return &SystemSettingService{repo: repo}
}

// List returns all settings.
func (s *SystemSettingService) List(ctx context.Context) ([]models.SystemSetting, error) {
	return s.repo.List(ctx)
}

// Update sets a known setting key to a new value.
func (s *SystemSettingService) Update(ctx context.Context, key, value string) (*models.SystemSetting, error) {
	switch key {
	case models.SettingAdminProfitMargin, models.SettingGuviMarginPercent:
		pct, err := strconv.ParseFloat(value, 64)
		if err != nil || pct < 0 || pct > 100 {
			return nil, NewValidationError("margin must be a percentage between 0 and 100")
		}
	case models.SettingOnlinePaymentEnabled:
		if value != "true" && value != "false" {
			return nil, NewValidationError("value must be true or false")
		}
	default:
		return nil, NewValidationError("unknown setting key")
	}

	setting := &models.SystemSetting{
		SettingKey:   key,
		SettingValue: value,
		UpdatedAt:    timeutil.Now(),
	}
	if err := s.repo.Upsert(ctx, setting); err != nil {
		return nil, err
	}
	return setting, nil
}

// GetPercent reads a margin setting, falling back to a default when the
// row is missing or unparseable.
func (s *SystemSettingService) GetPercent(ctx context.Context, key string, fallback float64) float64 {
	setting, err := s.repo.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			log.Printf("[Settings] reading %s failed, using default %.0f: %v", key, fallback, err)
		}
		return fallback
	}
	pct, err := strconv.ParseFloat(setting.SettingValue, 64)
	if err != nil {
		log.Printf("[Settings] %s holds %q, using default %.0f", key, setting.SettingValue, fallback)
		return fallback
	}
	return pct
}

// OnlinePaymentEnabled reports whether the online payment leg is on.
func (s *SystemSettingService) OnlinePaymentEnabled(ctx context.Context) bool {
	setting, err := s.repo.Get(ctx, models.SettingOnlinePaymentEnabled)
	if err != nil {
		return false
	}
	return setting.SettingValue == "true"
}
