package repositories

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"guvi-backend/internal/models"
)

type SystemSettingRepository struct {
	DB *pgxpool.Pool
}

func NewSystemSettingRepository(db *pgxpool.Pool) *SystemSettingRepository {
	return &SystemSettingRepository{DB: db}
}

func (r *SystemSettingRepository) Get(ctx context.Context, key string) (*models.SystemSetting, error) {
	var s models.SystemSetting
	err := r.DB.QueryRow(ctx,
		`SELECT id, setting_key, setting_value, COALESCE(description, '') as description, updated_at
         FROM system_settings WHERE setting_key=$1`, key,
	).Scan(&s.ID, &s.SettingKey, &s.SettingValue, &s.Description, &s.UpdatedAt)
	if err != nil {
		return nil, scanErr(err)
	}
	return &s, nil
}

func (r *SystemSettingRepository) List(ctx context.Context) ([]models.SystemSetting, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, setting_key, setting_value, COALESCE(description, '') as description, updated_at
         FROM system_settings ORDER BY setting_key`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var settings []models.SystemSetting
	for rows.Next() {
		var s models.SystemSetting
		if err := rows.Scan(&s.ID, &s.SettingKey, &s.SettingValue, &s.Description, &s.UpdatedAt); err != nil {
			return nil, err
		}
		settings = append(settings, s)
	}
	return settings, rows.Err()
}

func (r *SystemSettingRepository) Upsert(ctx context.Context, setting *models.SystemSetting) error {
	return r.DB.QueryRow(ctx,
		`INSERT INTO system_settings(setting_key, setting_value, description, updated_at)
         VALUES($1, $2, $3, $4)
         ON CONFLICT (setting_key)
         DO UPDATE SET setting_value=EXCLUDED.setting_value, updated_at=EXCLUDED.updated_at
         RETURNING id`,
		setting.SettingKey, setting.SettingValue, setting.Description, setting.UpdatedAt,
	).Scan(&setting.ID)
}
