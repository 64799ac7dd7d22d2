package repositories

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"guvi-backend/internal/models"
)

type TrainerRepository struct {
	DB *pgxpool.Pool
}

func NewTrainerRepository(db *pgxpool.Pool) *TrainerRepository {
	return &TrainerRepository{DB: db}
}

// CreateWithUser inserts the login account and the trainer application
// in one transaction.
func (r *TrainerRepository) CreateWithUser(ctx context.Context, u *models.User, t *models.Trainer) error {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx,
		`INSERT INTO users(email, password_hash, role, name, created_at)
         VALUES($1, $2, $3, $4, $5)
         RETURNING id`,
		u.Email, u.PasswordHash, u.Role, u.Name, u.CreatedAt,
	).Scan(&u.ID)
	if err != nil {
		return err
	}

	t.UserID = u.ID
	err = tx.QueryRow(ctx,
		`INSERT INTO trainers(user_id, name, email, age, gender, experience, skills,
                              resume_key, resume_base64, expected_rate, status, created_at)
         VALUES($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
         RETURNING id`,
		t.UserID, t.Name, t.Email, t.Age, t.Gender, t.Experience, t.Skills,
		t.ResumeKey, t.ResumeBase64, t.ExpectedRate, t.Status, t.CreatedAt,
	).Scan(&t.ID)
	if err != nil {
		return err
	}

	return tx.Commit(ctx)
}

const trainerColumns = `id, user_id, name, email, age, COALESCE(gender, '') as gender,
       COALESCE(experience, '') as experience, skills, COALESCE(resume_key, '') as resume_key,
       COALESCE(resume_base64, '') as resume_base64, expected_rate, status,
       created_at, approved_at, rejected_at`

func (r *TrainerRepository) scanTrainer(row interface{ Scan(...any) error }) (*models.Trainer, error) {
	var t models.Trainer
	err := row.Scan(&t.ID, &t.UserID, &t.Name, &t.Email, &t.Age, &t.Gender,
		&t.Experience, &t.Skills, &t.ResumeKey, &t.ResumeBase64, &t.ExpectedRate,
		&t.Status, &t.CreatedAt, &t.ApprovedAt, &t.RejectedAt)
	if err != nil {
		return nil, scanErr(err)
	}
	return &t, nil
}

func (r *TrainerRepository) GetByID(ctx context.Context, id int) (*models.Trainer, error) {
	return r.scanTrainer(r.DB.QueryRow(ctx,
		`SELECT `+trainerColumns+` FROM trainers WHERE id=$1`, id))
}

func (r *TrainerRepository) GetByUserID(ctx context.Context, userID int) (*models.Trainer, error) {
	return r.scanTrainer(r.DB.QueryRow(ctx,
		`SELECT `+trainerColumns+` FROM trainers WHERE user_id=$1`, userID))
}

func (r *TrainerRepository) List(ctx context.Context, status string) ([]models.Trainer, error) {
	query := `SELECT ` + trainerColumns + ` FROM trainers`
	args := []any{}
	if status != "" {
		query += ` WHERE status=$1`
		args = append(args, status)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var trainers []models.Trainer
	for rows.Next() {
		t, err := r.scanTrainer(rows)
		if err != nil {
			return nil, err
		}
		trainers = append(trainers, *t)
	}
	return trainers, rows.Err()
}

func (r *TrainerRepository) UpdateStatus(ctx context.Context, t *models.Trainer) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE trainers SET status=$1, approved_at=$2, rejected_at=$3 WHERE id=$4`,
		t.Status, t.ApprovedAt, t.RejectedAt, t.ID)
	return err
}
