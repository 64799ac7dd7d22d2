package repositories

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"guvi-backend/internal/models"
)

type TrainingRepository struct {
	DB *pgxpool.Pool
}

func NewTrainingRepository(db *pgxpool.Pool) *TrainingRepository {
	return &TrainingRepository{DB: db}
}

// CreateWithMilestones inserts the training and its full milestone
// schedule in one transaction.
func (r *TrainingRepository) CreateWithMilestones(ctx context.Context, t *models.Training, milestones []models.Milestone) error {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx,
		`INSERT INTO trainings(client_id, trainer_id, technology, duration_months, start_date,
                               status, total_milestones, completed_milestones, progress_percentage,
                               verified_by_client, created_at)
         VALUES($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
         RETURNING id`,
		t.ClientID, t.TrainerID, t.Technology, t.DurationMonths, t.StartDate,
		t.Status, t.TotalMilestones, t.CompletedMilestones, t.ProgressPercentage,
		t.VerifiedByClient, t.CreatedAt,
	).Scan(&t.ID)
	if err != nil {
		return err
	}

	for i := range milestones {
		m := &milestones[i]
		m.TrainingID = t.ID
		err = tx.QueryRow(ctx,
			`INSERT INTO milestones(training_id, title, description, month, due_date, status)
             VALUES($1, $2, $3, $4, $5, $6)
             RETURNING id`,
			m.TrainingID, m.Title, m.Description, m.Month, m.DueDate, m.Status,
		).Scan(&m.ID)
		if err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

const trainingColumns = `id, client_id, trainer_id, technology, duration_months, start_date,
       status, total_milestones, completed_milestones, progress_percentage,
       verified_by_client, verified_at, created_at, completed_at`

func (r *TrainingRepository) scanTraining(row interface{ Scan(...any) error }) (*models.Training, error) {
	var t models.Training
	err := row.Scan(&t.ID, &t.ClientID, &t.TrainerID, &t.Technology, &t.DurationMonths,
		&t.StartDate, &t.Status, &t.TotalMilestones, &t.CompletedMilestones,
		&t.ProgressPercentage, &t.VerifiedByClient, &t.VerifiedAt, &t.CreatedAt, &t.CompletedAt)
	if err != nil {
		return nil, scanErr(err)
	}
	return &t, nil
}

func (r *TrainingRepository) GetByID(ctx context.Context, id int) (*models.Training, error) {
	return r.scanTraining(r.DB.QueryRow(ctx,
		`SELECT `+trainingColumns+` FROM trainings WHERE id=$1`, id))
}

// GetOngoingByClient returns the client's single ongoing training, the
// one a trainer purchase order attaches to.
func (r *TrainingRepository) GetOngoingByClient(ctx context.Context, clientID int) (*models.Training, error) {
	return r.scanTraining(r.DB.QueryRow(ctx,
		`SELECT `+trainingColumns+` FROM trainings
         WHERE client_id=$1 AND status=$2
         ORDER BY created_at DESC LIMIT 1`,
		clientID, models.TrainingStatusOngoing))
}

func (r *TrainingRepository) GetMilestone(ctx context.Context, id int) (*models.Milestone, error) {
	var m models.Milestone
	err := r.DB.QueryRow(ctx,
		`SELECT id, training_id, title, COALESCE(description, '') as description, month,
                due_date, status, completed_at, COALESCE(completed_by, '') as completed_by
         FROM milestones WHERE id=$1`, id,
	).Scan(&m.ID, &m.TrainingID, &m.Title, &m.Description, &m.Month,
		&m.DueDate, &m.Status, &m.CompletedAt, &m.CompletedBy)
	if err != nil {
		return nil, scanErr(err)
	}
	return &m, nil
}

func (r *TrainingRepository) GetMilestones(ctx context.Context, trainingID int) ([]models.Milestone, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, training_id, title, COALESCE(description, '') as description, month,
                due_date, status, completed_at, COALESCE(completed_by, '') as completed_by
         FROM milestones WHERE training_id=$1 ORDER BY month`, trainingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var milestones []models.Milestone
	for rows.Next() {
		var m models.Milestone
		err := rows.Scan(&m.ID, &m.TrainingID, &m.Title, &m.Description, &m.Month,
			&m.DueDate, &m.Status, &m.CompletedAt, &m.CompletedBy)
		if err != nil {
			return nil, err
		}
		milestones = append(milestones, m)
	}
	return milestones, rows.Err()
}

func (r *TrainingRepository) UpdateMilestone(ctx context.Context, m *models.Milestone) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE milestones SET status=$1, completed_at=$2, completed_by=$3 WHERE id=$4`,
		m.Status, m.CompletedAt, m.CompletedBy, m.ID)
	return err
}

// UpdateMilestoneAndTraining persists a verified milestone and the
// recomputed parent counters atomically.
func (r *TrainingRepository) UpdateMilestoneAndTraining(ctx context.Context, m *models.Milestone, t *models.Training) error {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx,
		`UPDATE milestones SET status=$1, completed_at=$2, completed_by=$3 WHERE id=$4`,
		m.Status, m.CompletedAt, m.CompletedBy, m.ID)
	if err != nil {
		return err
	}

	_, err = tx.Exec(ctx,
		`UPDATE trainings
         SET status=$1, total_milestones=$2, completed_milestones=$3,
             progress_percentage=$4, completed_at=$5
         WHERE id=$6`,
		t.Status, t.TotalMilestones, t.CompletedMilestones,
		t.ProgressPercentage, t.CompletedAt, t.ID)
	if err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *TrainingRepository) SetVerifiedByClient(ctx context.Context, t *models.Training) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE trainings SET verified_by_client=$1, verified_at=$2 WHERE id=$3`,
		t.VerifiedByClient, t.VerifiedAt, t.ID)
	return err
}

const trainingWithNamesQuery = `
	SELECT t.id, t.client_id, t.trainer_id, t.technology, t.duration_months, t.start_date,
	       t.status, t.total_milestones, t.completed_milestones, t.progress_percentage,
	       t.verified_by_client, t.verified_at, t.created_at, t.completed_at,
	       COALESCE(c.name, 'Unknown Client') as client_name,
	       COALESCE(tr.name, 'Unknown Trainer') as trainer_name
	FROM trainings t
	LEFT JOIN clients c ON c.id = t.client_id
	LEFT JOIN trainers tr ON tr.id = t.trainer_id`

func (r *TrainingRepository) listWithNames(ctx context.Context, where string, args ...any) ([]models.TrainingWithNames, error) {
	query := trainingWithNamesQuery
	if where != "" {
		query += " WHERE " + where
	}
	query += " ORDER BY t.created_at DESC"

	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var trainings []models.TrainingWithNames
	for rows.Next() {
		var t models.TrainingWithNames
		err := rows.Scan(&t.ID, &t.ClientID, &t.TrainerID, &t.Technology, &t.DurationMonths,
			&t.StartDate, &t.Status, &t.TotalMilestones, &t.CompletedMilestones,
			&t.ProgressPercentage, &t.VerifiedByClient, &t.VerifiedAt, &t.CreatedAt,
			&t.CompletedAt, &t.ClientName, &t.TrainerName)
		if err != nil {
			return nil, err
		}
		trainings = append(trainings, t)
	}
	return trainings, rows.Err()
}

func (r *TrainingRepository) ListWithNames(ctx context.Context) ([]models.TrainingWithNames, error) {
	return r.listWithNames(ctx, "")
}

func (r *TrainingRepository) ListByClient(ctx context.Context, clientID int) ([]models.TrainingWithNames, error) {
	return r.listWithNames(ctx, "t.client_id=$1", clientID)
}

func (r *TrainingRepository) ListByTrainer(ctx context.Context, trainerID int) ([]models.TrainingWithNames, error) {
	return r.listWithNames(ctx, "t.trainer_id=$1", trainerID)
}
