package repositories

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"guvi-backend/internal/models"
)

type ClientRepository struct {
	DB *pgxpool.Pool
}

func NewClientRepository(db *pgxpool.Pool) *ClientRepository {
	return &ClientRepository{DB: db}
}

// CreateWithUser inserts the login account and the client request in one
// transaction so a half-registered client can never exist.
func (r *ClientRepository) CreateWithUser(ctx context.Context, u *models.User, c *models.Client) error {
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

	c.UserID = u.ID
	err = tx.QueryRow(ctx,
		`INSERT INTO clients(user_id, name, email, phone, company_name, technology,
                             duration_months, expected_start_date, budget, status, created_at)
         VALUES($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
         RETURNING id`,
		c.UserID, c.Name, c.Email, c.Phone, c.CompanyName, c.Technology,
		c.DurationMonths, c.ExpectedStartDate, c.Budget, c.Status, c.CreatedAt,
	).Scan(&c.ID)
	if err != nil {
		return err
	}

	return tx.Commit(ctx)
}

const clientColumns = `id, user_id, name, email, COALESCE(phone, '') as phone,
       COALESCE(company_name, '') as company_name, technology, duration_months,
       COALESCE(expected_start_date, '') as expected_start_date, budget, status,
       created_at, approved_at, rejected_at`

func (r *ClientRepository) scanClient(row interface{ Scan(...any) error }) (*models.Client, error) {
	var c models.Client
	err := row.Scan(&c.ID, &c.UserID, &c.Name, &c.Email, &c.Phone, &c.CompanyName,
		&c.Technology, &c.DurationMonths, &c.ExpectedStartDate, &c.Budget, &c.Status,
		&c.CreatedAt, &c.ApprovedAt, &c.RejectedAt)
	if err != nil {
		return nil, scanErr(err)
	}
	return &c, nil
}

func (r *ClientRepository) GetByID(ctx context.Context, id int) (*models.Client, error) {
	return r.scanClient(r.DB.QueryRow(ctx,
		`SELECT `+clientColumns+` FROM clients WHERE id=$1`, id))
}

func (r *ClientRepository) GetByUserID(ctx context.Context, userID int) (*models.Client, error) {
	return r.scanClient(r.DB.QueryRow(ctx,
		`SELECT `+clientColumns+` FROM clients WHERE user_id=$1`, userID))
}

func (r *ClientRepository) List(ctx context.Context, status string) ([]models.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients`
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

	var clients []models.Client
	for rows.Next() {
		c, err := r.scanClient(rows)
		if err != nil {
			return nil, err
		}
		clients = append(clients, *c)
	}
	return clients, rows.Err()
}

func (r *ClientRepository) UpdateStatus(ctx context.Context, c *models.Client) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE clients SET status=$1, approved_at=$2, rejected_at=$3 WHERE id=$4`,
		c.Status, c.ApprovedAt, c.RejectedAt, c.ID)
	return err
}
