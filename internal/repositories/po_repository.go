package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"guvi-backend/internal/models"
)

type PORepository struct {
	DB *pgxpool.Pool
}

func NewPORepository(db *pgxpool.Pool) *PORepository {
	return &PORepository{DB: db}
}

// NextClientPONumber allocates the next client PO number from the
// database sequence.
func (r *PORepository) NextClientPONumber(ctx context.Context) (string, error) {
	return r.nextNumber(ctx, "client_po_seq", "PO-CLIENT-%06d")
}

// NextTrainerPONumber allocates the next trainer PO number.
func (r *PORepository) NextTrainerPONumber(ctx context.Context) (string, error) {
	return r.nextNumber(ctx, "trainer_po_seq", "PO-TRAINER-%06d")
}

func (r *PORepository) nextNumber(ctx context.Context, seq, format string) (string, error) {
	var n int64
	if err := r.DB.QueryRow(ctx, `SELECT nextval($1)`, seq).Scan(&n); err != nil {
		return "", err
	}
	return fmt.Sprintf(format, n), nil
}

func (r *PORepository) Create(ctx context.Context, po *models.PO) error {
	return r.DB.QueryRow(ctx,
		`INSERT INTO purchase_orders(po_number, type, training_id, client_id, trainer_id,
                                     client_po_id, original_amount, profit_margin, admin_profit,
                                     amount, description, status, generated_at)
         VALUES($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
         RETURNING id`,
		po.PONumber, po.Type, po.TrainingID, po.ClientID, po.TrainerID,
		po.ClientPOID, po.OriginalAmount, po.ProfitMargin, po.AdminProfit,
		po.Amount, po.Description, po.Status, po.GeneratedAt,
	).Scan(&po.ID)
}

const poColumns = `id, po_number, type, training_id, client_id, trainer_id, client_po_id,
       original_amount, profit_margin, admin_profit, amount,
       COALESCE(description, '') as description, status, generated_at, processed_at, processed_by`

func (r *PORepository) scanPO(row interface{ Scan(...any) error }) (*models.PO, error) {
	var po models.PO
	err := row.Scan(&po.ID, &po.PONumber, &po.Type, &po.TrainingID, &po.ClientID,
		&po.TrainerID, &po.ClientPOID, &po.OriginalAmount, &po.ProfitMargin,
		&po.AdminProfit, &po.Amount, &po.Description, &po.Status,
		&po.GeneratedAt, &po.ProcessedAt, &po.ProcessedBy)
	if err != nil {
		return nil, scanErr(err)
	}
	return &po, nil
}

func (r *PORepository) GetByID(ctx context.Context, id int) (*models.PO, error) {
	return r.scanPO(r.DB.QueryRow(ctx,
		`SELECT `+poColumns+` FROM purchase_orders WHERE id=$1`, id))
}

func (r *PORepository) GetClientPOByClient(ctx context.Context, clientID int) (*models.PO, error) {
	return r.scanPO(r.DB.QueryRow(ctx,
		`SELECT `+poColumns+` FROM purchase_orders
         WHERE client_id=$1 AND type=$2`, clientID, models.POTypeClient))
}

func (r *PORepository) GetTrainerPOByTraining(ctx context.Context, trainingID int) (*models.PO, error) {
	return r.scanPO(r.DB.QueryRow(ctx,
		`SELECT `+poColumns+` FROM purchase_orders
         WHERE training_id=$1 AND type=$2`, trainingID, models.POTypeTrainer))
}

func (r *PORepository) List(ctx context.Context, poType string) ([]models.POWithNames, error) {
	query := `
		SELECT p.id, p.po_number, p.type, p.training_id, p.client_id, p.trainer_id, p.client_po_id,
		       p.original_amount, p.profit_margin, p.admin_profit, p.amount,
		       COALESCE(p.description, '') as description, p.status, p.generated_at,
		       p.processed_at, p.processed_by,
		       COALESCE(c.name, '') as client_name,
		       COALESCE(tr.name, '') as trainer_name
		FROM purchase_orders p
		LEFT JOIN clients c ON c.id = p.client_id
		LEFT JOIN trainers tr ON tr.id = p.trainer_id`
	args := []any{}
	if poType != "" {
		query += ` WHERE p.type=$1`
		args = append(args, poType)
	}
	query += ` ORDER BY p.generated_at DESC`

	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pos []models.POWithNames
	for rows.Next() {
		var po models.POWithNames
		err := rows.Scan(&po.ID, &po.PONumber, &po.Type, &po.TrainingID, &po.ClientID,
			&po.TrainerID, &po.ClientPOID, &po.OriginalAmount, &po.ProfitMargin,
			&po.AdminProfit, &po.Amount, &po.Description, &po.Status,
			&po.GeneratedAt, &po.ProcessedAt, &po.ProcessedBy,
			&po.ClientName, &po.TrainerName)
		if err != nil {
			return nil, err
		}
		pos = append(pos, po)
	}
	return pos, rows.Err()
}

func (r *PORepository) listPlain(ctx context.Context, where string, args ...any) ([]models.PO, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT `+poColumns+` FROM purchase_orders WHERE `+where+` ORDER BY generated_at DESC`,
		args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pos []models.PO
	for rows.Next() {
		po, err := r.scanPO(rows)
		if err != nil {
			return nil, err
		}
		pos = append(pos, *po)
	}
	return pos, rows.Err()
}

func (r *PORepository) ListByClient(ctx context.Context, clientID int) ([]models.PO, error) {
	return r.listPlain(ctx, "client_id=$1", clientID)
}

func (r *PORepository) ListByTrainer(ctx context.Context, trainerID int) ([]models.PO, error) {
	return r.listPlain(ctx, "trainer_id=$1 AND type=$2", trainerID, models.POTypeTrainer)
}

func (r *PORepository) UpdateStatus(ctx context.Context, po *models.PO) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE purchase_orders SET status=$1, processed_at=$2, processed_by=$3 WHERE id=$4`,
		po.Status, po.ProcessedAt, po.ProcessedBy, po.ID)
	return err
}

// Process marks the client PO processed and inserts its derived trainer
// PO in one transaction.
func (r *PORepository) Process(ctx context.Context, clientPO, trainerPO *models.PO) error {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx,
		`UPDATE purchase_orders SET status=$1, processed_at=$2, processed_by=$3 WHERE id=$4`,
		clientPO.Status, clientPO.ProcessedAt, clientPO.ProcessedBy, clientPO.ID)
	if err != nil {
		return err
	}

	err = tx.QueryRow(ctx,
		`INSERT INTO purchase_orders(po_number, type, training_id, client_id, trainer_id,
                                     client_po_id, original_amount, profit_margin, admin_profit,
                                     amount, description, status, generated_at)
         VALUES($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
         RETURNING id`,
		trainerPO.PONumber, trainerPO.Type, trainerPO.TrainingID, trainerPO.ClientID,
		trainerPO.TrainerID, trainerPO.ClientPOID, trainerPO.OriginalAmount,
		trainerPO.ProfitMargin, trainerPO.AdminProfit, trainerPO.Amount,
		trainerPO.Description, trainerPO.Status, trainerPO.GeneratedAt,
	).Scan(&trainerPO.ID)
	if err != nil {
		return err
	}

	return tx.Commit(ctx)
}
