package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"guvi-backend/internal/models"
)

type InvoiceRepository struct {
	DB *pgxpool.Pool
}

func NewInvoiceRepository(db *pgxpool.Pool) *InvoiceRepository {
	return &InvoiceRepository{DB: db}
}

func (r *InvoiceRepository) NextTrainerInvoiceNumber(ctx context.Context) (string, error) {
	return r.nextNumber(ctx, "trainer_invoice_seq", "INV-TRAINER-%06d")
}

func (r *InvoiceRepository) NextClientInvoiceNumber(ctx context.Context) (string, error) {
	return r.nextNumber(ctx, "client_invoice_seq", "INV-CLIENT-%06d")
}

func (r *InvoiceRepository) nextNumber(ctx context.Context, seq, format string) (string, error) {
	var n int64
	if err := r.DB.QueryRow(ctx, `SELECT nextval($1)`, seq).Scan(&n); err != nil {
		return "", err
	}
	return fmt.Sprintf(format, n), nil
}

func (r *InvoiceRepository) Create(ctx context.Context, inv *models.Invoice) error {
	return r.DB.QueryRow(ctx,
		`INSERT INTO invoices(invoice_number, type, training_id, trainer_id, client_id,
                              trainer_amount, guvi_margin, client_amount, description,
                              status, submitted_at)
         VALUES($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
         RETURNING id`,
		inv.InvoiceNumber, inv.Type, inv.TrainingID, inv.TrainerID, inv.ClientID,
		inv.TrainerAmount, inv.GuviMargin, inv.ClientAmount, inv.Description,
		inv.Status, inv.SubmittedAt,
	).Scan(&inv.ID)
}

const invoiceColumns = `id, invoice_number, type, training_id, trainer_id, client_id,
       trainer_amount, guvi_margin, client_amount, COALESCE(description, '') as description,
       status, submitted_at, approved_at, paid_at`

func (r *InvoiceRepository) scanInvoice(row interface{ Scan(...any) error }) (*models.Invoice, error) {
	var inv models.Invoice
	err := row.Scan(&inv.ID, &inv.InvoiceNumber, &inv.Type, &inv.TrainingID,
		&inv.TrainerID, &inv.ClientID, &inv.TrainerAmount, &inv.GuviMargin,
		&inv.ClientAmount, &inv.Description, &inv.Status,
		&inv.SubmittedAt, &inv.ApprovedAt, &inv.PaidAt)
	if err != nil {
		return nil, scanErr(err)
	}
	return &inv, nil
}

func (r *InvoiceRepository) GetByID(ctx context.Context, id int) (*models.Invoice, error) {
	return r.scanInvoice(r.DB.QueryRow(ctx,
		`SELECT `+invoiceColumns+` FROM invoices WHERE id=$1`, id))
}

func (r *InvoiceRepository) GetTrainerInvoiceByTraining(ctx context.Context, trainingID int) (*models.Invoice, error) {
	return r.scanInvoice(r.DB.QueryRow(ctx,
		`SELECT `+invoiceColumns+` FROM invoices
         WHERE training_id=$1 AND type=$2`, trainingID, models.InvoiceTypeTrainer))
}

func (r *InvoiceRepository) GetClientInvoiceByTraining(ctx context.Context, trainingID int) (*models.Invoice, error) {
	return r.scanInvoice(r.DB.QueryRow(ctx,
		`SELECT `+invoiceColumns+` FROM invoices
         WHERE training_id=$1 AND type=$2`, trainingID, models.InvoiceTypeClient))
}

func (r *InvoiceRepository) list(ctx context.Context, where string, args ...any) ([]models.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices`
	if where != "" {
		query += ` WHERE ` + where
	}
	query += ` ORDER BY submitted_at DESC`

	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var invoices []models.Invoice
	for rows.Next() {
		inv, err := r.scanInvoice(rows)
		if err != nil {
			return nil, err
		}
		invoices = append(invoices, *inv)
	}
	return invoices, rows.Err()
}

func (r *InvoiceRepository) List(ctx context.Context, invType string) ([]models.Invoice, error) {
	if invType == "" {
		return r.list(ctx, "")
	}
	return r.list(ctx, "type=$1", invType)
}

func (r *InvoiceRepository) ListByTrainer(ctx context.Context, trainerID int) ([]models.Invoice, error) {
	return r.list(ctx, "trainer_id=$1 AND type=$2", trainerID, models.InvoiceTypeTrainer)
}

func (r *InvoiceRepository) ListByClient(ctx context.Context, clientID int) ([]models.Invoice, error) {
	return r.list(ctx, "client_id=$1 AND type=$2", clientID, models.InvoiceTypeClient)
}

func (r *InvoiceRepository) Update(ctx context.Context, inv *models.Invoice) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE invoices SET status=$1, approved_at=$2, paid_at=$3 WHERE id=$4`,
		inv.Status, inv.ApprovedAt, inv.PaidAt, inv.ID)
	return err
}

// ApproveWithClientInvoice approves the trainer invoice and inserts the
// marked-up client invoice in one transaction.
func (r *InvoiceRepository) ApproveWithClientInvoice(ctx context.Context, trainerInv, clientInv *models.Invoice) error {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx,
		`UPDATE invoices SET status=$1, approved_at=$2 WHERE id=$3`,
		trainerInv.Status, trainerInv.ApprovedAt, trainerInv.ID)
	if err != nil {
		return err
	}

	err = tx.QueryRow(ctx,
		`INSERT INTO invoices(invoice_number, type, training_id, trainer_id, client_id,
                              trainer_amount, guvi_margin, client_amount, description,
                              status, submitted_at)
         VALUES($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
         RETURNING id`,
		clientInv.InvoiceNumber, clientInv.Type, clientInv.TrainingID, clientInv.TrainerID,
		clientInv.ClientID, clientInv.TrainerAmount, clientInv.GuviMargin,
		clientInv.ClientAmount, clientInv.Description, clientInv.Status, clientInv.SubmittedAt,
	).Scan(&clientInv.ID)
	if err != nil {
		return err
	}

	return tx.Commit(ctx)
}
