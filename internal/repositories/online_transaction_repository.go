package repositories

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"guvi-backend/internal/models"
	"guvi-backend/internal/timeutil"
)

type OnlineTransactionRepository struct {
	DB *pgxpool.Pool
}

func NewOnlineTransactionRepository(db *pgxpool.Pool) *OnlineTransactionRepository {
	return &OnlineTransactionRepository{DB: db}
}

func (r *OnlineTransactionRepository) Create(ctx context.Context, tx *models.OnlineTransaction) error {
	return r.DB.QueryRow(ctx,
		`INSERT INTO online_transactions(order_id, invoice_id, amount, status, created_at)
         VALUES($1, $2, $3, $4, $5)
         RETURNING id`,
		tx.OrderID, tx.InvoiceID, tx.Amount, tx.Status, tx.CreatedAt,
	).Scan(&tx.ID)
}

func (r *OnlineTransactionRepository) GetByOrderID(ctx context.Context, orderID string) (*models.OnlineTransaction, error) {
	var tx models.OnlineTransaction
	err := r.DB.QueryRow(ctx,
		`SELECT id, order_id, COALESCE(payment_id, '') as payment_id, invoice_id,
                amount, status, created_at, paid_at
         FROM online_transactions WHERE order_id=$1`, orderID,
	).Scan(&tx.ID, &tx.OrderID, &tx.PaymentID, &tx.InvoiceID,
		&tx.Amount, &tx.Status, &tx.CreatedAt, &tx.PaidAt)
	if err != nil {
		return nil, scanErr(err)
	}
	return &tx, nil
}

func (r *OnlineTransactionRepository) MarkPaid(ctx context.Context, orderID, paymentID string) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE online_transactions SET status=$1, payment_id=$2, paid_at=$3 WHERE order_id=$4`,
		models.OnlineTxStatusPaid, paymentID, timeutil.Now(), orderID)
	return err
}
