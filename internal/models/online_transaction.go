package models

import "time"

const (
	OnlineTxStatusCreated = "CREATED"
	OnlineTxStatusPaid    = "PAID"
)

// OnlineTransaction links a payment-gateway order to the client invoice it pays.
type OnlineTransaction struct {
	ID        int        `json:"id"`
	OrderID   string     `json:"order_id"`
	PaymentID string     `json:"payment_id,omitempty"`
	InvoiceID int        `json:"invoice_id"`
	Amount    float64    `json:"amount"`
	Status    string     `json:"status"`
	CreatedAt time.Time  `json:"created_at"`
	PaidAt    *time.Time `json:"paid_at,omitempty"`
}
