package models

import "time"

const (
	InvoiceTypeTrainer = "TRAINER_INVOICE"
	InvoiceTypeClient  = "CLIENT_INVOICE"
)

const (
	InvoiceStatusSubmitted = "SUBMITTED"
	InvoiceStatusApproved  = "APPROVED"
	InvoiceStatusPaid      = "PAID"
)

type Invoice struct {
	ID            int        `json:"id"`
	InvoiceNumber string     `json:"invoice_number"`
	Type          string     `json:"type"`
	TrainingID    int        `json:"training_id"`
	TrainerID     *int       `json:"trainer_id,omitempty"`
	ClientID      *int       `json:"client_id,omitempty"`
	TrainerAmount float64    `json:"trainer_amount"`
	GuviMargin    float64    `json:"guvi_margin,omitempty"`
	ClientAmount  float64    `json:"client_amount,omitempty"`
	Description   string     `json:"description"`
	Status        string     `json:"status"`
	SubmittedAt   time.Time  `json:"submitted_at"`
	ApprovedAt    *time.Time `json:"approved_at,omitempty"`
	PaidAt        *time.Time `json:"paid_at,omitempty"`
}

type SubmitInvoiceRequest struct {
	TrainingID int     `json:"training_id"`
	Amount     float64 `json:"amount"` // 0 defaults to the trainer PO amount
}

type ApproveInvoiceRequest struct {
	MarginPercent float64 `json:"margin_percent"` // 0 defaults to the configured GUVI margin
}
