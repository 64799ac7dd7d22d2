package models

import "time"

const (
	POTypeClient  = "CLIENT_PO"
	POTypeTrainer = "TRAINER_PO"
)

// A CLIENT_PO moves GENERATED -> SENT -> ACKNOWLEDGED -> PROCESSED; processing
// is what spawns the linked TRAINER_PO and is final for the client PO.
const (
	POStatusGenerated    = "GENERATED"
	POStatusSent         = "SENT"
	POStatusAcknowledged = "ACKNOWLEDGED"
	POStatusProcessed    = "PROCESSED"
)

type PO struct {
	ID             int        `json:"id"`
	PONumber       string     `json:"po_number"`
	Type           string     `json:"type"`
	TrainingID     *int       `json:"training_id,omitempty"`
	ClientID       *int       `json:"client_id,omitempty"`
	TrainerID      *int       `json:"trainer_id,omitempty"`
	ClientPOID     *int       `json:"client_po_id,omitempty"`
	OriginalAmount float64    `json:"original_amount,omitempty"`
	ProfitMargin   float64    `json:"profit_margin,omitempty"`
	AdminProfit    float64    `json:"admin_profit,omitempty"`
	Amount         float64    `json:"amount"`
	Description    string     `json:"description"`
	Status         string     `json:"status"`
	GeneratedAt    time.Time  `json:"generated_at"`
	ProcessedAt    *time.Time `json:"processed_at,omitempty"`
	ProcessedBy    *int       `json:"processed_by,omitempty"`
}

type ProcessPORequest struct {
	ProfitMarginPercent float64 `json:"profit_margin_percent"`
}

type POWithNames struct {
	PO
	ClientName  string `json:"client_name,omitempty"`
	TrainerName string `json:"trainer_name,omitempty"`
}
