package models

import "time"

// Notification types, one per workflow transition family.
const (
	NotificationTypeRegistration = "REGISTRATION"
	NotificationTypeApproval     = "APPROVAL"
	NotificationTypeMapping      = "MAPPING"
	NotificationTypeMilestone    = "MILESTONE"
	NotificationTypePO           = "PO"
	NotificationTypeInvoice      = "INVOICE"
	NotificationTypePayment      = "PAYMENT"
)

// Notification is a best-effort side record appended after a workflow write
// commits. Delivery is not guaranteed; readers poll their unread set.
type Notification struct {
	ID            int       `json:"id"`
	RecipientID   int       `json:"recipient_id"`
	RecipientRole string    `json:"recipient_role"`
	Message       string    `json:"message"`
	Type          string    `json:"type"`
	CreatedAt     time.Time `json:"created_at"`
	Read          bool      `json:"read"`
}
