package models

import "time"

// Client lifecycle: REQUESTED -> APPROVED or REJECTED (both final).
// Only an APPROVED client may generate a purchase order.
const (
	ClientStatusRequested = "REQUESTED"
	ClientStatusApproved  = "APPROVED"
	ClientStatusRejected  = "REJECTED"
)

type Client struct {
	ID                int        `json:"id"`
	UserID            int        `json:"user_id"`
	Name              string     `json:"name"`
	Email             string     `json:"email"`
	Phone             string     `json:"phone"`
	CompanyName       string     `json:"company_name"`
	Technology        string     `json:"technology"`
	DurationMonths    int        `json:"duration_months"`
	ExpectedStartDate string     `json:"expected_start_date"`
	Budget            float64    `json:"budget"`
	Status            string     `json:"status"`
	CreatedAt         time.Time  `json:"created_at"`
	ApprovedAt        *time.Time `json:"approved_at,omitempty"`
	RejectedAt        *time.Time `json:"rejected_at,omitempty"`
}

type RegisterClientRequest struct {
	Name              string  `json:"name"`
	Email             string  `json:"email"`
	Password          string  `json:"password"`
	Phone             string  `json:"phone"`
	CompanyName       string  `json:"company_name"`
	Technology        string  `json:"technology"`
	Duration          string  `json:"duration"` // free text, e.g. "4 months"
	ExpectedStartDate string  `json:"expected_start_date"`
	Budget            float64 `json:"budget"`
}
