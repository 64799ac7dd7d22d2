package models

import "time"

// Trainer lifecycle mirrors the client one: PENDING_APPROVAL -> APPROVED or
// REJECTED, both final. Only an APPROVED trainer can be mapped to a training.
const (
	TrainerStatusPending  = "PENDING_APPROVAL"
	TrainerStatusApproved = "APPROVED"
	TrainerStatusRejected = "REJECTED"
)

type Trainer struct {
	ID           int        `json:"id"`
	UserID       int        `json:"user_id"`
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	Age          int        `json:"age"`
	Gender       string     `json:"gender"`
	Experience   string     `json:"experience"`
	Skills       []string   `json:"skills"`
	ResumeKey    string     `json:"resume_key,omitempty"`
	ResumeBase64 string     `json:"resume_base64,omitempty"`
	ExpectedRate float64    `json:"expected_rate"`
	Status       string     `json:"status"`
	CreatedAt    time.Time  `json:"created_at"`
	ApprovedAt   *time.Time `json:"approved_at,omitempty"`
	RejectedAt   *time.Time `json:"rejected_at,omitempty"`
}

type RegisterTrainerRequest struct {
	Name           string   `json:"name"`
	Email          string   `json:"email"`
	Password       string   `json:"password"`
	Age            int      `json:"age"`
	Gender         string   `json:"gender"`
	Experience     string   `json:"experience"`
	Skills         []string `json:"skills"`
	ResumeBase64   string   `json:"resume_base64"`
	ResumeFileName string   `json:"resume_file_name"`
	ExpectedRate   float64  `json:"expected_rate"`
}
