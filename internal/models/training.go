package models

import "time"

const (
	TrainingStatusOngoing   = "ONGOING"
	TrainingStatusCompleted = "COMPLETED"
	TrainingStatusCancelled = "CANCELLED"
)

const (
	MilestoneStatusPending    = "PENDING"
	MilestoneStatusInProgress = "IN_PROGRESS"
	MilestoneStatusCompleted  = "COMPLETED"
)

// Who last acted on a milestone. The client marks it done (IN_PROGRESS,
// completed_by=client), then the trainer verifies it to COMPLETED.
const (
	MilestoneByClient  = "client"
	MilestoneByTrainer = "trainer"
)

type Training struct {
	ID                  int        `json:"id"`
	ClientID            int        `json:"client_id"`
	TrainerID           int        `json:"trainer_id"`
	Technology          string     `json:"technology"`
	DurationMonths      int        `json:"duration_months"`
	StartDate           time.Time  `json:"start_date"`
	Status              string     `json:"status"`
	TotalMilestones     int        `json:"total_milestones"`
	CompletedMilestones int        `json:"completed_milestones"`
	ProgressPercentage  int        `json:"progress_percentage"`
	VerifiedByClient    bool       `json:"verified_by_client"`
	VerifiedAt          *time.Time `json:"verified_at,omitempty"`
	CreatedAt           time.Time  `json:"created_at"`
	CompletedAt         *time.Time `json:"completed_at,omitempty"`
}

type Milestone struct {
	ID          int        `json:"id"`
	TrainingID  int        `json:"training_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Month       int        `json:"month"`
	DueDate     time.Time  `json:"due_date"`
	Status      string     `json:"status"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	CompletedBy string     `json:"completed_by,omitempty"`
}

type CreateMappingRequest struct {
	ClientID  int    `json:"client_id"`
	TrainerID int    `json:"trainer_id"`
	StartDate string `json:"start_date"` // YYYY-MM-DD
}

// TrainingWithNames carries display names for list views. Missing references
// degrade to "Unknown Client"/"Unknown Trainer" instead of failing the list.
type TrainingWithNames struct {
	Training
	ClientName  string `json:"client_name"`
	TrainerName string `json:"trainer_name"`
}
