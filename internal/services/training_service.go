package services

import (
	"context"
	"fmt"

	"guvi-backend/internal/cache"
	"guvi-backend/internal/metrics"
	"guvi-backend/internal/models"
	"guvi-backend/internal/timeutil"
)

// TrainingRepository is the persistence surface the training service needs.
type TrainingRepository interface {
	CreateWithMilestones(ctx context.Context, t *models.Training, milestones []models.Milestone) error
	GetByID(ctx context.Context, id int) (*models.Training, error)
	GetMilestone(ctx context.Context, id int) (*models.Milestone, error)
	GetMilestones(ctx context.Context, trainingID int) ([]models.Milestone, error)
	UpdateMilestone(ctx context.Context, m *models.Milestone) error
	// UpdateMilestoneAndTraining persists the verified milestone and the
	// recomputed parent counters in one transaction.
	UpdateMilestoneAndTraining(ctx context.Context, m *models.Milestone, t *models.Training) error
	SetVerifiedByClient(ctx context.Context, t *models.Training) error
	ListWithNames(ctx context.Context) ([]models.TrainingWithNames, error)
	ListByClient(ctx context.Context, clientID int) ([]models.TrainingWithNames, error)
	ListByTrainer(ctx context.Context, trainerID int) ([]models.TrainingWithNames, error)
	GetOngoingByClient(ctx context.Context, clientID int) (*models.Training, error)
}

type TrainingService struct {
	repo          TrainingRepository
	clients       ClientRepository
	trainers      TrainerRepository
	notifications *NotificationService
}

func NewTrainingService(repo TrainingRepository, clients ClientRepository, trainers TrainerRepository, notifications *NotificationService) *TrainingService {
	return &TrainingService{repo: repo, clients: clients, trainers: trainers, notifications: notifications}
}

// CreateMapping maps an approved client to an approved trainer and
// generates the full milestone schedule in one transaction.
func (s *TrainingService) CreateMapping(ctx context.Context, req models.CreateMappingRequest) (*models.Training, error) {
	client, err := s.clients.GetByID(ctx, req.ClientID)
	if err != nil {
		return nil, err
	}
	if client.Status != models.ClientStatusApproved {
		return nil, NewConflictError("client is not approved")
	}

	trainer, err := s.trainers.GetByID(ctx, req.TrainerID)
	if err != nil {
		return nil, err
	}
	if trainer.Status != models.TrainerStatusApproved {
		return nil, NewConflictError("trainer is not approved")
	}

	if req.StartDate == "" {
		return nil, NewValidationError("start date is required")
	}
	start, err := timeutil.ParseDate(req.StartDate)
	if err != nil {
		return nil, NewValidationError("start date must be YYYY-MM-DD")
	}
	if client.DurationMonths < 1 {
		return nil, NewValidationError("client has no valid training duration")
	}

	training := &models.Training{
		ClientID:        client.ID,
		TrainerID:       trainer.ID,
		Technology:      client.Technology,
		DurationMonths:  client.DurationMonths,
		StartDate:       start,
		Status:          models.TrainingStatusOngoing,
		TotalMilestones: client.DurationMonths,
		CreatedAt:       timeutil.Now(),
	}
	milestones := GenerateMilestones(0, client.DurationMonths, start)

	if err := s.repo.CreateWithMilestones(ctx, training, milestones); err != nil {
		return nil, err
	}

	metrics.WorkflowTransitions.WithLabelValues("training", models.TrainingStatusOngoing).Inc()
	cache.InvalidateDashboard(ctx)
	s.notifications.Notify(ctx, client.UserID, models.RoleClient,
		fmt.Sprintf("Trainer %s has been assigned to your %s training", trainer.Name, training.Technology),
		models.NotificationTypeMapping)
	s.notifications.Notify(ctx, trainer.UserID, models.RoleTrainer,
		fmt.Sprintf("You have been assigned a %d-month %s training for %s", training.DurationMonths, training.Technology, client.Name),
		models.NotificationTypeMapping)

	return training, nil
}

// CompleteMilestone is the client's half of milestone sign-off: PENDING
// moves to IN_PROGRESS and waits for the trainer to verify.
func (s *TrainingService) CompleteMilestone(ctx context.Context, milestoneID, clientUserID int) (*models.Milestone, error) {
	milestone, err := s.repo.GetMilestone(ctx, milestoneID)
	if err != nil {
		return nil, err
	}
	training, err := s.repo.GetByID(ctx, milestone.TrainingID)
	if err != nil {
		return nil, err
	}

	client, err := s.clients.GetByUserID(ctx, clientUserID)
	if err != nil {
		return nil, err
	}
	if client.ID != training.ClientID {
		return nil, ErrForbidden
	}

	if milestone.Status != models.MilestoneStatusPending {
		return nil, NewConflictError(fmt.Sprintf("milestone is already %s", milestone.Status))
	}

	milestone.Status = models.MilestoneStatusInProgress
	milestone.CompletedBy = models.MilestoneByClient
	if err := s.repo.UpdateMilestone(ctx, milestone); err != nil {
		return nil, err
	}

	metrics.WorkflowTransitions.WithLabelValues("milestone", models.MilestoneStatusInProgress).Inc()

	trainer, err := s.trainers.GetByID(ctx, training.TrainerID)
	if err == nil {
		s.notifications.Notify(ctx, trainer.UserID, models.RoleTrainer,
			fmt.Sprintf("%s marked milestone %q as completed, please verify", client.Name, milestone.Title),
			models.NotificationTypeMilestone)
	}

	return milestone, nil
}

// VerifyMilestone is the trainer's half: IN_PROGRESS moves to COMPLETED
// and the parent training's counters are recomputed from scratch.
func (s *TrainingService) VerifyMilestone(ctx context.Context, milestoneID, trainerUserID int) (*models.Training, error) {
	milestone, err := s.repo.GetMilestone(ctx, milestoneID)
	if err != nil {
		return nil, err
	}
	training, err := s.repo.GetByID(ctx, milestone.TrainingID)
	if err != nil {
		return nil, err
	}

	trainer, err := s.trainers.GetByUserID(ctx, trainerUserID)
	if err != nil {
		return nil, err
	}
	if trainer.ID != training.TrainerID {
		return nil, ErrForbidden
	}

	if milestone.Status == models.MilestoneStatusCompleted {
		return nil, NewConflictError("milestone is already verified")
	}
	if milestone.Status != models.MilestoneStatusInProgress || milestone.CompletedBy != models.MilestoneByClient {
		return nil, NewConflictError("milestone must be marked completed by the client first")
	}

	now := timeutil.Now()
	milestone.Status = models.MilestoneStatusCompleted
	milestone.CompletedAt = &now

	milestones, err := s.repo.GetMilestones(ctx, training.ID)
	if err != nil {
		return nil, err
	}
	for i := range milestones {
		if milestones[i].ID == milestone.ID {
			milestones[i] = *milestone
		}
	}
	RecomputeProgress(training, milestones, now)

	if err := s.repo.UpdateMilestoneAndTraining(ctx, milestone, training); err != nil {
		return nil, err
	}

	metrics.WorkflowTransitions.WithLabelValues("milestone", models.MilestoneStatusCompleted).Inc()
	cache.InvalidateDashboard(ctx)

	client, cerr := s.clients.GetByID(ctx, training.ClientID)
	if cerr == nil {
		s.notifications.Notify(ctx, client.UserID, models.RoleClient,
			fmt.Sprintf("Milestone %q has been verified by your trainer", milestone.Title),
			models.NotificationTypeMilestone)
	}
	if training.Status == models.TrainingStatusCompleted {
		metrics.WorkflowTransitions.WithLabelValues("training", models.TrainingStatusCompleted).Inc()
		s.notifications.NotifyAdmin(ctx,
			fmt.Sprintf("Training #%d (%s) is complete", training.ID, training.Technology),
			models.NotificationTypeMilestone)
	}

	return training, nil
}

// VerifyTraining records the client's final sign-off on a completed
// training, which unlocks trainer invoicing.
func (s *TrainingService) VerifyTraining(ctx context.Context, trainingID, clientUserID int) (*models.Training, error) {
	training, err := s.repo.GetByID(ctx, trainingID)
	if err != nil {
		return nil, err
	}

	client, err := s.clients.GetByUserID(ctx, clientUserID)
	if err != nil {
		return nil, err
	}
	if client.ID != training.ClientID {
		return nil, ErrForbidden
	}

	if training.Status != models.TrainingStatusCompleted {
		return nil, NewConflictError("training is not completed yet")
	}
	if training.VerifiedByClient {
		return nil, NewConflictError("training is already verified")
	}

	now := timeutil.Now()
	training.VerifiedByClient = true
	training.VerifiedAt = &now
	if err := s.repo.SetVerifiedByClient(ctx, training); err != nil {
		return nil, err
	}

	metrics.WorkflowTransitions.WithLabelValues("training", "VERIFIED").Inc()

	trainer, terr := s.trainers.GetByID(ctx, training.TrainerID)
	if terr == nil {
		s.notifications.Notify(ctx, trainer.UserID, models.RoleTrainer,
			fmt.Sprintf("Training #%d has been verified by the client, you may submit your invoice", training.ID),
			models.NotificationTypeMilestone)
	}
	s.notifications.NotifyAdmin(ctx,
		fmt.Sprintf("Training #%d verified by client %s", training.ID, client.Name),
		models.NotificationTypeMilestone)

	return training, nil
}

// GetByID returns one training.
func (s *TrainingService) GetByID(ctx context.Context, id int) (*models.Training, error) {
	return s.repo.GetByID(ctx, id)
}

// GetMilestones lists a training's milestones in month order.
func (s *TrainingService) GetMilestones(ctx context.Context, trainingID int) ([]models.Milestone, error) {
	return s.repo.GetMilestones(ctx, trainingID)
}

// List returns all trainings with display names for the admin view.
func (s *TrainingService) List(ctx context.Context) ([]models.TrainingWithNames, error) {
	return s.repo.ListWithNames(ctx)
}

// ListForClient lists the trainings owned by a client login.
func (s *TrainingService) ListForClient(ctx context.Context, clientUserID int) ([]models.TrainingWithNames, error) {
	client, err := s.clients.GetByUserID(ctx, clientUserID)
	if err != nil {
		return nil, err
	}
	return s.repo.ListByClient(ctx, client.ID)
}

// ListForTrainer lists the trainings assigned to a trainer login.
func (s *TrainingService) ListForTrainer(ctx context.Context, trainerUserID int) ([]models.TrainingWithNames, error) {
	trainer, err := s.trainers.GetByUserID(ctx, trainerUserID)
	if err != nil {
		return nil, err
	}
	return s.repo.ListByTrainer(ctx, trainer.ID)
}
