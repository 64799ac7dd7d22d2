package services

import (
	"context"
	"errors"
	"fmt"

	"guvi-backend/internal/cache"
	"guvi-backend/internal/metrics"
	"guvi-backend/internal/models"
	"guvi-backend/internal/timeutil"
)

const defaultAdminProfitMargin = 10

// PORepository is the persistence surface the PO service needs.
type PORepository interface {
	Create(ctx context.Context, po *models.PO) error
	GetByID(ctx context.Context, id int) (*models.PO, error)
	NextClientPONumber(ctx context.Context) (string, error)
	NextTrainerPONumber(ctx context.Context) (string, error)
	GetClientPOByClient(ctx context.Context, clientID int) (*models.PO, error)
	GetTrainerPOByTraining(ctx context.Context, trainingID int) (*models.PO, error)
	List(ctx context.Context, poType string) ([]models.POWithNames, error)
	ListByClient(ctx context.Context, clientID int) ([]models.PO, error)
	ListByTrainer(ctx context.Context, trainerID int) ([]models.PO, error)
	UpdateStatus(ctx context.Context, po *models.PO) error
	// Process persists the processed client PO and the new trainer PO in
	// one transaction.
	Process(ctx context.Context, clientPO, trainerPO *models.PO) error
}

type POService struct {
	repo          PORepository
	clients       ClientRepository
	trainers      TrainerRepository
	trainings     TrainingRepository
	settings      *SystemSettingService
	notifications *NotificationService
}

func NewPOService(repo PORepository, clients ClientRepository, trainers TrainerRepository, trainings TrainingRepository, settings *SystemSettingService, notifications *NotificationService) *POService {
	return &POService{repo: repo, clients: clients, trainers: trainers, trainings: trainings, settings: settings, notifications: notifications}
}

// GenerateClientPO creates the client's purchase order for their budget.
// A client gets exactly one.
func (s *POService) GenerateClientPO(ctx context.Context, clientUserID int) (*models.PO, error) {
	client, err := s.clients.GetByUserID(ctx, clientUserID)
	if err != nil {
		return nil, err
	}
	if client.Status != models.ClientStatusApproved {
		return nil, NewConflictError("client is not approved")
	}

	if _, err := s.repo.GetClientPOByClient(ctx, client.ID); err == nil {
		return nil, NewConflictError("a purchase order already exists for this client")
	} else if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	number, err := s.repo.NextClientPONumber(ctx)
	if err != nil {
		return nil, err
	}

	po := &models.PO{
		PONumber:    number,
		Type:        models.POTypeClient,
		ClientID:    &client.ID,
		Amount:      Round2(client.Budget),
		Description: fmt.Sprintf("%s training for %s (%d months)", client.Technology, client.Name, client.DurationMonths),
		Status:      models.POStatusGenerated,
		GeneratedAt: timeutil.Now(),
	}
	if err := s.repo.Create(ctx, po); err != nil {
		return nil, err
	}

	metrics.WorkflowTransitions.WithLabelValues("po", models.POStatusGenerated).Inc()
	cache.InvalidateDashboard(ctx)
	s.notifications.NotifyAdmin(ctx,
		fmt.Sprintf("Client %s generated purchase order %s for %.2f", client.Name, po.PONumber, po.Amount),
		models.NotificationTypePO)

	return po, nil
}

// ProcessClientPO deducts the admin margin from a generated client PO and
// issues the trainer PO for the remainder, both in one transaction.
func (s *POService) ProcessClientPO(ctx context.Context, poID, adminUserID int, req models.ProcessPORequest) (*models.PO, error) {
	clientPO, err := s.repo.GetByID(ctx, poID)
	if err != nil {
		return nil, err
	}
	if clientPO.Type != models.POTypeClient {
		return nil, NewValidationError("only a client purchase order can be processed")
	}
	if clientPO.Status == models.POStatusProcessed {
		return nil, NewConflictError("purchase order is already processed")
	}
	if clientPO.ClientID == nil {
		return nil, NewValidationError("purchase order has no client")
	}

	pct := req.ProfitMarginPercent
	if pct == 0 {
		pct = s.settings.GetPercent(ctx, models.SettingAdminProfitMargin, defaultAdminProfitMargin)
	}
	if pct < 0 || pct >= 100 {
		return nil, NewValidationError("profit margin must be between 0 and 100")
	}

	training, err := s.trainings.GetOngoingByClient(ctx, *clientPO.ClientID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, NewConflictError("client has no ongoing training to issue a trainer purchase order for")
		}
		return nil, err
	}

	if _, err := s.repo.GetTrainerPOByTraining(ctx, training.ID); err == nil {
		return nil, NewConflictError("a trainer purchase order already exists for this training")
	} else if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	adminProfit, trainerAmount := SplitMargin(clientPO.Amount, pct)

	number, err := s.repo.NextTrainerPONumber(ctx)
	if err != nil {
		return nil, err
	}

	now := timeutil.Now()
	clientPO.Status = models.POStatusProcessed
	clientPO.ProcessedAt = &now
	clientPO.ProcessedBy = &adminUserID

	trainerPO := &models.PO{
		PONumber:       number,
		Type:           models.POTypeTrainer,
		TrainingID:     &training.ID,
		ClientID:       clientPO.ClientID,
		TrainerID:      &training.TrainerID,
		ClientPOID:     &clientPO.ID,
		OriginalAmount: clientPO.Amount,
		ProfitMargin:   pct,
		AdminProfit:    adminProfit,
		Amount:         trainerAmount,
		Description:    fmt.Sprintf("Trainer payment for training #%d (%s)", training.ID, training.Technology),
		Status:         models.POStatusSent,
		GeneratedAt:    now,
	}

	if err := s.repo.Process(ctx, clientPO, trainerPO); err != nil {
		return nil, err
	}

	metrics.WorkflowTransitions.WithLabelValues("po", models.POStatusProcessed).Inc()
	cache.InvalidateDashboard(ctx)

	if trainer, terr := s.trainers.GetByID(ctx, training.TrainerID); terr == nil {
		s.notifications.Notify(ctx, trainer.UserID, models.RoleTrainer,
			fmt.Sprintf("Purchase order %s for %.2f has been issued to you", trainerPO.PONumber, trainerPO.Amount),
			models.NotificationTypePO)
	}
	if client, cerr := s.clients.GetByID(ctx, *clientPO.ClientID); cerr == nil {
		s.notifications.Notify(ctx, client.UserID, models.RoleClient,
			fmt.Sprintf("Your purchase order %s has been processed", clientPO.PONumber),
			models.NotificationTypePO)
	}

	return trainerPO, nil
}

// AcknowledgeTrainerPO lets the assigned trainer acknowledge receipt of
// their purchase order.
func (s *POService) AcknowledgeTrainerPO(ctx context.Context, poID, trainerUserID int) (*models.PO, error) {
	po, err := s.repo.GetByID(ctx, poID)
	if err != nil {
		return nil, err
	}
	if po.Type != models.POTypeTrainer {
		return nil, NewValidationError("only a trainer purchase order can be acknowledged")
	}

	trainer, err := s.trainers.GetByUserID(ctx, trainerUserID)
	if err != nil {
		return nil, err
	}
	if po.TrainerID == nil || *po.TrainerID != trainer.ID {
		return nil, ErrForbidden
	}

	if po.Status != models.POStatusSent {
		return nil, NewConflictError(fmt.Sprintf("purchase order is %s", po.Status))
	}

	po.Status = models.POStatusAcknowledged
	if err := s.repo.UpdateStatus(ctx, po); err != nil {
		return nil, err
	}

	metrics.WorkflowTransitions.WithLabelValues("po", models.POStatusAcknowledged).Inc()
	s.notifications.NotifyAdmin(ctx,
		fmt.Sprintf("Trainer %s acknowledged purchase order %s", trainer.Name, po.PONumber),
		models.NotificationTypePO)

	return po, nil
}

// GetByID returns one purchase order.
func (s *POService) GetByID(ctx context.Context, id int) (*models.PO, error) {
	return s.repo.GetByID(ctx, id)
}

// List returns purchase orders with display names, optionally filtered
// by type.
func (s *POService) List(ctx context.Context, poType string) ([]models.POWithNames, error) {
	return s.repo.List(ctx, poType)
}

// ListForClient lists the purchase orders belonging to a client login.
func (s *POService) ListForClient(ctx context.Context, clientUserID int) ([]models.PO, error) {
	client, err := s.clients.GetByUserID(ctx, clientUserID)
	if err != nil {
		return nil, err
	}
	return s.repo.ListByClient(ctx, client.ID)
}

// ListForTrainer lists the purchase orders issued to a trainer login.
func (s *POService) ListForTrainer(ctx context.Context, trainerUserID int) ([]models.PO, error) {
	trainer, err := s.trainers.GetByUserID(ctx, trainerUserID)
	if err != nil {
		return nil, err
	}
	return s.repo.ListByTrainer(ctx, trainer.ID)
}
