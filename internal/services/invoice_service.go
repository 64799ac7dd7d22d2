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

const defaultGuviMarginPercent = 20

// InvoiceRepository is the persistence surface the invoice service needs.
type InvoiceRepository interface {
	Create(ctx context.Context, inv *models.Invoice) error
	GetByID(ctx context.Context, id int) (*models.Invoice, error)
	NextTrainerInvoiceNumber(ctx context.Context) (string, error)
	NextClientInvoiceNumber(ctx context.Context) (string, error)
	GetTrainerInvoiceByTraining(ctx context.Context, trainingID int) (*models.Invoice, error)
	GetClientInvoiceByTraining(ctx context.Context, trainingID int) (*models.Invoice, error)
	List(ctx context.Context, invType string) ([]models.Invoice, error)
	ListByTrainer(ctx context.Context, trainerID int) ([]models.Invoice, error)
	ListByClient(ctx context.Context, clientID int) ([]models.Invoice, error)
	Update(ctx context.Context, inv *models.Invoice) error
	// ApproveWithClientInvoice persists the approved trainer invoice and
	// the derived client invoice in one transaction.
	ApproveWithClientInvoice(ctx context.Context, trainerInv, clientInv *models.Invoice) error
}

type InvoiceService struct {
	repo          InvoiceRepository
	pos           PORepository
	clients       ClientRepository
	trainers      TrainerRepository
	trainings     TrainingRepository
	settings      *SystemSettingService
	notifications *NotificationService
}

func NewInvoiceService(repo InvoiceRepository, pos PORepository, clients ClientRepository, trainers TrainerRepository, trainings TrainingRepository, settings *SystemSettingService, notifications *NotificationService) *InvoiceService {
	return &InvoiceService{repo: repo, pos: pos, clients: clients, trainers: trainers, trainings: trainings, settings: settings, notifications: notifications}
}

// SubmitTrainerInvoice raises the trainer's invoice for a completed,
// client-verified training. One trainer invoice per training.
func (s *InvoiceService) SubmitTrainerInvoice(ctx context.Context, trainerUserID int, req models.SubmitInvoiceRequest) (*models.Invoice, error) {
	trainer, err := s.trainers.GetByUserID(ctx, trainerUserID)
	if err != nil {
		return nil, err
	}

	training, err := s.trainings.GetByID(ctx, req.TrainingID)
	if err != nil {
		return nil, err
	}
	if training.TrainerID != trainer.ID {
		return nil, ErrForbidden
	}
	if training.Status != models.TrainingStatusCompleted {
		return nil, NewConflictError("training is not completed yet")
	}
	if !training.VerifiedByClient {
		return nil, NewConflictError("training has not been verified by the client")
	}

	trainerPO, err := s.pos.GetTrainerPOByTraining(ctx, training.ID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, NewConflictError("no trainer purchase order exists for this training")
		}
		return nil, err
	}

	if _, err := s.repo.GetTrainerInvoiceByTraining(ctx, training.ID); err == nil {
		return nil, NewConflictError("an invoice has already been submitted for this training")
	} else if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	amount := Round2(req.Amount)
	if amount == 0 {
		amount = trainerPO.Amount
	}
	if amount < 0 {
		return nil, NewValidationError("amount must be positive")
	}

	number, err := s.repo.NextTrainerInvoiceNumber(ctx)
	if err != nil {
		return nil, err
	}

	inv := &models.Invoice{
		InvoiceNumber: number,
		Type:          models.InvoiceTypeTrainer,
		TrainingID:    training.ID,
		TrainerID:     &trainer.ID,
		TrainerAmount: amount,
		Description:   fmt.Sprintf("Trainer invoice for training #%d (%s)", training.ID, training.Technology),
		Status:        models.InvoiceStatusSubmitted,
		SubmittedAt:   timeutil.Now(),
	}
	if err := s.repo.Create(ctx, inv); err != nil {
		return nil, err
	}

	metrics.WorkflowTransitions.WithLabelValues("invoice", models.InvoiceStatusSubmitted).Inc()
	cache.InvalidateDashboard(ctx)
	s.notifications.NotifyAdmin(ctx,
		fmt.Sprintf("Trainer %s submitted invoice %s for %.2f", trainer.Name, inv.InvoiceNumber, inv.TrainerAmount),
		models.NotificationTypeInvoice)

	return inv, nil
}

// ApproveTrainerInvoice approves a submitted trainer invoice and raises
// the marked-up client invoice in the same transaction.
func (s *InvoiceService) ApproveTrainerInvoice(ctx context.Context, invoiceID int, req models.ApproveInvoiceRequest) (*models.Invoice, error) {
	trainerInv, err := s.repo.GetByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	if trainerInv.Type != models.InvoiceTypeTrainer {
		return nil, NewValidationError("only a trainer invoice can be approved")
	}
	if trainerInv.Status != models.InvoiceStatusSubmitted {
		return nil, NewConflictError(fmt.Sprintf("invoice is already %s", trainerInv.Status))
	}

	if _, err := s.repo.GetClientInvoiceByTraining(ctx, trainerInv.TrainingID); err == nil {
		return nil, NewConflictError("a client invoice already exists for this training")
	} else if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	pct := req.MarginPercent
	if pct == 0 {
		pct = s.settings.GetPercent(ctx, models.SettingGuviMarginPercent, defaultGuviMarginPercent)
	}
	if pct < 0 || pct > 100 {
		return nil, NewValidationError("margin must be between 0 and 100")
	}

	training, err := s.trainings.GetByID(ctx, trainerInv.TrainingID)
	if err != nil {
		return nil, err
	}

	guviMargin, clientAmount := AddMargin(trainerInv.TrainerAmount, pct)

	number, err := s.repo.NextClientInvoiceNumber(ctx)
	if err != nil {
		return nil, err
	}

	now := timeutil.Now()
	trainerInv.Status = models.InvoiceStatusApproved
	trainerInv.ApprovedAt = &now

	clientInv := &models.Invoice{
		InvoiceNumber: number,
		Type:          models.InvoiceTypeClient,
		TrainingID:    training.ID,
		TrainerID:     trainerInv.TrainerID,
		ClientID:      &training.ClientID,
		TrainerAmount: trainerInv.TrainerAmount,
		GuviMargin:    guviMargin,
		ClientAmount:  clientAmount,
		Description:   fmt.Sprintf("Client invoice for training #%d (%s)", training.ID, training.Technology),
		Status:        models.InvoiceStatusSubmitted,
		SubmittedAt:   now,
	}

	if err := s.repo.ApproveWithClientInvoice(ctx, trainerInv, clientInv); err != nil {
		return nil, err
	}

	metrics.WorkflowTransitions.WithLabelValues("invoice", models.InvoiceStatusApproved).Inc()
	cache.InvalidateDashboard(ctx)

	if trainerInv.TrainerID != nil {
		if trainer, terr := s.trainers.GetByID(ctx, *trainerInv.TrainerID); terr == nil {
			s.notifications.Notify(ctx, trainer.UserID, models.RoleTrainer,
				fmt.Sprintf("Your invoice %s has been approved", trainerInv.InvoiceNumber),
				models.NotificationTypeInvoice)
		}
	}
	if client, cerr := s.clients.GetByID(ctx, training.ClientID); cerr == nil {
		s.notifications.Notify(ctx, client.UserID, models.RoleClient,
			fmt.Sprintf("Invoice %s for %.2f has been raised for your training", clientInv.InvoiceNumber, clientInv.ClientAmount),
			models.NotificationTypeInvoice)
	}

	return clientInv, nil
}

// MarkPaid records payment of either invoice leg. The two legs settle
// independently.
func (s *InvoiceService) MarkPaid(ctx context.Context, invoiceID int) (*models.Invoice, error) {
	inv, err := s.repo.GetByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	if inv.Status == models.InvoiceStatusPaid {
		return nil, NewConflictError("invoice is already paid")
	}
	if inv.Type == models.InvoiceTypeTrainer && inv.Status != models.InvoiceStatusApproved {
		return nil, NewConflictError("trainer invoice must be approved before payment")
	}

	now := timeutil.Now()
	inv.Status = models.InvoiceStatusPaid
	inv.PaidAt = &now
	if err := s.repo.Update(ctx, inv); err != nil {
		return nil, err
	}

	metrics.WorkflowTransitions.WithLabelValues("invoice", models.InvoiceStatusPaid).Inc()
	cache.InvalidateDashboard(ctx)
	s.notifyPaid(ctx, inv)

	return inv, nil
}

func (s *InvoiceService) notifyPaid(ctx context.Context, inv *models.Invoice) {
	switch inv.Type {
	case models.InvoiceTypeTrainer:
		if inv.TrainerID != nil {
			if trainer, err := s.trainers.GetByID(ctx, *inv.TrainerID); err == nil {
				s.notifications.Notify(ctx, trainer.UserID, models.RoleTrainer,
					fmt.Sprintf("Invoice %s has been paid (%.2f)", inv.InvoiceNumber, inv.TrainerAmount),
					models.NotificationTypePayment)
			}
		}
	case models.InvoiceTypeClient:
		if inv.ClientID != nil {
			if client, err := s.clients.GetByID(ctx, *inv.ClientID); err == nil {
				s.notifications.Notify(ctx, client.UserID, models.RoleClient,
					fmt.Sprintf("Payment received for invoice %s (%.2f)", inv.InvoiceNumber, inv.ClientAmount),
					models.NotificationTypePayment)
			}
		}
		s.notifications.NotifyAdmin(ctx,
			fmt.Sprintf("Client invoice %s paid (%.2f)", inv.InvoiceNumber, inv.ClientAmount),
			models.NotificationTypePayment)
	}
}

// GetByID returns one invoice.
func (s *InvoiceService) GetByID(ctx context.Context, id int) (*models.Invoice, error) {
	return s.repo.GetByID(ctx, id)
}

// List returns invoices, optionally filtered by type.
func (s *InvoiceService) List(ctx context.Context, invType string) ([]models.Invoice, error) {
	return s.repo.List(ctx, invType)
}

// ListForTrainer lists the invoices raised by a trainer login.
func (s *InvoiceService) ListForTrainer(ctx context.Context, trainerUserID int) ([]models.Invoice, error) {
	trainer, err := s.trainers.GetByUserID(ctx, trainerUserID)
	if err != nil {
		return nil, err
	}
	return s.repo.ListByTrainer(ctx, trainer.ID)
}

// ListForClient lists the invoices addressed to a client login.
func (s *InvoiceService) ListForClient(ctx context.Context, clientUserID int) ([]models.Invoice, error) {
	client, err := s.clients.GetByUserID(ctx, clientUserID)
	if err != nil {
		return nil, err
	}
	return s.repo.ListByClient(ctx, client.ID)
}
