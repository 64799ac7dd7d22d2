package services

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log"
	"path"
	"strings"

	"guvi-backend/internal/auth"
	"guvi-backend/internal/cache"
	"guvi-backend/internal/metrics"
	"guvi-backend/internal/models"
	"guvi-backend/internal/timeutil"
)

// TrainerRepository is the persistence surface the trainer service needs.
type TrainerRepository interface {
	CreateWithUser(ctx context.Context, u *models.User, t *models.Trainer) error
	GetByID(ctx context.Context, id int) (*models.Trainer, error)
	GetByUserID(ctx context.Context, userID int) (*models.Trainer, error)
	List(ctx context.Context, status string) ([]models.Trainer, error)
	UpdateStatus(ctx context.Context, t *models.Trainer) error
}

// ResumeStore uploads trainer resumes to object storage.
type ResumeStore interface {
	Put(ctx context.Context, key string, data []byte, contentType string) (string, error)
}

type TrainerService struct {
	repo          TrainerRepository
	users         UserRepository
	resumes       ResumeStore // nil disables uploads, resume stays inline
	notifications *NotificationService
}

func NewTrainerService(repo TrainerRepository, users UserRepository, resumes ResumeStore, notifications *NotificationService) *TrainerService {
	return &TrainerService{repo: repo, users: users, resumes: resumes, notifications: notifications}
}

// Register creates the login account and the trainer application in one
// transaction. A base64 resume is uploaded to object storage when a
// store is configured; upload failures keep the inline copy.
func (s *TrainerService) Register(ctx context.Context, req models.RegisterTrainerRequest) (*models.Trainer, error) {
	if req.Name == "" || req.Email == "" || req.Password == "" {
		return nil, NewValidationError("name, email and password are required")
	}
	if len(req.Skills) == 0 {
		return nil, NewValidationError("at least one skill is required")
	}

	if _, err := s.users.GetByEmail(ctx, req.Email); err == nil {
		return nil, NewConflictError("email already registered")
	} else if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	now := timeutil.Now()
	user := &models.User{
		Email:        req.Email,
		PasswordHash: hash,
		Role:         models.RoleTrainer,
		Name:         req.Name,
		CreatedAt:    now,
	}
	trainer := &models.Trainer{
		Name:         req.Name,
		Email:        req.Email,
		Age:          req.Age,
		Gender:       req.Gender,
		Experience:   req.Experience,
		Skills:       req.Skills,
		ExpectedRate: Round2(req.ExpectedRate),
		Status:       models.TrainerStatusPending,
		CreatedAt:    now,
	}

	if req.ResumeBase64 != "" {
		trainer.ResumeKey, trainer.ResumeBase64 = s.storeResume(ctx, req)
	}

	if err := s.repo.CreateWithUser(ctx, user, trainer); err != nil {
		return nil, err
	}

	metrics.WorkflowTransitions.WithLabelValues("trainer", models.TrainerStatusPending).Inc()
	cache.InvalidateDashboard(ctx)
	s.notifications.NotifyAdmin(ctx,
		fmt.Sprintf("New trainer application from %s (%s)", trainer.Name, strings.Join(trainer.Skills, ", ")),
		models.NotificationTypeRegistration)

	return trainer, nil
}

func (s *TrainerService) storeResume(ctx context.Context, req models.RegisterTrainerRequest) (key, inline string) {
	data, err := base64.StdEncoding.DecodeString(req.ResumeBase64)
	if err != nil {
		log.Printf("[Trainer] resume for %s is not valid base64, dropping: %v", req.Email, err)
		return "", ""
	}
	if s.resumes == nil {
		return "", req.ResumeBase64
	}

	name := req.ResumeFileName
	if name == "" {
		name = "resume.pdf"
	}
	objectKey := fmt.Sprintf("resumes/%d-%s", timeutil.Now().UnixNano(), path.Base(name))

	contentType := "application/pdf"
	if ext := strings.ToLower(path.Ext(name)); ext == ".doc" || ext == ".docx" {
		contentType = "application/msword"
	}

	stored, err := s.resumes.Put(ctx, objectKey, data, contentType)
	if err != nil {
		log.Printf("[Trainer] resume upload failed for %s, keeping inline copy: %v", req.Email, err)
		return "", req.ResumeBase64
	}
	return stored, ""
}

// Approve moves a pending trainer to APPROVED. Terminal states reject
// further transitions.
func (s *TrainerService) Approve(ctx context.Context, id int) (*models.Trainer, error) {
	return s.decide(ctx, id, models.TrainerStatusApproved)
}

// Reject moves a pending trainer to REJECTED.
func (s *TrainerService) Reject(ctx context.Context, id int) (*models.Trainer, error) {
	return s.decide(ctx, id, models.TrainerStatusRejected)
}

func (s *TrainerService) decide(ctx context.Context, id int, status string) (*models.Trainer, error) {
	trainer, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if trainer.Status != models.TrainerStatusPending {
		return nil, NewConflictError(fmt.Sprintf("trainer is already %s", trainer.Status))
	}

	now := timeutil.Now()
	trainer.Status = status
	if status == models.TrainerStatusApproved {
		trainer.ApprovedAt = &now
	} else {
		trainer.RejectedAt = &now
	}

	if err := s.repo.UpdateStatus(ctx, trainer); err != nil {
		return nil, err
	}

	metrics.WorkflowTransitions.WithLabelValues("trainer", status).Inc()
	cache.InvalidateDashboard(ctx)

	verb := "approved"
	if status == models.TrainerStatusRejected {
		verb = "rejected"
	}
	s.notifications.Notify(ctx, trainer.UserID, models.RoleTrainer,
		fmt.Sprintf("Your trainer application has been %s", verb),
		models.NotificationTypeApproval)

	return trainer, nil
}

// GetByID returns one trainer.
func (s *TrainerService) GetByID(ctx context.Context, id int) (*models.Trainer, error) {
	return s.repo.GetByID(ctx, id)
}

// GetByUserID returns the trainer record owned by a login account.
func (s *TrainerService) GetByUserID(ctx context.Context, userID int) (*models.Trainer, error) {
	return s.repo.GetByUserID(ctx, userID)
}

// List returns trainers, optionally filtered by status.
func (s *TrainerService) List(ctx context.Context, status string) ([]models.Trainer, error) {
	return s.repo.List(ctx, status)
}
