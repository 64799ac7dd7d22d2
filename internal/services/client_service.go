package services

import (
	"context"
	"errors"
	"fmt"

	"guvi-backend/internal/auth"
	"guvi-backend/internal/cache"
	"guvi-backend/internal/metrics"
	"guvi-backend/internal/models"
	"guvi-backend/internal/timeutil"
)

// ClientRepository is the persistence surface the client service needs.
type ClientRepository interface {
	CreateWithUser(ctx context.Context, u *models.User, c *models.Client) error
	GetByID(ctx context.Context, id int) (*models.Client, error)
	GetByUserID(ctx context.Context, userID int) (*models.Client, error)
	List(ctx context.Context, status string) ([]models.Client, error)
	UpdateStatus(ctx context.Context, c *models.Client) error
}

type ClientService struct {
	repo          ClientRepository
	users         UserRepository
	notifications *NotificationService
}

func NewClientService(repo ClientRepository, users UserRepository, notifications *NotificationService) *ClientService {
	return &ClientService{repo: repo, users: users, notifications: notifications}
}

// Register creates the login account and the client request in one
// transaction. The free-text duration is parsed up front so a request
// with a broken duration never reaches the mapping stage.
func (s *ClientService) Register(ctx context.Context, req models.RegisterClientRequest) (*models.Client, error) {
	if req.Name == "" || req.Email == "" || req.Password == "" {
		return nil, NewValidationError("name, email and password are required")
	}
	if req.Technology == "" {
		return nil, NewValidationError("technology is required")
	}
	if req.Budget <= 0 {
		return nil, NewValidationError("budget must be positive")
	}

	months, err := models.ParseDurationMonths(req.Duration)
	if err != nil {
		return nil, NewValidationError(err.Error())
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
		Role:         models.RoleClient,
		Name:         req.Name,
		CreatedAt:    now,
	}
	client := &models.Client{
		Name:              req.Name,
		Email:             req.Email,
		Phone:             req.Phone,
		CompanyName:       req.CompanyName,
		Technology:        req.Technology,
		DurationMonths:    months,
		ExpectedStartDate: req.ExpectedStartDate,
		Budget:            Round2(req.Budget),
		Status:            models.ClientStatusRequested,
		CreatedAt:         now,
	}

	if err := s.repo.CreateWithUser(ctx, user, client); err != nil {
		return nil, err
	}

	metrics.WorkflowTransitions.WithLabelValues("client", models.ClientStatusRequested).Inc()
	cache.InvalidateDashboard(ctx)
	s.notifications.NotifyAdmin(ctx,
		fmt.Sprintf("New training request from %s (%s, %d months)", client.Name, client.Technology, months),
		models.NotificationTypeRegistration)

	return client, nil
}

// Approve moves a requested client to APPROVED. Terminal states reject
// further transitions.
func (s *ClientService) Approve(ctx context.Context, id int) (*models.Client, error) {
	return s.decide(ctx, id, models.ClientStatusApproved)
}

// Reject moves a requested client to REJECTED.
func (s *ClientService) Reject(ctx context.Context, id int) (*models.Client, error) {
	return s.decide(ctx, id, models.ClientStatusRejected)
}

func (s *ClientService) decide(ctx context.Context, id int, status string) (*models.Client, error) {
	client, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if client.Status != models.ClientStatusRequested {
		return nil, NewConflictError(fmt.Sprintf("client is already %s", client.Status))
	}

	now := timeutil.Now()
	client.Status = status
	if status == models.ClientStatusApproved {
		client.ApprovedAt = &now
	} else {
		client.RejectedAt = &now
	}

	if err := s.repo.UpdateStatus(ctx, client); err != nil {
		return nil, err
	}

	metrics.WorkflowTransitions.WithLabelValues("client", status).Inc()
	cache.InvalidateDashboard(ctx)

	verb := "approved"
	if status == models.ClientStatusRejected {
		verb = "rejected"
	}
	s.notifications.Notify(ctx, client.UserID, models.RoleClient,
		fmt.Sprintf("Your training request has been %s", verb),
		models.NotificationTypeApproval)

	return client, nil
}

// GetByID returns one client.
func (s *ClientService) GetByID(ctx context.Context, id int) (*models.Client, error) {
	return s.repo.GetByID(ctx, id)
}

// GetByUserID returns the client record owned by a login account.
func (s *ClientService) GetByUserID(ctx context.Context, userID int) (*models.Client, error) {
	return s.repo.GetByUserID(ctx, userID)
}

// List returns clients, optionally filtered by status.
func (s *ClientService) List(ctx context.Context, status string) ([]models.Client, error) {
	return s.repo.List(ctx, status)
}
