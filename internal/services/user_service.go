package services

import (
	"context"
	"errors"
	"log"

	"guvi-backend/internal/auth"
	"guvi-backend/internal/models"
	"guvi-backend/internal/timeutil"
)

// UserRepository is the persistence surface the user service needs.
type UserRepository interface {
	Create(ctx context.Context, u *models.User) error
	GetByID(ctx context.Context, id int) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

type UserService struct {
	repo       UserRepository
	jwtManager *auth.JWTManager
}

func NewUserService(repo UserRepository, jwtManager *auth.JWTManager) *UserService {
	return &UserService{repo: repo, jwtManager: jwtManager}
}

// Login authenticates a user by email, password and role and returns a
// signed token. Role is checked so a client token cannot be minted from
// trainer credentials.
func (s *UserService) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error) {
	if req.Email == "" || req.Password == "" {
		return nil, NewValidationError("email and password are required")
	}

	user, err := s.repo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, NewValidationError("invalid email or password")
		}
		return nil, err
	}

	if !auth.VerifyPassword(user.PasswordHash, req.Password) {
		return nil, NewValidationError("invalid email or password")
	}

	if req.Role != "" && req.Role != user.Role {
		return nil, NewValidationError("invalid email or password")
	}

	token, err := s.jwtManager.GenerateToken(user)
	if err != nil {
		return nil, err
	}

	return &models.AuthResponse{Token: token, User: user}, nil
}

// EnsureAdmin creates the bootstrap admin account on first startup.
func (s *UserService) EnsureAdmin(ctx context.Context, email, password, name string) error {
	_, err := s.repo.GetByEmail(ctx, email)
	if err == nil {
		return nil
	}
	if !errors.Is(err, ErrNotFound) {
		return err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}

	admin := &models.User{
		Email:        email,
		PasswordHash: hash,
		Role:         models.RoleAdmin,
		Name:         name,
		CreatedAt:    timeutil.Now(),
	}
	if err := s.repo.Create(ctx, admin); err != nil {
		return err
	}
	log.Printf("[Startup] created admin account %s", email)
	return nil
}
