package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"guvi-backend/internal/models"
)

func TestClientRegister(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	client, err := env.clientSvc.Register(ctx, models.RegisterClientRequest{
		Name:       "Acme Corp",
		Email:      "ops@acme.example",
		Password:   "secret123",
		Technology: "Go",
		Duration:   "4 months",
		Budget:     5000,
	})
	require.NoError(t, err)
	assert.Equal(t, models.ClientStatusRequested, client.Status)
	assert.Equal(t, 4, client.DurationMonths)
	assert.NotZero(t, client.UserID)

	// Login account was created alongside
	user, err := env.users.GetByEmail(ctx, "ops@acme.example")
	require.NoError(t, err)
	assert.Equal(t, models.RoleClient, user.Role)

	// Admin got notified
	unread, err := env.notificationSvc.ListUnread(ctx, 0, models.RoleAdmin)
	require.NoError(t, err)
	require.Len(t, unread, 1)
	assert.Equal(t, models.NotificationTypeRegistration, unread[0].Type)
}

func TestClientRegisterRejectsBadDuration(t *testing.T) {
	env := newTestEnv()

	for _, duration := range []string{"", "soon", "4 weeks", "-2 months", "0 months"} {
		_, err := env.clientSvc.Register(context.Background(), models.RegisterClientRequest{
			Name:       "Acme Corp",
			Email:      "ops@acme.example",
			Password:   "secret123",
			Technology: "Go",
			Duration:   duration,
			Budget:     5000,
		})
		assert.ErrorIs(t, err, ErrValidation, "duration %q", duration)
	}
}

func TestClientRegisterDuplicateEmail(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	req := models.RegisterClientRequest{
		Name:       "Acme Corp",
		Email:      "ops@acme.example",
		Password:   "secret123",
		Technology: "Go",
		Duration:   "3 months",
		Budget:     5000,
	}
	_, err := env.clientSvc.Register(ctx, req)
	require.NoError(t, err)

	_, err = env.clientSvc.Register(ctx, req)
	assert.ErrorIs(t, err, ErrConflict)
}

func TestClientApprovalIsTerminal(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	client, err := env.clientSvc.Register(ctx, models.RegisterClientRequest{
		Name:       "Acme Corp",
		Email:      "ops@acme.example",
		Password:   "secret123",
		Technology: "Go",
		Duration:   "3 months",
		Budget:     5000,
	})
	require.NoError(t, err)

	approved, err := env.clientSvc.Approve(ctx, client.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ClientStatusApproved, approved.Status)
	assert.NotNil(t, approved.ApprovedAt)

	// Approved is final in both directions
	_, err = env.clientSvc.Approve(ctx, client.ID)
	assert.ErrorIs(t, err, ErrConflict)
	_, err = env.clientSvc.Reject(ctx, client.ID)
	assert.ErrorIs(t, err, ErrConflict)

	// The client was told
	unread, err := env.notificationSvc.ListUnread(ctx, approved.UserID, models.RoleClient)
	require.NoError(t, err)
	require.Len(t, unread, 1)
	assert.Equal(t, models.NotificationTypeApproval, unread[0].Type)
}

func TestTrainerRejectionIsTerminal(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	trainer, err := env.trainerSvc.Register(ctx, models.RegisterTrainerRequest{
		Name:     "Priya Sharma",
		Email:    "priya@example.com",
		Password: "secret123",
		Skills:   []string{"Go"},
	})
	require.NoError(t, err)
	assert.Equal(t, models.TrainerStatusPending, trainer.Status)

	rejected, err := env.trainerSvc.Reject(ctx, trainer.ID)
	require.NoError(t, err)
	assert.Equal(t, models.TrainerStatusRejected, rejected.Status)
	assert.NotNil(t, rejected.RejectedAt)

	_, err = env.trainerSvc.Approve(ctx, trainer.ID)
	assert.ErrorIs(t, err, ErrConflict)
}
