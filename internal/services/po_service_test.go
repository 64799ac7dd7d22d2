package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"guvi-backend/internal/models"
)

func TestGenerateClientPO(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	client, err := env.registerApprovedClient(ctx, "ops@acme.example", "3 months", 5000)
	require.NoError(t, err)

	po, err := env.poSvc.GenerateClientPO(ctx, client.UserID)
	require.NoError(t, err)
	assert.Equal(t, "PO-CLIENT-000001", po.PONumber)
	assert.Equal(t, models.POTypeClient, po.Type)
	assert.Equal(t, models.POStatusGenerated, po.Status)
	assert.Equal(t, 5000.0, po.Amount)

	// One client PO per client
	_, err = env.poSvc.GenerateClientPO(ctx, client.UserID)
	assert.ErrorIs(t, err, ErrConflict)
}

func TestGenerateClientPORequiresApproval(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	client, err := env.clientSvc.Register(ctx, models.RegisterClientRequest{
		Name: "Acme Corp", Email: "ops@acme.example", Password: "secret123",
		Technology: "Go", Duration: "3 months", Budget: 5000,
	})
	require.NoError(t, err)

	_, err = env.poSvc.GenerateClientPO(ctx, client.UserID)
	assert.ErrorIs(t, err, ErrConflict)
}

func TestProcessClientPO(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	client, trainer, training := setupMapping(t, env, "3 months")
	_ = trainer

	po, err := env.poSvc.GenerateClientPO(ctx, client.UserID)
	require.NoError(t, err)

	trainerPO, err := env.poSvc.ProcessClientPO(ctx, po.ID, 99, models.ProcessPORequest{ProfitMarginPercent: 10})
	require.NoError(t, err)

	assert.Equal(t, "PO-TRAINER-000001", trainerPO.PONumber)
	assert.Equal(t, models.POTypeTrainer, trainerPO.Type)
	assert.Equal(t, models.POStatusSent, trainerPO.Status)
	assert.Equal(t, 4500.0, trainerPO.Amount)
	assert.Equal(t, 500.0, trainerPO.AdminProfit)
	assert.Equal(t, 5000.0, trainerPO.OriginalAmount)
	assert.Equal(t, 10.0, trainerPO.ProfitMargin)
	require.NotNil(t, trainerPO.TrainingID)
	assert.Equal(t, training.ID, *trainerPO.TrainingID)
	require.NotNil(t, trainerPO.ClientPOID)
	assert.Equal(t, po.ID, *trainerPO.ClientPOID)

	processed, err := env.poSvc.GetByID(ctx, po.ID)
	require.NoError(t, err)
	assert.Equal(t, models.POStatusProcessed, processed.Status)
	require.NotNil(t, processed.ProcessedBy)
	assert.Equal(t, 99, *processed.ProcessedBy)

	// Processing is terminal
	_, err = env.poSvc.ProcessClientPO(ctx, po.ID, 99, models.ProcessPORequest{ProfitMarginPercent: 10})
	assert.ErrorIs(t, err, ErrConflict)
}

func TestProcessClientPODefaultsMarginFromSettings(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	client, _, _ := setupMapping(t, env, "3 months")
	po, err := env.poSvc.GenerateClientPO(ctx, client.UserID)
	require.NoError(t, err)

	// No override and no stored setting: falls back to 10 percent
	trainerPO, err := env.poSvc.ProcessClientPO(ctx, po.ID, 1, models.ProcessPORequest{})
	require.NoError(t, err)
	assert.Equal(t, 4500.0, trainerPO.Amount)
	assert.Equal(t, 500.0, trainerPO.AdminProfit)
}

func TestProcessClientPORequiresOngoingTraining(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	client, err := env.registerApprovedClient(ctx, "ops@acme.example", "3 months", 5000)
	require.NoError(t, err)

	po, err := env.poSvc.GenerateClientPO(ctx, client.UserID)
	require.NoError(t, err)

	_, err = env.poSvc.ProcessClientPO(ctx, po.ID, 1, models.ProcessPORequest{ProfitMarginPercent: 10})
	assert.ErrorIs(t, err, ErrConflict)
}

func TestAcknowledgeTrainerPO(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	client, trainer, _ := setupMapping(t, env, "3 months")
	po, err := env.poSvc.GenerateClientPO(ctx, client.UserID)
	require.NoError(t, err)
	trainerPO, err := env.poSvc.ProcessClientPO(ctx, po.ID, 1, models.ProcessPORequest{ProfitMarginPercent: 10})
	require.NoError(t, err)

	acked, err := env.poSvc.AcknowledgeTrainerPO(ctx, trainerPO.ID, trainer.UserID)
	require.NoError(t, err)
	assert.Equal(t, models.POStatusAcknowledged, acked.Status)

	_, err = env.poSvc.AcknowledgeTrainerPO(ctx, trainerPO.ID, trainer.UserID)
	assert.ErrorIs(t, err, ErrConflict)

	// Someone else's PO
	other, err := env.registerApprovedTrainer(ctx, "other@trainer.example")
	require.NoError(t, err)
	_, err = env.poSvc.AcknowledgeTrainerPO(ctx, trainerPO.ID, other.UserID)
	assert.ErrorIs(t, err, ErrForbidden)
}
