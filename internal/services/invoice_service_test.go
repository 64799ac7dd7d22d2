package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"guvi-backend/internal/models"
)

// runToVerifiedTraining drives the workflow through mapping, completion,
// client verification and PO processing.
func runToVerifiedTraining(t *testing.T, env *testEnv) (*models.Client, *models.Trainer, *models.Training) {
	t.Helper()
	ctx := context.Background()

	client, trainer, training := setupMapping(t, env, "2 months")
	completeTraining(t, env, client, trainer, training)
	_, err := env.trainingSvc.VerifyTraining(ctx, training.ID, client.UserID)
	require.NoError(t, err)

	po, err := env.poSvc.GenerateClientPO(ctx, client.UserID)
	require.NoError(t, err)
	_, err = env.poSvc.ProcessClientPO(ctx, po.ID, 1, models.ProcessPORequest{ProfitMarginPercent: 10})
	require.NoError(t, err)

	return client, trainer, training
}

func TestSubmitTrainerInvoiceDefaultsToPOAmount(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	_, trainer, training := runToVerifiedTraining(t, env)

	inv, err := env.invoiceSvc.SubmitTrainerInvoice(ctx, trainer.UserID, models.SubmitInvoiceRequest{
		TrainingID: training.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, "INV-TRAINER-000001", inv.InvoiceNumber)
	assert.Equal(t, models.InvoiceStatusSubmitted, inv.Status)
	// Budget 5000 minus the 10 percent admin margin
	assert.Equal(t, 4500.0, inv.TrainerAmount)

	// One trainer invoice per training
	_, err = env.invoiceSvc.SubmitTrainerInvoice(ctx, trainer.UserID, models.SubmitInvoiceRequest{
		TrainingID: training.ID,
	})
	assert.ErrorIs(t, err, ErrConflict)
}

func TestSubmitTrainerInvoiceRequiresVerification(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	client, trainer, training := setupMapping(t, env, "2 months")

	// Still ongoing
	_, err := env.invoiceSvc.SubmitTrainerInvoice(ctx, trainer.UserID, models.SubmitInvoiceRequest{
		TrainingID: training.ID,
	})
	assert.ErrorIs(t, err, ErrConflict)

	completeTraining(t, env, client, trainer, training)

	// Completed but not client-verified
	_, err = env.invoiceSvc.SubmitTrainerInvoice(ctx, trainer.UserID, models.SubmitInvoiceRequest{
		TrainingID: training.ID,
	})
	assert.ErrorIs(t, err, ErrConflict)
}

func TestApproveTrainerInvoiceRaisesClientInvoice(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	client, trainer, training := runToVerifiedTraining(t, env)

	inv, err := env.invoiceSvc.SubmitTrainerInvoice(ctx, trainer.UserID, models.SubmitInvoiceRequest{
		TrainingID: training.ID,
		Amount:     900,
	})
	require.NoError(t, err)
	assert.Equal(t, 900.0, inv.TrainerAmount)

	clientInv, err := env.invoiceSvc.ApproveTrainerInvoice(ctx, inv.ID, models.ApproveInvoiceRequest{MarginPercent: 20})
	require.NoError(t, err)
	assert.Equal(t, "INV-CLIENT-000001", clientInv.InvoiceNumber)
	assert.Equal(t, models.InvoiceTypeClient, clientInv.Type)
	assert.Equal(t, 900.0, clientInv.TrainerAmount)
	assert.Equal(t, 180.0, clientInv.GuviMargin)
	assert.Equal(t, 1080.0, clientInv.ClientAmount)
	require.NotNil(t, clientInv.ClientID)
	assert.Equal(t, client.ID, *clientInv.ClientID)

	approved, err := env.invoiceSvc.GetByID(ctx, inv.ID)
	require.NoError(t, err)
	assert.Equal(t, models.InvoiceStatusApproved, approved.Status)
	require.NotNil(t, approved.ApprovedAt)

	// Approval is one-shot
	_, err = env.invoiceSvc.ApproveTrainerInvoice(ctx, inv.ID, models.ApproveInvoiceRequest{MarginPercent: 20})
	assert.ErrorIs(t, err, ErrConflict)
}

func TestApproveTrainerInvoiceDefaultsMargin(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	_, trainer, training := runToVerifiedTraining(t, env)
	inv, err := env.invoiceSvc.SubmitTrainerInvoice(ctx, trainer.UserID, models.SubmitInvoiceRequest{
		TrainingID: training.ID,
		Amount:     1000,
	})
	require.NoError(t, err)

	// No override and no stored setting: falls back to 20 percent
	clientInv, err := env.invoiceSvc.ApproveTrainerInvoice(ctx, inv.ID, models.ApproveInvoiceRequest{})
	require.NoError(t, err)
	assert.Equal(t, 200.0, clientInv.GuviMargin)
	assert.Equal(t, 1200.0, clientInv.ClientAmount)
}

func TestInvoicePaymentLegs(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	_, trainer, training := runToVerifiedTraining(t, env)
	inv, err := env.invoiceSvc.SubmitTrainerInvoice(ctx, trainer.UserID, models.SubmitInvoiceRequest{
		TrainingID: training.ID,
	})
	require.NoError(t, err)

	// Trainer invoice must be approved before it can be paid
	_, err = env.invoiceSvc.MarkPaid(ctx, inv.ID)
	assert.ErrorIs(t, err, ErrConflict)

	clientInv, err := env.invoiceSvc.ApproveTrainerInvoice(ctx, inv.ID, models.ApproveInvoiceRequest{})
	require.NoError(t, err)

	// The two legs settle independently
	paidClient, err := env.invoiceSvc.MarkPaid(ctx, clientInv.ID)
	require.NoError(t, err)
	assert.Equal(t, models.InvoiceStatusPaid, paidClient.Status)
	require.NotNil(t, paidClient.PaidAt)

	paidTrainer, err := env.invoiceSvc.MarkPaid(ctx, inv.ID)
	require.NoError(t, err)
	assert.Equal(t, models.InvoiceStatusPaid, paidTrainer.Status)

	// Paying twice is a conflict
	_, err = env.invoiceSvc.MarkPaid(ctx, clientInv.ID)
	assert.ErrorIs(t, err, ErrConflict)
}
