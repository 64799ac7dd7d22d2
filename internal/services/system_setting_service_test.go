package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"guvi-backend/internal/models"
)

func TestSettingUpdateAndDefaults(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	// Missing setting falls back to the supplied default
	assert.Equal(t, 10.0, env.settingSvc.GetPercent(ctx, models.SettingAdminProfitMargin, 10))

	_, err := env.settingSvc.Update(ctx, models.SettingAdminProfitMargin, "15")
	require.NoError(t, err)
	assert.Equal(t, 15.0, env.settingSvc.GetPercent(ctx, models.SettingAdminProfitMargin, 10))

	// Validation
	_, err = env.settingSvc.Update(ctx, models.SettingAdminProfitMargin, "150")
	assert.ErrorIs(t, err, ErrValidation)
	_, err = env.settingSvc.Update(ctx, models.SettingOnlinePaymentEnabled, "maybe")
	assert.ErrorIs(t, err, ErrValidation)
	_, err = env.settingSvc.Update(ctx, "unknown_key", "1")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestStoredMarginFeedsProcessing(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	_, err := env.settingSvc.Update(ctx, models.SettingAdminProfitMargin, "25")
	require.NoError(t, err)

	client, _, _ := setupMapping(t, env, "3 months")
	po, err := env.poSvc.GenerateClientPO(ctx, client.UserID)
	require.NoError(t, err)

	trainerPO, err := env.poSvc.ProcessClientPO(ctx, po.ID, 1, models.ProcessPORequest{})
	require.NoError(t, err)
	assert.Equal(t, 1250.0, trainerPO.AdminProfit)
	assert.Equal(t, 3750.0, trainerPO.Amount)
}

func TestOnlinePaymentToggle(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	assert.False(t, env.settingSvc.OnlinePaymentEnabled(ctx))

	_, err := env.settingSvc.Update(ctx, models.SettingOnlinePaymentEnabled, "true")
	require.NoError(t, err)
	assert.True(t, env.settingSvc.OnlinePaymentEnabled(ctx))
}
