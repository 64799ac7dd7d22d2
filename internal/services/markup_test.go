package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"guvi-backend/internal/models"
)

func TestRound2(t *testing.T) {
	assert.Equal(t, 100.0, Round2(100.004))
	assert.Equal(t, 0.13, Round2(0.125))
	assert.Equal(t, 33.33, Round2(33.333333))
	assert.Equal(t, -2.5, Round2(-2.504))
}

func TestSplitMargin(t *testing.T) {
	margin, remainder := SplitMargin(1000, 10)
	assert.Equal(t, 100.0, margin)
	assert.Equal(t, 900.0, remainder)

	margin, remainder = SplitMargin(5000, 10)
	assert.Equal(t, 500.0, margin)
	assert.Equal(t, 4500.0, remainder)

	// Legs always recombine to the rounded original
	margin, remainder = SplitMargin(999.99, 12.5)
	assert.Equal(t, 999.99, Round2(margin+remainder))
}

func TestAddMargin(t *testing.T) {
	margin, total := AddMargin(900, 20)
	assert.Equal(t, 180.0, margin)
	assert.Equal(t, 1080.0, total)

	margin, total = AddMargin(1234.56, 0)
	assert.Equal(t, 0.0, margin)
	assert.Equal(t, 1234.56, total)
}

func TestGenerateMilestones(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	milestones := GenerateMilestones(0, 4, start)
	require.Len(t, milestones, 4)

	assert.Equal(t, "Introduction", milestones[0].Title)
	assert.Equal(t, "Core Concepts", milestones[1].Title)
	assert.Equal(t, "Month 3 Training", milestones[2].Title)
	assert.Equal(t, "Advanced Topics & Project", milestones[3].Title)

	for i, m := range milestones {
		assert.Equal(t, i+1, m.Month)
		assert.Equal(t, models.MilestoneStatusPending, m.Status)
		assert.Equal(t, start.AddDate(0, i+1, 0), m.DueDate)
	}
	assert.Equal(t, time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC), milestones[3].DueDate)
}

func TestGenerateMilestonesSingleMonth(t *testing.T) {
	start := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	milestones := GenerateMilestones(0, 1, start)
	require.Len(t, milestones, 1)
	// The final-month title wins when first, middle and last coincide
	assert.Equal(t, "Advanced Topics & Project", milestones[0].Title)
}

func TestRecomputeProgress(t *testing.T) {
	now := time.Now()
	training := &models.Training{Status: models.TrainingStatusOngoing}
	milestones := []models.Milestone{
		{Status: models.MilestoneStatusCompleted},
		{Status: models.MilestoneStatusCompleted},
		{Status: models.MilestoneStatusInProgress},
	}

	RecomputeProgress(training, milestones, now)
	assert.Equal(t, 3, training.TotalMilestones)
	assert.Equal(t, 2, training.CompletedMilestones)
	assert.Equal(t, 67, training.ProgressPercentage)
	assert.Equal(t, models.TrainingStatusOngoing, training.Status)
	assert.Nil(t, training.CompletedAt)
}

func TestRecomputeProgressAllDone(t *testing.T) {
	now := time.Now()
	training := &models.Training{Status: models.TrainingStatusOngoing}
	milestones := []models.Milestone{
		{Status: models.MilestoneStatusCompleted},
		{Status: models.MilestoneStatusCompleted},
	}

	RecomputeProgress(training, milestones, now)
	assert.Equal(t, 100, training.ProgressPercentage)
	assert.Equal(t, models.TrainingStatusCompleted, training.Status)
	require.NotNil(t, training.CompletedAt)
	assert.Equal(t, now, *training.CompletedAt)
}
