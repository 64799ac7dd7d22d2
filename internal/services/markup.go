package services

import (
	"fmt"
	"math"
	"time"

	"guvi-backend/internal/models"
)

// Round2 rounds a currency amount to two decimal places, half away
// from zero. All money leaving this package passes through it.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// SplitMargin deducts a percentage margin from an amount. Returns the
// margin kept and the remainder passed downstream. Both legs are rounded
// so that margin + remainder == Round2(amount).
func SplitMargin(amount, pct float64) (margin, remainder float64) {
	amount = Round2(amount)
	margin = Round2(amount * pct / 100)
	remainder = Round2(amount - margin)
	return margin, remainder
}

// AddMargin adds a percentage margin on top of an amount. Returns the
// margin added and the grossed-up total.
func AddMargin(amount, pct float64) (margin, total float64) {
	amount = Round2(amount)
	margin = Round2(amount * pct / 100)
	total = Round2(amount + margin)
	return margin, total
}

// GenerateMilestones builds one milestone per month of the engagement.
// The first, middle and last months carry fixed curriculum titles, the
// rest are numbered. Due dates land on the monthly anniversary of the
// start date.
func GenerateMilestones(trainingID, months int, start time.Time) []models.Milestone {
	milestones := make([]models.Milestone, 0, months)
	mid := (months + 1) / 2
	for i := 1; i <= months; i++ {
		var title string
		switch {
		case i == 1:
			title = "Introduction"
		case i == months:
			title = "Advanced Topics & Project"
		case i == mid:
			title = "Core Concepts"
		default:
			title = fmt.Sprintf("Month %d Training", i)
		}
		milestones = append(milestones, models.Milestone{
			TrainingID: trainingID,
			Month:      i,
			Title:      title,
			Status:     models.MilestoneStatusPending,
			DueDate:    start.AddDate(0, i, 0),
		})
	}
	return milestones
}

// RecomputeProgress derives the training's counters from its milestones.
// When every milestone is completed the training itself is closed out.
func RecomputeProgress(training *models.Training, milestones []models.Milestone, now time.Time) {
	done := 0
	for _, m := range milestones {
		if m.Status == models.MilestoneStatusCompleted {
			done++
		}
	}
	training.TotalMilestones = len(milestones)
	training.CompletedMilestones = done
	if len(milestones) == 0 {
		training.ProgressPercentage = 0
		return
	}
	training.ProgressPercentage = int(math.Round(float64(done) * 100 / float64(len(milestones))))
	if done == len(milestones) {
		training.Status = models.TrainingStatusCompleted
		if training.CompletedAt == nil {
			t := now
			training.CompletedAt = &t
		}
	}
}
