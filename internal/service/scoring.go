package service

import (
	"math"

	"github.com/noah-isme/enare-prep-api/internal/models"
)

// reviewOffsets maps performance to the number of days before the topic must
// be reviewed again. Stronger performance earns a longer interval.
var reviewOffsets = map[models.PerformanceTier]int{
	models.TierExcellent: 14,
	models.TierGood:      7,
	models.TierRegular:   3,
	models.TierWeak:      1,
}

// Percentage returns round(correct/total*100). Callers must reject total < 1
// and correct outside [0, total] before calling.
func Percentage(correct, total int) int {
	return int(math.Round(float64(correct) / float64(total) * 100))
}

// Classify maps a percentage onto a performance tier. The thresholds are
// closed and non-overlapping: 90 is excellent, 89 is good, 60 is regular.
func Classify(percentage int) models.PerformanceTier {
	switch {
	case percentage >= 90:
		return models.TierExcellent
	case percentage >= 75:
		return models.TierGood
	case percentage >= 60:
		return models.TierRegular
	default:
		return models.TierWeak
	}
}

// ReviewOffsetDays returns the review interval for a tier.
func ReviewOffsetDays(tier models.PerformanceTier) int {
	return reviewOffsets[tier]
}

// NextReviewDate schedules the forced review for a session. The interval
// depends only on this single session; there is no per-topic review history.
func NextReviewDate(sessionDate models.Date, tier models.PerformanceTier) models.Date {
	return sessionDate.AddDays(ReviewOffsetDays(tier))
}
