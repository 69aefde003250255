package srs

import (
	"math"
	"time"

	"github.com/studyforge/srs-api/internal/domain"
)

// calculateNewEaseFactor determines the new ease factor after a review.
//
// The ease factor represents how quickly an item's interval grows. Successful
// recall adds a fixed bonus; a lapse subtracts a fixed, larger penalty. The
// asymmetry is intentional. The result is always clamped to
// [params.MinEaseFactor, params.MaxEaseFactor].
func calculateNewEaseFactor(currentEF float64, success bool, params *Params) float64 {
	newEF := currentEF
	if success {
		newEF += params.SuccessEaseBonus
	} else {
		newEF -= params.FailureEasePenalty
	}

	if newEF < params.MinEaseFactor {
		newEF = params.MinEaseFactor
	}
	if newEF > params.MaxEaseFactor {
		newEF = params.MaxEaseFactor
	}

	return newEF
}

// calculateNewInterval determines the new interval in days.
//
// On success the interval grows multiplicatively by the updated ease factor —
// the ease is recalculated first, then applied. On failure the interval is
// scaled down by the failure factor. Either way the result is never below one
// day once a review has occurred.
//
// Parameters:
//   - currentInterval: the interval in days before this review
//   - newEF: the ease factor already updated for this review
//   - success: whether the review counted as successful recall
//   - params: algorithm parameters
func calculateNewInterval(currentInterval int, newEF float64, success bool, params *Params) int {
	var next int
	if success {
		next = int(math.Round(float64(currentInterval) * newEF))
	} else {
		next = int(math.Round(float64(currentInterval) * params.FailureIntervalFactor))
	}

	if next < 1 {
		next = 1
	}

	return next
}

// calculateNextReviewDate determines when the item should next be shown.
//
// After a lapse the item comes back after the fixed relearn interval rather
// than the computed one, so a forgotten card is always seen again quickly no
// matter how long its interval had grown.
func calculateNextReviewDate(interval int, success bool, now time.Time, params *Params) time.Time {
	if !success {
		return now.AddDate(0, 0, params.RelearnIntervalDays)
	}
	return now.AddDate(0, 0, interval)
}

// calculateNextSchedule builds the post-review copy of an item.
//
// The returned item is a new instance: the input is never mutated, so a
// failed persistence step cannot leave a half-updated record behind. Content
// fields are copied through untouched; only scheduling fields and the
// cumulative statistics change.
//
// Step order matters and follows the success branch contract: the ease factor
// is updated first, then the new interval is computed from the updated ease.
func calculateNextSchedule(
	item *domain.LearningItem,
	quality domain.Quality,
	now time.Time,
	params *Params,
) *domain.LearningItem {
	next := *item

	success := quality.Success()

	next.EaseFactor = calculateNewEaseFactor(item.EaseFactor, success, params)
	next.IntervalDays = calculateNewInterval(item.IntervalDays, next.EaseFactor, success, params)

	if success {
		next.Repetitions = item.Repetitions + 1
	} else {
		next.Repetitions = 0
	}

	next.NextReviewAt = calculateNextReviewDate(next.IntervalDays, success, now, params)
	next.LastReviewedAt = now
	next.ReviewCount = item.ReviewCount + 1
	next.TotalQuality = item.TotalQuality + int(quality)
	next.UpdatedAt = now

	return &next
}
