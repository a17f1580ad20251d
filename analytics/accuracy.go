package analytics

import (
	"math"

	"socialpulse/models"
)

// Engagement level cutoffs for the actual-outcome classification. These are
// fixed design constants, not fitted to the data; keeping them named makes
// the classification boundary auditable.
const (
	MediumEngagementMin int64 = 50  // below this the level is "low"
	HighEngagementMin   int64 = 200 // at or above this the level is "high"
)

// ClassifyEngagement maps a total engagement sum to a coarse level.
func ClassifyEngagement(total int64) string {
	switch {
	case total < MediumEngagementMin:
		return models.EngagementLow
	case total < HighEngagementMin:
		return models.EngagementMedium
	default:
		return models.EngagementHigh
	}
}

type ErrorStats struct {
	MeanError         float64 `json:"mean_error"`
	MeanAbsoluteError float64 `json:"mean_absolute_error"`
}

type LevelStats struct {
	Accuracy float64 `json:"accuracy"` // percentage, 0-100
}

type AccuracyMetrics struct {
	Likes           ErrorStats `json:"likes"`
	Shares          ErrorStats `json:"shares"`
	Comments        ErrorStats `json:"comments"`
	EngagementLevel LevelStats `json:"engagement_level"`
}

// AccuracyReport is the scorer output. Metrics is nil when no reconciled
// predictions exist; that case is a successful empty result, not an error.
type AccuracyReport struct {
	Count   int              `json:"count"`
	Message string           `json:"message,omitempty"`
	Metrics *AccuracyMetrics `json:"metrics,omitempty"`
}

// ScoreAccuracy compares predicted against actual engagement for every
// reconciled prediction. Signed error is predicted minus actual; a record is
// a correct classification when its stored level matches the level computed
// from the actual totals.
func ScoreAccuracy(preds []models.Prediction) AccuracyReport {
	var (
		likesErr, likesAbs       []float64
		sharesErr, sharesAbs     []float64
		commentsErr, commentsAbs []float64
		correct                  int
		total                    int
	)

	for i := range preds {
		p := &preds[i]
		if !p.Reconciled() {
			continue
		}
		total++

		le := p.PredictedLikes - float64(*p.ActualLikes)
		se := p.PredictedShares - float64(*p.ActualShares)
		ce := p.PredictedComments - float64(*p.ActualComments)
		likesErr = append(likesErr, le)
		likesAbs = append(likesAbs, math.Abs(le))
		sharesErr = append(sharesErr, se)
		sharesAbs = append(sharesAbs, math.Abs(se))
		commentsErr = append(commentsErr, ce)
		commentsAbs = append(commentsAbs, math.Abs(ce))

		actualLevel := ClassifyEngagement(*p.ActualLikes + *p.ActualShares + *p.ActualComments)
		if p.EngagementLevel == actualLevel {
			correct++
		}
	}

	if total == 0 {
		return AccuracyReport{
			Count:   0,
			Message: "no predictions with recorded actual outcomes yet",
		}
	}

	return AccuracyReport{
		Count: total,
		Metrics: &AccuracyMetrics{
			Likes:           ErrorStats{MeanError: mean(likesErr), MeanAbsoluteError: mean(likesAbs)},
			Shares:          ErrorStats{MeanError: mean(sharesErr), MeanAbsoluteError: mean(sharesAbs)},
			Comments:        ErrorStats{MeanError: mean(commentsErr), MeanAbsoluteError: mean(commentsAbs)},
			EngagementLevel: LevelStats{Accuracy: float64(correct) / float64(total) * 100},
		},
	}
}
