package models

import "time"

// PredictionRecord is a persisted value bet awaiting reconciliation
// against the realized stat. Prediction fields are immutable once
// written; only the outcome fields are filled in later.
type PredictionRecord struct {
	Date       string    `json:"date" bson:"date"` // YYYY-MM-DD game date
	PlayerID   string    `json:"player_id" bson:"playerId"`
	PlayerName string    `json:"player" bson:"playerName"`
	StatType   StatType  `json:"stat_type" bson:"statType"`
	Predicted  float64   `json:"predicted_value" bson:"predictedValue"`
	Confidence float64   `json:"confidence" bson:"confidence"`
	Line       float64   `json:"betting_line" bson:"bettingLine"`
	Edge       float64   `json:"edge" bson:"edge"`
	Side       BetSide   `json:"side" bson:"side"`
	CreatedAt  time.Time `json:"created_at" bson:"createdAt"`

	// Outcome, set by the accuracy tracker once the game completes.
	// Nil means unresolved (game pending, postponed, or stat missing).
	Actual     *float64   `json:"actual_value,omitempty" bson:"actualValue,omitempty"`
	Correct    *bool      `json:"was_correct,omitempty" bson:"wasCorrect,omitempty"`
	ResolvedAt *time.Time `json:"resolved_at,omitempty" bson:"resolvedAt,omitempty"`
}

// Resolved reports whether an outcome has been recorded
func (r *PredictionRecord) Resolved() bool {
	return r.Actual != nil && r.Correct != nil
}

// Resolve fills in the outcome. The recommended side wins when the
// actual value lands on that side of the line; a push counts as a miss.
func (r *PredictionRecord) Resolve(actual float64, at time.Time) {
	correct := false
	switch r.Side {
	case BetOver:
		correct = actual > r.Line
	case BetUnder:
		correct = actual < r.Line
	}
	r.Actual = &actual
	r.Correct = &correct
	r.ResolvedAt = &at
}

// AccuracyStats aggregates resolved predictions over a trailing window.
// Unresolved records are excluded from both numerator and denominator.
type AccuracyStats struct {
	TotalPredictions int     `json:"total_predictions"`
	Correct          int     `json:"correct"`
	HitRate          float64 `json:"accuracy"` // percentage, one decimal
	AvgError         float64 `json:"avg_error"`
	AvgEdgeWinners   float64 `json:"avg_edge_winners"`
	AvgEdgeLosers    float64 `json:"avg_edge_losers"`
	DaysTracked      int     `json:"days_tracked"`
}
