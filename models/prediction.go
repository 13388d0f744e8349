package models

import (
	"fmt"
	"math"
	"time"
)

// PredictionBreakdown explains how a smart prediction was assembled
type PredictionBreakdown struct {
	BasePrediction  float64            `json:"base_prediction"`
	Adjustments     map[string]float64 `json:"adjustments"`
	TotalAdjustment float64            `json:"total_adjustment"`
}

// Prediction is a point estimate for one player stat, derived at query
// time from a fixed window of recent games. It is only meaningful
// relative to the game-log snapshot it was computed from.
type Prediction struct {
	PlayerID   string               `json:"player_id"`
	PlayerName string               `json:"player"`
	StatType   StatType             `json:"stat_type"`
	Estimate   float64              `json:"prediction"`
	Confidence float64              `json:"confidence"` // 0-100
	GamesUsed  int                  `json:"games_used"`
	Method     string               `json:"method"` // "naive_average" or "smart_context"
	Breakdown  *PredictionBreakdown `json:"breakdown,omitempty"`
}

// BetSide is the recommended side of a prop bet
type BetSide string

const (
	BetOver  BetSide = "OVER"
	BetUnder BetSide = "UNDER"
)

// ValueBet pairs a prediction with a posted line. Ephemeral; recomputed
// on each request and persisted separately for accuracy tracking.
type ValueBet struct {
	PlayerID       string   `json:"player_id"`
	PlayerName     string   `json:"player"`
	StatType       StatType `json:"stat_type"`
	Prediction     float64  `json:"prediction"`
	Confidence     float64  `json:"confidence"`
	Line           float64  `json:"betting_line"`
	Edge           float64  `json:"edge"`
	HasValue       bool     `json:"has_value"`
	Side           BetSide  `json:"side,omitempty"`
	Recommendation string   `json:"recommendation,omitempty"`
	Game           string   `json:"game,omitempty"`
	Method         string   `json:"method"`
}

// Score is the composite ranking score: edge magnitude weighted by confidence
func (v *ValueBet) Score() float64 {
	return math.Abs(v.Edge) * v.Confidence / 100
}

// NewValueBet computes the edge between a prediction and a posted line.
// has-value is only set when the edge magnitude clears minEdge.
func NewValueBet(pred Prediction, line PropLine, minEdge float64) ValueBet {
	edge := pred.Estimate - line.Line

	vb := ValueBet{
		PlayerID:   pred.PlayerID,
		PlayerName: pred.PlayerName,
		StatType:   pred.StatType,
		Prediction: pred.Estimate,
		Confidence: pred.Confidence,
		Line:       line.Line,
		Edge:       edge,
		Game:       line.Game,
		Method:     pred.Method,
	}

	if edge > 0 {
		vb.Side = BetOver
	} else if edge < 0 {
		vb.Side = BetUnder
	}

	if vb.Side != "" {
		vb.Recommendation = fmt.Sprintf("Bet %s %g", vb.Side, line.Line)
		vb.HasValue = math.Abs(edge) >= minEdge
	}

	return vb
}

// RankingSummary reports how a ranking pass went. Partial results are
// always returned; skipped players are counted, not fatal.
type RankingSummary struct {
	PlayersWithProps int `json:"players_with_props"`
	PlayersEvaluated int `json:"players_evaluated"`
	PlayersSkipped   int `json:"players_skipped"`
	TotalComparisons int `json:"total_comparisons"`
}

// RankingResult is the output of one value-bet ranking pass
type RankingResult struct {
	Date           string         `json:"date"`
	MinEdge        float64        `json:"min_edge"`
	TotalValueBets int            `json:"total_value_bets"`
	ValueBets      []ValueBet     `json:"value_bets"`
	AllComparisons []ValueBet     `json:"all_comparisons,omitempty"`
	Summary        RankingSummary `json:"summary"`
	GeneratedAt    time.Time      `json:"timestamp"`
}
