package models

import (
	"math"
	"testing"
)

func TestNewValueBet(t *testing.T) {
	pred := Prediction{
		PlayerID:   "203999",
		PlayerName: "Nikola Jokic",
		StatType:   StatPoints,
		Estimate:   28.4,
		Confidence: 80,
		Method:     "naive_average",
	}

	tests := []struct {
		name     string
		line     float64
		minEdge  float64
		wantEdge float64
		wantSide BetSide
		wantHas  bool
	}{
		{"over with value", 25.5, 2.0, 2.9, BetOver, true},
		{"under with value", 31.5, 2.0, -3.1, BetUnder, true},
		{"edge below threshold", 27.5, 2.0, 0.9, BetOver, false},
		{"edge exactly at threshold", 26.4, 2.0, 2.0, BetOver, true},
		{"no edge", 28.4, 2.0, 0, "", false},
		{"tighter threshold flips outcome", 27.5, 0.5, 0.9, BetOver, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vb := NewValueBet(pred, PropLine{StatType: StatPoints, Line: tt.line}, tt.minEdge)

			if math.Abs(vb.Edge-tt.wantEdge) > 1e-9 {
				t.Errorf("Edge = %v, want %v", vb.Edge, tt.wantEdge)
			}
			if vb.Side != tt.wantSide {
				t.Errorf("Side = %q, want %q", vb.Side, tt.wantSide)
			}
			if vb.HasValue != tt.wantHas {
				t.Errorf("HasValue = %v, want %v", vb.HasValue, tt.wantHas)
			}
			if tt.wantSide != "" && vb.Recommendation == "" {
				t.Error("expected a recommendation whenever a side exists")
			}
			if tt.wantSide == "" && vb.Recommendation != "" {
				t.Errorf("unexpected recommendation %q", vb.Recommendation)
			}
		})
	}
}

func TestValueBetSmallEdgeKeepsRecommendation(t *testing.T) {
	// A 24.0 prediction against a 23.5 line recommends the over but
	// does not clear a 2.0 edge threshold.
	pred := Prediction{Estimate: 24.0, Confidence: 90}
	vb := NewValueBet(pred, PropLine{Line: 23.5}, 2.0)

	if vb.Edge != 0.5 {
		t.Errorf("Edge = %v, want 0.5", vb.Edge)
	}
	if vb.Recommendation != "Bet OVER 23.5" {
		t.Errorf("Recommendation = %q, want %q", vb.Recommendation, "Bet OVER 23.5")
	}
	if vb.HasValue {
		t.Error("0.5 edge must not count as value at a 2.0 threshold")
	}
}

func TestValueBetRecommendation(t *testing.T) {
	pred := Prediction{Estimate: 28.4, Confidence: 80}
	vb := NewValueBet(pred, PropLine{Line: 25.5}, 2.0)

	if vb.Recommendation != "Bet OVER 25.5" {
		t.Errorf("Recommendation = %q, want %q", vb.Recommendation, "Bet OVER 25.5")
	}
}

func TestValueBetScore(t *testing.T) {
	tests := []struct {
		name string
		vb   ValueBet
		want float64
	}{
		{"full confidence", ValueBet{Edge: 3.0, Confidence: 100}, 3.0},
		{"half confidence", ValueBet{Edge: 3.0, Confidence: 50}, 1.5},
		{"negative edge uses magnitude", ValueBet{Edge: -4.0, Confidence: 75}, 3.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.vb.Score(); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Score() = %v, want %v", got, tt.want)
			}
		})
	}
}
