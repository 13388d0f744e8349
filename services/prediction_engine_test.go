package services

import (
	"errors"
	"math"
	"testing"
	"time"

	"nba-props-go/config"
	"nba-props-go/models"
)

func testPredictionConfig() config.PredictionConfig {
	return config.PredictionConfig{
		WindowSize:     5,
		MinGames:       3,
		DefaultMinEdge: 2.0,
		MaxConcurrency: 4,
		SmartEnabled:   true,
		InjuriesOn:     true,
	}
}

func gamesWithPoints(values ...float64) []models.GameStatLine {
	date := time.Date(2026, 1, 20, 19, 0, 0, 0, time.UTC)
	games := make([]models.GameStatLine, len(values))
	for i, v := range values {
		games[i] = models.GameStatLine{
			GameDate: date.AddDate(0, 0, -2*i),
			Matchup:  "DEN vs. LAL",
			Minutes:  34,
			Stats:    map[models.StatType]float64{models.StatPoints: v},
		}
	}
	return games
}

func testPlayer() *models.Player {
	return &models.Player{ID: "203999", Name: "Nikola Jokic", TeamAbbr: "DEN"}
}

func TestNaivePrediction(t *testing.T) {
	engine := NewPredictionEngine(testPredictionConfig())

	pred, err := engine.Naive(testPlayer(), gamesWithPoints(20, 22, 26, 24, 28), models.StatPoints)
	if err != nil {
		t.Fatalf("Naive() error: %v", err)
	}

	if pred.Estimate != 24.0 {
		t.Errorf("Estimate = %v, want 24.0", pred.Estimate)
	}
	if pred.GamesUsed != 5 {
		t.Errorf("GamesUsed = %d, want 5", pred.GamesUsed)
	}
	if pred.Method != "naive_average" {
		t.Errorf("Method = %q, want naive_average", pred.Method)
	}
	if pred.Confidence < 50 || pred.Confidence > 100 {
		t.Errorf("Confidence = %v, want within [50, 100]", pred.Confidence)
	}
}

func TestNaivePredictionWindowLimit(t *testing.T) {
	engine := NewPredictionEngine(testPredictionConfig())

	// Only the five most recent games count; the trailing 50s must not
	pred, err := engine.Naive(testPlayer(), gamesWithPoints(20, 20, 20, 20, 20, 50, 50, 50), models.StatPoints)
	if err != nil {
		t.Fatalf("Naive() error: %v", err)
	}

	if pred.Estimate != 20.0 {
		t.Errorf("Estimate = %v, want 20.0", pred.Estimate)
	}
	if pred.GamesUsed != 5 {
		t.Errorf("GamesUsed = %d, want 5", pred.GamesUsed)
	}
}

func TestNaivePredictionConfidence(t *testing.T) {
	engine := NewPredictionEngine(testPredictionConfig())

	steady, err := engine.Naive(testPlayer(), gamesWithPoints(25, 25, 25, 25, 25), models.StatPoints)
	if err != nil {
		t.Fatalf("Naive() error: %v", err)
	}
	if steady.Confidence != 100 {
		t.Errorf("steady scorer confidence = %v, want 100", steady.Confidence)
	}

	volatile, err := engine.Naive(testPlayer(), gamesWithPoints(5, 45, 10, 40, 8), models.StatPoints)
	if err != nil {
		t.Fatalf("Naive() error: %v", err)
	}
	if volatile.Confidence != 50 {
		t.Errorf("volatile scorer confidence = %v, want floor of 50", volatile.Confidence)
	}
}

func TestNaivePredictionShortWindowReducesConfidence(t *testing.T) {
	engine := NewPredictionEngine(testPredictionConfig())

	short, err := engine.Naive(testPlayer(), gamesWithPoints(25, 25, 25), models.StatPoints)
	if err != nil {
		t.Fatalf("Naive() error: %v", err)
	}

	// Three steady games out of a five-game window: 100 * 3/5
	if short.Confidence != 60 {
		t.Errorf("Confidence = %v, want 60", short.Confidence)
	}
	if short.GamesUsed != 3 {
		t.Errorf("GamesUsed = %d, want 3", short.GamesUsed)
	}
	if short.Confidence < 0 || short.Confidence > 100 {
		t.Errorf("Confidence = %v, out of [0, 100]", short.Confidence)
	}
}

func TestNaivePredictionInsufficientData(t *testing.T) {
	engine := NewPredictionEngine(testPredictionConfig())

	_, err := engine.Naive(testPlayer(), gamesWithPoints(20, 22), models.StatPoints)
	if !errors.Is(err, models.ErrInsufficientData) {
		t.Errorf("error = %v, want ErrInsufficientData", err)
	}

	_, err = engine.Naive(testPlayer(), nil, models.StatPoints)
	if !errors.Is(err, models.ErrInsufficientData) {
		t.Errorf("error for empty log = %v, want ErrInsufficientData", err)
	}
}

func TestSmartPrediction(t *testing.T) {
	engine := NewPredictionEngine(testPredictionConfig())

	gctx := &GameContext{
		TeamAbbr: "DEN",
		Opponent: "OKC",
		Home:     true,
		GameDate: time.Date(2026, 1, 22, 19, 0, 0, 0, time.UTC),
	}

	pred, err := engine.Smart(testPlayer(), gamesWithPoints(20, 22, 26, 24, 28, 18, 20, 22), models.StatPoints, gctx)
	if err != nil {
		t.Fatalf("Smart() error: %v", err)
	}

	if pred.Method != "smart_context" {
		t.Errorf("Method = %q, want smart_context", pred.Method)
	}
	if pred.Breakdown == nil {
		t.Fatal("smart prediction must carry a breakdown")
	}
	if pred.Confidence < 50 || pred.Confidence > 95 {
		t.Errorf("Confidence = %v, want within [50, 95]", pred.Confidence)
	}

	var total float64
	for _, adj := range pred.Breakdown.Adjustments {
		total += adj
	}
	if math.Abs(total-pred.Breakdown.TotalAdjustment) > 0.1 {
		t.Errorf("TotalAdjustment = %v, adjustments sum to %v", pred.Breakdown.TotalAdjustment, total)
	}
}

func TestSmartPredictionSkipsRuledOutPlayer(t *testing.T) {
	engine := NewPredictionEngine(testPredictionConfig())

	gctx := &GameContext{
		TeamAbbr: "DEN",
		Injuries: InjuryReport{"DEN": {"Nikola Jokic"}},
	}

	_, err := engine.Smart(testPlayer(), gamesWithPoints(20, 22, 26, 24, 28), models.StatPoints, gctx)
	if !errors.Is(err, models.ErrInsufficientData) {
		t.Errorf("error = %v, want ErrInsufficientData for ruled-out player", err)
	}
}

func TestSmartPredictionNilContext(t *testing.T) {
	engine := NewPredictionEngine(testPredictionConfig())

	pred, err := engine.Smart(testPlayer(), gamesWithPoints(20, 22, 26, 24, 28), models.StatPoints, nil)
	if err != nil {
		t.Fatalf("Smart() with nil context error: %v", err)
	}
	if pred.Estimate <= 0 {
		t.Errorf("Estimate = %v, want positive", pred.Estimate)
	}
}

func TestWeightedAverage(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		want   float64
	}{
		{"equal values unchanged", []float64{20, 20, 20}, 20},
		{"empty", nil, 0},
		{"recent weighted heavier", []float64{30, 10}, (30*1.0 + 10*0.9) / 1.9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := weightedAverage(tt.values); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("weightedAverage(%v) = %v, want %v", tt.values, got, tt.want)
			}
		})
	}
}

func TestRestAdjustment(t *testing.T) {
	engine := NewPredictionEngine(testPredictionConfig())
	gameDate := time.Date(2026, 1, 10, 19, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		lastGame time.Time
		stat     models.StatType
		want     float64
	}{
		{"back to back points", gameDate.AddDate(0, 0, -1), models.StatPoints, -2.0},
		{"back to back rebounds", gameDate.AddDate(0, 0, -1), models.StatRebounds, -0.5},
		{"one day rest points", gameDate.AddDate(0, 0, -2), models.StatPoints, -1.5},
		{"normal rest points", gameDate.AddDate(0, 0, -3), models.StatPoints, 0},
		{"long rest points", gameDate.AddDate(0, 0, -5), models.StatPoints, 0.5},
		{"long rest assists", gameDate.AddDate(0, 0, -5), models.StatAssists, 0.1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			games := []models.GameStatLine{{GameDate: tt.lastGame}}
			if got := engine.restAdjustment(games, tt.stat, gameDate); got != tt.want {
				t.Errorf("restAdjustment() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFormTrendAdjustment(t *testing.T) {
	engine := NewPredictionEngine(testPredictionConfig())

	tests := []struct {
		name   string
		values []float64
		stat   models.StatType
		want   float64
	}{
		{"too few games", []float64{20, 22, 24}, models.StatPoints, 0},
		{"flat form", []float64{20, 20, 20, 20, 20, 20}, models.StatPoints, 0},
		{"upward trend", []float64{30, 30, 30, 25, 25, 25}, models.StatPoints, 1.5},
		{"hot streak capped for points", []float64{40, 40, 40, 20, 20, 20}, models.StatPoints, 2.0},
		{"hot streak capped for assists", []float64{14, 14, 14, 6, 6, 6}, models.StatAssists, 0.5},
		{"cold streak capped", []float64{20, 20, 20, 40, 40, 40}, models.StatPoints, -2.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := engine.formTrendAdjustment(tt.values, tt.stat); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("formTrendAdjustment() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDefenseAdjustment(t *testing.T) {
	engine := NewPredictionEngine(testPredictionConfig())

	if got := engine.defenseAdjustment(25, models.StatRebounds, "OKC"); got != 0 {
		t.Errorf("rebounds should not get a defense adjustment, got %v", got)
	}
	if got := engine.defenseAdjustment(25, models.StatPoints, ""); got != 0 {
		t.Errorf("unknown opponent should not get a defense adjustment, got %v", got)
	}

	// OKC defends well below league average, so points adjust down
	if got := engine.defenseAdjustment(25, models.StatPoints, "OKC"); got >= 0 {
		t.Errorf("adjustment against a top defense = %v, want negative", got)
	}
	// WAS defends well above league average
	if got := engine.defenseAdjustment(25, models.StatPoints, "WAS"); got <= 0 {
		t.Errorf("adjustment against a bottom defense = %v, want positive", got)
	}
}

func TestMinutesAdjustment(t *testing.T) {
	engine := NewPredictionEngine(testPredictionConfig())

	withMinutes := func(min float64) []models.GameStatLine {
		games := gamesWithPoints(20, 20, 20, 20, 20)
		for i := range games {
			games[i].Minutes = min
		}
		return games
	}

	if got := engine.minutesAdjustment(20, withMinutes(22)); math.Abs(got-(-1.0)) > 1e-9 {
		t.Errorf("low minutes adjustment = %v, want -1.0", got)
	}
	if got := engine.minutesAdjustment(20, withMinutes(37)); math.Abs(got-0.6) > 1e-9 {
		t.Errorf("heavy minutes adjustment = %v, want 0.6", got)
	}
	if got := engine.minutesAdjustment(20, withMinutes(30)); got != 0 {
		t.Errorf("normal minutes adjustment = %v, want 0", got)
	}
}

func TestPredictFallsBackToNaive(t *testing.T) {
	cfg := testPredictionConfig()
	cfg.SmartEnabled = false
	engine := NewPredictionEngine(cfg)

	pred, err := engine.Predict(testPlayer(), gamesWithPoints(20, 22, 26, 24, 28), models.StatPoints, nil, true)
	if err != nil {
		t.Fatalf("Predict() error: %v", err)
	}
	if pred.Method != "naive_average" {
		t.Errorf("Method = %q, want naive fallback when smart is disabled", pred.Method)
	}
}
