package services

import (
	"fmt"
	"math"
	"time"

	"github.com/montanaflynn/stats"

	"nba-props-go/config"
	"nba-props-go/logging"
	"nba-props-go/models"
)

// PredictionEngine derives point estimates from a player's recent game
// log. Two methods are supported: a naive rolling average, and a smart
// estimate that layers matchup and situational adjustments on a
// recency-weighted base.
type PredictionEngine struct {
	cfg    config.PredictionConfig
	logger *logging.Logger
}

// GameContext carries what is known about the upcoming game. Zero
// values degrade gracefully; an adjustment with no inputs contributes
// nothing.
type GameContext struct {
	TeamAbbr string
	Opponent string
	Home     bool
	GameDate time.Time
	Injuries InjuryReport
}

const (
	methodNaive = "naive_average"
	methodSmart = "smart_context"

	leagueAvgDefRating = 112.0
)

// Approximate defensive ratings (points allowed per 100 possessions).
// Lower is better. Updated once per season; a missing team falls back
// to the league average.
var teamDefensiveRatings = map[string]float64{
	"ATL": 114.8, "BOS": 110.2, "BKN": 115.4, "CHA": 116.1, "CHI": 113.9,
	"CLE": 111.0, "DAL": 112.7, "DEN": 112.3, "DET": 110.9, "GSW": 110.5,
	"HOU": 109.8, "IND": 113.5, "LAC": 111.4, "LAL": 112.9, "MEM": 110.7,
	"MIA": 112.1, "MIL": 113.2, "MIN": 109.5, "NOP": 115.7, "NYK": 111.8,
	"OKC": 106.9, "ORL": 109.2, "PHI": 114.3, "PHX": 113.7, "POR": 115.0,
	"SAC": 114.6, "SAS": 112.5, "TOR": 113.0, "UTA": 116.5, "WAS": 117.2,
}

// NewPredictionEngine creates a prediction engine with the given tuning
func NewPredictionEngine(cfg config.PredictionConfig) *PredictionEngine {
	return &PredictionEngine{
		cfg:    cfg,
		logger: logging.WithPrefix("Predict"),
	}
}

// Predict runs the configured prediction method. Smart falls back to
// naive when disabled in config.
func (e *PredictionEngine) Predict(player *models.Player, games []models.GameStatLine, stat models.StatType, gctx *GameContext, useSmart bool) (*models.Prediction, error) {
	if useSmart && e.cfg.SmartEnabled {
		return e.Smart(player, games, stat, gctx)
	}
	return e.Naive(player, games, stat)
}

// Naive predicts the mean of the most recent window of games.
// Confidence reflects how consistent the window was: a steady scorer
// gets close to 100, a volatile one bottoms out at 50.
func (e *PredictionEngine) Naive(player *models.Player, games []models.GameStatLine, stat models.StatType) (*models.Prediction, error) {
	values := models.StatValues(games, stat)
	if len(values) < e.cfg.MinGames {
		return nil, fmt.Errorf("%w: %s has %d games with %s recorded, need %d",
			models.ErrInsufficientData, player.Name, len(values), stat, e.cfg.MinGames)
	}

	window := values
	if len(window) > e.cfg.WindowSize {
		window = window[:e.cfg.WindowSize]
	}

	mean, _ := stats.Mean(window)
	stdDev, _ := stats.StandardDeviation(window)

	confidence := clamp(100-stdDev*5, 50, 100)
	// A short window is weaker evidence than a full one
	if len(window) < e.cfg.WindowSize {
		confidence = clamp(confidence*float64(len(window))/float64(e.cfg.WindowSize), 0, 100)
	}

	return &models.Prediction{
		PlayerID:   player.ID,
		PlayerName: player.Name,
		StatType:   stat,
		Estimate:   round1(mean),
		Confidence: round1(confidence),
		GamesUsed:  len(window),
		Method:     methodNaive,
	}, nil
}

// Smart predicts from a recency-weighted average plus matchup and
// situational adjustments. Each adjustment is recorded in the
// breakdown so a response explains itself.
func (e *PredictionEngine) Smart(player *models.Player, games []models.GameStatLine, stat models.StatType, gctx *GameContext) (*models.Prediction, error) {
	if gctx == nil {
		gctx = &GameContext{Home: true, GameDate: time.Now()}
	}
	if gctx.GameDate.IsZero() {
		gctx.GameDate = time.Now()
	}

	if gctx.Injuries != nil && gctx.Injuries.IsPlayerOut(player.Name) {
		return nil, fmt.Errorf("%w: %s is listed out", models.ErrInsufficientData, player.Name)
	}

	values := models.StatValues(games, stat)
	if len(values) < e.cfg.MinGames {
		return nil, fmt.Errorf("%w: %s has %d games with %s recorded, need %d",
			models.ErrInsufficientData, player.Name, len(values), stat, e.cfg.MinGames)
	}

	window := values
	if len(window) > e.cfg.WindowSize {
		window = window[:e.cfg.WindowSize]
	}

	base := weightedAverage(window)
	adjustments := make(map[string]float64)

	if adj := e.defenseAdjustment(base, stat, gctx.Opponent); adj != 0 {
		adjustments["opponent_defense"] = round1(adj)
	}
	if adj := e.homeAwayAdjustment(games, stat, gctx.Home); adj != 0 {
		adjustments["home_away"] = round1(adj)
	}
	if adj := e.restAdjustment(games, stat, gctx.GameDate); adj != 0 {
		adjustments["rest"] = round1(adj)
	}
	if adj := e.formTrendAdjustment(values, stat); adj != 0 {
		adjustments["form_trend"] = round1(adj)
	}
	if adj := e.minutesAdjustment(base, games); adj != 0 {
		adjustments["minutes"] = round1(adj)
	}
	if gctx.Injuries != nil {
		if boost := gctx.Injuries.UsageBoost(gctx.TeamAbbr, gctx.Opponent); boost != 0 {
			adjustments["injuries"] = round1(boost)
		}
	}

	total := 0.0
	for _, adj := range adjustments {
		total += adj
	}
	e.logger.Debugf("%s %s: base %.1f, adjustments %v", player.Name, stat, base, adjustments)

	estimate := base + total
	if estimate < 0 {
		estimate = 0
	}

	stdDev, _ := stats.StandardDeviation(window)
	confidence := 100 - stdDev*5
	if len(values) >= 10 {
		confidence += 5
	} else if len(values) < 5 {
		confidence -= 10
	}
	if math.Abs(total) > 3 {
		confidence -= 5
	}
	confidence = clamp(confidence, 50, 95)

	return &models.Prediction{
		PlayerID:   player.ID,
		PlayerName: player.Name,
		StatType:   stat,
		Estimate:   round1(estimate),
		Confidence: round1(confidence),
		GamesUsed:  len(window),
		Method:     methodSmart,
		Breakdown: &models.PredictionBreakdown{
			BasePrediction:  round1(base),
			Adjustments:     adjustments,
			TotalAdjustment: round1(total),
		},
	}, nil
}

// weightedAverage weights recent games more heavily. The most recent
// game gets weight 1.0, stepping down 0.1 per game with a 0.5 floor.
func weightedAverage(values []float64) float64 {
	var sum, weightSum float64
	for i, v := range values {
		w := 1.0 - 0.1*float64(i)
		if w < 0.5 {
			w = 0.5
		}
		sum += v * w
		weightSum += w
	}
	if weightSum == 0 {
		return 0
	}
	return sum / weightSum
}

// defenseAdjustment scales points against the opponent's defensive
// rating: roughly 2% per 5 rating points away from league average.
// Only points are defense-sensitive enough to adjust.
func (e *PredictionEngine) defenseAdjustment(base float64, stat models.StatType, opponent string) float64 {
	if stat != models.StatPoints || opponent == "" {
		return 0
	}
	rating, ok := teamDefensiveRatings[opponent]
	if !ok {
		return 0
	}
	return base * ((rating - leagueAvgDefRating) / 5) * 0.02
}

// homeAwayAdjustment applies half of the player's home/away split
func (e *PredictionEngine) homeAwayAdjustment(games []models.GameStatLine, stat models.StatType, home bool) float64 {
	var homeVals, awayVals []float64
	limit := len(games)
	if limit > e.cfg.WindowSize*2 {
		limit = e.cfg.WindowSize * 2
	}
	for i := 0; i < limit; i++ {
		v, ok := games[i].Stat(stat)
		if !ok {
			continue
		}
		if _, atHome := games[i].Opponent(); atHome {
			homeVals = append(homeVals, v)
		} else {
			awayVals = append(awayVals, v)
		}
	}
	if len(homeVals) == 0 || len(awayVals) == 0 {
		return 0
	}

	homeAvg, _ := stats.Mean(homeVals)
	awayAvg, _ := stats.Mean(awayVals)
	diff := homeAvg - awayAvg

	if home {
		return diff * 0.5
	}
	return -diff * 0.5
}

// restAdjustment penalizes short rest and rewards long rest. Points
// swing harder than rebounds or assists.
func (e *PredictionEngine) restAdjustment(games []models.GameStatLine, stat models.StatType, gameDate time.Time) float64 {
	rest := models.DaysRest(games, gameDate)
	isPoints := stat == models.StatPoints

	switch {
	case rest == 0:
		if isPoints {
			return -2.0
		}
		return -0.5
	case rest == 1:
		if isPoints {
			return -1.5
		}
		return -0.3
	case rest >= 3:
		if isPoints {
			return 0.5
		}
		return 0.1
	default:
		return 0
	}
}

// formTrendAdjustment compares the last three games with the three
// before them, capped so one hot week cannot dominate.
func (e *PredictionEngine) formTrendAdjustment(values []float64, stat models.StatType) float64 {
	if len(values) < 6 {
		return 0
	}

	recent, _ := stats.Mean(values[:3])
	previous, _ := stats.Mean(values[3:6])
	adj := (recent - previous) * 0.3

	maxAdj := 0.5
	if stat == models.StatPoints {
		maxAdj = 2.0
	}
	return clamp(adj, -maxAdj, maxAdj)
}

// minutesAdjustment penalizes low-minute players and nudges up heavy-
// minute ones.
func (e *PredictionEngine) minutesAdjustment(base float64, games []models.GameStatLine) float64 {
	limit := len(games)
	if limit > e.cfg.WindowSize {
		limit = e.cfg.WindowSize
	}
	if limit == 0 {
		return 0
	}

	var total float64
	for i := 0; i < limit; i++ {
		total += games[i].Minutes
	}
	avg := total / float64(limit)

	switch {
	case avg < 25:
		return -base * 0.05
	case avg > 35:
		return base * 0.03
	default:
		return 0
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
