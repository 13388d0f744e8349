package models

import "time"

// GameStatus represents the current state of a scheduled game
type GameStatus string

const (
	GameStatusScheduled GameStatus = "scheduled"
	GameStatusInPlay    GameStatus = "in_play"
	GameStatusFinal     GameStatus = "final"
	GameStatusPostponed GameStatus = "postponed"
)

// Game is one entry from today's NBA schedule
type Game struct {
	ID        string     `json:"game_id" bson:"gameId"`
	HomeTeam  string     `json:"home_team" bson:"homeTeam"`
	AwayTeam  string     `json:"away_team" bson:"awayTeam"`
	StartTime time.Time  `json:"game_time" bson:"gameTime"`
	Status    GameStatus `json:"status" bson:"status"`
}

// IsFinal returns true once the game has completed
func (g *Game) IsFinal() bool {
	return g.Status == GameStatusFinal
}

// GameOdds is a sportsbook's posted game-level market snapshot
type GameOdds struct {
	EventID      string    `json:"event_id"`
	HomeTeam     string    `json:"home_team"`
	AwayTeam     string    `json:"away_team"`
	CommenceTime time.Time `json:"commence_time"`
	Bookmaker    string    `json:"bookmaker,omitempty"`
	HomeSpread   *float64  `json:"home_spread,omitempty"`
	Total        *float64  `json:"total,omitempty"`
	HomeML       *float64  `json:"home_moneyline,omitempty"`
	AwayML       *float64  `json:"away_moneyline,omitempty"`
}
