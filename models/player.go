package models

import (
	"strings"
	"time"
)

// Player is a search result from the stat source
type Player struct {
	ID       string `json:"player_id" bson:"playerId"`
	Name     string `json:"player_name" bson:"playerName"`
	TeamID   string `json:"team_id,omitempty" bson:"teamId,omitempty"`
	TeamAbbr string `json:"team_abbr,omitempty" bson:"teamAbbr,omitempty"`
	TeamName string `json:"team_name,omitempty" bson:"teamName,omitempty"`
}

// GameStatLine is one completed game from a player's game log.
// Immutable once fetched; logs are ordered most recent first.
type GameStatLine struct {
	PlayerID string               `json:"player_id" bson:"playerId"`
	GameDate time.Time            `json:"game_date" bson:"gameDate"`
	Matchup  string               `json:"matchup" bson:"matchup"` // "LAL vs. GSW" (home) or "LAL @ BOS" (away)
	Minutes  float64              `json:"minutes" bson:"minutes"`
	Stats    map[StatType]float64 `json:"stats" bson:"stats"`
}

// Stat returns the value for a stat type and whether it was recorded
func (g *GameStatLine) Stat(stat StatType) (float64, bool) {
	v, ok := g.Stats[stat]
	return v, ok
}

// Opponent parses the matchup string into the opposing team abbreviation
// and whether the game was at home. Unknown formats report home by default.
func (g *GameStatLine) Opponent() (string, bool) {
	if i := strings.Index(g.Matchup, "vs."); i >= 0 {
		return strings.TrimSpace(g.Matchup[i+len("vs."):]), true
	}
	if i := strings.Index(g.Matchup, "@"); i >= 0 {
		return strings.TrimSpace(g.Matchup[i+1:]), false
	}
	return "", true
}

// StatValues extracts one stat across a game log, preserving order and
// skipping games where the stat was not recorded.
func StatValues(games []GameStatLine, stat StatType) []float64 {
	values := make([]float64, 0, len(games))
	for i := range games {
		if v, ok := games[i].Stat(stat); ok {
			values = append(values, v)
		}
	}
	return values
}

// DaysRest returns full days off between the most recent game and an
// upcoming game date. With no game log a normal two days of rest is
// assumed. Zero means a back-to-back.
func DaysRest(games []GameStatLine, gameDate time.Time) int {
	if len(games) == 0 {
		return 2
	}
	days := int(gameDate.Sub(games[0].GameDate).Hours()/24) - 1
	if days < 0 {
		return 0
	}
	return days
}
