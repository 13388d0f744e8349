package models

// StatType identifies a player statistic we predict and bet on
type StatType string

const (
	StatPoints   StatType = "PTS"
	StatRebounds StatType = "REB"
	StatAssists  StatType = "AST"
)

// AllStatTypes lists every stat type the pipeline evaluates
var AllStatTypes = []StatType{StatPoints, StatRebounds, StatAssists}

// ParseStatType converts user input ("PTS", "pts", "points") to a StatType
func ParseStatType(s string) (StatType, bool) {
	switch s {
	case "PTS", "pts", "points":
		return StatPoints, true
	case "REB", "reb", "rebounds":
		return StatRebounds, true
	case "AST", "ast", "assists":
		return StatAssists, true
	}
	return "", false
}

// MarketKey returns The Odds API market name for this stat
func (s StatType) MarketKey() string {
	switch s {
	case StatPoints:
		return "player_points"
	case StatRebounds:
		return "player_rebounds"
	case StatAssists:
		return "player_assists"
	default:
		return ""
	}
}

// DisplayName returns the lowercase market label used in API responses
func (s StatType) DisplayName() string {
	switch s {
	case StatPoints:
		return "points"
	case StatRebounds:
		return "rebounds"
	case StatAssists:
		return "assists"
	default:
		return string(s)
	}
}

// StatTypeFromMarketKey maps an Odds API market key back to a StatType
func StatTypeFromMarketKey(key string) (StatType, bool) {
	switch key {
	case "player_points":
		return StatPoints, true
	case "player_rebounds":
		return StatRebounds, true
	case "player_assists":
		return StatAssists, true
	}
	return "", false
}
