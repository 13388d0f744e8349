package models

import "time"

// PropLine is a sportsbook-posted betting line for one player stat.
// Lines move, so a PropLine is only valid within the odds cache window.
type PropLine struct {
	PlayerName string    `json:"player" bson:"player"`
	StatType   StatType  `json:"stat_type" bson:"statType"`
	Line       float64   `json:"line" bson:"line"`
	EventID    string    `json:"event_id" bson:"eventId"`
	Game       string    `json:"game" bson:"game"` // "AWY @ HOM" label for display
	Bookmaker  string    `json:"bookmaker,omitempty" bson:"bookmaker,omitempty"`
	FetchedAt  time.Time `json:"fetched_at" bson:"fetchedAt"`
}

// PlayerProps groups all posted prop lines for one player
type PlayerProps struct {
	PlayerName string
	EventID    string
	Game       string
	Lines      map[StatType]PropLine
}

// Line returns the posted line for a stat, if one exists
func (p *PlayerProps) Line(stat StatType) (PropLine, bool) {
	line, ok := p.Lines[stat]
	return line, ok
}
