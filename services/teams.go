package services

// NBA team ID to abbreviation mapping (stats.nba.com team IDs)
var nbaTeamIDToAbbr = map[string]string{
	"1610612737": "ATL", "1610612738": "BOS", "1610612751": "BKN", "1610612766": "CHA",
	"1610612741": "CHI", "1610612739": "CLE", "1610612742": "DAL", "1610612743": "DEN",
	"1610612765": "DET", "1610612744": "GSW", "1610612745": "HOU", "1610612754": "IND",
	"1610612746": "LAC", "1610612747": "LAL", "1610612763": "MEM", "1610612748": "MIA",
	"1610612749": "MIL", "1610612750": "MIN", "1610612740": "NOP", "1610612752": "NYK",
	"1610612760": "OKC", "1610612753": "ORL", "1610612755": "PHI", "1610612756": "PHX",
	"1610612757": "POR", "1610612758": "SAC", "1610612759": "SAS", "1610612761": "TOR",
	"1610612762": "UTA", "1610612764": "WAS",
}

// Full team name to abbreviation, used to match odds-provider team names
var nbaTeamNameToAbbr = map[string]string{
	"Atlanta Hawks":          "ATL",
	"Boston Celtics":         "BOS",
	"Brooklyn Nets":          "BKN",
	"Charlotte Hornets":      "CHA",
	"Chicago Bulls":          "CHI",
	"Cleveland Cavaliers":    "CLE",
	"Dallas Mavericks":       "DAL",
	"Denver Nuggets":         "DEN",
	"Detroit Pistons":        "DET",
	"Golden State Warriors":  "GSW",
	"Houston Rockets":        "HOU",
	"Indiana Pacers":         "IND",
	"LA Clippers":            "LAC",
	"Los Angeles Clippers":   "LAC",
	"Los Angeles Lakers":     "LAL",
	"Memphis Grizzlies":      "MEM",
	"Miami Heat":             "MIA",
	"Milwaukee Bucks":        "MIL",
	"Minnesota Timberwolves": "MIN",
	"New Orleans Pelicans":   "NOP",
	"New York Knicks":        "NYK",
	"Oklahoma City Thunder":  "OKC",
	"Orlando Magic":          "ORL",
	"Philadelphia 76ers":     "PHI",
	"Phoenix Suns":           "PHX",
	"Portland Trail Blazers": "POR",
	"Sacramento Kings":       "SAC",
	"San Antonio Spurs":      "SAS",
	"Toronto Raptors":        "TOR",
	"Utah Jazz":              "UTA",
	"Washington Wizards":     "WAS",
}

// TeamAbbrFromID converts a stats.nba.com team ID to its abbreviation
func TeamAbbrFromID(teamID string) string {
	if abbr, ok := nbaTeamIDToAbbr[teamID]; ok {
		return abbr
	}
	return ""
}

// TeamAbbrFromName converts a full team name to its abbreviation
func TeamAbbrFromName(name string) string {
	if abbr, ok := nbaTeamNameToAbbr[name]; ok {
		return abbr
	}
	return ""
}
