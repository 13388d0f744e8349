package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"nba-props-go/logging"
	"nba-props-go/models"
)

// InjuryService tracks the league injury report. It answers two
// questions for the prediction engine: is this player ruled out, and
// how many teammates or opponents are out (which shifts usage toward
// the players who remain).
type InjuryService struct {
	client  *http.Client
	baseURL string
	cache   *ttlCache
	logger  *logging.Logger
}

const (
	injuryStatusOut = "Out"
	injuryCacheTTL  = time.Hour
	injuryCacheKey  = "injury-report"

	// Usage boost per absent rotation player
	teammateOutBoost = 0.3
	opponentOutBoost = 0.2
)

// NewInjuryService creates an injury report adapter backed by ESPN's
// public injuries feed.
func NewInjuryService(baseURL string, timeout time.Duration) *InjuryService {
	if baseURL == "" {
		baseURL = "https://site.api.espn.com/apis/site/v2/sports/basketball/nba/injuries"
	}
	return &InjuryService{
		client:  &http.Client{Timeout: timeout},
		baseURL: baseURL,
		cache:   newTTLCache(),
		logger:  logging.WithPrefix("Injuries"),
	}
}

// ESPN injuries feed structures

type espnInjuriesResponse struct {
	Injuries []espnTeamInjuries `json:"injuries"`
}

type espnTeamInjuries struct {
	DisplayName  string           `json:"displayName"`
	Abbreviation string           `json:"abbreviation"`
	Injuries     []espnInjuryItem `json:"injuries"`
}

type espnInjuryItem struct {
	Status  string `json:"status"`
	Athlete struct {
		DisplayName string `json:"displayName"`
	} `json:"athlete"`
}

// InjuryReport maps team abbreviation to the names of players listed Out
type InjuryReport map[string][]string

// Report fetches the current injury report, cached for an hour
func (s *InjuryService) Report(ctx context.Context) (InjuryReport, error) {
	if cached, ok := s.cache.Get(injuryCacheKey); ok {
		return cached.(InjuryReport), nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build injuries request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: injuries feed: %v", models.ErrSourceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: injuries feed status %d", models.ErrSourceUnavailable, resp.StatusCode)
	}

	var parsed espnInjuriesResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to decode injuries response: %w", err)
	}

	report := make(InjuryReport, len(parsed.Injuries))
	total := 0
	for _, team := range parsed.Injuries {
		abbr := team.Abbreviation
		if abbr == "" {
			abbr = TeamAbbrFromName(team.DisplayName)
		}
		for _, item := range team.Injuries {
			if item.Status != injuryStatusOut {
				continue
			}
			report[abbr] = append(report[abbr], item.Athlete.DisplayName)
			total++
		}
	}

	s.logger.Infof("Injury report: %d players listed Out across %d teams", total, len(report))
	s.cache.Set(injuryCacheKey, report, injuryCacheTTL)
	return report, nil
}

// IsPlayerOut reports whether the named player is listed Out
func (r InjuryReport) IsPlayerOut(playerName string) bool {
	target := normalizeName(playerName)
	for _, names := range r {
		for _, n := range names {
			if normalizeName(n) == target {
				return true
			}
		}
	}
	return false
}

// OutCount returns the number of players listed Out for a team
func (r InjuryReport) OutCount(teamAbbr string) int {
	return len(r[teamAbbr])
}

// UsageBoost estimates the per-game stat bump a player gets from
// absences. Missing teammates free up shots and minutes; missing
// opponents soften the defense.
func (r InjuryReport) UsageBoost(teamAbbr, opponentAbbr string) float64 {
	return float64(r.OutCount(teamAbbr))*teammateOutBoost + float64(r.OutCount(opponentAbbr))*opponentOutBoost
}

// InvalidateCache forces the next Report call to refetch
func (s *InjuryService) InvalidateCache() {
	s.cache.InvalidateAll()
}
