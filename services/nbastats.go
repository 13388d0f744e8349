package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"sync"
	"time"

	"nba-props-go/config"
	"nba-props-go/logging"
	"nba-props-go/models"
)

// NBAStatsService fetches player game logs and the daily schedule from
// stats.nba.com. Responses go through a read-through TTL cache; the
// endpoint is rate limited, so requests are paced and retried with
// backoff before failing with SourceUnavailable.
type NBAStatsService struct {
	client   *http.Client
	baseURL  string
	cfg      config.StatsConfig
	minGames int
	cache    *ttlCache
	logger   *logging.Logger

	mu          sync.Mutex
	lastRequest time.Time
}

const statsRetryAttempts = 3

// NewNBAStatsService creates a new stats.nba.com adapter
func NewNBAStatsService(cfg config.StatsConfig, minGames int) *NBAStatsService {
	return &NBAStatsService{
		client:   &http.Client{Timeout: cfg.Timeout},
		baseURL:  cfg.BaseURL,
		cfg:      cfg,
		minGames: minGames,
		cache:    newTTLCache(),
		logger:   logging.WithPrefix("NBAStats"),
	}
}

// stats.nba.com response structures (header/rowSet tables)

type statsResponse struct {
	ResultSets []statsResultSet `json:"resultSets"`
}

type statsResultSet struct {
	Name    string          `json:"name"`
	Headers []string        `json:"headers"`
	RowSet  [][]interface{} `json:"rowSet"`
}

func (rs *statsResultSet) columnIndex(name string) int {
	for i, h := range rs.Headers {
		if strings.EqualFold(h, name) {
			return i
		}
	}
	return -1
}

func rowString(row []interface{}, idx int) string {
	if idx < 0 || idx >= len(row) || row[idx] == nil {
		return ""
	}
	switch v := row[idx].(type) {
	case string:
		return v
	case float64:
		return fmt.Sprintf("%.0f", v)
	default:
		return fmt.Sprintf("%v", v)
	}
}

func rowFloat(row []interface{}, idx int) (float64, bool) {
	if idx < 0 || idx >= len(row) || row[idx] == nil {
		return 0, false
	}
	if v, ok := row[idx].(float64); ok {
		return v, true
	}
	return 0, false
}

// pace enforces the minimum interval between upstream requests
func (s *NBAStatsService) pace() {
	s.mu.Lock()
	defer s.mu.Unlock()

	elapsed := time.Since(s.lastRequest)
	if elapsed < s.cfg.RequestInterval {
		time.Sleep(s.cfg.RequestInterval - elapsed)
	}
	s.lastRequest = time.Now()
}

// doRequest performs a cached, paced, retried GET against the stats API
func (s *NBAStatsService) doRequest(ctx context.Context, endpoint string, params url.Values, ttl time.Duration) (*statsResponse, error) {
	cacheKey := endpoint + "?" + params.Encode()
	if cached, ok := s.cache.Get(cacheKey); ok {
		s.logger.Debugf("Cache hit: %s", endpoint)
		return cached.(*statsResponse), nil
	}

	reqURL := fmt.Sprintf("%s/%s?%s", s.baseURL, endpoint, params.Encode())

	var lastErr error
	backoff := time.Second
	for attempt := 1; attempt <= statsRetryAttempts; attempt++ {
		s.pace()

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to build stats request: %w", err)
		}
		// stats.nba.com rejects requests without browser-like headers
		req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")
		req.Header.Set("Accept", "application/json, text/plain, */*")
		req.Header.Set("Referer", "https://stats.nba.com/")
		req.Header.Set("x-nba-stats-origin", "stats")
		req.Header.Set("x-nba-stats-token", "true")

		resp, err := s.client.Do(req)
		if err != nil {
			lastErr = err
			s.logger.Warnf("Request %s attempt %d/%d failed: %v", endpoint, attempt, statsRetryAttempts, err)
		} else {
			if resp.StatusCode == http.StatusOK {
				var parsed statsResponse
				err = json.NewDecoder(resp.Body).Decode(&parsed)
				resp.Body.Close()
				if err != nil {
					return nil, fmt.Errorf("failed to decode stats response: %w", err)
				}
				s.cache.Set(cacheKey, &parsed, ttl)
				return &parsed, nil
			}
			resp.Body.Close()
			lastErr = fmt.Errorf("stats API returned status %d", resp.StatusCode)
			s.logger.Warnf("Request %s attempt %d/%d: status %d", endpoint, attempt, statsRetryAttempts, resp.StatusCode)
		}

		if attempt < statsRetryAttempts {
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
			backoff *= 2
		}
	}

	return nil, fmt.Errorf("%w: %s: %v", models.ErrSourceUnavailable, endpoint, lastErr)
}

var nameCleanup = regexp.MustCompile(`[.\-']`)
var nameSuffix = regexp.MustCompile(`(?i)\b(jr|sr|ii|iii|iv)\b`)

// normalizeName strips punctuation and generational suffixes for matching
func normalizeName(name string) string {
	name = nameCleanup.ReplaceAllString(name, " ")
	name = nameSuffix.ReplaceAllString(name, "")
	return strings.Join(strings.Fields(strings.ToLower(name)), " ")
}

// SearchPlayer looks up a player by name: exact normalized match first,
// then last name plus first initial.
func (s *NBAStatsService) SearchPlayer(ctx context.Context, name string) (*models.Player, error) {
	params := url.Values{}
	params.Set("LeagueID", "00")
	params.Set("Season", s.cfg.PreviousSeason)
	params.Set("IsOnlyCurrentSeason", "0")

	data, err := s.doRequest(ctx, "commonallplayers", params, s.cfg.PlayerIndexTTL)
	if err != nil {
		return nil, err
	}
	if len(data.ResultSets) == 0 {
		return nil, fmt.Errorf("%w: empty player index", models.ErrSourceUnavailable)
	}

	rs := &data.ResultSets[0]
	idIdx := rs.columnIndex("PERSON_ID")
	nameIdx := rs.columnIndex("DISPLAY_FIRST_LAST")
	teamIDIdx := rs.columnIndex("TEAM_ID")
	teamAbbrIdx := rs.columnIndex("TEAM_ABBREVIATION")
	teamNameIdx := rs.columnIndex("TEAM_NAME")

	target := normalizeName(name)

	toPlayer := func(row []interface{}) *models.Player {
		teamName := rowString(row, teamNameIdx)
		if teamName == "" {
			teamName = "Free Agent"
		}
		return &models.Player{
			ID:       rowString(row, idIdx),
			Name:     rowString(row, nameIdx),
			TeamID:   rowString(row, teamIDIdx),
			TeamAbbr: rowString(row, teamAbbrIdx),
			TeamName: teamName,
		}
	}

	// Exact match
	for _, row := range rs.RowSet {
		if normalizeName(rowString(row, nameIdx)) == target {
			return toPlayer(row), nil
		}
	}

	// Last name + first initial
	targetParts := strings.Fields(target)
	if len(targetParts) >= 2 {
		targetLast := targetParts[len(targetParts)-1]
		for _, row := range rs.RowSet {
			parts := strings.Fields(normalizeName(rowString(row, nameIdx)))
			if len(parts) >= 2 && parts[len(parts)-1] == targetLast && parts[0][0] == targetParts[0][0] {
				return toPlayer(row), nil
			}
		}
	}

	return nil, fmt.Errorf("%w: %q", models.ErrPlayerNotFound, name)
}

// PlayerByID resolves a player from the cached player index
func (s *NBAStatsService) PlayerByID(ctx context.Context, playerID string) (*models.Player, error) {
	params := url.Values{}
	params.Set("LeagueID", "00")
	params.Set("Season", s.cfg.PreviousSeason)
	params.Set("IsOnlyCurrentSeason", "0")

	data, err := s.doRequest(ctx, "commonallplayers", params, s.cfg.PlayerIndexTTL)
	if err != nil {
		return nil, err
	}
	if len(data.ResultSets) == 0 {
		return nil, fmt.Errorf("%w: empty player index", models.ErrSourceUnavailable)
	}

	rs := &data.ResultSets[0]
	idIdx := rs.columnIndex("PERSON_ID")
	nameIdx := rs.columnIndex("DISPLAY_FIRST_LAST")
	teamIDIdx := rs.columnIndex("TEAM_ID")
	teamAbbrIdx := rs.columnIndex("TEAM_ABBREVIATION")
	teamNameIdx := rs.columnIndex("TEAM_NAME")

	for _, row := range rs.RowSet {
		if rowString(row, idIdx) != playerID {
			continue
		}
		teamName := rowString(row, teamNameIdx)
		if teamName == "" {
			teamName = "Free Agent"
		}
		return &models.Player{
			ID:       playerID,
			Name:     rowString(row, nameIdx),
			TeamID:   rowString(row, teamIDIdx),
			TeamAbbr: rowString(row, teamAbbrIdx),
			TeamName: teamName,
		}, nil
	}

	return nil, fmt.Errorf("%w: id %q", models.ErrPlayerNotFound, playerID)
}

// PlayerGameLog returns a player's recent games, most recent first.
// The current season is fetched first; when it holds fewer games than
// the prediction minimum the previous season supplements it, so
// predictions stay usable early in the season.
func (s *NBAStatsService) PlayerGameLog(ctx context.Context, playerID string) ([]models.GameStatLine, error) {
	games, err := s.fetchSeasonGames(ctx, playerID, s.cfg.CurrentSeason, s.cfg.GameLogTTL)
	if err != nil {
		return nil, err
	}

	if len(games) < s.minGames {
		s.logger.Debugf("Player %s has %d current-season games, supplementing with %s", playerID, len(games), s.cfg.PreviousSeason)
		previous, err := s.fetchSeasonGames(ctx, playerID, s.cfg.PreviousSeason, 24*time.Hour)
		if err != nil {
			// Partial data is still usable; log and continue with what we have
			s.logger.Warnf("Could not supplement game log for player %s: %v", playerID, err)
		} else {
			games = append(games, previous...)
		}
	}

	return games, nil
}

func (s *NBAStatsService) fetchSeasonGames(ctx context.Context, playerID, season string, ttl time.Duration) ([]models.GameStatLine, error) {
	params := url.Values{}
	params.Set("PlayerID", playerID)
	params.Set("Season", season)
	params.Set("SeasonType", "Regular Season")

	data, err := s.doRequest(ctx, "playergamelog", params, ttl)
	if err != nil {
		return nil, err
	}
	if len(data.ResultSets) == 0 {
		return nil, nil
	}

	rs := &data.ResultSets[0]
	dateIdx := rs.columnIndex("GAME_DATE")
	matchupIdx := rs.columnIndex("MATCHUP")
	minIdx := rs.columnIndex("MIN")
	ptsIdx := rs.columnIndex("PTS")
	rebIdx := rs.columnIndex("REB")
	astIdx := rs.columnIndex("AST")

	games := make([]models.GameStatLine, 0, len(rs.RowSet))
	for _, row := range rs.RowSet {
		gameDate, err := time.Parse("Jan 02, 2006", rowString(row, dateIdx))
		if err != nil {
			s.logger.Warnf("Skipping game with unparseable date %q for player %s", rowString(row, dateIdx), playerID)
			continue
		}

		line := models.GameStatLine{
			PlayerID: playerID,
			GameDate: gameDate,
			Matchup:  rowString(row, matchupIdx),
			Stats:    make(map[models.StatType]float64, 3),
		}
		if v, ok := rowFloat(row, minIdx); ok {
			line.Minutes = v
		}
		if v, ok := rowFloat(row, ptsIdx); ok {
			line.Stats[models.StatPoints] = v
		}
		if v, ok := rowFloat(row, rebIdx); ok {
			line.Stats[models.StatRebounds] = v
		}
		if v, ok := rowFloat(row, astIdx); ok {
			line.Stats[models.StatAssists] = v
		}
		games = append(games, line)
	}

	return games, nil
}

// StatOnDate finds the realized stat value for a given game date
// (YYYY-MM-DD). Returns false when the game or stat is not in the log.
func (s *NBAStatsService) StatOnDate(ctx context.Context, playerID, date string, stat models.StatType) (float64, bool, error) {
	games, err := s.PlayerGameLog(ctx, playerID)
	if err != nil {
		return 0, false, err
	}

	for i := range games {
		if games[i].GameDate.Format("2006-01-02") == date {
			v, ok := games[i].Stat(stat)
			return v, ok, nil
		}
	}
	return 0, false, nil
}

// TodaysGames returns today's scheduled NBA games
func (s *NBAStatsService) TodaysGames(ctx context.Context) ([]models.Game, error) {
	params := url.Values{}
	params.Set("GameDate", time.Now().Format("2006-01-02"))
	params.Set("LeagueID", "00")
	params.Set("DayOffset", "0")

	data, err := s.doRequest(ctx, "scoreboardv2", params, s.cfg.ScoreboardTTL)
	if err != nil {
		return nil, err
	}

	for i := range data.ResultSets {
		rs := &data.ResultSets[i]
		if rs.Name != "GameHeader" {
			continue
		}

		idIdx := rs.columnIndex("GAME_ID")
		statusIdx := rs.columnIndex("GAME_STATUS_ID")
		dateIdx := rs.columnIndex("GAME_DATE_EST")
		homeIdx := rs.columnIndex("HOME_TEAM_ID")
		awayIdx := rs.columnIndex("VISITOR_TEAM_ID")

		games := make([]models.Game, 0, len(rs.RowSet))
		for _, row := range rs.RowSet {
			startTime, _ := time.Parse("2006-01-02T15:04:05", rowString(row, dateIdx))

			games = append(games, models.Game{
				ID:        rowString(row, idIdx),
				HomeTeam:  TeamAbbrFromID(rowString(row, homeIdx)),
				AwayTeam:  TeamAbbrFromID(rowString(row, awayIdx)),
				StartTime: startTime,
				Status:    convertGameStatus(rowString(row, statusIdx)),
			})
		}
		return games, nil
	}

	return nil, nil
}

func convertGameStatus(statusID string) models.GameStatus {
	switch statusID {
	case "1":
		return models.GameStatusScheduled
	case "2":
		return models.GameStatusInPlay
	case "3":
		return models.GameStatusFinal
	default:
		return models.GameStatusScheduled
	}
}

// InvalidateCache drops all cached stats responses
func (s *NBAStatsService) InvalidateCache() {
	s.cache.InvalidateAll()
}

// HealthCheck verifies the stats API is reachable
func (s *NBAStatsService) HealthCheck() bool {
	req, err := http.NewRequest(http.MethodHead, s.baseURL, nil)
	if err != nil {
		return false
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()

	return resp.StatusCode < http.StatusInternalServerError
}
