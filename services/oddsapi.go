package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"nba-props-go/config"
	"nba-props-go/logging"
	"nba-props-go/models"
)

// OddsService fetches betting lines from The Odds API (v4). Credits are
// metered per request, so every response is cached and the remaining
// quota from the x-requests-remaining header is logged on each call.
type OddsService struct {
	client  *http.Client
	baseURL string
	apiKey  string
	regions string
	ttl     time.Duration
	cache   *ttlCache
	logger  *logging.Logger
}

const oddsSportKey = "basketball_nba"

// NewOddsService creates a new Odds API adapter. A nil service is
// returned when no API key is configured; callers treat that as the
// odds source being disabled.
func NewOddsService(cfg config.OddsConfig) *OddsService {
	if cfg.APIKey == "" {
		return nil
	}
	return &OddsService{
		client:  &http.Client{Timeout: cfg.Timeout},
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		regions: cfg.Regions,
		ttl:     cfg.CacheTTL,
		cache:   newTTLCache(),
		logger:  logging.WithPrefix("OddsAPI"),
	}
}

// The Odds API response structures

type oddsEvent struct {
	ID           string          `json:"id"`
	CommenceTime time.Time       `json:"commence_time"`
	HomeTeam     string          `json:"home_team"`
	AwayTeam     string          `json:"away_team"`
	Bookmakers   []oddsBookmaker `json:"bookmakers"`
}

type oddsBookmaker struct {
	Key     string       `json:"key"`
	Title   string       `json:"title"`
	Markets []oddsMarket `json:"markets"`
}

type oddsMarket struct {
	Key      string        `json:"key"`
	Outcomes []oddsOutcome `json:"outcomes"`
}

type oddsOutcome struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Point       float64 `json:"point"`
}

func (s *OddsService) get(ctx context.Context, path string, params url.Values, out interface{}) error {
	cacheKey := path + "?" + params.Encode()
	if cached, ok := s.cache.Get(cacheKey); ok {
		return json.Unmarshal(cached.([]byte), out)
	}

	params.Set("apiKey", s.apiKey)
	reqURL := fmt.Sprintf("%s%s?%s", s.baseURL, path, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("failed to build odds request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: odds API: %v", models.ErrSourceUnavailable, err)
	}
	defer resp.Body.Close()

	if remaining := resp.Header.Get("x-requests-remaining"); remaining != "" {
		s.logger.Infof("Odds API requests remaining: %s", remaining)
	}

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusUnauthorized, http.StatusTooManyRequests:
		return fmt.Errorf("%w: odds API status %d", models.ErrQuotaExceeded, resp.StatusCode)
	default:
		return fmt.Errorf("%w: odds API status %d", models.ErrSourceUnavailable, resp.StatusCode)
	}

	var raw json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return fmt.Errorf("failed to decode odds response: %w", err)
	}

	s.cache.Set(cacheKey, []byte(raw), s.ttl)
	return json.Unmarshal(raw, out)
}

// TodaysEvents lists today's NBA events known to the odds source
func (s *OddsService) TodaysEvents(ctx context.Context) ([]oddsEvent, error) {
	params := url.Values{}
	params.Set("regions", s.regions)

	var events []oddsEvent
	path := fmt.Sprintf("/sports/%s/events", oddsSportKey)
	if err := s.get(ctx, path, params, &events); err != nil {
		return nil, err
	}
	return events, nil
}

// GameOdds returns game-level lines (moneyline, spread, total) for
// today's games.
func (s *OddsService) GameOdds(ctx context.Context) ([]models.GameOdds, error) {
	params := url.Values{}
	params.Set("regions", s.regions)
	params.Set("markets", "h2h,spreads,totals")
	params.Set("oddsFormat", "american")

	var events []oddsEvent
	path := fmt.Sprintf("/sports/%s/odds", oddsSportKey)
	if err := s.get(ctx, path, params, &events); err != nil {
		return nil, err
	}

	odds := make([]models.GameOdds, 0, len(events))
	for _, ev := range events {
		g := models.GameOdds{
			EventID:      ev.ID,
			HomeTeam:     ev.HomeTeam,
			AwayTeam:     ev.AwayTeam,
			CommenceTime: ev.CommenceTime,
		}
		if len(ev.Bookmakers) == 0 {
			odds = append(odds, g)
			continue
		}

		// First bookmaker only; line shopping is out of scope
		bm := ev.Bookmakers[0]
		g.Bookmaker = bm.Title
		for _, market := range bm.Markets {
			for _, outcome := range market.Outcomes {
				switch market.Key {
				case "h2h":
					price := outcome.Price
					if outcome.Name == ev.HomeTeam {
						g.HomeML = &price
					} else if outcome.Name == ev.AwayTeam {
						g.AwayML = &price
					}
				case "spreads":
					if outcome.Name == ev.HomeTeam {
						point := outcome.Point
						g.HomeSpread = &point
					}
				case "totals":
					if outcome.Name == "Over" {
						point := outcome.Point
						g.Total = &point
					}
				}
			}
		}
		odds = append(odds, g)
	}
	return odds, nil
}

// PlayerProps fetches player prop lines for a single event. The Over
// outcome of the first bookmaker defines each line.
func (s *OddsService) PlayerProps(ctx context.Context, eventID string) ([]models.PropLine, error) {
	markets := make([]string, 0, len(models.AllStatTypes))
	for _, stat := range models.AllStatTypes {
		markets = append(markets, stat.MarketKey())
	}

	params := url.Values{}
	params.Set("regions", s.regions)
	params.Set("markets", strings.Join(markets, ","))
	params.Set("oddsFormat", "american")

	var event oddsEvent
	path := fmt.Sprintf("/sports/%s/events/%s/odds", oddsSportKey, eventID)
	if err := s.get(ctx, path, params, &event); err != nil {
		return nil, err
	}

	if len(event.Bookmakers) == 0 {
		return nil, nil
	}

	game := fmt.Sprintf("%s @ %s", event.AwayTeam, event.HomeTeam)
	bm := event.Bookmakers[0]

	var lines []models.PropLine
	for _, market := range bm.Markets {
		stat, ok := models.StatTypeFromMarketKey(market.Key)
		if !ok {
			continue
		}
		for _, outcome := range market.Outcomes {
			if outcome.Name != "Over" {
				continue
			}
			lines = append(lines, models.PropLine{
				PlayerName: outcome.Description,
				StatType:   stat,
				Line:       outcome.Point,
				EventID:    event.ID,
				Game:       game,
				Bookmaker:  bm.Title,
				FetchedAt:  time.Now(),
			})
		}
	}
	return lines, nil
}

// AllPlayerProps aggregates prop lines across all of today's events,
// grouped per player.
func (s *OddsService) AllPlayerProps(ctx context.Context) (map[string]*models.PlayerProps, error) {
	events, err := s.TodaysEvents(ctx)
	if err != nil {
		return nil, err
	}

	props := make(map[string]*models.PlayerProps)
	for _, ev := range events {
		lines, err := s.PlayerProps(ctx, ev.ID)
		if err != nil {
			if models.Kind(err) == models.KindQuotaExceeded {
				return nil, err
			}
			s.logger.Warnf("Skipping props for event %s: %v", ev.ID, err)
			continue
		}

		for _, line := range lines {
			pp, ok := props[line.PlayerName]
			if !ok {
				pp = &models.PlayerProps{
					PlayerName: line.PlayerName,
					EventID:    line.EventID,
					Game:       line.Game,
					Lines:      make(map[models.StatType]models.PropLine, 3),
				}
				props[line.PlayerName] = pp
			}
			pp.Lines[line.StatType] = line
		}
	}

	s.logger.Infof("Collected prop lines for %d players across %d events", len(props), len(events))
	return props, nil
}

// InvalidateCache drops all cached odds responses
func (s *OddsService) InvalidateCache() {
	s.cache.InvalidateAll()
}

// HealthCheck verifies the odds API is reachable and the key is valid
func (s *OddsService) HealthCheck() bool {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := s.TodaysEvents(ctx)
	return err == nil
}
