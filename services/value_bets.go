package services

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"nba-props-go/config"
	"nba-props-go/logging"
	"nba-props-go/models"
)

// PredictionStore persists value bets for later accuracy reconciliation
type PredictionStore interface {
	SavePredictions(ctx context.Context, records []models.PredictionRecord) error
}

// ValueBetService ranks today's player props by the gap between our
// prediction and the posted line. One failing player never fails the
// pass; partial results with a skip count are always returned.
type ValueBetService struct {
	statsService *NBAStatsService
	oddsService  *OddsService
	engine       *PredictionEngine
	injuries     *InjuryService
	store        PredictionStore
	cfg          config.PredictionConfig
	logger       *logging.Logger
}

// showAllLimit caps the all-comparisons payload when show_all is set
const showAllLimit = 50

// NewValueBetService wires the ranking pipeline together. store may be
// nil when the database is unavailable; ranking still works, accuracy
// tracking does not.
func NewValueBetService(statsService *NBAStatsService, oddsService *OddsService, engine *PredictionEngine, injuries *InjuryService, store PredictionStore, cfg config.PredictionConfig) *ValueBetService {
	return &ValueBetService{
		statsService: statsService,
		oddsService:  oddsService,
		engine:       engine,
		injuries:     injuries,
		store:        store,
		cfg:          cfg,
		logger:       logging.WithPrefix("ValueBets"),
	}
}

// RankToday evaluates every player with posted props against our
// predictions and returns bets whose edge clears minEdge, best first.
func (s *ValueBetService) RankToday(ctx context.Context, minEdge float64, showAll, useSmart bool) (*models.RankingResult, error) {
	if s.oddsService == nil {
		return nil, models.ErrSourceUnavailable
	}
	if minEdge <= 0 {
		minEdge = s.cfg.DefaultMinEdge
	}

	props, err := s.oddsService.AllPlayerProps(ctx)
	if err != nil {
		return nil, err
	}
	s.logger.Infof("Ranking %d players with props (min edge %.1f, smart=%t)", len(props), minEdge, useSmart)

	var injuryReport InjuryReport
	if useSmart && s.cfg.InjuriesOn && s.injuries != nil {
		injuryReport, err = s.injuries.Report(ctx)
		if err != nil {
			s.logger.Warnf("Proceeding without injury data: %v", err)
			injuryReport = nil
		}
	}

	var (
		mu          sync.Mutex
		comparisons []models.ValueBet
		skipped     int
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.MaxConcurrency)

	for _, pp := range props {
		pp := pp
		g.Go(func() error {
			bets, err := s.evaluatePlayer(gctx, pp, minEdge, useSmart, injuryReport)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				skipped++
				s.logger.Debugf("Skipping %s: %v", pp.PlayerName, err)
				return nil
			}
			comparisons = append(comparisons, bets...)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Deterministic order regardless of goroutine scheduling
	sort.Slice(comparisons, func(i, j int) bool {
		si, sj := comparisons[i].Score(), comparisons[j].Score()
		if si != sj {
			return si > sj
		}
		if comparisons[i].PlayerName != comparisons[j].PlayerName {
			return comparisons[i].PlayerName < comparisons[j].PlayerName
		}
		return comparisons[i].StatType < comparisons[j].StatType
	})

	valueBets := make([]models.ValueBet, 0, len(comparisons))
	for _, vb := range comparisons {
		if vb.HasValue {
			valueBets = append(valueBets, vb)
		}
	}

	result := &models.RankingResult{
		Date:           time.Now().Format("2006-01-02"),
		MinEdge:        minEdge,
		TotalValueBets: len(valueBets),
		ValueBets:      valueBets,
		Summary: models.RankingSummary{
			PlayersWithProps: len(props),
			PlayersEvaluated: len(props) - skipped,
			PlayersSkipped:   skipped,
			TotalComparisons: len(comparisons),
		},
		GeneratedAt: time.Now(),
	}
	if showAll {
		all := comparisons
		if len(all) > showAllLimit {
			all = all[:showAllLimit]
		}
		result.AllComparisons = all
	}

	s.persist(ctx, result)

	s.logger.Infof("Ranking complete: %d value bets from %d comparisons, %d players skipped",
		len(valueBets), len(comparisons), skipped)
	return result, nil
}

// evaluatePlayer predicts every stat the player has a posted line for
func (s *ValueBetService) evaluatePlayer(ctx context.Context, pp *models.PlayerProps, minEdge float64, useSmart bool, injuryReport InjuryReport) ([]models.ValueBet, error) {
	player, err := s.statsService.SearchPlayer(ctx, pp.PlayerName)
	if err != nil {
		return nil, err
	}

	games, err := s.statsService.PlayerGameLog(ctx, player.ID)
	if err != nil {
		return nil, err
	}
	if len(games) == 0 {
		return nil, models.ErrInsufficientData
	}

	gctx := s.gameContext(player, pp, injuryReport)

	var bets []models.ValueBet
	for _, stat := range models.AllStatTypes {
		line, ok := pp.Line(stat)
		if !ok {
			continue
		}
		pred, err := s.engine.Predict(player, games, stat, gctx, useSmart)
		if err != nil {
			// A single stat short on data should not discard the rest
			s.logger.Debugf("No %s prediction for %s: %v", stat, player.Name, err)
			continue
		}
		bets = append(bets, models.NewValueBet(*pred, line, minEdge))
	}
	if len(bets) == 0 {
		return nil, models.ErrInsufficientData
	}
	return bets, nil
}

// gameContext derives opponent and venue from the prop's game label
// ("Away Team @ Home Team", full team names).
func (s *ValueBetService) gameContext(player *models.Player, pp *models.PlayerProps, injuryReport InjuryReport) *GameContext {
	gctx := &GameContext{
		TeamAbbr: player.TeamAbbr,
		Home:     true,
		GameDate: time.Now(),
		Injuries: injuryReport,
	}

	parts := strings.SplitN(pp.Game, " @ ", 2)
	if len(parts) != 2 {
		return gctx
	}
	away := TeamAbbrFromName(strings.TrimSpace(parts[0]))
	home := TeamAbbrFromName(strings.TrimSpace(parts[1]))

	switch player.TeamAbbr {
	case home:
		gctx.Opponent = away
	case away:
		gctx.Home = false
		gctx.Opponent = home
	}
	return gctx
}

// persist records today's value bets for accuracy tracking. Re-ranking
// the same day never overwrites an earlier record.
func (s *ValueBetService) persist(ctx context.Context, result *models.RankingResult) {
	if s.store == nil || len(result.ValueBets) == 0 {
		return
	}

	records := make([]models.PredictionRecord, 0, len(result.ValueBets))
	for _, vb := range result.ValueBets {
		records = append(records, models.PredictionRecord{
			Date:       result.Date,
			PlayerID:   vb.PlayerID,
			PlayerName: vb.PlayerName,
			StatType:   vb.StatType,
			Predicted:  vb.Prediction,
			Confidence: vb.Confidence,
			Line:       vb.Line,
			Edge:       vb.Edge,
			Side:       vb.Side,
			CreatedAt:  time.Now(),
		})
	}

	if err := s.store.SavePredictions(ctx, records); err != nil {
		s.logger.Warnf("Failed to persist %d prediction records: %v", len(records), err)
	}
}
