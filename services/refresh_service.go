package services

import (
	"context"
	"time"

	"golang.org/x/sync/singleflight"

	"nba-props-go/config"
	"nba-props-go/logging"
	"nba-props-go/models"
)

// RefreshSummary reports what one refresh pass accomplished
type RefreshSummary struct {
	StartedAt         time.Time `json:"started_at"`
	Duration          string    `json:"duration"`
	GamesToday        int       `json:"games_today"`
	PlayersWithProps  int       `json:"players_with_props"`
	RecordsReconciled int       `json:"records_reconciled"`
	Errors            []string  `json:"errors,omitempty"`
}

// RefreshService drops stale caches, re-warms the day's data and
// reconciles pending accuracy records. Concurrent triggers collapse
// into a single pass; callers share the result.
type RefreshService struct {
	statsService *NBAStatsService
	oddsService  *OddsService
	injuries     *InjuryService
	accuracy     *AccuracyService
	cfg          config.RefreshConfig
	logger       *logging.Logger

	group    singleflight.Group
	stopChan chan struct{}
}

// NewRefreshService creates the refresh coordinator
func NewRefreshService(statsService *NBAStatsService, oddsService *OddsService, injuries *InjuryService, accuracy *AccuracyService, cfg config.RefreshConfig) *RefreshService {
	return &RefreshService{
		statsService: statsService,
		oddsService:  oddsService,
		injuries:     injuries,
		accuracy:     accuracy,
		cfg:          cfg,
		logger:       logging.WithPrefix("Refresh"),
		stopChan:     make(chan struct{}),
	}
}

// Refresh runs one refresh pass. Overlapping calls join the in-flight
// pass instead of starting another.
func (s *RefreshService) Refresh(ctx context.Context) (*RefreshSummary, error) {
	result, err, shared := s.group.Do("refresh", func() (interface{}, error) {
		return s.doRefresh(ctx), nil
	})
	if err != nil {
		return nil, err
	}
	if shared {
		s.logger.Debug("Joined in-flight refresh pass")
	}
	return result.(*RefreshSummary), nil
}

func (s *RefreshService) doRefresh(ctx context.Context) *RefreshSummary {
	start := time.Now()
	summary := &RefreshSummary{StartedAt: start}
	s.logger.Info("Starting refresh pass")

	s.statsService.InvalidateCache()
	if s.oddsService != nil {
		s.oddsService.InvalidateCache()
	}
	if s.injuries != nil {
		s.injuries.InvalidateCache()
	}

	// Reconcile yesterday's predictions before today's data warms up
	if s.accuracy != nil {
		reconciled, err := s.accuracy.Reconcile(ctx)
		if err != nil && models.Kind(err) != models.KindSourceUnavailable {
			summary.Errors = append(summary.Errors, "reconcile: "+err.Error())
		}
		summary.RecordsReconciled = reconciled
	}

	games, err := s.statsService.TodaysGames(ctx)
	if err != nil {
		summary.Errors = append(summary.Errors, "schedule: "+err.Error())
	}
	summary.GamesToday = len(games)

	if s.oddsService != nil {
		props, err := s.oddsService.AllPlayerProps(ctx)
		if err != nil {
			summary.Errors = append(summary.Errors, "props: "+err.Error())
		}
		summary.PlayersWithProps = len(props)
	}

	if s.injuries != nil {
		if _, err := s.injuries.Report(ctx); err != nil {
			summary.Errors = append(summary.Errors, "injuries: "+err.Error())
		}
	}

	summary.Duration = time.Since(start).Round(time.Millisecond).String()
	s.logger.Infof("Refresh pass done in %s: %d games, %d players with props, %d reconciled, %d errors",
		summary.Duration, summary.GamesToday, summary.PlayersWithProps, summary.RecordsReconciled, len(summary.Errors))
	return summary
}

// Start launches the daily background refresh loop
func (s *RefreshService) Start() {
	if !s.cfg.Enabled {
		s.logger.Info("Background refresh disabled")
		return
	}

	go func() {
		s.logger.Infof("Background refresh started (interval %v)", s.cfg.Interval)
		ticker := time.NewTicker(s.cfg.Interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
				if _, err := s.Refresh(ctx); err != nil {
					s.logger.Errorf("Background refresh failed: %v", err)
				}
				cancel()
			case <-s.stopChan:
				s.logger.Info("Background refresh stopped")
				return
			}
		}
	}()
}

// Stop halts the background refresh loop
func (s *RefreshService) Stop() {
	close(s.stopChan)
}
