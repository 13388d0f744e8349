package services

import (
	"context"
	"fmt"
	"math"
	"time"

	"nba-props-go/logging"
	"nba-props-go/models"
)

// PredictionLedger is the persistence surface the accuracy tracker
// needs: unresolved records to reconcile and resolved ones to report on.
type PredictionLedger interface {
	GetUnresolved(ctx context.Context, before string) ([]models.PredictionRecord, error)
	MarkResolved(ctx context.Context, rec *models.PredictionRecord) error
	GetResolvedSince(ctx context.Context, cutoff string) ([]models.PredictionRecord, error)
}

// AccuracyService reconciles persisted value bets against realized
// stats and reports hit rate over a trailing window.
type AccuracyService struct {
	ledger       PredictionLedger
	statsService *NBAStatsService
	logger       *logging.Logger
}

const (
	// Bounds for the trailing accuracy window, in days
	MinAccuracyDays = 1
	MaxAccuracyDays = 30
)

// NewAccuracyService creates the accuracy tracker
func NewAccuracyService(ledger PredictionLedger, statsService *NBAStatsService) *AccuracyService {
	return &AccuracyService{
		ledger:       ledger,
		statsService: statsService,
		logger:       logging.WithPrefix("Accuracy"),
	}
}

// Reconcile resolves pending records for games that have completed.
// A record whose stat cannot be found stays unresolved and is retried
// on the next pass. Returns the number of records resolved.
func (s *AccuracyService) Reconcile(ctx context.Context) (int, error) {
	if s.ledger == nil {
		return 0, fmt.Errorf("%w: prediction storage not configured", models.ErrSourceUnavailable)
	}

	today := time.Now().Format("2006-01-02")
	pending, err := s.ledger.GetUnresolved(ctx, today)
	if err != nil {
		return 0, err
	}
	if len(pending) == 0 {
		return 0, nil
	}
	s.logger.Infof("Reconciling %d pending prediction records", len(pending))

	resolved := 0
	for i := range pending {
		rec := &pending[i]

		actual, found, err := s.statsService.StatOnDate(ctx, rec.PlayerID, rec.Date, rec.StatType)
		if err != nil {
			s.logger.Warnf("Could not look up %s %s on %s: %v", rec.PlayerName, rec.StatType, rec.Date, err)
			continue
		}
		if !found {
			// Game postponed or player sat; leave pending
			continue
		}

		rec.Resolve(actual, time.Now())
		if err := s.ledger.MarkResolved(ctx, rec); err != nil {
			s.logger.Errorf("Failed to mark record resolved for %s: %v", rec.PlayerName, err)
			continue
		}
		resolved++
	}

	s.logger.Infof("Reconciled %d of %d pending records", resolved, len(pending))
	return resolved, nil
}

// Stats aggregates resolved predictions over the trailing window.
// days must be within [1, 30].
func (s *AccuracyService) Stats(ctx context.Context, days int) (*models.AccuracyStats, error) {
	if days < MinAccuracyDays || days > MaxAccuracyDays {
		return nil, fmt.Errorf("%w: days must be between %d and %d", models.ErrValidation, MinAccuracyDays, MaxAccuracyDays)
	}
	if s.ledger == nil {
		return nil, fmt.Errorf("%w: prediction storage not configured", models.ErrSourceUnavailable)
	}

	cutoff := time.Now().AddDate(0, 0, -days).Format("2006-01-02")
	records, err := s.ledger.GetResolvedSince(ctx, cutoff)
	if err != nil {
		return nil, err
	}

	result := &models.AccuracyStats{DaysTracked: days}
	if len(records) == 0 {
		return result, nil
	}

	var (
		errorSum                   float64
		winnerEdgeSum, winnerCount float64
		loserEdgeSum, loserCount   float64
	)
	for i := range records {
		rec := &records[i]
		if !rec.Resolved() {
			continue
		}

		result.TotalPredictions++
		errorSum += math.Abs(*rec.Actual - rec.Predicted)

		if *rec.Correct {
			result.Correct++
			winnerEdgeSum += math.Abs(rec.Edge)
			winnerCount++
		} else {
			loserEdgeSum += math.Abs(rec.Edge)
			loserCount++
		}
	}
	if result.TotalPredictions == 0 {
		return result, nil
	}

	result.HitRate = round1(float64(result.Correct) / float64(result.TotalPredictions) * 100)
	result.AvgError = round1(errorSum / float64(result.TotalPredictions))
	if winnerCount > 0 {
		result.AvgEdgeWinners = round1(winnerEdgeSum / winnerCount)
	}
	if loserCount > 0 {
		result.AvgEdgeLosers = round1(loserEdgeSum / loserCount)
	}
	return result, nil
}
