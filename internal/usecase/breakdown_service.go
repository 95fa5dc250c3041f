package usecase

import (
	"context"
	"fmt"
	"sync"

	"github.com/sourcegraph/conc"

	"github.com/fplhq/companion/internal/domain/player"
	"github.com/fplhq/companion/internal/domain/scoring"
	"github.com/fplhq/companion/internal/platform/logging"
)

// BreakdownService aggregates point contributions by position across a
// gameweek range.
type BreakdownService struct {
	snapshots *SnapshotService
	logger    *logging.Logger
}

func NewBreakdownService(snapshots *SnapshotService, logger *logging.Logger) (*BreakdownService, error) {
	if snapshots == nil {
		return nil, fmt.Errorf("snapshot service is required")
	}
	if logger == nil {
		logger = logging.Default()
	}

	return &BreakdownService{snapshots: snapshots, logger: logger}, nil
}

// PositionBreakdown sums a manager's effective points per position over
// [fromEvent, toEvent] and renders percentage shares. Gameweeks load in
// parallel; one failed gameweek fails the range.
func (s *BreakdownService) PositionBreakdown(ctx context.Context, entryID, fromEvent, toEvent int) ([]scoring.PositionShare, error) {
	ctx, span := startUsecaseSpan(ctx, "BreakdownService.PositionBreakdown")
	defer span.End()

	if entryID <= 0 {
		return nil, fmt.Errorf("%w: entry id must be greater than zero", ErrInvalidInput)
	}
	if fromEvent <= 0 || toEvent < fromEvent {
		return nil, fmt.Errorf("%w: gameweek range %d..%d", ErrInvalidInput, fromEvent, toEvent)
	}

	bootstrap, err := s.snapshots.Bootstrap(ctx)
	if err != nil {
		return nil, fmt.Errorf("load bootstrap: %w", err)
	}
	positionOf := bootstrap.PositionOf()

	var (
		mu       sync.Mutex
		perEvent = make([]scoring.PositionPoints, 0, toEvent-fromEvent+1)
		firstErr error
	)

	var wg conc.WaitGroup
	for event := fromEvent; event <= toEvent; event++ {
		wg.Go(func() {
			totals, err := s.eventPositionPoints(ctx, entryID, event, positionOf)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				if firstErr == nil {
					firstErr = fmt.Errorf("gameweek %d: %w", event, err)
				}
				return
			}
			perEvent = append(perEvent, totals)
		})
	}
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}

	return scoring.PositionBreakdown(scoring.AggregatePositionPoints(perEvent)), nil
}

func (s *BreakdownService) eventPositionPoints(ctx context.Context, entryID, event int, positionOf map[int]player.Position) (scoring.PositionPoints, error) {
	picks, err := s.snapshots.Picks(ctx, entryID, event)
	if err != nil {
		return nil, err
	}
	live, err := s.snapshots.Live(ctx, event)
	if err != nil {
		return nil, err
	}
	return scoring.GameweekPositionPoints(picks.Picks, live, positionOf, picks.AutomaticSubs), nil
}
