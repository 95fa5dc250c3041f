package usecase

import (
	"context"
	"fmt"

	"github.com/sourcegraph/conc"

	"github.com/fplhq/companion/internal/domain/entry"
	"github.com/fplhq/companion/internal/platform/logging"
)

// EntrySummary is the dashboard view of one manager: season history, the
// live score of the current gameweek, and ownership context for his picks.
type EntrySummary struct {
	EntryID   int
	Event     int
	Live      EntryLive
	History   []entry.HistoryRow
	Ownership []OwnershipRow
}

// DashboardService assembles the combined entry summary.
type DashboardService struct {
	snapshots *SnapshotService
	liveScore *LiveScoreService
	stats     StatsGateway
	logger    *logging.Logger
}

// NewDashboardService wires the summary view. stats may be nil; ownership
// context is then omitted.
func NewDashboardService(snapshots *SnapshotService, liveScore *LiveScoreService, stats StatsGateway, logger *logging.Logger) (*DashboardService, error) {
	if snapshots == nil {
		return nil, fmt.Errorf("snapshot service is required")
	}
	if liveScore == nil {
		return nil, fmt.Errorf("live score service is required")
	}
	if logger == nil {
		logger = logging.Default()
	}

	return &DashboardService{
		snapshots: snapshots,
		liveScore: liveScore,
		stats:     stats,
		logger:    logger,
	}, nil
}

func (s *DashboardService) Summary(ctx context.Context, entryID int) (EntrySummary, error) {
	ctx, span := startUsecaseSpan(ctx, "DashboardService.Summary")
	defer span.End()

	if entryID <= 0 {
		return EntrySummary{}, fmt.Errorf("%w: entry id must be greater than zero", ErrInvalidInput)
	}

	current, err := s.snapshots.CurrentGameweek(ctx)
	if err != nil {
		return EntrySummary{}, err
	}

	var (
		live       EntryLive
		history    entry.History
		ownership  []OwnershipRow
		liveErr    error
		historyErr error
	)

	var wg conc.WaitGroup
	wg.Go(func() { live, liveErr = s.liveScore.GetEntryLive(ctx, entryID, current.ID) })
	wg.Go(func() { history, historyErr = s.snapshots.History(ctx, entryID) })
	if s.stats != nil {
		wg.Go(func() {
			rows, err := s.stats.FetchOwnership(ctx, current.ID)
			if err != nil {
				// Ownership is additive context; the summary stands without it.
				s.logger.WarnContext(ctx, "ownership context unavailable", "event", current.ID, "error", err)
				return
			}
			ownership = rows
		})
	}
	wg.Wait()

	if liveErr != nil {
		return EntrySummary{}, liveErr
	}
	if historyErr != nil {
		return EntrySummary{}, historyErr
	}

	return EntrySummary{
		EntryID:   entryID,
		Event:     current.ID,
		Live:      live,
		History:   history.Current,
		Ownership: ownership,
	}, nil
}
