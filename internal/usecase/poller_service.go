package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/fplhq/companion/internal/platform/logging"
)

// PollerConfig drives the live refresh loop.
type PollerConfig struct {
	Interval       time.Duration
	WatchedEntries []int
	MaxWorkers     int
}

// PollerService refreshes live snapshots while a gameweek is in progress
// and recomputes the watched entries on a worker pool. The loop only runs
// between the first kickoff and the gameweek being marked finished, and it
// stops deterministically on either condition.
type PollerService struct {
	snapshots *SnapshotService
	liveScore *LiveScoreService
	cfg       PollerConfig
	logger    *logging.Logger

	mu      sync.RWMutex
	updates map[int]EntryLive
}

func NewPollerService(snapshots *SnapshotService, liveScore *LiveScoreService, cfg PollerConfig, logger *logging.Logger) (*PollerService, error) {
	if snapshots == nil {
		return nil, fmt.Errorf("snapshot service is required")
	}
	if liveScore == nil {
		return nil, fmt.Errorf("live score service is required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.Interval <= 0 {
		cfg.Interval = time.Minute
	}
	if cfg.MaxWorkers <= 0 {
		cfg.MaxWorkers = 4
	}

	return &PollerService{
		snapshots: snapshots,
		liveScore: liveScore,
		cfg:       cfg,
		logger:    logger,
		updates:   make(map[int]EntryLive, len(cfg.WatchedEntries)),
	}, nil
}

// Latest returns the most recent recomputed score for a watched entry.
func (s *PollerService) Latest(entryID int) (EntryLive, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	live, ok := s.updates[entryID]
	return live, ok
}

// Run blocks until the current gameweek finishes or ctx is cancelled.
func (s *PollerService) Run(ctx context.Context) error {
	if len(s.cfg.WatchedEntries) == 0 {
		s.logger.Info("poller idle: no watched entries configured")
		<-ctx.Done()
		return ctx.Err()
	}

	pool, err := ants.NewPool(s.cfg.MaxWorkers)
	if err != nil {
		return fmt.Errorf("create poller pool: %w", err)
	}
	defer pool.Release()

	ticker := time.NewTicker(s.cfg.Interval)
	defer ticker.Stop()

	for {
		done, err := s.tick(ctx, pool)
		if err != nil {
			s.logger.WarnContext(ctx, "poll tick failed", "error", err)
		}
		if done {
			s.logger.InfoContext(ctx, "gameweek finished, poller stopping")
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// tick refreshes the volatile snapshots and fans the watched entries out to
// the pool. It reports done=true once the current gameweek is finished.
func (s *PollerService) tick(ctx context.Context, pool *ants.Pool) (bool, error) {
	current, err := s.snapshots.CurrentGameweek(ctx)
	if err != nil {
		return false, err
	}
	if current.Finished {
		return true, nil
	}

	s.snapshots.InvalidateLive(ctx, current.ID)
	if _, err := s.snapshots.Live(ctx, current.ID); err != nil {
		return false, fmt.Errorf("refresh live event=%d: %w", current.ID, err)
	}
	if _, err := s.snapshots.Fixtures(ctx, current.ID); err != nil {
		return false, fmt.Errorf("refresh fixtures event=%d: %w", current.ID, err)
	}

	var wg sync.WaitGroup
	for _, entryID := range s.cfg.WatchedEntries {
		wg.Add(1)
		submitErr := pool.Submit(func() {
			defer wg.Done()
			live, err := s.liveScore.GetEntryLive(ctx, entryID, current.ID)
			if err != nil {
				s.logger.WarnContext(ctx, "recompute watched entry failed", "entry_id", entryID, "error", err)
				return
			}
			s.mu.Lock()
			s.updates[entryID] = live
			s.mu.Unlock()
		})
		if submitErr != nil {
			wg.Done()
			s.logger.WarnContext(ctx, "submit watched entry failed", "entry_id", entryID, "error", submitErr)
		}
	}
	wg.Wait()

	return false, nil
}
