package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/fplhq/companion/internal/domain/entry"
	"github.com/fplhq/companion/internal/domain/fixture"
	"github.com/fplhq/companion/internal/domain/scoring"
	"github.com/fplhq/companion/internal/platform/logging"
)

func TestPollerService_StopsWhenGameweekFinished(t *testing.T) {
	t.Parallel()

	gw := &stubGateway{bootstrap: testBootstrap(true)}
	snapshots := newTestSnapshots(gw)
	liveScore, err := NewLiveScoreService(snapshots, scoring.DefaultRules(), logging.NewNop())
	if err != nil {
		t.Fatalf("NewLiveScoreService: %v", err)
	}

	poller, err := NewPollerService(snapshots, liveScore, PollerConfig{
		Interval:       10 * time.Millisecond,
		WatchedEntries: []int{42},
	}, logging.NewNop())
	if err != nil {
		t.Fatalf("NewPollerService: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := poller.Run(ctx); err != nil {
		t.Fatalf("expected clean stop on finished gameweek, got %v", err)
	}
}

func TestPollerService_RecomputesWatchedEntries(t *testing.T) {
	t.Parallel()

	gw := &stubGateway{
		bootstrap: testBootstrap(false),
		fixtures: map[int][]fixture.Fixture{
			12: {{ID: 1, Event: 12, TeamH: 1, TeamA: 2, Started: true, Minutes: 30}},
		},
		live: map[int]map[int]scoring.LiveStat{
			12: {3: {Minutes: 30, TotalPoints: 5}},
		},
		picks: map[[2]int]entry.PicksSnapshot{
			{42, 12}: {EntryID: 42, Event: 12, Picks: []entry.Pick{{Element: 3, Position: 1, Multiplier: 2}}},
		},
	}
	snapshots := newTestSnapshots(gw)
	liveScore, err := NewLiveScoreService(snapshots, scoring.DefaultRules(), logging.NewNop())
	if err != nil {
		t.Fatalf("NewLiveScoreService: %v", err)
	}

	poller, err := NewPollerService(snapshots, liveScore, PollerConfig{
		Interval:       5 * time.Millisecond,
		WatchedEntries: []int{42},
		MaxWorkers:     2,
	}, logging.NewNop())
	if err != nil {
		t.Fatalf("NewPollerService: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- poller.Run(ctx) }()

	deadline := time.After(2 * time.Second)
	for {
		if live, ok := poller.Latest(42); ok {
			if live.Total != 10 {
				t.Fatalf("watched entry total: got=%d want=10", live.Total)
			}
			break
		}
		select {
		case <-deadline:
			t.Fatal("poller never recomputed the watched entry")
		case <-time.After(5 * time.Millisecond):
		}
	}

	cancel()
	if err := <-done; err != context.Canceled {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestPollerService_CancelWithoutEntries(t *testing.T) {
	t.Parallel()

	gw := &stubGateway{bootstrap: testBootstrap(false)}
	snapshots := newTestSnapshots(gw)
	liveScore, err := NewLiveScoreService(snapshots, scoring.DefaultRules(), logging.NewNop())
	if err != nil {
		t.Fatalf("NewLiveScoreService: %v", err)
	}

	poller, err := NewPollerService(snapshots, liveScore, PollerConfig{Interval: time.Minute}, logging.NewNop())
	if err != nil {
		t.Fatalf("NewPollerService: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := poller.Run(ctx); err != context.Canceled {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
