package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/fplhq/companion/internal/domain/entry"
	"github.com/fplhq/companion/internal/domain/player"
	"github.com/fplhq/companion/internal/domain/scoring"
	"github.com/fplhq/companion/internal/platform/logging"
)

func TestBreakdownService_PositionBreakdown(t *testing.T) {
	t.Parallel()

	picks := entry.PicksSnapshot{
		Picks: []entry.Pick{
			{Element: 1, Position: 1, Multiplier: 1},
			{Element: 2, Position: 2, Multiplier: 1},
			{Element: 3, Position: 6, Multiplier: 1},
			{Element: 4, Position: 11, Multiplier: 2},
		},
	}
	gw := &stubGateway{
		bootstrap: testBootstrap(false),
		live: map[int]map[int]scoring.LiveStat{
			11: {1: {TotalPoints: 3}, 2: {TotalPoints: 6}, 3: {TotalPoints: 8}, 4: {TotalPoints: 10}},
			12: {1: {TotalPoints: 1}, 2: {TotalPoints: 2}, 3: {TotalPoints: 0}, 4: {TotalPoints: 5}},
		},
		picks: map[[2]int]entry.PicksSnapshot{
			{42, 11}: picks,
			{42, 12}: picks,
		},
	}
	svc, err := NewBreakdownService(newTestSnapshots(gw), logging.NewNop())
	if err != nil {
		t.Fatalf("NewBreakdownService: %v", err)
	}

	shares, err := svc.PositionBreakdown(context.Background(), 42, 11, 12)
	if err != nil {
		t.Fatalf("PositionBreakdown: %v", err)
	}

	// GK 4, DEF 8, MID 8, FWD 30 over the two gameweeks.
	want := map[player.Position]int{
		player.PositionGoalkeeper: 4,
		player.PositionDefender:   8,
		player.PositionMidfielder: 8,
		player.PositionForward:    30,
	}
	for _, share := range shares {
		if share.Points != want[share.Position] {
			t.Fatalf("%s points: got=%d want=%d", share.Position, share.Points, want[share.Position])
		}
	}
	if shares[3].Percentage != 60 {
		t.Fatalf("FWD percentage: got=%d want=60", shares[3].Percentage)
	}
}

func TestBreakdownService_InvalidRange(t *testing.T) {
	t.Parallel()

	svc, err := NewBreakdownService(newTestSnapshots(&stubGateway{bootstrap: testBootstrap(false)}), logging.NewNop())
	if err != nil {
		t.Fatalf("NewBreakdownService: %v", err)
	}

	if _, err := svc.PositionBreakdown(context.Background(), 42, 5, 3); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if _, err := svc.PositionBreakdown(context.Background(), 0, 1, 2); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
