package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/fplhq/companion/internal/domain/entry"
	"github.com/fplhq/companion/internal/domain/fixture"
	"github.com/fplhq/companion/internal/domain/player"
	"github.com/fplhq/companion/internal/domain/scoring"
	"github.com/fplhq/companion/internal/platform/logging"
)

func newLiveScoreService(t *testing.T, gw FPLGateway) *LiveScoreService {
	t.Helper()
	svc, err := NewLiveScoreService(newTestSnapshots(gw), scoring.DefaultRules(), logging.NewNop())
	if err != nil {
		t.Fatalf("NewLiveScoreService: %v", err)
	}
	return svc
}

func TestLiveScoreService_GetEntryLive(t *testing.T) {
	t.Parallel()

	gw := &stubGateway{
		bootstrap: testBootstrap(false),
		fixtures: map[int][]fixture.Fixture{
			12: {{ID: 1, Event: 12, TeamH: 1, TeamA: 2, Started: true, Finished: true, FinishedProvisional: true, Minutes: 90}},
		},
		live: map[int]map[int]scoring.LiveStat{
			12: {
				1: {Minutes: 90, TotalPoints: 2},
				3: {Minutes: 90, TotalPoints: 8},
				4: {Minutes: 90, TotalPoints: 10},
			},
		},
		picks: map[[2]int]entry.PicksSnapshot{
			{42, 12}: {
				EntryID: 42, Event: 12, TransferCost: 4,
				Picks: []entry.Pick{
					{Element: 1, Position: 1, Multiplier: 1},
					{Element: 3, Position: 2, Multiplier: 1},
					{Element: 4, Position: 3, Multiplier: 2, IsCaptain: true},
				},
			},
		},
	}
	svc := newLiveScoreService(t, gw)

	got, err := svc.GetEntryLive(context.Background(), 42, 12)
	if err != nil {
		t.Fatalf("GetEntryLive: %v", err)
	}

	// 2 + 8 + 10x2 - 4 hits.
	if got.Total != 26 {
		t.Fatalf("total: got=%d want=26", got.Total)
	}
	if len(got.Players) != 3 {
		t.Fatalf("players: got=%d want=3", len(got.Players))
	}

	captain := got.Players[2]
	if captain.Points != 20 || !captain.IsCaptain || captain.Multiplier != 2 {
		t.Fatalf("captain row: %+v", captain)
	}
	if captain.Name != "Striker" || captain.OpponentShort != "HOM" || captain.IsHome {
		t.Fatalf("captain context: %+v", captain)
	}
	if !captain.Started || !captain.Finished {
		t.Fatalf("captain flags: %+v", captain)
	}
}

func TestLiveScoreService_RecomputesSubsWhenRecordsMissing(t *testing.T) {
	t.Parallel()

	bootstrap := testBootstrap(false)
	bootstrap.Players = fullSquadPlayers()

	live := map[int]scoring.LiveStat{}
	picks := make([]entry.Pick, 0, 15)
	for slot := 1; slot <= 15; slot++ {
		multiplier := 1
		if slot > 11 {
			multiplier = 0
		}
		picks = append(picks, entry.Pick{Element: slot, Position: slot, Multiplier: multiplier})
		live[slot] = scoring.LiveStat{Minutes: 90, TotalPoints: 2}
	}
	// Midfielder in slot 6 never played; the bench defender in slot 13
	// should come on for him once the fixture is finished.
	live[6] = scoring.LiveStat{Minutes: 0, TotalPoints: 0}
	live[13] = scoring.LiveStat{Minutes: 90, TotalPoints: 6}

	gw := &stubGateway{
		bootstrap: bootstrap,
		fixtures: map[int][]fixture.Fixture{
			12: {{ID: 1, Event: 12, TeamH: 1, TeamA: 2, Started: true, Finished: true, FinishedProvisional: true, Minutes: 90}},
		},
		live:  map[int]map[int]scoring.LiveStat{12: live},
		picks: map[[2]int]entry.PicksSnapshot{{42, 12}: {EntryID: 42, Event: 12, Picks: picks}},
	}
	svc := newLiveScoreService(t, gw)

	got, err := svc.GetEntryLive(context.Background(), 42, 12)
	if err != nil {
		t.Fatalf("GetEntryLive: %v", err)
	}

	bench := got.Players[12]
	if !bench.InFinalTeam || bench.Points != 6 || bench.Multiplier != 1 {
		t.Fatalf("bench defender should be subbed in at 1x: %+v", bench)
	}
	starter := got.Players[5]
	if starter.InFinalTeam || starter.Points != 0 {
		t.Fatalf("non-playing starter should be out of the final team: %+v", starter)
	}
}

// fullSquadPlayers lays out a 3-4-3 with a GK/DEF/MID/FWD bench, element id
// equal to squad slot, everyone on team 1.
func fullSquadPlayers() []player.Player {
	positions := map[int]player.Position{
		1: player.PositionGoalkeeper,
		2: player.PositionDefender, 3: player.PositionDefender, 4: player.PositionDefender,
		5: player.PositionMidfielder, 6: player.PositionMidfielder, 7: player.PositionMidfielder, 8: player.PositionMidfielder,
		9: player.PositionForward, 10: player.PositionForward, 11: player.PositionForward,
		12: player.PositionGoalkeeper, 13: player.PositionDefender, 14: player.PositionMidfielder, 15: player.PositionForward,
	}

	players := make([]player.Player, 0, 15)
	for id := 1; id <= 15; id++ {
		players = append(players, player.Player{ID: id, Position: positions[id], TeamID: 1, Status: "a"})
	}
	return players
}

func TestLiveScoreService_SnapshotFailurePropagates(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	gw := &stubGateway{bootstrap: testBootstrap(false), picksErr: boom}
	svc := newLiveScoreService(t, gw)

	if _, err := svc.GetEntryLive(context.Background(), 42, 12); !errors.Is(err, boom) {
		t.Fatalf("expected snapshot failure to propagate, got %v", err)
	}
}

func TestLiveScoreService_InvalidInput(t *testing.T) {
	t.Parallel()

	svc := newLiveScoreService(t, &stubGateway{bootstrap: testBootstrap(false)})

	if _, err := svc.GetEntryLive(context.Background(), 0, 12); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for entry, got %v", err)
	}
	if _, err := svc.GetEntryLive(context.Background(), 42, 0); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for event, got %v", err)
	}
}
