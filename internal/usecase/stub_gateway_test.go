package usecase

import (
	"context"
	"sync/atomic"

	"github.com/fplhq/companion/internal/domain/entry"
	"github.com/fplhq/companion/internal/domain/fixture"
	"github.com/fplhq/companion/internal/domain/gameweek"
	"github.com/fplhq/companion/internal/domain/player"
	"github.com/fplhq/companion/internal/domain/scoring"
	"github.com/fplhq/companion/internal/domain/team"
	"github.com/fplhq/companion/internal/platform/cache"
	"github.com/fplhq/companion/internal/platform/logging"
)

type stubGateway struct {
	bootstrap Bootstrap
	fixtures  map[int][]fixture.Fixture
	live      map[int]map[int]scoring.LiveStat
	picks     map[[2]int]entry.PicksSnapshot
	history   map[int]entry.History

	bootstrapCalls atomic.Int32
	liveCalls      atomic.Int32

	bootstrapErr error
	liveErr      error
	picksErr     error
}

var _ FPLGateway = (*stubGateway)(nil)

func (g *stubGateway) FetchBootstrap(context.Context) (Bootstrap, error) {
	g.bootstrapCalls.Add(1)
	if g.bootstrapErr != nil {
		return Bootstrap{}, g.bootstrapErr
	}
	return g.bootstrap, nil
}

func (g *stubGateway) FetchFixtures(_ context.Context, event int) ([]fixture.Fixture, error) {
	return g.fixtures[event], nil
}

func (g *stubGateway) FetchEventLive(_ context.Context, event int) (map[int]scoring.LiveStat, error) {
	g.liveCalls.Add(1)
	if g.liveErr != nil {
		return nil, g.liveErr
	}
	return g.live[event], nil
}

func (g *stubGateway) FetchEntryPicks(_ context.Context, entryID, event int) (entry.PicksSnapshot, error) {
	if g.picksErr != nil {
		return entry.PicksSnapshot{}, g.picksErr
	}
	return g.picks[[2]int{entryID, event}], nil
}

func (g *stubGateway) FetchEntryHistory(_ context.Context, entryID int) (entry.History, error) {
	return g.history[entryID], nil
}

type stubStats struct {
	rows []OwnershipRow
	err  error
}

var _ StatsGateway = (*stubStats)(nil)

func (g *stubStats) FetchOwnership(context.Context, int) ([]OwnershipRow, error) {
	if g.err != nil {
		return nil, g.err
	}
	return g.rows, nil
}

// testBootstrap builds a small catalogue: one team pair, a GK/DEF/MID/FWD
// squad core, and one current gameweek.
func testBootstrap(currentFinished bool) Bootstrap {
	return Bootstrap{
		Players: []player.Player{
			{ID: 1, WebName: "Keeper", Position: player.PositionGoalkeeper, TeamID: 1, Status: "a"},
			{ID: 2, WebName: "Back", Position: player.PositionDefender, TeamID: 1, Status: "a"},
			{ID: 3, WebName: "Engine", Position: player.PositionMidfielder, TeamID: 1, Status: "a"},
			{ID: 4, WebName: "Striker", Position: player.PositionForward, TeamID: 2, Status: "a"},
		},
		Teams: []team.Team{
			{ID: 1, Name: "Home FC", ShortName: "HOM"},
			{ID: 2, Name: "Away FC", ShortName: "AWY"},
		},
		Gameweeks: []gameweek.Gameweek{
			{ID: 12, Name: "Gameweek 12", IsCurrent: true, Finished: currentFinished},
		},
	}
}

func newTestSnapshots(g FPLGateway) *SnapshotService {
	svc, err := NewSnapshotService(g, cache.NewStore(0), DefaultCacheTTLs(), logging.NewNop())
	if err != nil {
		panic(err)
	}
	return svc
}
