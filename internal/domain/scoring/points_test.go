package scoring

import (
	"testing"

	"github.com/fplhq/companion/internal/domain/entry"
	"github.com/fplhq/companion/internal/domain/fixture"
	"github.com/fplhq/companion/internal/domain/player"
)

func TestLiveManagerPoints_TripleCaptain(t *testing.T) {
	t.Parallel()

	picks := []entry.Pick{{Element: 1, Position: 1, Multiplier: 3}}
	live := map[int]LiveStat{1: {Minutes: 90, TotalPoints: 10}}

	got := LiveManagerPoints(picks, live, finishedStates, map[int]int{1: 1}, nil, 0)

	if got.Total != 30 {
		t.Fatalf("triple captain: got=%d want=30", got.Total)
	}
}

func TestLiveManagerPoints_NegativeCaptainPoints(t *testing.T) {
	t.Parallel()

	picks := []entry.Pick{{Element: 1, Position: 1, Multiplier: 2}}
	live := map[int]LiveStat{1: {Minutes: 90, TotalPoints: -2}}

	got := LiveManagerPoints(picks, live, finishedStates, map[int]int{1: 1}, nil, 0)

	if got.Total != -4 {
		t.Fatalf("negative captain points: got=%d want=-4", got.Total)
	}
}

func TestLiveManagerPoints_TransferCostDeducted(t *testing.T) {
	t.Parallel()

	picks := []entry.Pick{{Element: 1, Position: 1, Multiplier: 1}}
	live := map[int]LiveStat{1: {Minutes: 90, TotalPoints: 6}}

	got := LiveManagerPoints(picks, live, finishedStates, map[int]int{1: 1}, nil, 8)

	if got.Total != -2 {
		t.Fatalf("transfer cost: got=%d want=-2", got.Total)
	}
}

func TestLiveManagerPoints_SubbedOutExcludedSubbedInAtOne(t *testing.T) {
	t.Parallel()

	picks := []entry.Pick{
		{Element: 1, Position: 5, Multiplier: 1},
		{Element: 2, Position: 12, Multiplier: 0},
	}
	live := map[int]LiveStat{
		1: {Minutes: 0, TotalPoints: 0},
		2: {Minutes: 90, TotalPoints: 8},
	}
	subs := []entry.AutomaticSub{{ElementOut: 1, ElementIn: 2}}

	got := LiveManagerPoints(picks, live, finishedStates, map[int]int{1: 1, 2: 1}, subs, 0)

	if got.Total != 8 {
		t.Fatalf("auto-sub total: got=%d want=8", got.Total)
	}
}

func TestLiveManagerPoints_MissingElementContributesZero(t *testing.T) {
	t.Parallel()

	picks := []entry.Pick{
		{Element: 1, Position: 1, Multiplier: 1},
		{Element: 999, Position: 2, Multiplier: 1},
	}
	live := map[int]LiveStat{1: {Minutes: 90, TotalPoints: 6}}

	got := LiveManagerPoints(picks, live, finishedStates, map[int]int{1: 1}, nil, 0)

	if got.Total != 6 {
		t.Fatalf("unknown element must contribute zero: got=%d want=6", got.Total)
	}
	if len(got.Players) != 2 {
		t.Fatalf("every pick keeps a row: got=%d want=2", len(got.Players))
	}
}

func TestLiveManagerPoints_StartedFlagDistinguishesNotYetPlayed(t *testing.T) {
	t.Parallel()

	states := NewFixtureStates([]fixture.Fixture{
		{ID: 1, TeamH: 1, TeamA: 2, Started: true, Minutes: 30},
		{ID: 2, TeamH: 3, TeamA: 4},
	})
	picks := []entry.Pick{
		{Element: 1, Position: 1, Multiplier: 1},
		{Element: 2, Position: 2, Multiplier: 1},
	}
	live := map[int]LiveStat{1: {Minutes: 30, TotalPoints: 1}}
	teams := map[int]int{1: 1, 2: 3}

	got := LiveManagerPoints(picks, live, states, teams, nil, 0)

	if !got.Players[0].Started {
		t.Fatal("in-play pick should be flagged started")
	}
	if got.Players[1].Started {
		t.Fatal("pick whose fixture has not kicked off must not be flagged started")
	}
	if got.Players[1].Points != 0 {
		t.Fatalf("unplayed pick points: got=%d want=0", got.Players[1].Points)
	}
}

func TestLiveManagerPoints_AddsProvisionalBonusBeforeFullTime(t *testing.T) {
	t.Parallel()

	states := NewFixtureStates([]fixture.Fixture{
		{ID: 1, TeamH: 1, TeamA: 2, Started: true, FinishedProvisional: true, Minutes: 90},
	})
	picks := []entry.Pick{{Element: 1, Position: 1, Multiplier: 2}}
	live := map[int]LiveStat{
		1: {Minutes: 90, TotalPoints: 7, BPS: 34},
		2: {Minutes: 90, TotalPoints: 5, BPS: 29},
		3: {Minutes: 90, TotalPoints: 2, BPS: 27},
	}
	teams := map[int]int{1: 1, 2: 1, 3: 2}

	got := LiveManagerPoints(picks, live, states, teams, nil, 0)

	// Captain on the BPS leader: (7 + 3 provisional) doubled.
	if got.Total != 20 {
		t.Fatalf("provisional bonus under captaincy: got=%d want=20", got.Total)
	}
}

func TestLiveManagerPoints_NoProvisionalBonusOnceFinished(t *testing.T) {
	t.Parallel()

	picks := []entry.Pick{{Element: 1, Position: 1, Multiplier: 1}}
	live := map[int]LiveStat{
		1: {Minutes: 90, TotalPoints: 10, BPS: 34, Bonus: 3},
		2: {Minutes: 90, TotalPoints: 5, BPS: 29},
	}
	teams := map[int]int{1: 1, 2: 1}

	got := LiveManagerPoints(picks, live, finishedStates, teams, nil, 0)

	// Live totals already carry the confirmed bonus.
	if got.Total != 10 {
		t.Fatalf("finished fixture must not re-add bonus: got=%d want=10", got.Total)
	}
}

func TestGameweekPositionPoints_SimpleLineup(t *testing.T) {
	t.Parallel()

	picks := []entry.Pick{
		{Element: 1, Position: 1, Multiplier: 1},
		{Element: 2, Position: 2, Multiplier: 1},
		{Element: 3, Position: 6, Multiplier: 1},
		{Element: 4, Position: 10, Multiplier: 2},
	}
	live := map[int]LiveStat{
		1: {TotalPoints: 3},
		2: {TotalPoints: 6},
		3: {TotalPoints: 8},
		4: {TotalPoints: 10},
	}
	positions := map[int]player.Position{
		1: player.PositionGoalkeeper,
		2: player.PositionDefender,
		3: player.PositionMidfielder,
		4: player.PositionForward,
	}

	got := GameweekPositionPoints(picks, live, positions, nil)

	want := PositionPoints{
		player.PositionGoalkeeper: 3,
		player.PositionDefender:   6,
		player.PositionMidfielder: 8,
		player.PositionForward:    20,
	}
	for pos, points := range want {
		if got[pos] != points {
			t.Fatalf("%s: got=%d want=%d", pos, got[pos], points)
		}
	}
}

func TestGameweekPositionPoints_OneAutoSub(t *testing.T) {
	t.Parallel()

	picks := []entry.Pick{
		{Element: 1, Position: 5, Multiplier: 1},
		{Element: 2, Position: 13, Multiplier: 0},
	}
	live := map[int]LiveStat{
		1: {Minutes: 0, TotalPoints: 0},
		2: {Minutes: 90, TotalPoints: 8},
	}
	positions := map[int]player.Position{
		1: player.PositionMidfielder,
		2: player.PositionMidfielder,
	}
	subs := []entry.AutomaticSub{{ElementOut: 1, ElementIn: 2}}

	got := GameweekPositionPoints(picks, live, positions, subs)

	if got[player.PositionMidfielder] != 8 {
		t.Fatalf("MID total: got=%d want=8", got[player.PositionMidfielder])
	}
}

func TestGameweekPositionPoints_MissingPlayerSkipped(t *testing.T) {
	t.Parallel()

	picks := []entry.Pick{{Element: 404, Position: 3, Multiplier: 1}}
	live := map[int]LiveStat{404: {TotalPoints: 12}}

	got := GameweekPositionPoints(picks, live, map[int]player.Position{}, nil)

	for pos, points := range got {
		if points != 0 {
			t.Fatalf("%s should stay zero for an uncatalogued pick, got %d", pos, points)
		}
	}
}

func TestAggregatePositionPoints_EmptyInput(t *testing.T) {
	t.Parallel()

	got := AggregatePositionPoints(nil)

	if len(got) != 4 {
		t.Fatalf("expected all four positions, got %v", got)
	}
	for pos, points := range got {
		if points != 0 {
			t.Fatalf("%s: got=%d want=0", pos, points)
		}
	}
}

func TestAggregatePositionPoints_Sums(t *testing.T) {
	t.Parallel()

	got := AggregatePositionPoints([]PositionPoints{
		{player.PositionDefender: 6, player.PositionForward: 9},
		{player.PositionDefender: 4, player.PositionMidfielder: 11},
	})

	if got[player.PositionDefender] != 10 {
		t.Fatalf("DEF: got=%d want=10", got[player.PositionDefender])
	}
	if got[player.PositionMidfielder] != 11 {
		t.Fatalf("MID: got=%d want=11", got[player.PositionMidfielder])
	}
	if got[player.PositionForward] != 9 {
		t.Fatalf("FWD: got=%d want=9", got[player.PositionForward])
	}
	if got[player.PositionGoalkeeper] != 0 {
		t.Fatalf("GK: got=%d want=0", got[player.PositionGoalkeeper])
	}
}

func TestPositionBreakdown_ZeroSum(t *testing.T) {
	t.Parallel()

	shares := PositionBreakdown(ZeroPositionPoints())

	if len(shares) != 4 {
		t.Fatalf("expected four rows, got %d", len(shares))
	}
	for _, share := range shares {
		if share.Percentage != 0 {
			t.Fatalf("%s: got=%d want=0", share.Position, share.Percentage)
		}
	}
}

func TestPositionBreakdown_RoundHalfUp(t *testing.T) {
	t.Parallel()

	shares := PositionBreakdown(PositionPoints{
		player.PositionGoalkeeper: 1,
		player.PositionDefender:   1,
		player.PositionMidfielder: 1,
		player.PositionForward:    1,
	})

	// 1/4 of the total rounds to 25 for every row.
	for _, share := range shares {
		if share.Percentage != 25 {
			t.Fatalf("%s: got=%d want=25", share.Position, share.Percentage)
		}
	}

	shares = PositionBreakdown(PositionPoints{
		player.PositionGoalkeeper: 1,
		player.PositionDefender:   1,
		player.PositionMidfielder: 1,
	})

	// 1/3 rounds to 33; the rows need not sum to 100.
	if shares[0].Percentage != 33 {
		t.Fatalf("GK share: got=%d want=33", shares[0].Percentage)
	}
}
