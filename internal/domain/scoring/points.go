package scoring

import (
	"math"

	"github.com/fplhq/companion/internal/domain/entry"
	"github.com/fplhq/companion/internal/domain/player"
)

// LiveStat is one element's line from the live gameweek payload.
type LiveStat struct {
	Minutes     int
	TotalPoints int
	BPS         int
	Bonus       int
}

// PlayerLive is one pick's contribution to a live total. Started
// distinguishes a genuine zero from a fixture that has not kicked off;
// callers render the latter as not yet played.
type PlayerLive struct {
	Element  int
	Points   int
	Started  bool
	Finished bool
}

// ManagerLive is a manager's reconstructed score for one gameweek.
type ManagerLive struct {
	Total   int
	Players []PlayerLive
}

// ProvisionalBonusByElement computes the provisional bonus for every
// bonus-eligible fixture that has not fully finished, grouped per fixture
// across all elements in the live payload. Finished fixtures are skipped
// since their live totals already carry the confirmed bonus.
func ProvisionalBonusByElement(live map[int]LiveStat, states FixtureStates, teamOf map[int]int) map[int]int {
	bpsByFixture := make(map[int]map[int]int)
	for element, stat := range live {
		if stat.Minutes == 0 {
			continue
		}
		teamID, ok := teamOf[element]
		if !ok {
			continue
		}
		f, ok := states.Fixture(teamID)
		if !ok || f.Finished || !states.BonusEligible(teamID) {
			continue
		}
		group := bpsByFixture[f.ID]
		if group == nil {
			group = make(map[int]int)
			bpsByFixture[f.ID] = group
		}
		group[element] = stat.BPS
	}

	out := make(map[int]int)
	for _, group := range bpsByFixture {
		for element, bonus := range ProvisionalBonus(group) {
			out[element] = bonus
		}
	}
	return out
}

// LiveManagerPoints reconstructs a manager's live score: effective
// multiplier times live points over the final team, plus provisional bonus
// where the fixture qualifies, minus the gameweek's transfer cost. Picks
// missing from the live or team lookups contribute zero.
func LiveManagerPoints(
	picks []entry.Pick,
	live map[int]LiveStat,
	states FixtureStates,
	teamOf map[int]int,
	subs []entry.AutomaticSub,
	transferCost int,
) ManagerLive {
	out, in := SubSets(subs)
	provisional := ProvisionalBonusByElement(live, states, teamOf)

	result := ManagerLive{Players: make([]PlayerLive, 0, len(picks))}
	for _, pick := range picks {
		teamID, knownTeam := teamOf[pick.Element]
		row := PlayerLive{Element: pick.Element}
		if knownTeam {
			row.Started = states.HasFixtureStarted(teamID)
			row.Finished = states.IsFixtureFinished(teamID)
		}

		if WasInFinalTeam(pick, out, in) {
			stat := live[pick.Element]
			points := stat.TotalPoints + provisional[pick.Element]
			row.Points = EffectiveMultiplier(pick, in) * points
			result.Total += row.Points
		}

		result.Players = append(result.Players, row)
	}

	result.Total -= transferCost
	return result
}

// PositionPoints holds point totals per element type.
type PositionPoints map[player.Position]int

// ZeroPositionPoints returns a total with all four positions present at zero.
func ZeroPositionPoints() PositionPoints {
	totals := make(PositionPoints, len(player.AllPositions))
	for _, pos := range player.AllPositions {
		totals[pos] = 0
	}
	return totals
}

// GameweekPositionPoints sums effective points per position for one
// gameweek, under the same final-team and multiplier rules as the live
// calculator. Picks absent from the position catalogue are skipped.
func GameweekPositionPoints(
	picks []entry.Pick,
	live map[int]LiveStat,
	positionOf map[int]player.Position,
	subs []entry.AutomaticSub,
) PositionPoints {
	out, in := SubSets(subs)
	totals := ZeroPositionPoints()

	for _, pick := range picks {
		pos, ok := positionOf[pick.Element]
		if !ok {
			continue
		}
		if !WasInFinalTeam(pick, out, in) {
			continue
		}
		stat := live[pick.Element]
		totals[pos] += EffectiveMultiplier(pick, in) * stat.TotalPoints
	}

	return totals
}

// AggregatePositionPoints sums per-gameweek totals. Empty input yields all
// four positions at zero.
func AggregatePositionPoints(perGameweek []PositionPoints) PositionPoints {
	totals := ZeroPositionPoints()
	for _, gw := range perGameweek {
		for pos, points := range gw {
			totals[pos] += points
		}
	}
	return totals
}

// PositionShare is one row of a percentage breakdown.
type PositionShare struct {
	Position   player.Position
	Points     int
	Percentage int
}

// PositionBreakdown renders totals as percentage shares, round half up. A
// zero sum yields zero percentages. Independent rounding means the shares
// need not sum to exactly 100.
func PositionBreakdown(totals PositionPoints) []PositionShare {
	sum := 0
	for _, points := range totals {
		sum += points
	}

	shares := make([]PositionShare, 0, len(player.AllPositions))
	for _, pos := range player.AllPositions {
		share := PositionShare{Position: pos, Points: totals[pos]}
		if sum != 0 {
			share.Percentage = int(math.Floor(float64(totals[pos])/float64(sum)*100 + 0.5))
		}
		shares = append(shares, share)
	}
	return shares
}
