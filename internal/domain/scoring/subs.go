package scoring

import (
	"sort"

	"github.com/fplhq/companion/internal/domain/entry"
	"github.com/fplhq/companion/internal/domain/player"
)

// SubSets splits recorded automatic substitutions into outgoing and incoming
// element sets.
func SubSets(subs []entry.AutomaticSub) (out, in map[int]struct{}) {
	out = make(map[int]struct{}, len(subs))
	in = make(map[int]struct{}, len(subs))
	for _, s := range subs {
		out[s.ElementOut] = struct{}{}
		in[s.ElementIn] = struct{}{}
	}
	return out, in
}

// WasInFinalTeam reports whether a pick counts toward the final lineup after
// automatic substitutions. Starters stay unless subbed out; bench players
// count only when explicitly subbed in.
func WasInFinalTeam(pick entry.Pick, out, in map[int]struct{}) bool {
	if pick.Multiplier > 0 {
		_, subbedOut := out[pick.Element]
		return !subbedOut
	}
	_, subbedIn := in[pick.Element]
	return subbedIn
}

// EffectiveMultiplier is the multiplier a pick plays at. A subbed-in player
// always plays at 1; captaincy never transfers onto an automatic sub.
func EffectiveMultiplier(pick entry.Pick, in map[int]struct{}) int {
	if _, subbedIn := in[pick.Element]; subbedIn {
		return 1
	}
	return pick.Multiplier
}

// Rules are the formation-legality bounds for automatic substitutions. The
// upstream game may revise them between seasons, so they load from config
// rather than living as constants. A lineup always fields exactly one
// goalkeeper.
type Rules struct {
	MinDefenders   int
	MinMidfielders int
	MinForwards    int
	MaxDefenders   int
	MaxMidfielders int
	MaxForwards    int
}

func DefaultRules() Rules {
	return Rules{
		MinDefenders:   3,
		MinMidfielders: 2,
		MinForwards:    1,
		MaxDefenders:   5,
		MaxMidfielders: 5,
		MaxForwards:    3,
	}
}

func (r Rules) allows(counts map[player.Position]int) bool {
	if counts[player.PositionGoalkeeper] != 1 {
		return false
	}
	if counts[player.PositionDefender] < r.MinDefenders || counts[player.PositionDefender] > r.MaxDefenders {
		return false
	}
	if counts[player.PositionMidfielder] < r.MinMidfielders || counts[player.PositionMidfielder] > r.MaxMidfielders {
		return false
	}
	if counts[player.PositionForward] < r.MinForwards || counts[player.PositionForward] > r.MaxForwards {
		return false
	}
	return true
}

// ResolveAutomaticSubs recomputes the substitutions the upstream system
// applies at gameweek end, for when its recorded subs are not yet available.
//
// A starter is non-playing only when his fixture is finished and he recorded
// zero minutes; a zero points total alone does not count. Bench players are
// tried in ascending slot order, each used at most once. A goalkeeper can
// only be replaced by the bench goalkeeper, and an outfield swap must keep
// the formation inside the legal bounds.
func ResolveAutomaticSubs(
	picks []entry.Pick,
	minutesByElement map[int]int,
	states FixtureStates,
	positionOf map[int]player.Position,
	teamOf map[int]int,
	rules Rules,
) []entry.AutomaticSub {
	starters := make([]entry.Pick, 0, 11)
	bench := make([]entry.Pick, 0, 4)
	for _, p := range picks {
		if p.IsStarter() {
			starters = append(starters, p)
		} else {
			bench = append(bench, p)
		}
	}
	sort.Slice(starters, func(i, j int) bool { return starters[i].Position < starters[j].Position })
	sort.Slice(bench, func(i, j int) bool { return bench[i].Position < bench[j].Position })

	nonPlaying := func(element int) bool {
		teamID, ok := teamOf[element]
		if !ok {
			return false
		}
		if !states.IsFixtureFinished(teamID) {
			return false
		}
		return minutesByElement[element] == 0
	}

	counts := make(map[player.Position]int, 4)
	for _, p := range starters {
		if pos, ok := positionOf[p.Element]; ok {
			counts[pos]++
		}
	}

	var subs []entry.AutomaticSub
	used := make(map[int]struct{}, len(bench))

	for _, starter := range starters {
		if !nonPlaying(starter.Element) {
			continue
		}
		outPos, ok := positionOf[starter.Element]
		if !ok {
			continue
		}

		for _, candidate := range bench {
			if _, taken := used[candidate.Element]; taken {
				continue
			}
			inPos, ok := positionOf[candidate.Element]
			if !ok {
				continue
			}
			if nonPlaying(candidate.Element) {
				continue
			}
			if outPos == player.PositionGoalkeeper && inPos != player.PositionGoalkeeper {
				continue
			}
			if outPos != player.PositionGoalkeeper && inPos == player.PositionGoalkeeper {
				continue
			}

			counts[outPos]--
			counts[inPos]++
			if !rules.allows(counts) {
				counts[outPos]++
				counts[inPos]--
				continue
			}

			used[candidate.Element] = struct{}{}
			subs = append(subs, entry.AutomaticSub{
				ElementOut: starter.Element,
				ElementIn:  candidate.Element,
			})
			break
		}
	}

	return subs
}
