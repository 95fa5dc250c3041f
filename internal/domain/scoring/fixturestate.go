package scoring

import "github.com/fplhq/companion/internal/domain/fixture"

// FixtureStates is a team id to fixture lookup for one gameweek, built fresh
// from a fixture snapshot. Teams without a fixture (blank gameweek) resolve
// to not started.
type FixtureStates struct {
	byTeam map[int]fixture.Fixture
}

func NewFixtureStates(fixtures []fixture.Fixture) FixtureStates {
	byTeam := make(map[int]fixture.Fixture, len(fixtures)*2)
	for _, f := range fixtures {
		byTeam[f.TeamH] = f
		byTeam[f.TeamA] = f
	}
	return FixtureStates{byTeam: byTeam}
}

func (s FixtureStates) Fixture(teamID int) (fixture.Fixture, bool) {
	f, ok := s.byTeam[teamID]
	return f, ok
}

func (s FixtureStates) HasFixtureStarted(teamID int) bool {
	f, ok := s.byTeam[teamID]
	if !ok {
		return false
	}
	return f.Started || f.Finished
}

// IsFixtureFinished reports full completion with bonus confirmed. The
// provisional flag flips at the final whistle and must not be used for
// completeness checks.
func (s FixtureStates) IsFixtureFinished(teamID int) bool {
	f, ok := s.byTeam[teamID]
	if !ok {
		return false
	}
	return f.Finished
}

// BonusEligible reports whether provisional bonus may be computed for the
// team's fixture: at or past the hour mark, or already over.
func (s FixtureStates) BonusEligible(teamID int) bool {
	f, ok := s.byTeam[teamID]
	if !ok {
		return false
	}
	return f.Minutes >= 60 || f.Finished || f.FinishedProvisional
}

type Opponent struct {
	TeamID int
	IsHome bool
}

// OpponentInfo resolves who teamID faces this gameweek. Name lookup stays
// with the caller and its team catalogue.
func (s FixtureStates) OpponentInfo(teamID int) (Opponent, bool) {
	f, ok := s.byTeam[teamID]
	if !ok {
		return Opponent{}, false
	}
	if f.TeamH == teamID {
		return Opponent{TeamID: f.TeamA, IsHome: true}, true
	}
	return Opponent{TeamID: f.TeamH, IsHome: false}, true
}
