package fixture

import "time"

// Fixture is one scheduled match. Progress is three-state: not started,
// provisionally finished (match over, bonus pending), and finished with
// bonus confirmed. FinishedProvisional flips roughly an hour before Finished.
type Fixture struct {
	ID                  int
	Event               int
	TeamH               int
	TeamA               int
	Started             bool
	Finished            bool
	FinishedProvisional bool
	Minutes             int
	KickoffTime         time.Time
	TeamHDifficulty     int
	TeamADifficulty     int
	TeamHScore          *int
	TeamAScore          *int
}

// ForEvent filters a fixture list down to one gameweek.
func ForEvent(fixtures []Fixture, event int) []Fixture {
	out := make([]Fixture, 0, len(fixtures))
	for _, f := range fixtures {
		if f.Event == event {
			out = append(out, f)
		}
	}
	return out
}

// Involves reports whether teamID plays in this fixture.
func (f Fixture) Involves(teamID int) bool {
	return f.TeamH == teamID || f.TeamA == teamID
}
