package gameweek

import "time"

// Gameweek is one scoring event of the season.
type Gameweek struct {
	ID                int
	Name              string
	DeadlineTime      time.Time
	Finished          bool
	IsCurrent         bool
	IsNext            bool
	AverageEntryScore int
}

// Current returns the gameweek flagged as current, or false when the season
// has not started.
func Current(gameweeks []Gameweek) (Gameweek, bool) {
	for _, gw := range gameweeks {
		if gw.IsCurrent {
			return gw, true
		}
	}
	return Gameweek{}, false
}
