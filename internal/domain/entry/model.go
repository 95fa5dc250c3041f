package entry

// Pick is one of a manager's 15 selections for a gameweek. Position 1..11 is
// the starting XI in slot order, 12..15 the bench. Multiplier is 0 for bench,
// 1 normal, 2 captain, 3 triple captain.
type Pick struct {
	Element       int
	Position      int
	Multiplier    int
	IsCaptain     bool
	IsViceCaptain bool
}

func (p Pick) IsStarter() bool {
	return p.Position >= 1 && p.Position <= 11
}

func (p Pick) BenchSlot() int {
	if p.Position < 12 {
		return 0
	}
	return p.Position - 11
}

// AutomaticSub is one substitution recorded by the upstream system when a
// starter finished the gameweek without registering a statistic.
type AutomaticSub struct {
	Event      int
	ElementIn  int
	ElementOut int
}

// PicksSnapshot is the full picks payload for one entry and gameweek.
type PicksSnapshot struct {
	EntryID       int
	Event         int
	Picks         []Pick
	AutomaticSubs []AutomaticSub
	TransferCost  int
	TotalPoints   int
}

// HistoryRow is one gameweek line of an entry's season history.
type HistoryRow struct {
	Event        int
	Points       int
	TotalPoints  int
	Rank         int
	OverallRank  int
	Bank         int
	Value        int
	Transfers    int
	TransferCost int
	BenchPoints  int
}

// History is the season-to-date record for one entry.
type History struct {
	EntryID int
	Current []HistoryRow
}
