package team

// Team is one club from the bootstrap payload. Strength ratings feed the
// fixture-difficulty tilt in recommendations.
type Team struct {
	ID                  int
	Name                string
	ShortName           string
	StrengthOverallHome int
	StrengthOverallAway int
	StrengthAttackHome  int
	StrengthAttackAway  int
	StrengthDefenceHome int
	StrengthDefenceAway int
}

// ByID builds a lookup from a bootstrap team list.
func ByID(teams []Team) map[int]Team {
	out := make(map[int]Team, len(teams))
	for _, t := range teams {
		out[t.ID] = t
	}
	return out
}
