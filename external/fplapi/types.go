package fplapi

// Wire shapes for the public FPL API. Field names follow the upstream
// snake_case payloads; mapping to domain types happens in mapping.go.

type bootstrapEnvelope struct {
	Events   []eventItem   `json:"events"`
	Teams    []teamItem    `json:"teams"`
	Elements []elementItem `json:"elements"`
}

type eventItem struct {
	ID                int    `json:"id"`
	Name              string `json:"name"`
	DeadlineTime      string `json:"deadline_time"`
	Finished          bool   `json:"finished"`
	IsCurrent         bool   `json:"is_current"`
	IsNext            bool   `json:"is_next"`
	AverageEntryScore int    `json:"average_entry_score"`
}

type teamItem struct {
	ID                  int    `json:"id"`
	Name                string `json:"name"`
	ShortName           string `json:"short_name"`
	StrengthOverallHome int    `json:"strength_overall_home"`
	StrengthOverallAway int    `json:"strength_overall_away"`
	StrengthAttackHome  int    `json:"strength_attack_home"`
	StrengthAttackAway  int    `json:"strength_attack_away"`
	StrengthDefenceHome int    `json:"strength_defence_home"`
	StrengthDefenceAway int    `json:"strength_defence_away"`
}

type elementItem struct {
	ID                       int    `json:"id"`
	FirstName                string `json:"first_name"`
	SecondName               string `json:"second_name"`
	WebName                  string `json:"web_name"`
	ElementType              int    `json:"element_type"`
	Team                     int    `json:"team"`
	Status                   string `json:"status"`
	NowCost                  int    `json:"now_cost"`
	SelectedByPercent        string `json:"selected_by_percent"`
	Form                     string `json:"form"`
	PointsPerGame            string `json:"points_per_game"`
	TotalPoints              int    `json:"total_points"`
	GoalsScored              int    `json:"goals_scored"`
	Assists                  int    `json:"assists"`
	CleanSheets              int    `json:"clean_sheets"`
	Minutes                  int    `json:"minutes"`
	ExpectedGoals            string `json:"expected_goals"`
	ExpectedAssists          string `json:"expected_assists"`
	ExpectedGoalInvolvements string `json:"expected_goal_involvements"`
	ExpectedGoalsConceded    string `json:"expected_goals_conceded"`
}

type fixtureItem struct {
	ID                  int    `json:"id"`
	Event               int    `json:"event"`
	TeamH               int    `json:"team_h"`
	TeamA               int    `json:"team_a"`
	Started             bool   `json:"started"`
	Finished            bool   `json:"finished"`
	FinishedProvisional bool   `json:"finished_provisional"`
	Minutes             int    `json:"minutes"`
	KickoffTime         string `json:"kickoff_time"`
	TeamHDifficulty     int    `json:"team_h_difficulty"`
	TeamADifficulty     int    `json:"team_a_difficulty"`
	TeamHScore          *int   `json:"team_h_score"`
	TeamAScore          *int   `json:"team_a_score"`
}

type liveEnvelope struct {
	Elements []liveElementItem `json:"elements"`
}

type liveElementItem struct {
	ID    int           `json:"id"`
	Stats liveStatsItem `json:"stats"`
}

type liveStatsItem struct {
	Minutes     int `json:"minutes"`
	TotalPoints int `json:"total_points"`
	BPS         int `json:"bps"`
	Bonus       int `json:"bonus"`
}

type picksEnvelope struct {
	EntryHistory picksHistoryItem `json:"entry_history"`
	Picks        []pickItem       `json:"picks"`
	AutomaticSubs []automaticSubItem `json:"automatic_subs"`
}

type picksHistoryItem struct {
	Event               int `json:"event"`
	Points              int `json:"points"`
	TotalPoints         int `json:"total_points"`
	EventTransfersCost  int `json:"event_transfers_cost"`
	PointsOnBench       int `json:"points_on_bench"`
}

type pickItem struct {
	Element       int  `json:"element"`
	Position      int  `json:"position"`
	Multiplier    int  `json:"multiplier"`
	IsCaptain     bool `json:"is_captain"`
	IsViceCaptain bool `json:"is_vice_captain"`
}

type automaticSubItem struct {
	Entry      int `json:"entry"`
	Event      int `json:"event"`
	ElementIn  int `json:"element_in"`
	ElementOut int `json:"element_out"`
}

type historyEnvelope struct {
	Current []historyRowItem `json:"current"`
}

type historyRowItem struct {
	Event              int `json:"event"`
	Points             int `json:"points"`
	TotalPoints        int `json:"total_points"`
	Rank               int `json:"rank"`
	OverallRank        int `json:"overall_rank"`
	Bank               int `json:"bank"`
	Value              int `json:"value"`
	EventTransfers     int `json:"event_transfers"`
	EventTransfersCost int `json:"event_transfers_cost"`
	PointsOnBench      int `json:"points_on_bench"`
}
