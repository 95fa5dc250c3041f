package fplapi

import (
	"time"

	"github.com/fplhq/companion/internal/domain/entry"
	"github.com/fplhq/companion/internal/domain/fixture"
	"github.com/fplhq/companion/internal/domain/gameweek"
	"github.com/fplhq/companion/internal/domain/player"
	"github.com/fplhq/companion/internal/domain/scoring"
	"github.com/fplhq/companion/internal/domain/team"
	"github.com/fplhq/companion/internal/usecase"
)

func mapBootstrap(src bootstrapEnvelope) usecase.Bootstrap {
	out := usecase.Bootstrap{
		Players:   make([]player.Player, 0, len(src.Elements)),
		Teams:     make([]team.Team, 0, len(src.Teams)),
		Gameweeks: make([]gameweek.Gameweek, 0, len(src.Events)),
	}

	for _, item := range src.Elements {
		out.Players = append(out.Players, player.Player{
			ID:                       item.ID,
			FirstName:                item.FirstName,
			SecondName:               item.SecondName,
			WebName:                  item.WebName,
			Position:                 player.Position(item.ElementType),
			TeamID:                   item.Team,
			Status:                   item.Status,
			NowCost:                  item.NowCost,
			SelectedByPercent:        scoring.ParseDecimal(item.SelectedByPercent),
			Form:                     scoring.ParseDecimal(item.Form),
			PointsPerGame:            scoring.ParseDecimal(item.PointsPerGame),
			TotalPoints:              item.TotalPoints,
			Goals:                    item.GoalsScored,
			Assists:                  item.Assists,
			CleanSheets:              item.CleanSheets,
			Minutes:                  item.Minutes,
			ExpectedGoals:            scoring.ParseDecimal(item.ExpectedGoals),
			ExpectedAssists:          scoring.ParseDecimal(item.ExpectedAssists),
			ExpectedGoalInvolvements: scoring.ParseDecimal(item.ExpectedGoalInvolvements),
			ExpectedGoalsConceded:    scoring.ParseDecimal(item.ExpectedGoalsConceded),
		})
	}

	for _, item := range src.Teams {
		out.Teams = append(out.Teams, team.Team{
			ID:                  item.ID,
			Name:                item.Name,
			ShortName:           item.ShortName,
			StrengthOverallHome: item.StrengthOverallHome,
			StrengthOverallAway: item.StrengthOverallAway,
			StrengthAttackHome:  item.StrengthAttackHome,
			StrengthAttackAway:  item.StrengthAttackAway,
			StrengthDefenceHome: item.StrengthDefenceHome,
			StrengthDefenceAway: item.StrengthDefenceAway,
		})
	}

	for _, item := range src.Events {
		out.Gameweeks = append(out.Gameweeks, gameweek.Gameweek{
			ID:                item.ID,
			Name:              item.Name,
			DeadlineTime:      parseAPITime(item.DeadlineTime),
			Finished:          item.Finished,
			IsCurrent:         item.IsCurrent,
			IsNext:            item.IsNext,
			AverageEntryScore: item.AverageEntryScore,
		})
	}

	return out
}

func mapFixtures(src []fixtureItem) []fixture.Fixture {
	out := make([]fixture.Fixture, 0, len(src))
	for _, item := range src {
		out = append(out, fixture.Fixture{
			ID:                  item.ID,
			Event:               item.Event,
			TeamH:               item.TeamH,
			TeamA:               item.TeamA,
			Started:             item.Started,
			Finished:            item.Finished,
			FinishedProvisional: item.FinishedProvisional,
			Minutes:             item.Minutes,
			KickoffTime:         parseAPITime(item.KickoffTime),
			TeamHDifficulty:     item.TeamHDifficulty,
			TeamADifficulty:     item.TeamADifficulty,
			TeamHScore:          item.TeamHScore,
			TeamAScore:          item.TeamAScore,
		})
	}
	return out
}

func mapLive(src liveEnvelope) map[int]scoring.LiveStat {
	out := make(map[int]scoring.LiveStat, len(src.Elements))
	for _, item := range src.Elements {
		out[item.ID] = scoring.LiveStat{
			Minutes:     item.Stats.Minutes,
			TotalPoints: item.Stats.TotalPoints,
			BPS:         item.Stats.BPS,
			Bonus:       item.Stats.Bonus,
		}
	}
	return out
}

func mapPicks(entryID, event int, src picksEnvelope) entry.PicksSnapshot {
	snapshot := entry.PicksSnapshot{
		EntryID:      entryID,
		Event:        event,
		Picks:        make([]entry.Pick, 0, len(src.Picks)),
		TransferCost: src.EntryHistory.EventTransfersCost,
		TotalPoints:  src.EntryHistory.Points,
	}
	for _, item := range src.Picks {
		snapshot.Picks = append(snapshot.Picks, entry.Pick{
			Element:       item.Element,
			Position:      item.Position,
			Multiplier:    item.Multiplier,
			IsCaptain:     item.IsCaptain,
			IsViceCaptain: item.IsViceCaptain,
		})
	}
	for _, item := range src.AutomaticSubs {
		snapshot.AutomaticSubs = append(snapshot.AutomaticSubs, entry.AutomaticSub{
			Event:      item.Event,
			ElementIn:  item.ElementIn,
			ElementOut: item.ElementOut,
		})
	}
	return snapshot
}

func mapHistory(entryID int, src historyEnvelope) entry.History {
	out := entry.History{
		EntryID: entryID,
		Current: make([]entry.HistoryRow, 0, len(src.Current)),
	}
	for _, item := range src.Current {
		out.Current = append(out.Current, entry.HistoryRow{
			Event:        item.Event,
			Points:       item.Points,
			TotalPoints:  item.TotalPoints,
			Rank:         item.Rank,
			OverallRank:  item.OverallRank,
			Bank:         item.Bank,
			Value:        item.Value,
			Transfers:    item.EventTransfers,
			TransferCost: item.EventTransfersCost,
			BenchPoints:  item.PointsOnBench,
		})
	}
	return out
}

func parseAPITime(raw string) time.Time {
	if raw == "" {
		return time.Time{}
	}
	parsed, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}
	}
	return parsed.UTC()
}
