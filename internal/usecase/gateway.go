package usecase

import (
	"context"

	"github.com/fplhq/companion/internal/domain/entry"
	"github.com/fplhq/companion/internal/domain/fixture"
	"github.com/fplhq/companion/internal/domain/gameweek"
	"github.com/fplhq/companion/internal/domain/player"
	"github.com/fplhq/companion/internal/domain/scoring"
	"github.com/fplhq/companion/internal/domain/team"
)

// Bootstrap is the mapped bootstrap-static catalogue.
type Bootstrap struct {
	Players   []player.Player
	Teams     []team.Team
	Gameweeks []gameweek.Gameweek
}

// PositionOf builds the element to position lookup the scoring engine takes.
func (b Bootstrap) PositionOf() map[int]player.Position {
	out := make(map[int]player.Position, len(b.Players))
	for _, p := range b.Players {
		out[p.ID] = p.Position
	}
	return out
}

// TeamOf builds the element to team lookup.
func (b Bootstrap) TeamOf() map[int]int {
	out := make(map[int]int, len(b.Players))
	for _, p := range b.Players {
		out[p.ID] = p.TeamID
	}
	return out
}

// PlayerByID builds the element to player lookup.
func (b Bootstrap) PlayerByID() map[int]player.Player {
	out := make(map[int]player.Player, len(b.Players))
	for _, p := range b.Players {
		out[p.ID] = p
	}
	return out
}

// FPLGateway is the read-only surface of the upstream fantasy API.
type FPLGateway interface {
	FetchBootstrap(ctx context.Context) (Bootstrap, error)
	FetchFixtures(ctx context.Context, event int) ([]fixture.Fixture, error)
	FetchEventLive(ctx context.Context, event int) (map[int]scoring.LiveStat, error)
	FetchEntryPicks(ctx context.Context, entryID, event int) (entry.PicksSnapshot, error)
	FetchEntryHistory(ctx context.Context, entryID int) (entry.History, error)
}

// OwnershipRow is one element's cross-manager aggregate for a gameweek.
type OwnershipRow struct {
	Element            int
	EffectiveOwnership float64
	CaptaincyPercent   float64
}

// StatsGateway is the companion statistics backend.
type StatsGateway interface {
	FetchOwnership(ctx context.Context, event int) ([]OwnershipRow, error)
}
