package usecase

import (
	"context"
	"fmt"

	"github.com/sourcegraph/conc"

	"github.com/fplhq/companion/internal/domain/entry"
	"github.com/fplhq/companion/internal/domain/fixture"
	"github.com/fplhq/companion/internal/domain/player"
	"github.com/fplhq/companion/internal/domain/scoring"
	"github.com/fplhq/companion/internal/platform/logging"
)

// EntryLivePlayer is one pick's line in a live score view.
type EntryLivePlayer struct {
	Element       int
	Name          string
	Position      player.Position
	Points        int
	Multiplier    int
	IsCaptain     bool
	InFinalTeam   bool
	Started       bool
	Finished      bool
	OpponentShort string
	IsHome        bool
}

// EntryLive is a manager's reconstructed live score for one gameweek.
type EntryLive struct {
	EntryID      int
	Event        int
	Total        int
	TransferCost int
	Players      []EntryLivePlayer
}

// LiveScoreService reconstructs manager scores from raw snapshots.
type LiveScoreService struct {
	snapshots *SnapshotService
	rules     scoring.Rules
	logger    *logging.Logger
}

func NewLiveScoreService(snapshots *SnapshotService, rules scoring.Rules, logger *logging.Logger) (*LiveScoreService, error) {
	if snapshots == nil {
		return nil, fmt.Errorf("snapshot service is required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	if rules == (scoring.Rules{}) {
		rules = scoring.DefaultRules()
	}

	return &LiveScoreService{
		snapshots: snapshots,
		rules:     rules,
		logger:    logger,
	}, nil
}

// GetEntryLive computes one manager's live score. The three snapshots load
// concurrently; each source fails on its own without aborting the siblings,
// and the first failure is reported after all have settled.
func (s *LiveScoreService) GetEntryLive(ctx context.Context, entryID, event int) (EntryLive, error) {
	ctx, span := startUsecaseSpan(ctx, "LiveScoreService.GetEntryLive")
	defer span.End()

	if entryID <= 0 {
		return EntryLive{}, fmt.Errorf("%w: entry id must be greater than zero", ErrInvalidInput)
	}
	if event <= 0 {
		return EntryLive{}, fmt.Errorf("%w: event must be greater than zero", ErrInvalidInput)
	}

	var (
		bootstrap             Bootstrap
		picks                 entry.PicksSnapshot
		live                  map[int]scoring.LiveStat
		fixtures              []fixture.Fixture
		bootstrapErr, picksErr error
		liveErr, fixturesErr   error
	)

	var wg conc.WaitGroup
	wg.Go(func() { bootstrap, bootstrapErr = s.snapshots.Bootstrap(ctx) })
	wg.Go(func() { picks, picksErr = s.snapshots.Picks(ctx, entryID, event) })
	wg.Go(func() { live, liveErr = s.snapshots.Live(ctx, event) })
	wg.Go(func() { fixtures, fixturesErr = s.snapshots.Fixtures(ctx, event) })
	wg.Wait()

	for _, err := range []error{bootstrapErr, picksErr, liveErr, fixturesErr} {
		if err != nil {
			return EntryLive{}, fmt.Errorf("load gameweek snapshots entry=%d event=%d: %w", entryID, event, err)
		}
	}

	states := scoring.NewFixtureStates(fixture.ForEvent(fixtures, event))
	teamOf := bootstrap.TeamOf()
	positionOf := bootstrap.PositionOf()
	players := bootstrap.PlayerByID()
	teams := make(map[int]string, len(bootstrap.Teams))
	for _, t := range bootstrap.Teams {
		teams[t.ID] = t.ShortName
	}

	subs := picks.AutomaticSubs
	if len(subs) == 0 {
		subs = scoring.ResolveAutomaticSubs(picks.Picks, minutesOf(live), states, positionOf, teamOf, s.rules)
	}

	managerLive := scoring.LiveManagerPoints(picks.Picks, live, states, teamOf, subs, picks.TransferCost)
	subsOut, in := scoring.SubSets(subs)

	result := EntryLive{
		EntryID:      entryID,
		Event:        event,
		Total:        managerLive.Total,
		TransferCost: picks.TransferCost,
		Players:      make([]EntryLivePlayer, 0, len(picks.Picks)),
	}

	for i, pick := range picks.Picks {
		row := EntryLivePlayer{
			Element:     pick.Element,
			Multiplier:  scoring.EffectiveMultiplier(pick, in),
			IsCaptain:   pick.IsCaptain,
			InFinalTeam: scoring.WasInFinalTeam(pick, subsOut, in),
		}
		if i < len(managerLive.Players) {
			row.Points = managerLive.Players[i].Points
			row.Started = managerLive.Players[i].Started
			row.Finished = managerLive.Players[i].Finished
		}
		if p, ok := players[pick.Element]; ok {
			row.Name = p.DisplayName()
			row.Position = p.Position
			if opponent, ok := states.OpponentInfo(p.TeamID); ok {
				row.OpponentShort = teams[opponent.TeamID]
				row.IsHome = opponent.IsHome
			}
		}
		result.Players = append(result.Players, row)
	}

	return result, nil
}

func minutesOf(live map[int]scoring.LiveStat) map[int]int {
	out := make(map[int]int, len(live))
	for element, stat := range live {
		out[element] = stat.Minutes
	}
	return out
}
