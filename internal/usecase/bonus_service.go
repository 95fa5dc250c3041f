package usecase

import (
	"context"
	"fmt"
	"sort"

	"github.com/sourcegraph/conc"

	"github.com/fplhq/companion/internal/domain/fixture"
	"github.com/fplhq/companion/internal/domain/player"
	"github.com/fplhq/companion/internal/domain/scoring"
	"github.com/fplhq/companion/internal/platform/logging"
)

// FixtureBonus is the provisional bonus standing of one fixture.
type FixtureBonus struct {
	FixtureID   int
	HomeShort   string
	AwayShort   string
	Finished    bool
	Provisional bool
	Awards      []BonusAward
}

// BonusAward is one player's bonus line within a fixture.
type BonusAward struct {
	Element int
	Name    string
	BPS     int
	Bonus   int
}

// BonusService reports provisional bonus per fixture for a gameweek.
type BonusService struct {
	snapshots *SnapshotService
	logger    *logging.Logger
}

func NewBonusService(snapshots *SnapshotService, logger *logging.Logger) (*BonusService, error) {
	if snapshots == nil {
		return nil, fmt.Errorf("snapshot service is required")
	}
	if logger == nil {
		logger = logging.Default()
	}

	return &BonusService{snapshots: snapshots, logger: logger}, nil
}

// EventBonus computes the bonus standing of every bonus-eligible fixture in
// one gameweek. Fixtures before the hour mark are omitted; fully finished
// fixtures report the confirmed award instead of a recomputed one.
func (s *BonusService) EventBonus(ctx context.Context, event int) ([]FixtureBonus, error) {
	ctx, span := startUsecaseSpan(ctx, "BonusService.EventBonus")
	defer span.End()

	if event <= 0 {
		return nil, fmt.Errorf("%w: event must be greater than zero", ErrInvalidInput)
	}

	var (
		bootstrap              Bootstrap
		live                   map[int]scoring.LiveStat
		fixtures               []fixture.Fixture
		bootstrapErr, liveErr  error
		fixturesErr            error
	)

	var wg conc.WaitGroup
	wg.Go(func() { bootstrap, bootstrapErr = s.snapshots.Bootstrap(ctx) })
	wg.Go(func() { live, liveErr = s.snapshots.Live(ctx, event) })
	wg.Go(func() { fixtures, fixturesErr = s.snapshots.Fixtures(ctx, event) })
	wg.Wait()

	for _, err := range []error{bootstrapErr, liveErr, fixturesErr} {
		if err != nil {
			return nil, fmt.Errorf("load gameweek snapshots event=%d: %w", event, err)
		}
	}

	states := scoring.NewFixtureStates(fixture.ForEvent(fixtures, event))
	teamOf := bootstrap.TeamOf()
	players := bootstrap.PlayerByID()
	teamShort := make(map[int]string, len(bootstrap.Teams))
	for _, t := range bootstrap.Teams {
		teamShort[t.ID] = t.ShortName
	}

	elementsByFixture := make(map[int][]int)
	for element, stat := range live {
		if stat.Minutes == 0 {
			continue
		}
		teamID, ok := teamOf[element]
		if !ok {
			continue
		}
		f, ok := states.Fixture(teamID)
		if !ok {
			continue
		}
		elementsByFixture[f.ID] = append(elementsByFixture[f.ID], element)
	}

	out := make([]FixtureBonus, 0, len(fixtures))
	for _, f := range fixture.ForEvent(fixtures, event) {
		if !states.BonusEligible(f.TeamH) {
			continue
		}

		row := FixtureBonus{
			FixtureID:   f.ID,
			HomeShort:   teamShort[f.TeamH],
			AwayShort:   teamShort[f.TeamA],
			Finished:    f.Finished,
			Provisional: !f.Finished,
		}

		if f.Finished {
			for _, element := range elementsByFixture[f.ID] {
				if bonus := live[element].Bonus; bonus > 0 {
					row.Awards = append(row.Awards, s.award(players, element, live[element].BPS, bonus))
				}
			}
		} else {
			group := make(map[int]int, len(elementsByFixture[f.ID]))
			for _, element := range elementsByFixture[f.ID] {
				group[element] = live[element].BPS
			}
			for element, bonus := range scoring.ProvisionalBonus(group) {
				row.Awards = append(row.Awards, s.award(players, element, live[element].BPS, bonus))
			}
		}

		sort.Slice(row.Awards, func(i, j int) bool {
			if row.Awards[i].Bonus != row.Awards[j].Bonus {
				return row.Awards[i].Bonus > row.Awards[j].Bonus
			}
			if row.Awards[i].BPS != row.Awards[j].BPS {
				return row.Awards[i].BPS > row.Awards[j].BPS
			}
			return row.Awards[i].Element < row.Awards[j].Element
		})
		out = append(out, row)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].FixtureID < out[j].FixtureID })
	return out, nil
}

func (s *BonusService) award(players map[int]player.Player, element, bps, bonus int) BonusAward {
	award := BonusAward{Element: element, BPS: bps, Bonus: bonus}
	if p, ok := players[element]; ok {
		award.Name = p.DisplayName()
	}
	return award
}
