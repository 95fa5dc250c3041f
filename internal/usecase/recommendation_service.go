package usecase

import (
	"context"
	"fmt"
	"sort"

	"github.com/fplhq/companion/internal/domain/fixture"
	"github.com/fplhq/companion/internal/domain/player"
	"github.com/fplhq/companion/internal/domain/scoring"
	"github.com/fplhq/companion/internal/platform/logging"
)

const defaultRecommendationLimit = 10

// Recommendation is one suggested transfer target.
type Recommendation struct {
	Element           int
	Name              string
	TeamShort         string
	Position          player.Position
	NowCost           int
	Form              float64
	InvolvementPer90  float64
	PercentileRank    float64
	FixtureDifficulty int
	Score             float64
}

// RecommendationService ranks available players within a position by
// per-90 expected involvement, percentile standing, and the difficulty of
// the upcoming fixture.
type RecommendationService struct {
	snapshots *SnapshotService
	logger    *logging.Logger
}

func NewRecommendationService(snapshots *SnapshotService, logger *logging.Logger) (*RecommendationService, error) {
	if snapshots == nil {
		return nil, fmt.Errorf("snapshot service is required")
	}
	if logger == nil {
		logger = logging.Default()
	}

	return &RecommendationService{snapshots: snapshots, logger: logger}, nil
}

func (s *RecommendationService) TopPicks(ctx context.Context, position player.Position, limit int) ([]Recommendation, error) {
	ctx, span := startUsecaseSpan(ctx, "RecommendationService.TopPicks")
	defer span.End()

	if !position.Valid() {
		return nil, fmt.Errorf("%w: unknown position %d", ErrInvalidInput, int(position))
	}
	if limit <= 0 {
		limit = defaultRecommendationLimit
	}

	bootstrap, err := s.snapshots.Bootstrap(ctx)
	if err != nil {
		return nil, fmt.Errorf("load bootstrap: %w", err)
	}

	current, err := s.snapshots.CurrentGameweek(ctx)
	if err != nil {
		return nil, err
	}

	// Difficulty comes from the next gameweek's fixtures; if they cannot be
	// loaded the ranking proceeds without the tilt.
	var states scoring.FixtureStates
	if fixtures, err := s.snapshots.Fixtures(ctx, current.ID+1); err == nil {
		states = scoring.NewFixtureStates(fixture.ForEvent(fixtures, current.ID+1))
	} else {
		s.logger.WarnContext(ctx, "recommendations proceed without fixture difficulty", "error", err)
		states = scoring.NewFixtureStates(nil)
	}

	pool := make([]player.Player, 0, len(bootstrap.Players))
	involvement := make([]float64, 0, len(bootstrap.Players))
	for _, p := range bootstrap.Players {
		if p.Position != position || p.Availability() != player.Available {
			continue
		}
		pool = append(pool, p)
		involvement = append(involvement, scoring.Per90(p.ExpectedGoalInvolvements, p.Minutes))
	}

	teamShort := make(map[int]string, len(bootstrap.Teams))
	difficultyOf := make(map[int]int, len(bootstrap.Teams))
	for _, t := range bootstrap.Teams {
		teamShort[t.ID] = t.ShortName
		if f, ok := states.Fixture(t.ID); ok {
			if f.TeamH == t.ID {
				difficultyOf[t.ID] = f.TeamHDifficulty
			} else {
				difficultyOf[t.ID] = f.TeamADifficulty
			}
		}
	}

	out := make([]Recommendation, 0, len(pool))
	for i, p := range pool {
		per90 := involvement[i]
		rank := scoring.Percentile(per90, involvement)
		difficulty := difficultyOf[p.TeamID]

		// Difficulty runs 1 (easiest) to 5; the tilt trims up to 20% off a
		// hard fixture and is neutral when no fixture is known.
		tilt := 1.0
		if difficulty > 0 {
			tilt = 1 - float64(difficulty-1)*0.05
		}

		out = append(out, Recommendation{
			Element:           p.ID,
			Name:              p.DisplayName(),
			TeamShort:         teamShort[p.TeamID],
			Position:          p.Position,
			NowCost:           p.NowCost,
			Form:              p.Form,
			InvolvementPer90:  per90,
			PercentileRank:    rank,
			FixtureDifficulty: difficulty,
			Score:             (rank*0.6 + percentOf(p.Form, 10)*0.4) * tilt,
		})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].Element < out[j].Element
	})

	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func percentOf(value, scale float64) float64 {
	if scale <= 0 {
		return 0
	}
	v := value / scale
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
