package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/fplhq/companion/internal/domain/entry"
	"github.com/fplhq/companion/internal/domain/fixture"
	"github.com/fplhq/companion/internal/domain/gameweek"
	"github.com/fplhq/companion/internal/domain/scoring"
	"github.com/fplhq/companion/internal/platform/cache"
	"github.com/fplhq/companion/internal/platform/logging"
)

// CacheTTLs are the per-family cache lifetimes. Bootstrap data moves over
// hours, fixtures over tens of minutes, live stats over a minute or two.
// Snapshots of finished gameweeks are immutable and take the Historical TTL.
type CacheTTLs struct {
	Bootstrap  time.Duration
	Fixtures   time.Duration
	Live       time.Duration
	Historical time.Duration
	Default    time.Duration
}

func DefaultCacheTTLs() CacheTTLs {
	return CacheTTLs{
		Bootstrap:  4 * time.Hour,
		Fixtures:   20 * time.Minute,
		Live:       90 * time.Second,
		Historical: time.Hour,
		Default:    5 * time.Minute,
	}
}

// SnapshotService fronts the FPL gateway with the shared TTL cache. All
// other services read snapshots through it.
type SnapshotService struct {
	gateway FPLGateway
	store   *cache.Store
	ttls    CacheTTLs
	logger  *logging.Logger
}

func NewSnapshotService(gateway FPLGateway, store *cache.Store, ttls CacheTTLs, logger *logging.Logger) (*SnapshotService, error) {
	if gateway == nil {
		return nil, fmt.Errorf("fpl gateway is required")
	}
	if store == nil {
		return nil, fmt.Errorf("cache store is required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	if ttls == (CacheTTLs{}) {
		ttls = DefaultCacheTTLs()
	}

	return &SnapshotService{
		gateway: gateway,
		store:   store,
		ttls:    ttls,
		logger:  logger,
	}, nil
}

func (s *SnapshotService) Bootstrap(ctx context.Context) (Bootstrap, error) {
	ctx, span := startUsecaseSpan(ctx, "SnapshotService.Bootstrap")
	defer span.End()

	value, err := s.store.GetOrLoadTTL(ctx, "bootstrap", s.ttls.Bootstrap, func(ctx context.Context) (any, error) {
		return s.gateway.FetchBootstrap(ctx)
	})
	if err != nil {
		return Bootstrap{}, err
	}
	snapshot, ok := value.(Bootstrap)
	if !ok {
		return Bootstrap{}, fmt.Errorf("unexpected cached bootstrap type %T", value)
	}
	return snapshot, nil
}

func (s *SnapshotService) Fixtures(ctx context.Context, event int) ([]fixture.Fixture, error) {
	ctx, span := startUsecaseSpan(ctx, "SnapshotService.Fixtures")
	defer span.End()

	key := fmt.Sprintf("fixtures:%d", event)
	ttl := s.ttls.Fixtures
	if s.eventFinished(ctx, event) {
		ttl = s.ttls.Historical
	}

	value, err := s.store.GetOrLoadTTL(ctx, key, ttl, func(ctx context.Context) (any, error) {
		return s.gateway.FetchFixtures(ctx, event)
	})
	if err != nil {
		return nil, err
	}
	fixtures, ok := value.([]fixture.Fixture)
	if !ok {
		return nil, fmt.Errorf("unexpected cached fixtures type %T", value)
	}
	return fixtures, nil
}

func (s *SnapshotService) Live(ctx context.Context, event int) (map[int]scoring.LiveStat, error) {
	ctx, span := startUsecaseSpan(ctx, "SnapshotService.Live")
	defer span.End()

	key := fmt.Sprintf("live:%d", event)
	ttl := s.ttls.Live
	if s.eventFinished(ctx, event) {
		ttl = s.ttls.Historical
	}

	value, err := s.store.GetOrLoadTTL(ctx, key, ttl, func(ctx context.Context) (any, error) {
		return s.gateway.FetchEventLive(ctx, event)
	})
	if err != nil {
		return nil, err
	}
	live, ok := value.(map[int]scoring.LiveStat)
	if !ok {
		return nil, fmt.Errorf("unexpected cached live type %T", value)
	}
	return live, nil
}

func (s *SnapshotService) Picks(ctx context.Context, entryID, event int) (entry.PicksSnapshot, error) {
	ctx, span := startUsecaseSpan(ctx, "SnapshotService.Picks")
	defer span.End()

	key := fmt.Sprintf("picks:%d:%d", entryID, event)
	value, err := s.store.GetOrLoadTTL(ctx, key, s.ttls.Historical, func(ctx context.Context) (any, error) {
		return s.gateway.FetchEntryPicks(ctx, entryID, event)
	})
	if err != nil {
		return entry.PicksSnapshot{}, err
	}
	snapshot, ok := value.(entry.PicksSnapshot)
	if !ok {
		return entry.PicksSnapshot{}, fmt.Errorf("unexpected cached picks type %T", value)
	}
	return snapshot, nil
}

func (s *SnapshotService) History(ctx context.Context, entryID int) (entry.History, error) {
	ctx, span := startUsecaseSpan(ctx, "SnapshotService.History")
	defer span.End()

	key := fmt.Sprintf("history:%d", entryID)
	value, err := s.store.GetOrLoadTTL(ctx, key, s.ttls.Default, func(ctx context.Context) (any, error) {
		return s.gateway.FetchEntryHistory(ctx, entryID)
	})
	if err != nil {
		return entry.History{}, err
	}
	history, ok := value.(entry.History)
	if !ok {
		return entry.History{}, fmt.Errorf("unexpected cached history type %T", value)
	}
	return history, nil
}

// CurrentGameweek resolves the active gameweek from the bootstrap snapshot.
func (s *SnapshotService) CurrentGameweek(ctx context.Context) (gameweek.Gameweek, error) {
	snapshot, err := s.Bootstrap(ctx)
	if err != nil {
		return gameweek.Gameweek{}, err
	}
	current, ok := gameweek.Current(snapshot.Gameweeks)
	if !ok {
		return gameweek.Gameweek{}, fmt.Errorf("%w: no current gameweek", ErrNotFound)
	}
	return current, nil
}

// InvalidateLive drops the volatile live and fixture entries for one
// gameweek so the next read refetches.
func (s *SnapshotService) InvalidateLive(ctx context.Context, event int) {
	s.store.Delete(ctx, fmt.Sprintf("live:%d", event))
	s.store.Delete(ctx, fmt.Sprintf("fixtures:%d", event))
}

// eventFinished consults an already cached bootstrap only; deciding a TTL is
// not worth an upstream call.
func (s *SnapshotService) eventFinished(ctx context.Context, event int) bool {
	value, ok := s.store.Get(ctx, "bootstrap")
	if !ok {
		return false
	}
	snapshot, ok := value.(Bootstrap)
	if !ok {
		return false
	}
	for _, gw := range snapshot.Gameweeks {
		if gw.ID == event {
			return gw.Finished
		}
	}
	return false
}
