package usecase

import (
	"context"
	"fmt"

	"github.com/cnfl/fantasy-cricket/internal/domain/roster"
	"github.com/cnfl/fantasy-cricket/internal/platform/cache"
	"github.com/cnfl/fantasy-cricket/internal/store"
)

// ScoringService derives team totals and leaderboards from the live
// snapshot. Leaderboards are memoized per store version: any dispatch moves
// the version forward and naturally invalidates every cached board.
type ScoringService struct {
	store *store.Store
	cache *cache.Store
}

func NewScoringService(st *store.Store, c *cache.Store) *ScoringService {
	if c == nil {
		c = cache.NewStore(0)
	}

	return &ScoringService{store: st, cache: c}
}

// TeamTotal computes one roster's current score.
func (s *ScoringService) TeamTotal(ctx context.Context, rosterID string) (int, error) {
	_, span := startUsecaseSpan(ctx, "ScoringService.TeamTotal")
	defer span.End()

	snapshot := s.store.Snapshot()
	t, ok := snapshot.ParticipantTeamByID(rosterID)
	if !ok {
		return 0, fmt.Errorf("%w: roster=%s", ErrNotFound, rosterID)
	}

	return roster.TeamTotal(t, snapshot.PoolByEvent(t.EventID)), nil
}

// Leaderboard ranks an event's rosters, serving a memoized board when the
// store has not changed since it was computed.
func (s *ScoringService) Leaderboard(ctx context.Context, eventID string) ([]roster.Entry, error) {
	ctx, span := startUsecaseSpan(ctx, "ScoringService.Leaderboard")
	defer span.End()

	snapshot, version := s.store.View()
	if _, ok := snapshot.EventByID(eventID); !ok {
		return nil, fmt.Errorf("%w: event=%s", ErrNotFound, eventID)
	}

	key := cache.VersionedKey("leaderboard", eventID, version)
	value, err := s.cache.GetOrCompute(ctx, key, func() (any, error) {
		teams := snapshot.ParticipantTeamsByEvent(eventID)
		pool := snapshot.PoolByEvent(eventID)
		return roster.Leaderboard(teams, pool), nil
	})
	if err != nil {
		return nil, err
	}

	return value.([]roster.Entry), nil
}
