package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/cnfl/fantasy-cricket/internal/domain/event"
	"github.com/cnfl/fantasy-cricket/internal/domain/history"
	"github.com/cnfl/fantasy-cricket/internal/domain/roster"
	idgen "github.com/cnfl/fantasy-cricket/internal/platform/id"
	"github.com/cnfl/fantasy-cricket/internal/platform/logging"
	"github.com/cnfl/fantasy-cricket/internal/store"
)

// UpsertSeasonInput is the incoming payload for the season history admin form.
type UpsertSeasonInput struct {
	SeasonNumber     string
	TournamentName   string
	Winner           string
	RunnersUp        string
	ParticipantCount string
}

// HistoryService manages the season honor roll and freezes finished-event
// leaderboards into the durable archive.
type HistoryService struct {
	store    *store.Store
	archive  history.ArchiveRepository
	pool     *ants.Pool
	idGen    idgen.Generator
	logger   *logging.Logger
	notifier Notifier
	now      func() time.Time
}

func NewHistoryService(
	st *store.Store,
	archive history.ArchiveRepository,
	pool *ants.Pool,
	idGen idgen.Generator,
	logger *logging.Logger,
	notifier Notifier,
) *HistoryService {
	if logger == nil {
		logger = logging.Default()
	}
	if notifier == nil {
		notifier = NopNotifier()
	}

	return &HistoryService{
		store:    st,
		archive:  archive,
		pool:     pool,
		idGen:    idGen,
		logger:   logger,
		notifier: notifier,
		now:      time.Now,
	}
}

func (s *HistoryService) AddSeason(ctx context.Context, input UpsertSeasonInput) (history.Season, error) {
	ctx, span := startUsecaseSpan(ctx, "HistoryService.AddSeason")
	defer span.End()

	seasonID, err := s.idGen.NewID()
	if err != nil {
		return history.Season{}, fmt.Errorf("generate season id: %w", err)
	}

	season, err := buildSeason(seasonID, input)
	if err != nil {
		return history.Season{}, err
	}

	s.store.Dispatch(store.AddHistory{Season: season})
	s.logger.InfoContext(ctx, "season added", "season_id", season.ID, "season", season.SeasonNumber)
	return season, nil
}

func (s *HistoryService) UpdateSeason(ctx context.Context, seasonID string, input UpsertSeasonInput) (history.Season, error) {
	ctx, span := startUsecaseSpan(ctx, "HistoryService.UpdateSeason")
	defer span.End()

	if !s.seasonExists(seasonID) {
		return history.Season{}, fmt.Errorf("%w: season=%s", ErrNotFound, seasonID)
	}

	season, err := buildSeason(seasonID, input)
	if err != nil {
		return history.Season{}, err
	}

	s.store.Dispatch(store.UpdateHistory{Season: season})
	return season, nil
}

func (s *HistoryService) DeleteSeason(ctx context.Context, seasonID string) error {
	ctx, span := startUsecaseSpan(ctx, "HistoryService.DeleteSeason")
	defer span.End()

	if !s.seasonExists(seasonID) {
		return fmt.Errorf("%w: season=%s", ErrNotFound, seasonID)
	}

	s.store.Dispatch(store.DeleteHistory{ID: seasonID})
	s.logger.InfoContext(ctx, "season deleted", "season_id", seasonID)
	return nil
}

// ListSeasons returns the honor roll in season order.
func (s *HistoryService) ListSeasons(ctx context.Context) ([]history.Season, error) {
	_, span := startUsecaseSpan(ctx, "HistoryService.ListSeasons")
	defer span.End()

	snapshot := s.store.Snapshot()
	out := make([]history.Season, len(snapshot.History))
	copy(out, snapshot.History)
	return out, nil
}

// ArchiveFinishedEvents freezes the leaderboard of every finished event
// that is not archived yet. Events are archived concurrently on the worker
// pool; one event failing does not stop the others.
func (s *HistoryService) ArchiveFinishedEvents(ctx context.Context) (int, error) {
	ctx, span := startUsecaseSpan(ctx, "HistoryService.ArchiveFinishedEvents")
	defer span.End()

	if s.archive == nil {
		return 0, fmt.Errorf("%w: no archive configured", ErrDependencyUnavailable)
	}

	now := s.now()
	snapshot := s.store.Snapshot()

	var (
		mu       sync.Mutex
		archived int
		wg       sync.WaitGroup
	)

	for _, e := range snapshot.Events {
		if e.StatusAt(now) != event.StatusFinished {
			continue
		}
		e := e

		wg.Add(1)
		task := func() {
			defer wg.Done()
			ok, err := s.archiveEvent(ctx, snapshot, e)
			if err != nil {
				s.logger.ErrorContext(ctx, "archive event failed", "event_id", e.ID, "error", err)
				return
			}
			if ok {
				mu.Lock()
				archived++
				mu.Unlock()
			}
		}

		if s.pool != nil {
			if err := s.pool.Submit(task); err == nil {
				continue
			}
		}
		task()
	}
	wg.Wait()

	if archived > 0 {
		s.notifier.Publish(ctx, "history.archived", map[string]int{"events": archived})
	}
	return archived, nil
}

// ArchivedLeaderboard reads a frozen board back from the archive.
func (s *HistoryService) ArchivedLeaderboard(ctx context.Context, eventID string) ([]history.ArchivedEntry, error) {
	ctx, span := startUsecaseSpan(ctx, "HistoryService.ArchivedLeaderboard")
	defer span.End()

	if s.archive == nil {
		return nil, fmt.Errorf("%w: no archive configured", ErrDependencyUnavailable)
	}

	entries, err := s.archive.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list archived leaderboard: %w", err)
	}
	return entries, nil
}

func (s *HistoryService) archiveEvent(ctx context.Context, snapshot store.Snapshot, e event.Event) (bool, error) {
	existing, err := s.archive.ListByEvent(ctx, e.ID)
	if err != nil {
		return false, fmt.Errorf("check existing archive: %w", err)
	}
	if len(existing) > 0 {
		return false, nil
	}

	board := roster.Leaderboard(snapshot.ParticipantTeamsByEvent(e.ID), snapshot.PoolByEvent(e.ID))
	if len(board) == 0 {
		return false, nil
	}

	archivedAt := s.now().UTC()
	entries := make([]history.ArchivedEntry, 0, len(board))
	for _, row := range board {
		entries = append(entries, history.ArchivedEntry{
			EventID:         e.ID,
			TeamID:          row.TeamID,
			TeamName:        row.TeamName,
			ParticipantID:   row.ParticipantID,
			ParticipantName: row.ParticipantName,
			Rank:            row.Rank,
			Points:          row.Points,
			ArchivedAt:      archivedAt,
		})
	}

	if err := s.archive.SaveLeaderboard(ctx, e.ID, entries); err != nil {
		return false, fmt.Errorf("save leaderboard: %w", err)
	}

	s.logger.InfoContext(ctx, "event leaderboard archived", "event_id", e.ID, "entries", len(entries))
	return true, nil
}

func (s *HistoryService) seasonExists(seasonID string) bool {
	for _, season := range s.store.Snapshot().History {
		if season.ID == seasonID {
			return true
		}
	}
	return false
}

func buildSeason(seasonID string, input UpsertSeasonInput) (history.Season, error) {
	season := history.Season{
		ID:               seasonID,
		SeasonNumber:     strings.TrimSpace(input.SeasonNumber),
		TournamentName:   strings.TrimSpace(input.TournamentName),
		Winner:           strings.TrimSpace(input.Winner),
		RunnersUp:        strings.TrimSpace(input.RunnersUp),
		ParticipantCount: strings.TrimSpace(input.ParticipantCount),
	}
	if err := season.Validate(); err != nil {
		return history.Season{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	return season, nil
}
