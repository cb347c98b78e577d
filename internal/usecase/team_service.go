package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/cnfl/fantasy-cricket/internal/domain/team"
	idgen "github.com/cnfl/fantasy-cricket/internal/platform/id"
	"github.com/cnfl/fantasy-cricket/internal/platform/logging"
	"github.com/cnfl/fantasy-cricket/internal/store"
)

type TeamService struct {
	store  *store.Store
	idGen  idgen.Generator
	logger *logging.Logger
}

func NewTeamService(st *store.Store, idGen idgen.Generator, logger *logging.Logger) *TeamService {
	if logger == nil {
		logger = logging.Default()
	}

	return &TeamService{store: st, idGen: idGen, logger: logger}
}

func (s *TeamService) AddTeam(ctx context.Context, eventID, name string) (team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "TeamService.AddTeam")
	defer span.End()

	name = strings.TrimSpace(name)
	if name == "" {
		return team.Team{}, fmt.Errorf("%w: team name is required", ErrInvalidInput)
	}
	if _, ok := s.store.Snapshot().EventByID(eventID); !ok {
		return team.Team{}, fmt.Errorf("%w: event=%s", ErrNotFound, eventID)
	}

	teamID, err := s.idGen.NewID()
	if err != nil {
		return team.Team{}, fmt.Errorf("generate team id: %w", err)
	}

	t := team.Team{ID: teamID, Name: name, EventID: eventID}
	s.store.Dispatch(store.AddTeam{Team: t})
	s.logger.InfoContext(ctx, "team added", "team_id", t.ID, "event_id", eventID)
	return t, nil
}

func (s *TeamService) RenameTeam(ctx context.Context, teamID, name string) (team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "TeamService.RenameTeam")
	defer span.End()

	name = strings.TrimSpace(name)
	if name == "" {
		return team.Team{}, fmt.Errorf("%w: team name is required", ErrInvalidInput)
	}

	t, ok := s.store.Snapshot().TeamByID(teamID)
	if !ok {
		return team.Team{}, fmt.Errorf("%w: team=%s", ErrNotFound, teamID)
	}

	t.Name = name
	s.store.Dispatch(store.UpdateTeam{Team: t})
	return t, nil
}

// DeleteTeam refuses while the team still has players: rosters reference
// those players and would silently lose score otherwise.
func (s *TeamService) DeleteTeam(ctx context.Context, teamID string) error {
	ctx, span := startUsecaseSpan(ctx, "TeamService.DeleteTeam")
	defer span.End()

	snapshot := s.store.Snapshot()
	if _, ok := snapshot.TeamByID(teamID); !ok {
		return fmt.Errorf("%w: team=%s", ErrNotFound, teamID)
	}
	for _, p := range snapshot.Players {
		if p.TeamID == teamID {
			return fmt.Errorf("%w: team still has players", ErrInvalidInput)
		}
	}

	s.store.Dispatch(store.DeleteTeam{ID: teamID})
	s.logger.InfoContext(ctx, "team deleted", "team_id", teamID)
	return nil
}

func (s *TeamService) ListTeamsByEvent(ctx context.Context, eventID string) ([]team.Team, error) {
	_, span := startUsecaseSpan(ctx, "TeamService.ListTeamsByEvent")
	defer span.End()

	snapshot := s.store.Snapshot()
	if _, ok := snapshot.EventByID(eventID); !ok {
		return nil, fmt.Errorf("%w: event=%s", ErrNotFound, eventID)
	}

	return snapshot.TeamsByEvent(eventID), nil
}
