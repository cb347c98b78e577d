package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cnfl/fantasy-cricket/internal/domain/event"
	idgen "github.com/cnfl/fantasy-cricket/internal/platform/id"
	"github.com/cnfl/fantasy-cricket/internal/platform/logging"
	"github.com/cnfl/fantasy-cricket/internal/store"
)

// UpsertEventInput is the incoming payload for create/update event.
type UpsertEventInput struct {
	Name                     string
	Description              string
	RegistrationDeadline     time.Time
	TournamentEndTime        time.Time
	LeagueType               event.LeagueType
	MaxForeignPlayers        int
	TotalMatches             int
	MaxMatchesPerTeam        int
	MaxPlayersFromSingleTeam int
	MaxVipPlayers            int
	MaxReplacements          int
}

// EventView is an event joined with its time-derived status.
type EventView struct {
	event.Event
	Status event.Status
}

type EventService struct {
	store  *store.Store
	idGen  idgen.Generator
	logger *logging.Logger
	now    func() time.Time
}

func NewEventService(st *store.Store, idGen idgen.Generator, logger *logging.Logger) *EventService {
	if logger == nil {
		logger = logging.Default()
	}

	return &EventService{
		store:  st,
		idGen:  idGen,
		logger: logger,
		now:    time.Now,
	}
}

func (s *EventService) CreateEvent(ctx context.Context, input UpsertEventInput) (event.Event, error) {
	ctx, span := startUsecaseSpan(ctx, "EventService.CreateEvent")
	defer span.End()

	eventID, err := s.idGen.NewID()
	if err != nil {
		return event.Event{}, fmt.Errorf("generate event id: %w", err)
	}

	e, err := buildEvent(eventID, input)
	if err != nil {
		return event.Event{}, err
	}

	s.store.Dispatch(store.CreateEvent{Event: e})
	s.logger.InfoContext(ctx, "event created", "event_id", e.ID, "name", e.Name)
	return e, nil
}

func (s *EventService) UpdateEvent(ctx context.Context, eventID string, input UpsertEventInput) (event.Event, error) {
	ctx, span := startUsecaseSpan(ctx, "EventService.UpdateEvent")
	defer span.End()

	if _, ok := s.store.Snapshot().EventByID(eventID); !ok {
		return event.Event{}, fmt.Errorf("%w: event=%s", ErrNotFound, eventID)
	}

	e, err := buildEvent(eventID, input)
	if err != nil {
		return event.Event{}, err
	}

	s.store.Dispatch(store.UpdateEvent{Event: e})
	s.logger.InfoContext(ctx, "event updated", "event_id", e.ID)
	return e, nil
}

// DeleteEvent removes the event and everything scoped to it.
func (s *EventService) DeleteEvent(ctx context.Context, eventID string) error {
	ctx, span := startUsecaseSpan(ctx, "EventService.DeleteEvent")
	defer span.End()

	if _, ok := s.store.Snapshot().EventByID(eventID); !ok {
		return fmt.Errorf("%w: event=%s", ErrNotFound, eventID)
	}

	s.store.Dispatch(store.DeleteEvent{ID: eventID})
	s.logger.InfoContext(ctx, "event deleted", "event_id", eventID)
	return nil
}

func (s *EventService) GetEvent(ctx context.Context, eventID string) (EventView, error) {
	_, span := startUsecaseSpan(ctx, "EventService.GetEvent")
	defer span.End()

	e, ok := s.store.Snapshot().EventByID(eventID)
	if !ok {
		return EventView{}, fmt.Errorf("%w: event=%s", ErrNotFound, eventID)
	}

	return EventView{Event: e, Status: e.StatusAt(s.now())}, nil
}

func (s *EventService) ListEvents(ctx context.Context) ([]EventView, error) {
	_, span := startUsecaseSpan(ctx, "EventService.ListEvents")
	defer span.End()

	now := s.now()
	snapshot := s.store.Snapshot()
	out := make([]EventView, 0, len(snapshot.Events))
	for _, e := range snapshot.Events {
		out = append(out, EventView{Event: e, Status: e.StatusAt(now)})
	}
	return out, nil
}

func buildEvent(eventID string, input UpsertEventInput) (event.Event, error) {
	e := event.Event{
		ID:                       eventID,
		Name:                     strings.TrimSpace(input.Name),
		Description:              strings.TrimSpace(input.Description),
		RegistrationDeadline:     input.RegistrationDeadline,
		TournamentEndTime:        input.TournamentEndTime,
		LeagueType:               input.LeagueType,
		MaxForeignPlayers:        input.MaxForeignPlayers,
		TotalMatches:             input.TotalMatches,
		MaxMatchesPerTeam:        input.MaxMatchesPerTeam,
		MaxPlayersFromSingleTeam: input.MaxPlayersFromSingleTeam,
		MaxVipPlayers:            input.MaxVipPlayers,
		MaxReplacements:          input.MaxReplacements,
	}
	if err := e.Validate(); err != nil {
		return event.Event{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	return e, nil
}
