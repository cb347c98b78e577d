package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cnfl/fantasy-cricket/internal/domain/event"
	"github.com/cnfl/fantasy-cricket/internal/domain/roster"
	"github.com/cnfl/fantasy-cricket/internal/domain/user"
	idgen "github.com/cnfl/fantasy-cricket/internal/platform/id"
	"github.com/cnfl/fantasy-cricket/internal/platform/logging"
	"github.com/cnfl/fantasy-cricket/internal/store"
)

// DraftInput is the incoming payload for creating or revising a fantasy
// roster before the registration deadline.
type DraftInput struct {
	EventID  string
	TeamName string
	Slots    []roster.Slot
}

type RosterService struct {
	store  *store.Store
	idGen  idgen.Generator
	logger *logging.Logger
	now    func() time.Time
}

func NewRosterService(st *store.Store, idGen idgen.Generator, logger *logging.Logger) *RosterService {
	if logger == nil {
		logger = logging.Default()
	}

	return &RosterService{
		store:  st,
		idGen:  idGen,
		logger: logger,
		now:    time.Now,
	}
}

// ValidateDraft evaluates a candidate XI without committing anything. The
// draft form calls this on every change to render per-rule feedback.
func (s *RosterService) ValidateDraft(ctx context.Context, eventID string, slots []roster.Slot) (roster.Report, error) {
	_, span := startUsecaseSpan(ctx, "RosterService.ValidateDraft")
	defer span.End()

	snapshot := s.store.Snapshot()
	e, ok := snapshot.EventByID(eventID)
	if !ok {
		return roster.Report{}, fmt.Errorf("%w: event=%s", ErrNotFound, eventID)
	}

	return roster.Validate(slots, snapshot.PoolByEvent(eventID), roster.RulesForEvent(e)), nil
}

// CreateRoster registers a participant's draft for an event. Registration
// closes at the deadline instant; each participant holds at most one roster
// per event.
func (s *RosterService) CreateRoster(ctx context.Context, actor user.Principal, input DraftInput) (roster.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "RosterService.CreateRoster")
	defer span.End()

	input.TeamName = strings.TrimSpace(input.TeamName)
	if input.TeamName == "" {
		return roster.Team{}, fmt.Errorf("%w: team name is required", ErrInvalidInput)
	}

	rosterID, err := s.idGen.NewID()
	if err != nil {
		return roster.Team{}, fmt.Errorf("generate roster id: %w", err)
	}

	var t roster.Team
	_, err = s.store.Update(func(snapshot store.Snapshot) (store.Snapshot, error) {
		e, ok := snapshot.EventByID(input.EventID)
		if !ok {
			return snapshot, fmt.Errorf("%w: event=%s", ErrNotFound, input.EventID)
		}
		if e.StatusAt(s.now()) != event.StatusUpcoming {
			return snapshot, fmt.Errorf("%w: registration is closed", ErrInvalidInput)
		}
		for _, existing := range snapshot.ParticipantTeamsByEvent(input.EventID) {
			if existing.ParticipantID == actor.UserID {
				return snapshot, fmt.Errorf("%w: participant already registered a team", ErrInvalidInput)
			}
		}

		report := roster.Validate(input.Slots, snapshot.PoolByEvent(input.EventID), roster.RulesForEvent(e))
		if err := report.FirstFailure(); err != nil {
			return snapshot, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}

		t = roster.Team{
			ID:               rosterID,
			ParticipantID:    actor.UserID,
			ParticipantName:  actor.FullName,
			TeamName:         input.TeamName,
			EventID:          input.EventID,
			Slots:            append([]roster.Slot(nil), input.Slots...),
			ReplacementsLeft: e.MaxReplacements,
			JoinHistory:      make(map[string]int),
		}
		if err := t.ValidateBasic(); err != nil {
			return snapshot, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}

		return store.Apply(snapshot, store.AddParticipantTeam{Team: t}), nil
	})
	if err != nil {
		return roster.Team{}, err
	}

	s.logger.InfoContext(ctx, "roster registered",
		"roster_id", t.ID,
		"event_id", t.EventID,
		"participant_id", t.ParticipantID,
	)
	return t, nil
}

// ReviseRoster replaces a draft wholesale. Only the owner may revise and
// only while registration is still open; afterwards the replacement flow is
// the sole path to change a roster.
func (s *RosterService) ReviseRoster(ctx context.Context, actor user.Principal, rosterID string, input DraftInput) (roster.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "RosterService.ReviseRoster")
	defer span.End()

	var updated roster.Team
	_, err := s.store.Update(func(snapshot store.Snapshot) (store.Snapshot, error) {
		existing, ok := snapshot.ParticipantTeamByID(rosterID)
		if !ok {
			return snapshot, fmt.Errorf("%w: roster=%s", ErrNotFound, rosterID)
		}
		if existing.ParticipantID != actor.UserID {
			return snapshot, fmt.Errorf("%w: roster belongs to another participant", ErrUnauthorized)
		}

		e, ok := snapshot.EventByID(existing.EventID)
		if !ok {
			return snapshot, fmt.Errorf("%w: event=%s", ErrNotFound, existing.EventID)
		}
		if e.StatusAt(s.now()) != event.StatusUpcoming {
			return snapshot, fmt.Errorf("%w: registration is closed", ErrInvalidInput)
		}

		report := roster.Validate(input.Slots, snapshot.PoolByEvent(existing.EventID), roster.RulesForEvent(e))
		if err := report.FirstFailure(); err != nil {
			return snapshot, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}

		updated = existing.Clone()
		updated.Slots = append([]roster.Slot(nil), input.Slots...)
		if name := strings.TrimSpace(input.TeamName); name != "" {
			updated.TeamName = name
		}

		return store.Apply(snapshot, store.UpdateParticipantTeam{Team: updated}), nil
	})
	if err != nil {
		return roster.Team{}, err
	}

	s.logger.InfoContext(ctx, "roster revised", "roster_id", rosterID)
	return updated, nil
}

func (s *RosterService) GetRoster(ctx context.Context, rosterID string) (roster.Team, error) {
	_, span := startUsecaseSpan(ctx, "RosterService.GetRoster")
	defer span.End()

	t, ok := s.store.Snapshot().ParticipantTeamByID(rosterID)
	if !ok {
		return roster.Team{}, fmt.Errorf("%w: roster=%s", ErrNotFound, rosterID)
	}
	return t, nil
}

func (s *RosterService) ListRostersByParticipant(ctx context.Context, participantID string) ([]roster.Team, error) {
	_, span := startUsecaseSpan(ctx, "RosterService.ListRostersByParticipant")
	defer span.End()

	return s.store.Snapshot().ParticipantTeamsByUser(participantID), nil
}

// ListRostersByEvent returns an event's rosters subject to visibility:
// admins always see everything, participants see other rosters only once
// the event finishes or when browsing is switched on site-wide.
func (s *RosterService) ListRostersByEvent(ctx context.Context, actor user.Principal, eventID string) ([]roster.Team, error) {
	_, span := startUsecaseSpan(ctx, "RosterService.ListRostersByEvent")
	defer span.End()

	snapshot := s.store.Snapshot()
	e, ok := snapshot.EventByID(eventID)
	if !ok {
		return nil, fmt.Errorf("%w: event=%s", ErrNotFound, eventID)
	}

	teams := snapshot.ParticipantTeamsByEvent(eventID)
	if actor.IsAdmin() {
		return teams, nil
	}
	if e.StatusAt(s.now()) == event.StatusFinished || snapshot.Settings.ParticipantTeamsVisible() {
		return teams, nil
	}

	own := make([]roster.Team, 0, 1)
	for _, t := range teams {
		if t.ParticipantID == actor.UserID {
			own = append(own, t)
		}
	}
	return own, nil
}
