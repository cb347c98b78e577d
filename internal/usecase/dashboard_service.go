package usecase

import (
	"context"
	"time"

	"github.com/cnfl/fantasy-cricket/internal/domain/event"
	"github.com/cnfl/fantasy-cricket/internal/domain/roster"
	"github.com/cnfl/fantasy-cricket/internal/domain/user"
	"github.com/cnfl/fantasy-cricket/internal/store"
)

// DashboardFocus names why an event was chosen for the landing view.
type DashboardFocus string

const (
	FocusRunning          DashboardFocus = "running"
	FocusRegistered       DashboardFocus = "registered_upcoming"
	FocusFinished         DashboardFocus = "latest_finished"
	FocusOpenRegistration DashboardFocus = "open_registration"
	FocusNone             DashboardFocus = "no_event"
)

// Dashboard is the participant landing view: the focused event, the
// caller's roster in it if any, and the menu gates derived from both.
type Dashboard struct {
	Focus  DashboardFocus
	Event  *EventView
	Roster *roster.Team

	CanJoin               bool
	CanReviseRoster       bool
	CanRequestReplacement bool
	ShowLeaderboard       bool
	ReplacementsLeft      int
}

type DashboardService struct {
	store *store.Store
	now   func() time.Time
}

func NewDashboardService(st *store.Store) *DashboardService {
	return &DashboardService{store: st, now: time.Now}
}

// View resolves the landing state for one participant. Selection order:
// a running event the caller plays in, then an upcoming event they already
// registered for, then the most recently finished event they played in,
// then any event with open registration, and finally the empty state.
func (s *DashboardService) View(ctx context.Context, actor user.Principal) (Dashboard, error) {
	_, span := startUsecaseSpan(ctx, "DashboardService.View")
	defer span.End()

	now := s.now()
	snapshot := s.store.Snapshot()

	rosterByEvent := make(map[string]roster.Team)
	for _, t := range snapshot.ParticipantTeamsByUser(actor.UserID) {
		rosterByEvent[t.EventID] = t
	}

	if d, ok := s.pick(snapshot, rosterByEvent, now, event.StatusRunning, true, FocusRunning); ok {
		return d, nil
	}
	if d, ok := s.pick(snapshot, rosterByEvent, now, event.StatusUpcoming, true, FocusRegistered); ok {
		return d, nil
	}
	if d, ok := s.latestFinished(snapshot, rosterByEvent, now); ok {
		return d, nil
	}
	if d, ok := s.pick(snapshot, rosterByEvent, now, event.StatusUpcoming, false, FocusOpenRegistration); ok {
		return d, nil
	}

	return Dashboard{Focus: FocusNone}, nil
}

func (s *DashboardService) pick(
	snapshot store.Snapshot,
	rosterByEvent map[string]roster.Team,
	now time.Time,
	want event.Status,
	mustBeRegistered bool,
	focus DashboardFocus,
) (Dashboard, bool) {
	for _, e := range snapshot.Events {
		if e.StatusAt(now) != want {
			continue
		}
		t, registered := rosterByEvent[e.ID]
		if mustBeRegistered && !registered {
			continue
		}

		d := Dashboard{Focus: focus, Event: &EventView{Event: e, Status: want}}
		if registered {
			d.Roster = &t
			d.ReplacementsLeft = t.ReplacementsLeft
		}
		switch focus {
		case FocusRunning:
			d.CanRequestReplacement = t.ReplacementsLeft > 0
			d.ShowLeaderboard = true
		case FocusRegistered:
			d.CanReviseRoster = true
		case FocusOpenRegistration:
			d.CanJoin = !registered
		}
		return d, true
	}
	return Dashboard{}, false
}

func (s *DashboardService) latestFinished(
	snapshot store.Snapshot,
	rosterByEvent map[string]roster.Team,
	now time.Time,
) (Dashboard, bool) {
	var latest *event.Event
	for i := range snapshot.Events {
		e := snapshot.Events[i]
		if e.StatusAt(now) != event.StatusFinished {
			continue
		}
		if _, registered := rosterByEvent[e.ID]; !registered {
			continue
		}
		if latest == nil || e.TournamentEndTime.After(latest.TournamentEndTime) {
			latest = &snapshot.Events[i]
		}
	}
	if latest == nil {
		return Dashboard{}, false
	}

	t := rosterByEvent[latest.ID]
	return Dashboard{
		Focus:           FocusFinished,
		Event:           &EventView{Event: *latest, Status: event.StatusFinished},
		Roster:          &t,
		ShowLeaderboard: true,
	}, true
}
