package usecase

import (
	"testing"
	"time"

	"github.com/cnfl/fantasy-cricket/internal/store"
)

func TestDashboardService_View_PriorityChain(t *testing.T) {
	tests := []struct {
		name      string
		setup     func(st *store.Store)
		now       time.Time
		wantFocus DashboardFocus
	}{
		{
			name:      "no events at all",
			setup:     func(st *store.Store) {},
			now:       beforeDeadline,
			wantFocus: FocusNone,
		},
		{
			name:      "open registration without a roster",
			setup:     func(st *store.Store) {},
			now:       beforeDeadline,
			wantFocus: FocusOpenRegistration,
		},
		{
			name: "registered upcoming beats open registration",
			setup: func(st *store.Store) {
				st.Dispatch(store.AddParticipantTeam{Team: fixtureRoster()})
			},
			now:       beforeDeadline,
			wantFocus: FocusRegistered,
		},
		{
			name: "running event wins",
			setup: func(st *store.Store) {
				st.Dispatch(store.AddParticipantTeam{Team: fixtureRoster()})
			},
			now:       whileRunning,
			wantFocus: FocusRunning,
		},
		{
			name: "finished event falls back to the final board",
			setup: func(st *store.Store) {
				st.Dispatch(store.AddParticipantTeam{Team: fixtureRoster()})
			},
			now:       afterEnd,
			wantFocus: FocusFinished,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var st *store.Store
			if tc.wantFocus == FocusNone {
				st = store.New(store.Seed())
			} else {
				st = fixtureStore()
			}
			tc.setup(st)

			svc := NewDashboardService(st)
			svc.now = at(tc.now)

			d, err := svc.View(t.Context(), participantPrincipal())
			if err != nil {
				t.Fatalf("view failed: %v", err)
			}
			if d.Focus != tc.wantFocus {
				t.Fatalf("focus = %s, want %s", d.Focus, tc.wantFocus)
			}
		})
	}
}

func TestDashboardService_View_MenuGates(t *testing.T) {
	st := fixtureStore()
	st.Dispatch(store.AddParticipantTeam{Team: fixtureRoster()})

	svc := NewDashboardService(st)
	svc.now = at(whileRunning)

	d, err := svc.View(t.Context(), participantPrincipal())
	if err != nil {
		t.Fatalf("view failed: %v", err)
	}
	if !d.CanRequestReplacement || !d.ShowLeaderboard {
		t.Fatalf("running focus gates wrong: %+v", d)
	}
	if d.ReplacementsLeft != 3 {
		t.Fatalf("unexpected credits: %d", d.ReplacementsLeft)
	}

	svc.now = at(beforeDeadline)
	d, err = svc.View(t.Context(), participantPrincipal())
	if err != nil {
		t.Fatalf("view failed: %v", err)
	}
	if !d.CanReviseRoster || d.CanRequestReplacement {
		t.Fatalf("upcoming focus gates wrong: %+v", d)
	}

	// A fresh participant sees the join gate while registration is open.
	other := participantPrincipal()
	other.UserID = "user-p2"
	d, err = svc.View(t.Context(), other)
	if err != nil {
		t.Fatalf("view failed: %v", err)
	}
	if d.Focus != FocusOpenRegistration || !d.CanJoin {
		t.Fatalf("join gate wrong: %+v", d)
	}

	// Picking the latest of several finished events.
	older := fixtureEvent()
	older.ID = "evt-0"
	older.RegistrationDeadline = fixtureDeadline.AddDate(-1, 0, 0)
	older.TournamentEndTime = fixtureEnd.AddDate(-1, 0, 0)
	st.Dispatch(store.CreateEvent{Event: older})
	oldRoster := fixtureRoster()
	oldRoster.ID = "ft-old"
	oldRoster.EventID = "evt-0"
	st.Dispatch(store.AddParticipantTeam{Team: oldRoster})

	svc.now = at(afterEnd)
	d, err = svc.View(t.Context(), participantPrincipal())
	if err != nil {
		t.Fatalf("view failed: %v", err)
	}
	if d.Focus != FocusFinished || d.Event == nil || d.Event.ID != "evt-1" {
		t.Fatalf("expected the most recent finished event, got %+v", d)
	}
}
