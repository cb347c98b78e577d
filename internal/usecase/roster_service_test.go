package usecase

import (
	"errors"
	"testing"

	"github.com/cnfl/fantasy-cricket/internal/domain/roster"
	"github.com/cnfl/fantasy-cricket/internal/platform/logging"
	"github.com/cnfl/fantasy-cricket/internal/store"
)

func newRosterService(st *store.Store) *RosterService {
	svc := NewRosterService(st, &seqIDGen{prefix: "ft"}, logging.NewNop())
	svc.now = at(beforeDeadline)
	return svc
}

func TestRosterService_CreateRoster_Valid(t *testing.T) {
	st := fixtureStore()
	svc := newRosterService(st)

	created, err := svc.CreateRoster(t.Context(), participantPrincipal(), DraftInput{
		EventID:  "evt-1",
		TeamName: "Tigers XI",
		Slots:    validDraftSlots(),
	})
	if err != nil {
		t.Fatalf("create roster failed: %v", err)
	}

	if created.ReplacementsLeft != 3 {
		t.Fatalf("replacements left should come from the event config, got %d", created.ReplacementsLeft)
	}
	if len(created.JoinHistory) != 0 {
		t.Fatalf("original draftees must have no join baselines: %v", created.JoinHistory)
	}
	if _, ok := st.Snapshot().ParticipantTeamByID(created.ID); !ok {
		t.Fatal("roster not persisted")
	}
}

func TestRosterService_CreateRoster_SecondRegistrationRejected(t *testing.T) {
	st := fixtureStore()
	svc := newRosterService(st)

	input := DraftInput{EventID: "evt-1", TeamName: "Tigers XI", Slots: validDraftSlots()}
	if _, err := svc.CreateRoster(t.Context(), participantPrincipal(), input); err != nil {
		t.Fatalf("first registration failed: %v", err)
	}

	input.TeamName = "Tigers XI Reborn"
	_, err := svc.CreateRoster(t.Context(), participantPrincipal(), input)
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestRosterService_CreateRoster_ClosedAtDeadlineInstant(t *testing.T) {
	st := fixtureStore()
	svc := newRosterService(st)
	svc.now = at(fixtureDeadline)

	_, err := svc.CreateRoster(t.Context(), participantPrincipal(), DraftInput{
		EventID:  "evt-1",
		TeamName: "Tigers XI",
		Slots:    validDraftSlots(),
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("registration at the deadline instant must be closed, got %v", err)
	}
}

func TestRosterService_CreateRoster_RuleViolation(t *testing.T) {
	st := fixtureStore()
	svc := newRosterService(st)

	slots := validDraftSlots()
	slots[2].IsVip = true // third VIP against a cap of two

	_, err := svc.CreateRoster(t.Context(), participantPrincipal(), DraftInput{
		EventID:  "evt-1",
		TeamName: "Tigers XI",
		Slots:    slots,
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if !errors.Is(err, roster.ErrVipLimit) {
		t.Fatalf("expected the VIP rule error, got %v", err)
	}
}

func TestRosterService_ReviseRoster_OnlyOwnerBeforeDeadline(t *testing.T) {
	st := fixtureStore()
	st.Dispatch(store.AddParticipantTeam{Team: fixtureRoster()})
	svc := newRosterService(st)

	revised := validDraftSlots()
	revised[10] = roster.Slot{PlayerID: "p12"}

	updated, err := svc.ReviseRoster(t.Context(), participantPrincipal(), "ft-1", DraftInput{Slots: revised})
	if err != nil {
		t.Fatalf("revise failed: %v", err)
	}
	if _, ok := updated.SlotFor("p12"); !ok {
		t.Fatal("revision not applied")
	}

	other := participantPrincipal()
	other.UserID = "user-p2"
	if _, err := svc.ReviseRoster(t.Context(), other, "ft-1", DraftInput{Slots: revised}); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for foreign roster, got %v", err)
	}

	svc.now = at(whileRunning)
	if _, err := svc.ReviseRoster(t.Context(), participantPrincipal(), "ft-1", DraftInput{Slots: revised}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput after deadline, got %v", err)
	}
}

func TestRosterService_ListRostersByEvent_Visibility(t *testing.T) {
	st := fixtureStore()
	st.Dispatch(store.AddParticipantTeam{Team: fixtureRoster()})
	second := fixtureRoster()
	second.ID = "ft-2"
	second.ParticipantID = "user-p2"
	second.ParticipantName = "Nasir Uddin"
	second.TeamName = "Royal Bengals"
	st.Dispatch(store.AddParticipantTeam{Team: second})

	svc := newRosterService(st)
	svc.now = at(whileRunning)

	mine, err := svc.ListRostersByEvent(t.Context(), participantPrincipal(), "evt-1")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(mine) != 1 || mine[0].ID != "ft-1" {
		t.Fatalf("participant should only see their own roster mid-event: %+v", mine)
	}

	all, err := svc.ListRostersByEvent(t.Context(), adminPrincipal(), "evt-1")
	if err != nil {
		t.Fatalf("admin list failed: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("admin must see every roster, got %d", len(all))
	}

	visible := true
	st.Dispatch(store.UpdateSiteSettings{Patch: settingsPatchShowTeams(&visible)})
	opened, err := svc.ListRostersByEvent(t.Context(), participantPrincipal(), "evt-1")
	if err != nil {
		t.Fatalf("list after toggle failed: %v", err)
	}
	if len(opened) != 2 {
		t.Fatalf("visibility toggle should expose all rosters, got %d", len(opened))
	}

	svc.now = at(afterEnd)
	st.Dispatch(store.UpdateSiteSettings{Patch: settingsPatchShowTeams(boolPtr(false))})
	finished, err := svc.ListRostersByEvent(t.Context(), participantPrincipal(), "evt-1")
	if err != nil {
		t.Fatalf("list after finish failed: %v", err)
	}
	if len(finished) != 2 {
		t.Fatalf("finished events are always fully visible, got %d", len(finished))
	}
}
