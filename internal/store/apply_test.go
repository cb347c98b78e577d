package store

import (
	"errors"
	"sync"
	"testing"

	"github.com/cnfl/fantasy-cricket/internal/domain/announcement"
	"github.com/cnfl/fantasy-cricket/internal/domain/event"
	"github.com/cnfl/fantasy-cricket/internal/domain/history"
	"github.com/cnfl/fantasy-cricket/internal/domain/player"
	"github.com/cnfl/fantasy-cricket/internal/domain/replacement"
	"github.com/cnfl/fantasy-cricket/internal/domain/roster"
	"github.com/cnfl/fantasy-cricket/internal/domain/sitesettings"
	"github.com/cnfl/fantasy-cricket/internal/domain/team"
)

type unknownAction struct{}

func (unknownAction) isAction() {}

func TestApplyDoesNotMutateInput(t *testing.T) {
	before := Snapshot{
		Events: []event.Event{{ID: "evt-1", Name: "Season 5"}},
	}

	after := Apply(before, UpdateEvent{Event: event.Event{ID: "evt-1", Name: "Season 5 (revised)"}})

	if before.Events[0].Name != "Season 5" {
		t.Fatalf("input snapshot mutated: %s", before.Events[0].Name)
	}
	if after.Events[0].Name != "Season 5 (revised)" {
		t.Fatalf("update not applied: %s", after.Events[0].Name)
	}
}

func TestApplyUnknownActionIsNoOp(t *testing.T) {
	before := Snapshot{
		Events: []event.Event{{ID: "evt-1"}},
	}

	after := Apply(before, unknownAction{})

	if &before.Events[0] != &after.Events[0] {
		t.Fatal("unknown action must return the identical collections")
	}
}

func TestApplyPrependsRequestsAndAnnouncements(t *testing.T) {
	s := Snapshot{}
	s = Apply(s, AddReplacementRequest{Request: replacement.Request{ID: "req-1"}})
	s = Apply(s, AddReplacementRequest{Request: replacement.Request{ID: "req-2"}})

	if s.ReplacementRequests[0].ID != "req-2" || s.ReplacementRequests[1].ID != "req-1" {
		t.Fatalf("requests should be newest first: %+v", s.ReplacementRequests)
	}

	s = Apply(s, AddAnnouncement{Announcement: announcement.Announcement{ID: "ann-1", Scope: announcement.ScopePublic}})
	s = Apply(s, AddAnnouncement{Announcement: announcement.Announcement{ID: "ann-2", Scope: announcement.ScopePublic}})

	if s.Announcements[0].ID != "ann-2" {
		t.Fatalf("announcements should be newest first: %+v", s.Announcements)
	}
}

func TestApplyKeepsHistorySortedBySeason(t *testing.T) {
	s := Snapshot{}
	s = Apply(s, AddHistory{Season: history.Season{ID: "h3", SeasonNumber: "3"}})
	s = Apply(s, AddHistory{Season: history.Season{ID: "h1", SeasonNumber: "1"}})
	s = Apply(s, AddHistory{Season: history.Season{ID: "h10", SeasonNumber: "10"}})

	got := []string{s.History[0].ID, s.History[1].ID, s.History[2].ID}
	want := []string{"h1", "h3", "h10"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("history order = %v, want %v", got, want)
		}
	}

	// Renumbering an entry re-sorts the collection.
	s = Apply(s, UpdateHistory{Season: history.Season{ID: "h1", SeasonNumber: "20"}})
	if s.History[2].ID != "h1" {
		t.Fatalf("updated season should sort last: %+v", s.History)
	}
}

func TestApplyUpdatePlayerPoints(t *testing.T) {
	s := Snapshot{
		Players: []player.Player{
			{ID: "p1", Points: []int{5}},
			{ID: "p2", Points: []int{7}},
		},
	}

	after := Apply(s, UpdatePlayerPoints{PlayerID: "p1", Points: []int{5, 12, 0, 30}})

	if got := after.Players[0].TotalPoints(); got != 47 {
		t.Fatalf("expected updated total 47, got %d", got)
	}
	if got := s.Players[0].TotalPoints(); got != 5 {
		t.Fatalf("original snapshot mutated, total %d", got)
	}
	if after.Players[1].TotalPoints() != 7 {
		t.Fatal("unrelated player changed")
	}
}

func TestApplySiteSettingsShallowMerge(t *testing.T) {
	contact := "admin@cnfl.local"
	title := "CNFL"
	s := Snapshot{Settings: sitesettings.Settings{ContactInfo: &contact}}

	after := Apply(s, UpdateSiteSettings{Patch: sitesettings.Settings{HeroTitle: &title}})

	if after.Settings.HeroTitle == nil || *after.Settings.HeroTitle != "CNFL" {
		t.Fatal("patched field missing")
	}
	if after.Settings.ContactInfo == nil || *after.Settings.ContactInfo != contact {
		t.Fatal("unpatched field must survive a shallow merge")
	}
}

func TestStoreVersionAdvances(t *testing.T) {
	st := New(Seed())
	if st.Version() != 0 {
		t.Fatalf("fresh store version = %d", st.Version())
	}

	st.Dispatch(CreateEvent{Event: event.Event{ID: "evt-1"}})
	st.Dispatch(unknownAction{})

	if st.Version() != 2 {
		t.Fatalf("expected version 2 after two dispatches, got %d", st.Version())
	}

	snap, version := st.View()
	if version != 2 || len(snap.Events) != 1 {
		t.Fatalf("view mismatch: version=%d events=%d", version, len(snap.Events))
	}
}

func TestApplyDeleteEventCascades(t *testing.T) {
	s := Snapshot{
		Events: []event.Event{{ID: "evt-1"}, {ID: "evt-2"}},
		Teams: []team.Team{
			{ID: "team-1", EventID: "evt-1"},
			{ID: "team-2", EventID: "evt-2"},
		},
		Players: []player.Player{
			{ID: "p1", EventID: "evt-1"},
			{ID: "p2", EventID: "evt-2"},
		},
		ParticipantTeams: []roster.Team{
			{ID: "ft-1", EventID: "evt-1"},
			{ID: "ft-2", EventID: "evt-2"},
		},
		ReplacementRequests: []replacement.Request{
			{ID: "req-1", RosterID: "ft-1"},
			{ID: "req-2", RosterID: "ft-2"},
		},
	}

	after := Apply(s, DeleteEvent{ID: "evt-1"})

	if len(after.Events) != 1 || after.Events[0].ID != "evt-2" {
		t.Fatalf("event not removed: %+v", after.Events)
	}
	if len(after.Teams) != 1 || after.Teams[0].ID != "team-2" {
		t.Fatalf("event teams not removed: %+v", after.Teams)
	}
	if len(after.Players) != 1 || after.Players[0].ID != "p2" {
		t.Fatalf("event players not removed: %+v", after.Players)
	}
	if len(after.ParticipantTeams) != 1 || after.ParticipantTeams[0].ID != "ft-2" {
		t.Fatalf("event rosters not removed: %+v", after.ParticipantTeams)
	}
	if len(after.ReplacementRequests) != 1 || after.ReplacementRequests[0].ID != "req-2" {
		t.Fatalf("roster requests not removed: %+v", after.ReplacementRequests)
	}
}

func TestStoreUpdateIsAtomicReadModifyWrite(t *testing.T) {
	st := New(Snapshot{ParticipantTeams: []roster.Team{{ID: "ft-1", ReplacementsLeft: 10}}})

	const writers = 10
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := st.Update(func(s Snapshot) (Snapshot, error) {
				team, _ := s.ParticipantTeamByID("ft-1")
				updated := team.Clone()
				updated.ReplacementsLeft--
				return Apply(s, UpdateParticipantTeam{Team: updated}), nil
			})
			if err != nil {
				t.Errorf("update failed: %v", err)
			}
		}()
	}
	wg.Wait()

	team, _ := st.Snapshot().ParticipantTeamByID("ft-1")
	if team.ReplacementsLeft != 0 {
		t.Fatalf("lost updates: expected 0 credits, got %d", team.ReplacementsLeft)
	}
	if got := st.Version(); got != writers {
		t.Fatalf("expected version %d, got %d", writers, got)
	}
}

func TestStoreUpdateErrorLeavesSnapshotUntouched(t *testing.T) {
	st := New(Snapshot{Events: []event.Event{{ID: "evt-1"}}})
	before := st.Version()

	sentinel := errors.New("precondition failed")
	_, err := st.Update(func(s Snapshot) (Snapshot, error) {
		return Apply(s, DeleteEvent{ID: "evt-1"}), sentinel
	})
	if !errors.Is(err, sentinel) {
		t.Fatalf("expected the callback error, got %v", err)
	}

	if _, ok := st.Snapshot().EventByID("evt-1"); !ok {
		t.Fatalf("failed update must not commit")
	}
	if st.Version() != before {
		t.Fatalf("failed update must not advance the version")
	}
}
