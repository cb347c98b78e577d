package usecase

import (
	"fmt"
	"time"

	"github.com/cnfl/fantasy-cricket/internal/domain/event"
	"github.com/cnfl/fantasy-cricket/internal/domain/player"
	"github.com/cnfl/fantasy-cricket/internal/domain/roster"
	"github.com/cnfl/fantasy-cricket/internal/domain/sitesettings"
	"github.com/cnfl/fantasy-cricket/internal/domain/team"
	"github.com/cnfl/fantasy-cricket/internal/domain/user"
	"github.com/cnfl/fantasy-cricket/internal/store"
)

// seqIDGen hands out deterministic ids for assertions.
type seqIDGen struct {
	prefix string
	n      int
}

func (g *seqIDGen) NewID() (string, error) {
	g.n++
	return fmt.Sprintf("%s-%d", g.prefix, g.n), nil
}

var (
	fixtureDeadline = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	fixtureEnd      = time.Date(2026, 4, 10, 12, 0, 0, 0, time.UTC)

	beforeDeadline = fixtureDeadline.Add(-24 * time.Hour)
	whileRunning   = fixtureDeadline.Add(24 * time.Hour)
	afterEnd       = fixtureEnd.Add(24 * time.Hour)
)

func fixtureEvent() event.Event {
	return event.Event{
		ID:                       "evt-1",
		Name:                     "CNFL Season 6",
		RegistrationDeadline:     fixtureDeadline,
		TournamentEndTime:        fixtureEnd,
		LeagueType:               event.LeagueDomestic,
		MaxForeignPlayers:        4,
		TotalMatches:             10,
		MaxMatchesPerTeam:        5,
		MaxPlayersFromSingleTeam: 5,
		MaxVipPlayers:            2,
		MaxReplacements:          3,
	}
}

// fixtureSnapshot builds one event with three teams and fourteen players.
// p1 through p11 form a rule-clean XI; p12, p13 and p14 stay on the bench
// for replacement scenarios.
func fixtureSnapshot() store.Snapshot {
	s := store.Seed()
	s = store.Apply(s, store.AddUser{User: user.User{
		ID: "user-p1", FullName: "Tamim Iqbal", Email: "tamim@cnfl.local", Password: "pw", Role: user.RoleParticipant,
	}})
	s = store.Apply(s, store.AddUser{User: user.User{
		ID: "user-p2", FullName: "Nasir Uddin", Email: "nasir@cnfl.local", Password: "pw", Role: user.RoleParticipant,
	}})
	s = store.Apply(s, store.CreateEvent{Event: fixtureEvent()})
	for _, t := range []team.Team{
		{ID: "t1", Name: "Dhaka Dynamos", EventID: "evt-1"},
		{ID: "t2", Name: "Sylhet Strikers", EventID: "evt-1"},
		{ID: "t3", Name: "Khulna Titans", EventID: "evt-1"},
	} {
		s = store.Apply(s, store.AddTeam{Team: t})
	}

	mk := func(id string, cat player.Category, typ player.Type, teamID string) player.Player {
		return player.Player{
			ID: id, Name: "Player " + id, Category: cat, Type: typ,
			TeamID: teamID, TeamName: teamID, EventID: "evt-1",
		}
	}
	s = store.Apply(s, store.AddPlayers{Players: []player.Player{
		mk("p1", player.CategoryWicketkeeper, player.TypeLocal, "t1"),
		mk("p2", player.CategoryBatsman, player.TypeLocal, "t1"),
		mk("p3", player.CategoryBatsman, player.TypeLocal, "t1"),
		mk("p4", player.CategoryAllRounder, player.TypeLocal, "t1"),
		mk("p5", player.CategoryAllRounder, player.TypeLocal, "t2"),
		mk("p6", player.CategoryAllRounder, player.TypeLocal, "t2"),
		mk("p7", player.CategoryBowler, player.TypeLocal, "t2"),
		mk("p8", player.CategoryBowler, player.TypeLocal, "t2"),
		mk("p9", player.CategoryBowler, player.TypeForeign, "t3"),
		mk("p10", player.CategoryBatsman, player.TypeForeign, "t3"),
		mk("p11", player.CategoryBatsman, player.TypeLocal, "t3"),
		mk("p12", player.CategoryBowler, player.TypeLocal, "t3"),
		mk("p13", player.CategoryWicketkeeper, player.TypeLocal, "t2"),
		mk("p14", player.CategoryBatsman, player.TypeForeign, "t2"),
	}})

	return s
}

func validDraftSlots() []roster.Slot {
	slots := make([]roster.Slot, 0, roster.RosterSize)
	for i := 1; i <= roster.RosterSize; i++ {
		slots = append(slots, roster.Slot{
			PlayerID: fmt.Sprintf("p%d", i),
			IsVip:    i <= 2,
		})
	}
	return slots
}

func fixtureRoster() roster.Team {
	return roster.Team{
		ID:               "ft-1",
		ParticipantID:    "user-p1",
		ParticipantName:  "Tamim Iqbal",
		TeamName:         "Tigers XI",
		EventID:          "evt-1",
		Slots:            validDraftSlots(),
		ReplacementsLeft: 3,
		JoinHistory:      map[string]int{},
	}
}

func fixtureStore() *store.Store {
	return store.New(fixtureSnapshot())
}

func participantPrincipal() user.Principal {
	return user.Principal{UserID: "user-p1", FullName: "Tamim Iqbal", Role: user.RoleParticipant}
}

func adminPrincipal() user.Principal {
	return user.Principal{UserID: store.BootstrapAdminID, FullName: "League Admin", Role: user.RoleAdmin}
}

func boolPtr(b bool) *bool { return &b }

func settingsPatchShowTeams(show *bool) sitesettings.Settings {
	return sitesettings.Settings{ShowParticipantTeams: show}
}

func at(ts time.Time) func() time.Time {
	return func() time.Time { return ts }
}
