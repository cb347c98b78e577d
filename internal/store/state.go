package store

import (
	"github.com/cnfl/fantasy-cricket/internal/domain/announcement"
	"github.com/cnfl/fantasy-cricket/internal/domain/chat"
	"github.com/cnfl/fantasy-cricket/internal/domain/event"
	"github.com/cnfl/fantasy-cricket/internal/domain/history"
	"github.com/cnfl/fantasy-cricket/internal/domain/player"
	"github.com/cnfl/fantasy-cricket/internal/domain/replacement"
	"github.com/cnfl/fantasy-cricket/internal/domain/roster"
	"github.com/cnfl/fantasy-cricket/internal/domain/sitesettings"
	"github.com/cnfl/fantasy-cricket/internal/domain/team"
	"github.com/cnfl/fantasy-cricket/internal/domain/user"
)

// Snapshot is one immutable view of every collection. Apply never mutates a
// snapshot in place; readers holding one can rely on it staying fixed.
// Collections keep insertion order, except replacement requests and
// announcements (newest first) and history (season number ascending).
type Snapshot struct {
	Users               []user.User
	Events              []event.Event
	Teams               []team.Team
	Players             []player.Player
	ParticipantTeams    []roster.Team
	ReplacementRequests []replacement.Request
	Announcements       []announcement.Announcement
	ChatMessages        []chat.Message
	History             []history.Season
	Settings            sitesettings.Settings
}

func (s Snapshot) EventByID(id string) (event.Event, bool) {
	for _, e := range s.Events {
		if e.ID == id {
			return e, true
		}
	}
	return event.Event{}, false
}

func (s Snapshot) TeamByID(id string) (team.Team, bool) {
	for _, t := range s.Teams {
		if t.ID == id {
			return t, true
		}
	}
	return team.Team{}, false
}

func (s Snapshot) TeamsByEvent(eventID string) []team.Team {
	out := make([]team.Team, 0)
	for _, t := range s.Teams {
		if t.EventID == eventID {
			out = append(out, t)
		}
	}
	return out
}

func (s Snapshot) PlayerByID(id string) (player.Player, bool) {
	for _, p := range s.Players {
		if p.ID == id {
			return p, true
		}
	}
	return player.Player{}, false
}

func (s Snapshot) PlayersByEvent(eventID string) []player.Player {
	out := make([]player.Player, 0)
	for _, p := range s.Players {
		if p.EventID == eventID {
			out = append(out, p)
		}
	}
	return out
}

// PoolByEvent indexes an event's players for the roster engines.
func (s Snapshot) PoolByEvent(eventID string) roster.Pool {
	return roster.NewPool(s.PlayersByEvent(eventID))
}

func (s Snapshot) UserByID(id string) (user.User, bool) {
	for _, u := range s.Users {
		if u.ID == id {
			return u, true
		}
	}
	return user.User{}, false
}

func (s Snapshot) UserByEmail(email string) (user.User, bool) {
	for _, u := range s.Users {
		if u.Email == email {
			return u, true
		}
	}
	return user.User{}, false
}

func (s Snapshot) ParticipantTeamByID(id string) (roster.Team, bool) {
	for _, pt := range s.ParticipantTeams {
		if pt.ID == id {
			return pt, true
		}
	}
	return roster.Team{}, false
}

func (s Snapshot) ParticipantTeamsByEvent(eventID string) []roster.Team {
	out := make([]roster.Team, 0)
	for _, pt := range s.ParticipantTeams {
		if pt.EventID == eventID {
			out = append(out, pt)
		}
	}
	return out
}

func (s Snapshot) ParticipantTeamsByUser(participantID string) []roster.Team {
	out := make([]roster.Team, 0)
	for _, pt := range s.ParticipantTeams {
		if pt.ParticipantID == participantID {
			out = append(out, pt)
		}
	}
	return out
}

func (s Snapshot) ReplacementRequestByID(id string) (replacement.Request, bool) {
	for _, r := range s.ReplacementRequests {
		if r.ID == id {
			return r, true
		}
	}
	return replacement.Request{}, false
}
