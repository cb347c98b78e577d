package store

import (
	"sort"

	"github.com/cnfl/fantasy-cricket/internal/domain/announcement"
	"github.com/cnfl/fantasy-cricket/internal/domain/event"
	"github.com/cnfl/fantasy-cricket/internal/domain/history"
	"github.com/cnfl/fantasy-cricket/internal/domain/player"
	"github.com/cnfl/fantasy-cricket/internal/domain/replacement"
	"github.com/cnfl/fantasy-cricket/internal/domain/roster"
	"github.com/cnfl/fantasy-cricket/internal/domain/team"
	"github.com/cnfl/fantasy-cricket/internal/domain/user"
)

// Apply is a pure reducer: it returns a new snapshot reflecting exactly one
// logical change and never touches its input. Collections unaffected by the
// action are shared between the old and new snapshot, which is safe because
// snapshots are never mutated. An unknown action returns the snapshot
// unchanged.
func Apply(s Snapshot, a Action) Snapshot {
	switch act := a.(type) {
	case CreateEvent:
		s.Events = appendCopy(s.Events, act.Event)
	case UpdateEvent:
		s.Events = replaceBy(s.Events, act.Event, func(e event.Event) string { return e.ID })
	case DeleteEvent:
		// Deleting an event removes everything scoped to it: teams,
		// players, fantasy rosters and the requests against those rosters.
		s.Events = deleteBy(s.Events, act.ID, func(e event.Event) string { return e.ID })
		s.Teams = keepWhere(s.Teams, func(t team.Team) bool { return t.EventID != act.ID })
		s.Players = keepWhere(s.Players, func(p player.Player) bool { return p.EventID != act.ID })

		removed := make(map[string]struct{})
		for _, pt := range s.ParticipantTeams {
			if pt.EventID == act.ID {
				removed[pt.ID] = struct{}{}
			}
		}
		s.ParticipantTeams = keepWhere(s.ParticipantTeams, func(t roster.Team) bool { return t.EventID != act.ID })
		s.ReplacementRequests = keepWhere(s.ReplacementRequests, func(r replacement.Request) bool {
			_, gone := removed[r.RosterID]
			return !gone
		})

	case AddTeam:
		s.Teams = appendCopy(s.Teams, act.Team)
	case UpdateTeam:
		s.Teams = replaceBy(s.Teams, act.Team, func(t team.Team) string { return t.ID })
	case DeleteTeam:
		s.Teams = deleteBy(s.Teams, act.ID, func(t team.Team) string { return t.ID })

	case AddPlayer:
		s.Players = appendCopy(s.Players, act.Player)
	case AddPlayers:
		s.Players = appendCopy(s.Players, act.Players...)
	case UpdatePlayer:
		s.Players = replaceBy(s.Players, act.Player, func(p player.Player) string { return p.ID })
	case DeletePlayer:
		s.Players = deleteBy(s.Players, act.ID, func(p player.Player) string { return p.ID })
	case UpdatePlayerPoints:
		players := make([]player.Player, len(s.Players))
		copy(players, s.Players)
		for i := range players {
			if players[i].ID == act.PlayerID {
				players[i].Points = append([]int(nil), act.Points...)
				break
			}
		}
		s.Players = players

	case AddReplacementRequest:
		s.ReplacementRequests = prependCopy(s.ReplacementRequests, act.Request)
	case UpdateReplacementRequest:
		s.ReplacementRequests = replaceBy(s.ReplacementRequests, act.Request, func(r replacement.Request) string { return r.ID })

	case AddAnnouncement:
		s.Announcements = prependCopy(s.Announcements, act.Announcement)
	case DeleteAnnouncement:
		s.Announcements = deleteBy(s.Announcements, act.ID, func(a announcement.Announcement) string { return a.ID })

	case AddChatMessage:
		s.ChatMessages = appendCopy(s.ChatMessages, act.Message)

	case UpdateSiteSettings:
		s.Settings = s.Settings.Merge(act.Patch)

	case AddHistory:
		s.History = sortSeasons(appendCopy(s.History, act.Season))
	case UpdateHistory:
		s.History = sortSeasons(replaceBy(s.History, act.Season, func(h history.Season) string { return h.ID }))
	case DeleteHistory:
		s.History = deleteBy(s.History, act.ID, func(h history.Season) string { return h.ID })

	case AddParticipantTeam:
		s.ParticipantTeams = appendCopy(s.ParticipantTeams, act.Team)
	case UpdateParticipantTeam:
		s.ParticipantTeams = replaceBy(s.ParticipantTeams, act.Team, func(t roster.Team) string { return t.ID })

	case AddUser:
		s.Users = appendCopy(s.Users, act.User)
	case UpdateUser:
		s.Users = replaceBy(s.Users, act.User, func(u user.User) string { return u.ID })
	}

	return s
}

func appendCopy[T any](items []T, add ...T) []T {
	out := make([]T, 0, len(items)+len(add))
	out = append(out, items...)
	out = append(out, add...)
	return out
}

func prependCopy[T any](items []T, add T) []T {
	out := make([]T, 0, len(items)+1)
	out = append(out, add)
	out = append(out, items...)
	return out
}

func replaceBy[T any](items []T, updated T, key func(T) string) []T {
	out := make([]T, len(items))
	copy(out, items)
	id := key(updated)
	for i := range out {
		if key(out[i]) == id {
			out[i] = updated
		}
	}
	return out
}

func keepWhere[T any](items []T, keep func(T) bool) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		if keep(item) {
			out = append(out, item)
		}
	}
	return out
}

func deleteBy[T any](items []T, id string, key func(T) string) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		if key(item) == id {
			continue
		}
		out = append(out, item)
	}
	return out
}

func sortSeasons(seasons []history.Season) []history.Season {
	sort.SliceStable(seasons, func(i, j int) bool {
		return seasons[i].SortKey() < seasons[j].SortKey()
	})
	return seasons
}
