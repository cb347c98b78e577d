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

// Action is the closed vocabulary of store mutations. Each action describes
// exactly one logical change; the reducer performs no cross-entity
// validation, that is the calling service's job.
type Action interface {
	isAction()
}

type CreateEvent struct{ Event event.Event }
type UpdateEvent struct{ Event event.Event }
type DeleteEvent struct{ ID string }

type AddTeam struct{ Team team.Team }
type UpdateTeam struct{ Team team.Team }
type DeleteTeam struct{ ID string }

type AddPlayer struct{ Player player.Player }
type AddPlayers struct{ Players []player.Player }
type UpdatePlayer struct{ Player player.Player }
type DeletePlayer struct{ ID string }
type UpdatePlayerPoints struct {
	PlayerID string
	Points   []int
}

type AddReplacementRequest struct{ Request replacement.Request }
type UpdateReplacementRequest struct{ Request replacement.Request }

type AddAnnouncement struct{ Announcement announcement.Announcement }
type DeleteAnnouncement struct{ ID string }

type AddChatMessage struct{ Message chat.Message }

type UpdateSiteSettings struct{ Patch sitesettings.Settings }

type AddHistory struct{ Season history.Season }
type UpdateHistory struct{ Season history.Season }
type DeleteHistory struct{ ID string }

type AddParticipantTeam struct{ Team roster.Team }
type UpdateParticipantTeam struct{ Team roster.Team }

type AddUser struct{ User user.User }
type UpdateUser struct{ User user.User }

func (CreateEvent) isAction()              {}
func (UpdateEvent) isAction()              {}
func (DeleteEvent) isAction()              {}
func (AddTeam) isAction()                  {}
func (UpdateTeam) isAction()               {}
func (DeleteTeam) isAction()               {}
func (AddPlayer) isAction()                {}
func (AddPlayers) isAction()               {}
func (UpdatePlayer) isAction()             {}
func (DeletePlayer) isAction()             {}
func (UpdatePlayerPoints) isAction()       {}
func (AddReplacementRequest) isAction()    {}
func (UpdateReplacementRequest) isAction() {}
func (AddAnnouncement) isAction()          {}
func (DeleteAnnouncement) isAction()       {}
func (AddChatMessage) isAction()           {}
func (UpdateSiteSettings) isAction()       {}
func (AddHistory) isAction()               {}
func (UpdateHistory) isAction()            {}
func (DeleteHistory) isAction()            {}
func (AddParticipantTeam) isAction()       {}
func (UpdateParticipantTeam) isAction()    {}
func (AddUser) isAction()                  {}
func (UpdateUser) isAction()               {}
