package store

import (
	"github.com/cnfl/fantasy-cricket/internal/domain/sitesettings"
	"github.com/cnfl/fantasy-cricket/internal/domain/user"
)

const BootstrapAdminID = "user-admin"

// Seed builds the initial snapshot: the fixed bootstrap admin account and
// default site presentation. Everything else starts empty and is created
// through dispatched actions.
func Seed() Snapshot {
	heroTitle := "Fantasy Cricket League"
	heroHighlighted := "Draft. Compete. Win."
	showTeams := false

	return Snapshot{
		Users: []user.User{
			{
				ID:       BootstrapAdminID,
				FullName: "League Admin",
				Email:    "admin@cnfl.local",
				Password: "admin123",
				Role:     user.RoleAdmin,
			},
		},
		Settings: sitesettings.Settings{
			HeroTitle:            &heroTitle,
			HeroHighlightedText:  &heroHighlighted,
			ShowParticipantTeams: &showTeams,
		},
	}
}
