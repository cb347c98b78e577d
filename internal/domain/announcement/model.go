package announcement

import (
	"fmt"
	"time"
)

// Scope controls which surface shows the announcement.
type Scope string

const (
	ScopePublic      Scope = "public"
	ScopeParticipant Scope = "participant"
)

type Announcement struct {
	ID        string
	Message   string
	Scope     Scope
	CreatedAt time.Time
}

func (a Announcement) Validate() error {
	if a.ID == "" {
		return fmt.Errorf("announcement id is required")
	}
	if a.Message == "" {
		return fmt.Errorf("announcement message is required")
	}
	if a.Scope != ScopePublic && a.Scope != ScopeParticipant {
		return fmt.Errorf("invalid announcement scope: %s", a.Scope)
	}

	return nil
}
