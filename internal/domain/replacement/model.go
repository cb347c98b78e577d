package replacement

import (
	"fmt"
	"time"
)

// Status is the request lifecycle state. Pending requests transition exactly
// once to accepted or rejected and are immutable afterwards.
type Status string

const (
	StatusPending  Status = "pending"
	StatusAccepted Status = "accepted"
	StatusRejected Status = "rejected"
)

// Request is a participant's proposal to swap one rostered player for
// another, subject to admin decision.
type Request struct {
	ID               string
	RosterID         string
	ParticipantName  string
	OutgoingPlayerID string
	IncomingPlayerID string
	Note             string
	Status           Status
	Reason           string
	CreatedAt        time.Time
}

func (r Request) Validate() error {
	if r.ID == "" {
		return fmt.Errorf("request id is required")
	}
	if r.RosterID == "" {
		return fmt.Errorf("roster id is required")
	}
	if r.OutgoingPlayerID == "" || r.IncomingPlayerID == "" {
		return fmt.Errorf("outgoing and incoming player ids are required")
	}
	if r.OutgoingPlayerID == r.IncomingPlayerID {
		return fmt.Errorf("outgoing and incoming players must differ")
	}

	return nil
}

// Decided reports whether the request has reached a terminal state.
func (r Request) Decided() bool {
	return r.Status == StatusAccepted || r.Status == StatusRejected
}
