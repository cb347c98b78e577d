package chat

import (
	"fmt"
	"time"
)

// AdminPeerID is the well-known receiver/sender id for the admin side of a
// participant conversation.
const AdminPeerID = "admin"

// Message is one chat entry between the admin and a participant. IsRead is
// carried for the UI but nothing in the core consults it yet.
type Message struct {
	ID         string
	SenderID   string
	SenderName string
	ReceiverID string
	Body       string
	CreatedAt  time.Time
	IsRead     bool
}

func (m Message) Validate() error {
	if m.ID == "" {
		return fmt.Errorf("message id is required")
	}
	if m.SenderID == "" || m.ReceiverID == "" {
		return fmt.Errorf("sender and receiver ids are required")
	}
	if m.Body == "" {
		return fmt.Errorf("message body is required")
	}

	return nil
}

// ThreadKey normalizes a conversation to the participant side, so admin and
// participant views read the same thread.
func (m Message) ThreadKey() string {
	if m.SenderID == AdminPeerID {
		return m.ReceiverID
	}
	return m.SenderID
}
