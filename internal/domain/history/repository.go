package history

import (
	"context"
	"time"
)

// ArchivedEntry is one leaderboard row frozen when an event finishes.
type ArchivedEntry struct {
	EventID         string
	TeamID          string
	TeamName        string
	ParticipantID   string
	ParticipantName string
	Rank            int
	Points          int
	ArchivedAt      time.Time
}

// ArchiveRepository persists finished-event leaderboards durably. The live
// store stays in memory; this is the only durable surface of the system.
type ArchiveRepository interface {
	SaveLeaderboard(ctx context.Context, eventID string, entries []ArchivedEntry) error
	ListByEvent(ctx context.Context, eventID string) ([]ArchivedEntry, error)
}
