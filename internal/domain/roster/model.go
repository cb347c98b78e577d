package roster

import (
	"fmt"

	"github.com/cnfl/fantasy-cricket/internal/domain/player"
)

// RosterSize is the fixed XI size every fantasy draft must have.
const RosterSize = 11

// Slot is one drafted player. A VIP slot scores double for points earned
// while the player is on the roster.
type Slot struct {
	PlayerID string
	IsVip    bool
}

// Team is a participant's fantasy draft for one event.
//
// JoinHistory maps a player id to that player's cumulative point total at
// the moment they entered the roster. Original draftees have no entry (a
// zero baseline); players swapped in via an accepted replacement get their
// total-at-acceptance recorded so only later points count for them.
type Team struct {
	ID               string
	ParticipantID    string
	ParticipantName  string
	TeamName         string
	EventID          string
	Slots            []Slot
	ReplacementsLeft int
	ArchivedPoints   int
	JoinHistory      map[string]int
}

func (t Team) ValidateBasic() error {
	if t.ID == "" {
		return fmt.Errorf("roster id is required")
	}
	if t.ParticipantID == "" {
		return fmt.Errorf("participant id is required")
	}
	if t.TeamName == "" {
		return fmt.Errorf("team name is required")
	}
	if t.EventID == "" {
		return fmt.Errorf("event id is required")
	}
	if len(t.Slots) != RosterSize {
		return fmt.Errorf("roster must have exactly %d slots, got %d", RosterSize, len(t.Slots))
	}

	return nil
}

// SlotFor returns the slot holding the given player, if any.
func (t Team) SlotFor(playerID string) (Slot, bool) {
	for _, s := range t.Slots {
		if s.PlayerID == playerID {
			return s, true
		}
	}
	return Slot{}, false
}

// Baseline returns the join-history baseline for a player, zero when the
// player was an original draftee.
func (t Team) Baseline(playerID string) int {
	return t.JoinHistory[playerID]
}

// Clone deep-copies the roster so callers can mutate a draft safely.
func (t Team) Clone() Team {
	copied := t
	copied.Slots = append([]Slot(nil), t.Slots...)
	copied.JoinHistory = make(map[string]int, len(t.JoinHistory))
	for id, baseline := range t.JoinHistory {
		copied.JoinHistory[id] = baseline
	}
	return copied
}

// SwappedSlots returns a copy of the slots with outgoing replaced by
// incoming. The incoming slot never inherits VIP status.
func (t Team) SwappedSlots(outgoingID, incomingID string) []Slot {
	out := make([]Slot, 0, len(t.Slots))
	for _, s := range t.Slots {
		if s.PlayerID == outgoingID {
			out = append(out, Slot{PlayerID: incomingID, IsVip: false})
			continue
		}
		out = append(out, s)
	}
	return out
}

// Pool indexes an event's players by id for rule evaluation and scoring.
type Pool map[string]player.Player

func NewPool(players []player.Player) Pool {
	pool := make(Pool, len(players))
	for _, p := range players {
		pool[p.ID] = p
	}
	return pool
}
