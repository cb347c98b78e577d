package event

import (
	"fmt"
	"time"
)

// LeagueType decides whether the foreign-player cap applies.
type LeagueType string

const (
	LeagueDomestic      LeagueType = "domestic"
	LeagueInternational LeagueType = "international"
)

var AllLeagueTypes = map[LeagueType]struct{}{
	LeagueDomestic:      {},
	LeagueInternational: {},
}

// Status classifies an event relative to its two deadlines.
type Status string

const (
	StatusUpcoming Status = "UPCOMING"
	StatusRunning  Status = "RUNNING"
	StatusFinished Status = "FINISHED"
	StatusNone     Status = "NO_EVENT"
)

// Event is one tournament instance with its own rule configuration.
type Event struct {
	ID                       string
	Name                     string
	Description              string
	RegistrationDeadline     time.Time
	TournamentEndTime        time.Time
	LeagueType               LeagueType
	MaxForeignPlayers        int // <=0 means no cap; only meaningful for domestic leagues
	TotalMatches             int
	MaxMatchesPerTeam        int
	MaxPlayersFromSingleTeam int
	MaxVipPlayers            int
	MaxReplacements          int
}

func (e Event) Validate() error {
	if e.ID == "" {
		return fmt.Errorf("event id is required")
	}
	if e.Name == "" {
		return fmt.Errorf("event name is required")
	}
	if _, ok := AllLeagueTypes[e.LeagueType]; !ok {
		return fmt.Errorf("invalid league type: %s", e.LeagueType)
	}
	if e.RegistrationDeadline.IsZero() || e.TournamentEndTime.IsZero() {
		return fmt.Errorf("event deadlines are required")
	}
	if !e.RegistrationDeadline.Before(e.TournamentEndTime) {
		return fmt.Errorf("registration deadline must be before tournament end")
	}

	return nil
}

// StatusAt classifies the event against now. Boundary instants belong to the
// later phase: the deadline itself is already RUNNING, the end already FINISHED.
func (e Event) StatusAt(now time.Time) Status {
	if now.Before(e.RegistrationDeadline) {
		return StatusUpcoming
	}
	if now.Before(e.TournamentEndTime) {
		return StatusRunning
	}
	return StatusFinished
}

func (e Event) IsRunningAt(now time.Time) bool {
	return e.StatusAt(now) == StatusRunning
}

// ForeignCapApplies reports whether the foreign-player limit is in force.
func (e Event) ForeignCapApplies() bool {
	return e.LeagueType == LeagueDomestic && e.MaxForeignPlayers > 0
}
