package event

import (
	"testing"
	"time"
)

func TestEventStatusAt(t *testing.T) {
	deadline := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	end := time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC)
	e := Event{
		ID:                   "evt-1",
		Name:                 "Season 5",
		LeagueType:           LeagueDomestic,
		RegistrationDeadline: deadline,
		TournamentEndTime:    end,
	}

	tests := []struct {
		name string
		now  time.Time
		want Status
	}{
		{"before deadline", deadline.Add(-time.Second), StatusUpcoming},
		{"at deadline", deadline, StatusRunning},
		{"between deadlines", deadline.Add(24 * time.Hour), StatusRunning},
		{"just before end", end.Add(-time.Second), StatusRunning},
		{"at end", end, StatusFinished},
		{"after end", end.Add(time.Hour), StatusFinished},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := e.StatusAt(tt.now); got != tt.want {
				t.Fatalf("StatusAt(%v) = %s, want %s", tt.now, got, tt.want)
			}
		})
	}
}

func TestEventValidate(t *testing.T) {
	deadline := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	valid := Event{
		ID:                   "evt-1",
		Name:                 "Season 5",
		LeagueType:           LeagueInternational,
		RegistrationDeadline: deadline,
		TournamentEndTime:    deadline.AddDate(0, 1, 0),
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("expected valid event, got %v", err)
	}

	inverted := valid
	inverted.RegistrationDeadline, inverted.TournamentEndTime = inverted.TournamentEndTime, inverted.RegistrationDeadline
	if err := inverted.Validate(); err == nil {
		t.Fatal("expected error for deadline after tournament end")
	}

	equal := valid
	equal.TournamentEndTime = equal.RegistrationDeadline
	if err := equal.Validate(); err == nil {
		t.Fatal("expected error for equal deadlines")
	}

	badType := valid
	badType.LeagueType = LeagueType("galactic")
	if err := badType.Validate(); err == nil {
		t.Fatal("expected error for unknown league type")
	}
}

func TestForeignCapApplies(t *testing.T) {
	e := Event{LeagueType: LeagueDomestic, MaxForeignPlayers: 4}
	if !e.ForeignCapApplies() {
		t.Fatal("expected foreign cap for domestic event with limit")
	}

	e.MaxForeignPlayers = 0
	if e.ForeignCapApplies() {
		t.Fatal("absent limit means unlimited foreign players")
	}

	e = Event{LeagueType: LeagueInternational, MaxForeignPlayers: 4}
	if e.ForeignCapApplies() {
		t.Fatal("international leagues never cap foreign players")
	}
}
