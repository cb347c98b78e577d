package roster

import (
	"testing"

	"github.com/cnfl/fantasy-cricket/internal/domain/player"
)

func scoringPool() Pool {
	return NewPool([]player.Player{
		{ID: "p1", Category: player.CategoryWicketkeeper, TeamID: "t1", Points: []int{10, 0, 25}},
		{ID: "p2", Category: player.CategoryBatsman, TeamID: "t1", Points: []int{5, 5}},
		{ID: "p3", Category: player.CategoryBowler, TeamID: "t2", Points: []int{0, 0, 0, 40}},
		{ID: "p4", Category: player.CategoryAllRounder, TeamID: "t2", Points: nil},
	})
}

func TestSlotContribution(t *testing.T) {
	pool := scoringPool()

	tests := []struct {
		name     string
		slot     Slot
		baseline int
		want     int
	}{
		{"plain slot, gaps count as zero", Slot{PlayerID: "p1"}, 0, 35},
		{"vip doubles points since joining", Slot{PlayerID: "p1", IsVip: true}, 0, 70},
		{"baseline subtracted before doubling", Slot{PlayerID: "p1", IsVip: true}, 10, 50},
		{"joined after scoring, nothing earned yet", Slot{PlayerID: "p3"}, 40, 0},
		{"empty points array", Slot{PlayerID: "p4"}, 0, 0},
		{"missing player contributes zero", Slot{PlayerID: "ghost"}, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SlotContribution(tt.slot, pool, tt.baseline); got != tt.want {
				t.Fatalf("SlotContribution = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestTeamTotal(t *testing.T) {
	pool := scoringPool()

	team := Team{
		ID:             "ft-1",
		ArchivedPoints: 12,
		Slots: []Slot{
			{PlayerID: "p1", IsVip: true}, // 35*2 = 70
			{PlayerID: "p2"},              // 10
			{PlayerID: "p3"},              // baseline 15 -> 25
		},
		JoinHistory: map[string]int{"p3": 15},
	}

	if got := TeamTotal(team, pool); got != 12+70+10+25 {
		t.Fatalf("TeamTotal = %d, want %d", got, 12+70+10+25)
	}
}

// Archived points carry a VIP slot's doubling exactly once: after archival
// the incoming slot scores at face value from its own baseline.
func TestTeamTotalNoDoubleDoubling(t *testing.T) {
	pool := scoringPool()

	// p1 was VIP, earned 35, archived as 70. p4 replaced it, baseline 0.
	team := Team{
		ID:             "ft-2",
		ArchivedPoints: 70,
		Slots: []Slot{
			{PlayerID: "p4"},
			{PlayerID: "p2"},
			{PlayerID: "p3"},
		},
		JoinHistory: map[string]int{"p4": 0},
	}

	if got := TeamTotal(team, pool); got != 70+0+10+40 {
		t.Fatalf("TeamTotal = %d, want %d", got, 70+0+10+40)
	}
}

func TestLeaderboard(t *testing.T) {
	pool := scoringPool()

	teams := []Team{
		{ID: "ft-b", TeamName: "Bravo", Slots: []Slot{{PlayerID: "p2"}}},               // 10
		{ID: "ft-a", TeamName: "Alpha", Slots: []Slot{{PlayerID: "p1"}}},               // 35
		{ID: "ft-c", TeamName: "Charlie", Slots: []Slot{{PlayerID: "p3"}}},             // 40
		{ID: "ft-d", TeamName: "Delta", ArchivedPoints: 10, Slots: []Slot{{PlayerID: "p4"}}}, // 10, ties ft-b
	}

	entries := Leaderboard(teams, pool)

	wantOrder := []string{"ft-c", "ft-a", "ft-b", "ft-d"}
	if len(entries) != len(wantOrder) {
		t.Fatalf("expected %d entries, got %d", len(wantOrder), len(entries))
	}
	for i, want := range wantOrder {
		if entries[i].TeamID != want {
			t.Fatalf("position %d: expected %s, got %s", i, want, entries[i].TeamID)
		}
		if entries[i].Rank != i+1 {
			t.Fatalf("position %d: expected dense rank %d, got %d", i, i+1, entries[i].Rank)
		}
	}

	// Tie at 10 points resolves by team id ascending.
	if entries[2].Points != entries[3].Points {
		t.Fatalf("fixture should tie at 10 points: %d vs %d", entries[2].Points, entries[3].Points)
	}
}
