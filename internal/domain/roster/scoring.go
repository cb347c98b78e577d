package roster

import "sort"

// SlotContribution computes one slot's points earned since the player
// joined the roster: the player's cumulative total minus the join baseline,
// doubled for VIP slots. Archived points are never re-doubled here; they
// were multiplied once at archival time.
func SlotContribution(slot Slot, pool Pool, baseline int) int {
	p, ok := pool[slot.PlayerID]
	if !ok {
		return 0
	}

	since := p.TotalPoints() - baseline
	if slot.IsVip {
		return since * 2
	}
	return since
}

// TeamTotal is the single source of truth for a fantasy team's score:
// archived points plus every current slot's contribution since joining.
func TeamTotal(t Team, pool Pool) int {
	total := t.ArchivedPoints
	for _, slot := range t.Slots {
		total += SlotContribution(slot, pool, t.Baseline(slot.PlayerID))
	}
	return total
}

// Entry is one leaderboard row.
type Entry struct {
	Rank            int
	TeamID          string
	TeamName        string
	ParticipantID   string
	ParticipantName string
	Points          int
}

// Leaderboard ranks fantasy teams by total points descending with dense
// ranks 1..N. Equal scores tie-break on team id ascending so ordering is
// reproducible.
func Leaderboard(teams []Team, pool Pool) []Entry {
	entries := make([]Entry, 0, len(teams))
	for _, t := range teams {
		entries = append(entries, Entry{
			TeamID:          t.ID,
			TeamName:        t.TeamName,
			ParticipantID:   t.ParticipantID,
			ParticipantName: t.ParticipantName,
			Points:          TeamTotal(t, pool),
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Points != entries[j].Points {
			return entries[i].Points > entries[j].Points
		}
		return entries[i].TeamID < entries[j].TeamID
	})

	for i := range entries {
		entries[i].Rank = i + 1
	}

	return entries
}
