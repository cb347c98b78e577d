package postgres

import "time"

type archivedEntryTableModel struct {
	ID              int64     `db:"id"`
	EventID         string    `db:"event_id"`
	TeamID          string    `db:"team_id"`
	TeamName        string    `db:"team_name"`
	ParticipantID   string    `db:"participant_id"`
	ParticipantName string    `db:"participant_name"`
	Rank            int       `db:"rank"`
	Points          int       `db:"points"`
	ArchivedAt      time.Time `db:"archived_at"`
}
