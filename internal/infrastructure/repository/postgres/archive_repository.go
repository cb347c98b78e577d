package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/cnfl/fantasy-cricket/internal/domain/history"
)

const (
	insertArchivedEntrySQL = `
		INSERT INTO archived_leaderboards (
			event_id, team_id, team_name, participant_id, participant_name, rank, points, archived_at
		) VALUES (
			:event_id, :team_id, :team_name, :participant_id, :participant_name, :rank, :points, :archived_at
		)`

	deleteArchivedBoardSQL = `DELETE FROM archived_leaderboards WHERE event_id = $1`

	selectArchivedBoardSQL = `
		SELECT id, event_id, team_id, team_name, participant_id, participant_name, rank, points, archived_at
		FROM archived_leaderboards
		WHERE event_id = $1
		ORDER BY rank`
)

// ArchiveRepository stores frozen event leaderboards in Postgres.
type ArchiveRepository struct {
	db *sqlx.DB
}

func NewArchiveRepository(db *sqlx.DB) *ArchiveRepository {
	return &ArchiveRepository{db: db}
}

// SaveLeaderboard replaces the board for one event atomically.
func (r *ArchiveRepository) SaveLeaderboard(ctx context.Context, eventID string, entries []history.ArchivedEntry) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin archive tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, deleteArchivedBoardSQL, eventID); err != nil {
		return fmt.Errorf("clear archived board: %w", err)
	}

	rows := make([]archivedEntryTableModel, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, archivedEntryTableModel{
			EventID:         e.EventID,
			TeamID:          e.TeamID,
			TeamName:        e.TeamName,
			ParticipantID:   e.ParticipantID,
			ParticipantName: e.ParticipantName,
			Rank:            e.Rank,
			Points:          e.Points,
			ArchivedAt:      e.ArchivedAt,
		})
	}
	if len(rows) > 0 {
		if _, err := tx.NamedExecContext(ctx, insertArchivedEntrySQL, rows); err != nil {
			return fmt.Errorf("insert archived entries: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit archive tx: %w", err)
	}

	return nil
}

func (r *ArchiveRepository) ListByEvent(ctx context.Context, eventID string) ([]history.ArchivedEntry, error) {
	var rows []archivedEntryTableModel
	if err := r.db.SelectContext(ctx, &rows, selectArchivedBoardSQL, eventID); err != nil {
		return nil, fmt.Errorf("select archived board: %w", err)
	}

	out := make([]history.ArchivedEntry, 0, len(rows))
	for _, row := range rows {
		out = append(out, history.ArchivedEntry{
			EventID:         row.EventID,
			TeamID:          row.TeamID,
			TeamName:        row.TeamName,
			ParticipantID:   row.ParticipantID,
			ParticipantName: row.ParticipantName,
			Rank:            row.Rank,
			Points:          row.Points,
			ArchivedAt:      row.ArchivedAt,
		})
	}

	return out, nil
}
