package usecase

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/cnfl/fantasy-cricket/internal/domain/player"
	"github.com/cnfl/fantasy-cricket/internal/domain/team"
	idgen "github.com/cnfl/fantasy-cricket/internal/platform/id"
	"github.com/cnfl/fantasy-cricket/internal/platform/logging"
	"github.com/cnfl/fantasy-cricket/internal/store"
)

// UpsertPlayerInput is the incoming payload for create/update player.
type UpsertPlayerInput struct {
	Name     string
	Category string
	Type     string
	TeamID   string
}

// ImportLineError pins a rejected bulk-import row to its 1-based line.
type ImportLineError struct {
	Line   int
	Reason string
}

func (e ImportLineError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Reason)
}

// ImportReport summarizes one bulk import: how many rows landed and which
// were rejected. Rejected rows never block accepted ones.
type ImportReport struct {
	Imported int
	Errors   []ImportLineError
}

type PlayerService struct {
	store  *store.Store
	idGen  idgen.Generator
	logger *logging.Logger
}

func NewPlayerService(st *store.Store, idGen idgen.Generator, logger *logging.Logger) *PlayerService {
	if logger == nil {
		logger = logging.Default()
	}

	return &PlayerService{store: st, idGen: idGen, logger: logger}
}

func (s *PlayerService) AddPlayer(ctx context.Context, eventID string, input UpsertPlayerInput) (player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "PlayerService.AddPlayer")
	defer span.End()

	snapshot := s.store.Snapshot()
	if _, ok := snapshot.EventByID(eventID); !ok {
		return player.Player{}, fmt.Errorf("%w: event=%s", ErrNotFound, eventID)
	}

	p, err := s.buildPlayer(snapshot, eventID, input)
	if err != nil {
		return player.Player{}, err
	}

	s.store.Dispatch(store.AddPlayer{Player: p})
	s.logger.InfoContext(ctx, "player added", "player_id", p.ID, "event_id", eventID)
	return p, nil
}

func (s *PlayerService) UpdatePlayer(ctx context.Context, playerID string, input UpsertPlayerInput) (player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "PlayerService.UpdatePlayer")
	defer span.End()

	snapshot := s.store.Snapshot()
	existing, ok := snapshot.PlayerByID(playerID)
	if !ok {
		return player.Player{}, fmt.Errorf("%w: player=%s", ErrNotFound, playerID)
	}

	p, err := s.buildPlayer(snapshot, existing.EventID, input)
	if err != nil {
		return player.Player{}, err
	}
	p.ID = existing.ID
	p.Points = existing.Points

	s.store.Dispatch(store.UpdatePlayer{Player: p})
	return p, nil
}

// DeletePlayer refuses while any fantasy roster still slots the player.
func (s *PlayerService) DeletePlayer(ctx context.Context, playerID string) error {
	ctx, span := startUsecaseSpan(ctx, "PlayerService.DeletePlayer")
	defer span.End()

	snapshot := s.store.Snapshot()
	if _, ok := snapshot.PlayerByID(playerID); !ok {
		return fmt.Errorf("%w: player=%s", ErrNotFound, playerID)
	}
	for _, pt := range snapshot.ParticipantTeams {
		if _, slotted := pt.SlotFor(playerID); slotted {
			return fmt.Errorf("%w: player is on a fantasy roster", ErrInvalidInput)
		}
	}

	s.store.Dispatch(store.DeletePlayer{ID: playerID})
	s.logger.InfoContext(ctx, "player deleted", "player_id", playerID)
	return nil
}

// UpdatePoints replaces a player's per-match point array. The array may be
// shorter than the event's total matches; missing matches count as zero.
func (s *PlayerService) UpdatePoints(ctx context.Context, playerID string, points []int) (player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "PlayerService.UpdatePoints")
	defer span.End()

	snapshot := s.store.Snapshot()
	p, ok := snapshot.PlayerByID(playerID)
	if !ok {
		return player.Player{}, fmt.Errorf("%w: player=%s", ErrNotFound, playerID)
	}
	e, ok := snapshot.EventByID(p.EventID)
	if !ok {
		return player.Player{}, fmt.Errorf("%w: event=%s", ErrNotFound, p.EventID)
	}
	if e.TotalMatches > 0 && len(points) > e.TotalMatches {
		return player.Player{}, fmt.Errorf("%w: %d match entries exceed event total of %d", ErrInvalidInput, len(points), e.TotalMatches)
	}

	updated := s.store.Dispatch(store.UpdatePlayerPoints{PlayerID: playerID, Points: points})
	p, _ = updated.PlayerByID(playerID)
	s.logger.InfoContext(ctx, "player points updated", "player_id", playerID, "matches", len(points))
	return p, nil
}

func (s *PlayerService) ListPlayersByEvent(ctx context.Context, eventID string) ([]player.Player, error) {
	_, span := startUsecaseSpan(ctx, "PlayerService.ListPlayersByEvent")
	defer span.End()

	snapshot := s.store.Snapshot()
	if _, ok := snapshot.EventByID(eventID); !ok {
		return nil, fmt.Errorf("%w: event=%s", ErrNotFound, eventID)
	}

	return snapshot.PlayersByEvent(eventID), nil
}

// ImportPlayers parses CSV rows of name, category, type and team name.
// Category, type and team name match case-insensitively. Rows that fail to
// parse are reported against their 1-based line number while valid rows
// still import.
func (s *PlayerService) ImportPlayers(ctx context.Context, eventID string, r io.Reader) (ImportReport, error) {
	ctx, span := startUsecaseSpan(ctx, "PlayerService.ImportPlayers")
	defer span.End()

	snapshot := s.store.Snapshot()
	if _, ok := snapshot.EventByID(eventID); !ok {
		return ImportReport{}, fmt.Errorf("%w: event=%s", ErrNotFound, eventID)
	}

	teamsByName := make(map[string]team.Team)
	for _, t := range snapshot.TeamsByEvent(eventID) {
		teamsByName[strings.ToLower(t.Name)] = t
	}

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	var report ImportReport
	var batch []player.Player

	for line := 1; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			report.Errors = append(report.Errors, ImportLineError{Line: line, Reason: "malformed csv row"})
			continue
		}
		if len(record) == 1 && strings.TrimSpace(record[0]) == "" {
			continue
		}
		if len(record) != 4 {
			report.Errors = append(report.Errors, ImportLineError{Line: line, Reason: fmt.Sprintf("expected 4 fields, got %d", len(record))})
			continue
		}

		name := strings.TrimSpace(record[0])
		if name == "" {
			report.Errors = append(report.Errors, ImportLineError{Line: line, Reason: "player name is required"})
			continue
		}
		category, ok := player.ParseCategory(record[1])
		if !ok {
			report.Errors = append(report.Errors, ImportLineError{Line: line, Reason: fmt.Sprintf("unknown category %q", strings.TrimSpace(record[1]))})
			continue
		}
		playerType, ok := player.ParseType(record[2])
		if !ok {
			report.Errors = append(report.Errors, ImportLineError{Line: line, Reason: fmt.Sprintf("unknown player type %q", strings.TrimSpace(record[2]))})
			continue
		}
		t, ok := teamsByName[strings.ToLower(strings.TrimSpace(record[3]))]
		if !ok {
			report.Errors = append(report.Errors, ImportLineError{Line: line, Reason: fmt.Sprintf("unknown team %q", strings.TrimSpace(record[3]))})
			continue
		}

		playerID, err := s.idGen.NewID()
		if err != nil {
			return ImportReport{}, fmt.Errorf("generate player id: %w", err)
		}

		batch = append(batch, player.Player{
			ID:       playerID,
			Name:     name,
			Category: category,
			Type:     playerType,
			TeamID:   t.ID,
			TeamName: t.Name,
			EventID:  eventID,
		})
	}

	if len(batch) > 0 {
		s.store.Dispatch(store.AddPlayers{Players: batch})
	}
	report.Imported = len(batch)

	s.logger.InfoContext(ctx, "players imported",
		"event_id", eventID,
		"imported", report.Imported,
		"rejected", len(report.Errors),
	)
	return report, nil
}

func (s *PlayerService) buildPlayer(snapshot store.Snapshot, eventID string, input UpsertPlayerInput) (player.Player, error) {
	category, ok := player.ParseCategory(input.Category)
	if !ok {
		return player.Player{}, fmt.Errorf("%w: unknown category %q", ErrInvalidInput, input.Category)
	}
	playerType, ok := player.ParseType(input.Type)
	if !ok {
		return player.Player{}, fmt.Errorf("%w: unknown player type %q", ErrInvalidInput, input.Type)
	}
	t, ok := snapshot.TeamByID(strings.TrimSpace(input.TeamID))
	if !ok || t.EventID != eventID {
		return player.Player{}, fmt.Errorf("%w: team=%s not in event", ErrNotFound, input.TeamID)
	}

	playerID, err := s.idGen.NewID()
	if err != nil {
		return player.Player{}, fmt.Errorf("generate player id: %w", err)
	}

	p := player.Player{
		ID:       playerID,
		Name:     strings.TrimSpace(input.Name),
		Category: category,
		Type:     playerType,
		TeamID:   t.ID,
		TeamName: t.Name,
		EventID:  eventID,
	}
	if err := p.Validate(); err != nil {
		return player.Player{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	return p, nil
}
