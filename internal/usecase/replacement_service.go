package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cnfl/fantasy-cricket/internal/domain/replacement"
	"github.com/cnfl/fantasy-cricket/internal/domain/roster"
	"github.com/cnfl/fantasy-cricket/internal/domain/user"
	idgen "github.com/cnfl/fantasy-cricket/internal/platform/id"
	"github.com/cnfl/fantasy-cricket/internal/platform/logging"
	"github.com/cnfl/fantasy-cricket/internal/store"
)

// SubmitReplacementInput is a participant's swap proposal.
type SubmitReplacementInput struct {
	RosterID         string
	OutgoingPlayerID string
	IncomingPlayerID string
	Note             string
}

// ReplacementService runs the request lifecycle: participants submit swap
// proposals while the tournament runs, admins accept or reject them.
// Acceptance is where roster history is written: the outgoing player's
// earnings get archived, the incoming player starts from a fresh baseline.
type ReplacementService struct {
	store    *store.Store
	idGen    idgen.Generator
	logger   *logging.Logger
	notifier Notifier
	now      func() time.Time
}

func NewReplacementService(st *store.Store, idGen idgen.Generator, logger *logging.Logger, notifier Notifier) *ReplacementService {
	if logger == nil {
		logger = logging.Default()
	}
	if notifier == nil {
		notifier = NopNotifier()
	}

	return &ReplacementService{
		store:    st,
		idGen:    idGen,
		logger:   logger,
		notifier: notifier,
		now:      time.Now,
	}
}

// Submit files a swap proposal. The roster must belong to the actor, the
// event must be running, the roster must have replacements left, and the
// post-swap XI must still satisfy the composition rules.
func (s *ReplacementService) Submit(ctx context.Context, actor user.Principal, input SubmitReplacementInput) (replacement.Request, error) {
	ctx, span := startUsecaseSpan(ctx, "ReplacementService.Submit")
	defer span.End()

	requestID, err := s.idGen.NewID()
	if err != nil {
		return replacement.Request{}, fmt.Errorf("generate request id: %w", err)
	}

	var req replacement.Request
	_, err = s.store.Update(func(snapshot store.Snapshot) (store.Snapshot, error) {
		team, ok := snapshot.ParticipantTeamByID(input.RosterID)
		if !ok {
			return snapshot, fmt.Errorf("%w: roster=%s", ErrNotFound, input.RosterID)
		}
		if team.ParticipantID != actor.UserID {
			return snapshot, fmt.Errorf("%w: roster belongs to another participant", ErrUnauthorized)
		}

		if err := s.checkSwap(snapshot, team, input.OutgoingPlayerID, input.IncomingPlayerID); err != nil {
			return snapshot, err
		}

		req = replacement.Request{
			ID:               requestID,
			RosterID:         team.ID,
			ParticipantName:  team.ParticipantName,
			OutgoingPlayerID: input.OutgoingPlayerID,
			IncomingPlayerID: input.IncomingPlayerID,
			Note:             strings.TrimSpace(input.Note),
			Status:           replacement.StatusPending,
			CreatedAt:        s.now().UTC(),
		}
		if err := req.Validate(); err != nil {
			return snapshot, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}

		return store.Apply(snapshot, store.AddReplacementRequest{Request: req}), nil
	})
	if err != nil {
		return replacement.Request{}, err
	}

	s.logger.InfoContext(ctx, "replacement requested",
		"request_id", req.ID,
		"roster_id", req.RosterID,
		"outgoing", req.OutgoingPlayerID,
		"incoming", req.IncomingPlayerID,
	)
	s.notifier.Publish(ctx, "replacement.submitted", req)
	return req, nil
}

// Accept applies a pending swap. The outgoing player's points since joining
// are frozen into the roster's archive, doubled when the outgoing slot was
// VIP; the incoming player enters a plain slot with today's total as its
// baseline; the roster loses one replacement credit.
func (s *ReplacementService) Accept(ctx context.Context, requestID string) (replacement.Request, error) {
	ctx, span := startUsecaseSpan(ctx, "ReplacementService.Accept")
	defer span.End()

	var (
		decided  replacement.Request
		rosterID string
		archived int
		credits  int
	)
	_, err := s.store.Update(func(snapshot store.Snapshot) (store.Snapshot, error) {
		req, ok := snapshot.ReplacementRequestByID(requestID)
		if !ok {
			return snapshot, fmt.Errorf("%w: request=%s", ErrNotFound, requestID)
		}
		if req.Decided() {
			return snapshot, fmt.Errorf("%w: request already %s", ErrInvalidInput, req.Status)
		}

		team, ok := snapshot.ParticipantTeamByID(req.RosterID)
		if !ok {
			return snapshot, fmt.Errorf("%w: roster=%s", ErrNotFound, req.RosterID)
		}

		// State may have moved since submission, re-check before committing.
		if err := s.checkSwap(snapshot, team, req.OutgoingPlayerID, req.IncomingPlayerID); err != nil {
			return snapshot, err
		}

		pool := snapshot.PoolByEvent(team.EventID)
		outgoingSlot, _ := team.SlotFor(req.OutgoingPlayerID)
		archived = roster.SlotContribution(outgoingSlot, pool, team.Baseline(req.OutgoingPlayerID))
		incomingTotal := pool[req.IncomingPlayerID].TotalPoints()

		updated := team.Clone()
		updated.ArchivedPoints += archived
		updated.Slots = updated.SwappedSlots(req.OutgoingPlayerID, req.IncomingPlayerID)
		delete(updated.JoinHistory, req.OutgoingPlayerID)
		updated.JoinHistory[req.IncomingPlayerID] = incomingTotal
		updated.ReplacementsLeft--

		decided = req
		decided.Status = replacement.StatusAccepted
		rosterID = team.ID
		credits = updated.ReplacementsLeft

		snapshot = store.Apply(snapshot, store.UpdateParticipantTeam{Team: updated})
		return store.Apply(snapshot, store.UpdateReplacementRequest{Request: decided}), nil
	})
	if err != nil {
		return replacement.Request{}, err
	}

	s.logger.InfoContext(ctx, "replacement accepted",
		"request_id", decided.ID,
		"roster_id", rosterID,
		"archived_points", archived,
		"replacements_left", credits,
	)
	s.notifier.Publish(ctx, "replacement.accepted", decided)
	return decided, nil
}

// Reject declines a pending swap with a mandatory reason.
func (s *ReplacementService) Reject(ctx context.Context, requestID, reason string) (replacement.Request, error) {
	ctx, span := startUsecaseSpan(ctx, "ReplacementService.Reject")
	defer span.End()

	reason = strings.TrimSpace(reason)
	if reason == "" {
		return replacement.Request{}, fmt.Errorf("%w: rejection reason is required", ErrInvalidInput)
	}

	var req replacement.Request
	_, err := s.store.Update(func(snapshot store.Snapshot) (store.Snapshot, error) {
		found, ok := snapshot.ReplacementRequestByID(requestID)
		if !ok {
			return snapshot, fmt.Errorf("%w: request=%s", ErrNotFound, requestID)
		}
		if found.Decided() {
			return snapshot, fmt.Errorf("%w: request already %s", ErrInvalidInput, found.Status)
		}

		found.Status = replacement.StatusRejected
		found.Reason = reason
		req = found
		return store.Apply(snapshot, store.UpdateReplacementRequest{Request: req}), nil
	})
	if err != nil {
		return replacement.Request{}, err
	}

	s.logger.InfoContext(ctx, "replacement rejected", "request_id", req.ID, "reason", reason)
	s.notifier.Publish(ctx, "replacement.rejected", req)
	return req, nil
}

// ListRequests returns every request newest first, admin use.
func (s *ReplacementService) ListRequests(ctx context.Context) ([]replacement.Request, error) {
	_, span := startUsecaseSpan(ctx, "ReplacementService.ListRequests")
	defer span.End()

	snapshot := s.store.Snapshot()
	out := make([]replacement.Request, len(snapshot.ReplacementRequests))
	copy(out, snapshot.ReplacementRequests)
	return out, nil
}

// ListRequestsByRoster returns one roster's requests newest first.
func (s *ReplacementService) ListRequestsByRoster(ctx context.Context, rosterID string) ([]replacement.Request, error) {
	_, span := startUsecaseSpan(ctx, "ReplacementService.ListRequestsByRoster")
	defer span.End()

	snapshot := s.store.Snapshot()
	out := make([]replacement.Request, 0)
	for _, r := range snapshot.ReplacementRequests {
		if r.RosterID == rosterID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *ReplacementService) checkSwap(snapshot store.Snapshot, team roster.Team, outgoingID, incomingID string) error {
	e, ok := snapshot.EventByID(team.EventID)
	if !ok {
		return fmt.Errorf("%w: event=%s", ErrNotFound, team.EventID)
	}
	if !e.IsRunningAt(s.now()) {
		return fmt.Errorf("%w: replacements are only allowed while the tournament runs", ErrInvalidInput)
	}
	if team.ReplacementsLeft <= 0 {
		return fmt.Errorf("%w: no replacements left", ErrInvalidInput)
	}
	if _, onRoster := team.SlotFor(outgoingID); !onRoster {
		return fmt.Errorf("%w: outgoing player is not on the roster", ErrInvalidInput)
	}
	if _, onRoster := team.SlotFor(incomingID); onRoster {
		return fmt.Errorf("%w: incoming player is already on the roster", ErrInvalidInput)
	}

	pool := snapshot.PoolByEvent(team.EventID)
	if _, exists := pool[incomingID]; !exists {
		return fmt.Errorf("%w: incoming player=%s", ErrNotFound, incomingID)
	}

	swapped := team.SwappedSlots(outgoingID, incomingID)
	if err := roster.ValidateSwap(swapped, pool, roster.RulesForEvent(e)); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	return nil
}
