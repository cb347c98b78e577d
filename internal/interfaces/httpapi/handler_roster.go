package httpapi

import (
	"fmt"
	"net/http"

	"github.com/cnfl/fantasy-cricket/internal/usecase"
)

type draftRequest struct {
	EventID  string    `json:"eventId" validate:"required"`
	TeamName string    `json:"teamName" validate:"required"`
	Slots    []slotDTO `json:"slots" validate:"required,dive"`
}

type validateDraftRequest struct {
	Slots []slotDTO `json:"slots" validate:"required,dive"`
}

func (h *Handler) ValidateDraft(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ValidateDraft")
	defer span.End()

	var req validateDraftRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	report, err := h.rosterService.ValidateDraft(ctx, r.PathValue("eventID"), slotsFromDTO(req.Slots))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, reportToDTO(report))
}

func (h *Handler) CreateRoster(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateRoster")
	defer span.End()

	principal, ok := mustPrincipal(ctx, w)
	if !ok {
		return
	}

	var req draftRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	created, err := h.rosterService.CreateRoster(ctx, principal, usecase.DraftInput{
		EventID:  req.EventID,
		TeamName: req.TeamName,
		Slots:    slotsFromDTO(req.Slots),
	})
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, rosterToDTO(created))
}

func (h *Handler) ReviseRoster(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ReviseRoster")
	defer span.End()

	principal, ok := mustPrincipal(ctx, w)
	if !ok {
		return
	}

	var req draftRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	revised, err := h.rosterService.ReviseRoster(ctx, principal, r.PathValue("rosterID"), usecase.DraftInput{
		EventID:  req.EventID,
		TeamName: req.TeamName,
		Slots:    slotsFromDTO(req.Slots),
	})
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, rosterToDTO(revised))
}

func (h *Handler) ListMyRosters(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMyRosters")
	defer span.End()

	principal, ok := mustPrincipal(ctx, w)
	if !ok {
		return
	}

	rosters, err := h.rosterService.ListRostersByParticipant(ctx, principal.UserID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	out := make([]rosterDTO, 0, len(rosters))
	for _, t := range rosters {
		out = append(out, rosterToDTO(t))
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) GetRoster(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetRoster")
	defer span.End()

	principal, ok := mustPrincipal(ctx, w)
	if !ok {
		return
	}

	found, err := h.rosterService.GetRoster(ctx, r.PathValue("rosterID"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	if !principal.IsAdmin() && found.ParticipantID != principal.UserID {
		writeError(ctx, w, fmt.Errorf("%w: roster belongs to another participant", usecase.ErrUnauthorized))
		return
	}

	writeSuccess(ctx, w, http.StatusOK, rosterToDTO(found))
}

func (h *Handler) ListRostersByEvent(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListRostersByEvent")
	defer span.End()

	principal, ok := mustPrincipal(ctx, w)
	if !ok {
		return
	}

	rosters, err := h.rosterService.ListRostersByEvent(ctx, principal, r.PathValue("eventID"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	out := make([]rosterDTO, 0, len(rosters))
	for _, t := range rosters {
		out = append(out, rosterToDTO(t))
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetLeaderboard")
	defer span.End()

	board, err := h.scoringService.Leaderboard(ctx, r.PathValue("eventID"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, leaderboardToDTO(board))
}
