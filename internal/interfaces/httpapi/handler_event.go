package httpapi

import (
	"fmt"
	"net/http"
	"time"

	"github.com/cnfl/fantasy-cricket/internal/domain/event"
	"github.com/cnfl/fantasy-cricket/internal/usecase"
)

type upsertEventRequest struct {
	Name                     string `json:"name" validate:"required"`
	Description              string `json:"description"`
	RegistrationDeadline     string `json:"registrationDeadline" validate:"required"`
	TournamentEndTime        string `json:"tournamentEndTime" validate:"required"`
	LeagueType               string `json:"leagueType" validate:"required,oneof=domestic international"`
	MaxForeignPlayers        int    `json:"maxForeignPlayers" validate:"min=0"`
	TotalMatches             int    `json:"totalMatches" validate:"min=0"`
	MaxMatchesPerTeam        int    `json:"maxMatchesPerTeam" validate:"min=0"`
	MaxPlayersFromSingleTeam int    `json:"maxPlayersFromSingleTeam" validate:"required,min=1"`
	MaxVipPlayers            int    `json:"maxVipPlayers" validate:"required,min=1"`
	MaxReplacements          int    `json:"maxReplacements" validate:"min=0"`
}

func (req upsertEventRequest) toInput() (usecase.UpsertEventInput, error) {
	deadline, err := time.Parse(time.RFC3339, req.RegistrationDeadline)
	if err != nil {
		return usecase.UpsertEventInput{}, fmt.Errorf("%w: registrationDeadline must be RFC3339: %v", usecase.ErrInvalidInput, err)
	}
	end, err := time.Parse(time.RFC3339, req.TournamentEndTime)
	if err != nil {
		return usecase.UpsertEventInput{}, fmt.Errorf("%w: tournamentEndTime must be RFC3339: %v", usecase.ErrInvalidInput, err)
	}

	return usecase.UpsertEventInput{
		Name:                     req.Name,
		Description:              req.Description,
		RegistrationDeadline:     deadline,
		TournamentEndTime:        end,
		LeagueType:               event.LeagueType(req.LeagueType),
		MaxForeignPlayers:        req.MaxForeignPlayers,
		TotalMatches:             req.TotalMatches,
		MaxMatchesPerTeam:        req.MaxMatchesPerTeam,
		MaxPlayersFromSingleTeam: req.MaxPlayersFromSingleTeam,
		MaxVipPlayers:            req.MaxVipPlayers,
		MaxReplacements:          req.MaxReplacements,
	}, nil
}

func (h *Handler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateEvent")
	defer span.End()

	var req upsertEventRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	input, err := req.toInput()
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	created, err := h.eventService.CreateEvent(ctx, input)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	view, err := h.eventService.GetEvent(ctx, created.ID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusCreated, eventToDTO(view))
}

func (h *Handler) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateEvent")
	defer span.End()

	var req upsertEventRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	input, err := req.toInput()
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	eventID := r.PathValue("eventID")
	if _, err := h.eventService.UpdateEvent(ctx, eventID, input); err != nil {
		writeError(ctx, w, err)
		return
	}

	view, err := h.eventService.GetEvent(ctx, eventID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, eventToDTO(view))
}

func (h *Handler) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteEvent")
	defer span.End()

	if err := h.eventService.DeleteEvent(ctx, r.PathValue("eventID")); err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (h *Handler) GetEvent(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetEvent")
	defer span.End()

	view, err := h.eventService.GetEvent(ctx, r.PathValue("eventID"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, eventToDTO(view))
}

func (h *Handler) ListEvents(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListEvents")
	defer span.End()

	views, err := h.eventService.ListEvents(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	out := make([]eventDTO, 0, len(views))
	for _, view := range views {
		out = append(out, eventToDTO(view))
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}
