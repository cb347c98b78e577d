package httpapi

import (
	"net/http"

	"github.com/cnfl/fantasy-cricket/internal/usecase"
)

func (h *Handler) ListSeasons(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListSeasons")
	defer span.End()

	seasons, err := h.historyService.ListSeasons(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	out := make([]seasonDTO, 0, len(seasons))
	for _, s := range seasons {
		out = append(out, seasonToDTO(s))
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

type upsertSeasonRequest struct {
	SeasonNumber     string `json:"seasonNumber" validate:"required"`
	TournamentName   string `json:"tournamentName" validate:"required"`
	Winner           string `json:"winner"`
	RunnersUp        string `json:"runnersUp"`
	ParticipantCount string `json:"participantCount"`
}

func (req upsertSeasonRequest) toInput() usecase.UpsertSeasonInput {
	return usecase.UpsertSeasonInput{
		SeasonNumber:     req.SeasonNumber,
		TournamentName:   req.TournamentName,
		Winner:           req.Winner,
		RunnersUp:        req.RunnersUp,
		ParticipantCount: req.ParticipantCount,
	}
}

func (h *Handler) AddSeason(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AddSeason")
	defer span.End()

	var req upsertSeasonRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	added, err := h.historyService.AddSeason(ctx, req.toInput())
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, seasonToDTO(added))
}

func (h *Handler) UpdateSeason(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateSeason")
	defer span.End()

	var req upsertSeasonRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	updated, err := h.historyService.UpdateSeason(ctx, r.PathValue("seasonID"), req.toInput())
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, seasonToDTO(updated))
}

func (h *Handler) DeleteSeason(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteSeason")
	defer span.End()

	if err := h.historyService.DeleteSeason(ctx, r.PathValue("seasonID")); err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (h *Handler) ArchiveFinishedEvents(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ArchiveFinishedEvents")
	defer span.End()

	archived, err := h.historyService.ArchiveFinishedEvents(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]int{"archived": archived})
}

func (h *Handler) GetArchivedLeaderboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetArchivedLeaderboard")
	defer span.End()

	entries, err := h.historyService.ArchivedLeaderboard(ctx, r.PathValue("eventID"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	out := make([]archivedEntryDTO, 0, len(entries))
	for _, e := range entries {
		out = append(out, archivedEntryToDTO(e))
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}
