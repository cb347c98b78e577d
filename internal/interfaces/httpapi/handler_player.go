package httpapi

import (
	"net/http"

	"github.com/cnfl/fantasy-cricket/internal/usecase"
)

type upsertPlayerRequest struct {
	Name     string `json:"name" validate:"required"`
	Category string `json:"category" validate:"required"`
	Type     string `json:"type" validate:"required"`
	TeamID   string `json:"teamId" validate:"required"`
}

func (req upsertPlayerRequest) toInput() usecase.UpsertPlayerInput {
	return usecase.UpsertPlayerInput{
		Name:     req.Name,
		Category: req.Category,
		Type:     req.Type,
		TeamID:   req.TeamID,
	}
}

func (h *Handler) AddPlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AddPlayer")
	defer span.End()

	var req upsertPlayerRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	created, err := h.playerService.AddPlayer(ctx, r.PathValue("eventID"), req.toInput())
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, playerToDTO(created))
}

type importReportDTO struct {
	Imported int                  `json:"imported"`
	Errors   []importLineErrorDTO `json:"errors"`
}

type importLineErrorDTO struct {
	Line   int    `json:"line"`
	Reason string `json:"reason"`
}

// ImportPlayers takes a raw CSV body, one player per line:
// name,category,type,teamName.
func (h *Handler) ImportPlayers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ImportPlayers")
	defer span.End()

	report, err := h.playerService.ImportPlayers(ctx, r.PathValue("eventID"), r.Body)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	dto := importReportDTO{Imported: report.Imported, Errors: make([]importLineErrorDTO, 0, len(report.Errors))}
	for _, lineErr := range report.Errors {
		dto.Errors = append(dto.Errors, importLineErrorDTO{Line: lineErr.Line, Reason: lineErr.Reason})
	}
	writeSuccess(ctx, w, http.StatusOK, dto)
}

func (h *Handler) UpdatePlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdatePlayer")
	defer span.End()

	var req upsertPlayerRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	updated, err := h.playerService.UpdatePlayer(ctx, r.PathValue("playerID"), req.toInput())
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, playerToDTO(updated))
}

type updatePointsRequest struct {
	Points []int `json:"points" validate:"required"`
}

func (h *Handler) UpdatePlayerPoints(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdatePlayerPoints")
	defer span.End()

	var req updatePointsRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	updated, err := h.playerService.UpdatePoints(ctx, r.PathValue("playerID"), req.Points)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, playerToDTO(updated))
}

func (h *Handler) DeletePlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeletePlayer")
	defer span.End()

	if err := h.playerService.DeletePlayer(ctx, r.PathValue("playerID")); err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (h *Handler) ListPlayersByEvent(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListPlayersByEvent")
	defer span.End()

	players, err := h.playerService.ListPlayersByEvent(ctx, r.PathValue("eventID"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	out := make([]playerDTO, 0, len(players))
	for _, p := range players {
		out = append(out, playerToDTO(p))
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}
