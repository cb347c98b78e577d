package httpapi

import (
	"net/http"
)

type teamNameRequest struct {
	Name string `json:"name" validate:"required"`
}

func (h *Handler) AddTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AddTeam")
	defer span.End()

	var req teamNameRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	created, err := h.teamService.AddTeam(ctx, r.PathValue("eventID"), req.Name)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, teamToDTO(created))
}

func (h *Handler) RenameTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RenameTeam")
	defer span.End()

	var req teamNameRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	renamed, err := h.teamService.RenameTeam(ctx, r.PathValue("teamID"), req.Name)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, teamToDTO(renamed))
}

func (h *Handler) DeleteTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteTeam")
	defer span.End()

	if err := h.teamService.DeleteTeam(ctx, r.PathValue("teamID")); err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (h *Handler) ListTeamsByEvent(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTeamsByEvent")
	defer span.End()

	teams, err := h.teamService.ListTeamsByEvent(ctx, r.PathValue("eventID"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	out := make([]teamDTO, 0, len(teams))
	for _, t := range teams {
		out = append(out, teamToDTO(t))
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}
