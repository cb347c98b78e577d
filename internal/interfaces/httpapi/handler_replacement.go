package httpapi

import (
	"net/http"

	"github.com/cnfl/fantasy-cricket/internal/usecase"
)

type submitReplacementRequest struct {
	RosterID         string `json:"rosterId" validate:"required"`
	OutgoingPlayerID string `json:"outgoingPlayerId" validate:"required"`
	IncomingPlayerID string `json:"incomingPlayerId" validate:"required"`
	Note             string `json:"note"`
}

func (h *Handler) SubmitReplacement(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SubmitReplacement")
	defer span.End()

	principal, ok := mustPrincipal(ctx, w)
	if !ok {
		return
	}

	var req submitReplacementRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	submitted, err := h.replacementService.Submit(ctx, principal, usecase.SubmitReplacementInput{
		RosterID:         req.RosterID,
		OutgoingPlayerID: req.OutgoingPlayerID,
		IncomingPlayerID: req.IncomingPlayerID,
		Note:             req.Note,
	})
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, replacementToDTO(submitted))
}

func (h *Handler) ListReplacements(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListReplacements")
	defer span.End()

	requests, err := h.replacementService.ListRequests(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	out := make([]replacementDTO, 0, len(requests))
	for _, req := range requests {
		out = append(out, replacementToDTO(req))
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) ListReplacementsByRoster(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListReplacementsByRoster")
	defer span.End()

	requests, err := h.replacementService.ListRequestsByRoster(ctx, r.PathValue("rosterID"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	out := make([]replacementDTO, 0, len(requests))
	for _, req := range requests {
		out = append(out, replacementToDTO(req))
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) AcceptReplacement(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AcceptReplacement")
	defer span.End()

	accepted, err := h.replacementService.Accept(ctx, r.PathValue("requestID"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, replacementToDTO(accepted))
}

type rejectReplacementRequest struct {
	Reason string `json:"reason" validate:"required"`
}

func (h *Handler) RejectReplacement(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RejectReplacement")
	defer span.End()

	var req rejectReplacementRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	rejected, err := h.replacementService.Reject(ctx, r.PathValue("requestID"), req.Reason)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, replacementToDTO(rejected))
}
