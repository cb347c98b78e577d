package httpapi

import (
	"net/http"

	"github.com/cnfl/fantasy-cricket/internal/domain/announcement"
	"github.com/cnfl/fantasy-cricket/internal/domain/chat"
)

func (h *Handler) ListPublicAnnouncements(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListPublicAnnouncements")
	defer span.End()

	items, err := h.communicationService.ListAnnouncements(ctx, false)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, announcementsToDTO(items))
}

func (h *Handler) ListMyAnnouncements(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMyAnnouncements")
	defer span.End()

	items, err := h.communicationService.ListAnnouncements(ctx, true)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, announcementsToDTO(items))
}

func announcementsToDTO(items []announcement.Announcement) []announcementDTO {
	out := make([]announcementDTO, 0, len(items))
	for _, a := range items {
		out = append(out, announcementToDTO(a))
	}
	return out
}

type postAnnouncementRequest struct {
	Message string `json:"message" validate:"required"`
	Scope   string `json:"scope" validate:"required,oneof=public participant"`
}

func (h *Handler) PostAnnouncement(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.PostAnnouncement")
	defer span.End()

	var req postAnnouncementRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	posted, err := h.communicationService.PostAnnouncement(ctx, req.Message, announcement.Scope(req.Scope))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, announcementToDTO(posted))
}

func (h *Handler) DeleteAnnouncement(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteAnnouncement")
	defer span.End()

	if err := h.communicationService.DeleteAnnouncement(ctx, r.PathValue("announcementID")); err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "deleted"})
}

type sendChatRequest struct {
	Body string `json:"body" validate:"required"`
}

func (h *Handler) GetMyChatThread(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMyChatThread")
	defer span.End()

	principal, ok := mustPrincipal(ctx, w)
	if !ok {
		return
	}

	messages, err := h.communicationService.Thread(ctx, principal, principal.UserID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, messagesToDTO(messages))
}

func (h *Handler) SendChatMessage(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SendChatMessage")
	defer span.End()

	principal, ok := mustPrincipal(ctx, w)
	if !ok {
		return
	}

	var req sendChatRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	sent, err := h.communicationService.SendMessage(ctx, principal, chat.AdminPeerID, req.Body)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, chatMessageToDTO(sent))
}

func (h *Handler) ListChatThreads(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListChatThreads")
	defer span.End()

	threads, err := h.communicationService.Threads(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, threads)
}

func (h *Handler) GetChatThread(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetChatThread")
	defer span.End()

	principal, ok := mustPrincipal(ctx, w)
	if !ok {
		return
	}

	messages, err := h.communicationService.Thread(ctx, principal, r.PathValue("participantID"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, messagesToDTO(messages))
}

func (h *Handler) SendChatToParticipant(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SendChatToParticipant")
	defer span.End()

	principal, ok := mustPrincipal(ctx, w)
	if !ok {
		return
	}

	var req sendChatRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	sent, err := h.communicationService.SendMessage(ctx, principal, r.PathValue("participantID"), req.Body)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, chatMessageToDTO(sent))
}

func messagesToDTO(messages []chat.Message) []chatMessageDTO {
	out := make([]chatMessageDTO, 0, len(messages))
	for _, m := range messages {
		out = append(out, chatMessageToDTO(m))
	}
	return out
}
