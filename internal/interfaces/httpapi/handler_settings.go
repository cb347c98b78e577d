package httpapi

import (
	"net/http"
)

func (h *Handler) GetSiteSettings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetSiteSettings")
	defer span.End()

	settings, err := h.settingsService.GetSettings(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, settingsToDTO(settings))
}

func (h *Handler) UpdateSiteSettings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateSiteSettings")
	defer span.End()

	var req siteSettingsDTO
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	merged, err := h.settingsService.UpdateSettings(ctx, settingsFromDTO(req))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, settingsToDTO(merged))
}
