package httpapi

import (
	"net/http"
)

func (h *Handler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetDashboard")
	defer span.End()

	principal, ok := mustPrincipal(ctx, w)
	if !ok {
		return
	}

	view, err := h.dashboardService.View(ctx, principal)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, dashboardToDTO(view))
}
