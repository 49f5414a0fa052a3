// Package http provides http transport for profile summaries
package http

import (
	stdhttp "net/http"

	"callsift/internal/modkit/httpkit"
	"callsift/internal/services/profile/domain"
	svc "callsift/internal/services/profile/service"
)

// Register mounts profile endpoints on the given router
func Register(r httpkit.Router, s *svc.Service) {
	h := &handlers{svc: s}

	httpkit.PostJSON[domain.SummaryInput](r, "/summary", h.summary)
}

type handlers struct{ svc *svc.Service }

// @Summary Contact, location and device summary for one subject
// @Tags Profile
// @Accept json
// @Produce json
// @Param payload body domain.SummaryInput true "Query"
// @Success 200 {object} domain.Summary "ok"
// @Router /profile/summary [post]
func (h *handlers) summary(r *stdhttp.Request, in domain.SummaryInput) (any, error) {
	return h.svc.Summarize(r.Context(), in)
}
