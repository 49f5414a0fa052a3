// Package http provides http transport for burst analysis
package http

import (
	stdhttp "net/http"

	"callsift/internal/modkit/httpkit"
	"callsift/internal/services/burst/domain"
	svc "callsift/internal/services/burst/service"
)

// Register mounts burst endpoints on the given router
func Register(r httpkit.Router, s *svc.Service) {
	h := &handlers{svc: s}

	httpkit.PostJSON[domain.AnalyzeInput](r, "/analyze", h.analyze)
}

type handlers struct{ svc *svc.Service }

// @Summary Before/critical/after burst partition around a reference instant
// @Tags Burst
// @Accept json
// @Produce json
// @Param payload body domain.AnalyzeInput true "Query"
// @Success 200 {object} domain.Report "ok"
// @Router /burst/analyze [post]
func (h *handlers) analyze(r *stdhttp.Request, in domain.AnalyzeInput) (any, error) {
	return h.svc.Analyze(r.Context(), in)
}
