// Package http provides http transport for movement anomaly detection
package http

import (
	stdhttp "net/http"

	"callsift/internal/modkit/httpkit"
	"callsift/internal/services/movement/domain"
	svc "callsift/internal/services/movement/service"
)

// Register mounts movement endpoints on the given router
func Register(r httpkit.Router, s *svc.Service) {
	h := &handlers{svc: s}

	httpkit.PostJSON[domain.DetectInput](r, "/anomalies", h.anomalies)
}

type handlers struct{ svc *svc.Service }

// @Summary Impossible-travel anomalies for one subject
// @Tags Movement
// @Accept json
// @Produce json
// @Param payload body domain.DetectInput true "Query"
// @Success 200 {object} domain.Report "ok"
// @Router /movement/anomalies [post]
func (h *handlers) anomalies(r *stdhttp.Request, in domain.DetectInput) (any, error) {
	return h.svc.Detect(r.Context(), in)
}
