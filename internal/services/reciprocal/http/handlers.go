// Package http provides http transport for reciprocal resolution
package http

import (
	stdhttp "net/http"

	"callsift/internal/modkit/httpkit"
	"callsift/internal/services/reciprocal/domain"
	svc "callsift/internal/services/reciprocal/service"
)

// Register mounts reciprocal endpoints on the given router
func Register(r httpkit.Router, s *svc.Service) {
	h := &handlers{svc: s}

	httpkit.PostJSON[domain.ResolveInput](r, "/resolve", h.resolve)
	httpkit.PostJSON[domain.BatchInput](r, "/resolve/batch", h.resolveBatch)
}

type handlers struct{ svc *svc.Service }

// @Summary Resolve the counterpart's device/location for one directed event
// @Tags Reciprocal
// @Accept json
// @Produce json
// @Param payload body domain.ResolveInput true "Query"
// @Success 200 {object} domain.ResolveResult "ok"
// @Router /reciprocal/resolve [post]
func (h *handlers) resolve(r *stdhttp.Request, in domain.ResolveInput) (any, error) {
	return h.svc.Resolve(r.Context(), in)
}

// @Summary Resolve every directed event in a project
// @Tags Reciprocal
// @Accept json
// @Produce json
// @Param payload body domain.BatchInput true "Query"
// @Success 200 {object} domain.BatchReport "ok"
// @Router /reciprocal/resolve/batch [post]
func (h *handlers) resolveBatch(r *stdhttp.Request, in domain.BatchInput) (any, error) {
	return h.svc.ResolveAll(r.Context(), in)
}
