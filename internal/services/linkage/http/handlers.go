// Package http provides http transport for entity linkage
package http

import (
	stdhttp "net/http"

	"callsift/internal/modkit/httpkit"
	"callsift/internal/services/linkage/domain"
	svc "callsift/internal/services/linkage/service"
)

// Register mounts linkage endpoints on the given router
func Register(r httpkit.Router, s *svc.Service) {
	h := &handlers{svc: s}

	httpkit.PostJSON[domain.Input](r, "/devices", h.devices)
	httpkit.PostJSON[domain.Input](r, "/names", h.names)
	httpkit.PostJSON[domain.Input](r, "/ids", h.ids)
}

type handlers struct{ svc *svc.Service }

// @Summary Devices shared by more than one line
// @Tags Linkage
// @Accept json
// @Produce json
// @Param payload body domain.Input true "Query"
// @Success 200 {object} domain.Report "ok"
// @Router /linkage/devices [post]
func (h *handlers) devices(r *stdhttp.Request, in domain.Input) (any, error) {
	return h.svc.CommonDevices(r.Context(), in)
}

// @Summary Subscriber names shared by more than one line
// @Tags Linkage
// @Accept json
// @Produce json
// @Param payload body domain.Input true "Query"
// @Success 200 {object} domain.Report "ok"
// @Router /linkage/names [post]
func (h *handlers) names(r *stdhttp.Request, in domain.Input) (any, error) {
	return h.svc.CommonNames(r.Context(), in)
}

// @Summary National identifiers shared by more than one line
// @Tags Linkage
// @Accept json
// @Produce json
// @Param payload body domain.Input true "Query"
// @Success 200 {object} domain.Report "ok"
// @Router /linkage/ids [post]
func (h *handlers) ids(r *stdhttp.Request, in domain.Input) (any, error) {
	return h.svc.CommonIDs(r.Context(), in)
}
