// Package http provides http transport for the event store write path
package http

import (
	stdhttp "net/http"

	"callsift/internal/modkit/httpkit"
	"callsift/internal/services/events/domain"
	svc "callsift/internal/services/events/service"
)

// Register mounts event store endpoints on the given router
func Register(r httpkit.Router, s *svc.Service) {
	h := &handlers{svc: s}

	// normalized event rows from the ingestion collaborator
	httpkit.PostJSON[domain.EventsBatchInput](r, "/batch", h.writeEvents)

	// subscriber identity rows used by linkage
	httpkit.PostJSON[domain.SubscribersBatchInput](r, "/subscribers", h.writeSubscribers)

	// remove one subject's records and bump the store version
	httpkit.PostJSON[domain.DeleteSubjectInput](r, "/subject/delete", h.deleteSubject)

	// explicit invalidation hook for out-of-band mutations
	httpkit.PostJSON[domain.InvalidateInput](r, "/invalidate", h.invalidate)
}

type handlers struct{ svc *svc.Service }

// @Summary Ingest a batch of normalized CDR events
// @Tags Events
// @Accept json
// @Produce json
// @Param payload body domain.EventsBatchInput true "Batch"
// @Success 200 {object} domain.WriteResult "ok"
// @Router /events/batch [post]
func (h *handlers) writeEvents(r *stdhttp.Request, in domain.EventsBatchInput) (any, error) {
	rows := make([]domain.EventWrite, 0, len(in.Rows))
	for _, x := range in.Rows {
		rows = append(rows, domain.EventWrite{
			Subject:         x.Subject,
			Counterpart:     x.Counterpart,
			CounterpartName: x.CounterpartName,
			Kind:            domain.Kind(x.Kind),
			TypeLabel:       x.TypeLabel,
			Timestamp:       x.Timestamp,
			DurationSeconds: x.DurationSeconds,
			DeviceID:        x.DeviceID,
			LocationRaw:     x.LocationRaw,
			SourceFileID:    x.SourceFileID,
		})
	}
	n, err := h.svc.WriteEvents(r.Context(), in.Project, rows)
	if err != nil {
		return nil, err
	}
	v, err := h.svc.Version(r.Context(), in.Project)
	if err != nil {
		return nil, err
	}
	return domain.WriteResult{Written: n, Version: v}, nil
}

// @Summary Ingest a batch of subscriber identity rows
// @Tags Events
// @Accept json
// @Produce json
// @Param payload body domain.SubscribersBatchInput true "Batch"
// @Success 200 {object} domain.WriteResult "ok"
// @Router /events/subscribers [post]
func (h *handlers) writeSubscribers(r *stdhttp.Request, in domain.SubscribersBatchInput) (any, error) {
	rows := make([]domain.SubscriberWrite, 0, len(in.Rows))
	for _, x := range in.Rows {
		rows = append(rows, domain.SubscriberWrite{
			Line:         x.Line,
			Name:         x.Name,
			NationalID:   x.NationalID,
			DeviceID:     x.DeviceID,
			SourceFileID: x.SourceFileID,
		})
	}
	n, err := h.svc.WriteSubscribers(r.Context(), in.Project, rows)
	if err != nil {
		return nil, err
	}
	v, err := h.svc.Version(r.Context(), in.Project)
	if err != nil {
		return nil, err
	}
	return domain.WriteResult{Written: n, Version: v}, nil
}

// @Summary Delete one subject's rows from a project
// @Tags Events
// @Accept json
// @Produce json
// @Param payload body domain.DeleteSubjectInput true "Target"
// @Success 200 {object} domain.DeleteResult "ok"
// @Router /events/subject/delete [post]
func (h *handlers) deleteSubject(r *stdhttp.Request, in domain.DeleteSubjectInput) (any, error) {
	n, err := h.svc.DeleteSubject(r.Context(), in.Project, in.Subject)
	if err != nil {
		return nil, err
	}
	v, err := h.svc.Version(r.Context(), in.Project)
	if err != nil {
		return nil, err
	}
	return domain.DeleteResult{Removed: n, Version: v}, nil
}

// @Summary Bump a project's store version
// @Tags Events
// @Accept json
// @Produce json
// @Param payload body domain.InvalidateInput true "Target"
// @Success 200 {object} domain.VersionResult "ok"
// @Router /events/invalidate [post]
func (h *handlers) invalidate(r *stdhttp.Request, in domain.InvalidateInput) (any, error) {
	v, err := h.svc.Invalidate(r.Context(), in.Project)
	if err != nil {
		return nil, err
	}
	return domain.VersionResult{Version: v}, nil
}
