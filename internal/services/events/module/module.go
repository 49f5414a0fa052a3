// Package module wires the event store into the API using modkit
package module

import (
	"net/http"

	"callsift/internal/modkit"
	"callsift/internal/modkit/httpkit"
	str "callsift/internal/platform/strings"
	"callsift/internal/services/events/domain"
	eventshttp "callsift/internal/services/events/http"
	eventsrepo "callsift/internal/services/events/repo"
	eventssvc "callsift/internal/services/events/service"
)

// Ports exposed by the events module for cross-module wiring
type Ports struct {
	Writer    domain.WriterPort
	Snapshots domain.SnapshotPort
}

// Module implements the events module
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string

	mws       []func(http.Handler) http.Handler
	ports     Ports
	subrouter func(httpkit.Router) httpkit.Router
	register  func(httpkit.Router)

	svc *eventssvc.Service
}

// New constructs the events module
func New(deps modkit.Deps, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("events"),
		modkit.WithPrefix("/events"),
	}, opts...)...)

	o := FromConfig(deps.Cfg)
	svc := eventssvc.New(deps.PG, eventsrepo.NewPG(), eventssvc.Config{
		OutgoingMarkers: o.OutgoingMarkers,
		IncomingMarkers: o.IncomingMarkers,
		MaxBatch:        o.MaxBatch,
	})

	m := &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		subrouter: b.Subrouter,
		svc:       svc,
	}
	m.ports = Ports{Writer: svc, Snapshots: svc}

	external := b.Register
	m.register = func(r httpkit.Router) {
		eventshttp.Register(r, svc)
		if external != nil {
			external(r)
		}
	}
	return m
}

// Service exposes the concrete service for boot-time schema setup
func (m *Module) Service() *eventssvc.Service { return m.svc }

// MountRoutes mounts the module routes on the given router
func (m *Module) MountRoutes(r httpkit.Router) {
	r.Route(m.prefix, func(rr httpkit.Router) {
		for _, mw := range m.mws {
			rr.Use(mw)
		}
		if m.subrouter != nil {
			rr = m.subrouter(rr)
		}
		if m.register != nil {
			m.register(rr)
		}
	})
}

// Name returns the module name
func (m *Module) Name() string { return str.MustString(m.name, "module name") }

// Prefix returns the module route prefix
func (m *Module) Prefix() string { return str.MustPrefix(m.prefix) }

// Ports satisfies modkit.Module
func (m *Module) Ports() any { return m.ports }
