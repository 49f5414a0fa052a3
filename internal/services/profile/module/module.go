// Package module wires the profile aggregator into the API using modkit
package module

import (
	"net/http"

	"callsift/internal/modkit"
	"callsift/internal/modkit/httpkit"
	str "callsift/internal/platform/strings"
	evdomain "callsift/internal/services/events/domain"
	profilehttp "callsift/internal/services/profile/http"
	profilesvc "callsift/internal/services/profile/service"
)

// Ports declares the injected event store port this module requires
type Ports struct {
	Snapshots evdomain.SnapshotPort
}

// Module implements the profile module
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string

	mws       []func(http.Handler) http.Handler
	subrouter func(httpkit.Router) httpkit.Router
	register  func(httpkit.Router)

	svc *profilesvc.Service
}

// New constructs the profile module
func New(deps modkit.Deps, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("profile"),
		modkit.WithPrefix("/profile"),
	}, opts...)...)

	injected, ok := b.Ports.(Ports)
	if !ok || injected.Snapshots == nil {
		panic("profile module requires an events SnapshotPort")
	}

	o := FromConfig(deps.Cfg)
	svc := profilesvc.New(injected.Snapshots, deps.Cache, profilesvc.Config{
		TopLimit: o.TopLimit,
		CacheTTL: o.CacheTTL,
	})

	m := &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		subrouter: b.Subrouter,
		svc:       svc,
	}

	external := b.Register
	m.register = func(r httpkit.Router) {
		profilehttp.Register(r, svc)
		if external != nil {
			external(r)
		}
	}
	return m
}

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
func (m *Module) Ports() any { return nil }
