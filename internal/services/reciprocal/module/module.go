// Package module wires the reciprocal resolver into the API using modkit
package module

import (
	"net/http"

	"callsift/internal/modkit"
	"callsift/internal/modkit/httpkit"
	str "callsift/internal/platform/strings"
	evdomain "callsift/internal/services/events/domain"
	reciprocalhttp "callsift/internal/services/reciprocal/http"
	reciprocalsvc "callsift/internal/services/reciprocal/service"
)

// Ports declares the injected event store port this module requires
type Ports struct {
	Snapshots evdomain.SnapshotPort
}

// Module implements the reciprocal module
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string

	mws       []func(http.Handler) http.Handler
	subrouter func(httpkit.Router) httpkit.Router
	register  func(httpkit.Router)

	svc *reciprocalsvc.Service
}

// New constructs the reciprocal module
func New(deps modkit.Deps, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("reciprocal"),
		modkit.WithPrefix("/reciprocal"),
	}, opts...)...)

	injected, ok := b.Ports.(Ports)
	if !ok || injected.Snapshots == nil {
		panic("reciprocal module requires an events SnapshotPort")
	}

	o := FromConfig(deps.Cfg)
	svc := reciprocalsvc.New(injected.Snapshots, reciprocalsvc.Config{
		DefaultToleranceSeconds: o.DefaultToleranceSeconds,
		MaxParallel:             o.MaxParallel,
		Band:                    o.Band,
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
		reciprocalhttp.Register(r, svc)
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
