// Package module wires the burst analyzer into the API using modkit
package module

import (
	"net/http"

	"callsift/internal/modkit"
	"callsift/internal/modkit/httpkit"
	"callsift/internal/platform/config"
	str "callsift/internal/platform/strings"
	bursthttp "callsift/internal/services/burst/http"
	burstsvc "callsift/internal/services/burst/service"
	evdomain "callsift/internal/services/events/domain"
)

// Ports declares the injected event store port this module requires
type Ports struct {
	Snapshots evdomain.SnapshotPort
}

// Options holds configuration settings for the burst module
type Options struct {
	TopLimit int
}

// FromConfig reads configuration settings from the config.Conf
func FromConfig(cfg config.Conf) Options {
	bf := cfg.Prefix("CORE_BURST_")
	return Options{
		TopLimit: bf.MayInt("TOP_LIMIT", 5),
	}
}

// Module implements the burst module
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string

	mws       []func(http.Handler) http.Handler
	subrouter func(httpkit.Router) httpkit.Router
	register  func(httpkit.Router)

	svc *burstsvc.Service
}

// New constructs the burst module
func New(deps modkit.Deps, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("burst"),
		modkit.WithPrefix("/burst"),
	}, opts...)...)

	injected, ok := b.Ports.(Ports)
	if !ok || injected.Snapshots == nil {
		panic("burst module requires an events SnapshotPort")
	}

	o := FromConfig(deps.Cfg)
	svc := burstsvc.New(injected.Snapshots, burstsvc.Config{TopLimit: o.TopLimit})

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
		bursthttp.Register(r, svc)
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
