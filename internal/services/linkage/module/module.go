// Package module wires the linkage resolver into the API using modkit
package module

import (
	"net/http"
	"time"

	"callsift/internal/modkit"
	"callsift/internal/modkit/httpkit"
	"callsift/internal/platform/config"
	str "callsift/internal/platform/strings"
	evdomain "callsift/internal/services/events/domain"
	linkagehttp "callsift/internal/services/linkage/http"
	linkagesvc "callsift/internal/services/linkage/service"
)

// Ports declares the injected event store port this module requires
type Ports struct {
	Snapshots evdomain.SnapshotPort
}

// Options holds configuration settings for the linkage module
type Options struct {
	CacheTTL time.Duration
}

// FromConfig reads configuration settings from the config.Conf
func FromConfig(cfg config.Conf) Options {
	lf := cfg.Prefix("CORE_LINKAGE_")
	return Options{
		CacheTTL: lf.MayDuration("CACHE_TTL", 10*time.Minute),
	}
}

// Module implements the linkage module
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string

	mws       []func(http.Handler) http.Handler
	subrouter func(httpkit.Router) httpkit.Router
	register  func(httpkit.Router)

	svc *linkagesvc.Service
}

// New constructs the linkage module
func New(deps modkit.Deps, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("linkage"),
		modkit.WithPrefix("/linkage"),
	}, opts...)...)

	injected, ok := b.Ports.(Ports)
	if !ok || injected.Snapshots == nil {
		panic("linkage module requires an events SnapshotPort")
	}

	o := FromConfig(deps.Cfg)
	svc := linkagesvc.New(injected.Snapshots, deps.Cache, linkagesvc.Config{CacheTTL: o.CacheTTL})

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
		linkagehttp.Register(r, svc)
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
