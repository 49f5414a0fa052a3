// Package module wires the movement detector into the API using modkit
package module

import (
	"net/http"

	"callsift/internal/core/geo"
	"callsift/internal/modkit"
	"callsift/internal/modkit/httpkit"
	"callsift/internal/platform/config"
	str "callsift/internal/platform/strings"
	evdomain "callsift/internal/services/events/domain"
	movementhttp "callsift/internal/services/movement/http"
	movementsvc "callsift/internal/services/movement/service"
)

// Ports declares the injected event store port this module requires
type Ports struct {
	Snapshots evdomain.SnapshotPort
}

// Options holds configuration settings for the movement module
type Options struct {
	Band geo.Band
}

// FromConfig reads configuration settings from the config.Conf
func FromConfig(cfg config.Conf) Options {
	gf := cfg.Prefix("CORE_REGION_")
	return Options{
		Band: geo.Band{
			LatMin: gf.MayFloat64("LAT_MIN", 35),
			LatMax: gf.MayFloat64("LAT_MAX", 43),
			LonMin: gf.MayFloat64("LON_MIN", 25),
			LonMax: gf.MayFloat64("LON_MAX", 45),
		},
	}
}

// Module implements the movement module
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string

	mws       []func(http.Handler) http.Handler
	subrouter func(httpkit.Router) httpkit.Router
	register  func(httpkit.Router)

	svc *movementsvc.Service
}

// New constructs the movement module
func New(deps modkit.Deps, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("movement"),
		modkit.WithPrefix("/movement"),
	}, opts...)...)

	injected, ok := b.Ports.(Ports)
	if !ok || injected.Snapshots == nil {
		panic("movement module requires an events SnapshotPort")
	}

	o := FromConfig(deps.Cfg)
	svc := movementsvc.New(injected.Snapshots, movementsvc.Config{Band: o.Band})

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
		movementhttp.Register(r, svc)
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
