// Package api provides the HTTP API for the application
package api

import (
	"callsift/internal/platform/cache"
	"callsift/internal/platform/config"
	"callsift/internal/platform/logger"
	phttp "callsift/internal/platform/net/http"
	"callsift/internal/platform/store"

	"callsift/internal/modkit"
	"callsift/internal/modkit/httpkit"
	"callsift/internal/modkit/swaggerkit"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	burstmod "callsift/internal/services/burst/module"
	eventsmod "callsift/internal/services/events/module"
	linkagemod "callsift/internal/services/linkage/module"
	movementmod "callsift/internal/services/movement/module"
	profilemod "callsift/internal/services/profile/module"
	reciprocalmod "callsift/internal/services/reciprocal/module"
)

// Options are the API options
type Options struct {
	Config         config.Conf
	Store          *store.Store
	Cache          cache.Cache
	Logger         *logger.Logger
	EnableSwagger  bool
	EnableProfiler bool
}

// Mount mounts the API service onto the given router
func Mount(r phttp.Router, opt Options) *eventsmod.Module {
	// shared deps for modules
	deps := modkit.Deps{
		Cfg:   opt.Config,
		PG:    opt.Store.PG,
		Cache: opt.Cache,
	}
	if opt.Logger != nil {
		deps.Log = *opt.Logger
	}

	// Construct the event store module first and extract its snapshot port
	events := eventsmod.New(deps)
	snaps := events.Ports().(eventsmod.Ports).Snapshots

	// Every analyzer reads the same snapshot port
	mods := []modkit.Module{
		events,
		profilemod.New(deps, modkit.WithPorts(profilemod.Ports{Snapshots: snaps})),
		reciprocalmod.New(deps, modkit.WithPorts(reciprocalmod.Ports{Snapshots: snaps})),
		linkagemod.New(deps, modkit.WithPorts(linkagemod.Ports{Snapshots: snaps})),
		movementmod.New(deps, modkit.WithPorts(movementmod.Ports{Snapshots: snaps})),
		burstmod.New(deps, modkit.WithPorts(burstmod.Ports{Snapshots: snaps})),
	}

	// versioned API with a common middleware stack
	httpkit.MountAPIV1(r, httpkit.CommonStack(), func(api httpkit.Router) {
		// Swagger + profiler + metrics
		swaggerkit.Mount(r, opt.EnableSwagger)
		phttp.MountProfiler(r, "/debug", opt.EnableProfiler)
		r.Handle("/metrics", promhttp.Handler())

		for _, m := range mods {
			// mount module routes under its Prefix()
			m.MountRoutes(api)
		}
	})

	return events
}
