package module

import (
	"callsift/internal/core/geo"
	"callsift/internal/platform/config"
)

// Options holds configuration settings for the reciprocal module
type Options struct {
	DefaultToleranceSeconds float64
	MaxParallel             int
	Band                    geo.Band
}

// FromConfig reads configuration settings from the config.Conf
func FromConfig(cfg config.Conf) Options {
	rf := cfg.Prefix("CORE_RECIPROCAL_")
	return Options{
		DefaultToleranceSeconds: rf.MayFloat64("TOLERANCE_SECONDS", 3),
		MaxParallel:             rf.MayInt("MAX_PARALLEL", 4),
		Band:                    regionBand(cfg),
	}
}

// regionBand reads the deployment region's plausible coordinate band.
// Defaults cover Turkey, the band the engine was first deployed against.
func regionBand(cfg config.Conf) geo.Band {
	gf := cfg.Prefix("CORE_REGION_")
	return geo.Band{
		LatMin: gf.MayFloat64("LAT_MIN", 35),
		LatMax: gf.MayFloat64("LAT_MAX", 43),
		LonMin: gf.MayFloat64("LON_MIN", 25),
		LonMax: gf.MayFloat64("LON_MAX", 45),
	}
}
