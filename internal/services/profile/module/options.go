package module

import (
	"time"

	"callsift/internal/platform/config"
)

// Options holds configuration settings for the profile module
type Options struct {
	TopLimit int
	CacheTTL time.Duration
}

// FromConfig reads configuration settings from the config.Conf
func FromConfig(cfg config.Conf) Options {
	pf := cfg.Prefix("CORE_PROFILE_")
	return Options{
		TopLimit: pf.MayInt("TOP_LIMIT", 20),
		CacheTTL: pf.MayDuration("CACHE_TTL", 10*time.Minute),
	}
}
