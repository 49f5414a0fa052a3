package module

import "callsift/internal/platform/config"

// Options holds configuration settings for the events module
type Options struct {
	OutgoingMarkers []string
	IncomingMarkers []string
	MaxBatch        int
}

// FromConfig reads configuration settings from the config.Conf
func FromConfig(cfg config.Conf) Options {
	ef := cfg.Prefix("CORE_EVENTS_")
	return Options{
		// defaults cover the Turkish operator exports the engine was built against
		OutgoingMarkers: ef.MayCSV("OUTGOING_LABELS", []string{"aradı", "gönder", "giden"}),
		IncomingMarkers: ef.MayCSV("INCOMING_LABELS", []string{"arandı", "aldı", "gelen"}),
		MaxBatch:        ef.MayInt("MAX_BATCH", 10000),
	}
}
