// Package domain defines the reciprocal resolution types
package domain

import (
	"time"

	"callsift/internal/core/geo"
)

// CounterpartState is the counterpart's own device/location at the matched
// instant, learned from the counterpart's side of the same logical contact
type CounterpartState struct {
	EventID      string     `json:"event_id"`
	Counterpart  string     `json:"counterpart"`
	DeviceID     string     `json:"device_id,omitempty"`
	LocationRaw  string     `json:"location_raw,omitempty"`
	Location     *geo.Point `json:"location,omitempty"`
	Timestamp    time.Time  `json:"timestamp"`
	DeltaSeconds float64    `json:"delta_seconds"`
}

// Resolution pairs one directed event with its resolved counterpart state
type Resolution struct {
	EventID     string           `json:"event_id"`
	Subject     string           `json:"subject"`
	Counterpart string           `json:"counterpart"`
	Timestamp   time.Time        `json:"timestamp"`
	State       CounterpartState `json:"state"`
}

// BatchReport is the outcome of resolving every directed event in a project
type BatchReport struct {
	Project          string       `json:"project"`
	Version          int64        `json:"version"`
	ToleranceSeconds float64      `json:"tolerance_seconds"`
	Scanned          int          `json:"scanned"`
	Matched          int          `json:"matched"`
	Resolutions      []Resolution `json:"resolutions"`
}
