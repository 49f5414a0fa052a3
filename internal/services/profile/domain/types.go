// Package domain defines the per-subject summary types
package domain

import "time"

// CounterpartRow aggregates one counterpart's traffic with the subject
type CounterpartRow struct {
	Number               string `json:"number"`
	Name                 string `json:"name,omitempty"`
	Count                int    `json:"count"`
	TotalDurationSeconds int64  `json:"total_duration_seconds"`
}

// LocationRow aggregates one raw cell-site descriptor.
// Grouping is by the raw string on purpose: near-duplicate descriptors must
// stay distinct rows rather than being merged through parsed coordinates.
type LocationRow struct {
	Location string `json:"location"`
	Count    int    `json:"count"`
}

// DeviceRow aggregates one normalized device identifier
type DeviceRow struct {
	DeviceID  string    `json:"device_id"`
	Count     int       `json:"count"`
	FirstSeen time.Time `json:"first_seen"`
	LastSeen  time.Time `json:"last_seen"`
}

// Summary is the derived per-subject view; a value object rebuilt on demand
type Summary struct {
	Project    string `json:"project"`
	Subject    string `json:"subject"`
	Version    int64  `json:"version"`
	EventCount int    `json:"event_count"`

	// Since and Until echo the effective scan bounds, nil when unbounded
	Since *time.Time `json:"since,omitempty"`
	Until *time.Time `json:"until,omitempty"`

	Counterparts []CounterpartRow `json:"counterparts"`
	Locations    []LocationRow    `json:"locations"`
	Devices      []DeviceRow      `json:"devices"`
}
