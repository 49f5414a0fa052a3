// Package domain defines the movement anomaly types
package domain

import "time"

// Sample is one resolved location observation
type Sample struct {
	Lat         float64   `json:"lat"`
	Lon         float64   `json:"lon"`
	Timestamp   time.Time `json:"timestamp"`
	LocationRaw string    `json:"location_raw,omitempty"`
}

// Anomaly records two consecutive observations whose implied speed is
// physically implausible
type Anomaly struct {
	From           Sample  `json:"from"`
	To             Sample  `json:"to"`
	DistanceKm     float64 `json:"distance_km"`
	ElapsedSeconds float64 `json:"elapsed_seconds"`
	SpeedKmh       float64 `json:"speed_kmh"`
}

// Report is the outcome of one impossible-travel scan
type Report struct {
	Project     string `json:"project"`
	Version     int64  `json:"version"`
	Subject     string `json:"subject"`
	SampleCount int    `json:"sample_count"`

	// Unresolved counts events whose location carried no extractable
	// coordinates; they are excluded from the scan, not errors
	Unresolved int `json:"unresolved"`

	Anomalies []Anomaly `json:"anomalies"`
}
