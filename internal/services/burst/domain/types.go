// Package domain defines the burst analysis types
package domain

import "time"

// CounterpartCount is one counterpart's event count inside a bucket
type CounterpartCount struct {
	Number string `json:"number"`
	Count  int    `json:"count"`
}

// DirectionCounts splits a bucket by the closed direction enum.
// Callers apply their own asymmetric-contact thresholds on top of these;
// the engine does not hardcode any ratio heuristic.
type DirectionCounts struct {
	Outgoing int `json:"outgoing"`
	Incoming int `json:"incoming"`
	Unknown  int `json:"unknown"`
}

// Report is the before/critical/after partition around a reference instant
type Report struct {
	Project string    `json:"project"`
	Version int64     `json:"version"`
	Subject string    `json:"subject"`
	T0      time.Time `json:"t0"`

	BeforeCount   int `json:"before_count"`
	CriticalCount int `json:"critical_count"`
	AfterCount    int `json:"after_count"`

	// rates are events per hour
	CriticalRate float64 `json:"critical_rate"`
	BaselineRate float64 `json:"baseline_rate"`
	BurstIndex   float64 `json:"burst_index"`

	// TopCritical is the "who was most contacted at the critical moment" signal
	TopCritical []CounterpartCount `json:"top_critical"`

	Directions         DirectionCounts `json:"directions"`
	CriticalDirections DirectionCounts `json:"critical_directions"`
}
