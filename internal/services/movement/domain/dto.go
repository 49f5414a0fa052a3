// Package domain holds DTOs for the movement http surface
package domain

// DetectInput asks for an impossible-travel scan over one subject's samples
type DetectInput struct {
	Project string `json:"project" validate:"required,min=1,max=100" example:"op-nightjar"`
	Subject string `json:"subject" validate:"required,min=3,max=32" example:"05321234567"`

	// Since and Until bound the scan in unix seconds; zero means unbounded
	Since int64 `json:"since,omitempty" validate:"omitempty,min=0"`
	Until int64 `json:"until,omitempty" validate:"omitempty,min=0"`

	// SpeedLimitKmh is the plausibility threshold; implied speed above it
	// flags the pair
	SpeedLimitKmh float64 `json:"speed_limit_kmh" validate:"required,gt=0" example:"180"`

	// DistanceToleranceKm treats smaller hops as cell-tower drift, never
	// movement, regardless of elapsed time
	DistanceToleranceKm float64 `json:"distance_tolerance_km,omitempty" validate:"omitempty,min=0" example:"10"`

	ExpectedVersion int64 `json:"expected_version,omitempty" validate:"omitempty,min=0"`
}
