// Package domain holds DTOs for the profile http surface
package domain

// SummaryInput asks for one subject's contact/location/device summary
type SummaryInput struct {
	Project string `json:"project" validate:"required,min=1,max=100" example:"op-nightjar"`
	Subject string `json:"subject" validate:"required,min=3,max=32" example:"05321234567"`

	// Since and Until bound the scan in unix seconds; zero means unbounded
	Since int64 `json:"since,omitempty" validate:"omitempty,min=0"`
	Until int64 `json:"until,omitempty" validate:"omitempty,min=0"`

	// Top caps each table at the configured top-N size
	Top bool `json:"top,omitempty"`

	// ExpectedVersion opts into snapshot-consistency checking: when non-zero
	// and the store has moved past it, the call fails instead of answering
	// from newer data
	ExpectedVersion int64 `json:"expected_version,omitempty" validate:"omitempty,min=0"`
}
