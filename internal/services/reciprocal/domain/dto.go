// Package domain holds DTOs for the reciprocal http surface
package domain

// ResolveInput asks for the counterpart state of one directed event
type ResolveInput struct {
	Project     string `json:"project" validate:"required,min=1,max=100" example:"op-nightjar"`
	Subject     string `json:"subject" validate:"required,min=3,max=32" example:"05321234567"`
	Counterpart string `json:"counterpart" validate:"required,min=3,max=32" example:"05419876543"`

	// Timestamp of the subject's event, unix seconds
	Timestamp int64 `json:"timestamp" validate:"required" example:"1714476000"`

	// EventID of the subject's event, excluded from candidate matches
	EventID string `json:"event_id,omitempty" validate:"omitempty,uuid"`

	// ToleranceSeconds is the symmetric inclusive match window; defaults to 3
	ToleranceSeconds float64 `json:"tolerance_seconds,omitempty" validate:"omitempty,min=0"`

	ExpectedVersion int64 `json:"expected_version,omitempty" validate:"omitempty,min=0"`
}

// ResolveResult wraps an optional counterpart state; Matched false is the
// normal sparse-data outcome, not an error
type ResolveResult struct {
	Matched bool              `json:"matched"`
	State   *CounterpartState `json:"state,omitempty"`
}

// BatchInput asks for project-wide resolution of every directed event
type BatchInput struct {
	Project string `json:"project" validate:"required,min=1,max=100"`

	// Subjects restricts the scan; empty means every investigated line
	Subjects []string `json:"subjects,omitempty" validate:"omitempty,max=1000,dive,min=3,max=32"`

	ToleranceSeconds float64 `json:"tolerance_seconds,omitempty" validate:"omitempty,min=0"`

	ExpectedVersion int64 `json:"expected_version,omitempty" validate:"omitempty,min=0"`
}
