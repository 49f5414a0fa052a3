// Package domain holds DTOs for the burst http surface
package domain

// AnalyzeInput asks for a burst partition around one reference instant
type AnalyzeInput struct {
	Project string `json:"project" validate:"required,min=1,max=100" example:"op-nightjar"`
	Subject string `json:"subject" validate:"required,min=3,max=32" example:"05321234567"`

	// ReferenceInstant is T0, unix seconds
	ReferenceInstant int64 `json:"reference_instant" validate:"required" example:"1714476000"`

	BeforeHours     float64 `json:"before_hours" validate:"min=0" example:"24"`
	CriticalMinutes float64 `json:"critical_minutes" validate:"required,gt=0" example:"30"`
	AfterHours      float64 `json:"after_hours" validate:"min=0" example:"24"`

	// Counterpart restricts the scan to one counterpart pool
	Counterpart string `json:"counterpart,omitempty" validate:"omitempty,min=3,max=32"`

	ExpectedVersion int64 `json:"expected_version,omitempty" validate:"omitempty,min=0"`
}
