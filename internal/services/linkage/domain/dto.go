// Package domain holds DTOs for the linkage http surface
package domain

// Input asks for one linkage pass over a project
type Input struct {
	Project         string `json:"project" validate:"required,min=1,max=100" example:"op-nightjar"`
	ExpectedVersion int64  `json:"expected_version,omitempty" validate:"omitempty,min=0"`
}
