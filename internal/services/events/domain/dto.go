// Package domain holds DTOs for the events http surface
package domain

// EventRowInput is one ingest row as posted by the ingestion collaborator
type EventRowInput struct {
	Subject         string `json:"subject" validate:"required,min=3,max=32" example:"05321234567"`
	Counterpart     string `json:"counterpart,omitempty" validate:"omitempty,max=32" example:"+905419876543"`
	CounterpartName string `json:"counterpart_name,omitempty" validate:"omitempty,max=200"`
	Kind            string `json:"kind" validate:"required,oneof=voice sms data" example:"voice"`
	TypeLabel       string `json:"type_label,omitempty" validate:"omitempty,max=100" example:"Aradı"`
	Timestamp       int64  `json:"timestamp" validate:"required" example:"1714476000"`
	DurationSeconds int    `json:"duration_seconds,omitempty" validate:"omitempty,min=0" example:"125"`
	DeviceID        string `json:"device_id,omitempty" validate:"omitempty,max=32" example:"356938035643809"`
	LocationRaw     string `json:"location_raw,omitempty" validate:"omitempty,max=500"`
	SourceFileID    string `json:"source_file_id,omitempty" validate:"omitempty,max=100" example:"export-0412.xlsx"`
}

// EventsBatchInput is the events write payload
type EventsBatchInput struct {
	Project string          `json:"project" validate:"required,min=1,max=100" example:"op-nightjar"`
	Rows    []EventRowInput `json:"rows" validate:"required,min=1,max=10000,dive"`
}

// SubscriberRowInput is one identity row as posted by ingestion
type SubscriberRowInput struct {
	Line         string `json:"line" validate:"required,min=3,max=32" example:"05321234567"`
	Name         string `json:"name,omitempty" validate:"omitempty,max=200"`
	NationalID   string `json:"national_id,omitempty" validate:"omitempty,max=20" example:"12345678901"`
	DeviceID     string `json:"device_id,omitempty" validate:"omitempty,max=32"`
	SourceFileID string `json:"source_file_id,omitempty" validate:"omitempty,max=100"`
}

// SubscribersBatchInput is the subscribers write payload
type SubscribersBatchInput struct {
	Project string               `json:"project" validate:"required,min=1,max=100"`
	Rows    []SubscriberRowInput `json:"rows" validate:"required,min=1,max=10000,dive"`
}

// DeleteSubjectInput removes one subject's rows from a project
type DeleteSubjectInput struct {
	Project string `json:"project" validate:"required,min=1,max=100"`
	Subject string `json:"subject" validate:"required,min=3,max=32"`
}

// InvalidateInput bumps a project's store version
type InvalidateInput struct {
	Project string `json:"project" validate:"required,min=1,max=100"`
}

// WriteResult reports rows written and the store version after the write
type WriteResult struct {
	Written int   `json:"written"`
	Version int64 `json:"version"`
}

// DeleteResult reports rows removed and the store version after the delete
type DeleteResult struct {
	Removed int64 `json:"removed"`
	Version int64 `json:"version"`
}

// VersionResult reports a project's current store version
type VersionResult struct {
	Version int64 `json:"version"`
}
