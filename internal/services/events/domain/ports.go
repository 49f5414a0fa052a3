package domain

import "context"

// WriterPort mutates the event store on behalf of the ingestion collaborator
type WriterPort interface {
	// WriteEvents normalizes and persists a batch for one project,
	// returning the number of rows written. Bumps the project version.
	WriteEvents(ctx context.Context, project string, rows []EventWrite) (int, error)

	// WriteSubscribers persists identity rows for one project. Bumps the version.
	WriteSubscribers(ctx context.Context, project string, rows []SubscriberWrite) (int, error)

	// DeleteSubject removes every event and subscriber row owned by subject,
	// returning the removed row count. Bumps the version so cached results
	// for the project can never survive the deletion.
	DeleteSubject(ctx context.Context, project, subject string) (int64, error)

	// Invalidate bumps the project version without changing rows; the explicit
	// hook external mutators call after touching the store out of band
	Invalidate(ctx context.Context, project string) (int64, error)
}

// SnapshotPort serves consistent read views to the analyzers
type SnapshotPort interface {
	// Snapshot returns the current immutable view for project.
	// An unknown project yields an empty snapshot, not an error.
	Snapshot(ctx context.Context, project string) (*Snapshot, error)

	// Version returns the project's current store version without loading rows
	Version(ctx context.Context, project string) (int64, error)
}

// EventWrite is one raw ingest row before normalization
type EventWrite struct {
	Subject         string
	Counterpart     string
	CounterpartName string
	Kind            Kind
	TypeLabel       string
	Timestamp       int64 // unix seconds
	DurationSeconds int
	DeviceID        string
	LocationRaw     string
	SourceFileID    string
}

// SubscriberWrite is one raw identity row before normalization
type SubscriberWrite struct {
	Line         string
	Name         string
	NationalID   string
	DeviceID     string
	SourceFileID string
}
