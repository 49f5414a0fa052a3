// Package repo provides the Postgres event store repository
package repo

import (
	"context"
	"fmt"
	"strings"

	"callsift/internal/modkit/repokit"
	"callsift/internal/services/events/domain"
)

type (
	pg     struct{ q repokit.Queryer }
	binder struct{}
)

// NewPG constructs a new repo binder for Postgres
func NewPG() repokit.Binder[Storage] { return binder{} }

// Bind implements repokit.Binder
func (binder) Bind(q repokit.Queryer) Storage { return &pg{q: q} }

// Storage defines the event store repository
type Storage interface {
	EnsureSchema(ctx context.Context) error
	InsertEvents(ctx context.Context, rows []domain.Event) error
	InsertSubscribers(ctx context.Context, rows []domain.SubscriberRecord) error
	DeleteSubject(ctx context.Context, project, subject string) (int64, error)
	ListEvents(ctx context.Context, project string) ([]domain.Event, error)
	ListSubscribers(ctx context.Context, project string) ([]domain.SubscriberRecord, error)
	Version(ctx context.Context, project string) (int64, error)
	BumpVersion(ctx context.Context, project string) (int64, error)
}

// EnsureSchema creates the event store tables when missing.
// Called once at boot; concurrent boots are safe via IF NOT EXISTS.
func (s *pg) EnsureSchema(ctx context.Context) error {
	ddl := []string{
		`CREATE TABLE IF NOT EXISTS cdr_events (
			id uuid PRIMARY KEY,
			project text NOT NULL,
			subject text NOT NULL,
			counterpart text NOT NULL DEFAULT '',
			counterpart_name text NOT NULL DEFAULT '',
			kind text NOT NULL,
			direction text NOT NULL,
			type_label text NOT NULL DEFAULT '',
			ts timestamptz NOT NULL,
			duration_seconds int NOT NULL DEFAULT 0,
			device_id text NOT NULL DEFAULT '',
			location_raw text NOT NULL DEFAULT '',
			source_file_id text NOT NULL DEFAULT '',
			ingest_seq bigint GENERATED ALWAYS AS IDENTITY
		)`,
		`CREATE INDEX IF NOT EXISTS cdr_events_project_subject_ts
			ON cdr_events (project, subject, ts)`,
		`CREATE TABLE IF NOT EXISTS subscriber_records (
			id bigint GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
			project text NOT NULL,
			line text NOT NULL,
			name text NOT NULL DEFAULT '',
			national_id text NOT NULL DEFAULT '',
			device_id text NOT NULL DEFAULT '',
			source_file_id text NOT NULL DEFAULT ''
		)`,
		`CREATE INDEX IF NOT EXISTS subscriber_records_project
			ON subscriber_records (project)`,
		`CREATE TABLE IF NOT EXISTS project_versions (
			project text PRIMARY KEY,
			version bigint NOT NULL DEFAULT 1
		)`,
	}
	for _, stmt := range ddl {
		if _, err := s.q.Exec(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

// InsertEvents implements Storage
func (s *pg) InsertEvents(ctx context.Context, rows []domain.Event) error {
	if len(rows) == 0 {
		return nil
	}

	var sb strings.Builder
	sb.WriteString(`INSERT INTO cdr_events
		(id, project, subject, counterpart, counterpart_name, kind, direction,
		type_label, ts, duration_seconds, device_id, location_raw, source_file_id) VALUES `)

	args := make([]any, 0, len(rows)*13)
	for i, e := range rows {
		if i > 0 {
			sb.WriteByte(',')
		}
		base := i*13 + 1
		fmt.Fprintf(&sb, "($%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d)",
			base, base+1, base+2, base+3, base+4, base+5, base+6,
			base+7, base+8, base+9, base+10, base+11, base+12)

		args = append(args,
			e.ID, e.Project, e.Subject, e.Counterpart, e.CounterpartName,
			string(e.Kind), string(e.Direction), e.TypeLabel, e.Timestamp,
			e.DurationSeconds, e.DeviceID, e.LocationRaw, e.SourceFileID,
		)
	}
	_, err := s.q.Exec(ctx, sb.String(), args...)
	return err
}

// InsertSubscribers implements Storage
func (s *pg) InsertSubscribers(ctx context.Context, rows []domain.SubscriberRecord) error {
	if len(rows) == 0 {
		return nil
	}

	var sb strings.Builder
	sb.WriteString(`INSERT INTO subscriber_records
		(project, line, name, national_id, device_id, source_file_id) VALUES `)

	args := make([]any, 0, len(rows)*6)
	for i, r := range rows {
		if i > 0 {
			sb.WriteByte(',')
		}
		base := i*6 + 1
		fmt.Fprintf(&sb, "($%d,$%d,$%d,$%d,$%d,$%d)",
			base, base+1, base+2, base+3, base+4, base+5)
		args = append(args, r.Project, r.Line, r.Name, r.NationalID, r.DeviceID, r.SourceFileID)
	}
	_, err := s.q.Exec(ctx, sb.String(), args...)
	return err
}

// DeleteSubject implements Storage. Removes the subject's event rows and any
// subscriber rows for the same line, returning the combined count.
func (s *pg) DeleteSubject(ctx context.Context, project, subject string) (int64, error) {
	tag, err := s.q.Exec(ctx,
		`DELETE FROM cdr_events WHERE project = $1 AND subject = $2`, project, subject)
	if err != nil {
		return 0, err
	}
	n := tag.RowsAffected()

	tag, err = s.q.Exec(ctx,
		`DELETE FROM subscriber_records WHERE project = $1 AND line = $2`, project, subject)
	if err != nil {
		return n, err
	}
	return n + tag.RowsAffected(), nil
}

// ListEvents implements Storage. Rows come back in snapshot order.
func (s *pg) ListEvents(ctx context.Context, project string) ([]domain.Event, error) {
	rows, err := s.q.Query(ctx, `
		SELECT id::text, project, subject, counterpart, counterpart_name, kind,
			direction, type_label, ts, duration_seconds, device_id,
			location_raw, source_file_id, ingest_seq
		FROM cdr_events
		WHERE project = $1
		ORDER BY ts, ingest_seq`, project)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Event
	for rows.Next() {
		var e domain.Event
		var kind, direction string
		if err := rows.Scan(
			&e.ID, &e.Project, &e.Subject, &e.Counterpart, &e.CounterpartName,
			&kind, &direction, &e.TypeLabel, &e.Timestamp, &e.DurationSeconds,
			&e.DeviceID, &e.LocationRaw, &e.SourceFileID, &e.IngestSeq,
		); err != nil {
			return nil, err
		}
		e.Kind = domain.Kind(kind)
		e.Direction = domain.Direction(direction)
		out = append(out, e)
	}
	return out, rows.Err()
}

// ListSubscribers implements Storage
func (s *pg) ListSubscribers(ctx context.Context, project string) ([]domain.SubscriberRecord, error) {
	rows, err := s.q.Query(ctx, `
		SELECT project, line, name, national_id, device_id, source_file_id
		FROM subscriber_records
		WHERE project = $1
		ORDER BY id`, project)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.SubscriberRecord
	for rows.Next() {
		var r domain.SubscriberRecord
		if err := rows.Scan(&r.Project, &r.Line, &r.Name, &r.NationalID, &r.DeviceID, &r.SourceFileID); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// Version implements Storage. Unknown projects report version 0.
func (s *pg) Version(ctx context.Context, project string) (int64, error) {
	var v int64
	err := s.q.QueryRow(ctx,
		`SELECT COALESCE((SELECT version FROM project_versions WHERE project = $1), 0)`,
		project).Scan(&v)
	return v, err
}

// BumpVersion implements Storage
func (s *pg) BumpVersion(ctx context.Context, project string) (int64, error) {
	var v int64
	err := s.q.QueryRow(ctx, `
		INSERT INTO project_versions (project, version) VALUES ($1, 1)
		ON CONFLICT (project) DO UPDATE SET version = project_versions.version + 1
		RETURNING version`, project).Scan(&v)
	return v, err
}
