// Package service implements the event store write path and snapshot provider
package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"callsift/internal/core/normalize"
	"callsift/internal/modkit/repokit"
	perr "callsift/internal/platform/errors"
	"callsift/internal/services/events/domain"
	"callsift/internal/services/events/repo"
)

// Config for the events service
type Config struct {
	// OutgoingMarkers and IncomingMarkers are folded substrings matched
	// against the free-text type label to infer direction at ingest.
	// CDR exports label rows in the operator's language, so these are
	// configuration, not constants.
	OutgoingMarkers []string
	IncomingMarkers []string

	// MaxBatch caps one write call
	MaxBatch int
}

// Service implements domain.WriterPort and domain.SnapshotPort
type Service struct {
	tx     repokit.TxRunner
	binder repokit.Binder[repo.Storage]
	cfg    Config

	mu    sync.Mutex
	snaps map[string]*domain.Snapshot
}

// New constructs the events service
func New(tx repokit.TxRunner, binder repokit.Binder[repo.Storage], cfg Config) *Service {
	if cfg.MaxBatch <= 0 {
		cfg.MaxBatch = 10000
	}
	for i, m := range cfg.OutgoingMarkers {
		cfg.OutgoingMarkers[i] = normalize.Name(m)
	}
	for i, m := range cfg.IncomingMarkers {
		cfg.IncomingMarkers[i] = normalize.Name(m)
	}
	return &Service{
		tx:     tx,
		binder: binder,
		cfg:    cfg,
		snaps:  make(map[string]*domain.Snapshot),
	}
}

// EnsureSchema creates tables on boot
func (s *Service) EnsureSchema(ctx context.Context) error {
	return s.binder.Bind(s.tx).EnsureSchema(ctx)
}

// WriteEvents implements domain.WriterPort
func (s *Service) WriteEvents(ctx context.Context, project string, rows []domain.EventWrite) (int, error) {
	if project == "" {
		return 0, perr.InvalidArgf("project required")
	}
	if len(rows) > s.cfg.MaxBatch {
		return 0, perr.InvalidArgf("batch exceeds %d rows", s.cfg.MaxBatch)
	}

	evs := make([]domain.Event, 0, len(rows))
	for i, r := range rows {
		if r.Subject == "" {
			return 0, perr.InvalidArgf("row %d: subject required", i)
		}
		if !domain.ValidKind(r.Kind) {
			return 0, perr.InvalidArgf("row %d: unknown kind %q", i, r.Kind)
		}
		dur := r.DurationSeconds
		if dur < 0 {
			dur = 0
		}
		evs = append(evs, domain.Event{
			ID:              uuid.NewString(),
			Project:         project,
			Subject:         normalize.Number(r.Subject),
			Counterpart:     normalize.Number(r.Counterpart),
			CounterpartName: r.CounterpartName,
			Kind:            r.Kind,
			Direction:       s.inferDirection(r.TypeLabel),
			TypeLabel:       r.TypeLabel,
			Timestamp:       time.Unix(r.Timestamp, 0).UTC(),
			DurationSeconds: dur,
			DeviceID:        normalize.DeviceID(r.DeviceID),
			LocationRaw:     r.LocationRaw,
			SourceFileID:    r.SourceFileID,
		})
	}

	err := repokit.WithTx(ctx, s.tx, func(q repokit.Queryer) error {
		st := s.binder.Bind(q)
		if err := st.InsertEvents(ctx, evs); err != nil {
			return err
		}
		_, err := st.BumpVersion(ctx, project)
		return err
	})
	if err != nil {
		return 0, err
	}
	s.dropMemo(project)
	return len(evs), nil
}

// WriteSubscribers implements domain.WriterPort
func (s *Service) WriteSubscribers(ctx context.Context, project string, rows []domain.SubscriberWrite) (int, error) {
	if project == "" {
		return 0, perr.InvalidArgf("project required")
	}
	if len(rows) > s.cfg.MaxBatch {
		return 0, perr.InvalidArgf("batch exceeds %d rows", s.cfg.MaxBatch)
	}

	recs := make([]domain.SubscriberRecord, 0, len(rows))
	for i, r := range rows {
		if r.Line == "" {
			return 0, perr.InvalidArgf("row %d: line required", i)
		}
		recs = append(recs, domain.SubscriberRecord{
			Project:      project,
			Line:         normalize.Number(r.Line),
			Name:         r.Name,
			NationalID:   normalize.NationalID(r.NationalID),
			DeviceID:     normalize.DeviceID(r.DeviceID),
			SourceFileID: r.SourceFileID,
		})
	}

	err := repokit.WithTx(ctx, s.tx, func(q repokit.Queryer) error {
		st := s.binder.Bind(q)
		if err := st.InsertSubscribers(ctx, recs); err != nil {
			return err
		}
		_, err := st.BumpVersion(ctx, project)
		return err
	})
	if err != nil {
		return 0, err
	}
	s.dropMemo(project)
	return len(recs), nil
}

// DeleteSubject implements domain.WriterPort
func (s *Service) DeleteSubject(ctx context.Context, project, subject string) (int64, error) {
	if project == "" || subject == "" {
		return 0, perr.InvalidArgf("project and subject required")
	}
	subject = normalize.Number(subject)

	var removed int64
	err := repokit.WithTx(ctx, s.tx, func(q repokit.Queryer) error {
		st := s.binder.Bind(q)
		n, err := st.DeleteSubject(ctx, project, subject)
		if err != nil {
			return err
		}
		removed = n
		_, err = st.BumpVersion(ctx, project)
		return err
	})
	if err != nil {
		return 0, err
	}
	s.dropMemo(project)
	return removed, nil
}

// Invalidate implements domain.WriterPort
func (s *Service) Invalidate(ctx context.Context, project string) (int64, error) {
	if project == "" {
		return 0, perr.InvalidArgf("project required")
	}
	v, err := s.binder.Bind(s.tx).BumpVersion(ctx, project)
	if err != nil {
		return 0, err
	}
	s.dropMemo(project)
	return v, nil
}

// Snapshot implements domain.SnapshotPort. The loaded snapshot is memoized
// per project and reused until the store version moves past it.
func (s *Service) Snapshot(ctx context.Context, project string) (*domain.Snapshot, error) {
	if project == "" {
		return nil, perr.InvalidArgf("project required")
	}

	v, err := s.binder.Bind(s.tx).Version(ctx, project)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	memo := s.snaps[project]
	s.mu.Unlock()
	if memo != nil && memo.Version == v {
		return memo, nil
	}

	var snap *domain.Snapshot
	err = repokit.WithTx(ctx, s.tx, func(q repokit.Queryer) error {
		st := s.binder.Bind(q)
		ver, err := st.Version(ctx, project)
		if err != nil {
			return err
		}
		evs, err := st.ListEvents(ctx, project)
		if err != nil {
			return err
		}
		subs, err := st.ListSubscribers(ctx, project)
		if err != nil {
			return err
		}
		snap = domain.NewSnapshot(project, ver, evs, subs)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.snaps[project] = snap
	s.mu.Unlock()
	return snap, nil
}

// Version implements domain.SnapshotPort
func (s *Service) Version(ctx context.Context, project string) (int64, error) {
	if project == "" {
		return 0, perr.InvalidArgf("project required")
	}
	return s.binder.Bind(s.tx).Version(ctx, project)
}

func (s *Service) dropMemo(project string) {
	s.mu.Lock()
	delete(s.snaps, project)
	s.mu.Unlock()
}

// inferDirection maps the free-text type label onto the closed enum once,
// at the ingest boundary
func (s *Service) inferDirection(label string) domain.Direction {
	if label == "" {
		return domain.DirectionUnknown
	}
	folded := normalize.Name(label)
	for _, m := range s.cfg.OutgoingMarkers {
		if m != "" && strings.Contains(folded, m) {
			return domain.DirectionOutgoing
		}
	}
	for _, m := range s.cfg.IncomingMarkers {
		if m != "" && strings.Contains(folded, m) {
			return domain.DirectionIncoming
		}
	}
	return domain.DirectionUnknown
}
