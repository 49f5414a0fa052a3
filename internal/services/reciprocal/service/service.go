// Package service implements the windowed reciprocal resolver
package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"callsift/internal/core/geo"
	"callsift/internal/core/normalize"
	perr "callsift/internal/platform/errors"
	evdomain "callsift/internal/services/events/domain"
	"callsift/internal/services/reciprocal/domain"
)

// Config for the reciprocal service
type Config struct {
	// DefaultToleranceSeconds applies when a request omits the tolerance
	DefaultToleranceSeconds float64

	// MaxParallel bounds the worker pool for project-wide batch resolution
	MaxParallel int

	// Band disambiguates coordinates embedded in location text
	Band geo.Band
}

// Service resolves counterpart state through the counterpart's own records
type Service struct {
	snaps evdomain.SnapshotPort
	cfg   Config

	mu  sync.Mutex
	idx map[string]*pairIndex
}

// New constructs the reciprocal service
func New(snaps evdomain.SnapshotPort, cfg Config) *Service {
	if cfg.DefaultToleranceSeconds <= 0 {
		cfg.DefaultToleranceSeconds = 3
	}
	if cfg.MaxParallel <= 0 {
		cfg.MaxParallel = 4
	}
	return &Service{snaps: snaps, cfg: cfg, idx: make(map[string]*pairIndex)}
}

// pairKey identifies one directed (author, counterpart) stream
type pairKey struct {
	subject     string
	counterpart string
}

// pairIndex amortizes repeated lookups over one snapshot: events grouped by
// their directed pair, kept in snapshot order (timestamp, then ingest)
type pairIndex struct {
	version int64
	pairs   map[pairKey][]evdomain.Event
}

func buildIndex(snap *evdomain.Snapshot) *pairIndex {
	idx := &pairIndex{version: snap.Version, pairs: make(map[pairKey][]evdomain.Event)}
	for _, e := range snap.Events {
		if e.Counterpart == "" {
			continue
		}
		k := pairKey{subject: e.Subject, counterpart: e.Counterpart}
		idx.pairs[k] = append(idx.pairs[k], e)
	}
	return idx
}

func (s *Service) indexFor(snap *evdomain.Snapshot) *pairIndex {
	s.mu.Lock()
	defer s.mu.Unlock()
	if idx := s.idx[snap.Project]; idx != nil && idx.version == snap.Version {
		return idx
	}
	idx := buildIndex(snap)
	s.idx[snap.Project] = idx
	return idx
}

// Resolve finds the counterpart's matching record for one directed event.
// Matched false means no record exists inside the window, the expected
// outcome when the counterpart's line was never ingested.
func (s *Service) Resolve(ctx context.Context, in domain.ResolveInput) (domain.ResolveResult, error) {
	if in.ToleranceSeconds < 0 {
		return domain.ResolveResult{}, perr.InvalidArgf("tolerance must not be negative")
	}

	snap, err := s.snaps.Snapshot(ctx, in.Project)
	if err != nil {
		return domain.ResolveResult{}, err
	}
	if in.ExpectedVersion != 0 && snap.Version != in.ExpectedVersion {
		return domain.ResolveResult{}, perr.StaleSnapshotf(
			"store moved from version %d to %d", in.ExpectedVersion, snap.Version)
	}

	tol := in.ToleranceSeconds
	if tol == 0 {
		tol = s.cfg.DefaultToleranceSeconds
	}

	idx := s.indexFor(snap)
	st, ok := s.resolveOne(idx,
		normalize.Number(in.Subject), normalize.Number(in.Counterpart),
		time.Unix(in.Timestamp, 0).UTC(), in.EventID, tol)
	if !ok {
		return domain.ResolveResult{Matched: false}, nil
	}
	return domain.ResolveResult{Matched: true, State: &st}, nil
}

// resolveOne searches the counterpart-authored stream C -> S inside the
// inclusive symmetric window. Tie-break: smallest absolute delta, then the
// most recently ingested record.
func (s *Service) resolveOne(
	idx *pairIndex,
	subject, counterpart string,
	at time.Time,
	excludeID string,
	tolSeconds float64,
) (domain.CounterpartState, bool) {
	candidates := idx.pairs[pairKey{subject: counterpart, counterpart: subject}]
	if len(candidates) == 0 {
		return domain.CounterpartState{}, false
	}

	tol := time.Duration(tolSeconds * float64(time.Second))
	lo := at.Add(-tol)
	hi := at.Add(tol)

	// first candidate not before the window start
	start := sort.Search(len(candidates), func(i int) bool {
		return !candidates[i].Timestamp.Before(lo)
	})

	var best *evdomain.Event
	var bestDelta time.Duration
	for i := start; i < len(candidates); i++ {
		c := &candidates[i]
		if c.Timestamp.After(hi) {
			break
		}
		if excludeID != "" && c.ID == excludeID {
			continue
		}
		delta := c.Timestamp.Sub(at)
		if delta < 0 {
			delta = -delta
		}
		if best == nil || delta < bestDelta || (delta == bestDelta && c.IngestSeq > best.IngestSeq) {
			best = c
			bestDelta = delta
		}
	}
	if best == nil {
		return domain.CounterpartState{}, false
	}

	st := domain.CounterpartState{
		EventID:      best.ID,
		Counterpart:  counterpart,
		DeviceID:     best.DeviceID,
		LocationRaw:  best.LocationRaw,
		Timestamp:    best.Timestamp,
		DeltaSeconds: bestDelta.Seconds(),
	}
	if p, ok := geo.ParseLatLon(best.LocationRaw, s.cfg.Band); ok {
		st.Location = &p
	}
	return st, true
}

// ResolveAll resolves every directed event in the project, sharded by subject
// over a bounded worker pool. Cancellation is cooperative: the context is
// checked between shards and a cancelled run reports Cancelled, never a
// partial result.
func (s *Service) ResolveAll(ctx context.Context, in domain.BatchInput) (domain.BatchReport, error) {
	if in.ToleranceSeconds < 0 {
		return domain.BatchReport{}, perr.InvalidArgf("tolerance must not be negative")
	}

	snap, err := s.snaps.Snapshot(ctx, in.Project)
	if err != nil {
		return domain.BatchReport{}, err
	}
	if in.ExpectedVersion != 0 && snap.Version != in.ExpectedVersion {
		return domain.BatchReport{}, perr.StaleSnapshotf(
			"store moved from version %d to %d", in.ExpectedVersion, snap.Version)
	}

	tol := in.ToleranceSeconds
	if tol == 0 {
		tol = s.cfg.DefaultToleranceSeconds
	}

	subjects := in.Subjects
	if len(subjects) == 0 {
		subjects = snap.Subjects()
	} else {
		for i := range subjects {
			subjects[i] = normalize.Number(subjects[i])
		}
		sort.Strings(subjects)
	}

	idx := s.indexFor(snap)

	type shardOut struct {
		scanned int
		matches []domain.Resolution
	}
	outs := make([]shardOut, len(subjects))

	sem := make(chan struct{}, s.cfg.MaxParallel)
	var wg sync.WaitGroup

shards:
	for i, subj := range subjects {
		select {
		case <-ctx.Done():
			break shards
		default:
		}

		sem <- struct{}{}
		wg.Add(1)
		go func(i int, subj string) {
			defer wg.Done()
			defer func() { <-sem }()

			var o shardOut
			for _, e := range snap.EventsFor(subj, evdomain.Window{}) {
				if e.Counterpart == "" || e.Counterpart == subj {
					continue
				}
				o.scanned++
				st, ok := s.resolveOne(idx, subj, e.Counterpart, e.Timestamp, e.ID, tol)
				if !ok {
					continue
				}
				o.matches = append(o.matches, domain.Resolution{
					EventID:     e.ID,
					Subject:     subj,
					Counterpart: e.Counterpart,
					Timestamp:   e.Timestamp,
					State:       st,
				})
			}
			outs[i] = o
		}(i, subj)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return domain.BatchReport{}, perr.Cancelledf("batch resolution cancelled: %v", err)
	}

	report := domain.BatchReport{
		Project:          snap.Project,
		Version:          snap.Version,
		ToleranceSeconds: tol,
	}
	for _, o := range outs {
		report.Scanned += o.scanned
		report.Matched += len(o.matches)
		report.Resolutions = append(report.Resolutions, o.matches...)
	}
	return report, nil
}
