// Package service implements the event-centered burst analyzer
package service

import (
	"context"
	"sort"
	"time"

	"callsift/internal/core/normalize"
	perr "callsift/internal/platform/errors"
	evdomain "callsift/internal/services/events/domain"
	"callsift/internal/services/burst/domain"
)

// Config for the burst service
type Config struct {
	// TopLimit caps the critical-bucket counterpart ranking
	TopLimit int
}

// Service partitions a subject's activity around a reference instant
type Service struct {
	snaps evdomain.SnapshotPort
	cfg   Config
}

// New constructs the burst service
func New(snaps evdomain.SnapshotPort, cfg Config) *Service {
	if cfg.TopLimit <= 0 {
		cfg.TopLimit = 5
	}
	return &Service{snaps: snaps, cfg: cfg}
}

// Analyze runs the burst partition. Pure and idempotent over the snapshot:
// re-running with different parameters has no side effects.
func (s *Service) Analyze(ctx context.Context, in domain.AnalyzeInput) (domain.Report, error) {
	if in.BeforeHours < 0 || in.AfterHours < 0 {
		return domain.Report{}, perr.InvalidArgf("window hours must not be negative")
	}
	if in.CriticalMinutes <= 0 {
		return domain.Report{}, perr.InvalidArgf("critical minutes must be positive")
	}

	snap, err := s.snaps.Snapshot(ctx, in.Project)
	if err != nil {
		return domain.Report{}, err
	}
	if in.ExpectedVersion != 0 && snap.Version != in.ExpectedVersion {
		return domain.Report{}, perr.StaleSnapshotf(
			"store moved from version %d to %d", in.ExpectedVersion, snap.Version)
	}

	return analyze(snap,
		normalize.Number(in.Subject),
		time.Unix(in.ReferenceInstant, 0).UTC(),
		in.BeforeHours, in.CriticalMinutes, in.AfterHours,
		normalize.Number(in.Counterpart),
		s.cfg.TopLimit,
	), nil
}

func analyze(
	snap *evdomain.Snapshot,
	subject string,
	t0 time.Time,
	beforeHours, criticalMinutes, afterHours float64,
	counterpart string,
	topLimit int,
) domain.Report {
	out := domain.Report{
		Project: snap.Project,
		Version: snap.Version,
		Subject: subject,
		T0:      t0,
	}

	critical := time.Duration(criticalMinutes * float64(time.Minute))
	w := evdomain.Window{
		Since: t0.Add(-time.Duration(beforeHours * float64(time.Hour))),
		Until: t0.Add(time.Duration(afterHours * float64(time.Hour))),
	}

	critCounts := make(map[string]int)

	for _, e := range snap.EventsFor(subject, w) {
		// self-events never count
		if e.Counterpart == subject {
			continue
		}
		if counterpart != "" {
			// single-target view
			if e.Counterpart != counterpart {
				continue
			}
		} else if e.Counterpart != "" && snap.IsSubject(e.Counterpart) {
			// mirror the aggregator: project-internal traffic is not contact,
			// so burst and contact statistics can never disagree
			continue
		}

		delta := e.Timestamp.Sub(t0)
		switch {
		case delta < -critical:
			out.BeforeCount++
		case delta > critical:
			out.AfterCount++
		default:
			out.CriticalCount++
			if e.Counterpart != "" {
				critCounts[e.Counterpart]++
			}
			bump(&out.CriticalDirections, e.Direction)
		}
		bump(&out.Directions, e.Direction)
	}

	// rates in events per hour; burst index degrades to the raw critical
	// count when there is no baseline to compare against
	out.CriticalRate = float64(out.CriticalCount) / (criticalMinutes / 60)
	if beforeHours+afterHours > 0 {
		out.BaselineRate = float64(out.BeforeCount+out.AfterCount) / (beforeHours + afterHours)
	}
	switch {
	case out.BaselineRate > 0:
		out.BurstIndex = out.CriticalRate / out.BaselineRate
	default:
		out.BurstIndex = float64(out.CriticalCount)
	}

	top := make([]domain.CounterpartCount, 0, len(critCounts))
	for n, c := range critCounts {
		top = append(top, domain.CounterpartCount{Number: n, Count: c})
	}
	sort.Slice(top, func(i, j int) bool {
		if top[i].Count != top[j].Count {
			return top[i].Count > top[j].Count
		}
		return top[i].Number < top[j].Number
	})
	if len(top) > topLimit {
		top = top[:topLimit]
	}
	out.TopCritical = top

	return out
}

func bump(d *domain.DirectionCounts, dir evdomain.Direction) {
	switch dir {
	case evdomain.DirectionOutgoing:
		d.Outgoing++
	case evdomain.DirectionIncoming:
		d.Incoming++
	default:
		d.Unknown++
	}
}
