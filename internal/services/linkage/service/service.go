// Package service implements the entity linkage resolver
package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"callsift/internal/core/normalize"
	"callsift/internal/platform/cache"
	perr "callsift/internal/platform/errors"
	"callsift/internal/platform/logger"
	evdomain "callsift/internal/services/events/domain"
	"callsift/internal/services/linkage/domain"
)

// Pass names
const (
	PassDevices = "devices"
	PassNames   = "names"
	PassIDs     = "ids"
)

// Config for the linkage service
type Config struct {
	CacheTTL time.Duration
}

// Service runs the three linkage passes over subscriber identity rows.
// Results are always a full recompute of the current snapshot: deletions can
// remove the only evidence tying two identifiers together, so incremental
// updates are not offered.
type Service struct {
	snaps evdomain.SnapshotPort
	cache cache.Cache
	cfg   Config
}

// New constructs the linkage service
func New(snaps evdomain.SnapshotPort, c cache.Cache, cfg Config) *Service {
	return &Service{snaps: snaps, cache: c, cfg: cfg}
}

// CommonDevices reports devices tied to more than one distinct line
func (s *Service) CommonDevices(ctx context.Context, in domain.Input) (domain.Report, error) {
	return s.run(ctx, in, PassDevices, commonDevices)
}

// CommonNames reports folded subscriber names tied to more than one distinct line
func (s *Service) CommonNames(ctx context.Context, in domain.Input) (domain.Report, error) {
	return s.run(ctx, in, PassNames, commonNames)
}

// CommonIDs reports national identifiers tied to more than one distinct line
func (s *Service) CommonIDs(ctx context.Context, in domain.Input) (domain.Report, error) {
	return s.run(ctx, in, PassIDs, commonIDs)
}

func (s *Service) run(
	ctx context.Context,
	in domain.Input,
	pass string,
	fn func(*evdomain.Snapshot) []domain.Group,
) (domain.Report, error) {
	snap, err := s.snaps.Snapshot(ctx, in.Project)
	if err != nil {
		return domain.Report{}, err
	}
	if in.ExpectedVersion != 0 && snap.Version != in.ExpectedVersion {
		return domain.Report{}, perr.StaleSnapshotf(
			"store moved from version %d to %d", in.ExpectedVersion, snap.Version)
	}

	key := fmt.Sprintf("linkage:%s:%d:%s", in.Project, snap.Version, pass)
	if b, ok, cerr := s.cache.Get(ctx, key); cerr == nil && ok {
		var out domain.Report
		if json.Unmarshal(b, &out) == nil {
			return out, nil
		}
	}

	out := domain.Report{
		Project: snap.Project,
		Version: snap.Version,
		Pass:    pass,
		Groups:  fn(snap),
	}

	if b, merr := json.Marshal(out); merr == nil {
		if cerr := s.cache.Set(ctx, key, b, s.cfg.CacheTTL); cerr != nil {
			logger.C(ctx).Warn().Err(cerr).Msg("linkage cache set failed")
		}
	}
	return out, nil
}

// agg accumulates one group's lines and record count during a pass
type agg struct {
	lines map[string]struct{}
	label string
	total int
}

func newAgg() *agg { return &agg{lines: make(map[string]struct{})} }

// commonDevices groups subscriber records by device identifier.
// A device tied to a single line is never reported, however often it was seen.
func commonDevices(snap *evdomain.Snapshot) []domain.Group {
	groups := make(map[string]*agg)
	for _, r := range snap.Subscribers {
		if r.DeviceID == "" || r.Line == "" {
			continue
		}
		a := groups[r.DeviceID]
		if a == nil {
			a = newAgg()
			groups[r.DeviceID] = a
		}
		a.lines[r.Line] = struct{}{}
		a.total++
	}
	return finish(groups)
}

// commonNames groups records carrying a valid national identifier by folded
// name. The identifier restriction keeps homonyms from linking strangers.
func commonNames(snap *evdomain.Snapshot) []domain.Group {
	groups := make(map[string]*agg)
	for _, r := range snap.Subscribers {
		if r.Line == "" || !normalize.ValidNationalID(r.NationalID) {
			continue
		}
		name := normalize.Name(r.Name)
		if name == "" {
			continue
		}
		a := groups[name]
		if a == nil {
			a = newAgg()
			groups[name] = a
		}
		a.lines[r.Line] = struct{}{}
		a.total++
	}
	return finish(groups)
}

// commonIDs groups the same restricted records by the identifier itself and
// carries the first non-empty name seen as a display label
func commonIDs(snap *evdomain.Snapshot) []domain.Group {
	groups := make(map[string]*agg)
	for _, r := range snap.Subscribers {
		if r.Line == "" || !normalize.ValidNationalID(r.NationalID) {
			continue
		}
		id := normalize.NationalID(r.NationalID)
		a := groups[id]
		if a == nil {
			a = newAgg()
			groups[id] = a
		}
		a.lines[r.Line] = struct{}{}
		a.total++
		if a.label == "" && r.Name != "" {
			a.label = r.Name
		}
	}
	return finish(groups)
}

// finish filters single-line groups and orders the rest deterministically:
// descending distinct count, ties by key ascending; numbers sorted-unique
func finish(groups map[string]*agg) []domain.Group {
	out := make([]domain.Group, 0, len(groups))
	for key, a := range groups {
		if len(a.lines) <= 1 {
			continue
		}
		numbers := make([]string, 0, len(a.lines))
		for l := range a.lines {
			numbers = append(numbers, l)
		}
		sort.Strings(numbers)
		out = append(out, domain.Group{
			Key:           key,
			Label:         a.label,
			DistinctCount: len(a.lines),
			Numbers:       numbers,
			TotalCount:    a.total,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].DistinctCount != out[j].DistinctCount {
			return out[i].DistinctCount > out[j].DistinctCount
		}
		return out[i].Key < out[j].Key
	})
	return out
}
