// Package service implements the contact and location aggregator
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
	ptime "callsift/internal/platform/time"
	evdomain "callsift/internal/services/events/domain"
	"callsift/internal/services/profile/domain"
)

// Config for the profile service
type Config struct {
	// TopLimit caps each table when a top view is requested
	TopLimit int

	// CacheTTL bounds how long memoized summaries live
	CacheTTL time.Duration
}

// Service implements the aggregator over event store snapshots
type Service struct {
	snaps evdomain.SnapshotPort
	cache cache.Cache
	cfg   Config
}

// New constructs the profile service
func New(snaps evdomain.SnapshotPort, c cache.Cache, cfg Config) *Service {
	if cfg.TopLimit <= 0 {
		cfg.TopLimit = 20
	}
	return &Service{snaps: snaps, cache: c, cfg: cfg}
}

// Summarize builds the per-subject summary for the given window.
// Results are memoized keyed by the snapshot version, so identical calls
// against an unchanged store are byte-identical and cheap.
func (s *Service) Summarize(ctx context.Context, in domain.SummaryInput) (domain.Summary, error) {
	if in.Since != 0 && in.Until != 0 && in.Until < in.Since {
		return domain.Summary{}, perr.InvalidArgf("until before since")
	}

	snap, err := s.snaps.Snapshot(ctx, in.Project)
	if err != nil {
		return domain.Summary{}, err
	}
	if in.ExpectedVersion != 0 && snap.Version != in.ExpectedVersion {
		return domain.Summary{}, perr.StaleSnapshotf(
			"store moved from version %d to %d", in.ExpectedVersion, snap.Version)
	}

	subject := normalize.Number(in.Subject)
	key := fmt.Sprintf("profile:%s:%d:%s:%d:%d:%v",
		in.Project, snap.Version, subject, in.Since, in.Until, in.Top)

	if b, ok, cerr := s.cache.Get(ctx, key); cerr == nil && ok {
		var out domain.Summary
		if json.Unmarshal(b, &out) == nil {
			return out, nil
		}
	}

	w := window(in.Since, in.Until)
	top := 0
	if in.Top {
		top = s.cfg.TopLimit
	}
	out := summarize(snap, subject, w, top)

	if b, merr := json.Marshal(out); merr == nil {
		if cerr := s.cache.Set(ctx, key, b, s.cfg.CacheTTL); cerr != nil {
			logger.C(ctx).Warn().Err(cerr).Msg("profile cache set failed")
		}
	}
	return out, nil
}

func window(since, until int64) evdomain.Window {
	var w evdomain.Window
	if since != 0 {
		w.Since = time.Unix(since, 0).UTC()
	}
	if until != 0 {
		w.Until = time.Unix(until, 0).UTC()
	}
	return w
}

// summarize is the pure aggregation: no side effects, deterministic output
func summarize(snap *evdomain.Snapshot, subject string, w evdomain.Window, top int) domain.Summary {
	events := snap.EventsFor(subject, w)

	out := domain.Summary{
		Project:    snap.Project,
		Subject:    subject,
		Version:    snap.Version,
		EventCount: len(events),
		Since:      ptime.Ptr(w.Since),
		Until:      ptime.Ptr(w.Until),
	}

	type cpAgg struct {
		row   domain.CounterpartRow
		first int
	}
	type locAgg struct {
		row   domain.LocationRow
		first int
	}
	type devAgg struct {
		row   domain.DeviceRow
		first int
	}

	cps := make(map[string]*cpAgg)
	locs := make(map[string]*locAgg)
	devs := make(map[string]*devAgg)

	for i, e := range events {
		// counterpart table: self-pairs and project-internal lines are
		// excluded so internal traffic is never double-counted as contact
		c := e.Counterpart
		if c != "" && c != subject && !snap.IsSubject(c) {
			a := cps[c]
			if a == nil {
				a = &cpAgg{row: domain.CounterpartRow{Number: c}, first: i}
				cps[c] = a
			}
			a.row.Count++
			a.row.TotalDurationSeconds += int64(e.DurationSeconds)
			if e.CounterpartName != "" {
				a.row.Name = e.CounterpartName
			}
		}

		if e.LocationRaw != "" {
			a := locs[e.LocationRaw]
			if a == nil {
				a = &locAgg{row: domain.LocationRow{Location: e.LocationRaw}, first: i}
				locs[e.LocationRaw] = a
			}
			a.row.Count++
		}

		if d := e.DeviceID; d != "" {
			a := devs[d]
			if a == nil {
				a = &devAgg{
					row:   domain.DeviceRow{DeviceID: d, FirstSeen: e.Timestamp, LastSeen: e.Timestamp},
					first: i,
				}
				devs[d] = a
			}
			a.row.Count++
			if e.Timestamp.Before(a.row.FirstSeen) {
				a.row.FirstSeen = e.Timestamp
			}
			if e.Timestamp.After(a.row.LastSeen) {
				a.row.LastSeen = e.Timestamp
			}
		}
	}

	cpList := make([]*cpAgg, 0, len(cps))
	for _, a := range cps {
		cpList = append(cpList, a)
	}
	sort.Slice(cpList, func(i, j int) bool {
		if cpList[i].row.Count != cpList[j].row.Count {
			return cpList[i].row.Count > cpList[j].row.Count
		}
		return cpList[i].first < cpList[j].first
	})
	for _, a := range cpList {
		out.Counterparts = append(out.Counterparts, a.row)
	}

	locList := make([]*locAgg, 0, len(locs))
	for _, a := range locs {
		locList = append(locList, a)
	}
	sort.Slice(locList, func(i, j int) bool {
		if locList[i].row.Count != locList[j].row.Count {
			return locList[i].row.Count > locList[j].row.Count
		}
		return locList[i].first < locList[j].first
	})
	for _, a := range locList {
		out.Locations = append(out.Locations, a.row)
	}

	devList := make([]*devAgg, 0, len(devs))
	for _, a := range devs {
		devList = append(devList, a)
	}
	sort.Slice(devList, func(i, j int) bool {
		if devList[i].row.Count != devList[j].row.Count {
			return devList[i].row.Count > devList[j].row.Count
		}
		return devList[i].first < devList[j].first
	})
	for _, a := range devList {
		out.Devices = append(out.Devices, a.row)
	}

	if top > 0 {
		if len(out.Counterparts) > top {
			out.Counterparts = out.Counterparts[:top]
		}
		if len(out.Locations) > top {
			out.Locations = out.Locations[:top]
		}
		if len(out.Devices) > top {
			out.Devices = out.Devices[:top]
		}
	}
	return out
}
