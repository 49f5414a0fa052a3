// Package service implements the movement anomaly detector
package service

import (
	"context"
	"time"

	"callsift/internal/core/geo"
	"callsift/internal/core/normalize"
	perr "callsift/internal/platform/errors"
	evdomain "callsift/internal/services/events/domain"
	"callsift/internal/services/movement/domain"
)

// Config for the movement service
type Config struct {
	Band geo.Band
}

// Service walks time-ordered location samples and flags impossible travel
type Service struct {
	snaps evdomain.SnapshotPort
	cfg   Config
}

// New constructs the movement service
func New(snaps evdomain.SnapshotPort, cfg Config) *Service {
	return &Service{snaps: snaps, cfg: cfg}
}

// Detect runs the impossible-travel scan for one subject
func (s *Service) Detect(ctx context.Context, in domain.DetectInput) (domain.Report, error) {
	if in.SpeedLimitKmh <= 0 {
		return domain.Report{}, perr.InvalidArgf("speed limit must be positive")
	}
	if in.DistanceToleranceKm < 0 {
		return domain.Report{}, perr.InvalidArgf("distance tolerance must not be negative")
	}
	if in.Since != 0 && in.Until != 0 && in.Until < in.Since {
		return domain.Report{}, perr.InvalidArgf("until before since")
	}

	snap, err := s.snaps.Snapshot(ctx, in.Project)
	if err != nil {
		return domain.Report{}, err
	}
	if in.ExpectedVersion != 0 && snap.Version != in.ExpectedVersion {
		return domain.Report{}, perr.StaleSnapshotf(
			"store moved from version %d to %d", in.ExpectedVersion, snap.Version)
	}

	subject := normalize.Number(in.Subject)
	var w evdomain.Window
	if in.Since != 0 {
		w.Since = time.Unix(in.Since, 0).UTC()
	}
	if in.Until != 0 {
		w.Until = time.Unix(in.Until, 0).UTC()
	}

	// unresolved locations are simply excluded, not errors
	var samples []domain.Sample
	unresolved := 0
	for _, e := range snap.EventsFor(subject, w) {
		p, ok := geo.ParseLatLon(e.LocationRaw, s.cfg.Band)
		if !ok {
			if e.LocationRaw != "" {
				unresolved++
			}
			continue
		}
		samples = append(samples, domain.Sample{
			Lat:         p.Lat,
			Lon:         p.Lon,
			Timestamp:   e.Timestamp,
			LocationRaw: e.LocationRaw,
		})
	}

	return domain.Report{
		Project:     snap.Project,
		Version:     snap.Version,
		Subject:     subject,
		SampleCount: len(samples),
		Unresolved:  unresolved,
		Anomalies:   Detect(samples, in.SpeedLimitKmh, in.DistanceToleranceKm),
	}, nil
}

// Detect flags consecutive sample pairs whose implied speed exceeds the
// limit. Only immediately consecutive observations are compared: the claim
// is that two specific records are mutually inconsistent, never that some
// longer path is implausible. Output keeps input (chronological) order.
func Detect(samples []domain.Sample, speedLimitKmh, distToleranceKm float64) []domain.Anomaly {
	var out []domain.Anomaly
	for i := 1; i < len(samples); i++ {
		p1, p2 := samples[i-1], samples[i]

		dist := geo.DistanceKm(
			geo.Point{Lat: p1.Lat, Lon: p1.Lon},
			geo.Point{Lat: p2.Lat, Lon: p2.Lon},
		)
		// small hops are tower drift, not movement
		if dist < distToleranceKm {
			continue
		}

		elapsed := p2.Timestamp.Sub(p1.Timestamp).Seconds()
		// simultaneous records are not evidence of travel
		if elapsed <= 0 {
			continue
		}

		speed := dist / (elapsed / 3600)
		if speed > speedLimitKmh {
			out = append(out, domain.Anomaly{
				From:           p1,
				To:             p2,
				DistanceKm:     dist,
				ElapsedSeconds: elapsed,
				SpeedKmh:       speed,
			})
		}
	}
	return out
}
