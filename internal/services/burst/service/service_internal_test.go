package service

import (
	"math"
	"testing"
	"time"

	evdomain "callsift/internal/services/events/domain"
)

func at(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t
}

var t0 = at("2024-04-30T12:00:00Z")

func snapWith(events []evdomain.Event) *evdomain.Snapshot {
	return evdomain.NewSnapshot("op-1", 4, events, nil)
}

func ev(counterpart string, offset time.Duration, dir evdomain.Direction) evdomain.Event {
	return evdomain.Event{
		Subject:     "5321234567",
		Counterpart: counterpart,
		Direction:   dir,
		Timestamp:   t0.Add(offset),
	}
}

func TestAnalyze_Partition(t *testing.T) {
	t.Parallel()

	snap := snapWith([]evdomain.Event{
		ev("5551112233", -2*time.Hour, evdomain.DirectionOutgoing),           // before
		ev("5551112233", -30*time.Minute, evdomain.DirectionOutgoing),        // critical boundary
		ev("5551112233", -10*time.Minute, evdomain.DirectionIncoming),        // critical
		ev("5554445566", 0, evdomain.DirectionOutgoing),                      // critical
		ev("5551112233", 30*time.Minute, evdomain.DirectionUnknown),          // critical boundary
		ev("5551112233", 30*time.Minute+time.Second, evdomain.DirectionUnknown), // after
		ev("5551112233", 5*time.Hour, evdomain.DirectionIncoming),            // after
	})

	got := analyze(snap, "5321234567", t0, 24, 30, 24, "", 5)

	if got.BeforeCount != 1 || got.CriticalCount != 4 || got.AfterCount != 2 {
		t.Fatalf("partition = before %d critical %d after %d",
			got.BeforeCount, got.CriticalCount, got.AfterCount)
	}
	// 4 events in a 30-minute window is 8/hour; 3 baseline events over 48h
	if math.Abs(got.CriticalRate-8) > 1e-9 {
		t.Fatalf("critical rate = %v", got.CriticalRate)
	}
	if math.Abs(got.BaselineRate-3.0/48) > 1e-9 {
		t.Fatalf("baseline rate = %v", got.BaselineRate)
	}
	if math.Abs(got.BurstIndex-128) > 1e-9 {
		t.Fatalf("burst index = %v", got.BurstIndex)
	}

	if len(got.TopCritical) != 2 || got.TopCritical[0].Number != "5551112233" || got.TopCritical[0].Count != 3 {
		t.Fatalf("top critical = %+v", got.TopCritical)
	}

	if got.CriticalDirections.Outgoing != 2 || got.CriticalDirections.Incoming != 1 || got.CriticalDirections.Unknown != 1 {
		t.Fatalf("critical directions = %+v", got.CriticalDirections)
	}
}

func TestAnalyze_BurstIndexSanity(t *testing.T) {
	t.Parallel()

	// critical activity with empty baseline: index equals the raw count
	snap := snapWith([]evdomain.Event{
		ev("5551112233", time.Minute, evdomain.DirectionOutgoing),
		ev("5551112233", 2*time.Minute, evdomain.DirectionOutgoing),
		ev("5551112233", 3*time.Minute, evdomain.DirectionOutgoing),
	})
	got := analyze(snap, "5321234567", t0, 24, 30, 24, "", 5)
	if got.BurstIndex != 3 {
		t.Fatalf("burst index with no baseline = %v, want 3", got.BurstIndex)
	}

	// all buckets empty: index is zero
	got = analyze(snapWith(nil), "5321234567", t0, 24, 30, 24, "", 5)
	if got.BurstIndex != 0 || got.CriticalRate != 0 || got.BaselineRate != 0 {
		t.Fatalf("empty report = %+v", got)
	}
}

func TestAnalyze_Exclusions(t *testing.T) {
	t.Parallel()

	events := []evdomain.Event{
		ev("5321234567", time.Minute, evdomain.DirectionOutgoing), // self
		ev("5419876543", time.Minute, evdomain.DirectionOutgoing), // project-internal
		{Subject: "5419876543", Counterpart: "5321234567", Timestamp: t0},
		ev("5551112233", time.Minute, evdomain.DirectionOutgoing), // external
	}
	snap := snapWith(events)

	got := analyze(snap, "5321234567", t0, 1, 30, 1, "", 5)
	if got.CriticalCount != 1 {
		t.Fatalf("exclusions failed: %+v", got)
	}

	// single-target view counts only the named counterpart
	got = analyze(snap, "5321234567", t0, 1, 30, 1, "5419876543", 5)
	if got.CriticalCount != 1 || got.TopCritical[0].Number != "5419876543" {
		t.Fatalf("single-target view = %+v", got)
	}
}

func TestAnalyze_TopCap(t *testing.T) {
	t.Parallel()

	var events []evdomain.Event
	numbers := []string{"5550000001", "5550000002", "5550000003", "5550000004", "5550000005", "5550000006", "5550000007"}
	for i, n := range numbers {
		for j := 0; j <= i; j++ {
			events = append(events, ev(n, time.Duration(j)*time.Second, evdomain.DirectionOutgoing))
		}
	}
	got := analyze(snapWith(events), "5321234567", t0, 1, 30, 1, "", 5)
	if len(got.TopCritical) != 5 {
		t.Fatalf("top cap = %d, want 5", len(got.TopCritical))
	}
	if got.TopCritical[0].Number != "5550000007" || got.TopCritical[0].Count != 7 {
		t.Fatalf("top ranking = %+v", got.TopCritical)
	}
}
