// Package domain defines the event store types every analyzer reads
package domain

import (
	"sort"
	"time"
)

// Kind classifies a communication record
type Kind string

// Kind values
const (
	KindVoice Kind = "voice"
	KindSMS   Kind = "sms"
	KindData  Kind = "data"
)

// ValidKind reports whether k is a known kind
func ValidKind(k Kind) bool {
	switch k {
	case KindVoice, KindSMS, KindData:
		return true
	}
	return false
}

// Direction is the closed direction enum produced once at the ingest boundary.
// Analyzers never pattern-match on free-text labels.
type Direction string

// Direction values
const (
	DirectionOutgoing Direction = "outgoing"
	DirectionIncoming Direction = "incoming"
	DirectionUnknown  Direction = "unknown"
)

// Event is one normalized communication/data-session record.
// Subject owns the record; Counterpart and DeviceID arrive already normalized
// (last 10 digits, >= 13 digit device) and re-normalizing them is a no-op.
type Event struct {
	ID              string
	Project         string
	Subject         string
	Counterpart     string
	CounterpartName string
	Kind            Kind
	Direction       Direction
	TypeLabel       string
	Timestamp       time.Time
	DurationSeconds int
	DeviceID        string
	LocationRaw     string
	SourceFileID    string

	// IngestSeq is the monotonic ingest order, used as the recency
	// tie-break when two candidate records are otherwise equal
	IngestSeq int64
}

// SubscriberRecord is one identity row tying a line to a name, national
// identifier and device, as seen in one ingested file
type SubscriberRecord struct {
	Project      string
	Line         string
	Name         string
	NationalID   string
	DeviceID     string
	SourceFileID string
}

// Window is a half-open-free time range; zero Since or Until means unbounded
type Window struct {
	Since time.Time
	Until time.Time
}

// Contains reports whether t falls inside the window (inclusive bounds)
func (w Window) Contains(t time.Time) bool {
	if !w.Since.IsZero() && t.Before(w.Since) {
		return false
	}
	if !w.Until.IsZero() && t.After(w.Until) {
		return false
	}
	return true
}

// Snapshot is the immutable per-project view the analyzers read.
// Events are ascending by (Timestamp, IngestSeq). Version identifies the
// event store state the snapshot was loaded from; caches key on it.
type Snapshot struct {
	Project     string
	Version     int64
	Events      []Event
	Subscribers []SubscriberRecord

	subjects map[string]struct{}
}

// NewSnapshot builds a snapshot and derives the investigated-subject set
// from the distinct owners of the event rows
func NewSnapshot(project string, version int64, events []Event, subs []SubscriberRecord) *Snapshot {
	s := &Snapshot{
		Project:     project,
		Version:     version,
		Events:      events,
		Subscribers: subs,
		subjects:    make(map[string]struct{}),
	}
	for i := range events {
		s.subjects[events[i].Subject] = struct{}{}
	}
	return s
}

// IsSubject reports whether number is itself an investigated line in this project
func (s *Snapshot) IsSubject(number string) bool {
	_, ok := s.subjects[number]
	return ok
}

// Subjects returns the sorted distinct investigated lines
func (s *Snapshot) Subjects() []string {
	out := make([]string, 0, len(s.subjects))
	for k := range s.subjects {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// EventsFor returns the subject's events inside the window, preserving
// snapshot order. The returned slice is freshly allocated; callers may
// not mutate snapshot rows through it but may reorder it freely.
func (s *Snapshot) EventsFor(subject string, w Window) []Event {
	var out []Event
	for i := range s.Events {
		e := &s.Events[i]
		if e.Subject != subject {
			continue
		}
		if !w.Contains(e.Timestamp) {
			continue
		}
		out = append(out, *e)
	}
	return out
}
