// Package path records emitted segments in creation order and keeps a running
// bounding box over their endpoints.
package path

import (
	"time"

	"arbor/lsys/quarkgl"
)

// VisualState is the display phase of a segment.
type VisualState uint8

const (
	Active VisualState = iota
	Settled
)

func (s VisualState) String() string {
	switch s {
	case Active:
		return "active"
	case Settled:
		return "settled"
	}
	return "unknown"
}

// Segment is one recorded line. It never changes after Record; its visual state is
// derived from SettleAt.
type Segment struct {
	Start, End quarkgl.Vec3
	CreatedAt  time.Time
	SettleAt   time.Time
}

// IsSettled reports whether the settle delay has elapsed at now.
func (s Segment) IsSettled(now time.Time) bool { return !now.Before(s.SettleAt) }

// State returns the visual state at now.
func (s Segment) State(now time.Time) VisualState {
	if s.IsSettled(now) {
		return Settled
	}
	return Active
}

// Recorder owns the growing segment list. It is not safe for concurrent use.
type Recorder struct {
	delay time.Duration

	segments []Segment
	bounds   Box
	hasBox   bool

	// settled is the number of leading segments already reported by Settle.
	settled int
}

// NewRecorder creates a recorder whose segments settle delay after creation.
func NewRecorder(delay time.Duration) *Recorder {
	if delay < 0 {
		delay = 0
	}
	return &Recorder{delay: delay}
}

func (r *Recorder) Delay() time.Duration { return r.delay }

// Record appends a segment created at now.
func (r *Recorder) Record(start, end quarkgl.Vec3, now time.Time) Segment {
	seg := Segment{Start: start, End: end, CreatedAt: now, SettleAt: now.Add(r.delay)}
	r.segments = append(r.segments, seg)
	if !r.hasBox {
		r.bounds = Box{Min: start, Max: start}
		r.hasBox = true
	}
	r.bounds = r.bounds.Extend(start).Extend(end)
	return seg
}

// Len is the number of recorded segments.
func (r *Recorder) Len() int { return len(r.segments) }

// At returns segment i.
func (r *Recorder) At(i int) Segment { return r.segments[i] }

// Range calls fn for segments from index from onward until fn returns false.
func (r *Recorder) Range(from int, fn func(i int, s Segment) bool) {
	if from < 0 {
		from = 0
	}
	for i := from; i < len(r.segments); i++ {
		if !fn(i, r.segments[i]) {
			return
		}
	}
}

// NumEndpoints is twice the segment count: each segment contributes its start and end.
func (r *Recorder) NumEndpoints() int { return 2 * len(r.segments) }

// Endpoint returns endpoint i in recording order (start, end, start, end, ...).
func (r *Recorder) Endpoint(i int) quarkgl.Vec3 {
	s := r.segments[i/2]
	if i%2 == 0 {
		return s.Start
	}
	return s.End
}

// Bounds returns the box around every endpoint, and false when nothing is recorded.
func (r *Recorder) Bounds() (Box, bool) { return r.bounds, r.hasBox }

// Settle returns how many segments became settled since the previous call.
//
// Segments are recorded with non-decreasing creation times and a shared delay, so
// settle times are ordered and each segment is counted exactly once.
func (r *Recorder) Settle(now time.Time) int {
	n := 0
	for r.settled < len(r.segments) && r.segments[r.settled].IsSettled(now) {
		r.settled++
		n++
	}
	return n
}

// ActiveFrom returns the index of the first segment not yet reported settled.
func (r *Recorder) ActiveFrom() int { return r.settled }
