// Package introspect serves live playback state over HTTP.
//
// The playback driver is single-threaded; Publisher is the bridge. It observes
// every step on the ticking goroutine and keeps a copy that HTTP handlers read
// under a lock.
package introspect

import (
	"sync"
	"time"

	"arbor/lsys/path"
	"arbor/lsys/playback"
	"arbor/lsys/quarkgl"
	"arbor/lsys/turtle"
)

// Point is a JSON-friendly Vec3.
type Point [3]float64

func pointOf(v quarkgl.Vec3) Point { return Point{v.X, v.Y, v.Z} }

// Bounds is the JSON form of a path.Box.
type Bounds struct {
	Min    Point `json:"min"`
	Max    Point `json:"max"`
	Center Point `json:"center"`
}

// State is the /state document.
type State struct {
	Info       playback.Info `json:"info"`
	Progress   int           `json:"progress"`
	Generation int           `json:"generation"`
	Length     int           `json:"length"`
	Segments   int           `json:"segments"`
	Active     int           `json:"active"`
	Underflows int           `json:"underflows"`
	Frozen     bool          `json:"frozen"`
	Bounds     *Bounds       `json:"bounds,omitempty"`
	// Tail holds the most recently consumed symbols.
	Tail string `json:"tail"`
}

// SegmentView is one element of the /segments document.
type SegmentView struct {
	Index int    `json:"index"`
	Start Point  `json:"start"`
	End   Point  `json:"end"`
	State string `json:"state"`
}

// Publisher is a playback.Observer whose state is safe to read concurrently.
type Publisher struct {
	clock   func() time.Time
	tailLen int

	mu       sync.RWMutex
	state    State
	tail     []byte
	segments []path.Segment
	bounds   path.Box
}

// NewPublisher creates a publisher keeping tailLen consumed symbols.
func NewPublisher(info playback.Info, tailLen int, clock func() time.Time) *Publisher {
	if clock == nil {
		clock = time.Now
	}
	return &Publisher{
		clock:   clock,
		tailLen: tailLen,
		state:   State{Info: info},
	}
}

func (p *Publisher) OnStep(s playback.Step) {
	p.mu.Lock()
	defer p.mu.Unlock()

	st := &p.state
	st.Generation = s.Generation
	st.Length = s.Length
	st.Active -= s.Settled
	if s.Frozen {
		st.Frozen = true
	}
	if s.Underflow {
		st.Underflows++
	}
	if s.Consumed {
		st.Progress = s.Index + 1
		p.tail = append(p.tail, s.Symbol.Byte())
		if over := len(p.tail) - p.tailLen; over > 0 {
			p.tail = append(p.tail[:0], p.tail[over:]...)
		}
	}
	if s.Emission.Kind == turtle.EmitSegment {
		seg := s.Segment
		if len(p.segments) == 0 {
			p.bounds = path.Box{Min: seg.Start, Max: seg.Start}
		}
		p.bounds = p.bounds.Extend(seg.Start).Extend(seg.End)
		p.segments = append(p.segments, seg)
		st.Segments++
		st.Active++
	}
}

// State returns a copy of the current state.
func (p *Publisher) State() State {
	p.mu.RLock()
	defer p.mu.RUnlock()

	st := p.state
	st.Tail = string(p.tail)
	if len(p.segments) > 0 {
		st.Bounds = &Bounds{
			Min:    pointOf(p.bounds.Min),
			Max:    pointOf(p.bounds.Max),
			Center: pointOf(p.bounds.Center()),
		}
	}
	return st
}

// MaxSegmentsPage bounds one Segments reply.
const MaxSegmentsPage = 4096

// Segments returns up to limit segments starting at from. limit <= 0 or above
// MaxSegmentsPage means MaxSegmentsPage.
func (p *Publisher) Segments(from, limit int) []SegmentView {
	now := p.clock()
	p.mu.RLock()
	defer p.mu.RUnlock()

	if from < 0 {
		from = 0
	}
	if from > len(p.segments) {
		from = len(p.segments)
	}
	if limit <= 0 || limit > MaxSegmentsPage {
		limit = MaxSegmentsPage
	}
	end := len(p.segments)
	if limit < end-from {
		end = from + limit
	}
	out := make([]SegmentView, 0, end-from)
	for i := from; i < end; i++ {
		seg := p.segments[i]
		out = append(out, SegmentView{
			Index: i,
			Start: pointOf(seg.Start),
			End:   pointOf(seg.End),
			State: seg.State(now).String(),
		})
	}
	return out
}
