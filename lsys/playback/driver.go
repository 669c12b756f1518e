// Package playback advances a growth grammar one symbol per tick, re-expanding the
// grammar whenever the cursor runs off the end of the current expansion.
package playback

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"arbor/lsys/expansion"
	"arbor/lsys/grammar"
	"arbor/lsys/path"
	"arbor/lsys/quarkgl"
	"arbor/lsys/turtle"
)

// ErrStopped is returned by Tick once the driver hit its growth limit under CapStop.
var ErrStopped = errors.New("playback stopped at growth limit")

// CapPolicy decides what ticks do once the expansion cannot grow any further.
type CapPolicy uint8

const (
	// CapFreeze turns every further tick into a no-op reporting Frozen.
	CapFreeze CapPolicy = iota
	// CapStop makes Tick return ErrStopped.
	CapStop
)

func (p CapPolicy) String() string {
	switch p {
	case CapFreeze:
		return "freeze"
	case CapStop:
		return "stop"
	}
	return "unknown"
}

// Step reports what one tick did.
type Step struct {
	// Index is the cursor position of the consumed symbol.
	Index      int
	Symbol     grammar.Symbol
	Consumed   bool
	Expanded   bool
	Frozen     bool
	Generation int
	Length     int

	Emission turtle.Emission
	// Segment is valid when Emission.Kind is turtle.EmitSegment.
	Segment path.Segment
	// Settled is the number of segments that settled during this tick.
	Settled int
	// Underflow is set when the symbol was a pop on an empty stack, under either policy.
	Underflow bool

	Err error
}

// Observer is notified after every tick, on the ticking goroutine.
type Observer interface {
	OnStep(Step)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(Step)

func (f ObserverFunc) OnStep(s Step) { f(s) }

// Options configures a Driver.
type Options struct {
	// Generations is the number of expansions done before the first tick.
	Generations int
	Cap         CapPolicy
	// Clock defaults to time.Now.
	Clock     func() time.Time
	Observers []Observer
}

// Driver owns the playback cursor and ties the expansion cache, turtle and
// recorder together. It is not safe for concurrent use.
type Driver struct {
	cache    *expansion.Cache
	turtle   *turtle.Machine
	recorder *path.Recorder

	clock     func() time.Time
	capPolicy CapPolicy
	observers []Observer
	seeded    int

	index    int
	consumed strings.Builder
	frozen   bool
	stopped  bool
}

// New seeds the cache with opts.Generations expansions and returns a driver at index 0.
func New(cache *expansion.Cache, t *turtle.Machine, rec *path.Recorder, opts Options) (*Driver, error) {
	if err := cache.ExpandTo(opts.Generations); err != nil {
		return nil, fmt.Errorf("initial expansion: %w", err)
	}
	clock := opts.Clock
	if clock == nil {
		clock = time.Now
	}
	return &Driver{
		cache:     cache,
		turtle:    t,
		recorder:  rec,
		clock:     clock,
		capPolicy: opts.Cap,
		observers: append([]Observer(nil), opts.Observers...),
		seeded:    opts.Generations,
	}, nil
}

// Observe adds an observer.
func (d *Driver) Observe(o Observer) { d.observers = append(d.observers, o) }

func (d *Driver) Cache() *expansion.Cache  { return d.cache }
func (d *Driver) Turtle() *turtle.Machine  { return d.turtle }
func (d *Driver) Recorder() *path.Recorder { return d.recorder }

// Progress is the number of symbols consumed so far.
func (d *Driver) Progress() int { return d.index }

// ConsumedSymbols is the text of every consumed symbol, in order.
func (d *Driver) ConsumedSymbols() string { return d.consumed.String() }

// ConsumedTail returns at most n trailing consumed symbols.
func (d *Driver) ConsumedTail(n int) string {
	s := d.consumed.String()
	if n >= 0 && len(s) > n {
		return s[len(s)-n:]
	}
	return s
}

// Frozen reports whether the driver stopped consuming at the growth limit.
func (d *Driver) Frozen() bool { return d.frozen || d.stopped }

// Tick advances playback by at most one symbol.
func (d *Driver) Tick() (Step, error) {
	now := d.clock()
	step := d.tick(now)
	step.Settled = d.recorder.Settle(now)
	step.Generation = d.cache.Generation()
	step.Length = d.cache.Len()
	for _, o := range d.observers {
		o.OnStep(step)
	}
	return step, step.Err
}

func (d *Driver) tick(now time.Time) Step {
	step := Step{Index: d.index}
	if d.stopped {
		step.Frozen = true
		step.Err = ErrStopped
		return step
	}
	if d.frozen {
		step.Frozen = true
		return step
	}

	if d.index >= d.cache.Len() {
		if err := d.cache.ExpandOnce(); err != nil {
			if !errors.Is(err, expansion.ErrGrowthLimit) {
				step.Err = err
				return step
			}
			step.Frozen = true
			if d.capPolicy == CapStop {
				d.stopped = true
				step.Err = fmt.Errorf("%w: %w", ErrStopped, err)
				return step
			}
			d.frozen = true
			return step
		}
		step.Expanded = true
	}
	if d.index >= d.cache.Len() {
		return step
	}

	sym := d.cache.At(d.index)
	step.Symbol = sym
	step.Consumed = true
	d.consumed.WriteByte(sym.Byte())
	d.index++

	before := d.turtle.Underflows()
	em, err := d.turtle.Consume(sym)
	step.Underflow = d.turtle.Underflows() > before
	if err != nil {
		step.Err = fmt.Errorf("symbol %d: %w", step.Index, err)
		return step
	}
	step.Emission = em
	if em.Kind == turtle.EmitSegment {
		step.Segment = d.recorder.Record(em.Start, em.End, now)
	}
	return step
}

// RuleInfo is one rule in display form.
type RuleInfo struct {
	Symbol string `json:"symbol"`
	Body   string `json:"body"`
}

// Info is the static description shown next to the growth.
type Info struct {
	Axiom        string     `json:"axiom"`
	Rules        []RuleInfo `json:"rules"`
	AngleDegrees int        `json:"angle_degrees"`
	Generations  int        `json:"generations"`
}

// Info returns the static descriptive fields.
func (d *Driver) Info() Info {
	g := d.cache.Grammar()
	info := Info{
		Axiom:        grammar.Format(g.Axiom()),
		AngleDegrees: int(math.Floor(quarkgl.RadToDeg(d.turtle.Config().Angle) + 1e-9)),
		Generations:  d.seeded,
	}
	for _, s := range g.Symbols() {
		info.Rules = append(info.Rules, RuleInfo{Symbol: s.String(), Body: g.RuleText(s)})
	}
	return info
}
