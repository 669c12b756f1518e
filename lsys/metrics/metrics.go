// Package metrics exports playback progress as Prometheus metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"arbor/lsys/playback"
	"arbor/lsys/turtle"
)

// Observer is a playback.Observer that feeds Prometheus collectors.
type Observer struct {
	Symbols     *prometheus.CounterVec
	Segments    prometheus.Counter
	Settled     prometheus.Counter
	Expansions  prometheus.Counter
	Underflows  prometheus.Counter
	FrozenTicks prometheus.Counter
	Generation  prometheus.Gauge
	Length      prometheus.Gauge
	Progress    prometheus.Gauge
	ActiveGauge prometheus.Gauge

	active int
}

// New creates the collectors and registers them on reg.
func New(reg prometheus.Registerer) (*Observer, error) {
	o := &Observer{
		Symbols: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "arbor_symbols_consumed_total",
				Help: "Symbols consumed by the turtle, by symbol",
			},
			[]string{"symbol"},
		),
		Segments: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "arbor_segments_emitted_total",
			Help: "Path segments emitted",
		}),
		Settled: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "arbor_segments_settled_total",
			Help: "Path segments that reached their settled color",
		}),
		Expansions: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "arbor_expansions_total",
			Help: "Grammar expansions triggered by playback",
		}),
		Underflows: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "arbor_stack_underflows_total",
			Help: "Pops on an empty turtle stack",
		}),
		FrozenTicks: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "arbor_frozen_ticks_total",
			Help: "Ticks that did nothing because growth hit its limit",
		}),
		Generation: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "arbor_generation",
			Help: "Current expansion generation",
		}),
		Length: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "arbor_expansion_length",
			Help: "Symbols in the current expansion",
		}),
		Progress: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "arbor_progress",
			Help: "Symbols consumed so far",
		}),
		ActiveGauge: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "arbor_segments_active",
			Help: "Segments emitted but not yet settled",
		}),
	}
	for _, c := range []prometheus.Collector{
		o.Symbols, o.Segments, o.Settled, o.Expansions, o.Underflows,
		o.FrozenTicks, o.Generation, o.Length, o.Progress, o.ActiveGauge,
	} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return o, nil
}

func (o *Observer) OnStep(s playback.Step) {
	if s.Expanded {
		o.Expansions.Inc()
	}
	if s.Frozen {
		o.FrozenTicks.Inc()
	}
	if s.Consumed {
		o.Symbols.WithLabelValues(s.Symbol.String()).Inc()
		o.Progress.Set(float64(s.Index + 1))
	}
	if s.Underflow {
		o.Underflows.Inc()
	}
	if s.Emission.Kind == turtle.EmitSegment {
		o.Segments.Inc()
		o.active++
	}
	if s.Settled > 0 {
		o.Settled.Add(float64(s.Settled))
		o.active -= s.Settled
	}
	o.ActiveGauge.Set(float64(o.active))
	o.Generation.Set(float64(s.Generation))
	o.Length.Set(float64(s.Length))
}
