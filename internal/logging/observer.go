package logging

import (
	"context"
	"log/slog"

	"arbor/lsys/playback"
)

// Observer logs playback at the cadence a human can follow: expansions and
// errors at Info/Warn, individual symbols at Debug.
type Observer struct {
	log *slog.Logger
	// frozen is logged once.
	frozen bool
}

func NewObserver(log *slog.Logger) *Observer {
	return &Observer{log: log}
}

func (o *Observer) OnStep(s playback.Step) {
	switch {
	case s.Err != nil:
		o.log.Warn("tick failed", "index", s.Index, "error", s.Err)
	case s.Frozen:
		if !o.frozen {
			o.frozen = true
			o.log.Info("growth frozen", "generation", s.Generation, "length", s.Length, "progress", s.Index)
		}
		return
	}
	if s.Expanded {
		o.log.Info("expanded", "generation", s.Generation, "length", s.Length, "progress", s.Index)
	}
	if s.Consumed && o.log.Enabled(context.Background(), slog.LevelDebug) {
		o.log.Debug("step",
			"index", s.Index,
			"symbol", s.Symbol.String(),
			"emission", s.Emission.Kind.String(),
			"settled", s.Settled,
		)
	}
}
