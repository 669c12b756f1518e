package view

import (
	"time"

	"arbor/lsys/path"
	"arbor/lsys/quarkgl"
)

// segmentLayer exposes recorded segments as lines colored by their state at now.
type segmentLayer struct {
	rec     *path.Recorder
	now     time.Time
	active  quarkgl.Color
	settled quarkgl.Color
}

func (l *segmentLayer) NumLines() int { return l.rec.Len() }

func (l *segmentLayer) Line(i int) quarkgl.Line {
	s := l.rec.At(i)
	c := l.settled
	if s.State(l.now) == path.Active {
		c = l.active
	}
	return quarkgl.Line{A: s.Start, B: s.End, Color: c}
}

// gridLines builds a square ground grid at height y with the given half extent and spacing.
func gridLines(y, half, spacing quarkgl.Scalar, c quarkgl.Color) quarkgl.Lines {
	if spacing <= 0 || half <= 0 {
		return nil
	}
	n := int(half / spacing)
	lines := make(quarkgl.Lines, 0, 2*(2*n+1))
	for i := -n; i <= n; i++ {
		v := quarkgl.Scalar(i) * spacing
		lines = append(lines,
			quarkgl.Line{A: quarkgl.V3(v, y, -half), B: quarkgl.V3(v, y, half), Color: c},
			quarkgl.Line{A: quarkgl.V3(-half, y, v), B: quarkgl.V3(half, y, v), Color: c},
		)
	}
	return lines
}
