package turtle

import (
	"errors"
	"math"
	"testing"

	"arbor/lsys/grammar"
	"arbor/lsys/quarkgl"
)

func referenceConfig() Config {
	return Config{
		Angle:   quarkgl.DegToRad(90),
		Step:    5,
		Axis:    quarkgl.V3(0, 1, 0),
		Heading: quarkgl.V3(-1, 0, 0),
	}
}

func near(a, b quarkgl.Vec3) bool {
	const eps = 1e-9
	return math.Abs(a.X-b.X) < eps && math.Abs(a.Y-b.Y) < eps && math.Abs(a.Z-b.Z) < eps
}

func consumeAll(t *testing.T, m *Machine, src string) []Emission {
	t.Helper()
	var out []Emission
	for _, s := range grammar.MustParse(src) {
		e, err := m.Consume(s)
		if err != nil {
			t.Fatalf("Consume(%s): %v", s, err)
		}
		if e.Kind == EmitSegment {
			out = append(out, e)
		}
	}
	return out
}

func TestInitialHeadingScaledByStep(t *testing.T) {
	m := New(referenceConfig())
	if got := m.Heading(); !near(got, quarkgl.V3(-5, 0, 0)) {
		t.Fatalf("expected heading (-5,0,0), got %+v", got)
	}
	if m.Position() != (quarkgl.Vec3{}) {
		t.Fatalf("expected origin, got %+v", m.Position())
	}
}

func TestForwardEmitsSegment(t *testing.T) {
	m := New(referenceConfig())
	e, err := m.Consume(grammar.Forward)
	if err != nil {
		t.Fatalf("Consume: %v", err)
	}
	if e.Kind != EmitSegment {
		t.Fatalf("expected segment emission")
	}
	if e.Start != (quarkgl.Vec3{}) || !near(e.End, quarkgl.V3(-5, 0, 0)) {
		t.Fatalf("unexpected segment %+v", e)
	}
	if m.Position() != e.End {
		t.Fatalf("position not advanced to segment end")
	}
}

func TestNonDrawingSymbolsEmitNothing(t *testing.T) {
	m := New(referenceConfig())
	for _, s := range []grammar.Symbol{grammar.Branch, grammar.TurnLeft, grammar.TurnRight, grammar.Push, grammar.Pop} {
		e, err := m.Consume(s)
		if err != nil {
			t.Fatalf("Consume(%s): %v", s, err)
		}
		if e.Kind != EmitNone {
			t.Fatalf("Consume(%s) emitted %v", s, e.Kind)
		}
	}
}

func TestTurnsRotateAboutAxis(t *testing.T) {
	m := New(referenceConfig())
	consumeAll(t, m, "+")
	if got := m.Heading(); !near(got, quarkgl.V3(0, 0, 5)) {
		t.Fatalf("after + expected (0,0,5), got %+v", got)
	}
	consumeAll(t, m, "--")
	if got := m.Heading(); !near(got, quarkgl.V3(0, 0, -5)) {
		t.Fatalf("after +-- expected (0,0,-5), got %+v", got)
	}
}

func TestBranchRestoresState(t *testing.T) {
	m := New(referenceConfig())
	consumeAll(t, m, "F+")
	pos, heading := m.Position(), m.Heading()

	segs := consumeAll(t, m, "[F-F[+FF]F]")
	if len(segs) != 5 {
		t.Fatalf("expected 5 segments, got %d", len(segs))
	}
	if m.Position() != pos || m.Heading() != heading {
		t.Fatalf("branch did not restore state: %+v %+v", m.Position(), m.Heading())
	}
	if m.Depth() != 0 {
		t.Fatalf("expected empty stack, got depth %d", m.Depth())
	}
}

func TestUnderflowIgnore(t *testing.T) {
	m := New(referenceConfig())
	consumeAll(t, m, "F+")
	pos, heading := m.Position(), m.Heading()
	consumeAll(t, m, "]")
	if m.Position() != pos || m.Heading() != heading {
		t.Fatalf("ignored underflow changed state")
	}
	if m.Underflows() != 1 {
		t.Fatalf("expected one underflow, got %d", m.Underflows())
	}
}

func TestUnderflowError(t *testing.T) {
	cfg := referenceConfig()
	cfg.Underflow = UnderflowError
	m := New(cfg)
	consumeAll(t, m, "F")
	pos := m.Position()
	_, err := m.Consume(grammar.Pop)
	if !errors.Is(err, ErrStackUnderflow) {
		t.Fatalf("expected ErrStackUnderflow, got %v", err)
	}
	if m.Position() != pos {
		t.Fatalf("state changed on underflow")
	}
	if _, err := m.Consume(grammar.Forward); err != nil {
		t.Fatalf("turtle must stay usable after underflow: %v", err)
	}
}

func TestResetClearsState(t *testing.T) {
	m := New(referenceConfig())
	consumeAll(t, m, "F[+F")
	consumeAll(t, m, "]]")
	m.Reset()
	if m.Depth() != 0 || m.Underflows() != 0 || m.Position() != (quarkgl.Vec3{}) {
		t.Fatalf("reset left state behind")
	}
}

func TestPolicyString(t *testing.T) {
	if UnderflowIgnore.String() != "ignore" || UnderflowError.String() != "error" {
		t.Fatalf("unexpected policy names")
	}
}
