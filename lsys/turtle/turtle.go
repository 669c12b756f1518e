// Package turtle interprets growth symbols as 3D motion with a save/restore stack.
package turtle

import (
	"errors"

	"arbor/lsys/grammar"
	"arbor/lsys/quarkgl"
)

// ErrStackUnderflow is returned for a Pop on an empty stack under UnderflowError.
var ErrStackUnderflow = errors.New("turtle: pop on empty stack")

// UnderflowPolicy decides what a Pop on an empty stack does.
type UnderflowPolicy uint8

const (
	// UnderflowIgnore treats the Pop as a no-op. It is counted in Underflows.
	UnderflowIgnore UnderflowPolicy = iota
	// UnderflowError leaves the state untouched and returns ErrStackUnderflow.
	UnderflowError
)

func (p UnderflowPolicy) String() string {
	switch p {
	case UnderflowIgnore:
		return "ignore"
	case UnderflowError:
		return "error"
	}
	return "unknown"
}

// Config fixes the turtle's geometry at construction.
type Config struct {
	// Angle is the turn angle in radians.
	Angle quarkgl.Scalar
	// Step is the length of one Forward move.
	Step quarkgl.Scalar
	// Axis is the rotation axis for turns.
	Axis quarkgl.Vec3
	// Heading is the initial direction; it is normalised and scaled by Step.
	Heading quarkgl.Vec3
	// Origin is the initial position.
	Origin quarkgl.Vec3

	Underflow UnderflowPolicy
}

// EmissionKind tags what a consumed symbol produced.
type EmissionKind uint8

const (
	EmitNone EmissionKind = iota
	EmitSegment
)

func (k EmissionKind) String() string {
	switch k {
	case EmitNone:
		return "none"
	case EmitSegment:
		return "segment"
	}
	return "unknown"
}

// Emission is the output of one Consume call.
type Emission struct {
	Kind       EmissionKind
	Start, End quarkgl.Vec3
}

type frame struct {
	pos, heading quarkgl.Vec3
}

// Machine is the turtle state machine. It is not safe for concurrent use.
type Machine struct {
	cfg Config

	pos     quarkgl.Vec3
	heading quarkgl.Vec3
	stack   []frame

	underflows uint64
}

// New creates a turtle at cfg.Origin.
func New(cfg Config) *Machine {
	m := &Machine{cfg: cfg}
	m.Reset()
	return m
}

// Reset restores the initial position and heading and empties the stack.
func (m *Machine) Reset() {
	m.pos = m.cfg.Origin
	m.heading = quarkgl.Normalize(m.cfg.Heading).Mul(m.cfg.Step)
	m.stack = m.stack[:0]
	m.underflows = 0
}

func (m *Machine) Config() Config         { return m.cfg }
func (m *Machine) Position() quarkgl.Vec3 { return m.pos }
func (m *Machine) Heading() quarkgl.Vec3  { return m.heading }
func (m *Machine) Depth() int             { return len(m.stack) }
func (m *Machine) Underflows() uint64     { return m.underflows }

// Consume applies one symbol.
func (m *Machine) Consume(s grammar.Symbol) (Emission, error) {
	switch s {
	case grammar.Forward:
		start := m.pos
		m.pos = m.pos.Add(m.heading)
		return Emission{Kind: EmitSegment, Start: start, End: m.pos}, nil
	case grammar.TurnLeft:
		m.heading = quarkgl.RotateAxisAngle(m.heading, m.cfg.Axis, m.cfg.Angle)
	case grammar.TurnRight:
		m.heading = quarkgl.RotateAxisAngle(m.heading, m.cfg.Axis, -m.cfg.Angle)
	case grammar.Push:
		m.stack = append(m.stack, frame{pos: m.pos, heading: m.heading})
	case grammar.Pop:
		if len(m.stack) == 0 {
			m.underflows++
			if m.cfg.Underflow == UnderflowError {
				return Emission{}, ErrStackUnderflow
			}
			return Emission{}, nil
		}
		top := m.stack[len(m.stack)-1]
		m.stack = m.stack[:len(m.stack)-1]
		m.pos, m.heading = top.pos, top.heading
	case grammar.Branch:
		// Rewriting only.
	}
	return Emission{}, nil
}
