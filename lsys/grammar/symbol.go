package grammar

import (
	"errors"
	"fmt"
	"strings"
)

// Symbol is one token of the growth alphabet.
type Symbol uint8

const (
	// Branch is a placeholder that only drives rewriting.
	Branch Symbol = iota + 1
	// Forward moves the turtle one step and draws a segment.
	Forward
	// TurnLeft rotates the heading by +angle.
	TurnLeft
	// TurnRight rotates the heading by -angle.
	TurnRight
	// Push saves position and heading.
	Push
	// Pop restores the last saved position and heading.
	Pop
)

// Alphabet lists every valid symbol in declaration order.
var Alphabet = [...]Symbol{Branch, Forward, TurnLeft, TurnRight, Push, Pop}

var ErrUnknownSymbol = errors.New("unknown symbol")

// Byte returns the textual form of s.
func (s Symbol) Byte() byte {
	switch s {
	case Branch:
		return 'X'
	case Forward:
		return 'F'
	case TurnLeft:
		return '+'
	case TurnRight:
		return '-'
	case Push:
		return '['
	case Pop:
		return ']'
	}
	return '?'
}

func (s Symbol) String() string { return string(s.Byte()) }

// Valid reports whether s belongs to the alphabet.
func (s Symbol) Valid() bool { return s >= Branch && s <= Pop }

// ParseSymbol maps a character to its Symbol.
func ParseSymbol(c byte) (Symbol, error) {
	switch c {
	case 'X':
		return Branch, nil
	case 'F':
		return Forward, nil
	case '+':
		return TurnLeft, nil
	case '-':
		return TurnRight, nil
	case '[':
		return Push, nil
	case ']':
		return Pop, nil
	}
	return 0, fmt.Errorf("%w %q", ErrUnknownSymbol, c)
}

// ParseSymbols parses a symbol string. Spaces are not allowed.
func ParseSymbols(s string) ([]Symbol, error) {
	out := make([]Symbol, 0, len(s))
	for i := 0; i < len(s); i++ {
		sym, err := ParseSymbol(s[i])
		if err != nil {
			return nil, fmt.Errorf("offset %d: %w", i, err)
		}
		out = append(out, sym)
	}
	return out, nil
}

// MustParse is ParseSymbols for literals known to be valid.
func MustParse(s string) []Symbol {
	out, err := ParseSymbols(s)
	if err != nil {
		panic(err)
	}
	return out
}

// Format renders a symbol sequence as text.
func Format(seq []Symbol) string {
	var b strings.Builder
	b.Grow(len(seq))
	for _, s := range seq {
		b.WriteByte(s.Byte())
	}
	return b.String()
}
