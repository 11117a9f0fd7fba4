package game

import (
	"errors"
	"fmt"

	"github.com/robalobadob/wordle-solver/internal/words"
)

// ErrParse is returned for feedback strings that are not five of n, p, c.
var ErrParse = errors.New("invalid pattern")

// Encode packs five marks into a Pattern.
func Encode(marks [words.Length]Mark) Pattern {
	var p Pattern
	for i, m := range marks {
		p += weights[i] * Pattern(m)
	}
	return p
}

// Marks unpacks p into one Mark per guess position.
func (p Pattern) Marks() [words.Length]Mark {
	var out [words.Length]Mark
	for i := range out {
		out[i] = Mark(p % 3)
		p /= 3
	}
	return out
}

// Solved reports whether every position is a hit.
func (p Pattern) Solved() bool { return p == AllCorrect }

// String renders p with one of n, p, c per position.
func (p Pattern) String() string {
	var b [words.Length]byte
	for i, m := range p.Marks() {
		b[i] = m.Byte()
	}
	return string(b[:])
}

// MarshalText renders the pattern as its display string.
func (p Pattern) MarshalText() ([]byte, error) { return []byte(p.String()), nil }

// UnmarshalText parses a display string.
func (p *Pattern) UnmarshalText(b []byte) error {
	v, err := ParsePattern(string(b))
	if err != nil {
		return err
	}
	*p = v
	return nil
}

// ParsePattern reads a display string such as "ppcnn". It is case-sensitive.
func ParsePattern(s string) (Pattern, error) {
	if len(s) != words.Length {
		return 0, fmt.Errorf("%w: %q must be %d characters", ErrParse, s, words.Length)
	}
	var marks [words.Length]Mark
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case charMiss:
			marks[i] = MarkMiss
		case charPresent:
			marks[i] = MarkPresent
		case charHit:
			marks[i] = MarkHit
		default:
			return 0, fmt.Errorf("%w: %q has %q at position %d", ErrParse, s, s[i], i+1)
		}
	}
	return Encode(marks), nil
}
