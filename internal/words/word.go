// internal/words/word.go
//
// Word is the fixed-size value type every other package passes around.
// Five bytes on the stack, comparable with ==, usable as a map key.
//
// Parsing is the only way in from text: anything that is not exactly five
// ASCII letters is rejected with ErrMalformedWord before it reaches the core.

package words

import (
	"errors"
	"fmt"
	"strings"
)

// Length is the number of letters in every word.
const Length = 5

// ErrMalformedWord is returned for input that is not exactly five letters a–z.
var ErrMalformedWord = errors.New("malformed word")

// Word is a lowercase five-letter word.
type Word [Length]byte

// Parse trims and lowercases s and converts it to a Word.
func Parse(s string) (Word, error) {
	var w Word
	s = strings.ToLower(strings.TrimSpace(s))
	if len(s) != Length || !isAlpha(s) {
		return w, fmt.Errorf("%w: %q", ErrMalformedWord, s)
	}
	copy(w[:], s)
	return w, nil
}

// MustParse is Parse for literals known to be valid. It panics otherwise.
func MustParse(s string) Word {
	w, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return w
}

// String returns the word as a lowercase string.
func (w Word) String() string { return string(w[:]) }

// MarshalText lets words appear as plain strings in JSON.
func (w Word) MarshalText() ([]byte, error) { return []byte(w.String()), nil }

// UnmarshalText parses a JSON string into a Word.
func (w *Word) UnmarshalText(b []byte) error {
	p, err := Parse(string(b))
	if err != nil {
		return err
	}
	*w = p
	return nil
}

// isAlpha reports whether s is all lowercase ASCII letters.
func isAlpha(s string) bool {
	for _, r := range s {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}
