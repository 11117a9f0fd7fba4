// internal/game/engine.go
//
// Feedback engine.
// Responsibilities:
//   - Score guesses using the classic two-pass algorithm (Compare).
//   - Hold a hidden answer and answer guesses with a Pattern (Game).
//
// Notes:
//   - Inputs are words.Word values, so no validation happens here.
//   - A Game keeps answering after Rows guesses; the caller decides what an
//     overlong game means. Won is only set when the answer is found in time.

package game

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/robalobadob/wordle-solver/internal/words"
)

const defaultRows = 6

// ErrFinished is returned when guessing in a game that was already solved.
var ErrFinished = errors.New("game finished")

// New constructs a game with the given hidden answer.
func New(answer words.Word) *Game {
	return &Game{
		ID:     randomID(),
		Answer: answer,
		Rows:   defaultRows,
	}
}

// ApplyGuess scores a guess and records it.
//
// State transitions:
//   - All tiles hit → Finished = true; Won = true if within Rows guesses.
//   - Otherwise the game stays open, even past Rows.
func (g *Game) ApplyGuess(guess words.Word) (Pattern, error) {
	if g.Finished {
		return 0, ErrFinished
	}
	p := Compare(guess, g.Answer)
	g.Guesses = append(g.Guesses, guess)
	if p == AllCorrect {
		g.Finished = true
		g.Won = len(g.Guesses) <= g.Rows
	}
	return p, nil
}

// Feedback answers a guess. It lets a Game act as the oracle of a solver session.
func (g *Game) Feedback(guess words.Word) (Pattern, error) {
	return g.ApplyGuess(guess)
}

// Compare implements the standard two-pass scoring algorithm.
//
// Pass 1:
//   - Mark exact matches as Hit.
//   - Count remaining (non-hit) answer letters by letter index.
//
// Pass 2:
//   - For each non-hit guess letter: if there is remaining count for that letter,
//     mark Present and decrement the count; otherwise leave it a Miss.
//
// Consuming the counts is what makes repeated letters come out right: a
// letter is reported Present at most as often as it is left in the answer.
func Compare(guess, target words.Word) Pattern {
	var p Pattern
	var hit [words.Length]bool

	// Letter frequency for the non-hit positions (a–z).
	var counts [26]uint8

	// First pass: mark hits and collect counts for remaining answer letters.
	for i := 0; i < words.Length; i++ {
		if guess[i] == target[i] {
			hit[i] = true
			p += weights[i] * Pattern(MarkHit)
		} else {
			counts[target[i]-'a']++
		}
	}

	// Second pass: resolve presents for non-hit tiles. Misses add nothing.
	for i := 0; i < words.Length; i++ {
		if hit[i] {
			continue
		}
		j := guess[i] - 'a'
		if counts[j] > 0 {
			p += weights[i] * Pattern(MarkPresent)
			counts[j]--
		}
	}
	return p
}

// Marks is Compare with the result unpacked per position.
func Marks(guess, target words.Word) [words.Length]Mark {
	return Compare(guess, target).Marks()
}

// selfChecks are guess/target/pattern triples every build must reproduce.
var selfChecks = []struct{ guess, target, pattern string }{
	{"taint", "about", "npnnc"},
	{"slate", "gaint", "nnppn"},
	{"dwell", "elegy", "nncpn"},
}

// SelfCheck verifies Compare against known duplicate-letter cases.
func SelfCheck() error {
	for _, c := range selfChecks {
		want, err := ParsePattern(c.pattern)
		if err != nil {
			return err
		}
		got := Compare(words.MustParse(c.guess), words.MustParse(c.target))
		if got != want {
			return fmt.Errorf("self-check %s/%s: expected %s, got %s", c.guess, c.target, want, got)
		}
	}
	return nil
}

// randomID returns a compact 16-hex-char identifier.
func randomID() string {
	var b [8]byte
	_, _ = rand.Read(b[:])
	return hex.EncodeToString(b[:])
}
