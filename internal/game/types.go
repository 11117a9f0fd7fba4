// internal/game/types.go
//
// Core type definitions for feedback handling.
// Defines:
//   - Mark: per-letter result of a guess (miss/present/hit).
//   - Pattern: the five marks of one guess packed into a base-3 integer.
//   - Game: a hidden answer that reports the pattern for each guess.

package game

import "github.com/robalobadob/wordle-solver/internal/words"

// Mark represents the evaluation result for a single letter in a guess.
// Possible values:
//   - MarkMiss:    letter does not occur in the (remaining) answer letters.
//   - MarkPresent: letter occurs in the answer but at a different position.
//   - MarkHit:     letter is correct and in the correct position.
//
// The numeric values are the base-3 digits used by Pattern.
type Mark uint8

const (
	MarkMiss Mark = iota
	MarkPresent
	MarkHit
)

// Display characters for each mark.
const (
	charMiss    = 'n'
	charPresent = 'p'
	charHit     = 'c'
)

// Byte returns the display character of m: n, p or c.
func (m Mark) Byte() byte {
	switch m {
	case MarkHit:
		return charHit
	case MarkPresent:
		return charPresent
	default:
		return charMiss
	}
}

// Pattern is the feedback for a whole guess: digit i (weight 3^i) is the
// Mark of guess position i. Valid values are [0, NumPatterns).
type Pattern uint8

// NumPatterns is the size of the outcome space, 3^5.
const NumPatterns = 243

// AllCorrect is the pattern of a guess equal to the answer.
const AllCorrect Pattern = 2 * (1 + 3 + 9 + 27 + 81)

// weights[i] is 3^i.
var weights = [words.Length]Pattern{1, 3, 9, 27, 81}

// Game holds the state of a single game against a hidden answer.
type Game struct {
	ID       string       // Unique game identifier (random hex string).
	Answer   words.Word   // The hidden target.
	Rows     int          // Nominal number of guesses allowed (typically 6).
	Guesses  []words.Word // Guesses made so far.
	Finished bool         // True once the answer was guessed.
	Won      bool         // True if the answer was guessed within Rows.
}
