// Package interactive runs the solver against a real game played by a human.
//
// The human types the guess they entered in the game and the feedback the
// game gave back (n = not in word, p = wrong position, c = correct). Bad
// input is reported and asked for again; it never reaches the solver.
package interactive

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"github.com/robalobadob/wordle-solver/internal/game"
	"github.com/robalobadob/wordle-solver/internal/solver"
	"github.com/robalobadob/wordle-solver/internal/words"
)

const (
	listLimit   = 16
	suggestions = 10
)

// Help explains the feedback alphabet.
const Help = `Help on interactive cheating:
c represents correct
n represents null/non-existent
p represents exist but position not right
For example, "ppcnn" means the first two have wrong positions, the middle one is correct and the rest aren't found anywhere in this word.`

// Cheat runs the prompt loop until the game is solved, no candidate is left,
// or in runs out. Running out of input is not an error.
func Cheat(in io.Reader, out io.Writer, s *solver.Session) error {
	sc := bufio.NewScanner(in)
	sc.Split(bufio.ScanWords)
	styles := NewStyles(out)

	for s.State() == solver.StateActive {
		printWordList(out, s.Candidates(), listLimit)
		ranked, err := s.Suggest()
		if errors.Is(err, solver.ErrEmptyCandidateSet) {
			break
		}
		if err != nil {
			return err
		}
		printSuggestions(out, solver.Top(ranked, suggestions), s.Candidates())

		guess, ok := prompt(sc, out, "Your input: ", words.Parse)
		if !ok {
			return sc.Err()
		}
		pattern, ok := prompt(sc, out, "Returned pattern: ", game.ParsePattern)
		if !ok {
			return sc.Err()
		}
		fmt.Fprintln(out, styles.Render(guess, pattern))

		if err := s.Observe(guess, pattern); err != nil {
			return err
		}
	}

	switch s.State() {
	case solver.StateSolved:
		fmt.Fprintf(out, "Solved in %d guesses.\n", len(s.Turns()))
	case solver.StateExhausted:
		fmt.Fprintln(out, "No possibility left.")
	}
	return nil
}

// prompt asks until parse accepts a token. ok is false when input ends.
func prompt[T any](sc *bufio.Scanner, out io.Writer, label string, parse func(string) (T, error)) (T, bool) {
	for {
		fmt.Fprint(out, label)
		if !sc.Scan() {
			var zero T
			fmt.Fprintln(out)
			return zero, false
		}
		v, err := parse(sc.Text())
		if err != nil {
			fmt.Fprintf(out, "Invalid input: %v\n", err)
			continue
		}
		return v, true
	}
}
