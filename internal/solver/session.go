// internal/solver/session.go
//
// Elimination loop for a single game.
//
//	Active(S) --guess g, pattern p--> Active({c in S : Compare(g, c) == p})
//	Active(S) --p all correct-------> Solved
//	Active(∅) ----------------------> Exhausted
//
// Going past TurnLimit only raises the GivenUp flag; the loop keeps going
// until it is solved, exhausted, or MaxTurns guesses have been made.

package solver

import (
	"errors"
	"fmt"

	"github.com/robalobadob/wordle-solver/internal/game"
	"github.com/robalobadob/wordle-solver/internal/words"
)

// ErrSessionOver is returned when observing feedback on a finished session.
var ErrSessionOver = errors.New("session over")

// State of a session.
type State int

const (
	StateActive State = iota
	StateSolved
	StateExhausted
)

func (s State) String() string {
	switch s {
	case StateSolved:
		return "solved"
	case StateExhausted:
		return "exhausted"
	default:
		return "active"
	}
}

// MarshalText renders the state name.
func (s State) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// Outcome is how Solve ended.
type Outcome string

const (
	OutcomeSolved    Outcome = "solved"
	OutcomeExhausted Outcome = "exhausted"
	OutcomeCapped    Outcome = "capped" // MaxTurns guesses without a solution
)

// SessionOptions bound a game.
type SessionOptions struct {
	TurnLimit int `yaml:"turn_limit" json:"turnLimit"` // nominal guesses allowed, usually 6
	MaxTurns  int `yaml:"max_turns" json:"maxTurns"`   // absolute cap on guesses
}

// DefaultSessionOptions returns the standard 6-guess game capped at 10.
func DefaultSessionOptions() SessionOptions {
	return SessionOptions{TurnLimit: 6, MaxTurns: 10}
}

// Oracle answers guesses with feedback: a hidden target or a human.
type Oracle interface {
	Feedback(guess words.Word) (game.Pattern, error)
}

// Turn is one guess and what it left behind.
type Turn struct {
	Guess     words.Word   `json:"guess"`
	Pattern   game.Pattern `json:"pattern"`
	Remaining int          `json:"remaining"`
}

// Result summarises a finished Solve.
type Result struct {
	Outcome Outcome      `json:"outcome"`
	Guesses []words.Word `json:"guesses"`
	GivenUp bool         `json:"givenUp"` // more guesses than TurnLimit
}

// Turns returns the number of guesses made.
func (r Result) Turns() int { return len(r.Guesses) }

// Session is the state of one game. It owns its candidate set; nothing is
// shared between sessions except the read-only vocabulary. Not safe for
// concurrent use.
type Session struct {
	ranker     *Ranker
	opts       SessionOptions
	candidates *CandidateSet
	turns      []Turn
	state      State
}

// NewSession starts a game with every answer as a candidate.
func NewSession(r *Ranker, opts SessionOptions) *Session {
	def := DefaultSessionOptions()
	if opts.TurnLimit <= 0 {
		opts.TurnLimit = def.TurnLimit
	}
	if opts.MaxTurns <= 0 {
		opts.MaxTurns = def.MaxTurns
	}
	return &Session{
		ranker:     r,
		opts:       opts,
		candidates: NewCandidateSet(r.Vocabulary()),
	}
}

// State returns the current state.
func (s *Session) State() State { return s.state }

// Candidates returns the current candidate set.
func (s *Session) Candidates() *CandidateSet { return s.candidates }

// Turns returns the turns played so far.
func (s *Session) Turns() []Turn { return s.turns }

// GivenUp reports whether more guesses than TurnLimit have been made.
func (s *Session) GivenUp() bool { return len(s.turns) > s.opts.TurnLimit }

// Suggest ranks the admissible guesses against the current candidates.
// An empty candidate set ends the session as Exhausted.
func (s *Session) Suggest() ([]Ranked, error) {
	ranked, err := s.ranker.Rank(s.candidates)
	if errors.Is(err, ErrEmptyCandidateSet) {
		s.state = StateExhausted
	}
	return ranked, err
}

// Observe applies the feedback p received for guess.
func (s *Session) Observe(guess words.Word, p game.Pattern) error {
	if s.state != StateActive {
		return fmt.Errorf("%w: %s", ErrSessionOver, s.state)
	}
	s.candidates = s.candidates.Filter(guess, p)
	s.turns = append(s.turns, Turn{Guess: guess, Pattern: p, Remaining: s.candidates.Len()})
	switch {
	case p.Solved():
		s.state = StateSolved
	case s.candidates.Empty():
		s.state = StateExhausted
	}
	return nil
}

// Solve plays the best-ranked guess against oracle until the game ends or
// MaxTurns guesses have been made.
func (s *Session) Solve(oracle Oracle) (Result, error) {
	if s.state != StateActive {
		return s.result(s.finalOutcome()), fmt.Errorf("%w: %s", ErrSessionOver, s.state)
	}
	for len(s.turns) < s.opts.MaxTurns {
		ranked, err := s.Suggest()
		if errors.Is(err, ErrEmptyCandidateSet) {
			return s.result(OutcomeExhausted), nil
		}
		if err != nil {
			return s.result(OutcomeExhausted), err
		}
		guess := ranked[0].Word
		p, err := oracle.Feedback(guess)
		if err != nil {
			return s.result(OutcomeExhausted), fmt.Errorf("feedback for %s: %w", guess, err)
		}
		if err := s.Observe(guess, p); err != nil {
			return s.result(OutcomeExhausted), err
		}
		switch s.state {
		case StateSolved:
			return s.result(OutcomeSolved), nil
		case StateExhausted:
			return s.result(OutcomeExhausted), nil
		}
	}
	return s.result(OutcomeCapped), nil
}

// finalOutcome maps a terminal state to its outcome.
func (s *Session) finalOutcome() Outcome {
	if s.state == StateSolved {
		return OutcomeSolved
	}
	return OutcomeExhausted
}

func (s *Session) result(o Outcome) Result {
	guesses := make([]words.Word, len(s.turns))
	for i, t := range s.turns {
		guesses[i] = t.Guess
	}
	return Result{Outcome: o, Guesses: guesses, GivenUp: s.GivenUp()}
}
