// internal/words/words.go
//
// Provides word list management for the solver.
//
// Responsibilities:
//   - Load answer and allowed guess lists from configured files or fall back to embedded defaults.
//   - Build an immutable Vocabulary (answers, admissible guesses, answer index).
//   - Supply lookups like IsAnswer, IsAllowed, AnswerIndex and Stats.
//
// Word Lists:
//   - "answers": the words a hidden target may be drawn from.
//   - "allowed": valid guesses (always includes answers).
//
// Load behavior:
//  1. If both files are set, load answers from the first and allowed guesses from the second.
//  2. If only the allowed file is set, use it for both answers and allowed guesses.
//  3. If neither is set, use the lists embedded in the assets package.
//
// Constraints:
//   - Lines that are not 5 letters a–z are skipped and counted.
//   - A Vocabulary is never mutated after construction, so it can be shared by goroutines.

package words

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle-solver/assets"
)

// ErrNoAnswers is returned when the answer list ends up empty.
var ErrNoAnswers = errors.New("words: answers list is empty")

// Source names the files to load. Empty paths fall back as described above.
type Source struct {
	AnswersFile string
	AllowedFile string
}

// Vocabulary is the read-only word configuration shared by every game.
type Vocabulary struct {
	answers   []Word       // answer list, source order
	guesses   []Word       // answers first, then the remaining allowed words
	answerIdx map[Word]int // position in answers
	allowed   map[Word]struct{}
}

// NewVocabulary builds a Vocabulary. Duplicates are dropped, keeping the
// first occurrence; every answer is admissible as a guess.
func NewVocabulary(answers, allowed []Word) (*Vocabulary, error) {
	v := &Vocabulary{
		answerIdx: make(map[Word]int, len(answers)),
		allowed:   make(map[Word]struct{}, len(answers)+len(allowed)),
	}
	for _, w := range answers {
		if _, dup := v.answerIdx[w]; dup {
			continue
		}
		v.answerIdx[w] = len(v.answers)
		v.answers = append(v.answers, w)
		v.allowed[w] = struct{}{}
		v.guesses = append(v.guesses, w)
	}
	if len(v.answers) == 0 {
		return nil, ErrNoAnswers
	}
	for _, w := range allowed {
		if _, dup := v.allowed[w]; dup {
			continue
		}
		v.allowed[w] = struct{}{}
		v.guesses = append(v.guesses, w)
	}
	return v, nil
}

// FromStrings parses both lists and builds a Vocabulary. Any malformed entry is an error.
func FromStrings(answers, allowed []string) (*Vocabulary, error) {
	a, err := parseAll(answers)
	if err != nil {
		return nil, fmt.Errorf("answers: %w", err)
	}
	g, err := parseAll(allowed)
	if err != nil {
		return nil, fmt.Errorf("allowed: %w", err)
	}
	return NewVocabulary(a, g)
}

// Load reads the lists described by src.
func Load(src Source) (*Vocabulary, error) {
	var ansList, allowList []Word

	switch {
	// both lists provided
	case src.AnswersFile != "" && src.AllowedFile != "":
		var err error
		ansList, err = readWordFile(src.AnswersFile)
		if err != nil {
			return nil, err
		}
		allowList, err = readWordFile(src.AllowedFile)
		if err != nil {
			return nil, err
		}

	// only allowed file provided → use for both
	case src.AnswersFile == "" && src.AllowedFile != "":
		var err error
		allowList, err = readWordFile(src.AllowedFile)
		if err != nil {
			return nil, err
		}
		ansList = allowList

	case src.AnswersFile != "":
		return nil, errors.New("words: answers file set without allowed file")

	// embedded defaults
	default:
		a, err := assets.AnswersList()
		if err != nil {
			return nil, err
		}
		g, err := assets.AllowedList()
		if err != nil {
			return nil, err
		}
		ansList = normalize(a, "embedded answers")
		allowList = normalize(g, "embedded allowed")
	}

	return NewVocabulary(ansList, allowList)
}

// readWordFile loads one word per line from a file, skipping blanks,
// '#' comments and anything that is not a valid word.
func readWordFile(path string) ([]Word, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open word list: %w", err)
	}
	defer f.Close()

	var lines []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return normalize(lines, path), nil
}

// normalize keeps the valid words of lines and logs how many were dropped.
func normalize(lines []string, origin string) []Word {
	out := make([]Word, 0, len(lines))
	skipped := 0
	for _, line := range lines {
		s := strings.TrimSpace(line)
		if s == "" || strings.HasPrefix(s, "#") {
			continue
		}
		w, err := Parse(s)
		if err != nil {
			skipped++
			continue
		}
		out = append(out, w)
	}
	if skipped > 0 {
		log.Warn().Str("source", origin).Int("skipped", skipped).Msg("ignored malformed words")
	}
	return out
}

func parseAll(list []string) ([]Word, error) {
	out := make([]Word, 0, len(list))
	for _, s := range list {
		w, err := Parse(s)
		if err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	return out, nil
}

// Answers returns the answer list. Callers must not modify it.
func (v *Vocabulary) Answers() []Word { return v.answers }

// Guesses returns every admissible guess, answers first. Callers must not modify it.
func (v *Vocabulary) Guesses() []Word { return v.guesses }

// AnswerIndex returns the position of w in Answers.
func (v *Vocabulary) AnswerIndex(w Word) (int, bool) {
	i, ok := v.answerIdx[w]
	return i, ok
}

// IsAnswer reports whether w is an answer word.
func (v *Vocabulary) IsAnswer(w Word) bool {
	_, ok := v.answerIdx[w]
	return ok
}

// IsAllowed reports whether w is a valid guess (answers ∪ guesses).
func (v *Vocabulary) IsAllowed(w Word) bool {
	_, ok := v.allowed[w]
	return ok
}

// Stats returns counts of loaded words: (answers, allowed).
func (v *Vocabulary) Stats() (answersCount int, allowedCount int) {
	return len(v.answers), len(v.guesses)
}
