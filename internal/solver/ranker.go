// internal/solver/ranker.go
//
// Entropy ranking of guesses.
// Every admissible guess splits the candidate set into up to 243 buckets,
// one per feedback pattern. A guess scores the Shannon entropy of that split
// in bits, so the best guess is the one whose feedback is expected to tell
// us the most.
//
// Ties go to guesses that are still candidates, since those can end the game
// on the spot: candidates are appended first and the sort is stable.

package solver

import (
	"cmp"
	"errors"
	"math"
	"slices"

	"github.com/robalobadob/wordle-solver/internal/game"
	"github.com/robalobadob/wordle-solver/internal/words"
)

// ErrEmptyCandidateSet is returned when ranking against no candidates.
var ErrEmptyCandidateSet = errors.New("empty candidate set")

// Options tune the ranker.
type Options struct {
	// CorrectWeight multiplies the all-correct bucket's entropy term.
	// 1 is plain entropy; 2 favours guesses that may win immediately.
	CorrectWeight float64 `yaml:"correct_weight" json:"correctWeight"`

	// OpeningThreshold is the answer count above which the first move comes
	// from the opening book instead of a full computation. Later moves are
	// always computed. 0 disables the book.
	OpeningThreshold int `yaml:"opening_threshold" json:"openingThreshold"`

	// Lookahead enables two-ply scoring of the top LookaheadTopK guesses.
	Lookahead     bool `yaml:"lookahead" json:"lookahead"`
	LookaheadTopK int  `yaml:"lookahead_top_k" json:"lookaheadTopK"`
}

// DefaultOptions returns plain entropy with the opening book above 2000 candidates.
func DefaultOptions() Options {
	return Options{
		CorrectWeight:    1,
		OpeningThreshold: 2000,
		LookaheadTopK:    10,
	}
}

// Ranked is one scored guess.
type Ranked struct {
	Word  words.Word `json:"word"`
	Score float64    `json:"score"`
}

// openingBook is the ranking of the standard answer list before any feedback.
var openingBook = []struct {
	word  string
	score float64
}{
	{"soare", 5.885}, {"roate", 5.885},
	{"raise", 5.878}, {"reast", 5.868},
	{"raile", 5.865}, {"slate", 5.856},
	{"salet", 5.836}, {"crate", 5.835},
	{"irate", 5.833}, {"trace", 5.830},
}

// Scratch is the reusable pattern histogram. Reset before every use.
type Scratch struct {
	counts [game.NumPatterns]int
}

// Reset zeroes every bucket.
func (s *Scratch) Reset() { s.counts = [game.NumPatterns]int{} }

// Entropy scores guess against candidates in bits. The all-correct bucket's
// term is multiplied by correctWeight. candidates must not be empty.
func Entropy(guess words.Word, candidates []words.Word, s *Scratch, correctWeight float64) float64 {
	s.Reset()
	for _, c := range candidates {
		s.counts[game.Compare(guess, c)]++
	}
	total := float64(len(candidates))
	var sum float64
	for p, n := range s.counts {
		if n == 0 {
			continue
		}
		term := float64(n) * math.Log2(total/float64(n))
		if game.Pattern(p) == game.AllCorrect {
			term *= correctWeight
		}
		sum += term
	}
	return sum / total
}

// Ranker scores guesses against candidate sets. It owns a scratch buffer,
// so a Ranker must not be used by more than one goroutine at a time.
type Ranker struct {
	vocab   *words.Vocabulary
	opts    Options
	scratch Scratch
	opening []Ranked
}

// NewRanker returns a ranker over the admissible guesses of v.
func NewRanker(v *words.Vocabulary, opts Options) *Ranker {
	if opts.CorrectWeight == 0 {
		opts.CorrectWeight = 1
	}
	if opts.LookaheadTopK <= 0 {
		opts.LookaheadTopK = DefaultOptions().LookaheadTopK
	}
	r := &Ranker{vocab: v, opts: opts}
	if opts.OpeningThreshold > 0 {
		r.opening = bookFor(v)
	}
	return r
}

// bookFor returns the opening book if every word in it is admissible in v.
func bookFor(v *words.Vocabulary) []Ranked {
	out := make([]Ranked, 0, len(openingBook))
	for _, e := range openingBook {
		w := words.MustParse(e.word)
		if !v.IsAllowed(w) {
			return nil
		}
		out = append(out, Ranked{Word: w, Score: e.score})
	}
	return out
}

// Options returns the options in effect.
func (r *Ranker) Options() Options { return r.opts }

// Vocabulary returns the ranker's vocabulary.
func (r *Ranker) Vocabulary() *words.Vocabulary { return r.vocab }

// Rank scores every admissible guess against c, best first.
func (r *Ranker) Rank(c *CandidateSet) ([]Ranked, error) {
	if c.Empty() {
		return nil, ErrEmptyCandidateSet
	}
	if r.isOpening(c) {
		return slices.Clone(r.opening), nil
	}

	ranked := r.rankAll(c)
	if r.opts.Lookahead {
		r.lookahead(ranked, c)
	}
	return ranked, nil
}

// isOpening reports whether the book applies: c must still hold every answer
// (no feedback has narrowed it) and be larger than the threshold.
func (r *Ranker) isOpening(c *CandidateSet) bool {
	return r.opening != nil &&
		c.Len() == len(r.vocab.Answers()) &&
		c.Len() > r.opts.OpeningThreshold
}

// Best returns the top-ranked guess for c.
func (r *Ranker) Best(c *CandidateSet) (words.Word, error) {
	ranked, err := r.Rank(c)
	if err != nil {
		return words.Word{}, err
	}
	return ranked[0].Word, nil
}

func (r *Ranker) rankAll(c *CandidateSet) []Ranked {
	cands := c.Words()
	out := make([]Ranked, 0, len(r.vocab.Guesses()))
	// candidates first
	for _, w := range cands {
		out = append(out, Ranked{Word: w, Score: Entropy(w, cands, &r.scratch, r.opts.CorrectWeight)})
	}
	for _, w := range r.vocab.Guesses() {
		if c.Contains(w) {
			continue
		}
		out = append(out, Ranked{Word: w, Score: Entropy(w, cands, &r.scratch, r.opts.CorrectWeight)})
	}
	sortRanked(out)
	return out
}

// bestScore is the highest single-ply score any admissible guess reaches against cands.
func (r *Ranker) bestScore(cands []words.Word) float64 {
	best := 0.0
	for _, w := range r.vocab.Guesses() {
		if s := Entropy(w, cands, &r.scratch, r.opts.CorrectWeight); s > best {
			best = s
		}
	}
	return best
}

// lookahead adds, for each of the top-K guesses, the expected score of the
// best second guess over the buckets the first guess leaves behind, then
// re-sorts the top-K. The rest of the ranking is untouched and stays behind
// them, since the added term is never negative.
func (r *Ranker) lookahead(ranked []Ranked, c *CandidateSet) {
	k := min(r.opts.LookaheadTopK, len(ranked))
	total := float64(c.Len())
	for i := 0; i < k; i++ {
		var extra float64
		for _, b := range c.Partition(ranked[i].Word) {
			if b == nil {
				continue
			}
			n := b.Len()
			if n < 2 {
				continue
			}
			extra += float64(n) / total * r.bestScore(b.Words())
		}
		ranked[i].Score += extra
	}
	sortRanked(ranked[:k])
}

// Top returns at most n entries of ranked.
func Top(ranked []Ranked, n int) []Ranked {
	if n < len(ranked) {
		return ranked[:n]
	}
	return ranked
}

func sortRanked(r []Ranked) {
	slices.SortStableFunc(r, func(a, b Ranked) int { return cmp.Compare(b.Score, a.Score) })
}
