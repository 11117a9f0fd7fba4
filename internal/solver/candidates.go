package solver

import (
	"github.com/bits-and-blooms/bitset"

	"github.com/robalobadob/wordle-solver/internal/game"
	"github.com/robalobadob/wordle-solver/internal/words"
)

// CandidateSet is the set of answers still consistent with every pattern
// observed in a game. Bit i stands for vocab.Answers()[i]. Sets are never
// mutated once built; Filter returns a new, smaller set.
type CandidateSet struct {
	vocab *words.Vocabulary
	bits  *bitset.BitSet
}

// NewCandidateSet returns the set of all answers in v.
func NewCandidateSet(v *words.Vocabulary) *CandidateSet {
	n := uint(len(v.Answers()))
	b := bitset.New(n)
	b.FlipRange(0, n)
	return &CandidateSet{vocab: v, bits: b}
}

// Len returns the number of candidates.
func (c *CandidateSet) Len() int { return int(c.bits.Count()) }

// Empty reports whether no candidate is left.
func (c *CandidateSet) Empty() bool { return c.bits.None() }

// Contains reports whether w is still a candidate.
func (c *CandidateSet) Contains(w words.Word) bool {
	i, ok := c.vocab.AnswerIndex(w)
	return ok && c.bits.Test(uint(i))
}

// Words returns the candidates in answer-list order.
func (c *CandidateSet) Words() []words.Word {
	answers := c.vocab.Answers()
	out := make([]words.Word, 0, c.Len())
	for i, ok := c.bits.NextSet(0); ok; i, ok = c.bits.NextSet(i + 1) {
		out = append(out, answers[i])
	}
	return out
}

// Filter keeps the candidates that would have produced p for guess.
func (c *CandidateSet) Filter(guess words.Word, p game.Pattern) *CandidateSet {
	answers := c.vocab.Answers()
	b := bitset.New(c.bits.Len())
	for i, ok := c.bits.NextSet(0); ok; i, ok = c.bits.NextSet(i + 1) {
		if game.Compare(guess, answers[i]) == p {
			b.Set(i)
		}
	}
	return &CandidateSet{vocab: c.vocab, bits: b}
}

// Partition splits the set by the pattern guess would produce against each
// candidate. Entries for patterns no candidate produces are nil.
func (c *CandidateSet) Partition(guess words.Word) *[game.NumPatterns]*CandidateSet {
	var out [game.NumPatterns]*CandidateSet
	answers := c.vocab.Answers()
	for i, ok := c.bits.NextSet(0); ok; i, ok = c.bits.NextSet(i + 1) {
		p := game.Compare(guess, answers[i])
		if out[p] == nil {
			out[p] = &CandidateSet{vocab: c.vocab, bits: bitset.New(c.bits.Len())}
		}
		out[p].bits.Set(i)
	}
	return &out
}

// SubsetOf reports whether every member of c is in o.
func (c *CandidateSet) SubsetOf(o *CandidateSet) bool {
	return o.bits.IsSuperSet(c.bits)
}

// Vocabulary returns the vocabulary the set indexes into.
func (c *CandidateSet) Vocabulary() *words.Vocabulary { return c.vocab }
