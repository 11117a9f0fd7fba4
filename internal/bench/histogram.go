package bench

import (
	"github.com/robalobadob/wordle-solver/internal/solver"
)

// Histogram counts games by number of guesses. Counts[i] holds games solved
// in i+1 guesses for i < TurnLimit; the last bucket holds everything else:
// games solved late, capped, or exhausted.
type Histogram struct {
	Counts []int `json:"counts"`
}

// NewHistogram returns an empty histogram for a game of turnLimit guesses.
func NewHistogram(turnLimit int) *Histogram {
	return &Histogram{Counts: make([]int, turnLimit+1)}
}

// TurnLimit is the number of regular buckets.
func (h *Histogram) TurnLimit() int { return len(h.Counts) - 1 }

// Add records one game.
func (h *Histogram) Add(r solver.Result) {
	if r.Outcome == solver.OutcomeSolved && r.Turns() >= 1 && r.Turns() <= h.TurnLimit() {
		h.Counts[r.Turns()-1]++
		return
	}
	h.Counts[h.TurnLimit()]++
}

// Merge adds o's counts into h. Both must have the same turn limit.
func (h *Histogram) Merge(o *Histogram) {
	for i, n := range o.Counts {
		h.Counts[i] += n
	}
}

// Overflow is the number of games that did not finish within the turn limit.
func (h *Histogram) Overflow() int { return h.Counts[h.TurnLimit()] }

// Total is the number of games recorded.
func (h *Histogram) Total() int {
	n := 0
	for _, c := range h.Counts {
		n += c
	}
	return n
}

// Average is the mean number of guesses, counting overflow as TurnLimit+1.
func (h *Histogram) Average() float64 {
	total := h.Total()
	if total == 0 {
		return 0
	}
	sum := 0
	for i, c := range h.Counts {
		sum += c * (i + 1)
	}
	return float64(sum) / float64(total)
}
