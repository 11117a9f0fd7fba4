package bench

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/robalobadob/wordle-solver/internal/solver"
	"github.com/robalobadob/wordle-solver/internal/words"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func embeddedVocab(t *testing.T) *words.Vocabulary {
	t.Helper()
	v, err := words.Load(words.Source{})
	require.NoError(t, err)
	return v
}

func TestHistogram(t *testing.T) {
	h := NewHistogram(6)
	require.Len(t, h.Counts, 7)

	guesses := func(n int) []words.Word { return make([]words.Word, n) }
	h.Add(solver.Result{Outcome: solver.OutcomeSolved, Guesses: guesses(1)})
	h.Add(solver.Result{Outcome: solver.OutcomeSolved, Guesses: guesses(3)})
	h.Add(solver.Result{Outcome: solver.OutcomeSolved, Guesses: guesses(3)})
	h.Add(solver.Result{Outcome: solver.OutcomeSolved, Guesses: guesses(8), GivenUp: true})
	h.Add(solver.Result{Outcome: solver.OutcomeCapped, Guesses: guesses(10), GivenUp: true})
	h.Add(solver.Result{Outcome: solver.OutcomeExhausted, Guesses: guesses(2)})

	assert.Equal(t, []int{1, 0, 2, 0, 0, 0, 3}, h.Counts)
	assert.Equal(t, 6, h.Total())
	assert.Equal(t, 3, h.Overflow())
	// (1 + 3 + 3 + 7*3) / 6
	assert.InDelta(t, 28.0/6.0, h.Average(), 1e-9)

	other := NewHistogram(6)
	other.Add(solver.Result{Outcome: solver.OutcomeSolved, Guesses: guesses(2)})
	h.Merge(other)
	assert.Equal(t, []int{1, 1, 2, 0, 0, 0, 3}, h.Counts)

	assert.Zero(t, NewHistogram(6).Average())
}

// TestRunWorkerCountsAgree runs the benchmark serially and in parallel and
// expects the same distribution: games are independent of sharding.
func TestRunWorkerCountsAgree(t *testing.T) {
	v := embeddedVocab(t)

	serial, err := Run(context.Background(), v, Options{Workers: 1, Solver: solver.DefaultOptions()})
	require.NoError(t, err)
	assert.Equal(t, 1, serial.Workers)
	assert.Equal(t, len(v.Answers()), serial.Total())
	assert.Zero(t, serial.Distribution.Overflow())
	assert.Empty(t, serial.Failures)
	assert.Equal(t, 6, serial.Session.TurnLimit)
	assert.Equal(t, 10, serial.Session.MaxTurns)
	assert.Greater(t, serial.Average(), 1.0)
	assert.Less(t, serial.Average(), 6.0)

	parallel, err := Run(context.Background(), v, Options{Workers: 4, Solver: solver.DefaultOptions()})
	require.NoError(t, err)
	assert.Equal(t, 4, parallel.Workers)
	assert.Equal(t, serial.Distribution.Counts, parallel.Distribution.Counts)
}

func TestRunReportsFailures(t *testing.T) {
	v := embeddedVocab(t)

	// With a one-guess limit almost every answer overflows.
	rep, err := Run(context.Background(), v, Options{
		Workers: 3,
		Solver:  solver.DefaultOptions(),
		Session: solver.SessionOptions{TurnLimit: 1, MaxTurns: 10},
	})
	require.NoError(t, err)
	require.Len(t, rep.Distribution.Counts, 2)
	assert.Equal(t, rep.Distribution.Overflow(), len(rep.Failures))
	assert.NotEmpty(t, rep.Failures)

	// Failures come back in answer-list order regardless of which worker found them.
	index := map[words.Word]int{}
	for i, a := range v.Answers() {
		index[a] = i
	}
	for i := 1; i < len(rep.Failures); i++ {
		assert.Less(t, index[rep.Failures[i-1].Answer], index[rep.Failures[i].Answer])
	}
	for _, f := range rep.Failures {
		assert.Equal(t, solver.OutcomeSolved, f.Outcome)
		assert.Equal(t, f.Answer, f.Guesses[len(f.Guesses)-1])
	}
}

func TestRunMoreWorkersThanAnswers(t *testing.T) {
	v, err := words.FromStrings([]string{"about", "taint", "slate", "gaint"}, nil)
	require.NoError(t, err)

	var buf bytes.Buffer
	rep, err := Run(context.Background(), v, Options{Workers: 16, Progress: &buf})
	require.NoError(t, err)
	assert.Equal(t, 4, rep.Workers)
	assert.Equal(t, 4, rep.Total())
}

func TestRunCanceled(t *testing.T) {
	v := embeddedVocab(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Run(ctx, v, Options{Workers: 2})
	assert.ErrorIs(t, err, context.Canceled)
}
