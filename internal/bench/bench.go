// internal/bench/bench.go
//
// Benchmark driver: solve every answer once and report how many guesses it took.
//
// The answer list is cut into contiguous shards, one per worker. Each worker
// owns its Ranker (and with it the scratch histogram) and a private Histogram,
// and merges into the shared report exactly once, under the mutex, when its
// shard is done. Nothing else is shared while games run.

package bench

import (
	"context"
	"fmt"
	"io"
	"runtime"
	"slices"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/schollz/progressbar/v3"
	"golang.org/x/sync/errgroup"

	"github.com/robalobadob/wordle-solver/internal/game"
	"github.com/robalobadob/wordle-solver/internal/solver"
	"github.com/robalobadob/wordle-solver/internal/words"
)

// Options configure a run.
type Options struct {
	Workers  int                   // <= 0 means one per CPU
	Solver   solver.Options        // ranker options for every game
	Session  solver.SessionOptions // turn limit and cap
	Progress io.Writer             // progress bar destination; nil for none
}

// Failure is an answer that was not solved within the turn limit.
type Failure struct {
	Answer  words.Word     `json:"answer"`
	Outcome solver.Outcome `json:"outcome"`
	Guesses []words.Word   `json:"guesses"`
	index   int
}

// Report is the aggregate of a run.
type Report struct {
	StartedAt    time.Time             `json:"startedAt"`
	Duration     time.Duration         `json:"duration"`
	Workers      int                   `json:"workers"`
	Solver       solver.Options        `json:"solver"`
	Session      solver.SessionOptions `json:"session"`
	Distribution *Histogram            `json:"distribution"`
	Failures     []Failure             `json:"failures"`
}

// Average is the mean number of guesses per answer.
func (r *Report) Average() float64 { return r.Distribution.Average() }

// Total is the number of answers played.
func (r *Report) Total() int { return r.Distribution.Total() }

// shardResult is what one worker hands back.
type shardResult struct {
	hist     *Histogram
	failures []Failure
}

// Run plays every answer of v and aggregates the outcomes.
func Run(ctx context.Context, v *words.Vocabulary, opts Options) (*Report, error) {
	def := solver.DefaultSessionOptions()
	if opts.Session.TurnLimit <= 0 {
		opts.Session.TurnLimit = def.TurnLimit
	}
	if opts.Session.MaxTurns <= 0 {
		opts.Session.MaxTurns = def.MaxTurns
	}
	answers := v.Answers()
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	workers = min(workers, len(answers))

	report := &Report{
		StartedAt:    time.Now().UTC(),
		Workers:      workers,
		Solver:       opts.Solver,
		Session:      opts.Session,
		Distribution: NewHistogram(opts.Session.TurnLimit),
	}

	var bar *progressbar.ProgressBar
	if opts.Progress != nil {
		bar = progressbar.NewOptions(len(answers),
			progressbar.OptionSetWriter(opts.Progress),
			progressbar.OptionSetDescription("solving"),
			progressbar.OptionShowCount(),
			progressbar.OptionThrottle(100*time.Millisecond),
		)
	}

	var mu sync.Mutex
	g, ctx := errgroup.WithContext(ctx)
	for i := 0; i < workers; i++ {
		i := i
		start := len(answers) * i / workers
		end := len(answers) * (i + 1) / workers
		g.Go(func() error {
			log.Debug().Int("worker", i).Int("jobs", end-start).Msg("worker started")
			res, err := runShard(ctx, v, opts, answers[start:end], start, bar)
			if err != nil {
				return err
			}
			mu.Lock()
			report.Distribution.Merge(res.hist)
			report.Failures = append(report.Failures, res.failures...)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if bar != nil {
		_ = bar.Finish()
	}

	slices.SortFunc(report.Failures, func(a, b Failure) int { return a.index - b.index })
	report.Duration = time.Since(report.StartedAt)
	log.Info().
		Int("answers", report.Total()).
		Int("workers", workers).
		Float64("average", report.Average()).
		Int("overflow", report.Distribution.Overflow()).
		Dur("took", report.Duration).
		Msg("benchmark finished")
	return report, nil
}

// runShard solves each answer of shard with a private ranker and histogram.
// offset is the index of shard[0] in the answer list.
func runShard(ctx context.Context, v *words.Vocabulary, opts Options, shard []words.Word, offset int, bar *progressbar.ProgressBar) (shardResult, error) {
	res := shardResult{hist: NewHistogram(opts.Session.TurnLimit)}
	ranker := solver.NewRanker(v, opts.Solver)

	for i, answer := range shard {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		s := solver.NewSession(ranker, opts.Session)
		r, err := s.Solve(game.New(answer))
		if err != nil {
			return res, fmt.Errorf("solve %s: %w", answer, err)
		}
		res.hist.Add(r)
		if r.Outcome != solver.OutcomeSolved || r.GivenUp {
			res.failures = append(res.failures, Failure{
				Answer:  answer,
				Outcome: r.Outcome,
				Guesses: r.Guesses,
				index:   offset + i,
			})
			log.Debug().Str("answer", answer.String()).Str("outcome", string(r.Outcome)).
				Strs("guesses", wordStrings(r.Guesses)).Msg("answer over the turn limit")
		}
		if bar != nil {
			_ = bar.Add(1)
		}
	}
	return res, nil
}

func wordStrings(ws []words.Word) []string {
	out := make([]string, len(ws))
	for i, w := range ws {
		out[i] = w.String()
	}
	return out
}
