package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/wordle-solver/internal/bench"
	"github.com/robalobadob/wordle-solver/internal/store"
)

// benchFlags holds the flag values for the bench command.
type benchFlags struct {
	workers  int    // --workers
	db       string // --db; empty skips recording
	progress bool   // --progress
	maxTurns int    // --max-turns; 0 keeps the configured cap
}

func newBenchCommand(a *app) *cobra.Command {
	flags := &benchFlags{}

	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Play every answer and report the guess distribution",
		Long: `Play one game against every answer in the list and report how many
guesses each took. Games are spread over worker goroutines; the result
does not depend on the worker count.

Examples:
  wordle-solver bench
  wordle-solver bench --workers 8 --progress
  wordle-solver bench --db ""   # do not record the run`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("workers") {
				flags.workers = a.cfg.Bench.Workers
			}
			if !cmd.Flags().Changed("db") {
				flags.db = a.cfg.Bench.DBPath
			}
			return a.runBench(cmd, *flags)
		},
	}

	cmd.Flags().IntVar(&flags.workers, "workers", 0, "Worker goroutines (default: one per CPU)")
	cmd.Flags().StringVar(&flags.db, "db", "", "SQLite file to record the run in (default from config)")
	cmd.Flags().BoolVar(&flags.progress, "progress", false, "Show a progress bar on stderr")
	cmd.Flags().IntVar(&flags.maxTurns, "max-turns", 0, "Give up on a game after this many guesses")

	return cmd
}

func (a *app) runBench(cmd *cobra.Command, flags benchFlags) error {
	ctx := cmd.Context()
	opts := bench.Options{
		Workers: flags.workers,
		Solver:  a.cfg.Solver,
		Session: a.cfg.Session,
	}
	if flags.maxTurns > 0 {
		opts.Session.MaxTurns = flags.maxTurns
	}
	if flags.progress {
		opts.Progress = cmd.ErrOrStderr()
	}

	rep, err := bench.Run(ctx, a.vocab, opts)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	printReport(out, rep)

	if flags.db == "" {
		return nil
	}
	db, err := store.Open(ctx, flags.db)
	if err != nil {
		return err
	}
	defer db.Close()
	id, err := store.NewRunStore(db).SaveRun(ctx, store.RunFromReport(rep))
	if err != nil {
		return fmt.Errorf("save run: %w", err)
	}
	log.Info().Int64("run", id).Str("db", flags.db).Msg("run recorded")
	fmt.Fprintf(out, "Saved run #%d to %s\n", id, flags.db)
	return nil
}

// printReport writes the guess distribution, one row per turn count.
func printReport(w io.Writer, rep *bench.Report) {
	h := rep.Distribution
	fmt.Fprintln(w, "Distribution:")
	for i := 0; i < h.TurnLimit(); i++ {
		fmt.Fprintf(w, "%d\t%d\n", i+1, h.Counts[i])
	}
	fmt.Fprintf(w, ">%d\t%d\n", h.TurnLimit(), h.Overflow())
	fmt.Fprintf(w, "Average =\t%.4f\n", rep.Average())
	fmt.Fprintf(w, "Played %d answers on %d workers in %s\n", rep.Total(), rep.Workers, rep.Duration.Round(time.Millisecond))
	for _, f := range rep.Failures {
		guesses := make([]string, len(f.Guesses))
		for i, g := range f.Guesses {
			guesses[i] = g.String()
		}
		fmt.Fprintf(w, "Failed:\t%s\t%s\t%s\n", f.Answer, f.Outcome, strings.Join(guesses, ","))
	}
}
