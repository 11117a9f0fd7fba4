package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/robalobadob/wordle-solver/internal/daily"
	"github.com/robalobadob/wordle-solver/internal/game"
	"github.com/robalobadob/wordle-solver/internal/interactive"
	"github.com/robalobadob/wordle-solver/internal/solver"
	"github.com/robalobadob/wordle-solver/internal/words"
)

func newSolveCommand(a *app) *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "solve [target]",
		Short: "Watch the solver play against a known answer",
		Long: `Play one game against target and print every guess with its feedback.
Without a target the daily answer is used (today's, or --date).

Examples:
  wordle-solver solve crane
  wordle-solver solve --date 2026-01-01`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var target words.Word
			if len(args) == 1 {
				w, err := words.Parse(args[0])
				if err != nil {
					return err
				}
				if !a.vocab.IsAnswer(w) {
					return fmt.Errorf("%s is not in the answer list", w)
				}
				target = w
			} else {
				day := time.Now().UTC()
				if date != "" {
					t, err := time.Parse("2006-01-02", date)
					if err != nil {
						return fmt.Errorf("--date: %w", err)
					}
					day = t
				}
				target = daily.Answer(a.vocab, day, a.cfg.Daily.Salt)
			}
			return a.runSolve(cmd, target)
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Day of the daily answer, YYYY-MM-DD (default: today)")
	return cmd
}

func (a *app) runSolve(cmd *cobra.Command, target words.Word) error {
	out := cmd.OutOrStdout()
	styles := interactive.NewStyles(out)
	sess := solver.NewSession(solver.NewRanker(a.vocab, a.cfg.Solver), a.cfg.Session)

	res, err := sess.Solve(game.New(target))
	if err != nil {
		return err
	}
	for i, t := range sess.Turns() {
		fmt.Fprintf(out, "%d\t%s\t%s\t%d left\n", i+1, styles.Render(t.Guess, t.Pattern), t.Pattern, t.Remaining)
	}
	switch res.Outcome {
	case solver.OutcomeSolved:
		fmt.Fprintf(out, "Solved %s in %d guesses.\n", target, res.Turns())
	default:
		fmt.Fprintf(out, "Did not solve %s (%s after %d guesses).\n", target, res.Outcome, res.Turns())
	}
	if res.GivenUp {
		fmt.Fprintf(out, "Took more than %d guesses.\n", a.cfg.Session.TurnLimit)
	}
	return nil
}
