package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/robalobadob/wordle-solver/internal/interactive"
	"github.com/robalobadob/wordle-solver/internal/solver"
)

func newCheatCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "cheat",
		Short: "Suggest guesses for a game you are playing",
		Long: `Suggest guesses for a game played elsewhere. Enter each guess you made
and the feedback the game returned.

` + interactive.Help,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runCheat(cmd)
		},
	}
}

func (a *app) runCheat(cmd *cobra.Command) error {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, interactive.Help)
	fmt.Fprintln(out)
	sess := solver.NewSession(solver.NewRanker(a.vocab, a.cfg.Solver), a.cfg.Session)
	return interactive.Cheat(cmd.InOrStdin(), out, sess)
}
