// Package cli implements the cobra-based CLI for the solver.
//
// Each subcommand (cheat, bench, solve, serve, token) is defined in its own
// file within this package. This file defines the root command, its global
// flags and the setup every subcommand shares: configuration, logging, the
// comparator self-check and the word lists.
package cli

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/wordle-solver/internal/config"
	"github.com/robalobadob/wordle-solver/internal/game"
	"github.com/robalobadob/wordle-solver/internal/words"
)

// Version is set from main at build time.
var Version = "dev"

// app is the state shared by the root command and its subcommands.
type app struct {
	configPath string // --config
	verbose    bool   // -v/--verbose
	bench      bool   // -b/--bench
	cheat      bool   // -c/--cheat

	cfg   config.Config
	vocab *words.Vocabulary
}

// NewRootCommand creates the root command with every subcommand registered.
//
// Without a subcommand, -b runs the benchmark and -c (the default) starts
// an interactive cheat session.
func NewRootCommand() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "wordle-solver",
		Short: "Entropy-ranking Wordle solver",
		Long: `wordle-solver suggests the next Wordle guess by ranking every admissible
word on the information its feedback is expected to reveal.

Run without a subcommand for an interactive cheat session (-c, the
default) or a benchmark over the whole answer list (-b).`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		Version:           Version,
		Args:              cobra.NoArgs,
		PersistentPreRunE: a.setup,
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.bench {
				return a.runBench(cmd, benchFlags{workers: a.cfg.Bench.Workers, db: a.cfg.Bench.DBPath})
			}
			return a.runCheat(cmd)
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", "", "YAML config file (default: $WORDLE_CONFIG)")
	rootCmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.Flags().BoolVarP(&a.bench, "bench", "b", false, "Benchmark the solver over every answer")
	rootCmd.Flags().BoolVarP(&a.cheat, "cheat", "c", false, "Interactive cheating (default)")
	rootCmd.MarkFlagsMutuallyExclusive("bench", "cheat")

	rootCmd.AddCommand(newCheatCommand(a))
	rootCmd.AddCommand(newBenchCommand(a))
	rootCmd.AddCommand(newSolveCommand(a))
	rootCmd.AddCommand(newServeCommand(a))
	rootCmd.AddCommand(newTokenCommand(a))

	return rootCmd
}

// Execute runs the root command and exits 1 on error.
func Execute(rootCmd *cobra.Command) {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// setup loads configuration and word lists before any command runs.
func (a *app) setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	a.cfg = cfg
	configureLogging(cmd.ErrOrStderr(), cfg.LogLevel, a.verbose)

	if err := game.SelfCheck(); err != nil {
		return err
	}
	v, err := words.Load(cfg.Words.Source())
	if err != nil {
		return fmt.Errorf("failed to load word lists: %w", err)
	}
	a.vocab = v
	answers, allowed := v.Stats()
	log.Debug().Int("answers", answers).Int("allowed", allowed).Msg("word lists loaded")
	return nil
}

// configureLogging points the global logger at a console writer.
func configureLogging(w io.Writer, level string, verbose bool) {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen})
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	if verbose {
		lvl = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(lvl)
}
