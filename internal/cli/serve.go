package cli

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/wordle-solver/internal/httpserver"
	"github.com/robalobadob/wordle-solver/internal/store"
)

func newServeCommand(a *app) *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the solver over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if port != "" {
				a.cfg.Server.Port = port
			}
			// The server logs JSON.
			log.Logger = zerolog.New(cmd.ErrOrStderr()).With().Timestamp().Logger()

			db, err := store.Open(cmd.Context(), a.cfg.Bench.DBPath)
			if err != nil {
				return err
			}
			defer db.Close()

			srv := httpserver.New(a.vocab, a.cfg, store.NewMemoryStore(), store.NewRunStore(db))
			log.Info().Str("port", a.cfg.Server.Port).Msg("starting solver server")
			return srv.Start(":" + a.cfg.Server.Port)
		},
	}

	cmd.Flags().StringVar(&port, "port", "", "Listen port (default from config, 5175)")
	return cmd
}
