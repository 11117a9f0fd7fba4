package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/robalobadob/wordle-solver/internal/httpserver"
)

func newTokenCommand(a *app) *cobra.Command {
	var (
		subject string
		days    int
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Print a bearer token for POST /bench",
		Long: `Sign a token with the configured JWT_SECRET. Send it as
"Authorization: Bearer <token>" to start benchmark runs on a server.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tok, exp, err := httpserver.SignToken(a.cfg.Server.JWTSecret, subject, time.Duration(days)*24*time.Hour)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), tok)
			fmt.Fprintf(cmd.ErrOrStderr(), "expires %s\n", exp.UTC().Format(time.RFC3339))
			return nil
		},
	}

	cmd.Flags().StringVar(&subject, "subject", "cli", "Token subject")
	cmd.Flags().IntVar(&days, "days", 14, "Days until the token expires")
	return cmd
}
