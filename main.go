// Command wordle-solver suggests Wordle guesses, benchmarks the ranking over
// the whole answer list, and serves both over HTTP. All functionality lives
// in internal/cli.
package main

import (
	"github.com/robalobadob/wordle-solver/internal/cli"
)

// version is set at build time via -ldflags "-X main.version=...".
var version = "dev"

func main() {
	cli.Version = version
	cli.Execute(cli.NewRootCommand())
}
