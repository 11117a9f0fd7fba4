package interactive

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/robalobadob/wordle-solver/internal/game"
	"github.com/robalobadob/wordle-solver/internal/solver"
	"github.com/robalobadob/wordle-solver/internal/words"
)

// Tile colours, matching the game board.
var (
	colorMiss    = lipgloss.Color("#3a3a3c")
	colorPresent = lipgloss.Color("#c9b458")
	colorHit     = lipgloss.Color("#6aaa64")
	colorText    = lipgloss.Color("#ffffff")
)

// Styles renders feedback for one output. Colours are dropped automatically
// when the output is not a terminal.
type Styles struct {
	tiles [3]lipgloss.Style // indexed by game.Mark
}

// NewStyles builds styles for out.
func NewStyles(out io.Writer) Styles {
	r := lipgloss.NewRenderer(out)
	tile := r.NewStyle().Bold(true).Foreground(colorText)
	return Styles{tiles: [3]lipgloss.Style{
		game.MarkMiss:    tile.Background(colorMiss),
		game.MarkPresent: tile.Background(colorPresent),
		game.MarkHit:     tile.Background(colorHit),
	}}
}

// Render colours each letter of w by its mark in p.
func (s Styles) Render(w words.Word, p game.Pattern) string {
	var b strings.Builder
	for i, m := range p.Marks() {
		b.WriteString(s.tiles[m].Render(string(w[i])))
	}
	return b.String()
}

// printWordList prints up to limit candidates on one line.
func printWordList(out io.Writer, c *solver.CandidateSet, limit int) {
	list := c.Words()
	for i, w := range list {
		if i == limit {
			break
		}
		fmt.Fprintf(out, "%s\t", w)
	}
	if len(list) > limit {
		fmt.Fprintf(out, "... and %d more", len(list)-limit)
	}
	fmt.Fprintln(out)
}

// printSuggestions prints the ranking head, marking guesses that can still win.
func printSuggestions(out io.Writer, ranked []solver.Ranked, c *solver.CandidateSet) {
	fmt.Fprintf(out, "Top %d recommended guesses:\n", len(ranked))
	for _, r := range ranked {
		mark := "❌"
		if c.Contains(r.Word) {
			mark = "✅"
		}
		fmt.Fprintf(out, "%s%s\t%.3f\n", mark, r.Word, r.Score)
	}
	fmt.Fprintln(out)
}
