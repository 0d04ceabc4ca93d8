// Package console draws a match on a terminal and reads moves typed by the
// players.
package console

import (
	"fmt"
	"io"
	"strings"

	"github.com/benbeisheim/chessmatch/internal/model"
	"github.com/fatih/color"
)

const clearScreen = "\033[H\033[2J"

// Renderer writes boards and match summaries to a terminal.
type Renderer struct {
	out       io.Writer
	white     *color.Color
	black     *color.Color
	highlight *color.Color
	banner    *color.Color

	// Clear makes PrintMatch and PrintBoard start by clearing the screen.
	Clear bool
}

func NewRenderer(out io.Writer) *Renderer {
	return &Renderer{
		out:       out,
		white:     color.New(color.FgHiWhite, color.Bold),
		black:     color.New(color.FgYellow),
		highlight: color.New(color.BgBlue),
		banner:    color.New(color.FgRed, color.Bold),
	}
}

func (r *Renderer) pieceColor(c model.Color) *color.Color {
	if c == model.White {
		return r.white
	}
	return r.black
}

// PrintBoard draws the board from rank 8 down to rank 1. Squares set in
// highlight get a background.
func (r *Renderer) PrintBoard(board [model.Rows][model.Columns]*model.Cell, highlight *model.Moves) {
	if r.Clear {
		fmt.Fprint(r.out, clearScreen)
	}
	for row := 0; row < model.Rows; row++ {
		fmt.Fprintf(r.out, "%d ", model.Rows-row)
		for col := 0; col < model.Columns; col++ {
			cell := board[row][col]
			sym := "-"
			if cell != nil {
				sym = r.pieceColor(cell.Color).Sprint(cell.Type.Letter())
			}
			if highlight != nil && highlight[row][col] {
				sym = r.highlight.Sprint(sym)
			}
			fmt.Fprint(r.out, sym, " ")
		}
		fmt.Fprintln(r.out)
	}
	fmt.Fprintln(r.out, "  a b c d e f g h")
}

// PrintMatch draws the board, the captured pieces and the match status.
func (r *Renderer) PrintMatch(state model.MatchState) {
	r.PrintBoard(state.Board, nil)
	fmt.Fprintln(r.out)

	fmt.Fprintln(r.out, "Captured pieces:")
	fmt.Fprintf(r.out, "White: %s\n", r.white.Sprint(letters(state.CapturedBy(model.White))))
	fmt.Fprintf(r.out, "Black: %s\n", r.black.Sprint(letters(state.CapturedBy(model.Black))))
	fmt.Fprintln(r.out)

	fmt.Fprintf(r.out, "Turn: %d\n", state.Turn)
	if state.LastMove != nil {
		fmt.Fprintf(r.out, "Last move: %s %s-%s\n", state.LastMove.Piece.Letter(), state.LastMove.From, state.LastMove.To)
	}
	switch {
	case state.IsCheckmate:
		r.banner.Fprintln(r.out, "CHECKMATE!")
		fmt.Fprintf(r.out, "Winner: %s\n", state.Winner)
	case state.IsStalemate:
		r.banner.Fprintln(r.out, "STALEMATE!")
	default:
		fmt.Fprintf(r.out, "Waiting player: %s\n", state.ToMove)
		if state.IsCheck {
			r.banner.Fprintln(r.out, "CHECK!")
		}
	}
}

func letters(cells []model.Cell) string {
	out := make([]string, 0, len(cells))
	for _, c := range cells {
		out = append(out, c.Type.Letter())
	}
	return "[" + strings.Join(out, ", ") + "]"
}
