package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/benbeisheim/chessmatch/internal/model"
)

// Game drives one match from line based input until it ends or input runs out.
type Game struct {
	match    *model.Match
	in       *bufio.Scanner
	out      io.Writer
	renderer *Renderer
}

func NewGame(match *model.Match, in io.Reader, out io.Writer) *Game {
	return &Game{
		match:    match,
		in:       bufio.NewScanner(in),
		out:      out,
		renderer: NewRenderer(out),
	}
}

func (g *Game) Renderer() *Renderer {
	return g.renderer
}

// Run plays until the match is over. It returns nil when the match ends or the
// input is exhausted, and an error when the engine reports a broken board.
func (g *Game) Run() error {
	for !g.match.Over() {
		err := g.turn()
		switch {
		case err == nil:
		case errors.Is(err, errNoInput):
			return nil
		case model.IsFatal(err):
			return err
		default:
			fmt.Fprintln(g.out, err)
		}
	}
	g.renderer.PrintMatch(g.match.State())
	return nil
}

func (g *Game) turn() error {
	g.renderer.PrintMatch(g.match.State())
	fmt.Fprintln(g.out)
	fmt.Fprint(g.out, "Source: ")
	source, err := g.readSquare()
	if err != nil {
		return err
	}

	moves, err := g.match.LegalMovesFrom(source)
	if err != nil {
		return err
	}
	g.renderer.PrintBoard(g.match.Board(), &moves)
	fmt.Fprintln(g.out)
	fmt.Fprint(g.out, "Target: ")
	target, err := g.readSquare()
	if err != nil {
		return err
	}

	if _, err := g.match.PerformMove(source, target); err != nil {
		return err
	}
	if g.match.Promoted() != nil {
		return g.promote()
	}
	return nil
}

func (g *Game) readSquare() (model.Square, error) {
	line, err := readLine(g.in)
	if err != nil {
		return model.Square{}, err
	}
	return ParseSquareInput(line)
}

func (g *Game) promote() error {
	fmt.Fprint(g.out, "Enter piece for promotion (B/N/R/Q): ")
	for {
		line, err := readLine(g.in)
		if err != nil {
			return err
		}
		if IsPromotionChoice(line) {
			_, err := g.match.ResolvePromotion(strings.ToUpper(line))
			return err
		}
		fmt.Fprint(g.out, "Invalid value! Enter piece for promotion (B/N/R/Q): ")
	}
}
