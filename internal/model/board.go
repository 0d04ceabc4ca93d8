package model

import "fmt"

// Grid is the 8x8 cell store. Every placement and removal keeps the piece's own
// position in step with the cell that references it.
type Grid struct {
	cells [Rows][Columns]*Piece
}

func NewGrid() *Grid {
	return &Grid{}
}

func (g *Grid) Exists(p Position) bool {
	return p.valid()
}

func (g *Grid) PieceAt(p Position) (*Piece, error) {
	if !p.valid() {
		return nil, fmt.Errorf("%w: %v", ErrOutOfBounds, p)
	}
	return g.cells[p.Row][p.Column], nil
}

func (g *Grid) HasPieceAt(p Position) (bool, error) {
	piece, err := g.PieceAt(p)
	if err != nil {
		return false, err
	}
	return piece != nil, nil
}

// Place stores piece at p. It fails if the cell already holds a piece.
func (g *Grid) Place(piece *Piece, p Position) error {
	occupied, err := g.HasPieceAt(p)
	if err != nil {
		return err
	}
	if occupied {
		return fmt.Errorf("%w: %v", ErrOccupiedCell, p)
	}
	g.cells[p.Row][p.Column] = piece
	piece.position = p
	piece.placed = true
	return nil
}

// Remove detaches and returns the piece at p, or nil if the cell is empty.
func (g *Grid) Remove(p Position) (*Piece, error) {
	piece, err := g.PieceAt(p)
	if err != nil || piece == nil {
		return nil, err
	}
	g.cells[p.Row][p.Column] = nil
	piece.position = Position{}
	piece.placed = false
	return piece, nil
}

// at is the unchecked read used by move generation; off-board reads are empty.
func (g *Grid) at(p Position) *Piece {
	if !p.valid() {
		return nil
	}
	return g.cells[p.Row][p.Column]
}

func (g *Grid) isOpponent(p Position, c Color) bool {
	piece := g.at(p)
	return piece != nil && piece.color != c
}

var backRank = [Columns]PieceType{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}

// initialSetup places the standard 32 piece layout.
func (m *Match) initialSetup() error {
	for column, kind := range backRank {
		for _, c := range []Color{White, Black} {
			back := 0
			if c == White {
				back = Rows - 1
			}
			if _, err := m.placeNewPiece(kind, c, Position{Row: back, Column: column}); err != nil {
				return err
			}
			if _, err := m.placeNewPiece(Pawn, c, Position{Row: c.pawnRow(), Column: column}); err != nil {
				return err
			}
		}
	}
	return nil
}
