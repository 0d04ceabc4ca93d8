package model

import "fmt"

type PieceType string

const (
	King   PieceType = "king"
	Queen  PieceType = "queen"
	Rook   PieceType = "rook"
	Bishop PieceType = "bishop"
	Knight PieceType = "knight"
	Pawn   PieceType = "pawn"
)

// Letter is the one letter symbol used on the console board.
func (t PieceType) Letter() string {
	switch t {
	case King:
		return "K"
	case Queen:
		return "Q"
	case Rook:
		return "R"
	case Bishop:
		return "B"
	case Knight:
		return "N"
	case Pawn:
		return "P"
	}
	return "?"
}

// ParsePromotion accepts exactly "B", "N", "R" or "Q".
func ParsePromotion(s string) (PieceType, bool) {
	switch s {
	case "B":
		return Bishop, true
	case "N":
		return Knight, true
	case "R":
		return Rook, true
	case "Q":
		return Queen, true
	}
	return "", false
}

type Color string

const (
	White Color = "white"
	Black Color = "black"
)

func (c Color) Opponent() Color {
	if c == White {
		return Black
	}
	return White
}

// forward is the row delta of a pawn advance.
func (c Color) forward() int {
	if c == White {
		return -1
	}
	return 1
}

func (c Color) pawnRow() int {
	if c == White {
		return 6
	}
	return 1
}

// promotionRow is the opponent's back rank.
func (c Color) promotionRow() int {
	if c == White {
		return 0
	}
	return Rows - 1
}

// enPassantRow is the row a pawn must stand on to capture en passant.
func (c Color) enPassantRow() int {
	if c == White {
		return 3
	}
	return 4
}

// Piece is a single chessman. Its position is kept in step with the Grid cell
// that holds it and is cleared while the piece is off the board.
type Piece struct {
	id        int
	kind      PieceType
	color     Color
	moveCount int
	position  Position
	placed    bool
}

func newPiece(id int, kind PieceType, color Color) *Piece {
	return &Piece{id: id, kind: kind, color: color}
}

// ID is stable for the life of the match. A promoted piece gets a new ID.
func (p *Piece) ID() int {
	return p.id
}

func (p *Piece) Type() PieceType {
	return p.kind
}

func (p *Piece) Color() Color {
	return p.color
}

func (p *Piece) MoveCount() int {
	return p.moveCount
}

// Position returns the piece's cell and false when it is off the board.
func (p *Piece) Position() (Position, bool) {
	return p.position, p.placed
}

func (p *Piece) Square() (Square, bool) {
	if !p.placed {
		return Square{}, false
	}
	return p.position.Square(), true
}

func (p *Piece) Cell() Cell {
	return Cell{Type: p.kind, Color: p.color}
}

func (p *Piece) String() string {
	if sq, ok := p.Square(); ok {
		return fmt.Sprintf("%s %s on %s", p.color, p.kind, sq)
	}
	return fmt.Sprintf("%s %s", p.color, p.kind)
}
