package model

import (
	"errors"
	"testing"
)

func TestGridPlaceAndRemove(t *testing.T) {
	g := NewGrid()
	knight := newPiece(1, Knight, White)
	at := MustParseSquare("f3").Position()

	if err := g.Place(knight, at); err != nil {
		t.Fatalf("Place: %v", err)
	}
	if got, _ := g.PieceAt(at); got != knight {
		t.Errorf("PieceAt(f3) = %v; want the knight", got)
	}
	if pos, ok := knight.Position(); !ok || pos != at {
		t.Errorf("knight.Position() = %v, %v; want %v, true", pos, ok, at)
	}

	t.Run("occupied cell", func(t *testing.T) {
		err := g.Place(newPiece(2, Bishop, Black), at)
		if !errors.Is(err, ErrOccupiedCell) {
			t.Errorf("Place on occupied cell error = %v; want ErrOccupiedCell", err)
		}
	})

	t.Run("remove empty cell", func(t *testing.T) {
		got, err := g.Remove(MustParseSquare("a1").Position())
		if err != nil || got != nil {
			t.Errorf("Remove(a1) = %v, %v; want nil, nil", got, err)
		}
	})

	t.Run("remove detaches", func(t *testing.T) {
		got, err := g.Remove(at)
		if err != nil {
			t.Fatalf("Remove: %v", err)
		}
		if got != knight {
			t.Errorf("Remove(f3) = %v; want the knight", got)
		}
		if _, ok := knight.Position(); ok {
			t.Error("knight still has a position after removal")
		}
		if has, _ := g.HasPieceAt(at); has {
			t.Error("HasPieceAt(f3) = true after removal")
		}
	})
}

func TestGridOutOfBounds(t *testing.T) {
	g := NewGrid()
	for _, p := range []Position{{Row: -1, Column: 0}, {Row: 0, Column: 8}, {Row: 8, Column: 8}} {
		if _, err := g.PieceAt(p); !errors.Is(err, ErrOutOfBounds) {
			t.Errorf("PieceAt(%v) error = %v; want ErrOutOfBounds", p, err)
		}
		if _, err := g.HasPieceAt(p); !errors.Is(err, ErrOutOfBounds) {
			t.Errorf("HasPieceAt(%v) error = %v; want ErrOutOfBounds", p, err)
		}
		if _, err := g.Remove(p); !errors.Is(err, ErrOutOfBounds) {
			t.Errorf("Remove(%v) error = %v; want ErrOutOfBounds", p, err)
		}
		if err := g.Place(newPiece(1, Pawn, White), p); !errors.Is(err, ErrOutOfBounds) {
			t.Errorf("Place(%v) error = %v; want ErrOutOfBounds", p, err)
		}
		if g.Exists(p) {
			t.Errorf("Exists(%v) = true", p)
		}
	}
}

func TestInitialSetup(t *testing.T) {
	m := NewMatch()

	tests := []struct {
		square string
		kind   PieceType
		color  Color
	}{
		{"a1", Rook, White}, {"b1", Knight, White}, {"c1", Bishop, White}, {"d1", Queen, White},
		{"e1", King, White}, {"f1", Bishop, White}, {"g1", Knight, White}, {"h1", Rook, White},
		{"a2", Pawn, White}, {"e2", Pawn, White}, {"h2", Pawn, White},
		{"a7", Pawn, Black}, {"e7", Pawn, Black}, {"h7", Pawn, Black},
		{"a8", Rook, Black}, {"d8", Queen, Black}, {"e8", King, Black}, {"h8", Rook, Black},
	}
	for _, tt := range tests {
		t.Run(tt.square, func(t *testing.T) {
			p := pieceOn(t, m, tt.square)
			if p == nil || p.Type() != tt.kind || p.Color() != tt.color {
				t.Errorf("piece on %s = %v; want %s %s", tt.square, p, tt.color, tt.kind)
			}
		})
	}

	if n := len(m.Pieces(White)) + len(m.Pieces(Black)); n != 32 {
		t.Errorf("pieces on board = %d; want 32", n)
	}
	if m.Turn() != 1 || m.ToMove() != White {
		t.Errorf("Turn, ToMove = %d, %s; want 1, white", m.Turn(), m.ToMove())
	}
	for _, sq := range []string{"e3", "d4", "f5", "c6"} {
		if p := pieceOn(t, m, sq); p != nil {
			t.Errorf("%s holds %v; want empty", sq, p)
		}
	}
}
