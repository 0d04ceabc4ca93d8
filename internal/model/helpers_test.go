package model

import (
	"testing"
)

var testPieceLetters = map[byte]PieceType{
	'K': King, 'Q': Queen, 'R': Rook, 'B': Bishop, 'N': Knight, 'P': Pawn,
}

// setupMatch builds a match from entries such as "wKe1" or "bPd4".
func setupMatch(t *testing.T, toMove Color, layout ...string) *Match {
	t.Helper()
	m := newEmptyMatch()
	m.toMove = toMove
	for _, entry := range layout {
		c := White
		if entry[0] == 'b' {
			c = Black
		}
		kind, ok := testPieceLetters[entry[1]]
		if !ok {
			t.Fatalf("bad layout entry %q", entry)
		}
		if _, err := m.placeNewPiece(kind, c, MustParseSquare(entry[2:]).Position()); err != nil {
			t.Fatalf("placing %q: %v", entry, err)
		}
	}
	return m
}

func mustMove(t *testing.T, m *Match, from, to string) *Piece {
	t.Helper()
	captured, err := m.PerformMove(MustParseSquare(from), MustParseSquare(to))
	if err != nil {
		t.Fatalf("PerformMove(%s, %s): %v", from, to, err)
	}
	return captured
}

func pieceOn(t *testing.T, m *Match, sq string) *Piece {
	t.Helper()
	return m.PieceAt(MustParseSquare(sq))
}

func squares(list ...string) []Square {
	out := make([]Square, 0, len(list))
	for _, s := range list {
		out = append(out, MustParseSquare(s))
	}
	return out
}

type pieceSnapshot struct {
	ID        int
	Type      PieceType
	Color     Color
	MoveCount int
}

type matchSnapshot struct {
	Cells    map[string]pieceSnapshot
	Captured []int
	OnBoard  map[Color][]int
}

func snapshot(m *Match) matchSnapshot {
	s := matchSnapshot{Cells: map[string]pieceSnapshot{}, OnBoard: map[Color][]int{}}
	for row := 0; row < Rows; row++ {
		for column := 0; column < Columns; column++ {
			pos := Position{Row: row, Column: column}
			if p := m.grid.at(pos); p != nil {
				s.Cells[pos.String()] = pieceSnapshot{ID: p.id, Type: p.kind, Color: p.color, MoveCount: p.moveCount}
			}
		}
	}
	for _, p := range m.captured {
		s.Captured = append(s.Captured, p.id)
	}
	for _, c := range []Color{White, Black} {
		for _, p := range m.onBoard[c] {
			s.OnBoard[c] = append(s.OnBoard[c], p.id)
		}
	}
	return s
}
