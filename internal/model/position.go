package model

import (
	"fmt"
)

const (
	Rows    = 8
	Columns = 8
)

// Position is the engine's zero-based (row, column) index. Row 0 is rank 8.
type Position struct {
	Row    int `json:"row"`
	Column int `json:"column"`
}

func (p Position) valid() bool {
	return p.Row >= 0 && p.Row < Rows && p.Column >= 0 && p.Column < Columns
}

func (p Position) offset(dRow, dColumn int) Position {
	return Position{Row: p.Row + dRow, Column: p.Column + dColumn}
}

// Square converts p to its algebraic form. p must be on the board.
func (p Position) Square() Square {
	return Square{File: byte('a' + p.Column), Rank: Rows - p.Row}
}

func (p Position) String() string {
	if !p.valid() {
		return fmt.Sprintf("(%d,%d)", p.Row, p.Column)
	}
	return p.Square().String()
}

// Square is the user-facing coordinate: a file letter 'a'-'h' and a rank 1-8.
type Square struct {
	File byte
	Rank int
}

func NewSquare(file byte, rank int) (Square, error) {
	if file < 'a' || file > 'h' || rank < 1 || rank > 8 {
		return Square{}, fmt.Errorf("%w: %c%d, valid values are from a1 to h8", ErrInvalidCoordinate, file, rank)
	}
	return Square{File: file, Rank: rank}, nil
}

// ParseSquare reads the two character form "e4". The rank digit is parsed as an
// integer, so "e9" is rejected by the range check rather than the syntax check.
func ParseSquare(s string) (Square, error) {
	if len(s) != 2 || s[1] < '0' || s[1] > '9' {
		return Square{}, fmt.Errorf("%w: %q, valid values are from a1 to h8", ErrInvalidCoordinate, s)
	}
	return NewSquare(s[0], int(s[1]-'0'))
}

// MustParseSquare is like ParseSquare but panics on malformed input.
func MustParseSquare(s string) Square {
	sq, err := ParseSquare(s)
	if err != nil {
		panic(err)
	}
	return sq
}

func (s Square) Position() Position {
	return Position{Row: Rows - s.Rank, Column: int(s.File - 'a')}
}

func (s Square) String() string {
	return fmt.Sprintf("%c%d", s.File, s.Rank)
}

func (s Square) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Square) UnmarshalText(text []byte) error {
	sq, err := ParseSquare(string(text))
	if err != nil {
		return err
	}
	*s = sq
	return nil
}
