package model

// Moves marks the cells a piece can reach, indexed [row][column].
type Moves [Rows][Columns]bool

func (m *Moves) mark(p Position) {
	m[p.Row][p.Column] = true
}

// At reports whether p is marked. Off-board positions never are.
func (m Moves) At(p Position) bool {
	return p.valid() && m[p.Row][p.Column]
}

// Any reports whether at least one cell is reachable.
func (m Moves) Any() bool {
	for row := range m {
		for column := range m[row] {
			if m[row][column] {
				return true
			}
		}
	}
	return false
}

func (m Moves) positions() []Position {
	var out []Position
	for row := range m {
		for column := range m[row] {
			if m[row][column] {
				out = append(out, Position{Row: row, Column: column})
			}
		}
	}
	return out
}

// Squares lists the marked cells from rank 8 down to rank 1, files a to h.
func (m Moves) Squares() []Square {
	positions := m.positions()
	out := make([]Square, 0, len(positions))
	for _, p := range positions {
		out = append(out, p.Square())
	}
	return out
}

// Rules carries the match state the pawn and king rules consult.
type Rules struct {
	// EnPassant is the pawn that just advanced two squares, if any.
	EnPassant *Piece
	// Checked is the side currently in check, or empty.
	Checked Color
}

var (
	rookDirs    = []Position{{Row: 1, Column: 0}, {Row: -1, Column: 0}, {Row: 0, Column: 1}, {Row: 0, Column: -1}}
	bishopDirs  = []Position{{Row: 1, Column: 1}, {Row: 1, Column: -1}, {Row: -1, Column: 1}, {Row: -1, Column: -1}}
	queenDirs   = append(append([]Position{}, rookDirs...), bishopDirs...)
	kingSteps   = queenDirs
	knightJumps = []Position{{Row: 2, Column: 1}, {Row: 2, Column: -1}, {Row: -2, Column: 1}, {Row: -2, Column: -1}, {Row: 1, Column: 2}, {Row: 1, Column: -2}, {Row: -1, Column: 2}, {Row: -1, Column: -2}}
)

// Destinations returns the pseudo-legal targets of p: squares its movement
// pattern reaches, without regard to whether the move exposes its own king.
func Destinations(p *Piece, g *Grid, r Rules) Moves {
	pos, ok := p.Position()
	if !ok {
		return Moves{}
	}
	switch p.kind {
	case Pawn:
		return pawnMoves(p, pos, g, r)
	case Knight:
		return stepMoves(p, pos, g, knightJumps)
	case Bishop:
		return slideMoves(p, pos, g, bishopDirs)
	case Rook:
		return slideMoves(p, pos, g, rookDirs)
	case Queen:
		return slideMoves(p, pos, g, queenDirs)
	case King:
		return kingMoves(p, pos, g, r)
	}
	return Moves{}
}

func stepMoves(p *Piece, pos Position, g *Grid, offsets []Position) Moves {
	var m Moves
	for _, d := range offsets {
		target := pos.offset(d.Row, d.Column)
		if target.valid() && (g.at(target) == nil || g.isOpponent(target, p.color)) {
			m.mark(target)
		}
	}
	return m
}

func slideMoves(p *Piece, pos Position, g *Grid, dirs []Position) Moves {
	var m Moves
	for _, d := range dirs {
		target := pos.offset(d.Row, d.Column)
		for target.valid() && g.at(target) == nil {
			m.mark(target)
			target = target.offset(d.Row, d.Column)
		}
		if g.isOpponent(target, p.color) {
			m.mark(target)
		}
	}
	return m
}

func pawnMoves(p *Piece, pos Position, g *Grid, r Rules) Moves {
	var m Moves
	dir := p.color.forward()
	one := pos.offset(dir, 0)
	if one.valid() && g.at(one) == nil {
		m.mark(one)
		two := pos.offset(2*dir, 0)
		if pos.Row == p.color.pawnRow() && two.valid() && g.at(two) == nil {
			m.mark(two)
		}
	}
	for _, side := range []int{-1, 1} {
		diag := pos.offset(dir, side)
		if g.isOpponent(diag, p.color) {
			m.mark(diag)
		}
		victim := g.at(pos.offset(0, side))
		if r.EnPassant != nil && victim == r.EnPassant && victim.color != p.color &&
			pos.Row == p.color.enPassantRow() && g.at(diag) == nil {
			m.mark(diag)
		}
	}
	return m
}

// kingMoves adds castling to the king's step moves. Squares the king crosses are
// not tested for attack here; the self-check test after the move is the only gate.
func kingMoves(p *Piece, pos Position, g *Grid, r Rules) Moves {
	m := stepMoves(p, pos, g, kingSteps)
	if p.moveCount != 0 || r.Checked == p.color {
		return m
	}
	kingside := pos.offset(0, 2)
	if kingside.valid() && castlingRook(g, p, Position{Row: pos.Row, Column: Columns - 1}) &&
		emptyBetween(g, pos.Row, pos.Column+1, Columns-2) {
		m.mark(kingside)
	}
	queenside := pos.offset(0, -2)
	if queenside.valid() && castlingRook(g, p, Position{Row: pos.Row, Column: 0}) &&
		emptyBetween(g, pos.Row, 1, pos.Column-1) {
		m.mark(queenside)
	}
	return m
}

func castlingRook(g *Grid, king *Piece, at Position) bool {
	rook := g.at(at)
	return rook != nil && rook.kind == Rook && rook.color == king.color && rook.moveCount == 0
}

func emptyBetween(g *Grid, row, from, to int) bool {
	for column := from; column <= to; column++ {
		if g.at(Position{Row: row, Column: column}) != nil {
			return false
		}
	}
	return true
}
