package model

type CastleRookMove struct {
	From Square `json:"from"`
	To   Square `json:"to"`
}

// Ply is one completed half-move as recorded in the match history.
type Ply struct {
	Turn           int             `json:"turn"`
	Color          Color           `json:"color"`
	Piece          PieceType       `json:"piece"`
	From           Square          `json:"from"`
	To             Square          `json:"to"`
	Captured       *Cell           `json:"captured"`
	EnPassant      bool            `json:"enPassant"`
	CastleRookMove *CastleRookMove `json:"castleRookMove"`
	Promotion      PieceType       `json:"promotion,omitempty"`
}

// moveRecord is a grid-level move together with everything needed to undo it.
type moveRecord struct {
	piece     *Piece
	from, to  Position
	captured  *Piece
	enPassant bool
	castle    *CastleRookMove
	undo      journal
}

func (r *moveRecord) ply(turn int) Ply {
	ply := Ply{
		Turn:           turn,
		Color:          r.piece.color,
		Piece:          r.piece.kind,
		From:           r.from.Square(),
		To:             r.to.Square(),
		EnPassant:      r.enPassant,
		CastleRookMove: r.castle,
	}
	if r.captured != nil {
		cell := r.captured.Cell()
		ply.Captured = &cell
	}
	return ply
}
