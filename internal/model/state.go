package model

// Cell is what the presentation layer sees of a piece.
type Cell struct {
	Type  PieceType `json:"type"`
	Color Color     `json:"color"`
}

// MatchState is a read-only snapshot of a match for rendering and transport.
type MatchState struct {
	Board           [Rows][Columns]*Cell `json:"board"`
	Turn            int                  `json:"turn"`
	ToMove          Color                `json:"toMove"`
	IsCheck         bool                 `json:"isCheck"`
	IsCheckmate     bool                 `json:"isCheckmate"`
	IsStalemate     bool                 `json:"isStalemate"`
	Winner          Color                `json:"winner,omitempty"`
	Captured        []Cell               `json:"captured"`
	PromotionSquare *Square              `json:"promotionSquare"`
	PromotionPiece  *PieceType           `json:"promotionPiece"`
	EnPassant       *Square              `json:"enPassant"`
	LastMove        *Ply                 `json:"lastMove"`
	History         []Ply                `json:"history"`
}

func (m *Match) State() MatchState {
	state := MatchState{
		Board:       m.Board(),
		Turn:        m.turn,
		ToMove:      m.toMove,
		IsCheck:     m.check,
		IsCheckmate: m.checkmate,
		IsStalemate: m.stalemate,
		Captured:    make([]Cell, 0, len(m.captured)),
		History:     m.History(),
	}
	if winner, ok := m.Winner(); ok {
		state.Winner = winner
	}
	for _, p := range m.captured {
		state.Captured = append(state.Captured, p.Cell())
	}
	if m.promoted != nil {
		if sq, ok := m.promoted.Square(); ok {
			kind := m.promoted.kind
			state.PromotionSquare = &sq
			state.PromotionPiece = &kind
		}
	}
	if m.enPassant != nil {
		if sq, ok := m.enPassant.Square(); ok {
			state.EnPassant = &sq
		}
	}
	if n := len(m.history); n > 0 {
		last := m.history[n-1]
		state.LastMove = &last
	}
	if state.History == nil {
		state.History = []Ply{}
	}
	return state
}

// CapturedBy splits the captured cells by the color of the captured piece.
func (s MatchState) CapturedBy(c Color) []Cell {
	var out []Cell
	for _, cell := range s.Captured {
		if cell.Color == c {
			out = append(out, cell)
		}
	}
	return out
}
