package model

import (
	"errors"
	"fmt"
)

// Match is one game from the standard layout to checkmate or stalemate.
// It is not safe for concurrent use.
type Match struct {
	grid      *Grid
	turn      int
	toMove    Color
	check     bool
	checkmate bool
	stalemate bool
	enPassant *Piece
	promoted  *Piece
	onBoard   map[Color][]*Piece
	captured  []*Piece
	history   []Ply
	nextID    int
}

func NewMatch() *Match {
	m := newEmptyMatch()
	if err := m.initialSetup(); err != nil {
		panic(fmt.Sprintf("initial setup: %v", err))
	}
	return m
}

func newEmptyMatch() *Match {
	return &Match{
		grid:    NewGrid(),
		turn:    1,
		toMove:  White,
		onBoard: map[Color][]*Piece{White: {}, Black: {}},
	}
}

func (m *Match) Turn() int {
	return m.turn
}

// ToMove is the active color. After checkmate it is the winner.
func (m *Match) ToMove() Color {
	return m.toMove
}

func (m *Match) Check() bool {
	return m.check
}

func (m *Match) Checkmate() bool {
	return m.checkmate
}

func (m *Match) Stalemate() bool {
	return m.stalemate
}

// Over reports whether the match has reached a terminal state.
func (m *Match) Over() bool {
	return m.checkmate || m.stalemate
}

func (m *Match) Winner() (Color, bool) {
	if !m.checkmate {
		return "", false
	}
	return m.toMove, true
}

// Promoted returns the piece awaiting a promotion choice, or nil.
func (m *Match) Promoted() *Piece {
	return m.promoted
}

// EnPassantVulnerable returns the pawn that advanced two squares on the last move, or nil.
func (m *Match) EnPassantVulnerable() *Piece {
	return m.enPassant
}

// Captured returns the captured pieces in capture order.
func (m *Match) Captured() []*Piece {
	return append([]*Piece(nil), m.captured...)
}

func (m *Match) Pieces(c Color) []*Piece {
	return append([]*Piece(nil), m.onBoard[c]...)
}

func (m *Match) History() []Ply {
	return append([]Ply(nil), m.history...)
}

// Board returns the current position as an 8x8 matrix, row 0 being rank 8.
func (m *Match) Board() [Rows][Columns]*Cell {
	var board [Rows][Columns]*Cell
	for row := 0; row < Rows; row++ {
		for column := 0; column < Columns; column++ {
			if p := m.grid.cells[row][column]; p != nil {
				cell := p.Cell()
				board[row][column] = &cell
			}
		}
	}
	return board
}

// PieceAt returns the piece on sq, or nil.
func (m *Match) PieceAt(sq Square) *Piece {
	return m.grid.at(sq.Position())
}

func (m *Match) rules() Rules {
	r := Rules{EnPassant: m.enPassant}
	if m.check {
		r.Checked = m.toMove
	}
	return r
}

// LegalMovesFrom returns the pseudo-legal targets of the piece on source.
func (m *Match) LegalMovesFrom(source Square) (Moves, error) {
	if m.Over() {
		return Moves{}, &MoveError{Op: "legal moves", From: source.String(), Err: ErrMatchOver}
	}
	moves, err := m.sourceMoves(source.Position())
	if err != nil {
		return Moves{}, &MoveError{Op: "legal moves", From: source.String(), Err: err}
	}
	return moves, nil
}

func (m *Match) sourceMoves(from Position) (Moves, error) {
	p, err := m.grid.PieceAt(from)
	if err != nil {
		return Moves{}, err
	}
	if p == nil {
		return Moves{}, ErrNoPieceAtSource
	}
	if p.color != m.toMove {
		return Moves{}, ErrNotYourTurn
	}
	moves := Destinations(p, m.grid, m.rules())
	if !moves.Any() {
		return Moves{}, ErrNoLegalMoves
	}
	return moves, nil
}

// PerformMove moves the piece on source to target and returns the captured
// piece, if any. A rejected move leaves the match unchanged.
func (m *Match) PerformMove(source, target Square) (*Piece, error) {
	fail := func(err error) (*Piece, error) {
		return nil, &MoveError{Op: "move", From: source.String(), To: target.String(), Err: err}
	}
	if m.Over() {
		return fail(ErrMatchOver)
	}
	from, to := source.Position(), target.Position()
	moves, err := m.sourceMoves(from)
	if err != nil {
		return fail(err)
	}
	if !moves.At(to) {
		return fail(ErrTargetUnreachable)
	}

	rec, err := m.makeMove(from, to)
	if err != nil {
		return fail(err)
	}
	exposed, err := m.IsInCheck(m.toMove)
	if err != nil || exposed {
		if undoErr := m.undoMove(rec); undoErr != nil {
			return fail(errors.Join(err, undoErr))
		}
		if err != nil {
			return fail(err)
		}
		return fail(ErrSelfCheck)
	}

	if err := m.commit(rec); err != nil {
		return fail(errors.Join(err, m.undoMove(rec)))
	}
	return rec.captured, nil
}

// commit records the move and settles the opponent's state. Its mutations go
// into rec's journal, so undoMove also reverts a failed commit.
func (m *Match) commit(rec *moveRecord) error {
	mover := rec.piece.color
	ply := rec.ply(m.turn)

	promoted, enPassant := m.promoted, m.enPassant
	rec.undo.record(func() error {
		m.promoted, m.enPassant = promoted, enPassant
		return nil
	})

	m.promoted = nil
	if rec.piece.kind == Pawn && rec.to.Row == mover.promotionRow() {
		queen, err := m.promote(rec.piece, Queen, &rec.undo)
		if err != nil {
			return err
		}
		m.promoted = queen
		ply.Promotion = Queen
	}

	m.enPassant = nil
	if rec.piece.kind == Pawn && abs(rec.to.Row-rec.from.Row) == 2 {
		m.enPassant = rec.piece
	}

	m.history = append(m.history, ply)
	rec.undo.record(func() error {
		m.history = m.history[:len(m.history)-1]
		return nil
	})
	return m.settle(mover)
}

// settle computes the opponent's check state after mover's move and either ends
// the match or hands the turn over. Nothing changes when it fails.
func (m *Match) settle(mover Color) error {
	opponent := mover.Opponent()
	check, err := m.IsInCheck(opponent)
	if err != nil {
		return err
	}
	movable, err := m.hasLegalMove(opponent, check)
	if err != nil {
		return err
	}
	m.check = check
	m.checkmate = check && !movable
	m.stalemate = !check && !movable
	if !m.Over() {
		m.nextTurn()
	}
	return nil
}

// ResolvePromotion swaps the pending promoted piece for one of kind ("B", "N",
// "R" or "Q"). An unknown kind leaves everything as is and returns the pending
// piece so the caller can ask again. A match that already ended stays ended:
// only the piece is swapped.
func (m *Match) ResolvePromotion(kind string) (*Piece, error) {
	if m.promoted == nil {
		return nil, &MoveError{Op: "promote", To: kind, Err: ErrNoPendingPromotion}
	}
	t, ok := ParsePromotion(kind)
	if !ok {
		return m.promoted, nil
	}
	fail := func(err error) (*Piece, error) {
		return nil, &MoveError{Op: "promote", To: kind, Err: err}
	}

	var undo journal
	piece, err := m.promote(m.promoted, t, &undo)
	if err != nil {
		return fail(errors.Join(err, undo.rollback()))
	}

	// The new piece may give or lift check, so the move is settled again.
	if !m.Over() {
		m.previousTurn()
		if err := m.settle(piece.color); err != nil {
			m.nextTurn()
			return fail(errors.Join(err, undo.rollback()))
		}
	}
	m.promoted = nil
	m.history[len(m.history)-1].Promotion = t
	return piece, nil
}

// promote replaces pawn with a new piece of kind on the same square, recording
// the inverse steps in undo.
func (m *Match) promote(pawn *Piece, kind PieceType, undo *journal) (*Piece, error) {
	pos, ok := pawn.Position()
	if !ok {
		return nil, fmt.Errorf("promote %v: piece is not on the board", pawn)
	}
	if _, err := m.grid.Remove(pos); err != nil {
		return nil, err
	}
	undo.record(func() error { return m.grid.Place(pawn, pos) })
	index := m.removeFromBoard(pawn)
	undo.record(func() error {
		m.insertOnBoard(pawn, index)
		return nil
	})

	piece, err := m.placeNewPiece(kind, pawn.color, pos)
	if err != nil {
		return nil, err
	}
	undo.record(func() error {
		m.removeFromBoard(piece)
		_, err := m.grid.Remove(pos)
		return err
	})
	return piece, nil
}

// IsInCheck reports whether any opposing piece attacks c's king.
func (m *Match) IsInCheck(c Color) (bool, error) {
	king := m.king(c)
	if king == nil {
		return false, fmt.Errorf("%w: no %s king on the board", ErrMissingKing, c)
	}
	kingPos, _ := king.Position()
	rules := m.rules()
	for _, p := range m.onBoard[c.Opponent()] {
		if Destinations(p, m.grid, rules).At(kingPos) {
			return true, nil
		}
	}
	return false, nil
}

// IsCheckmate reports whether c is in check with no move that escapes it.
func (m *Match) IsCheckmate(c Color) (bool, error) {
	check, err := m.IsInCheck(c)
	if err != nil || !check {
		return false, err
	}
	movable, err := m.hasLegalMove(c, true)
	if err != nil {
		return false, err
	}
	return !movable, nil
}

// hasLegalMove tries every pseudo-legal move of c on the grid and reports
// whether any of them leaves c's king safe. The board is restored after each try.
func (m *Match) hasLegalMove(c Color, inCheck bool) (bool, error) {
	rules := Rules{EnPassant: m.enPassant}
	if inCheck {
		rules.Checked = c
	}
	for _, p := range m.Pieces(c) {
		from, ok := p.Position()
		if !ok {
			continue
		}
		for _, to := range Destinations(p, m.grid, rules).positions() {
			rec, err := m.makeMove(from, to)
			if err != nil {
				return false, err
			}
			check, checkErr := m.IsInCheck(c)
			if err := m.undoMove(rec); err != nil {
				return false, err
			}
			if checkErr != nil {
				return false, checkErr
			}
			if !check {
				return true, nil
			}
		}
	}
	return false, nil
}

func (m *Match) king(c Color) *Piece {
	for _, p := range m.onBoard[c] {
		if p.kind == King {
			return p
		}
	}
	return nil
}

// makeMove executes a grid-level move: the piece, any capture, and the castling
// and en-passant side effects. On failure every completed step is rolled back.
func (m *Match) makeMove(from, to Position) (*moveRecord, error) {
	rec := &moveRecord{from: from, to: to}
	if err := m.applyMove(rec); err != nil {
		if undoErr := rec.undo.rollback(); undoErr != nil {
			return nil, errors.Join(err, undoErr)
		}
		return nil, err
	}
	return rec, nil
}

func (m *Match) undoMove(rec *moveRecord) error {
	return rec.undo.rollback()
}

func (m *Match) applyMove(rec *moveRecord) error {
	p, err := m.grid.Remove(rec.from)
	if err != nil {
		return err
	}
	if p == nil {
		return ErrNoPieceAtSource
	}
	rec.piece = p
	rec.undo.record(func() error { return m.grid.Place(p, rec.from) })
	p.moveCount++
	rec.undo.record(func() error { p.moveCount--; return nil })

	captured, err := m.grid.Remove(rec.to)
	if err != nil {
		return err
	}
	if captured != nil {
		rec.undo.record(func() error { return m.grid.Place(captured, rec.to) })
		m.capture(rec, captured)
	}
	if err := m.grid.Place(p, rec.to); err != nil {
		return err
	}
	rec.undo.record(func() error {
		_, err := m.grid.Remove(rec.to)
		return err
	})

	switch {
	case p.kind == King && abs(rec.to.Column-rec.from.Column) == 2:
		return m.castleRook(rec)
	case p.kind == Pawn && rec.from.Column != rec.to.Column && captured == nil:
		return m.captureEnPassant(rec)
	}
	return nil
}

// castleRook drags the rook over the square the king crossed.
func (m *Match) castleRook(rec *moveRecord) error {
	row := rec.from.Row
	rookFrom := Position{Row: row, Column: Columns - 1}
	rookTo := Position{Row: row, Column: rec.to.Column - 1}
	if rec.to.Column < rec.from.Column {
		rookFrom = Position{Row: row, Column: 0}
		rookTo = Position{Row: row, Column: rec.to.Column + 1}
	}

	rook, err := m.grid.Remove(rookFrom)
	if err != nil {
		return err
	}
	if rook == nil {
		return fmt.Errorf("castle: no rook on %v", rookFrom)
	}
	rec.undo.record(func() error { return m.grid.Place(rook, rookFrom) })
	if err := m.grid.Place(rook, rookTo); err != nil {
		return err
	}
	rec.undo.record(func() error {
		_, err := m.grid.Remove(rookTo)
		return err
	})
	rook.moveCount++
	rec.undo.record(func() error { rook.moveCount--; return nil })

	rec.castle = &CastleRookMove{From: rookFrom.Square(), To: rookTo.Square()}
	return nil
}

// captureEnPassant removes the pawn standing beside the target square.
func (m *Match) captureEnPassant(rec *moveRecord) error {
	at := Position{Row: rec.from.Row, Column: rec.to.Column}
	victim, err := m.grid.Remove(at)
	if err != nil {
		return err
	}
	if victim == nil {
		return fmt.Errorf("en passant: no pawn on %v", at)
	}
	rec.undo.record(func() error { return m.grid.Place(victim, at) })
	m.capture(rec, victim)
	rec.enPassant = true
	return nil
}

// capture moves p from the on-board set to the end of the captured list.
func (m *Match) capture(rec *moveRecord, p *Piece) {
	index := m.removeFromBoard(p)
	m.captured = append(m.captured, p)
	rec.captured = p
	rec.undo.record(func() error {
		m.captured = m.captured[:len(m.captured)-1]
		m.insertOnBoard(p, index)
		return nil
	})
}

func (m *Match) placeNewPiece(kind PieceType, c Color, at Position) (*Piece, error) {
	p := newPiece(m.nextID, kind, c)
	if err := m.grid.Place(p, at); err != nil {
		return nil, err
	}
	m.nextID++
	m.onBoard[c] = append(m.onBoard[c], p)
	return p, nil
}

func (m *Match) removeFromBoard(p *Piece) int {
	pieces := m.onBoard[p.color]
	for i, candidate := range pieces {
		if candidate == p {
			m.onBoard[p.color] = append(pieces[:i:i], pieces[i+1:]...)
			return i
		}
	}
	return -1
}

func (m *Match) insertOnBoard(p *Piece, index int) {
	pieces := m.onBoard[p.color]
	if index < 0 || index > len(pieces) {
		index = len(pieces)
	}
	out := make([]*Piece, 0, len(pieces)+1)
	out = append(out, pieces[:index]...)
	out = append(out, p)
	m.onBoard[p.color] = append(out, pieces[index:]...)
}

func (m *Match) nextTurn() {
	m.turn++
	m.toMove = m.toMove.Opponent()
}

func (m *Match) previousTurn() {
	m.turn--
	m.toMove = m.toMove.Opponent()
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
