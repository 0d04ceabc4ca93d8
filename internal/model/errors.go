package model

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for every rejection the engine can produce.
// Use these with errors.Is() to tell them apart.
var (
	// ErrInvalidCoordinate indicates a square outside a1-h8.
	ErrInvalidCoordinate = errors.New("invalid coordinate")

	// ErrOutOfBounds indicates grid access outside the 8x8 board.
	ErrOutOfBounds = errors.New("position out of bounds")

	// ErrOccupiedCell indicates a placement onto a cell that already holds a piece.
	ErrOccupiedCell = errors.New("cell already occupied")

	ErrNoPieceAtSource   = errors.New("there is no piece on source position")
	ErrNotYourTurn       = errors.New("the chosen piece is not yours")
	ErrNoLegalMoves      = errors.New("there are no possible moves for the chosen piece")
	ErrTargetUnreachable = errors.New("the chosen piece can't move to target position")

	// ErrSelfCheck indicates the move would leave the mover's own king attacked.
	ErrSelfCheck = errors.New("you can't put yourself in check")

	ErrNoPendingPromotion = errors.New("there is no piece to be promoted")

	// ErrMissingKing indicates a color has no king on the board. The engine's own
	// rules never produce this state.
	ErrMissingKing = errors.New("king missing from board")

	// ErrMatchOver indicates the match has ended and accepts no more moves.
	ErrMatchOver = errors.New("match is over")
)

var errorKinds = []struct {
	err  error
	kind string
}{
	{ErrInvalidCoordinate, "InvalidCoordinate"},
	{ErrOutOfBounds, "OutOfBounds"},
	{ErrOccupiedCell, "OccupiedCell"},
	{ErrNoPieceAtSource, "NoPieceAtSource"},
	{ErrNotYourTurn, "NotYourTurn"},
	{ErrNoLegalMoves, "NoLegalMoves"},
	{ErrTargetUnreachable, "TargetUnreachable"},
	{ErrSelfCheck, "SelfCheck"},
	{ErrNoPendingPromotion, "NoPendingPromotion"},
	{ErrMissingKing, "MissingKing"},
	{ErrMatchOver, "MatchOver"},
}

// Kind names the engine error wrapped by err, or "Internal" for anything else.
func Kind(err error) string {
	for _, k := range errorKinds {
		if errors.Is(err, k.err) {
			return k.kind
		}
	}
	return "Internal"
}

// IsFatal reports whether err is a broken board invariant rather than a rejected
// command. A driver should abort instead of re-prompting.
func IsFatal(err error) bool {
	return errors.Is(err, ErrMissingKing) ||
		errors.Is(err, ErrOccupiedCell) ||
		errors.Is(err, ErrOutOfBounds)
}

// MoveError wraps a rejection with the command and squares that caused it.
// It supports unwrapping via errors.Is() and errors.As().
type MoveError struct {
	Op   string // "legal moves", "move" or "promote"
	From string // source square, if any
	To   string // target square or promotion type, if any
	Err  error
}

func (e *MoveError) Error() string {
	parts := []string{e.Op}
	if e.From != "" {
		parts = append(parts, "from "+e.From)
	}
	if e.To != "" {
		parts = append(parts, "to "+e.To)
	}
	return fmt.Sprintf("%s: %v", strings.Join(parts, " "), e.Err)
}

func (e *MoveError) Unwrap() error {
	return e.Err
}
