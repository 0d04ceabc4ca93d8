package service

import (
	"fmt"
	"strings"

	"github.com/benbeisheim/chessmatch/internal/model"
)

// MatchService is the text facing entry point used by the controllers. It
// parses squares, upper-cases promotion letters and delegates to the
// MatchManager.
type MatchService struct {
	matchManager *MatchManager
}

func NewMatchService(matchManager *MatchManager) *MatchService {
	return &MatchService{
		matchManager: matchManager,
	}
}

type MoveResult struct {
	Captured *model.Cell      `json:"captured"`
	State    model.MatchState `json:"state"`
}

func (ms *MatchService) CreateMatch() string {
	return ms.matchManager.CreateMatch()
}

func (ms *MatchService) DeleteMatch(matchID string) error {
	return ms.matchManager.DeleteMatch(matchID)
}

func (ms *MatchService) GetMatchState(matchID string) (model.MatchState, error) {
	return ms.matchManager.GetState(matchID)
}

func (ms *MatchService) LegalMoves(matchID, square string) ([]model.Square, error) {
	sq, err := model.ParseSquare(square)
	if err != nil {
		return nil, err
	}
	return ms.matchManager.LegalMoves(matchID, sq)
}

func (ms *MatchService) HandleMove(matchID, from, to, promotion string) (MoveResult, error) {
	source, err := model.ParseSquare(from)
	if err != nil {
		return MoveResult{}, fmt.Errorf("source: %w", err)
	}
	target, err := model.ParseSquare(to)
	if err != nil {
		return MoveResult{}, fmt.Errorf("target: %w", err)
	}

	captured, state, err := ms.matchManager.PerformMove(matchID, source, target, promotionLetter(promotion))
	return MoveResult{Captured: captured, State: state}, err
}

func (ms *MatchService) HandlePromotion(matchID, kind string) (model.MatchState, error) {
	return ms.matchManager.ResolvePromotion(matchID, promotionLetter(kind))
}

func promotionLetter(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

func (ms *MatchService) Subscribe(matchID string, sink StateSink) (string, error) {
	return ms.matchManager.Subscribe(matchID, sink)
}

func (ms *MatchService) Unsubscribe(matchID, subID string) {
	ms.matchManager.Unsubscribe(matchID, subID)
}

func (ms *MatchService) Send(matchID, subID string, v interface{}) error {
	return ms.matchManager.Send(matchID, subID, v)
}
