// service/match_manager.go
package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/benbeisheim/chessmatch/internal/model"
	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
)

var ErrMatchNotFound = errors.New("match not found")

// StateSink receives a match snapshot after every change. *websocket.Conn
// satisfies it.
type StateSink interface {
	WriteJSON(v interface{}) error
}

type subscriber struct {
	mu   sync.Mutex // serializes writes to one sink
	sink StateSink
}

// matchEntry owns one match. mu guards the match itself, subsMu the subscribers.
type matchEntry struct {
	mu         sync.Mutex
	match      *model.Match
	lastActive time.Time

	subsMu      sync.RWMutex
	subscribers map[string]*subscriber
}

type MatchManager struct {
	matches map[string]*matchEntry
	mu      sync.RWMutex
	now     func() time.Time
	encode  func(model.MatchState) interface{}
	promote func(*model.Match, string) (*model.Piece, error)
}

func NewMatchManager() *MatchManager {
	return &MatchManager{
		matches: make(map[string]*matchEntry),
		now:     time.Now,
		encode:  func(s model.MatchState) interface{} { return s },
		promote: (*model.Match).ResolvePromotion,
	}
}

// SetEncoder changes how snapshots are wrapped before they reach subscribers.
func (mm *MatchManager) SetEncoder(encode func(model.MatchState) interface{}) {
	mm.encode = encode
}

func (mm *MatchManager) CreateMatch() string {
	matchID := uuid.New().String()

	mm.mu.Lock()
	defer mm.mu.Unlock()
	mm.matches[matchID] = &matchEntry{
		match:       model.NewMatch(),
		lastActive:  mm.now(),
		subscribers: make(map[string]*subscriber),
	}
	log.Infof("created match %s", matchID)
	return matchID
}

func (mm *MatchManager) DeleteMatch(matchID string) error {
	mm.mu.Lock()
	defer mm.mu.Unlock()

	if _, exists := mm.matches[matchID]; !exists {
		return ErrMatchNotFound
	}
	delete(mm.matches, matchID)
	log.Infof("deleted match %s", matchID)
	return nil
}

func (mm *MatchManager) Count() int {
	mm.mu.RLock()
	defer mm.mu.RUnlock()
	return len(mm.matches)
}

func (mm *MatchManager) entry(matchID string) (*matchEntry, error) {
	mm.mu.RLock()
	defer mm.mu.RUnlock()

	e, exists := mm.matches[matchID]
	if !exists {
		return nil, ErrMatchNotFound
	}
	return e, nil
}

func (mm *MatchManager) GetState(matchID string) (model.MatchState, error) {
	e, err := mm.entry(matchID)
	if err != nil {
		return model.MatchState{}, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.match.State(), nil
}

func (mm *MatchManager) LegalMoves(matchID string, square model.Square) ([]model.Square, error) {
	e, err := mm.entry(matchID)
	if err != nil {
		return nil, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	moves, err := e.match.LegalMovesFrom(square)
	if err != nil {
		return nil, err
	}
	return moves.Squares(), nil
}

// PerformMove applies a move and, when the move promotes and promotion names a
// piece, resolves the promotion in the same critical section. If the move is
// made but the promotion fails, the new state is still returned and broadcast
// along with the error.
func (mm *MatchManager) PerformMove(matchID string, from, to model.Square, promotion string) (*model.Cell, model.MatchState, error) {
	e, err := mm.entry(matchID)
	if err != nil {
		return nil, model.MatchState{}, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	captured, err := e.match.PerformMove(from, to)
	if err != nil {
		if model.IsFatal(err) {
			log.Errorf("match %s: %v", matchID, err)
		}
		return nil, model.MatchState{}, err
	}
	e.lastActive = mm.now()

	var promoteErr error
	if promotion != "" && e.match.Promoted() != nil {
		if _, promoteErr = mm.promote(e.match, promotion); promoteErr != nil {
			log.Errorf("match %s: %v", matchID, promoteErr)
		}
	}

	state := e.match.State()
	log.Debugf("match %s: %s %s-%s", matchID, state.LastMove.Color, from, to)
	mm.broadcast(matchID, e, state)

	var cell *model.Cell
	if captured != nil {
		c := captured.Cell()
		cell = &c
	}
	return cell, state, promoteErr
}

func (mm *MatchManager) ResolvePromotion(matchID string, kind string) (model.MatchState, error) {
	e, err := mm.entry(matchID)
	if err != nil {
		return model.MatchState{}, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if _, err := mm.promote(e.match, kind); err != nil {
		return model.MatchState{}, err
	}
	e.lastActive = mm.now()
	state := e.match.State()
	mm.broadcast(matchID, e, state)
	return state, nil
}

// Subscribe registers sink for state updates of a match and sends it the
// current state. It returns the id to unsubscribe with.
func (mm *MatchManager) Subscribe(matchID string, sink StateSink) (string, error) {
	e, err := mm.entry(matchID)
	if err != nil {
		return "", err
	}
	subID := uuid.New().String()
	sub := &subscriber{sink: sink}

	// Holding the match lock keeps the initial state ahead of any broadcast.
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := sub.write(mm.encode(e.match.State())); err != nil {
		return "", fmt.Errorf("failed to send initial state: %w", err)
	}
	e.subsMu.Lock()
	e.subscribers[subID] = sub
	e.subsMu.Unlock()
	log.Infof("match %s: subscriber %s registered", matchID, subID)
	return subID, nil
}

func (mm *MatchManager) Unsubscribe(matchID, subID string) {
	e, err := mm.entry(matchID)
	if err != nil {
		return
	}
	e.subsMu.Lock()
	defer e.subsMu.Unlock()
	if _, exists := e.subscribers[subID]; exists {
		delete(e.subscribers, subID)
		log.Infof("match %s: subscriber %s unregistered", matchID, subID)
	}
}

// Send writes v to one subscriber, serialized with the match broadcasts.
func (mm *MatchManager) Send(matchID, subID string, v interface{}) error {
	e, err := mm.entry(matchID)
	if err != nil {
		return err
	}
	e.subsMu.RLock()
	sub, exists := e.subscribers[subID]
	e.subsMu.RUnlock()
	if !exists {
		return fmt.Errorf("subscriber %s not registered", subID)
	}
	return sub.write(v)
}

func (sub *subscriber) write(v interface{}) error {
	sub.mu.Lock()
	defer sub.mu.Unlock()
	return sub.sink.WriteJSON(v)
}

// broadcast sends state to every subscriber, dropping those that fail. Callers
// hold e.mu so subscribers see states in the order they were made.
func (mm *MatchManager) broadcast(matchID string, e *matchEntry, state model.MatchState) {
	e.subsMu.RLock()
	active := make(map[string]*subscriber, len(e.subscribers))
	for id, sub := range e.subscribers {
		active[id] = sub
	}
	e.subsMu.RUnlock()

	payload := mm.encode(state)
	for id, sub := range active {
		if err := sub.write(payload); err != nil {
			log.Warnf("match %s: failed to send state to %s: %v", matchID, id, err)
			e.subsMu.Lock()
			delete(e.subscribers, id)
			e.subsMu.Unlock()
		}
	}
}

// Reap removes matches idle for longer than ttl and returns how many it removed.
// Matches with live subscribers are kept.
func (mm *MatchManager) Reap(ttl time.Duration) int {
	cutoff := mm.now().Add(-ttl)

	mm.mu.Lock()
	defer mm.mu.Unlock()
	removed := 0
	for id, e := range mm.matches {
		e.mu.Lock()
		idle := e.lastActive.Before(cutoff)
		e.mu.Unlock()

		e.subsMu.RLock()
		watched := len(e.subscribers) > 0
		e.subsMu.RUnlock()

		if idle && !watched {
			delete(mm.matches, id)
			removed++
		}
	}
	return removed
}

// RunReaper calls Reap every interval until ctx is done.
func (mm *MatchManager) RunReaper(ctx context.Context, interval, ttl time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := mm.Reap(ttl); n > 0 {
				log.Infof("reaped %d idle matches", n)
			}
		}
	}
}
