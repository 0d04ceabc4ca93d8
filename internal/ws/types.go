package ws

import (
	"encoding/json"

	"github.com/benbeisheim/chessmatch/internal/model"
)

// MessageType represents the different kinds of messages exchanged over a match socket
type MessageType string

const (
	// client to server
	MessageTypeMove       MessageType = "move"
	MessageTypePromote    MessageType = "promote"
	MessageTypeLegalMoves MessageType = "legalMoves"

	// server to client; legalMoves is also used for the reply
	MessageTypeMatchState MessageType = "matchState"
	MessageTypeError      MessageType = "error"
)

// Message is an incoming websocket message. Payload is decoded once Type is known.
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Outgoing is a message sent to clients.
type Outgoing struct {
	Type    MessageType `json:"type"`
	Payload interface{} `json:"payload"`
}

type MovePayload struct {
	From      string `json:"from"`
	To        string `json:"to"`
	Promotion string `json:"promotion,omitempty"`
}

type PromotePayload struct {
	Type string `json:"type"`
}

type LegalMovesRequest struct {
	Square string `json:"square"`
}

type LegalMovesReply struct {
	Square string         `json:"square"`
	Moves  []model.Square `json:"moves"`
}

type ErrorPayload struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
}

func MatchState(state model.MatchState) Outgoing {
	return Outgoing{Type: MessageTypeMatchState, Payload: state}
}

func Error(err error, kind string) Outgoing {
	return Outgoing{Type: MessageTypeError, Payload: ErrorPayload{Error: err.Error(), Kind: kind}}
}
