package controller

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/benbeisheim/chessmatch/internal/model"
	"github.com/benbeisheim/chessmatch/internal/service"
	"github.com/benbeisheim/chessmatch/internal/ws"
	"github.com/google/go-cmp/cmp"
)

func message(t *testing.T, typ ws.MessageType, payload interface{}) ws.Message {
	t.Helper()
	raw, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	return ws.Message{Type: typ, Payload: raw}
}

func TestHandleMessage(t *testing.T) {
	ms := service.NewMatchService(service.NewMatchManager())
	wsc := NewWebSocketController(ms)
	id := ms.CreateMatch()

	reply, err := wsc.handleMessage(id, message(t, ws.MessageTypeLegalMoves, ws.LegalMovesRequest{Square: "b1"}))
	if err != nil {
		t.Fatalf("legalMoves: %v", err)
	}
	want := ws.Outgoing{
		Type: ws.MessageTypeLegalMoves,
		Payload: ws.LegalMovesReply{
			Square: "b1",
			Moves:  []model.Square{model.MustParseSquare("a3"), model.MustParseSquare("c3")},
		},
	}
	if diff := cmp.Diff(want, reply); diff != "" {
		t.Errorf("legalMoves reply mismatch (-want +got):\n%s", diff)
	}

	reply, err = wsc.handleMessage(id, message(t, ws.MessageTypeMove, ws.MovePayload{From: "b1", To: "c3"}))
	if err != nil {
		t.Fatalf("move: %v", err)
	}
	if reply != nil {
		t.Errorf("move reply = %v, want none", reply)
	}
	state, _ := ms.GetMatchState(id)
	if state.ToMove != model.Black {
		t.Errorf("to move = %s, want black", state.ToMove)
	}

	if _, err := wsc.handleMessage(id, message(t, ws.MessageTypeMove, ws.MovePayload{From: "c3", To: "d5"})); !errors.Is(err, model.ErrNotYourTurn) {
		t.Errorf("out of turn move: got %v, want ErrNotYourTurn", err)
	}
	if _, err := wsc.handleMessage(id, message(t, ws.MessageTypePromote, ws.PromotePayload{Type: "q"})); !errors.Is(err, model.ErrNoPendingPromotion) {
		t.Errorf("promote: got %v, want ErrNoPendingPromotion", err)
	}
}

func TestHandleMessageMalformed(t *testing.T) {
	ms := service.NewMatchService(service.NewMatchManager())
	wsc := NewWebSocketController(ms)
	id := ms.CreateMatch()

	tests := []struct {
		name string
		msg  ws.Message
	}{
		{"unknown type", ws.Message{Type: "resign", Payload: json.RawMessage(`{}`)}},
		{"bad move payload", ws.Message{Type: ws.MessageTypeMove, Payload: json.RawMessage(`"e2e4"`)}},
		{"bad promote payload", ws.Message{Type: ws.MessageTypePromote, Payload: json.RawMessage(`[]`)}},
		{"bad legalMoves payload", ws.Message{Type: ws.MessageTypeLegalMoves, Payload: json.RawMessage(`7`)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := wsc.handleMessage(id, tt.msg)
			if !errors.Is(err, errMalformedMessage) {
				t.Fatalf("got %v, want errMalformedMessage", err)
			}
			if status, kind := classify(err); status != 400 || kind != "BadRequest" {
				t.Errorf("classify = %d %q", status, kind)
			}
		})
	}
}
