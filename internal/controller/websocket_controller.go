package controller

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/benbeisheim/chessmatch/internal/service"
	"github.com/benbeisheim/chessmatch/internal/ws"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/websocket/v2"
)

var errMalformedMessage = errors.New("malformed message")

type WebSocketController struct {
	matchService *service.MatchService
}

func NewWebSocketController(matchService *service.MatchService) *WebSocketController {
	return &WebSocketController{
		matchService: matchService,
	}
}

// HandleConnection is called when a new websocket connection is established.
// The connection receives a matchState message after every change to the match.
func (wsc *WebSocketController) HandleConnection(c *websocket.Conn) {
	matchID, _ := c.Locals("wsMatchID").(string)

	subID, err := wsc.matchService.Subscribe(matchID, c)
	if err != nil {
		log.Warnf("failed to subscribe to match %s: %v", matchID, err)
		_, kind := classify(err)
		c.WriteJSON(ws.Error(err, kind))
		c.Close()
		return
	}
	defer wsc.matchService.Unsubscribe(matchID, subID)

	for {
		messageType, message, err := c.ReadMessage()
		if err != nil {
			log.Debugf("match %s: read error: %v", matchID, err)
			return
		}
		if messageType != websocket.TextMessage {
			continue
		}

		var msg ws.Message
		if err := json.Unmarshal(message, &msg); err != nil {
			wsc.reply(matchID, subID, ws.Error(errMalformedMessage, "BadRequest"))
			continue
		}

		reply, err := wsc.handleMessage(matchID, msg)
		if err != nil {
			_, kind := classify(err)
			reply = ws.Error(err, kind)
		}
		if reply != nil {
			wsc.reply(matchID, subID, reply)
		}
	}
}

// handleMessage executes one client message. State changes reach the client
// through the match broadcast, so only queries return a reply.
func (wsc *WebSocketController) handleMessage(matchID string, msg ws.Message) (interface{}, error) {
	switch msg.Type {
	case ws.MessageTypeMove:
		var move ws.MovePayload
		if err := json.Unmarshal(msg.Payload, &move); err != nil {
			return nil, fmt.Errorf("%w: move: %v", errMalformedMessage, err)
		}
		_, err := wsc.matchService.HandleMove(matchID, move.From, move.To, move.Promotion)
		return nil, err

	case ws.MessageTypePromote:
		var promote ws.PromotePayload
		if err := json.Unmarshal(msg.Payload, &promote); err != nil {
			return nil, fmt.Errorf("%w: promote: %v", errMalformedMessage, err)
		}
		_, err := wsc.matchService.HandlePromotion(matchID, promote.Type)
		return nil, err

	case ws.MessageTypeLegalMoves:
		var req ws.LegalMovesRequest
		if err := json.Unmarshal(msg.Payload, &req); err != nil {
			return nil, fmt.Errorf("%w: legalMoves: %v", errMalformedMessage, err)
		}
		moves, err := wsc.matchService.LegalMoves(matchID, req.Square)
		if err != nil {
			return nil, err
		}
		return ws.Outgoing{
			Type:    ws.MessageTypeLegalMoves,
			Payload: ws.LegalMovesReply{Square: req.Square, Moves: moves},
		}, nil

	default:
		return nil, fmt.Errorf("%w: unknown message type %q", errMalformedMessage, msg.Type)
	}
}

func (wsc *WebSocketController) reply(matchID, subID string, v interface{}) {
	if err := wsc.matchService.Send(matchID, subID, v); err != nil {
		log.Debugf("match %s: write error: %v", matchID, err)
	}
}
