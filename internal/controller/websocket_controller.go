package controller

import (
	"encoding/json"

	"github.com/apex/log"
	"github.com/gofiber/websocket/v2"
	"github.com/pkg/errors"

	"github.com/benbeisheim/boardtutor-backend/internal/middleware"
	"github.com/benbeisheim/boardtutor-backend/internal/model"
	"github.com/benbeisheim/boardtutor-backend/internal/service"
	"github.com/benbeisheim/boardtutor-backend/internal/ws"
)

type WebSocketController struct {
	sessionService *service.SessionService
}

func NewWebSocketController(sessionService *service.SessionService) *WebSocketController {
	return &WebSocketController{
		sessionService: sessionService,
	}
}

// HandleConnection registers the connection as a watcher of the session and
// reads owner input until the client goes away.
func (wsc *WebSocketController) HandleConnection(c *websocket.Conn) {
	sessionID := c.Params("sessionId")
	clientID, _ := c.Locals(middleware.ClientIDKey).(string)
	logger := log.WithFields(log.Fields{"session": sessionID, "client": clientID})

	if err := wsc.sessionService.RegisterConnection(sessionID, clientID, c); err != nil {
		logger.WithError(err).Warn("failed to register connection")
		wsc.sendError(c, sessionID, err)
		c.Close()
		return
	}
	defer wsc.sessionService.UnregisterConnection(sessionID, clientID, c)

	for {
		messageType, message, err := c.ReadMessage()
		if err != nil {
			logger.WithError(err).Debug("read error")
			return
		}
		if messageType != websocket.TextMessage {
			continue
		}

		var msg ws.Message
		if err := json.Unmarshal(message, &msg); err != nil {
			logger.WithError(err).Debug("parse error")
			wsc.sendError(c, sessionID, errors.Wrap(service.ErrInvalidRequest, "malformed message"))
			continue
		}

		if err := wsc.handleMessage(sessionID, clientID, msg); err != nil {
			logger.WithError(err).WithField("type", msg.Type).Info("handle error")
			wsc.sendError(c, sessionID, err)
		}
	}
}

// handleMessage turns one client message into a session input. The resulting
// state reaches every watcher through the session broadcast.
func (wsc *WebSocketController) handleMessage(sessionID, clientID string, msg ws.Message) error {
	in, err := decodeInput(msg)
	if err != nil {
		return err
	}
	_, err = wsc.sessionService.HandleInput(sessionID, clientID, in)
	return err
}

func decodeInput(msg ws.Message) (service.Input, error) {
	switch msg.Type {
	case ws.MessageTypeClick:
		var p ws.ClickPayload
		if err := msg.Decode(&p); err != nil {
			return service.Input{}, errors.Wrap(service.ErrInvalidRequest, err.Error())
		}
		return service.Input{Kind: msg.Type, Square: model.Pos(p.X, p.Y)}, nil
	case ws.MessageTypePromote:
		var p ws.PromotePayload
		if err := msg.Decode(&p); err != nil {
			return service.Input{}, errors.Wrap(service.ErrInvalidRequest, err.Error())
		}
		return service.Input{Kind: msg.Type, Piece: model.PieceType(p.Type)}, nil
	case ws.MessageTypeAnswer:
		var p ws.AnswerPayload
		if err := msg.Decode(&p); err != nil {
			return service.Input{}, errors.Wrap(service.ErrInvalidRequest, err.Error())
		}
		return service.Input{Kind: msg.Type, Option: p.Option}, nil
	case ws.MessageTypeUndo, ws.MessageTypeReset, ws.MessageTypeFlip:
		return service.Input{Kind: msg.Type}, nil
	}
	return service.Input{}, errors.Wrapf(service.ErrInvalidRequest, "unknown message type: %s", msg.Type)
}

func (wsc *WebSocketController) sendError(c *websocket.Conn, sessionID string, err error) {
	msg, encErr := ws.NewMessage(ws.MessageTypeError, ws.ErrorPayload{Error: err.Error()})
	if encErr != nil {
		return
	}
	if writeErr := wsc.sessionService.Send(sessionID, c, msg); writeErr != nil {
		log.WithError(writeErr).Debug("send error failed")
	}
}
