package ws

import (
	"encoding/json"

	"github.com/pkg/errors"
)

// MessageType represents the different kinds of messages exchanged with clients.
type MessageType string

const (
	// Client to server.
	MessageTypeClick   MessageType = "click"
	MessageTypePromote MessageType = "promote"
	MessageTypeUndo    MessageType = "undo"
	MessageTypeReset   MessageType = "reset"
	MessageTypeFlip    MessageType = "flip"
	MessageTypeAnswer  MessageType = "answer"

	// Server to client.
	MessageTypeState MessageType = "state"
	MessageTypeError MessageType = "error"
)

// Message represents a WebSocket message in our system
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type ClickPayload struct {
	X int `json:"x"`
	Y int `json:"y"`
}

type PromotePayload struct {
	Type string `json:"type"`
}

// AnswerPayload picks a quiz option by index.
type AnswerPayload struct {
	Option int `json:"option"`
}

type ErrorPayload struct {
	Error string `json:"error"`
}

// NewMessage encodes payload into a message of type t.
func NewMessage(t MessageType, payload interface{}) (Message, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return Message{}, errors.Wrapf(err, "marshal %s payload", t)
	}
	return Message{Type: t, Payload: raw}, nil
}

// Decode unmarshals the payload of m into v.
func (m Message) Decode(v interface{}) error {
	if len(m.Payload) == 0 {
		return errors.Errorf("%s message has no payload", m.Type)
	}
	return errors.Wrapf(json.Unmarshal(m.Payload, v), "decode %s payload", m.Type)
}
