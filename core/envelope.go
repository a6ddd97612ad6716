package core

import "encoding/json"

// Realtime event types carried in the envelope. The backend sends
// message:new, member:join, member:leave, memory:extracted, room:info
// and pong; the client sends chat:message, typing:start, typing:stop
// and ping. Unrecognized types are ignored by both sides.
const (
	EventMessageNew      = "message:new"
	EventMemberJoin      = "member:join"
	EventMemberLeave     = "member:leave"
	EventMemoryExtracted = "memory:extracted"
	EventRoomInfo        = "room:info"
	EventPong            = "pong"

	EventChatMessage = "chat:message"
	EventTypingStart = "typing:start"
	EventTypingStop  = "typing:stop"
	EventPing        = "ping"
)

// Envelope is the wire format for realtime frames in both directions.
type Envelope struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

// NewEnvelope marshals data into an envelope of the given type.
func NewEnvelope(eventType string, data interface{}) (Envelope, error) {
	if data == nil {
		return Envelope{Type: eventType}, nil
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return Envelope{}, err
	}
	return Envelope{Type: eventType, Data: raw}, nil
}
