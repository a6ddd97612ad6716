package realtime

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/illing1230/ai-memory-agent-sub000/core"
)

// Send serializes a {type, data} envelope onto the socket. It returns
// ErrNotConnected when the connection is not Open.
func (c *Conn) Send(eventType string, data interface{}) error {
	env, err := core.NewEnvelope(eventType, data)
	if err != nil {
		return fmt.Errorf("build envelope: %w", err)
	}

	c.mu.Lock()
	ws := c.ws
	open := c.state == StateOpen
	c.mu.Unlock()
	if !open || ws == nil {
		return ErrNotConnected
	}

	// gorilla/websocket allows one concurrent writer.
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return ws.WriteJSON(env)
}

// ChatMessagePayload is the outbound chat:message data.
type ChatMessagePayload struct {
	Content  string `json:"content"`
	ParentID string `json:"parent_id,omitempty"`
	ClientID string `json:"client_msg_id"`
}

// SendChatMessage sends a chat message over the socket. The generated
// client message ID is returned so the caller can reconcile the
// server's pushed copy.
func (c *Conn) SendChatMessage(content string) (string, error) {
	clientID := uuid.New().String()
	err := c.Send(core.EventChatMessage, ChatMessagePayload{
		Content:  content,
		ClientID: clientID,
	})
	if err != nil {
		return "", err
	}
	return clientID, nil
}

// StartTyping signals that the current user began typing.
func (c *Conn) StartTyping() error {
	return c.Send(core.EventTypingStart, nil)
}

// StopTyping signals that the current user stopped typing.
func (c *Conn) StopTyping() error {
	return c.Send(core.EventTypingStop, nil)
}
