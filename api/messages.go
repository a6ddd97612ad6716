package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/illing1230/ai-memory-agent-sub000/core"
)

// MessagesResponse is the response from listing room messages.
type MessagesResponse struct {
	Messages []core.Message `json:"messages"`
	HasMore  bool           `json:"has_more"`
}

// ListMessages returns a page of messages for a room, newest last.
// before is a millisecond timestamp cursor; zero means latest page.
// Only the latest page (no cursor) is cached: paginated history is a
// one-shot read.
func (c *Client) ListMessages(ctx context.Context, roomID string, limit int, before int64) (*MessagesResponse, error) {
	if limit <= 0 {
		limit = 50
	}
	path := fmt.Sprintf("/chat-rooms/%s/messages?limit=%d", roomID, limit)
	if before > 0 {
		path += fmt.Sprintf("&before=%d", before)
	}

	cacheable := before == 0
	if cacheable {
		if v, ok := c.cachedGet(path); ok {
			if resp, ok := v.(*MessagesResponse); ok {
				return resp, nil
			}
		}
	}

	var resp MessagesResponse
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	if cacheable {
		c.cacheSet(groupMessages(roomID), path, &resp)
	}
	return &resp, nil
}

// SendMessageRequest is the request body for the HTTP send path.
type SendMessageRequest struct {
	Content  string `json:"content"`
	ParentID string `json:"parent_id,omitempty"`
	ClientID string `json:"client_msg_id"`
}

// SendMessage posts a message over HTTP. This is the fallback path
// used when the room's realtime connection is down; the normal path
// is realtime.Conn.SendChatMessage. A client message ID is generated
// when the caller does not supply one, so the pushed copy can be
// reconciled.
func (c *Client) SendMessage(ctx context.Context, roomID string, req SendMessageRequest) (*core.Message, error) {
	if req.ClientID == "" {
		req.ClientID = uuid.New().String()
	}

	var msg core.Message
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/chat-rooms/%s/messages", roomID), req, &msg); err != nil {
		return nil, err
	}
	c.invalidate(groupMessages(roomID))
	return &msg, nil
}
