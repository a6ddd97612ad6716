package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/illing1230/ai-memory-agent-sub000/core"
)

// MemoriesResponse is the response from listing or searching memories.
type MemoriesResponse struct {
	Memories []core.Memory `json:"memories"`
	Total    int           `json:"total"`
}

// ListMemories returns the current user's memories, optionally
// filtered to one room. The unfiltered and per-room lists are cached
// under the same group; any memory mutation invalidates them all.
func (c *Client) ListMemories(ctx context.Context, roomID string) ([]core.Memory, error) {
	path := "/memories"
	if roomID != "" {
		path += "?chat_room_id=" + url.QueryEscape(roomID)
	}
	if v, ok := c.cachedGet(path); ok {
		if memories, ok := v.([]core.Memory); ok {
			return memories, nil
		}
	}

	var resp MemoriesResponse
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	c.cacheSet(groupMemories, path, resp.Memories)
	return resp.Memories, nil
}

// SearchMemories runs a backend search over the user's memories.
// Ranking happens server-side; results come back ordered. Searches
// are not cached.
func (c *Client) SearchMemories(ctx context.Context, query string, limit int) ([]core.Memory, error) {
	if limit <= 0 {
		limit = 20
	}
	path := fmt.Sprintf("/memories/search?q=%s&limit=%d", url.QueryEscape(query), limit)

	var resp MemoriesResponse
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Memories, nil
}

// UpdateMemoryRequest is the request body for editing a memory.
type UpdateMemoryRequest struct {
	Content string   `json:"content,omitempty"`
	Tags    []string `json:"tags,omitempty"`
}

// UpdateMemory edits a memory's content or tags.
func (c *Client) UpdateMemory(ctx context.Context, memoryID string, req UpdateMemoryRequest) (*core.Memory, error) {
	var mem core.Memory
	if err := c.do(ctx, http.MethodPatch, "/memories/"+memoryID, req, &mem); err != nil {
		return nil, err
	}
	c.invalidate(groupMemories)
	return &mem, nil
}

// DeleteMemory removes a memory.
func (c *Client) DeleteMemory(ctx context.Context, memoryID string) error {
	if err := c.do(ctx, http.MethodDelete, "/memories/"+memoryID, nil, nil); err != nil {
		return err
	}
	c.invalidate(groupMemories)
	return nil
}
