package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/illing1230/ai-memory-agent-sub000/core"
)

// ChatRoomsResponse is the response from listing chat rooms.
type ChatRoomsResponse struct {
	Rooms []core.ChatRoom `json:"chat_rooms"`
	Total int             `json:"total"`
}

// ListChatRooms returns the rooms visible to the current user.
func (c *Client) ListChatRooms(ctx context.Context) ([]core.ChatRoom, error) {
	const key = "/chat-rooms"
	if v, ok := c.cachedGet(key); ok {
		if rooms, ok := v.([]core.ChatRoom); ok {
			return rooms, nil
		}
	}

	var resp ChatRoomsResponse
	if err := c.do(ctx, http.MethodGet, key, nil, &resp); err != nil {
		return nil, err
	}
	c.cacheSet(groupRooms, key, resp.Rooms)
	return resp.Rooms, nil
}

// CreateRoomRequest is the request body for creating a chat room.
type CreateRoomRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	ProjectID   string `json:"project_id,omitempty"`
}

// CreateChatRoom creates a room and invalidates the room list.
func (c *Client) CreateChatRoom(ctx context.Context, req CreateRoomRequest) (*core.ChatRoom, error) {
	var room core.ChatRoom
	if err := c.do(ctx, http.MethodPost, "/chat-rooms", req, &room); err != nil {
		return nil, err
	}
	c.invalidate(groupRooms)
	return &room, nil
}

// GetChatRoom fetches a single room by ID.
func (c *Client) GetChatRoom(ctx context.Context, roomID string) (*core.ChatRoom, error) {
	var room core.ChatRoom
	if err := c.do(ctx, http.MethodGet, "/chat-rooms/"+roomID, nil, &room); err != nil {
		return nil, err
	}
	return &room, nil
}

// DeleteChatRoom deletes a room and invalidates the room list plus
// the room's message and member caches.
func (c *Client) DeleteChatRoom(ctx context.Context, roomID string) error {
	if err := c.do(ctx, http.MethodDelete, "/chat-rooms/"+roomID, nil, nil); err != nil {
		return err
	}
	c.invalidate(groupRooms, groupMessages(roomID), groupMembers(roomID))
	return nil
}

// JoinChatRoom adds the current user to a room.
func (c *Client) JoinChatRoom(ctx context.Context, roomID string) error {
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/chat-rooms/%s/join", roomID), nil, nil); err != nil {
		return err
	}
	c.invalidate(groupRooms, groupMembers(roomID))
	return nil
}

// LeaveChatRoom removes the current user from a room.
func (c *Client) LeaveChatRoom(ctx context.Context, roomID string) error {
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/chat-rooms/%s/leave", roomID), nil, nil); err != nil {
		return err
	}
	c.invalidate(groupRooms, groupMembers(roomID))
	return nil
}

// MembersResponse is the response from listing room members.
type MembersResponse struct {
	Members []core.RoomMember `json:"members"`
	Total   int               `json:"total"`
}

// ListRoomMembers returns a room's member list, cached per room.
func (c *Client) ListRoomMembers(ctx context.Context, roomID string) ([]core.RoomMember, error) {
	key := fmt.Sprintf("/chat-rooms/%s/members", roomID)
	if v, ok := c.cachedGet(key); ok {
		if members, ok := v.([]core.RoomMember); ok {
			return members, nil
		}
	}

	var resp MembersResponse
	if err := c.do(ctx, http.MethodGet, key, nil, &resp); err != nil {
		return nil, err
	}
	c.cacheSet(groupMembers(roomID), key, resp.Members)
	return resp.Members, nil
}

// InvalidateRoomMembers drops the cached member list for a room. The
// realtime layer calls this on member:join and member:leave events.
func (c *Client) InvalidateRoomMembers(roomID string) {
	c.invalidate(groupMembers(roomID))
}
