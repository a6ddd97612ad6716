package api

import (
	"context"
	"net/http"

	"github.com/illing1230/ai-memory-agent-sub000/core"
)

// SharesResponse is the response from listing shares.
type SharesResponse struct {
	Shares []core.Share `json:"shares"`
	Total  int          `json:"total"`
}

// ListShares returns the grants the current user has made.
func (c *Client) ListShares(ctx context.Context) ([]core.Share, error) {
	const key = "/shares"
	if v, ok := c.cachedGet(key); ok {
		if shares, ok := v.([]core.Share); ok {
			return shares, nil
		}
	}

	var resp SharesResponse
	if err := c.do(ctx, http.MethodGet, key, nil, &resp); err != nil {
		return nil, err
	}
	c.cacheSet(groupShares, key, resp.Shares)
	return resp.Shares, nil
}

// CreateShareRequest is the request body for granting access to a
// memory or document. Permission evaluation is backend-side.
type CreateShareRequest struct {
	ResourceType string `json:"resource_type"`
	ResourceID   string `json:"resource_id"`
	GranteeID    string `json:"grantee_id"`
	Permission   string `json:"permission"`
}

// CreateShare grants access to a resource.
func (c *Client) CreateShare(ctx context.Context, req CreateShareRequest) (*core.Share, error) {
	var share core.Share
	if err := c.do(ctx, http.MethodPost, "/shares", req, &share); err != nil {
		return nil, err
	}
	c.invalidate(groupShares)
	return &share, nil
}

// RevokeShare removes a grant.
func (c *Client) RevokeShare(ctx context.Context, shareID string) error {
	if err := c.do(ctx, http.MethodDelete, "/shares/"+shareID, nil, nil); err != nil {
		return err
	}
	c.invalidate(groupShares)
	return nil
}
