package api

import (
	"context"
	"net/http"

	"github.com/illing1230/ai-memory-agent-sub000/core"
)

// LoginRequest is the request body for password login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse carries the authenticated user and their bearer token.
type LoginResponse struct {
	User        core.User `json:"user"`
	AccessToken string    `json:"access_token"`
}

// Login exchanges credentials for a user profile and access token.
// The caller stores both via state.SessionStore.Login.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResponse, error) {
	var resp LoginResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login", LoginRequest{Email: email, Password: password}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Me returns the profile behind the current token.
func (c *Client) Me(ctx context.Context) (*core.User, error) {
	var user core.User
	if err := c.do(ctx, http.MethodGet, "/auth/me", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
