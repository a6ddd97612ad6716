// Package api is the REST client for the memory agent backend. All
// business logic (routing, extraction, ranking, permissions) lives
// server-side; this client shuttles JSON, caches reads and
// invalidates on writes.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/illing1230/ai-memory-agent-sub000/cache"
	"github.com/illing1230/ai-memory-agent-sub000/state"
)

// Cache invalidation groups. Mutations invalidate the group of the
// resource they touch; list reads register under it.
const (
	groupRooms     = "rooms"
	groupMemories  = "memories"
	groupDocuments = "documents"
	groupAgents    = "agents"
	groupShares    = "shares"
	groupAdmin     = "admin"
)

func groupMessages(roomID string) string { return "messages:" + roomID }
func groupMembers(roomID string) string  { return "members:" + roomID }

// APIError is a non-2xx backend response with its detail message.
type APIError struct {
	Status int
	Detail string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Status, e.Detail)
}

// Client talks to the versioned REST backend. Requests carry a bearer
// token and a user-id header read from the session store.
type Client struct {
	baseURL string
	http    *http.Client
	session *state.SessionStore
	cache   *cache.Cache
	logger  *zap.Logger
}

// Option configures the client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// WithCache attaches a query cache. Without one, every read hits the
// backend.
func WithCache(qc *cache.Cache) Option {
	return func(c *Client) {
		c.cache = qc
	}
}

// WithLogger sets the client logger. Default is a no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient creates a REST client rooted at baseURL, authenticating
// from the given session store.
func NewClient(baseURL string, session *state.SessionStore, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 30 * time.Second},
		session: session,
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// do performs a JSON request and decodes the response into out.
func (c *Client) do(ctx context.Context, method, path string, body interface{}, out interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	c.setAuthHeaders(req)

	return c.send(req, out)
}

// setAuthHeaders attaches the bearer token, the user-id header and a
// per-request ID.
func (c *Client) setAuthHeaders(req *http.Request) {
	if c.session != nil {
		if token := c.session.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		if userID := c.session.UserID(); userID != "" {
			req.Header.Set("X-User-ID", userID)
		}
	}
	req.Header.Set("X-Request-ID", uuid.New().String())
}

// send executes a prepared request, surfacing backend error details.
func (c *Client) send(req *http.Request, out interface{}) error {
	started := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response body: %w", err)
	}

	c.logger.Debug("request done",
		zap.String("method", req.Method),
		zap.String("path", req.URL.Path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(started)))

	if resp.StatusCode >= 400 {
		var errResp struct {
			Detail string `json:"detail"`
		}
		json.Unmarshal(respBody, &errResp)
		if errResp.Detail == "" {
			errResp.Detail = http.StatusText(resp.StatusCode)
		}
		return &APIError{Status: resp.StatusCode, Detail: errResp.Detail}
	}

	if out != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

// invalidate drops cache groups after a successful mutation.
func (c *Client) invalidate(groups ...string) {
	if c.cache != nil {
		c.cache.Invalidate(groups...)
	}
}

// cachedGet looks up key in the query cache. It returns ok=false
// when there is no cache or no live entry.
func (c *Client) cachedGet(key string) (interface{}, bool) {
	if c.cache == nil {
		return nil, false
	}
	return c.cache.Get(key)
}

// cacheSet registers a fresh read under its invalidation group.
func (c *Client) cacheSet(group, key string, value interface{}) {
	if c.cache != nil {
		c.cache.Set(group, key, value)
	}
}
