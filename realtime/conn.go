// Package realtime maintains one live WebSocket connection per chat
// room: a reader delivering typed events to a single consumer, a
// keepalive ticker while open, and a single-shot reconnect timer on
// abnormal close. Cancellation goes through the connection context;
// Close sends a normal-closure frame and stops any pending reconnect.
package realtime

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/illing1230/ai-memory-agent-sub000/core"
)

// State is the connection lifecycle state.
type State int32

const (
	StateConnecting State = iota
	StateOpen
	StateClosing
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateConnecting:
		return "connecting"
	case StateOpen:
		return "open"
	case StateClosing:
		return "closing"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// CloseUnauthorized is the application close code the backend sends
// when the token is rejected. Like a normal closure, it must not
// trigger a reconnect.
const CloseUnauthorized = 4001

// ErrNotConnected is returned by senders when the socket is not open.
// Callers fall back to the HTTP send path.
var ErrNotConnected = errors.New("realtime: not connected")

// Default timing. Both are option-configurable.
const (
	DefaultKeepaliveInterval = 30 * time.Second
	DefaultReconnectDelay    = 3 * time.Second
)

// Event is a typed inbound event delivered on the Events channel.
// Exactly one payload field matching Type is set; Raw always carries
// the undecoded data.
type Event struct {
	Type    string
	Message *core.Message
	Member  *MemberEvent
	Room    *core.ChatRoom
	Memory  *core.Memory
	Raw     json.RawMessage
}

// MemberEvent is the payload of member:join and member:leave.
type MemberEvent struct {
	UserID string `json:"user_id"`
	RoomID string `json:"chat_room_id"`
	Name   string `json:"name,omitempty"`
}

// Client-side connectivity events, interleaved with backend events so
// the consumer can drive a connectivity badge.
const (
	EventConnected    = "connected"
	EventDisconnected = "disconnected"
)

// Conn is a room-scoped realtime connection.
type Conn struct {
	wsURL  string
	roomID string

	dialer            *websocket.Dialer
	logger            *zap.Logger
	keepaliveInterval time.Duration
	reconnectDelay    time.Duration
	maxReconnects     int
	invalidateMembers func(roomID string)

	ctx    context.Context
	cancel context.CancelFunc
	events chan Event
	done   chan struct{}

	mu         sync.Mutex
	state      State
	ws         *websocket.Conn
	writeMu    sync.Mutex
	pending    *time.Timer
	reconnects int

	msgMu    sync.Mutex
	messages []core.Message
	seen     map[string]struct{}
}

// Option configures the connection.
type Option func(*Conn)

// WithLogger sets the connection logger. Default is a no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Conn) { c.logger = logger }
}

// WithKeepaliveInterval overrides the 30s keepalive.
func WithKeepaliveInterval(d time.Duration) Option {
	return func(c *Conn) { c.keepaliveInterval = d }
}

// WithReconnectDelay overrides the 3s reconnect delay.
func WithReconnectDelay(d time.Duration) Option {
	return func(c *Conn) { c.reconnectDelay = d }
}

// WithMaxReconnects caps chained reconnect attempts. Zero means
// unlimited, which is the historical behavior.
func WithMaxReconnects(n int) Option {
	return func(c *Conn) { c.maxReconnects = n }
}

// WithDialer replaces the default websocket dialer.
func WithDialer(d *websocket.Dialer) Option {
	return func(c *Conn) { c.dialer = d }
}

// WithMemberInvalidator registers the callback run on member:join and
// member:leave, typically api.Client.InvalidateRoomMembers.
func WithMemberInvalidator(fn func(roomID string)) Option {
	return func(c *Conn) { c.invalidateMembers = fn }
}

// Dial opens a connection to the room-scoped endpoint, carrying the
// bearer token as a query parameter. The returned Conn is Open; the
// caller consumes Events until Done closes.
func Dial(ctx context.Context, wsBase, roomID, token string, opts ...Option) (*Conn, error) {
	connCtx, cancel := context.WithCancel(ctx)
	c := &Conn{
		wsURL:             fmt.Sprintf("%s/chat-rooms/%s?token=%s", wsBase, roomID, url.QueryEscape(token)),
		roomID:            roomID,
		dialer:            websocket.DefaultDialer,
		logger:            zap.NewNop(),
		keepaliveInterval: DefaultKeepaliveInterval,
		reconnectDelay:    DefaultReconnectDelay,
		ctx:               connCtx,
		cancel:            cancel,
		events:            make(chan Event, 64),
		done:              make(chan struct{}),
		state:             StateConnecting,
		seen:              make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}

	if err := c.connect(); err != nil {
		cancel()
		close(c.done)
		return nil, err
	}
	return c, nil
}

// connect dials and, on success, moves to Open and starts the reader
// and keepalive for this underlying socket.
func (c *Conn) connect() error {
	ws, resp, err := c.dialer.DialContext(c.ctx, c.wsURL, nil)
	if err != nil {
		if resp != nil {
			return fmt.Errorf("dial room %s: %w (status %d)", c.roomID, err, resp.StatusCode)
		}
		return fmt.Errorf("dial room %s: %w", c.roomID, err)
	}

	c.mu.Lock()
	c.ws = ws
	c.state = StateOpen
	c.mu.Unlock()

	c.logger.Info("realtime connected", zap.String("room_id", c.roomID))
	c.deliver(Event{Type: EventConnected})

	sockDone := make(chan struct{})
	go c.readLoop(ws, sockDone)
	go c.keepalive(sockDone)
	return nil
}

// State returns the current lifecycle state.
func (c *Conn) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Events is the inbound event channel, consumed by a single reader.
// The channel is never closed; consumers stop when Done closes.
func (c *Conn) Events() <-chan Event {
	return c.events
}

// Done closes when the connection is Closed and no reconnect is
// pending.
func (c *Conn) Done() <-chan struct{} {
	return c.done
}

// RoomID returns the room this connection is scoped to.
func (c *Conn) RoomID() string {
	return c.roomID
}

// Close performs an orderly shutdown: normal-closure frame, cancel
// the context, stop any pending reconnect timer. Safe to call more
// than once.
func (c *Conn) Close() error {
	c.mu.Lock()
	if c.state == StateClosed || c.state == StateClosing {
		c.mu.Unlock()
		return nil
	}
	c.state = StateClosing
	ws := c.ws
	if c.pending != nil {
		c.pending.Stop()
		c.pending = nil
	}
	c.mu.Unlock()

	c.cancel()

	var err error
	if ws != nil {
		deadline := time.Now().Add(time.Second)
		ws.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), deadline)
		err = ws.Close()
	}

	c.finish()
	return err
}

// finish transitions to Closed once and closes Done. The events
// channel stays open so in-flight deliveries cannot panic.
func (c *Conn) finish() {
	c.mu.Lock()
	if c.state == StateClosed {
		c.mu.Unlock()
		return
	}
	c.state = StateClosed
	c.mu.Unlock()

	close(c.done)
	c.logger.Info("realtime closed", zap.String("room_id", c.roomID))
}

// readLoop reads frames until the socket errors, then decides whether
// the close was orderly or abnormal.
func (c *Conn) readLoop(ws *websocket.Conn, sockDone chan struct{}) {
	defer close(sockDone)

	for {
		_, data, err := ws.ReadMessage()
		if err != nil {
			c.handleClose(err)
			return
		}
		c.dispatch(data)
	}
}

// handleClose routes a read error: user-initiated shutdowns and
// normal/unauthorized closes finish the connection; anything else
// schedules exactly one reconnect.
func (c *Conn) handleClose(err error) {
	c.mu.Lock()
	closing := c.state == StateClosing || c.state == StateClosed
	c.mu.Unlock()
	if closing || c.ctx.Err() != nil {
		c.finish()
		return
	}

	c.deliver(Event{Type: EventDisconnected})

	var closeErr *websocket.CloseError
	if errors.As(err, &closeErr) {
		if closeErr.Code == websocket.CloseNormalClosure || closeErr.Code == CloseUnauthorized {
			c.logger.Info("realtime closed by server",
				zap.String("room_id", c.roomID), zap.Int("code", closeErr.Code))
			c.finish()
			return
		}
	}

	c.logger.Warn("realtime connection lost",
		zap.String("room_id", c.roomID), zap.Error(err))
	c.scheduleReconnect()
}

// scheduleReconnect arms a single-shot timer for one reconnect
// attempt after the fixed delay. Repeated abnormal closes chain
// further single shots; there is no backoff.
func (c *Conn) scheduleReconnect() {
	c.mu.Lock()
	if c.state == StateClosing || c.state == StateClosed {
		c.mu.Unlock()
		return
	}
	if c.maxReconnects > 0 && c.reconnects >= c.maxReconnects {
		c.mu.Unlock()
		c.logger.Warn("realtime reconnect cap reached", zap.String("room_id", c.roomID))
		c.finish()
		return
	}
	c.reconnects++
	c.state = StateConnecting
	c.ws = nil
	c.pending = time.AfterFunc(c.reconnectDelay, c.redial)
	c.mu.Unlock()

	c.logger.Info("realtime reconnect scheduled",
		zap.String("room_id", c.roomID), zap.Duration("delay", c.reconnectDelay))
}

// redial runs when the reconnect timer fires.
func (c *Conn) redial() {
	c.mu.Lock()
	c.pending = nil
	aborted := c.state == StateClosing || c.state == StateClosed
	c.mu.Unlock()
	if aborted || c.ctx.Err() != nil {
		return
	}

	if err := c.connect(); err != nil {
		c.logger.Warn("realtime reconnect failed",
			zap.String("room_id", c.roomID), zap.Error(err))
		c.scheduleReconnect()
	}
}

// keepalive emits a ping envelope every interval while this socket is
// up. It stops when the socket's reader exits or the connection is
// cancelled.
func (c *Conn) keepalive(sockDone chan struct{}) {
	ticker := time.NewTicker(c.keepaliveInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := c.Send(core.EventPing, nil); err != nil {
				return
			}
		case <-sockDone:
			return
		case <-c.ctx.Done():
			return
		}
	}
}

// deliver hands an event to the consumer without blocking shutdown.
func (c *Conn) deliver(ev Event) {
	select {
	case c.events <- ev:
	case <-c.ctx.Done():
	}
}
