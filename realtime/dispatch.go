package realtime

import (
	"encoding/json"

	"go.uber.org/zap"

	"github.com/illing1230/ai-memory-agent-sub000/core"
)

// dispatch decodes an inbound frame and routes it by envelope type.
// Parse failures are logged and swallowed; they never take the
// connection down. Unrecognized types are ignored.
func (c *Conn) dispatch(data []byte) {
	var env core.Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		c.logger.Warn("realtime frame parse failed",
			zap.String("room_id", c.roomID), zap.Error(err))
		return
	}

	switch env.Type {
	case core.EventMessageNew:
		var msg core.Message
		if err := json.Unmarshal(env.Data, &msg); err != nil {
			c.logger.Warn("message:new payload parse failed", zap.Error(err))
			return
		}
		if !c.appendMessage(msg) {
			// Already in the list: the REST fetch and the push raced.
			return
		}
		c.deliver(Event{Type: env.Type, Message: &msg, Raw: env.Data})

	case core.EventMemberJoin, core.EventMemberLeave:
		var member MemberEvent
		if err := json.Unmarshal(env.Data, &member); err != nil {
			c.logger.Warn("member event payload parse failed", zap.Error(err))
			return
		}
		if c.invalidateMembers != nil {
			c.invalidateMembers(c.roomID)
		}
		c.deliver(Event{Type: env.Type, Member: &member, Raw: env.Data})

	case core.EventMemoryExtracted:
		// Side-channel only: no cache update.
		var mem core.Memory
		if err := json.Unmarshal(env.Data, &mem); err != nil {
			c.logger.Warn("memory:extracted payload parse failed", zap.Error(err))
			return
		}
		c.logger.Info("memory extracted",
			zap.String("room_id", c.roomID), zap.String("memory_id", mem.ID))
		c.deliver(Event{Type: env.Type, Memory: &mem, Raw: env.Data})

	case core.EventRoomInfo:
		var room core.ChatRoom
		if err := json.Unmarshal(env.Data, &room); err != nil {
			c.logger.Warn("room:info payload parse failed", zap.Error(err))
			return
		}
		c.deliver(Event{Type: env.Type, Room: &room, Raw: env.Data})

	case core.EventPong:
		// Keepalive reply, nothing to do.

	default:
		c.logger.Debug("ignoring unrecognized event",
			zap.String("room_id", c.roomID), zap.String("type", env.Type))
	}
}

// appendMessage adds a message to the room's cached list, keyed by
// ID. It returns false when the ID was already present.
func (c *Conn) appendMessage(msg core.Message) bool {
	c.msgMu.Lock()
	defer c.msgMu.Unlock()

	if _, dup := c.seen[msg.ID]; dup {
		return false
	}
	c.seen[msg.ID] = struct{}{}
	c.messages = append(c.messages, msg)
	return true
}

// Hydrate seeds the message list from a REST-fetched page. Pushed
// copies of the same messages are dropped by ID, which is the only
// ordering mitigation between the two paths.
func (c *Conn) Hydrate(msgs []core.Message) {
	c.msgMu.Lock()
	defer c.msgMu.Unlock()

	for _, msg := range msgs {
		if _, dup := c.seen[msg.ID]; dup {
			continue
		}
		c.seen[msg.ID] = struct{}{}
		c.messages = append(c.messages, msg)
	}
}

// Messages returns a snapshot of the room's message list in arrival
// order.
func (c *Conn) Messages() []core.Message {
	c.msgMu.Lock()
	defer c.msgMu.Unlock()

	out := make([]core.Message, len(c.messages))
	copy(out, c.messages)
	return out
}
