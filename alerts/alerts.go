// Package alerts is the process-wide notification channel. Any service can
// push; a renderer polls the queue and entries expire on their own after a
// fixed delay. All timers are owned by the channel so tearing it down never
// leaves a continuation firing against disposed state.
package alerts

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Kind string

const (
	Success Kind = "success"
	Error   Kind = "error"
	Info    Kind = "info"
)

type Alert struct {
	Id      string `json:"id"`
	Kind    Kind   `json:"kind"`
	Message string `json:"message"`
}

// DefaultTTL matches the auto-dismiss delay of the original console.
const DefaultTTL = 3500 * time.Millisecond

type Channel struct {
	mu     sync.Mutex
	ttl    time.Duration
	items  []Alert
	timers map[string]*time.Timer
	closed bool
	log    *zap.Logger
}

func NewChannel(ttl time.Duration, log *zap.Logger) *Channel {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Channel{
		ttl:    ttl,
		timers: map[string]*time.Timer{},
		log:    log,
	}
}

// Push appends an entry and schedules its own removal after the channel TTL.
// The queue is unbounded; entries drain on their own timers, so a burst
// self-heals. Returns the entry id.
func (c *Channel) Push(kind Kind, message string) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ""
	}

	id := uuid.New().String()
	c.items = append(c.items, Alert{Id: id, Kind: kind, Message: message})
	c.timers[id] = time.AfterFunc(c.ttl, func() { c.Remove(id) })
	c.log.Debug("alert pushed", zap.String("kind", string(kind)), zap.String("message", message))
	return id
}

// PushAfter schedules a Push once delay elapses. The pending timer belongs to
// the channel: Close cancels it, so a torn-down channel never observes the
// late notification.
func (c *Channel) PushAfter(delay time.Duration, kind Kind, message string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}

	pending := uuid.New().String()
	c.timers[pending] = time.AfterFunc(delay, func() {
		c.mu.Lock()
		delete(c.timers, pending)
		c.mu.Unlock()
		c.Push(kind, message)
	})
}

// Remove deletes the entry with the given id, whether called by the expiry
// timer or a manual dismiss. Removing an id that is already gone is a no-op.
func (c *Channel) Remove(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if t, ok := c.timers[id]; ok {
		t.Stop()
		delete(c.timers, id)
	}
	for i, a := range c.items {
		if a.Id == id {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return
		}
	}
}

// List returns the queued entries in push order.
func (c *Channel) List() []Alert {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Alert(nil), c.items...)
}

// Close stops every outstanding timer and rejects further pushes.
func (c *Channel) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	for id, t := range c.timers {
		t.Stop()
		delete(c.timers, id)
	}
}
