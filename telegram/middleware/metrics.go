package middleware

import (
	"context"
	"sync"

	tele "gopkg.in/telebot.v4"
)

// Counters tracks outbound messages produced while handling one update.
// The messenger increments it through the context the middleware attaches.
type Counters struct {
	mu       sync.Mutex
	messages int
	keyboard bool
}

// Add records one successful outbound message.
func (c *Counters) Add(hasKeyboard bool) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.messages++
	if hasKeyboard {
		c.keyboard = true
	}
}

// Snapshot returns the message count and keyboard presence so far.
func (c *Counters) Snapshot() (int, bool) {
	if c == nil {
		return 0, false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.messages, c.keyboard
}

type countersCtxKey struct{}

// WithCounters attaches the counters to a context.
func WithCounters(ctx context.Context, ctr *Counters) context.Context {
	if ctr == nil {
		return ctx
	}
	return context.WithValue(ctx, countersCtxKey{}, ctr)
}

// CountersFrom extracts the update's counters, or nil.
func CountersFrom(ctx context.Context) *Counters {
	if ctx == nil {
		return nil
	}
	ctr, _ := ctx.Value(countersCtxKey{}).(*Counters)
	return ctr
}

// MessageMetricsMiddleware attaches fresh per-update counters to both the
// tele.Context and the stored context, so outbound calls made anywhere
// downstream of the handler can report into them.
func MessageMetricsMiddleware(next tele.HandlerFunc) tele.HandlerFunc {
	return func(c tele.Context) error {
		ctr := &Counters{}
		c.Set("counters", ctr)
		StoreContext(c, WithCounters(BuildContext(c), ctr))
		return next(c)
	}
}

// GetCounters reads message count and keyboard presence for the update.
func GetCounters(c tele.Context) (int, bool) {
	if ctr, ok := c.Get("counters").(*Counters); ok {
		return ctr.Snapshot()
	}
	return 0, false
}
