// Package events provides a small typed pub/sub hub used to fan out
// scroll notifications to interested subscribers without coupling the
// controller to any particular UI framework.
package events

import (
	"context"
	"sync"
)

const defaultBuffer = 16

// Hub fans values out to any number of context-scoped subscribers.
// Publish never blocks: a subscriber that falls behind loses events.
type Hub[T any] struct {
	mu     sync.RWMutex
	subs   map[chan T]struct{}
	closed bool
	buffer int
}

// NewHub creates a hub whose subscriber channels buffer 16 values.
func NewHub[T any]() *Hub[T] {
	return NewHubWithBuffer[T](defaultBuffer)
}

// NewHubWithBuffer creates a hub with a custom subscriber buffer size.
func NewHubWithBuffer[T any](size int) *Hub[T] {
	if size < 1 {
		size = 1
	}
	return &Hub[T]{
		subs:   make(map[chan T]struct{}),
		buffer: size,
	}
}

// Subscribe returns a channel receiving every value published after the
// call. The subscription is removed and the channel closed when ctx is
// cancelled or the hub is closed.
func (h *Hub[T]) Subscribe(ctx context.Context) <-chan T {
	h.mu.Lock()
	defer h.mu.Unlock()

	ch := make(chan T, h.buffer)
	if h.closed {
		close(ch)
		return ch
	}
	h.subs[ch] = struct{}{}

	go func() {
		<-ctx.Done()
		h.mu.Lock()
		defer h.mu.Unlock()
		if h.closed {
			return
		}
		delete(h.subs, ch)
		close(ch)
	}()

	return ch
}

// Publish delivers v to every current subscriber. Subscribers with full
// buffers are skipped rather than blocked on.
func (h *Hub[T]) Publish(v T) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if h.closed {
		return
	}
	for ch := range h.subs {
		select {
		case ch <- v:
		default:
		}
	}
}

// Close shuts the hub down and closes all subscriber channels.
// Publish and Subscribe become no-ops afterwards.
func (h *Hub[T]) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return
	}
	h.closed = true
	for ch := range h.subs {
		close(ch)
	}
	h.subs = nil
}
