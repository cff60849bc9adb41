// Package scrollto scrolls a virtualized list to an arbitrary logical
// index, including indices that have never been rendered.
//
// The package is the orchestration core only: it tracks which indices
// currently have measurable geometry, resolves a requested index to the
// nearest materialized one (or an estimate), converts that into a concrete
// offset, and sequences overlapping animated scrolls so that only the
// newest request ever takes effect. Rendering, virtualization, and frame
// scheduling stay behind the Viewport, GeometryProvider, and PostLayout
// interfaces; package teaport provides a Bubble Tea implementation of all
// three.
//
// Both declarative and imperative scroll intent must funnel through one
// Controller, which is the sole writer of the owned viewport's offset.
package scrollto

import (
	"context"
	"sync"

	"github.com/kvisser/scrollto/internal/events"
	"github.com/kvisser/scrollto/internal/log"
)

// ScrolledToEvent announces that a scroll operation completed.
type ScrolledToEvent struct {
	// Index is the logical index the scroll finally resolved to, which may
	// be a materialized neighbor of the one requested.
	Index int

	// Version is the completed operation's version.
	Version uint64
}

// Controller owns one viewport and sequences every scroll request against
// it. Methods are safe for concurrent use; in a Bubble Tea program the
// registration lifecycle and scroll requests normally all arrive from the
// update loop, while animation and settle completions arrive from command
// goroutines.
type Controller struct {
	mu sync.Mutex

	vp     Viewport
	layout PostLayout

	reg       registry
	itemCount int

	defaults     scrollParams
	version      uint64
	current      *Operation
	disposed     bool
	onScrolledTo func(int)
	hub          *events.Hub[ScrolledToEvent]
}

// New creates a controller for the given viewport and layout scheduler.
func New(vp Viewport, layout PostLayout, opts ...Option) *Controller {
	c := &Controller{
		vp:     vp,
		layout: layout,
		defaults: scrollParams{
			alignment:      DefaultAlignment,
			duration:       DefaultDuration,
			curve:          EaseInOutCubic,
			maxWaitPasses:  DefaultMaxWaitPasses,
			trailingPasses: DefaultTrailingPasses,
		},
		hub: events.NewHub[ScrolledToEvent](),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// RegisterItem associates a logical index with a materialized item's
// handle. Called when an item's render representation is first built.
// Negative indices are ignored.
func (c *Controller) RegisterItem(index int, h GeometryProvider) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.reg.register(index, h)
}

// ReassignItem moves a handle to a new logical index, clearing the old
// slot only if the handle still occupies it. Called when virtualization
// recycles a rendered row for a different logical position.
func (c *Controller) ReassignItem(oldIndex, newIndex int, h GeometryProvider) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.reg.reassign(oldIndex, newIndex, h)
	log.Debug(log.CatRegistry, "reassigned", "old", oldIndex, "new", newIndex)
}

// UnregisterItem removes a handle when its render representation is
// permanently disposed, then prunes trailing empty registry slots.
func (c *Controller) UnregisterItem(h GeometryProvider) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.reg.unregister(h)
}

// MaterializedIndices returns the ascending set of logical indices whose
// geometry is retrievable right now.
func (c *Controller) MaterializedIndices() []int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.reg.materializedIndices()
}

// SetItemCount updates the logical length of the list.
func (c *Controller) SetItemCount(n int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if n >= 0 {
		c.itemCount = n
	}
}

// ItemCount returns the current logical length of the list.
func (c *Controller) ItemCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.itemCount
}

// ScrolledTo returns a channel receiving an event each time an operation
// completes as the authoritative one. The subscription ends with ctx.
func (c *Controller) ScrolledTo(ctx context.Context) <-chan ScrolledToEvent {
	return c.hub.Subscribe(ctx)
}

// CancelPending supersedes any in-flight operation without issuing a new
// one. Used when direct user input takes over the viewport mid-scroll.
func (c *Controller) CancelPending() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.current != nil {
		c.supersedeLocked(c.current)
	}
}

// Dispose abandons any in-flight operation and detaches the controller
// from its viewport. Further scroll requests terminate immediately.
func (c *Controller) Dispose() {
	c.mu.Lock()
	if c.disposed {
		c.mu.Unlock()
		return
	}
	c.disposed = true
	if c.current != nil && !c.current.state.terminal() {
		c.supersedeLocked(c.current)
	}
	c.current = nil
	c.mu.Unlock()
	c.hub.Close()
}
