package scrollto

import (
	"math"

	"github.com/kvisser/scrollto/internal/log"
)

// ScrollToIndex requests a scroll to the given logical index and returns
// the new operation. Issuing a request immediately supersedes any earlier
// operation that has not reached a terminal state; only the newest
// operation ever mutates the viewport or fires a notification.
//
// Out-of-range indices are clamped, an empty registry makes the operation
// a silent no-op, and a disposed controller abandons the request. None of
// these are errors.
func (c *Controller) ScrollToIndex(index int, opts ...ScrollOption) *Operation {
	c.mu.Lock()
	params := c.defaults
	params.itemCount = c.itemCount
	for _, opt := range opts {
		opt(&params)
	}
	if index < 0 {
		index = 0
	}
	if params.itemCount > 0 && index >= params.itemCount {
		index = params.itemCount - 1
	}

	c.version++
	op := &Operation{
		c:        c,
		version:  c.version,
		index:    index,
		params:   params,
		state:    StatePending,
		resolved: -1,
		done:     make(chan struct{}),
	}
	if c.current != nil {
		c.supersedeLocked(c.current)
	}
	c.current = op

	if c.disposed || c.vp == nil || c.layout == nil {
		c.supersedeLocked(op)
		c.current = nil
		c.mu.Unlock()
		return op
	}
	layout := c.layout
	c.mu.Unlock()

	log.Debug(log.CatSeq, "scroll requested", "version", op.version, "index", index)

	// Geometry cannot be trusted until layout settles; the settle wait is
	// bounded so a never-settling layout still scrolls eventually.
	cancel := layout.AfterSettle(params.maxWaitPasses, 0, func() { c.begin(op) })
	c.attachCancel(op, cancel)
	return op
}

// begin runs once the pre-scroll settle wait elapses: resolve the target,
// compute its offset, and start the animation.
func (c *Controller) begin(op *Operation) {
	c.mu.Lock()
	if op.state != StatePending || c.current != op {
		c.mu.Unlock()
		return
	}
	op.cancelSettle = nil

	offset, resolved, ok := c.computeTargetLocked(op, true)
	if !ok {
		// Nothing materialized (or nothing to scroll). Benign no-op.
		op.noop = true
		c.finishLocked(op)
		c.mu.Unlock()
		log.Debug(log.CatSeq, "no usable target", "version", op.version, "index", op.index)
		return
	}
	op.resolved = resolved
	c.animateLocked(op, offset)
}

// animateLocked starts (or skips) the animation toward offset and hands
// off to the trailing settle. Called with c.mu held; releases it.
func (c *Controller) animateLocked(op *Operation, offset float64) {
	if math.Abs(offset-c.vp.ScrollOffset()) < offsetEpsilon {
		// Already effectively there. Still hold the trailing settle so a
		// shifted target gets one corrective pass.
		c.mu.Unlock()
		c.awaitTrailing(op)
		return
	}

	op.state = StateAnimating
	done := c.vp.AnimateTo(offset, op.params.duration, op.params.curve)
	version := op.version
	c.mu.Unlock()

	log.Debug(log.CatSeq, "animating", "version", version, "offset", offset)
	go func() {
		<-done
		c.awaitTrailing(op)
	}()
}

// awaitTrailing holds the operation for its trailing settle passes after
// the animation, absorbing any re-layout caused by items materialized
// during the scroll.
func (c *Controller) awaitTrailing(op *Operation) {
	c.mu.Lock()
	if op.state.terminal() || c.current != op {
		c.mu.Unlock()
		return
	}
	layout := c.layout
	p := op.params
	c.mu.Unlock()

	cancel := layout.AfterSettle(p.maxWaitPasses, p.trailingPasses, func() { c.finalize(op) })
	c.attachCancel(op, cancel)
}

// finalize re-resolves the target after the trailing settle. If the settle
// period revealed the target shifted, common for estimated targets whose
// exact offset only became knowable once they materialized, the cycle
// re-runs once; otherwise the operation completes and notifies.
func (c *Controller) finalize(op *Operation) {
	c.mu.Lock()
	if op.state.terminal() || c.current != op {
		c.mu.Unlock()
		return
	}
	op.cancelSettle = nil

	if !op.noop {
		if offset, resolved, ok := c.computeTargetLocked(op, false); ok {
			op.resolved = resolved
			if !op.reran && math.Abs(offset-c.vp.ScrollOffset()) >= offsetEpsilon {
				op.reran = true
				log.Debug(log.CatSeq, "target shifted, re-running", "version", op.version, "offset", offset)
				c.animateLocked(op, offset)
				return
			}
		}
	}

	c.finishLocked(op)
	notify := !op.noop && op.resolved >= 0
	resolved := op.resolved
	version := op.version
	cb := c.onScrolledTo
	c.mu.Unlock()

	if !notify {
		return
	}
	log.Debug(log.CatSeq, "completed", "version", version, "resolved", resolved)
	if cb != nil {
		cb(resolved)
	}
	c.hub.Publish(ScrolledToEvent{Index: resolved, Version: version})
}

// computeTargetLocked resolves op's requested index against the registry
// and converts it to an offset. initial distinguishes the first resolution
// (empty registry → no-op) from mid-flight re-resolution (empty registry →
// pure estimation, since the scroll is already underway). Called with c.mu
// held.
func (c *Controller) computeTargetLocked(op *Operation, initial bool) (offset float64, resolved int, ok bool) {
	vm := snapshotViewport(c.vp)
	n := op.params.itemCount
	if n <= 0 {
		n = c.itemCount
	}

	resolved, found := c.reg.resolveNearest(op.index)
	if !found {
		if initial {
			return 0, -1, false
		}
		offset, ok = computeOffset(vm, op.index, -1, nil, op.params.alignment, n)
		return offset, op.resolved, ok
	}

	h := c.reg.handleAt(resolved)
	offset, ok = computeOffset(vm, op.index, resolved, h, op.params.alignment, n)
	return offset, resolved, ok
}

// finishLocked marks op completed and releases it as the current
// operation. Called with c.mu held.
func (c *Controller) finishLocked(op *Operation) {
	op.state = StateCompleted
	close(op.done)
	if c.current == op {
		c.current = nil
	}
}

// supersedeLocked terminates a stale operation. Its animation may keep
// running in the viewport, but every later checkpoint discards its
// results. Called with c.mu held.
func (c *Controller) supersedeLocked(op *Operation) {
	if op.state.terminal() {
		return
	}
	op.state = StateSuperseded
	if op.cancelSettle != nil {
		op.cancelSettle()
		op.cancelSettle = nil
	}
	close(op.done)
	if c.current == op {
		c.current = nil
	}
	log.Debug(log.CatSeq, "superseded", "version", op.version, "index", op.index)
}

// attachCancel stores a settle-cancel func on a still-live operation, or
// invokes it immediately when the operation already terminated in the
// window between scheduling and attachment.
func (c *Controller) attachCancel(op *Operation, cancel func()) {
	c.mu.Lock()
	if op.state.terminal() || c.current != op {
		c.mu.Unlock()
		cancel()
		return
	}
	op.cancelSettle = cancel
	c.mu.Unlock()
}
