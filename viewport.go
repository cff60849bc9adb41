package scrollto

import "time"

// ItemGeometry describes a materialized item's extent along the scroll
// axis. Leading is the offset of the item's leading edge from the
// viewport's leading edge; both fields are in the viewport's scroll units
// (lines for a terminal list).
type ItemGeometry struct {
	Leading float64
	Size    float64
}

// GeometryProvider is the handle a materialized item registers with the
// controller. Handles must be comparable by identity (use a pointer type):
// reassignment and unregistration locate entries by ==.
//
// A handle may stop being retrievable at any time without unregistering,
// for example when virtualization recycles its row out of the visible
// window. Resolution treats such a handle as absent.
type GeometryProvider interface {
	// Retrievable reports whether geometry can be read right now.
	Retrievable() bool

	// RelativeToViewport returns the item's current geometry. The second
	// return is false when the geometry cannot be read, regardless of what
	// Retrievable reported earlier in the same turn.
	RelativeToViewport() (ItemGeometry, bool)
}

// Viewport is the one scrollable the controller owns. All offsets are in
// scroll units from the content start; MaxScrollExtent is the largest
// offset that still shows a full viewport of content.
type Viewport interface {
	ScrollOffset() float64
	MaxScrollExtent() float64
	ViewportExtent() float64

	// AnimateTo starts an animated transition toward offset and returns a
	// channel closed when the transition settles or is replaced by a newer
	// one. A zero or negative duration may jump and close the channel
	// before returning.
	AnimateTo(offset float64, d time.Duration, curve Curve) <-chan struct{}

	// JumpTo sets the offset immediately, interrupting any animation.
	JumpTo(offset float64)
}

// PostLayout defers work until the host's layout has settled. fn runs once
// the layout has stopped changing, after waiting at most maxWaitPasses
// layout passes before giving up and running with best-available geometry,
// plus trailingPasses additional passes. The returned cancel func prevents fn
// from running; the underlying wait may still elapse internally.
//
// Implementations must invoke fn asynchronously, never from inside
// AfterSettle itself.
type PostLayout interface {
	AfterSettle(maxWaitPasses, trailingPasses int, fn func()) (cancel func())
}
