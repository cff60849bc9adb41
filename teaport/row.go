package teaport

import "github.com/kvisser/scrollto"

// rowHandle is the geometry handle one materialized row registers with
// the controller. Handles are recycled: when the window moves, a handle
// that scrolled out is reassigned to an incoming logical index instead of
// being torn down, and its index becomes -1 only once it truly leaves the
// pool.
type rowHandle struct {
	list  *List
	index int
}

var _ scrollto.GeometryProvider = (*rowHandle)(nil)

// Retrievable implements scrollto.GeometryProvider. A handle reads as
// absent the moment the window recycles it away from its index, even
// though the registry may still hold its old slot.
func (h *rowHandle) Retrievable() bool {
	h.list.mu.Lock()
	defer h.list.mu.Unlock()
	return h.validLocked()
}

// RelativeToViewport implements scrollto.GeometryProvider. Leading is the
// row's top line relative to the first visible line; Size is its height
// in lines (measured if the row has rendered at the current width,
// estimated otherwise).
func (h *rowHandle) RelativeToViewport() (scrollto.ItemGeometry, bool) {
	h.list.mu.Lock()
	defer h.list.mu.Unlock()
	if !h.validLocked() {
		return scrollto.ItemGeometry{}, false
	}
	l := h.list
	return scrollto.ItemGeometry{
		Leading: float64(l.topOfLocked(h.index)) - l.offset,
		Size:    float64(l.rows[h.index].lines),
	}, true
}

func (h *rowHandle) validLocked() bool {
	return h.index >= 0 && h.index < h.list.count && h.list.active[h.index] == h
}
