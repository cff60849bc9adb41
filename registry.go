package scrollto

// registry is the sparse LogicalIndex → handle table. Slots exist for every
// index up to the highest ever registered that is still plausibly live;
// trailing empty slots are pruned on unregister so the backing storage is
// bounded by the highest surviving index.
//
// The registry never owns item render state. It only holds handles, and a
// handle whose geometry is not currently retrievable counts as absent for
// every read path.
type registry struct {
	slots []GeometryProvider
}

// register stores h at index, overwriting any previous handle there.
// Negative indices are ignored.
func (r *registry) register(index int, h GeometryProvider) {
	if index < 0 || h == nil {
		return
	}
	if index >= len(r.slots) {
		grown := make([]GeometryProvider, index+1)
		copy(grown, r.slots)
		r.slots = grown
	}
	r.slots[index] = h
}

// reassign moves h from oldIndex to newIndex. The old slot is cleared only
// when it currently holds exactly h, so a handle that was already displaced
// by a newer registration cannot clobber it. Pass oldIndex < 0 when the
// handle had no previous position.
func (r *registry) reassign(oldIndex, newIndex int, h GeometryProvider) {
	if oldIndex >= 0 && oldIndex < len(r.slots) && r.slots[oldIndex] == h {
		r.slots[oldIndex] = nil
	}
	r.register(newIndex, h)
}

// unregister locates h by identity, clears its slot, and prunes trailing
// empty slots.
func (r *registry) unregister(h GeometryProvider) {
	for i, s := range r.slots {
		if s == h {
			r.slots[i] = nil
			break
		}
	}
	r.prune()
}

func (r *registry) prune() {
	n := len(r.slots)
	for n > 0 && r.slots[n-1] == nil {
		n--
	}
	r.slots = r.slots[:n]
}

// size reports the current backing storage length, which after pruning is
// the highest registered index plus one.
func (r *registry) size() int { return len(r.slots) }

// handleAt returns the handle stored at index, nil when the slot is empty
// or out of range.
func (r *registry) handleAt(index int) GeometryProvider {
	if index < 0 || index >= len(r.slots) {
		return nil
	}
	return r.slots[index]
}

// materializedAt reports whether index holds a handle whose geometry is
// retrievable right now. A registered handle is necessary but not
// sufficient: recycled-out rows keep their slot yet read as absent.
func (r *registry) materializedAt(index int) bool {
	h := r.handleAt(index)
	if h == nil || !h.Retrievable() {
		return false
	}
	_, ok := h.RelativeToViewport()
	return ok
}

// materializedBounds returns the lowest and highest materialized indices.
// ok is false when nothing is materialized.
func (r *registry) materializedBounds() (lo, hi int, ok bool) {
	lo, hi = -1, -1
	for i := range r.slots {
		if !r.materializedAt(i) {
			continue
		}
		if lo < 0 {
			lo = i
		}
		hi = i
	}
	return lo, hi, lo >= 0
}

// materializedIndices returns the ascending set of currently materialized
// indices.
func (r *registry) materializedIndices() []int {
	var out []int
	for i := range r.slots {
		if r.materializedAt(i) {
			out = append(out, i)
		}
	}
	return out
}
