package scrollto

// resolveNearest finds the materialized index closest in scan order to
// desired:
//
//  1. nothing materialized → not found
//  2. desired itself materialized → desired (fast path, no scan)
//  3. clamp desired into [lowest, highest] materialized
//  4. clamped index materialized → clamped
//  5. scan strictly downward to the lowest materialized index
//  6. scan strictly upward to the highest
//
// The downward-then-upward order deliberately prefers the lower neighbor on
// ties: a scroll that lands slightly short reads better than one that
// overshoots past the requested item.
func (r *registry) resolveNearest(desired int) (int, bool) {
	lo, hi, ok := r.materializedBounds()
	if !ok {
		return 0, false
	}
	if r.materializedAt(desired) {
		return desired, true
	}

	clamped := desired
	if clamped < lo {
		clamped = lo
	}
	if clamped > hi {
		clamped = hi
	}
	if r.materializedAt(clamped) {
		return clamped, true
	}

	for i := clamped - 1; i >= lo; i-- {
		if r.materializedAt(i) {
			return i, true
		}
	}
	for i := clamped + 1; i <= hi; i++ {
		if r.materializedAt(i) {
			return i, true
		}
	}
	return 0, false
}
