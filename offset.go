package scrollto

import "math"

// offsetEpsilon is the smallest offset difference worth animating over.
const offsetEpsilon = 0.5

// viewMetrics is a point-in-time snapshot of the owned viewport's
// geometry, taken once per computation so the math is internally
// consistent even if the viewport moves mid-turn.
type viewMetrics struct {
	offset    float64
	maxExtent float64
	extent    float64
}

func snapshotViewport(vp Viewport) viewMetrics {
	return viewMetrics{
		offset:    vp.ScrollOffset(),
		maxExtent: vp.MaxScrollExtent(),
		extent:    vp.ViewportExtent(),
	}
}

// computeOffset converts a resolved scroll target into a concrete offset.
//
// desired is the requested logical index, already clamped into
// [0, itemCount). resolved is the materialized index the resolver chose,
// or -1 when resolution found nothing and the caller wants a pure
// estimate; h is resolved's handle (nil when resolved < 0).
//
// The first and last logical indices pin to the scroll range ends
// regardless of alignment, so the list edges always sit flush. A
// materialized target uses its measured geometry directly; anything else
// is estimated proportionally against the scrollable extent. All results
// clamp to [0, maxExtent]. ok is false when there is nothing to scroll.
func computeOffset(vm viewMetrics, desired, resolved int, h GeometryProvider, alignment float64, itemCount int) (offset float64, ok bool) {
	if vm.maxExtent <= 0 && vm.extent <= 0 {
		return 0, false
	}
	alignment = clamp01(alignment)

	if desired <= 0 {
		return 0, true
	}
	if itemCount > 0 && desired >= itemCount-1 {
		return vm.maxExtent, true
	}

	if resolved == desired && h != nil {
		if geom, has := h.RelativeToViewport(); has {
			// Place the leading edge at the alignment fraction of the free
			// viewport space. The offset is computed from raw geometry and
			// applied to the owned scrollable only; toolkit "ensure visible"
			// helpers may scroll an ancestor instead.
			target := vm.offset + geom.Leading - alignment*(vm.extent-geom.Size)
			return clampOffset(target, vm.maxExtent), true
		}
		// Geometry vanished between resolution and computation. Fall
		// through to estimation against the same index.
	}

	return estimateOffset(vm, desired, resolved, alignment, itemCount)
}

// estimateOffset approximates an offset for a target with no measured
// geometry, proportionally against the scrollable extent. The estimate
// only needs to land close enough that the post-animation settle pass can
// re-resolve against the items materialized on arrival.
func estimateOffset(vm viewMetrics, desired, resolved int, alignment float64, itemCount int) (float64, bool) {
	if itemCount <= 0 {
		// Without a count there is no ratio to scale by.
		return 0, false
	}
	n := float64(itemCount)
	avg := (vm.maxExtent + vm.extent) / n

	base := resolved
	if base < 0 {
		base = desired
	}
	target := vm.maxExtent*float64(base)/n + float64(desired-base)*avg - alignment*(vm.extent-avg)
	return clampOffset(target, vm.maxExtent), true
}

func clampOffset(v, maxExtent float64) float64 {
	return math.Min(math.Max(v, 0), math.Max(maxExtent, 0))
}
