package scrollto

import (
	"sync"
	"testing"
	"time"
)

// fakeHandle is a GeometryProvider with settable geometry.
type fakeHandle struct {
	mu          sync.Mutex
	geom        ItemGeometry
	retrievable bool
}

func newFakeHandle(leading, size float64) *fakeHandle {
	return &fakeHandle{geom: ItemGeometry{Leading: leading, Size: size}, retrievable: true}
}

func (h *fakeHandle) Retrievable() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.retrievable
}

func (h *fakeHandle) RelativeToViewport() (ItemGeometry, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.retrievable {
		return ItemGeometry{}, false
	}
	return h.geom, true
}

func (h *fakeHandle) setRetrievable(v bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.retrievable = v
}

func (h *fakeHandle) setGeometry(leading, size float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.geom = ItemGeometry{Leading: leading, Size: size}
}

// anchoredHandle is a GeometryProvider pinned to an absolute content
// position on a fakeViewport, so its leading edge tracks the viewport
// offset the way a real materialized row's does.
type anchoredHandle struct {
	mu          sync.Mutex
	vp          *fakeViewport
	top         float64
	size        float64
	retrievable bool
}

func newAnchoredHandle(vp *fakeViewport, top, size float64) *anchoredHandle {
	return &anchoredHandle{vp: vp, top: top, size: size, retrievable: true}
}

func (h *anchoredHandle) Retrievable() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.retrievable
}

func (h *anchoredHandle) RelativeToViewport() (ItemGeometry, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.retrievable {
		return ItemGeometry{}, false
	}
	return ItemGeometry{Leading: h.top - h.vp.ScrollOffset(), Size: h.size}, true
}

func (h *anchoredHandle) setRetrievable(v bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.retrievable = v
}

// fakeViewport records every animation request; completion is test
// driven via finishAnimations.
type fakeViewport struct {
	mu        sync.Mutex
	offset    float64
	maxExtent float64
	extent    float64
	targets   []float64
	pending   []chan struct{}
	jumps     []float64
}

func newFakeViewport(maxExtent, extent float64) *fakeViewport {
	return &fakeViewport{maxExtent: maxExtent, extent: extent}
}

func (v *fakeViewport) ScrollOffset() float64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.offset
}

func (v *fakeViewport) MaxScrollExtent() float64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.maxExtent
}

func (v *fakeViewport) ViewportExtent() float64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.extent
}

func (v *fakeViewport) AnimateTo(offset float64, _ time.Duration, _ Curve) <-chan struct{} {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.targets = append(v.targets, offset)
	ch := make(chan struct{})
	v.pending = append(v.pending, ch)
	return ch
}

func (v *fakeViewport) JumpTo(offset float64) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.offset = offset
	v.jumps = append(v.jumps, offset)
}

// finishAnimations lands every outstanding animation at its target.
func (v *fakeViewport) finishAnimations() {
	v.mu.Lock()
	defer v.mu.Unlock()
	if len(v.targets) > 0 {
		v.offset = v.targets[len(v.targets)-1]
	}
	for _, ch := range v.pending {
		close(ch)
	}
	v.pending = nil
}

func (v *fakeViewport) animationTargets() []float64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	out := make([]float64, len(v.targets))
	copy(out, v.targets)
	return out
}

// fakeLayout is a manually pumped PostLayout: each pass(settled) advances
// every pending entry the way a real layout pass would.
type fakeLayout struct {
	mu      sync.Mutex
	entries []*fakeSettleEntry
}

type fakeSettleEntry struct {
	fn        func()
	wait      int
	trailing  int
	cancelled bool
}

func (f *fakeLayout) AfterSettle(maxWaitPasses, trailingPasses int, fn func()) (cancel func()) {
	e := &fakeSettleEntry{fn: fn, wait: maxWaitPasses, trailing: trailingPasses}
	f.mu.Lock()
	f.entries = append(f.entries, e)
	f.mu.Unlock()
	return func() {
		f.mu.Lock()
		e.cancelled = true
		f.mu.Unlock()
	}
}

func (f *fakeLayout) pass(settled bool) {
	f.mu.Lock()
	var due []func()
	kept := f.entries[:0]
	for _, e := range f.entries {
		if e.cancelled {
			continue
		}
		switch {
		case !settled && e.wait > 0:
			e.wait--
			kept = append(kept, e)
		case e.trailing > 0:
			e.trailing--
			kept = append(kept, e)
		default:
			due = append(due, e.fn)
		}
	}
	f.entries = kept
	f.mu.Unlock()
	for _, fn := range due {
		fn()
	}
}

func (f *fakeLayout) pendingCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, e := range f.entries {
		if !e.cancelled {
			n++
		}
	}
	return n
}

// pumpUntilDone drives settled layout passes and animation completions
// until the operation terminates.
func pumpUntilDone(t *testing.T, f *fakeLayout, v *fakeViewport, op *Operation) {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		select {
		case <-op.Done():
			return
		case <-deadline:
			t.Fatalf("operation v%d never reached a terminal state (%s)", op.Version(), op.State())
		default:
		}
		f.pass(true)
		v.finishAnimations()
		time.Sleep(time.Millisecond)
	}
}

// registryWith builds a registry holding retrievable handles at the given
// indices, each with distinct geometry.
func registryWith(indices ...int) (*registry, map[int]*fakeHandle) {
	r := &registry{}
	handles := make(map[int]*fakeHandle, len(indices))
	for _, i := range indices {
		h := newFakeHandle(float64(i*10), 10)
		r.register(i, h)
		handles[i] = h
	}
	return r, handles
}
