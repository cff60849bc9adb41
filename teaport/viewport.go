package teaport

import (
	"math"
	"time"

	"github.com/kvisser/scrollto"
)

// animation is one in-flight offset transition, stepped on frame ticks.
type animation struct {
	from, to float64
	start    time.Time
	dur      time.Duration
	curve    scrollto.Curve
	done     chan struct{}
}

// settleEntry is one deferred callback waiting for layout to stop
// changing. wait is the bounded budget of unsettled passes to sit
// through; trailing is the number of settled passes to hold afterwards.
type settleEntry struct {
	fn        func()
	wait      int
	trailing  int
	cancelled bool
}

// ScrollOffset implements scrollto.Viewport.
func (l *List) ScrollOffset() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.offset
}

// MaxScrollExtent implements scrollto.Viewport.
func (l *List) MaxScrollExtent() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.maxScrollLocked()
}

// ViewportExtent implements scrollto.Viewport.
func (l *List) ViewportExtent() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return float64(l.height)
}

// AnimateTo implements scrollto.Viewport. The transition is advanced by
// the frame loop; the returned channel closes when it lands or a newer
// transition (or manual input) replaces it. A zero duration, or a target
// already within half a line, jumps and completes immediately.
func (l *List) AnimateTo(offset float64, d time.Duration, curve scrollto.Curve) <-chan struct{} {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.anim != nil {
		close(l.anim.done)
		l.anim = nil
	}

	target := offset
	if target < 0 {
		target = 0
	}
	if m := l.maxScrollLocked(); target > m {
		target = m
	}

	done := make(chan struct{})
	if d <= 0 || math.Abs(target-l.offset) < 0.5 {
		l.offset = target
		close(done)
		return done
	}

	l.anim = &animation{
		from:  l.offset,
		to:    target,
		start: time.Now(),
		dur:   d,
		curve: curve,
		done:  done,
	}
	return done
}

// JumpTo implements scrollto.Viewport. The materialized window catches up
// on the next frame or update.
func (l *List) JumpTo(offset float64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.anim != nil {
		close(l.anim.done)
		l.anim = nil
	}
	l.offset = offset
	l.clampOffsetLocked()
}

// AfterSettle implements scrollto.PostLayout. Callbacks run during frame
// processing, never from inside this call.
func (l *List) AfterSettle(maxWaitPasses, trailingPasses int, fn func()) (cancel func()) {
	if maxWaitPasses < 0 {
		maxWaitPasses = 0
	}
	if trailingPasses < 0 {
		trailingPasses = 0
	}
	e := &settleEntry{fn: fn, wait: maxWaitPasses, trailing: trailingPasses}
	l.mu.Lock()
	l.settles = append(l.settles, e)
	l.mu.Unlock()

	return func() {
		l.mu.Lock()
		e.cancelled = true
		l.mu.Unlock()
	}
}
