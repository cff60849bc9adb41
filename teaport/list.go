// Package teaport is the Bubble Tea adapter for scrollto. It provides a
// virtualized list widget that renders only the visible rows, recycles
// row handles across logical indices as the window moves, and implements
// the scrollto.Viewport and scrollto.PostLayout collaborators on top of
// frame ticks, so both declarative and imperative index targeting work
// against items that have never been rendered.
package teaport

import (
	"fmt"
	"math"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/reflow/truncate"
	gocache "github.com/patrickmn/go-cache"

	"github.com/kvisser/scrollto"
	"github.com/kvisser/scrollto/internal/log"
)

const (
	defaultEstimatedHeight = 1
	defaultOverscan        = 10
	defaultCacheTTL        = 30 * time.Second
	cacheCleanupInterval   = time.Minute
	frameInterval          = time.Second / 30
)

// lastID hands out a unique id per List so frame ticks of coexisting
// lists do not cross-trigger.
var lastID int64

// frameMsg drives animation and settle bookkeeping for one List.
type frameMsg struct {
	id int64
	at time.Time
}

// ItemRenderer renders the item at a logical index. The result may span
// multiple lines; its line count is the item's measured height.
// Implementations must not call back into the List.
type ItemRenderer interface {
	RenderItem(index, width int) string
}

// RenderFunc adapts a plain function to ItemRenderer.
type RenderFunc func(index, width int) string

func (f RenderFunc) RenderItem(index, width int) string { return f(index, width) }

// rowExtent is one item's height along the scroll axis, in lines.
type rowExtent struct {
	lines    int
	measured bool
}

// List is a virtualized scrolling list. Only the rows inside the visible
// window (plus an overscan band) are rendered and registered with the
// scroll controller; everything else exists as an estimated height.
//
// All mutable state sits behind mu because the controller's animation and
// settle completions call back in from command goroutines. Lock order is
// always Controller before List; List methods therefore never call the
// controller while holding mu.
type List struct {
	mu sync.Mutex

	id       int64
	renderer ItemRenderer
	ctrl     *scrollto.Controller
	ctrlOpts []scrollto.Option

	count         int
	width, height int
	offset        float64

	rows       []rowExtent
	totalLines int
	estimate   int
	overscan   int

	active  map[int]*rowHandle
	anim    *animation
	settles []*settleEntry

	lastContentHeight int
	activeOp          *scrollto.Operation
	target            int
	hasTarget         bool

	cache    *gocache.Cache
	cacheTTL time.Duration
	keymap   KeyMap
	styles   Styles
}

// New creates a list over count logical items rendered by renderer.
func New(renderer ItemRenderer, count int, opts ...ListOption) *List {
	if count < 0 {
		count = 0
	}
	l := &List{
		id:       atomic.AddInt64(&lastID, 1),
		renderer: renderer,
		count:    count,
		estimate: defaultEstimatedHeight,
		overscan: defaultOverscan,
		active:   make(map[int]*rowHandle),
		cacheTTL: defaultCacheTTL,
		keymap:   DefaultKeyMap(),
		styles:   DefaultStyles(),
	}
	for _, opt := range opts {
		opt(l)
	}
	l.cache = gocache.New(l.cacheTTL, cacheCleanupInterval)
	l.rows = make([]rowExtent, count)
	for i := range l.rows {
		l.rows[i] = rowExtent{lines: l.estimate}
	}
	l.totalLines = count * l.estimate

	ctrlOpts := append([]scrollto.Option{scrollto.WithItemCount(count)}, l.ctrlOpts...)
	l.ctrl = scrollto.New(l, l, ctrlOpts...)
	return l
}

// Controller returns the scroll controller that owns this list's offset.
// Prefer ScrollTo / SetTarget, which keep the frame loop running; go
// through the controller directly only for registration inspection.
func (l *List) Controller() *scrollto.Controller { return l.ctrl }

// Init implements the Bubble Tea component convention. The list has no
// startup work.
func (l *List) Init() tea.Cmd { return nil }

// SetSize updates the viewport dimensions. Width changes invalidate the
// render cache since rendering depends on width.
func (l *List) SetSize(width, height int) {
	l.mu.Lock()
	if width != l.width {
		l.cache.Flush()
		for i := range l.rows {
			l.rows[i].measured = false
		}
	}
	l.width, l.height = width, height
	l.clampOffsetLocked()
	l.mu.Unlock()
	l.syncWindow()
}

// SetItemCount changes the logical length of the list. Growing assumes
// estimated heights for the new tail; shrinking drops rows, clamps the
// offset, and lets the registry prune handles past the new end.
func (l *List) SetItemCount(n int) {
	if n < 0 {
		n = 0
	}
	l.mu.Lock()
	switch {
	case n < l.count:
		for i := n; i < l.count; i++ {
			l.totalLines -= l.rows[i].lines
		}
		l.rows = l.rows[:n]
	case n > l.count:
		for i := l.count; i < n; i++ {
			l.rows = append(l.rows, rowExtent{lines: l.estimate})
			l.totalLines += l.estimate
		}
	}
	l.count = n
	l.clampOffsetLocked()
	ctrl := l.ctrl
	l.mu.Unlock()

	ctrl.SetItemCount(n)
	l.syncWindow()
	log.Debug(log.CatPort, "item count changed", "count", n)
}

// Count returns the logical length of the list.
func (l *List) Count() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.count
}

// Invalidate drops every cached row rendering and all measured heights,
// for example after a theme change.
func (l *List) Invalidate() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.cache.Flush()
	for i := range l.rows {
		l.rows[i].measured = false
	}
}

// InvalidateItem drops one item's cached rendering so the next view pass
// re-renders and re-measures it.
func (l *List) InvalidateItem(index int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if index >= 0 && index < l.count {
		l.cache.Delete(l.cacheKeyLocked(index))
	}
}

// ScrollTo requests an animated scroll to the given logical index. The
// returned command keeps the frame loop running until the operation
// reaches a terminal state; always dispatch it.
func (l *List) ScrollTo(index int, opts ...scrollto.ScrollOption) (*scrollto.Operation, tea.Cmd) {
	op := l.ctrl.ScrollToIndex(index, opts...)
	l.mu.Lock()
	l.activeOp = op
	l.mu.Unlock()
	return op, l.tick()
}

// SetTarget declaratively targets a logical index: the scroll is issued
// only when the target actually changes, so re-renders with an unchanged
// target do not fight an in-flight scroll. Use Retarget to force a
// re-scroll to an equal index.
func (l *List) SetTarget(index int) tea.Cmd {
	l.mu.Lock()
	if l.hasTarget && l.target == index {
		l.mu.Unlock()
		return nil
	}
	l.target = index
	l.hasTarget = true
	l.mu.Unlock()

	_, cmd := l.ScrollTo(index)
	return cmd
}

// Retarget issues a scroll to index even when it equals the current
// target.
func (l *List) Retarget(index int) tea.Cmd {
	l.mu.Lock()
	l.target = index
	l.hasTarget = true
	l.mu.Unlock()

	_, cmd := l.ScrollTo(index)
	return cmd
}

// ClearTarget forgets the declarative target without scrolling.
func (l *List) ClearTarget() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.hasTarget = false
}

// Update handles frame ticks and key input. Call it from the parent
// model's Update and dispatch the returned command.
func (l *List) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case frameMsg:
		if msg.id != l.id {
			return nil
		}
		return l.advanceFrame(msg.at)
	case tea.KeyMsg:
		return l.handleKey(msg)
	}
	return nil
}

// ScrollPercent returns the scroll position as a fraction in [0, 1].
func (l *List) ScrollPercent() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	maxOffset := l.maxScrollLocked()
	if maxOffset <= 0 {
		return 0
	}
	return l.offset / maxOffset
}

// AtTop reports whether the list is scrolled to the very start.
func (l *List) AtTop() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.offset <= 0
}

// AtBottom reports whether the list is scrolled to the very end.
func (l *List) AtBottom() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.offset >= l.maxScrollLocked()
}

// Dispose abandons any in-flight scroll and detaches the controller.
func (l *List) Dispose() {
	l.ctrl.Dispose()
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.anim != nil {
		close(l.anim.done)
		l.anim = nil
	}
	l.settles = nil
	l.activeOp = nil
}

// View renders the visible rows, then pre-renders the overscan band so
// those rows carry measured heights before they scroll into view.
func (l *List) View() string {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.width <= 0 || l.height <= 0 {
		return ""
	}

	lineOff := l.lineOffsetLocked()
	first, top := l.firstItemAtLocked(lineOff)
	skip := lineOff - top

	var lines []string
	next := first
	for i := first; i < l.count && len(lines) < skip+l.height; i++ {
		lines = append(lines, l.renderRowLocked(i)...)
		next = i + 1
	}
	if skip > len(lines) {
		skip = len(lines)
	}
	visible := lines[skip:]
	if len(visible) > l.height {
		visible = visible[:l.height]
	}

	out := make([]string, l.height)
	for i := range out {
		ln := ""
		if i < len(visible) {
			ln = visible[i]
		}
		if pad := l.width - ansi.StringWidth(ln); pad > 0 {
			ln += strings.Repeat(" ", pad)
		}
		out[i] = ln
	}

	// Warm the overscan band. renderRowLocked caches and measures.
	start, end := l.windowLocked()
	for i := start; i < first && i < l.count; i++ {
		l.renderRowLocked(i)
	}
	for i := next; i < end; i++ {
		l.renderRowLocked(i)
	}

	return l.styles.Base.Render(strings.Join(out, "\n"))
}

// renderRowLocked renders one item through the cache and records its
// measured height. Called with mu held.
func (l *List) renderRowLocked(index int) []string {
	key := l.cacheKeyLocked(index)
	if v, ok := l.cache.Get(key); ok {
		return v.([]string)
	}

	s := strings.TrimRight(l.renderer.RenderItem(index, l.width), "\n")
	raw := strings.Split(s, "\n")
	rendered := make([]string, len(raw))
	for i, ln := range raw {
		rendered[i] = truncate.String(ln, uint(l.width))
	}
	l.cache.Set(key, rendered, gocache.DefaultExpiration)
	l.measureLocked(index, len(rendered))
	return rendered
}

func (l *List) cacheKeyLocked(index int) string {
	return fmt.Sprintf("%d@%d", index, l.width)
}

// measureLocked records an item's real height, keeping the running
// content total current.
func (l *List) measureLocked(index, lines int) {
	if index < 0 || index >= len(l.rows) || lines < 1 {
		return
	}
	if l.rows[index].lines != lines {
		l.totalLines += lines - l.rows[index].lines
		l.rows[index].lines = lines
	}
	l.rows[index].measured = true
}

// lineOffsetLocked returns the whole-line scroll offset.
func (l *List) lineOffsetLocked() int {
	off := int(math.Round(l.offset))
	if off < 0 {
		off = 0
	}
	if m := int(l.maxScrollLocked()); off > m {
		off = m
	}
	return off
}

// firstItemAtLocked finds the first item overlapping the given line
// offset, returning its index and top line.
func (l *List) firstItemAtLocked(lineOff int) (index, top int) {
	for index < l.count && top+l.rows[index].lines <= lineOff {
		top += l.rows[index].lines
		index++
	}
	return index, top
}

// topOfLocked returns the content line at which item index begins.
func (l *List) topOfLocked(index int) int {
	top := 0
	for i := 0; i < index && i < len(l.rows); i++ {
		top += l.rows[i].lines
	}
	return top
}

// windowLocked returns the half-open materialized index range: the
// visible items extended by the overscan band on both sides.
func (l *List) windowLocked() (start, end int) {
	if l.count == 0 || l.height <= 0 {
		return 0, 0
	}
	lineOff := l.lineOffsetLocked()
	first, top := l.firstItemAtLocked(lineOff)
	end = first
	for acc := top; end < l.count && acc < lineOff+l.height; end++ {
		acc += l.rows[end].lines
	}
	start = first - l.overscan
	if start < 0 {
		start = 0
	}
	end += l.overscan
	if end > l.count {
		end = l.count
	}
	return start, end
}

func (l *List) maxScrollLocked() float64 {
	m := l.totalLines - l.height
	if m < 0 {
		m = 0
	}
	return float64(m)
}

func (l *List) clampOffsetLocked() {
	if l.offset < 0 {
		l.offset = 0
	}
	if m := l.maxScrollLocked(); l.offset > m {
		l.offset = m
	}
}

// handleKey applies manual scrolling. Direct input takes the viewport
// over from any in-flight programmatic scroll.
func (l *List) handleKey(msg tea.KeyMsg) tea.Cmd {
	l.mu.Lock()
	var next float64
	switch {
	case keyMatches(msg, l.keymap.Up):
		next = l.offset - 1
	case keyMatches(msg, l.keymap.Down):
		next = l.offset + 1
	case keyMatches(msg, l.keymap.HalfPageUp):
		next = l.offset - float64(l.height)/2
	case keyMatches(msg, l.keymap.HalfPageDown):
		next = l.offset + float64(l.height)/2
	case keyMatches(msg, l.keymap.PageUp):
		next = l.offset - float64(l.height)
	case keyMatches(msg, l.keymap.PageDown):
		next = l.offset + float64(l.height)
	case keyMatches(msg, l.keymap.Top):
		next = 0
	case keyMatches(msg, l.keymap.Bottom):
		next = l.maxScrollLocked()
	default:
		l.mu.Unlock()
		return nil
	}
	if l.anim != nil {
		close(l.anim.done)
		l.anim = nil
	}
	l.offset = next
	l.clampOffsetLocked()
	ctrl := l.ctrl
	l.mu.Unlock()

	ctrl.CancelPending()
	l.syncWindow()
	return nil
}

// advanceFrame steps the animation, advances settle bookkeeping, fires
// due callbacks, and re-syncs the materialized window. It reschedules
// itself while any work remains.
func (l *List) advanceFrame(now time.Time) tea.Cmd {
	l.mu.Lock()
	if a := l.anim; a != nil {
		t := 1.0
		if a.dur > 0 {
			t = float64(now.Sub(a.start)) / float64(a.dur)
		}
		if t >= 1 {
			l.offset = a.to
			close(a.done)
			l.anim = nil
		} else {
			p := t
			if a.curve != nil {
				p = a.curve(t)
			}
			l.offset = a.from + p*(a.to-a.from)
		}
		l.clampOffsetLocked()
	}

	settled := l.totalLines == l.lastContentHeight
	l.lastContentHeight = l.totalLines

	var due []func()
	kept := l.settles[:0]
	for _, e := range l.settles {
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
	l.settles = kept

	if l.activeOp != nil {
		select {
		case <-l.activeOp.Done():
			l.activeOp = nil
		default:
		}
	}
	l.mu.Unlock()

	for _, fn := range due {
		fn()
	}
	l.syncWindow()

	if l.hasWork() {
		return l.tick()
	}
	return nil
}

// hasWork reports whether frames must keep flowing: an animation is
// running, settle callbacks are queued, or a scroll operation is live.
func (l *List) hasWork() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.anim != nil || len(l.settles) > 0 {
		return true
	}
	if l.activeOp != nil {
		select {
		case <-l.activeOp.Done():
		default:
			return true
		}
	}
	return false
}

func (l *List) tick() tea.Cmd {
	id := l.id
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg { return frameMsg{id: id, at: t} })
}

// syncWindow reconciles the registered row handles with the current
// materialized window: rows scrolled out are recycled for rows scrolled
// in (reassign), fresh rows register, and leftovers unregister.
func (l *List) syncWindow() {
	l.mu.Lock()
	if l.ctrl == nil {
		l.mu.Unlock()
		return
	}
	start, end := l.windowLocked()

	type placement struct {
		h        *rowHandle
		old, idx int
	}
	var freed []*rowHandle
	for idx, h := range l.active {
		if idx >= start && idx < end {
			continue
		}
		delete(l.active, idx)
		freed = append(freed, h)
	}

	var registers, reassigns []placement
	for idx := start; idx < end; idx++ {
		if _, ok := l.active[idx]; ok {
			continue
		}
		if n := len(freed); n > 0 {
			h := freed[n-1]
			freed = freed[:n-1]
			old := h.index
			h.index = idx
			l.active[idx] = h
			reassigns = append(reassigns, placement{h: h, old: old, idx: idx})
		} else {
			h := &rowHandle{list: l, index: idx}
			l.active[idx] = h
			registers = append(registers, placement{h: h, idx: idx})
		}
	}
	unregs := freed
	for _, h := range unregs {
		h.index = -1
	}
	ctrl := l.ctrl
	l.mu.Unlock()

	for _, p := range registers {
		ctrl.RegisterItem(p.idx, p.h)
	}
	for _, p := range reassigns {
		ctrl.ReassignItem(p.old, p.idx, p.h)
	}
	for _, h := range unregs {
		ctrl.UnregisterItem(h)
	}
}
