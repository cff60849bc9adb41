package scrollto

// OperationState tracks one scroll request through its lifecycle.
type OperationState int

const (
	// StatePending means the request is waiting for layout to settle
	// before geometry can be trusted.
	StatePending OperationState = iota

	// StateAnimating means the owned viewport is moving toward the
	// computed offset.
	StateAnimating

	// StateCompleted means the animation and trailing settle finished
	// while this operation was still the newest. A completed operation
	// with a usable target fired its notification; one that found an
	// empty registry completed as a silent no-op.
	StateCompleted

	// StateSuperseded means a newer request was issued first. Whatever
	// this operation's animation eventually does is discarded.
	StateSuperseded
)

func (s OperationState) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateAnimating:
		return "animating"
	case StateCompleted:
		return "completed"
	case StateSuperseded:
		return "superseded"
	default:
		return "unknown"
	}
}

// terminal reports whether the state is final.
func (s OperationState) terminal() bool {
	return s == StateCompleted || s == StateSuperseded
}

// Operation is one scroll request. Only the highest-version operation is
// authoritative; older in-flight operations are superseded the instant a
// newer one is issued.
type Operation struct {
	c       *Controller
	version uint64
	index   int
	params  scrollParams

	// guarded by c.mu
	state        OperationState
	resolved     int
	noop         bool
	reran        bool
	cancelSettle func()

	done chan struct{}
}

// Version returns the operation's position in the total issue order.
func (o *Operation) Version() uint64 { return o.version }

// RequestedIndex returns the logical index the caller asked for, after
// range clamping.
func (o *Operation) RequestedIndex() int { return o.index }

// State returns the operation's current lifecycle state.
func (o *Operation) State() OperationState {
	o.c.mu.Lock()
	defer o.c.mu.Unlock()
	return o.state
}

// ResolvedIndex returns the materialized index the scroll actually
// targeted, or -1 while unresolved (and forever, for no-op completions).
func (o *Operation) ResolvedIndex() int {
	o.c.mu.Lock()
	defer o.c.mu.Unlock()
	return o.resolved
}

// Done returns a channel closed once the operation reaches a terminal
// state, completed or superseded alike.
func (o *Operation) Done() <-chan struct{} { return o.done }
