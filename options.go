package scrollto

import "time"

// Defaults applied when neither the controller nor the call site override
// them.
const (
	DefaultAlignment      = 0.0
	DefaultDuration       = 300 * time.Millisecond
	DefaultMaxWaitPasses  = 15
	DefaultTrailingPasses = 12
)

// scrollParams are the fully resolved parameters of one operation.
type scrollParams struct {
	itemCount      int
	alignment      float64
	duration       time.Duration
	curve          Curve
	maxWaitPasses  int
	trailingPasses int
}

// Option configures a Controller at construction time.
type Option func(*Controller)

// WithItemCount sets the logical length of the list. It can be changed
// later with SetItemCount.
func WithItemCount(n int) Option {
	return func(c *Controller) { c.itemCount = n }
}

// WithDefaultAlignment sets the alignment used when a scroll request does
// not specify one. 0 places the item at the viewport start, 1 at the end.
func WithDefaultAlignment(a float64) Option {
	return func(c *Controller) { c.defaults.alignment = clamp01(a) }
}

// WithDefaultDuration sets the animation duration used when a scroll
// request does not specify one. Zero or negative means jump immediately.
func WithDefaultDuration(d time.Duration) Option {
	return func(c *Controller) { c.defaults.duration = d }
}

// WithDefaultCurve sets the easing curve used when a scroll request does
// not specify one.
func WithDefaultCurve(curve Curve) Option {
	return func(c *Controller) {
		if curve != nil {
			c.defaults.curve = curve
		}
	}
}

// WithSettlePasses overrides how many layout passes the controller waits
// for before trusting geometry (maxWait) and how many it holds after the
// animation before finalizing (trailing).
func WithSettlePasses(maxWait, trailing int) Option {
	return func(c *Controller) {
		if maxWait >= 0 {
			c.defaults.maxWaitPasses = maxWait
		}
		if trailing >= 0 {
			c.defaults.trailingPasses = trailing
		}
	}
}

// WithOnScrolledTo registers a callback fired with the resolved logical
// index each time an operation completes as the authoritative one.
func WithOnScrolledTo(fn func(index int)) Option {
	return func(c *Controller) { c.onScrolledTo = fn }
}

// ScrollOption overrides one parameter of a single ScrollToIndex call.
type ScrollOption func(*scrollParams)

// ItemCount overrides the logical list length for this request.
func ItemCount(n int) ScrollOption {
	return func(p *scrollParams) { p.itemCount = n }
}

// Alignment overrides the alignment fraction for this request.
func Alignment(a float64) ScrollOption {
	return func(p *scrollParams) { p.alignment = clamp01(a) }
}

// Duration overrides the animation duration for this request.
func Duration(d time.Duration) ScrollOption {
	return func(p *scrollParams) { p.duration = d }
}

// WithCurve overrides the easing curve for this request.
func WithCurve(curve Curve) ScrollOption {
	return func(p *scrollParams) {
		if curve != nil {
			p.curve = curve
		}
	}
}

// SettlePasses overrides the settle bounds for this request.
func SettlePasses(maxWait, trailing int) ScrollOption {
	return func(p *scrollParams) {
		if maxWait >= 0 {
			p.maxWaitPasses = maxWait
		}
		if trailing >= 0 {
			p.trailingPasses = trailing
		}
	}
}
