package teaport

import (
	"time"

	"github.com/kvisser/scrollto"
)

// ListOption configures a List at construction time.
type ListOption func(*List)

// WithEstimatedHeight sets the height, in lines, assumed for rows that
// have not rendered yet. Closer estimates mean less correction when an
// estimated scroll target materializes.
func WithEstimatedHeight(lines int) ListOption {
	return func(l *List) {
		if lines > 0 {
			l.estimate = lines
		}
	}
}

// WithOverscan sets how many rows beyond each edge of the visible window
// stay materialized for measurement and smoother scrolling.
func WithOverscan(rows int) ListOption {
	return func(l *List) {
		if rows >= 0 {
			l.overscan = rows
		}
	}
}

// WithKeyMap replaces the manual scrolling bindings.
func WithKeyMap(km KeyMap) ListOption {
	return func(l *List) { l.keymap = km }
}

// WithStyles replaces the list's styles.
func WithStyles(s Styles) ListOption {
	return func(l *List) { l.styles = s }
}

// WithCacheTTL sets how long rendered rows stay cached.
func WithCacheTTL(d time.Duration) ListOption {
	return func(l *List) {
		if d > 0 {
			l.cacheTTL = d
		}
	}
}

// WithControllerOptions forwards options to the scroll controller the
// list constructs, such as scrollto.WithDefaultAlignment or
// scrollto.WithOnScrolledTo.
func WithControllerOptions(opts ...scrollto.Option) ListOption {
	return func(l *List) { l.ctrlOpts = append(l.ctrlOpts, opts...) }
}
