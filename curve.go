package scrollto

// Curve maps normalized animation time t in [0,1] to normalized progress.
// Curves should map 0 to 0 and 1 to 1; intermediate values may overshoot.
type Curve func(t float64) float64

// Linear progresses at constant speed.
func Linear(t float64) float64 { return clamp01(t) }

// EaseOutCubic decelerates toward the target.
func EaseOutCubic(t float64) float64 {
	t = clamp01(t)
	u := 1 - t
	return 1 - u*u*u
}

// EaseInOutCubic accelerates, then decelerates.
func EaseInOutCubic(t float64) float64 {
	t = clamp01(t)
	if t < 0.5 {
		return 4 * t * t * t
	}
	u := -2*t + 2
	return 1 - u*u*u/2
}

// CurveByName returns a named curve for configuration surfaces.
// Unknown names fall back to EaseInOutCubic.
func CurveByName(name string) Curve {
	switch name {
	case "linear":
		return Linear
	case "ease-out":
		return EaseOutCubic
	case "ease-in-out", "":
		return EaseInOutCubic
	default:
		return EaseInOutCubic
	}
}

func clamp01(t float64) float64 {
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}
