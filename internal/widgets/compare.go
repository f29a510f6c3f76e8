package widgets

const DefaultComparePosition = 50.0

// ClampPosition bounds a slider position to [0,100] percent.
func ClampPosition(pct float64) float64 {
	switch {
	case pct != pct:
		return DefaultComparePosition
	case pct < 0:
		return 0
	case pct > 100:
		return 100
	}
	return pct
}

// PositionFromPointer converts a pointer x coordinate inside a container
// spanning [left, left+width) into a clamped slider position.
func PositionFromPointer(x, left, width float64) float64 {
	if width <= 0 {
		return DefaultComparePosition
	}
	return ClampPosition((x - left) / width * 100)
}

// ShowSlider reports whether a before/after slider applies. Without an
// original image only the generated one is shown.
func ShowSlider(originalURL string) bool {
	return originalURL != ""
}
