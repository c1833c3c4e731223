package viewport

import "math"

const (
	DefaultZoom = 100.0
	MaxZoom     = 300.0
	PanLimit    = 100.0
	OverlayMax  = 70.0
	WheelStep   = 5.0
)

func clamp(v, lo, hi float64) float64 {
	return math.Min(hi, math.Max(lo, v))
}

// ClampZoom bounds a proposed zoom to [minZoom, MaxZoom].
func ClampZoom(proposed, minZoom float64) float64 {
	return math.Min(MaxZoom, math.Max(minZoom, proposed))
}

// ClampPan bounds a proposed pan to [-PanLimit, PanLimit]; without overflow there is nothing to pan.
func ClampPan(proposed, overflow float64) float64 {
	if overflow > 0 {
		return clamp(proposed, -PanLimit, PanLimit)
	}
	return 0
}

func ClampOverlay(proposed float64) float64 {
	return clamp(proposed, 0, OverlayMax)
}

// PanDelta converts a pointer movement in pixels to a pan change in percent of the half overflow.
func PanDelta(pixels, overflow float64) float64 {
	if overflow <= 0 {
		return 0
	}
	return pixels / (overflow / 2) * 100
}
