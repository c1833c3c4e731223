package viewport

import "testing"

func TestClampZoom(t *testing.T) {
	tests := []struct {
		proposed, min, want float64
	}{
		{100, 134, 134},
		{150, 134, 150},
		{300, 100, 300},
		{301, 100, 300},
		{-20, 100, 100},
	}
	for _, tt := range tests {
		if got := ClampZoom(tt.proposed, tt.min); got != tt.want {
			t.Errorf("ClampZoom(%v, %v) = %v, want %v", tt.proposed, tt.min, got, tt.want)
		}
	}
}

func TestClampPan(t *testing.T) {
	tests := []struct {
		proposed, overflow, want float64
	}{
		{50, 10, 50},
		{150, 10, 100},
		{-150, 10, -100},
		{50, 0, 0},
		{-80, 0, 0},
	}
	for _, tt := range tests {
		if got := ClampPan(tt.proposed, tt.overflow); got != tt.want {
			t.Errorf("ClampPan(%v, %v) = %v, want %v", tt.proposed, tt.overflow, got, tt.want)
		}
	}
}

func TestClampIdempotent(t *testing.T) {
	values := []float64{-1000, -100, -37.6, -0.5, 0, 0.5, 12.4, 99.9, 100, 134, 250, 300, 301, 1e6}
	for _, x := range values {
		for _, m := range []float64{100, 134, 250, 300} {
			once := ClampZoom(x, m)
			if twice := ClampZoom(once, m); twice != once {
				t.Errorf("ClampZoom not idempotent for (%v,%v): %v then %v", x, m, once, twice)
			}
		}
		for _, o := range []float64{0, 0.1, 400} {
			once := ClampPan(x, o)
			if twice := ClampPan(once, o); twice != once {
				t.Errorf("ClampPan not idempotent for (%v,%v): %v then %v", x, o, once, twice)
			}
		}
		once := ClampOverlay(x)
		if twice := ClampOverlay(once); twice != once || once < 0 || once > OverlayMax {
			t.Errorf("ClampOverlay(%v) = %v then %v", x, once, twice)
		}
	}
}

func TestPanDelta(t *testing.T) {
	tests := []struct {
		pixels, overflow, want float64
	}{
		{100, 400, 50},
		{-200, 400, -100},
		{30, 0, 0},
		{10, 20, 100},
	}
	for _, tt := range tests {
		if got := PanDelta(tt.pixels, tt.overflow); got != tt.want {
			t.Errorf("PanDelta(%v, %v) = %v, want %v", tt.pixels, tt.overflow, got, tt.want)
		}
	}
}
