// Package viewport places an image inside a fixed frame: cover fit, extra zoom and pan.
//
// All sizes are pixels, zoom and pan are percentages. Zoom 100 means the image width
// matches the frame (or the reference width when that is wider); the height floor is
// raised so the image always covers the frame on both axes.
package viewport

import "math"

type Input struct {
	ContainerW, ContainerH float64
	NaturalW, NaturalH     float64
	Zoom                   float64
	PanX, PanY             float64
	// ReferenceWidth only applies when wider than the container.
	ReferenceWidth float64
}

type Placement struct {
	ImgW          float64 `json:"imgW" yaml:"img_w"`
	ImgH          float64 `json:"imgH" yaml:"img_h"`
	ImgLeft       float64 `json:"imgLeft" yaml:"img_left"`
	ImgTop        float64 `json:"imgTop" yaml:"img_top"`
	OverflowX     float64 `json:"overflowX" yaml:"overflow_x"`
	OverflowY     float64 `json:"overflowY" yaml:"overflow_y"`
	MinZoom       float64 `json:"minZoom" yaml:"min_zoom"`
	EffectiveZoom float64 `json:"effectiveZoom" yaml:"effective_zoom"`
	// PanX, PanY are the pans actually applied, zero on axes without overflow.
	PanX       float64 `json:"panX" yaml:"pan_x"`
	PanY       float64 `json:"panY" yaml:"pan_y"`
	TranslateX float64 `json:"translateX" yaml:"translate_x"`
	TranslateY float64 `json:"translateY" yaml:"translate_y"`
}

// Ready reports whether the placement was computed from measured inputs.
func (p Placement) Ready() bool {
	return p.ImgW > 0 && p.ImgH > 0
}

func degenerate(in Input) bool {
	return in.NaturalW <= 0 || in.NaturalH <= 0 || in.ContainerW <= 0 || in.ContainerH <= 0
}

// MinZoom is the lowest zoom that still covers the frame.
func MinZoom(containerW, containerH, naturalW, naturalH, referenceWidth float64) float64 {
	if degenerate(Input{ContainerW: containerW, ContainerH: containerH, NaturalW: naturalW, NaturalH: naturalH}) {
		return DefaultZoom
	}
	sizeW, baseW, baseH := baseBox(containerW, naturalW, naturalH, referenceWidth)
	return minZoom(sizeW, baseW, baseH, containerH)
}

func baseBox(containerW, naturalW, naturalH, referenceWidth float64) (sizeW, baseW, baseH float64) {
	sizeW = containerW
	if referenceWidth > containerW {
		sizeW = referenceWidth
	}
	baseW = sizeW
	baseH = sizeW * naturalH / naturalW
	return sizeW, baseW, baseH
}

func minZoom(sizeW, baseW, baseH, containerH float64) float64 {
	minZoomX := (sizeW / baseW) * 100
	minZoomY := 100.0
	if baseH < containerH {
		minZoomY = math.Ceil(containerH / baseH * 100)
	}
	return math.Max(minZoomX, minZoomY)
}

// Compute returns the displayed size and position of the image.
// Degenerate input yields the zero placement with MinZoom 100; callers treat it as not ready.
// The stored zoom is never changed here, only floored for display.
func Compute(in Input) Placement {
	if degenerate(in) {
		return Placement{MinZoom: DefaultZoom}
	}

	sizeW, baseW, baseH := baseBox(in.ContainerW, in.NaturalW, in.NaturalH, in.ReferenceWidth)
	mz := minZoom(sizeW, baseW, baseH, in.ContainerH)
	zoom := math.Max(mz, in.Zoom)

	p := Placement{
		MinZoom:       mz,
		EffectiveZoom: zoom,
		ImgW:          baseW * zoom / 100,
		ImgH:          baseH * zoom / 100,
	}
	p.OverflowX = math.Max(0, p.ImgW-in.ContainerW)
	p.OverflowY = math.Max(0, p.ImgH-in.ContainerH)

	p.PanX = ClampPan(in.PanX, p.OverflowX)
	p.PanY = ClampPan(in.PanY, p.OverflowY)
	p.TranslateX = (p.PanX / 100) * (p.OverflowX / 2)
	p.TranslateY = (p.PanY / 100) * (p.OverflowY / 2)

	p.ImgLeft = (in.ContainerW-p.ImgW)/2 + p.TranslateX
	p.ImgTop = (in.ContainerH-p.ImgH)/2 + p.TranslateY
	return p
}
