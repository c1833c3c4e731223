package dbo

import (
	"time"

	"github.com/ignisVeneficus/bistro/data"
	"github.com/ignisVeneficus/bistro/logging"
	"github.com/rs/zerolog"
)

// ViewportRow is one device variant; a missing mobile row means mobile follows desktop.
type ViewportRow struct {
	Device  data.Device
	Zoom    float64
	PanX    float64
	PanY    float64
	Overlay float64
}

func (r ViewportRow) Params() data.Params {
	return data.Params{Zoom: r.Zoom, PanX: r.PanX, PanY: r.PanY, Overlay: r.Overlay}
}

type ImageViewport struct {
	Key       string
	SourceURL string
	NaturalW  *uint32
	NaturalH  *uint32
	Rows      []ViewportRow
	UpdatedAt time.Time
}

func (iv *ImageViewport) MarshalZerologObjectWithLevel(e *zerolog.Event, level zerolog.Level) {
	if level <= zerolog.DebugLevel {
		e.Str("key", iv.Key).
			Str("source", iv.SourceURL).
			Int("rows", len(iv.Rows))
	}
	if level == zerolog.TraceLevel {
		logging.Uint32If(e, "natural_w", iv.NaturalW)
		logging.Uint32If(e, "natural_h", iv.NaturalH)
		e.Time("updated_at", iv.UpdatedAt)
	}
}

// Natural reports the stored natural size, if both dimensions are known.
func (iv ImageViewport) Natural() (w, h uint32, ok bool) {
	if iv.NaturalW == nil || iv.NaturalH == nil || *iv.NaturalW == 0 || *iv.NaturalH == 0 {
		return 0, 0, false
	}
	return *iv.NaturalW, *iv.NaturalH, true
}

func (iv ImageViewport) ToVariants() data.Variants {
	v := data.DefaultVariants()
	for _, r := range iv.Rows {
		v.Set(r.Device, r.Params())
	}
	return v
}

func FromVariants(key, source string, v data.Variants) ImageViewport {
	iv := ImageViewport{Key: key, SourceURL: source}
	for _, d := range data.Devices {
		if !v.Customized(d) {
			continue
		}
		p := v.Get(d)
		iv.Rows = append(iv.Rows, ViewportRow{Device: d, Zoom: p.Zoom, PanX: p.PanX, PanY: p.PanY, Overlay: p.Overlay})
	}
	return iv
}

// SetNatural stores w x h; zero clears it.
func (iv *ImageViewport) SetNatural(w, h uint32) {
	if w == 0 || h == 0 {
		iv.NaturalW, iv.NaturalH = nil, nil
		return
	}
	iv.NaturalW, iv.NaturalH = &w, &h
}
