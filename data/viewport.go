package data

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/ignisVeneficus/bistro/logging"
	"github.com/rs/zerolog"
)

type Device string

const (
	DeviceDesktop Device = "desktop"
	DeviceMobile  Device = "mobile"
)

var Devices = []Device{DeviceDesktop, DeviceMobile}

func ParseDevice(s string) (Device, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(DeviceDesktop):
		return DeviceDesktop, nil
	case string(DeviceMobile):
		return DeviceMobile, nil
	default:
		return "", fmt.Errorf("invalid device: %q", s)
	}
}

// Params is the viewport of one device variant. Zoom, pan and overlay are percentages.
type Params struct {
	Zoom    float64 `json:"zoom" yaml:"zoom"`
	PanX    float64 `json:"panX" yaml:"pan_x"`
	PanY    float64 `json:"panY" yaml:"pan_y"`
	Overlay float64 `json:"overlay" yaml:"overlay"`
}

func DefaultParams() Params {
	return Params{Zoom: 100}
}

// Normalize rounds pan to whole percents, the granularity kept by storage.
func (p Params) Normalize() Params {
	p.PanX = math.Round(p.PanX)
	p.PanY = math.Round(p.PanY)
	return p
}

func (p *Params) MarshalZerologObjectWithLevel(e *zerolog.Event, level zerolog.Level) {
	if level <= zerolog.DebugLevel {
		e.Float64("zoom", p.Zoom).
			Float64("pan_x", p.PanX).
			Float64("pan_y", p.PanY).
			Float64("overlay", p.Overlay)
	}
}

// Variants holds the desktop and mobile viewport of one image.
// A stored record without a mobile row reads mobile from desktop; editing starts from Seeded.
type Variants struct {
	desktop          Params
	mobile           Params
	mobileCustomized bool
}

func NewVariants(desktop Params) Variants {
	return Variants{desktop: desktop}
}

func DefaultVariants() Variants {
	return NewVariants(DefaultParams())
}

// Get returns the params of d, resolving an uncustomized mobile variant to desktop.
func (v Variants) Get(d Device) Params {
	if d == DeviceMobile && v.mobileCustomized {
		return v.mobile
	}
	return v.desktop
}

// Seeded returns v with an uncustomized mobile variant filled in from desktop.
// Afterwards the two variants change independently.
func (v Variants) Seeded() Variants {
	if !v.mobileCustomized {
		v.mobile = v.desktop
		v.mobileCustomized = true
	}
	return v
}

func (v *Variants) Set(d Device, p Params) {
	if d == DeviceMobile {
		v.mobile = p
		v.mobileCustomized = true
		return
	}
	v.desktop = p
}

// Map applies fn to every stored variant, keeping mobile uncustomized when it was.
func (v Variants) Map(fn func(d Device, p Params) Params) Variants {
	out := v
	out.desktop = fn(DeviceDesktop, v.desktop)
	if v.mobileCustomized {
		out.mobile = fn(DeviceMobile, v.mobile)
	}
	return out
}

func (v Variants) Customized(d Device) bool {
	if d == DeviceMobile {
		return v.mobileCustomized
	}
	return true
}

// Reset puts zoom and pan of both variants back to defaults.
// Overlay survives unless resetOverlay is set.
func (v *Variants) Reset(resetOverlay bool) {
	reset := func(p Params) Params {
		n := DefaultParams()
		if !resetOverlay {
			n.Overlay = p.Overlay
		}
		return n
	}
	v.desktop = reset(v.desktop)
	if v.mobileCustomized {
		v.mobile = reset(v.mobile)
	}
}

func (v *Variants) MarshalZerologObjectWithLevel(e *zerolog.Event, level zerolog.Level) {
	if level <= zerolog.DebugLevel {
		d := v.desktop
		e.Object("desktop", logging.WithLevel(level, &d))
		if v.mobileCustomized {
			m := v.mobile
			e.Object("mobile", logging.WithLevel(level, &m))
		}
	}
}

// Equal reports whether both variants carry identical values, including the mobile customization state.
func (v Variants) Equal(o Variants) bool {
	return v.desktop == o.desktop && v.mobile == o.mobile && v.mobileCustomized == o.mobileCustomized
}

type variantsJSON struct {
	Desktop Params  `json:"desktop"`
	Mobile  *Params `json:"mobile,omitempty"`
}

func (v Variants) MarshalJSON() ([]byte, error) {
	out := variantsJSON{Desktop: v.desktop}
	if v.mobileCustomized {
		m := v.mobile
		out.Mobile = &m
	}
	return json.Marshal(out)
}

func (v *Variants) UnmarshalJSON(b []byte) error {
	var in variantsJSON
	if err := json.Unmarshal(b, &in); err != nil {
		return err
	}
	*v = NewVariants(in.Desktop)
	if in.Mobile != nil {
		v.Set(DeviceMobile, *in.Mobile)
	}
	return nil
}
