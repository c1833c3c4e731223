// Package frame holds the named frame presets a page template renders images into.
package frame

import (
	"slices"
	"strings"
)

type FramesConfig []FrameConfig

type FrameConfig struct {
	Name string `yaml:"name"`
	// desktop layout width the image must bleed to; 0 means the frame width
	ReferenceWidth float64 `yaml:"reference_width"`
}

// Lookup returns the preset called name.
func (f FramesConfig) Lookup(name string) (FrameConfig, bool) {
	for _, fc := range f {
		if fc.Name == name {
			return fc, true
		}
	}
	return FrameConfig{}, false
}

// Sorted returns a copy ordered by name.
func (f FramesConfig) Sorted() FramesConfig {
	out := slices.Clone(f)
	slices.SortFunc(out, func(a, b FrameConfig) int {
		return strings.Compare(a.Name, b.Name)
	})
	return out
}
