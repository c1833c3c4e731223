package frame

import (
	"fmt"

	"github.com/ignisVeneficus/bistro/config/validate"
	"github.com/rs/zerolog/log"
)

func (frames FramesConfig) Validate(v *validate.ValidationErrors, path string) {
	if len(frames) == 0 {
		log.Logger.Info().Str("config", path).Msg("no frame presets defined")
		return
	}

	seen := map[string]struct{}{}

	for i, f := range frames {
		base := fmt.Sprintf("%s[%d]", path, i)
		name := f.validate(v, base)
		if name != "" {
			if _, ok := seen[name]; ok {
				v.Reject(base+"/name", name, "duplicate name")
			}
			seen[name] = struct{}{}
		}
	}
}

func (f FrameConfig) validate(v *validate.ValidationErrors, path string) string {
	if !validate.RequireString(v, path+"/name", f.Name) {
		return ""
	}
	validate.RequireMin(v, path+"/reference_width", f.ReferenceWidth, 0)
	return f.Name
}
