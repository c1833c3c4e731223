package probe

import (
	"time"

	"github.com/ignisVeneficus/bistro/config/validate"
)

const (
	defaultWorkers  = 2
	defaultTimeout  = 10 * time.Second
	defaultMaxBytes = 4 << 20
)

func (p *ProbeConfig) TransformBeforeValidation() error {
	if p.Workers == 0 {
		p.Workers = defaultWorkers
	}
	if p.Timeout == 0 {
		p.Timeout = defaultTimeout
	}
	if p.MaxBytes == 0 {
		p.MaxBytes = defaultMaxBytes
	}
	return nil
}

func (p ProbeConfig) Validate(v *validate.ValidationErrors, path string) {
	validate.RequireMin(v, path+"/workers", p.Workers, 1)
	validate.CheckDuration(v, path+"/timeout", p.Timeout)
	// a JPEG header with EXIF segments can run to tens of KiB
	validate.RequireMin(v, path+"/max_bytes", p.MaxBytes, 64<<10)
}
