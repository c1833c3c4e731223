package server

import (
	"time"

	"github.com/ignisVeneficus/bistro/config/validate"
)

func (cfg *ServerConfig) TransformBeforeValidation() error {
	if cfg.Addr == "" {
		cfg.Addr = ":8080"
	}
	if cfg.Timeouts.Header == 0 {
		cfg.Timeouts.Header = cfg.Timeouts.Read
	}
	if cfg.SessionIdle == 0 {
		cfg.SessionIdle = 30 * time.Minute
	}
	return nil
}

func (cfg *ServerConfig) Validate(v *validate.ValidationErrors, path string) {
	validate.RequireString(v, path+"/addr", cfg.Addr)

	validate.CheckDuration(v, path+"/timeouts/read", cfg.Timeouts.Read)
	validate.CheckDuration(v, path+"/timeouts/read_header", cfg.Timeouts.Header)
	validate.CheckDuration(v, path+"/timeouts/write", cfg.Timeouts.Write)
	validate.CheckDuration(v, path+"/timeouts/idle", cfg.Timeouts.Idle)
	validate.CheckDuration(v, path+"/session_idle", cfg.SessionIdle)
}
