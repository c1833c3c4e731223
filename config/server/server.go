package server

import (
	"time"
)

type ServerConfig struct {
	Addr     string `yaml:"addr"`
	Timeouts struct {
		Read   time.Duration `yaml:"read"`
		Header time.Duration `yaml:"read_header"`
		Write  time.Duration `yaml:"write"`
		Idle   time.Duration `yaml:"idle"`
	} `yaml:"timeouts"`
	// edit sessions untouched for this long are dropped
	SessionIdle time.Duration `yaml:"session_idle"`
}
