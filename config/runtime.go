package config

import "sync/atomic"

var global atomic.Pointer[Config]

// SetGlobal installs cfg once; later calls are ignored.
func SetGlobal(cfg *Config) {
	global.CompareAndSwap(nil, cfg)
}

func Global() *Config {
	cfg := global.Load()
	if cfg == nil {
		panic("config not initialized")
	}
	return cfg
}
