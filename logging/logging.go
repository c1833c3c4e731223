package logging

import (
	"fmt"
	"os"
	"time"

	"github.com/ignisVeneficus/bistro/config"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"go.mau.fi/zeroconfig"
	"gopkg.in/yaml.v3"
)

type ObjectWithLevel interface {
	MarshalZerologObjectWithLevel(e *zerolog.Event, level zerolog.Level)
}

type withLevel struct {
	level zerolog.Level
	obj   ObjectWithLevel
}

func WithLevel(level zerolog.Level, obj ObjectWithLevel) *withLevel {
	if obj == nil {
		return nil
	}
	return &withLevel{level: level, obj: obj}
}

func (w *withLevel) MarshalZerologObject(e *zerolog.Event) {
	w.obj.MarshalZerologObjectWithLevel(e, w.level)
}

func Uint32If(e *zerolog.Event, k string, v *uint32) {
	if v != nil {
		e.Uint32(k, *v)
	}
}

// LoadLogging installs the global logger compiled from the zeroconfig file named by
// BISTRO_LOG_CONFIG. Development may run without one and logs to the console.
func LoadLogging(env config.Environment) error {
	path := config.GetLogConfigPath()
	if path == "" {
		if env != config.EnvDevelopment {
			return fmt.Errorf("%s must be set outside development", config.LogConfigEnv)
		}
		log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
			With().Timestamp().Logger()
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		log.Logger.Warn().Msg(config.LogConfigEnv + " not set, using console logging")
		return nil
	}
	logger, err := compileLogger(path)
	if err != nil {
		return fmt.Errorf("%s: %w", config.LogConfigEnv, err)
	}
	log.Logger = *logger
	return nil
}

func compileLogger(path string) (*zerolog.Logger, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg zeroconfig.Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("not valid yaml: %w", err)
	}
	logger, err := cfg.Compile()
	if err != nil {
		return nil, fmt.Errorf("not a valid zeroconfig setup: %w", err)
	}
	return logger, nil
}
