package config

import (
	"fmt"
	"os"

	"github.com/ignisVeneficus/bistro/config/auth"
	"github.com/ignisVeneficus/bistro/config/database"
	"github.com/ignisVeneficus/bistro/config/frame"
	"github.com/ignisVeneficus/bistro/config/probe"
	"github.com/ignisVeneficus/bistro/config/server"
	"github.com/ignisVeneficus/bistro/config/validate"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

const (
	ENV_PREFIX        = "BISTRO"
	defaultConfigPath = "config.yaml"
)

var (
	ConfigEnv    = ENV_PREFIX + "_CONFIG"
	LogConfigEnv = ENV_PREFIX + "_LOG_CONFIG"
)

type Config struct {
	Env      Environment             `yaml:"-"` // ENV only
	Server   server.ServerConfig     `yaml:"server"`
	Database database.DatabaseConfig `yaml:"database"`
	Auth     auth.AuthConfig         `yaml:"auth"`
	Frames   frame.FramesConfig      `yaml:"frames"`
	Probe    probe.ProbeConfig       `yaml:"probe"`
}

func Load(path string) (*Config, error) {
	log.Logger.Debug().Str("path", path).Msg("Configuration loading start")
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	env, err := LoadEnvironment()
	if err != nil {
		return nil, err
	}
	return Parse(raw, env)
}

// Parse runs the same pipeline as Load on an in-memory document.
func Parse(raw []byte, env Environment) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	cfg.Env = env
	if err := cfg.TransformBeforeValidation(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.TransformAfterValidation(); err != nil {
		return nil, err
	}

	log.Logger.Info().Str("env", string(cfg.Env)).Msg("Configuration loaded")
	return &cfg, nil
}

func (c *Config) Validate() error {
	var verr validate.ValidationErrors

	c.Server.Validate(&verr, "server")
	c.Database.Validate(&verr, "database")
	c.Auth.Validate(&verr, "auth")
	c.Frames.Validate(&verr, "frames")
	c.Probe.Validate(&verr, "probe")

	if verr.HasErrors() {
		return &verr
	}
	return nil
}

func GetConfigPath() string {
	if p := os.Getenv(ConfigEnv); p != "" {
		return p
	}
	return defaultConfigPath
}

// GetLogConfigPath returns "" when the variable is unset.
func GetLogConfigPath() string {
	return os.Getenv(LogConfigEnv)
}
