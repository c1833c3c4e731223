package auth

import "time"

type AuthConfig struct {
	JWT       JWTConfig `yaml:"jwt"`
	AdminRole string    `yaml:"admin_role"`
}

type JWTConfig struct {
	Secret string        `yaml:"secret"`
	TTL    time.Duration `yaml:"ttl"`
	Cookie string        `yaml:"cookie"`
}
