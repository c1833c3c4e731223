package auth

import (
	"time"

	"github.com/ignisVeneficus/bistro/config/validate"
)

const (
	defaultAdminRole = "admin"
	defaultCookie    = "access_token"
	defaultTTL       = 12 * time.Hour
)

func (a *AuthConfig) TransformBeforeValidation() error {
	if a.AdminRole == "" {
		a.AdminRole = defaultAdminRole
	}
	if a.JWT.Cookie == "" {
		a.JWT.Cookie = defaultCookie
	}
	if a.JWT.TTL == 0 {
		a.JWT.TTL = defaultTTL
	}
	return nil
}

func (a AuthConfig) Validate(v *validate.ValidationErrors, path string) {
	validate.RequireSecret(v, path+"/jwt/secret", a.JWT.Secret)
	validate.CheckDuration(v, path+"/jwt/ttl", a.JWT.TTL)
	validate.RequireString(v, path+"/jwt/cookie", a.JWT.Cookie)
	validate.RequireString(v, path+"/admin_role", a.AdminRole)
}
