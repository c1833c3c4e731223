package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ignisVeneficus/bistro/auth"
	authData "github.com/ignisVeneficus/bistro/auth/data"
	"github.com/ignisVeneficus/bistro/config"
	authConfig "github.com/ignisVeneficus/bistro/config/auth"
	"github.com/ignisVeneficus/bistro/logging"
)

func ContextFromToken(token string, jwtSvc *JWTService, adminRole string) *authData.ACLContext {
	if token == "" || jwtSvc == nil {
		return nil
	}

	claims, err := jwtSvc.Verify(token)
	if err != nil {
		logging.Info("server.auth.token", "verify", "rejected", err.Error(), nil)
		return nil
	}
	ctx := authData.ACLContext{
		Subject:  claims.Subject,
		Role:     authData.RoleGuest,
		Provider: authData.ProviderJWT,
	}
	if claims.Role == adminRole {
		ctx.Role = authData.RoleAdmin
	}
	return &ctx
}

// AuthContextMiddleware resolves the caller from a JWT. Development mode treats everyone as admin.
func AuthContextMiddleware(cfg authConfig.AuthConfig, env config.Environment) gin.HandlerFunc {
	JWT := NewJWTService(cfg.JWT.Secret, cfg.JWT.TTL)

	return func(c *gin.Context) {
		ctx := authData.GuestContext()
		if jwtCtx := ContextFromToken(auth.TokenForJWT(c.Request, cfg.JWT.Cookie), JWT, cfg.AdminRole); jwtCtx != nil {
			ctx = *jwtCtx
		}
		if env.IsDevelopment() {
			ctx = authData.DevContext()
		}

		auth.SetAuthContext(c, ctx)
		c.Next()
	}
}

func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := auth.GetAuthContext(c)

		if !ctx.IsAdmin() {
			status := http.StatusForbidden
			if ctx.Provider == authData.ProviderGuest {
				status = http.StatusUnauthorized
			}
			c.AbortWithStatusJSON(status, gin.H{"error": http.StatusText(status)})
			return
		}

		c.Next()
	}
}
