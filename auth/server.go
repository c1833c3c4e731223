package auth

import (
	"github.com/gin-gonic/gin"
	"github.com/ignisVeneficus/bistro/auth/data"
)

const AuthContextKey = "auth_context"

func GetAuthContext(c *gin.Context) data.ACLContext {
	if acl, ok := c.Get(AuthContextKey); ok {
		if ctx, ok := acl.(data.ACLContext); ok {
			return ctx
		}
	}
	return data.GuestContext()
}

func SetAuthContext(c *gin.Context, ctx data.ACLContext) {
	c.Set(AuthContextKey, ctx)
}
