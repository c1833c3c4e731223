package auth

import (
	"net/http"
	"strings"
)

const TokenHeader = "X-Auth-Token"

// TokenForJWT takes the token from the X-Auth-Token header, a bearer Authorization header
// or the named cookie, in that order.
func TokenForJWT(r *http.Request, cookie string) string {
	if h := r.Header.Get(TokenHeader); h != "" {
		return h
	}
	if h := r.Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimPrefix(h, "Bearer ")
	}
	if cookie == "" {
		return ""
	}
	if c, err := r.Cookie(cookie); err == nil {
		return c.Value
	}
	return ""
}
