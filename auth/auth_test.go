package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestTokenForJWT(t *testing.T) {
	tests := []struct {
		name   string
		header map[string]string
		cookie *http.Cookie
		want   string
	}{
		{"none", nil, nil, ""},
		{"header", map[string]string{TokenHeader: "h"}, &http.Cookie{Name: "access_token", Value: "c"}, "h"},
		{"bearer", map[string]string{"Authorization": "Bearer b"}, nil, "b"},
		{"basic ignored", map[string]string{"Authorization": "Basic x"}, nil, ""},
		{"cookie", nil, &http.Cookie{Name: "access_token", Value: "c"}, "c"},
		{"other cookie", nil, &http.Cookie{Name: "session", Value: "c"}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			for k, v := range tt.header {
				r.Header.Set(k, v)
			}
			if tt.cookie != nil {
				r.AddCookie(tt.cookie)
			}
			if got := TokenForJWT(r, "access_token"); got != tt.want {
				t.Errorf("TokenForJWT() = %q, want %q", got, tt.want)
			}
		})
	}
}
