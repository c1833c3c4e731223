package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/ignisVeneficus/bistro/server/routes"
	"github.com/rs/zerolog"
)

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(RequestIDKey))
	})

	known := uuid.NewString()
	tests := []struct {
		name   string
		header string
		keep   bool
	}{
		{"none", "", false},
		{"valid", known, true},
		{"garbage", "abc\nforged", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set(RequestIDHeader, tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			got := w.Header().Get(RequestIDHeader)
			if got != w.Body.String() {
				t.Errorf("header %q and context %q differ", got, w.Body.String())
			}
			if _, err := uuid.Parse(got); err != nil {
				t.Errorf("request id %q is not a uuid", got)
			}
			if tt.keep != (got == tt.header) {
				t.Errorf("request id = %q, incoming %q, keep %v", got, tt.header, tt.keep)
			}
		})
	}
}

func TestResponseEventLevel(t *testing.T) {
	tests := []struct {
		name   string
		route  string
		target string
		status int
		want   zerolog.Level
	}{
		{"pointer", routes.GetSessionActionPath(routes.ActionPointer), routes.CreateSessionActionPath("s1", routes.ActionPointer), http.StatusOK, zerolog.DebugLevel},
		{"wheel", routes.GetSessionActionPath(routes.ActionWheel), routes.CreateSessionActionPath("s1", routes.ActionWheel), http.StatusOK, zerolog.DebugLevel},
		{"save", routes.GetSessionActionPath(routes.ActionSave), routes.CreateSessionActionPath("s1", routes.ActionSave), http.StatusOK, zerolog.InfoLevel},
		{"failed pointer", routes.GetSessionActionPath(routes.ActionPointer), routes.CreateSessionActionPath("s1", routes.ActionPointer), http.StatusConflict, zerolog.WarnLevel},
		{"server error", routes.GetSessionActionPath(routes.ActionSave), routes.CreateSessionActionPath("s1", routes.ActionSave), http.StatusBadGateway, zerolog.ErrorLevel},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got zerolog.Level
			r := gin.New()
			r.Group(routes.AdminPrefix).POST(tt.route, func(c *gin.Context) {
				c.Status(tt.status)
				got = responseLevel(c)
			})
			r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, tt.target, nil))
			if got != tt.want {
				t.Errorf("level = %v, want %v", got, tt.want)
			}
		})
	}
}
