package server

import (
	"path"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/ignisVeneficus/bistro/auth"
	"github.com/ignisVeneficus/bistro/logging"
	"github.com/ignisVeneficus/bistro/server/routes"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	RequestIDKey    = "request_id"
	RequestIDHeader = "X-Request-Id"
)

// RequestID reuses a well formed incoming id so page and API logs line up; anything else is replaced.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		reqID := c.GetHeader(RequestIDHeader)
		if _, err := uuid.Parse(reqID); err != nil {
			reqID = uuid.NewString()
		}
		c.Set(RequestIDKey, reqID)
		c.Set(logging.TraceIDKey, reqID)
		c.Writer.Header().Set(RequestIDHeader, reqID)
		c.Next()
	}
}

// chattyActions arrive once per pointer or wheel event while an image is dragged.
var chattyActions = map[string]bool{
	routes.ActionPointer: true,
	routes.ActionWheel:   true,
}

func responseLevel(c *gin.Context) zerolog.Level {
	status := c.Writer.Status()
	switch {
	case status >= 500:
		return zerolog.ErrorLevel
	case status >= 400:
		return zerolog.WarnLevel
	case c.Param("id") != "" && chattyActions[path.Base(c.FullPath())]:
		return zerolog.DebugLevel
	default:
		return zerolog.InfoLevel
	}
}

// Logger writes one line per response, tagged with the edit session and the acting user.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		lvl := responseLevel(c)
		e := log.Logger.WithLevel(lvl)
		if !e.Enabled() {
			return
		}
		if lvl >= zerolog.ErrorLevel {
			e.Str("error", c.Errors.String())
		}
		reqID, _ := c.Get(RequestIDKey)
		acl := auth.GetAuthContext(c)
		d := zerolog.Dict().
			Any("request_id", reqID).
			Str("method", c.Request.Method).
			Str("route", c.FullPath()).
			Str("path", c.Request.URL.Path).
			Str("role", string(acl.Role)).
			Dur("latency", time.Since(start))
		if acl.Subject != "" {
			d.Str("subject", acl.Subject)
		}
		if id := c.Param("id"); id != "" {
			d.Str("session", id)
		}
		e.Str(logging.FieldFunc, "server.request").
			Str(logging.FieldEvent, "response").
			Int(logging.FieldResult, c.Writer.Status()).
			Dict(logging.FieldParams, d).
			Msg("")
	}
}

// NoStore keeps edit session responses out of every cache.
func NoStore() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Cache-Control", "no-store")
		c.Header("Vary", "Authorization, Cookie")
		c.Next()
	}
}
