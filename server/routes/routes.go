// Package routes keeps the URL patterns of the HTTP API in one place.
// Get*Path returns the gin pattern relative to its group, Create*Path a concrete URL.
package routes

import (
	"fmt"
	"net/url"
	"strings"
)

func getPath(pattern string, params ...string) string {
	p := strings.ReplaceAll(pattern, "%d", "%s")
	args := make([]any, len(params))
	for i, v := range params {
		args[i] = v
	}
	return fmt.Sprintf(p, args...)
}

func createPath(prefix, pattern string, params ...string) string {
	escaped := make([]string, len(params))
	for i, v := range params {
		escaped[i] = url.PathEscape(v)
	}
	return prefix + getPath(pattern, escaped...)
}
