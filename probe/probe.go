// Package probe resolves the natural pixel size of an image source without decoding its pixels.
package probe

import (
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"

	probecfg "github.com/ignisVeneficus/bistro/config/probe"
	"github.com/ignisVeneficus/bistro/logging"
	"github.com/rs/zerolog"
	_ "golang.org/x/image/webp"
)

var (
	ErrEmptySource       = errors.New("empty image source")
	ErrUnsupportedSource = errors.New("unsupported image source")
)

type Size struct {
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Format string `json:"format,omitempty"`
}

func (s Size) Valid() bool {
	return s.Width > 0 && s.Height > 0
}

func (s *Size) MarshalZerologObjectWithLevel(e *zerolog.Event, level zerolog.Level) {
	e.Int("width", s.Width).Int("height", s.Height)
	if level <= zerolog.DebugLevel {
		e.Str("format", s.Format)
	}
}

type Resolver struct {
	client   *http.Client
	maxBytes int64
}

func NewResolver(cfg probecfg.ProbeConfig) *Resolver {
	return &Resolver{
		client:   &http.Client{Timeout: cfg.Timeout},
		maxBytes: cfg.MaxBytes,
	}
}

// Resolve reads the header of source, an http(s) URL, a file:// URL or a local path.
func (r *Resolver) Resolve(ctx context.Context, source string) (Size, error) {
	logg := logging.Enter(ctx, "probe.Resolve", map[string]any{"source": source})
	rc, err := r.open(ctx, source)
	if err != nil {
		logging.ExitErr(logg, err)
		return Size{}, err
	}
	defer rc.Close()

	var body io.Reader = rc
	if r.maxBytes > 0 {
		body = io.LimitReader(rc, r.maxBytes)
	}
	cfg, format, err := image.DecodeConfig(body)
	if err != nil {
		err = fmt.Errorf("decode header of %s: %w", source, err)
		logging.ExitErr(logg, err)
		return Size{}, err
	}
	size := Size{Width: cfg.Width, Height: cfg.Height, Format: format}
	if !size.Valid() {
		err = fmt.Errorf("image %s has no extent (%dx%d)", source, cfg.Width, cfg.Height)
		logging.ExitErr(logg, err)
		return Size{}, err
	}
	logging.Exit(logg, "ok", map[string]any{"size": &size})
	return size, nil
}

func (r *Resolver) open(ctx context.Context, source string) (io.ReadCloser, error) {
	source = strings.TrimSpace(source)
	if source == "" {
		return nil, ErrEmptySource
	}
	u, err := url.Parse(source)
	if err != nil || u.Scheme == "" {
		return os.Open(source)
	}
	switch u.Scheme {
	case "http", "https":
		return r.fetch(ctx, u.String())
	case "file":
		return os.Open(u.Path)
	default:
		return nil, fmt.Errorf("%w: scheme %q", ErrUnsupportedSource, u.Scheme)
	}
}

func (r *Resolver) fetch(ctx context.Context, src string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src, nil)
	if err != nil {
		return nil, err
	}
	resp, err := r.client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("fetch %s: %s", src, resp.Status)
	}
	return resp.Body, nil
}
