package server

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/ignisVeneficus/bistro/data"
	"github.com/ignisVeneficus/bistro/editor"
	"github.com/ignisVeneficus/bistro/logging"
	"github.com/ignisVeneficus/bistro/probe"
)

var errSessionNotFound = errors.New("edit session not found")

type createSessionRequest struct {
	Key    string `json:"key" binding:"required"`
	Frame  string `json:"frame"`
	Device string `json:"device"`
	// Source starts a new slot when key is not stored yet.
	Source string  `json:"source"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

type sizeRequest struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Error  string  `json:"error"`
}

type deviceRequest struct {
	Device string `json:"device" binding:"required"`
}

type pointerRequest struct {
	Type    string  `json:"type" binding:"required"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Touches int     `json:"touches"`
}

type wheelRequest struct {
	DeltaY float64 `json:"deltaY"`
}

type sliderRequest struct {
	Zoom    *float64 `json:"zoom"`
	PanX    *float64 `json:"panX"`
	PanY    *float64 `json:"panY"`
	Overlay *float64 `json:"overlay"`
}

type sourceRequest struct {
	Source       string `json:"source" binding:"required"`
	ResetOverlay bool   `json:"resetOverlay"`
}

func (a *API) createSession(c *gin.Context) {
	logg := logging.Enter(c, "server.createSession", nil)
	var req createSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortJSON(c, logg, http.StatusBadRequest, err)
		return
	}
	device := data.DeviceDesktop
	if req.Device != "" {
		d, err := data.ParseDevice(req.Device)
		if err != nil {
			abortJSON(c, logg, http.StatusBadRequest, err)
			return
		}
		device = d
	}
	ref, err := a.referenceWidth(req.Frame, data.DeviceDesktop)
	if err != nil {
		abortJSON(c, logg, http.StatusBadRequest, err)
		return
	}

	rec, err := a.store.Load(c, req.Key)
	switch {
	case IsNotFound(err) && strings.TrimSpace(req.Source) != "":
		rec = Record{Key: req.Key, Source: req.Source, Variants: data.DefaultVariants()}
	case err != nil:
		abortJSON(c, logg, storeStatus(err), err)
		return
	}

	s := newSession(rec, req.Frame, ref)
	var snap Snapshot
	if err := s.Do(func(e *editor.Editor, _ *editor.Controller) error {
		e.SetDevice(device)
		if req.Width > 0 && req.Height > 0 {
			e.Measure(req.Width, req.Height)
		}
		err := e.Begin()
		snap = s.snapshot()
		return err
	}); err != nil {
		abortJSON(c, logg, statusOf(err), err)
		return
	}
	a.sessions.Add(s)
	if snap.Natural.Width <= 0 || snap.Natural.Height <= 0 {
		a.probe(c, s.ID, rec.Source)
	}

	logging.Exit(logg, "ok", map[string]any{"session": s})
	c.JSON(http.StatusCreated, snap)
}

// probe asks for the natural size of source on behalf of session owner.
func (a *API) probe(c *gin.Context, owner, source string) {
	if a.prober == nil {
		return
	}
	if err := a.prober.Probe(c, probe.Request{Owner: owner, Source: source}); err != nil {
		logging.Error("server.API.probe", "submit", err, map[string]any{"owner": owner, "source": source})
	}
}

// withSession runs fn on the session named in the path and answers with its snapshot.
// fn may return an error with a status attached through statusError.
func (a *API) withSession(c *gin.Context, fn string, body any, apply func(s *Session, e *editor.Editor, ctl *editor.Controller, snap *Snapshot) error) {
	id := c.Param("id")
	logg := logging.Enter(c, fn, map[string]any{"id": id})
	if body != nil {
		if err := c.ShouldBindJSON(body); err != nil {
			abortJSON(c, logg, http.StatusBadRequest, err)
			return
		}
	}
	s, ok := a.sessions.Get(id)
	if !ok {
		abortJSON(c, logg, http.StatusNotFound, errSessionNotFound)
		return
	}
	var snap Snapshot
	err := s.Do(func(e *editor.Editor, ctl *editor.Controller) error {
		if apply != nil {
			if err := apply(s, e, ctl, &snap); err != nil {
				return err
			}
		}
		handled := snap.Handled
		snap = s.snapshot()
		snap.Handled = handled
		return nil
	})
	if err != nil {
		abortJSON(c, logg, statusOf(err), err)
		return
	}
	logging.Exit(logg, "ok", map[string]any{"state": string(snap.State)})
	c.JSON(http.StatusOK, snap)
}

type statusError struct {
	status int
	err    error
}

func (e *statusError) Error() string { return e.err.Error() }
func (e *statusError) Unwrap() error { return e.err }

func withStatus(status int, err error) error {
	return &statusError{status: status, err: err}
}

func statusOf(err error) int {
	var se *statusError
	if errors.As(err, &se) {
		return se.status
	}
	switch {
	case errors.Is(err, editor.ErrNotEditing),
		errors.Is(err, editor.ErrAlreadyEditing),
		errors.Is(err, editor.ErrNoChanges):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func (a *API) getSession(c *gin.Context) {
	a.withSession(c, "server.getSession", nil, nil)
}

func (a *API) deleteSession(c *gin.Context) {
	id := c.Param("id")
	logg := logging.Enter(c, "server.deleteSession", map[string]any{"id": id})
	if !a.sessions.Remove(id) {
		abortJSON(c, logg, http.StatusNotFound, errSessionNotFound)
		return
	}
	logging.Exit(logg, "ok", nil)
	c.Status(http.StatusNoContent)
}

func (a *API) sessionBegin(c *gin.Context) {
	a.withSession(c, "server.sessionBegin", nil, func(_ *Session, e *editor.Editor, _ *editor.Controller, _ *Snapshot) error {
		return e.Begin()
	})
}

func (a *API) sessionMeasure(c *gin.Context) {
	var req sizeRequest
	a.withSession(c, "server.sessionMeasure", &req, func(_ *Session, e *editor.Editor, _ *editor.Controller, _ *Snapshot) error {
		if req.Width < 0 || req.Height < 0 {
			return withStatus(http.StatusBadRequest, errors.New("frame size must not be negative"))
		}
		e.Measure(req.Width, req.Height)
		return nil
	})
}

// sessionNatural lets the page report the image size it loaded, or that loading failed.
func (a *API) sessionNatural(c *gin.Context) {
	var req sizeRequest
	a.withSession(c, "server.sessionNatural", &req, func(_ *Session, e *editor.Editor, _ *editor.Controller, _ *Snapshot) error {
		if req.Error != "" {
			e.NaturalFailed(errors.New(req.Error))
			return nil
		}
		if req.Width <= 0 || req.Height <= 0 {
			return withStatus(http.StatusBadRequest, errors.New("natural size must be positive"))
		}
		e.SetNatural(req.Width, req.Height)
		return nil
	})
}

func (a *API) sessionDevice(c *gin.Context) {
	var req deviceRequest
	a.withSession(c, "server.sessionDevice", &req, func(_ *Session, e *editor.Editor, _ *editor.Controller, _ *Snapshot) error {
		d, err := data.ParseDevice(req.Device)
		if err != nil {
			return withStatus(http.StatusBadRequest, err)
		}
		e.SetDevice(d)
		return nil
	})
}

func (a *API) sessionPointer(c *gin.Context) {
	var req pointerRequest
	a.withSession(c, "server.sessionPointer", &req, func(_ *Session, _ *editor.Editor, ctl *editor.Controller, snap *Snapshot) error {
		var handled bool
		switch req.Type {
		case "down":
			handled = ctl.PointerDown(req.X, req.Y, max(req.Touches, 1))
		case "move":
			handled = ctl.PointerMove(req.X, req.Y)
		case "up":
			handled = ctl.Dragging()
			ctl.PointerUp()
		case "leave":
			handled = ctl.Dragging()
			ctl.PointerLeave()
		default:
			return withStatus(http.StatusBadRequest, fmt.Errorf("unknown pointer event %q", req.Type))
		}
		snap.Handled = &handled
		return nil
	})
}

func (a *API) sessionWheel(c *gin.Context) {
	var req wheelRequest
	a.withSession(c, "server.sessionWheel", &req, func(_ *Session, _ *editor.Editor, ctl *editor.Controller, snap *Snapshot) error {
		handled := ctl.Wheel(req.DeltaY)
		snap.Handled = &handled
		return nil
	})
}

func (a *API) sessionSlider(c *gin.Context) {
	var req sliderRequest
	a.withSession(c, "server.sessionSlider", &req, func(_ *Session, e *editor.Editor, _ *editor.Controller, _ *Snapshot) error {
		if !e.Editing() {
			return editor.ErrNotEditing
		}
		if req.Zoom != nil {
			e.SetZoom(*req.Zoom)
		}
		if req.PanX != nil || req.PanY != nil {
			cur := e.Current()
			panX, panY := cur.PanX, cur.PanY
			if req.PanX != nil {
				panX = *req.PanX
			}
			if req.PanY != nil {
				panY = *req.PanY
			}
			e.SetPan(panX, panY)
		}
		if req.Overlay != nil {
			e.SetOverlay(*req.Overlay)
		}
		return nil
	})
}

// sessionSource attaches a new image. Outside editing the stored record is reset as well.
func (a *API) sessionSource(c *gin.Context) {
	var req sourceRequest
	var owner string
	a.withSession(c, "server.sessionSource", &req, func(s *Session, e *editor.Editor, _ *editor.Controller, _ *Snapshot) error {
		if !e.Editing() {
			if err := a.store.ReplaceSource(c, s.Key, req.Source); err != nil {
				return withStatus(storeStatus(err), err)
			}
		}
		e.ChangeSource(req.Source, req.ResetOverlay)
		owner = s.ID
		return nil
	})
	if owner != "" {
		a.probe(c, owner, req.Source)
	}
}

func (a *API) sessionSave(c *gin.Context) {
	a.withSession(c, "server.sessionSave", nil, func(s *Session, e *editor.Editor, _ *editor.Controller, _ *Snapshot) error {
		if _, err := e.Save(); err != nil {
			return err
		}
		saved := s.takeSaved()
		if saved == nil {
			return errors.New("save produced no record")
		}
		rec := Record{Key: s.Key, Source: saved.Source, Natural: saved.Natural, Variants: saved.Variants}
		if err := a.store.Save(c, rec); err != nil {
			return withStatus(http.StatusBadGateway, fmt.Errorf("persist %s: %w", s.Key, err))
		}
		return nil
	})
}

func (a *API) sessionCancel(c *gin.Context) {
	a.withSession(c, "server.sessionCancel", nil, func(_ *Session, e *editor.Editor, ctl *editor.Controller, _ *Snapshot) error {
		ctl.PointerUp()
		return e.Cancel()
	})
}
