package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ignisVeneficus/bistro/data"
	"github.com/ignisVeneficus/bistro/editor"
	"github.com/ignisVeneficus/bistro/logging"
	"github.com/ignisVeneficus/bistro/viewport"
)

func (a *API) getViewport(c *gin.Context) {
	key := c.Param("key")
	logg := logging.Enter(c, "server.getViewport", map[string]any{"key": key})
	rec, err := a.store.Load(c, key)
	if err != nil {
		abortJSON(c, logg, storeStatus(err), err)
		return
	}
	logging.Exit(logg, "ok", nil)
	c.JSON(http.StatusOK, rec)
}

type placementRequest struct {
	Key     string       `json:"key"`
	Frame   string       `json:"frame"`
	Device  string       `json:"device"`
	Width   float64      `json:"width"`
	Height  float64      `json:"height"`
	Natural *editor.Size `json:"natural"`
	Params  *data.Params `json:"params"`
}

type placementResponse struct {
	Device    data.Device        `json:"device"`
	Params    data.Params        `json:"params"`
	Ready     bool               `json:"ready"`
	Placement viewport.Placement `json:"placement"`
}

// referenceWidth returns the desktop bleed width of the named frame preset.
func (a *API) referenceWidth(frame string, device data.Device) (float64, error) {
	if frame == "" {
		return 0, nil
	}
	fc, ok := a.cfg.Frames.Lookup(frame)
	if !ok {
		return 0, fmt.Errorf("unknown frame %q", frame)
	}
	if device != data.DeviceDesktop {
		return 0, nil
	}
	return fc.ReferenceWidth, nil
}

// postPlacement computes where an image sits in a frame, from the stored record of key,
// explicit params, or both (explicit values win).
func (a *API) postPlacement(c *gin.Context) {
	logg := logging.Enter(c, "server.postPlacement", nil)
	var req placementRequest
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
	if req.Width < 0 || req.Height < 0 {
		abortJSON(c, logg, http.StatusBadRequest, errors.New("frame size must not be negative"))
		return
	}
	ref, err := a.referenceWidth(req.Frame, device)
	if err != nil {
		abortJSON(c, logg, http.StatusBadRequest, err)
		return
	}

	params := data.DefaultParams()
	var natural editor.Size
	if req.Key != "" {
		rec, err := a.store.Load(c, req.Key)
		if err != nil {
			abortJSON(c, logg, storeStatus(err), err)
			return
		}
		params = rec.Variants.Get(device)
		natural = rec.Natural
	}
	if req.Params != nil {
		params = *req.Params
	}
	if req.Natural != nil {
		natural = *req.Natural
	}

	mz := viewport.MinZoom(req.Width, req.Height, natural.Width, natural.Height, ref)
	params.Zoom = viewport.ClampZoom(params.Zoom, mz)
	params.Overlay = viewport.ClampOverlay(params.Overlay)
	pl := viewport.Compute(viewport.Input{
		ContainerW:     req.Width,
		ContainerH:     req.Height,
		NaturalW:       natural.Width,
		NaturalH:       natural.Height,
		Zoom:           params.Zoom,
		PanX:           params.PanX,
		PanY:           params.PanY,
		ReferenceWidth: ref,
	})
	if pl.Ready() {
		params.PanX, params.PanY = pl.PanX, pl.PanY
	}

	logging.Exit(logg, "ok", map[string]any{"ready": pl.Ready()})
	c.JSON(http.StatusOK, placementResponse{Device: device, Params: params, Ready: pl.Ready(), Placement: pl})
}
