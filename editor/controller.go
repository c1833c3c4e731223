package editor

import (
	"github.com/ignisVeneficus/bistro/data"
	"github.com/ignisVeneficus/bistro/viewport"
)

type DragState string

const (
	DragIdle     DragState = "idle"
	DragDragging DragState = "dragging"
)

// Controller turns pointer, touch and wheel input into draft pan and zoom.
// Drag state is separate from the editor state: a drag only starts while editing.
type Controller struct {
	editor *Editor

	state     DragState
	device    data.Device
	startX    float64
	startY    float64
	startPanX float64
	startPanY float64
}

func NewController(e *Editor) *Controller {
	return &Controller{editor: e, state: DragIdle}
}

func (c *Controller) State() DragState {
	return c.state
}

func (c *Controller) Dragging() bool {
	return c.state == DragDragging
}

// PointerDown starts a drag. Multi-touch and input before the frame is measured are ignored.
func (c *Controller) PointerDown(x, y float64, touches int) bool {
	if touches > 1 || !c.editor.Editing() || !c.editor.Ready() {
		return false
	}
	p := c.editor.Current()
	c.state = DragDragging
	c.device = c.editor.Device()
	c.startX, c.startY = x, y
	c.startPanX, c.startPanY = p.PanX, p.PanY
	return true
}

// PointerMove pans relative to the drag start. Overflow is taken from the live draft zoom,
// so a zoom change during the drag applies to the next move.
func (c *Controller) PointerMove(x, y float64) bool {
	if !c.Dragging() {
		return false
	}
	if !c.editor.Editing() || c.editor.Device() != c.device {
		c.state = DragIdle
		return false
	}
	pl := c.editor.Placement()
	if !pl.Ready() {
		return false
	}
	panX := viewport.ClampPan(c.startPanX+viewport.PanDelta(x-c.startX, pl.OverflowX), pl.OverflowX)
	panY := viewport.ClampPan(c.startPanY+viewport.PanDelta(y-c.startY, pl.OverflowY), pl.OverflowY)
	return c.editor.SetPan(panX, panY)
}

func (c *Controller) PointerUp() {
	c.state = DragIdle
}

func (c *Controller) PointerLeave() {
	c.PointerUp()
}

// Wheel zooms one step per tick, in for negative deltaY. A true result means the event
// was consumed and must not scroll the page.
func (c *Controller) Wheel(deltaY float64) bool {
	if deltaY == 0 || !c.editor.Editing() {
		return false
	}
	pl := c.editor.Placement()
	if !pl.Ready() {
		return false
	}
	step := viewport.WheelStep
	if deltaY > 0 {
		step = -step
	}
	c.editor.SetZoom(pl.EffectiveZoom + step)
	return true
}
