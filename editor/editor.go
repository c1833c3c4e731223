// Package editor holds the inline image editing session: the committed viewport shown to
// visitors, the draft being edited, and the pointer/wheel controller that drives the draft.
package editor

import (
	"errors"

	"github.com/ignisVeneficus/bistro/data"
	"github.com/ignisVeneficus/bistro/logging"
	"github.com/ignisVeneficus/bistro/viewport"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type State string

const (
	StateViewing State = "viewing"
	StateEditing State = "editing"
)

var (
	ErrNotEditing     = errors.New("editor is not in editing state")
	ErrAlreadyEditing = errors.New("editor is already editing")
	ErrNoChanges      = errors.New("nothing to save")
)

type Size struct {
	Width  float64 `json:"width" yaml:"width"`
	Height float64 `json:"height" yaml:"height"`
}

// Saved is handed to the save callback once per successful save.
type Saved struct {
	Source   string
	Natural  Size
	Variants data.Variants
}

type SaveFunc func(saved Saved)

type Option func(e *Editor)

func WithSaveFunc(fn SaveFunc) Option {
	return func(e *Editor) {
		e.onSave = fn
	}
}

// WithReferenceWidth sets the desktop bleed width; mobile never uses it.
func WithReferenceWidth(w float64) Option {
	return func(e *Editor) {
		e.referenceWidth = w
	}
}

func WithNatural(s Size) Option {
	return func(e *Editor) {
		e.committedNatural = s
		e.natural = s
	}
}

type Editor struct {
	state  State
	device data.Device

	committed       data.Variants
	committedSource string
	// natural size of the committed source
	committedNatural Size

	draft       data.Variants
	draftSource string
	hasChanges  bool

	container Size
	natural   Size
	loadErr   error

	referenceWidth float64
	// last known cover floor per device for the shown source, used to clamp zoom on save
	floors map[data.Device]float64
	// set once the draft got another image; committedFloors keeps the floors of the committed one
	sourceChanged   bool
	committedFloors map[data.Device]float64

	onSave SaveFunc
}

func New(source string, committed data.Variants, opts ...Option) *Editor {
	e := &Editor{
		state:           StateViewing,
		device:          data.DeviceDesktop,
		committed:       committed,
		committedSource: source,
		draft:           committed,
		draftSource:     source,
		floors:          make(map[data.Device]float64, len(data.Devices)),
	}
	for _, o := range opts {
		o(e)
	}
	return e
}

func (e *Editor) State() State             { return e.state }
func (e *Editor) Editing() bool            { return e.state == StateEditing }
func (e *Editor) Device() data.Device      { return e.device }
func (e *Editor) HasChanges() bool         { return e.hasChanges }
func (e *Editor) Committed() data.Variants { return e.committed }
func (e *Editor) Draft() data.Variants     { return e.draft }
func (e *Editor) CommittedSource() string  { return e.committedSource }
func (e *Editor) Container() Size          { return e.container }
func (e *Editor) Natural() Size            { return e.natural }
func (e *Editor) LoadError() error         { return e.loadErr }
func (e *Editor) ReferenceWidth() float64  { return e.referenceWidth }

// Source is the image currently shown: the draft source while editing.
func (e *Editor) Source() string {
	if e.Editing() {
		return e.draftSource
	}
	return e.committedSource
}

// Current returns the params rendered for the active device.
func (e *Editor) Current() data.Params {
	if e.Editing() {
		return e.draft.Get(e.device)
	}
	return e.committed.Get(e.device)
}

func (e *Editor) input(p data.Params) viewport.Input {
	in := viewport.Input{
		ContainerW: e.container.Width,
		ContainerH: e.container.Height,
		NaturalW:   e.natural.Width,
		NaturalH:   e.natural.Height,
		Zoom:       p.Zoom,
		PanX:       p.PanX,
		PanY:       p.PanY,
	}
	if e.device == data.DeviceDesktop {
		in.ReferenceWidth = e.referenceWidth
	}
	return in
}

// Placement is the live geometry of the active device.
func (e *Editor) Placement() viewport.Placement {
	return viewport.Compute(e.input(e.Current()))
}

func (e *Editor) Ready() bool {
	return e.Placement().Ready()
}

func (e *Editor) refreshFloor() {
	p := e.Placement()
	if p.Ready() {
		e.floors[e.device] = p.MinZoom
	}
}

// floor falls back to the default zoom for a device not measured against the shown source.
func (e *Editor) floor(d data.Device) float64 {
	if f, ok := e.floors[d]; ok {
		return f
	}
	return viewport.DefaultZoom
}

// Begin snapshots the committed record into the draft. An uncustomized mobile variant
// starts as a copy of desktop and is edited on its own from then on.
func (e *Editor) Begin() error {
	if e.Editing() {
		return ErrAlreadyEditing
	}
	e.draft = e.committed.Seeded()
	e.draftSource = e.committedSource
	e.hasChanges = false
	e.state = StateEditing
	log.Logger.Debug().Str(logging.FieldFunc, "editor.begin").Object("editor", logging.WithLevel(zerolog.DebugLevel, e)).Msg("")
	return nil
}

// SetDevice switches the variant being shown and edited. The other variant's draft is kept.
func (e *Editor) SetDevice(d data.Device) {
	e.device = d
	e.refreshFloor()
}

// Measure records the frame size. Zoom and pan are left as they are.
func (e *Editor) Measure(w, h float64) {
	e.container = Size{Width: w, Height: h}
	e.refreshFloor()
}

func (e *Editor) SetNatural(w, h float64) {
	e.natural = Size{Width: w, Height: h}
	e.loadErr = nil
	e.refreshFloor()
}

// NaturalFailed marks the image as not loadable; the editor stays not ready.
func (e *Editor) NaturalFailed(err error) {
	e.natural = Size{}
	e.loadErr = err
}

// ChangeSource attaches a new image. While editing, draft zoom and pan of both variants
// return to defaults; overlay is kept unless resetOverlay is set.
// While viewing, the committed record is replaced wholesale.
func (e *Editor) ChangeSource(source string, resetOverlay bool) {
	e.natural = Size{}
	e.loadErr = nil
	if e.Editing() {
		if !e.sourceChanged {
			e.committedFloors = e.floors
			e.sourceChanged = true
		}
		e.floors = make(map[data.Device]float64, len(data.Devices))
		e.draftSource = source
		e.draft.Reset(resetOverlay)
		e.hasChanges = true
		return
	}
	e.floors = make(map[data.Device]float64, len(data.Devices))
	e.committedFloors = nil
	e.sourceChanged = false
	e.committedSource = source
	e.committedNatural = Size{}
	e.committed = data.DefaultVariants()
	e.draft = e.committed
	e.draftSource = source
}

func (e *Editor) update(p data.Params) bool {
	if e.draft.Get(e.device) == p {
		return false
	}
	e.draft.Set(e.device, p)
	e.hasChanges = true
	return true
}

// setPlacement stores p with its pans reduced to what the geometry allows.
func (e *Editor) setPlacement(p data.Params) bool {
	pl := viewport.Compute(e.input(p))
	p.PanX = pl.PanX
	p.PanY = pl.PanY
	return e.update(p)
}

// SetZoom applies a slider zoom value. It does nothing until the frame and image are measured.
func (e *Editor) SetZoom(zoom float64) bool {
	if !e.Editing() {
		return false
	}
	pl := e.Placement()
	if !pl.Ready() {
		return false
	}
	p := e.Current()
	p.Zoom = viewport.ClampZoom(zoom, pl.MinZoom)
	return e.setPlacement(p)
}

// SetPan applies explicit pan values, e.g. typed offsets.
func (e *Editor) SetPan(panX, panY float64) bool {
	if !e.Editing() || !e.Ready() {
		return false
	}
	p := e.Current()
	p.PanX = panX
	p.PanY = panY
	return e.setPlacement(p)
}

func (e *Editor) SetOverlay(overlay float64) bool {
	if !e.Editing() {
		return false
	}
	p := e.Current()
	p.Overlay = viewport.ClampOverlay(overlay)
	return e.update(p)
}

func (e *Editor) normalize(v data.Variants) data.Variants {
	return v.Map(func(d data.Device, p data.Params) data.Params {
		p.Zoom = viewport.ClampZoom(p.Zoom, e.floor(d))
		p.Overlay = viewport.ClampOverlay(p.Overlay)
		return p.Normalize()
	})
}

// Save promotes the normalized draft to committed and hands it to the save callback.
func (e *Editor) Save() (data.Variants, error) {
	if !e.Editing() {
		return data.Variants{}, ErrNotEditing
	}
	if !e.hasChanges {
		return data.Variants{}, ErrNoChanges
	}
	saved := e.normalize(e.draft)
	e.committed = saved
	e.draft = saved
	e.committedSource = e.draftSource
	e.committedNatural = e.natural
	e.committedFloors = nil
	e.sourceChanged = false
	e.hasChanges = false
	e.state = StateViewing
	log.Logger.Debug().Str(logging.FieldFunc, "editor.save").Object("editor", logging.WithLevel(zerolog.DebugLevel, e)).Msg("")

	if e.onSave != nil {
		e.onSave(Saved{Source: e.committedSource, Natural: e.committedNatural, Variants: saved})
	}
	return saved, nil
}

// Cancel drops the draft and restores the committed snapshot.
func (e *Editor) Cancel() error {
	if !e.Editing() {
		return ErrNotEditing
	}
	if e.sourceChanged {
		e.natural = e.committedNatural
		e.loadErr = nil
		e.floors = e.committedFloors
		if e.floors == nil {
			e.floors = make(map[data.Device]float64, len(data.Devices))
		}
	}
	e.committedFloors = nil
	e.sourceChanged = false
	e.draft = e.committed
	e.draftSource = e.committedSource
	e.hasChanges = false
	e.state = StateViewing
	log.Logger.Debug().Str(logging.FieldFunc, "editor.cancel").Object("editor", logging.WithLevel(zerolog.DebugLevel, e)).Msg("")
	return nil
}

func (e *Editor) MarshalZerologObjectWithLevel(ev *zerolog.Event, level zerolog.Level) {
	if level <= zerolog.DebugLevel {
		ev.Str("state", string(e.state)).
			Str("device", string(e.device)).
			Str("source", e.Source()).
			Bool("has_changes", e.hasChanges)
	}
	if level == zerolog.TraceLevel {
		ev.Object("committed", logging.WithLevel(level, &e.committed)).
			Object("draft", logging.WithLevel(level, &e.draft)).
			Float64("container_w", e.container.Width).
			Float64("container_h", e.container.Height).
			Float64("natural_w", e.natural.Width).
			Float64("natural_h", e.natural.Height)
	}
}
