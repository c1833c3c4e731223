package editor

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/ignisVeneficus/bistro/data"
)

// 400x300 frame with a 16:9 image: cover floor is 134
func measured(t *testing.T, opts ...Option) *Editor {
	t.Helper()
	e := New("/media/hero.jpg", data.DefaultVariants(), opts...)
	e.Measure(400, 300)
	e.SetNatural(1600, 900)
	if !e.Ready() {
		t.Fatalf("editor not ready after measure")
	}
	return e
}

func TestSaveRoundTrip(t *testing.T) {
	var calls []Saved
	e := measured(t, WithSaveFunc(func(s Saved) { calls = append(calls, s) }))
	if err := e.Begin(); err != nil {
		t.Fatalf("Begin: %v", err)
	}
	e.SetZoom(150)
	e.SetPan(37.6, -12.4)

	saved, err := e.Save()
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	want := data.Params{Zoom: 150, PanX: 38, PanY: -12}
	if diff := cmp.Diff(want, saved.Get(data.DeviceDesktop)); diff != "" {
		t.Errorf("saved desktop mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(want, e.Committed().Get(data.DeviceDesktop)); diff != "" {
		t.Errorf("committed desktop mismatch (-want +got):\n%s", diff)
	}
	if e.State() != StateViewing {
		t.Errorf("state = %s, want viewing", e.State())
	}
	if len(calls) != 1 {
		t.Fatalf("save callback called %d times, want 1", len(calls))
	}
	if calls[0].Source != "/media/hero.jpg" || !calls[0].Variants.Equal(saved) {
		t.Errorf("unexpected callback payload: %+v", calls[0])
	}
}

func TestCancelRestoresSnapshot(t *testing.T) {
	committed := data.NewVariants(data.Params{Zoom: 180, PanX: 10, PanY: -20, Overlay: 30})
	e := New("/media/a.jpg", committed, WithNatural(Size{Width: 1600, Height: 900}))
	e.Measure(400, 300)
	if err := e.Begin(); err != nil {
		t.Fatalf("Begin: %v", err)
	}
	e.SetZoom(250)
	e.SetOverlay(55)
	e.SetDevice(data.DeviceMobile)
	e.SetPan(-80, 40)
	e.ChangeSource("/media/b.jpg", false)

	if err := e.Cancel(); err != nil {
		t.Fatalf("Cancel: %v", err)
	}
	if !e.Draft().Equal(committed) {
		t.Errorf("draft %+v differs from snapshot %+v", e.Draft(), committed)
	}
	if !e.Committed().Equal(committed) {
		t.Errorf("committed changed by cancel")
	}
	if e.Source() != "/media/a.jpg" {
		t.Errorf("source = %s, want /media/a.jpg", e.Source())
	}
	if e.Natural() != (Size{Width: 1600, Height: 900}) {
		t.Errorf("natural size not restored: %+v", e.Natural())
	}
	if e.HasChanges() {
		t.Errorf("hasChanges still set after cancel")
	}
}

func TestSaveRequiresChanges(t *testing.T) {
	e := measured(t)
	if _, err := e.Save(); !errors.Is(err, ErrNotEditing) {
		t.Errorf("Save while viewing: err = %v, want ErrNotEditing", err)
	}
	e.Begin()
	if _, err := e.Save(); !errors.Is(err, ErrNoChanges) {
		t.Errorf("Save without changes: err = %v, want ErrNoChanges", err)
	}
	if e.State() != StateEditing {
		t.Errorf("state = %s after rejected save, want editing", e.State())
	}
	e.SetOverlay(0)
	if e.HasChanges() {
		t.Errorf("setting the same overlay marked a change")
	}
	if err := e.Begin(); !errors.Is(err, ErrAlreadyEditing) {
		t.Errorf("second Begin: err = %v, want ErrAlreadyEditing", err)
	}
}

func TestNotReadyIgnoresGeometryEdits(t *testing.T) {
	e := New("/media/a.jpg", data.DefaultVariants())
	e.Begin()
	if e.SetZoom(150) || e.SetPan(20, 20) {
		t.Errorf("geometry edit applied before measurement")
	}
	e.Measure(400, 300)
	e.NaturalFailed(errors.New("404"))
	if e.Ready() || e.SetZoom(150) {
		t.Errorf("geometry edit applied after load failure")
	}
	if e.LoadError() == nil {
		t.Errorf("load error not kept")
	}
	if !e.SetOverlay(20) {
		t.Errorf("overlay should not depend on geometry")
	}
}

func TestSliderValuesAreClamped(t *testing.T) {
	e := measured(t)
	e.Begin()
	e.SetOverlay(90)
	e.SetZoom(20)
	p := e.Draft().Get(data.DeviceDesktop)
	if p.Overlay != 70 {
		t.Errorf("overlay = %v, want 70", p.Overlay)
	}
	if p.Zoom != 134 {
		t.Errorf("zoom = %v, want cover floor 134", p.Zoom)
	}
	e.SetZoom(1000)
	e.SetPan(-500, 500)
	p = e.Draft().Get(data.DeviceDesktop)
	if p.Zoom != 300 || p.PanX != -100 || p.PanY != 100 {
		t.Errorf("got %+v, want zoom 300 pan (-100,100)", p)
	}
}

func TestSaveClampsZoomToFloor(t *testing.T) {
	e := measured(t)
	e.Begin()
	e.SetOverlay(20)
	saved, err := e.Save()
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if got := saved.Get(data.DeviceDesktop).Zoom; got != 134 {
		t.Errorf("saved zoom = %v, want 134", got)
	}
}

func TestChangeSourceResetsZoomAndPan(t *testing.T) {
	tests := []struct {
		name         string
		resetOverlay bool
		wantOverlay  float64
	}{
		{"keeps overlay", false, 40},
		{"resets overlay", true, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			committed := data.NewVariants(data.Params{Zoom: 200, PanX: 50, PanY: 20, Overlay: 40})
			committed.Set(data.DeviceMobile, data.Params{Zoom: 220, PanX: -30, Overlay: 40})
			e := New("/media/a.jpg", committed, WithNatural(Size{Width: 1600, Height: 900}))
			e.Measure(400, 300)
			e.Begin()
			e.ChangeSource("/media/b.jpg", tt.resetOverlay)

			for _, d := range data.Devices {
				want := data.Params{Zoom: 100, Overlay: tt.wantOverlay}
				if diff := cmp.Diff(want, e.Draft().Get(d)); diff != "" {
					t.Errorf("%s draft mismatch (-want +got):\n%s", d, diff)
				}
			}
			if e.Ready() {
				t.Errorf("new source should wait for its natural size")
			}
			if !e.HasChanges() || e.Source() != "/media/b.jpg" {
				t.Errorf("source change not tracked")
			}
		})
	}
}

func TestChangeSourceWhileViewingReplacesRecord(t *testing.T) {
	e := New("/media/a.jpg", data.NewVariants(data.Params{Zoom: 200, Overlay: 40}))
	e.ChangeSource("/media/b.jpg", false)
	if !e.Committed().Equal(data.DefaultVariants()) || e.CommittedSource() != "/media/b.jpg" {
		t.Errorf("committed not replaced: %+v %s", e.Committed(), e.CommittedSource())
	}
}

func TestDeviceSwitchKeepsOtherDraft(t *testing.T) {
	e := measured(t)
	e.Begin()
	e.SetZoom(150)

	e.SetDevice(data.DeviceMobile)
	if got := e.Current().Zoom; got != 100 {
		t.Errorf("mobile zoom = %v, want 100 as seeded when editing began", got)
	}
	e.SetZoom(200)
	e.SetDevice(data.DeviceDesktop)

	if got := e.Draft().Get(data.DeviceDesktop).Zoom; got != 150 {
		t.Errorf("desktop zoom = %v, want 150", got)
	}
	if got := e.Draft().Get(data.DeviceMobile).Zoom; got != 200 {
		t.Errorf("mobile zoom = %v, want 200", got)
	}
}

func TestDesktopEditsLeaveMobileAlone(t *testing.T) {
	committed := data.NewVariants(data.Params{Zoom: 140, PanX: -20, Overlay: 10})
	e := New("/media/hero.jpg", committed, WithNatural(Size{Width: 1600, Height: 900}))
	e.Measure(400, 300)
	e.Begin()
	seeded := data.Params{Zoom: 140, PanX: -20, Overlay: 10}
	if diff := cmp.Diff(seeded, e.Draft().Get(data.DeviceMobile)); diff != "" {
		t.Errorf("mobile draft at begin (-want +got):\n%s", diff)
	}

	e.SetZoom(200)
	e.SetPan(50, 0)
	if diff := cmp.Diff(seeded, e.Draft().Get(data.DeviceMobile)); diff != "" {
		t.Errorf("desktop edit moved mobile (-want +got):\n%s", diff)
	}

	saved, err := e.Save()
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if !saved.Customized(data.DeviceMobile) {
		t.Errorf("saved record left mobile following desktop")
	}
	if diff := cmp.Diff(seeded, saved.Get(data.DeviceMobile)); diff != "" {
		t.Errorf("saved mobile (-want +got):\n%s", diff)
	}
	if got := saved.Get(data.DeviceDesktop); got != (data.Params{Zoom: 200, PanX: 50, Overlay: 10}) {
		t.Errorf("saved desktop = %+v", got)
	}
}

func TestChangeSourceDropsOldFloors(t *testing.T) {
	t.Run("save before the new size is known", func(t *testing.T) {
		e := measured(t)
		e.Begin()
		e.ChangeSource("/media/b.jpg", false)
		saved, err := e.Save()
		if err != nil {
			t.Fatalf("Save: %v", err)
		}
		for _, d := range data.Devices {
			if got := saved.Get(d).Zoom; got != 100 {
				t.Errorf("%s zoom = %v, want 100 for the unmeasured source", d, got)
			}
		}
	})

	t.Run("customized mobile", func(t *testing.T) {
		e := measured(t)
		e.Begin()
		e.SetDevice(data.DeviceMobile)
		e.SetZoom(160)
		e.SetDevice(data.DeviceDesktop)
		e.ChangeSource("/media/portrait.jpg", false)
		// portrait image in a landscape frame covers at 100
		e.SetNatural(900, 1600)
		if got := e.Placement().MinZoom; got != 100 {
			t.Fatalf("minZoom = %v, want 100", got)
		}
		saved, err := e.Save()
		if err != nil {
			t.Fatalf("Save: %v", err)
		}
		for _, d := range data.Devices {
			if got := saved.Get(d).Zoom; got != 100 {
				t.Errorf("%s zoom = %v, want 100", d, got)
			}
		}
	})
}

func TestCancelRestoresFloors(t *testing.T) {
	e := measured(t)
	e.SetDevice(data.DeviceMobile)
	e.SetDevice(data.DeviceDesktop)
	e.Begin()
	e.ChangeSource("/media/b.jpg", false)
	e.Cancel()

	e.Begin()
	e.SetOverlay(10)
	saved, err := e.Save()
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	for _, d := range data.Devices {
		if got := saved.Get(d).Zoom; got != 134 {
			t.Errorf("%s zoom = %v, want the restored floor 134", d, got)
		}
	}
}

func TestMeasureKeepsZoomAndPan(t *testing.T) {
	e := measured(t)
	e.Begin()
	e.SetZoom(200)
	e.SetPan(50, 50)
	before := e.Draft()
	e.Measure(1200, 300)
	e.Measure(0, 0)
	if !e.Draft().Equal(before) {
		t.Errorf("measure mutated draft: %+v -> %+v", before, e.Draft())
	}
}

func TestReferenceWidthDesktopOnly(t *testing.T) {
	e := New("/media/a.jpg", data.DefaultVariants(), WithReferenceWidth(800), WithNatural(Size{Width: 1000, Height: 1000}))
	e.Measure(400, 300)
	if got := e.Placement().ImgW; got != 800 {
		t.Errorf("desktop ImgW = %v, want 800", got)
	}
	e.SetDevice(data.DeviceMobile)
	if got := e.Placement().ImgW; got != 400 {
		t.Errorf("mobile ImgW = %v, want 400", got)
	}
}

func TestCancelAfterReselectingSameSource(t *testing.T) {
	e := measured(t)
	e.Begin()
	e.ChangeSource("/media/hero.jpg", false)
	if e.Ready() {
		t.Fatalf("reselected source should wait for its natural size")
	}
	e.Cancel()
	if !e.Ready() || e.Natural() != (Size{Width: 1600, Height: 900}) {
		t.Errorf("natural size not restored: %+v", e.Natural())
	}
	if got := e.Placement().MinZoom; got != 134 {
		t.Errorf("minZoom = %v, want 134", got)
	}
}
