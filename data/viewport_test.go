package data

import "testing"

func TestSeededCopiesDesktopOnce(t *testing.T) {
	desktop := Params{Zoom: 150, PanX: 20, Overlay: 30}
	v := NewVariants(desktop)
	if v.Customized(DeviceMobile) {
		t.Fatalf("new record has a customized mobile variant")
	}

	s := v.Seeded()
	if !s.Customized(DeviceMobile) || s.Get(DeviceMobile) != desktop {
		t.Fatalf("seeded mobile = %+v (customized %v), want %+v", s.Get(DeviceMobile), s.Customized(DeviceMobile), desktop)
	}
	s.Set(DeviceDesktop, Params{Zoom: 250})
	if s.Get(DeviceMobile) != desktop {
		t.Errorf("desktop change reached seeded mobile: %+v", s.Get(DeviceMobile))
	}
	if v.Customized(DeviceMobile) {
		t.Errorf("Seeded modified its receiver")
	}

	mobile := Params{Zoom: 200, PanY: -40}
	v.Set(DeviceMobile, mobile)
	if got := v.Seeded().Get(DeviceMobile); got != mobile {
		t.Errorf("Seeded overwrote customized mobile: %+v", got)
	}
}
