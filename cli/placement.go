package cli

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/ignisVeneficus/bistro/config"
	"github.com/ignisVeneficus/bistro/data"
	"github.com/ignisVeneficus/bistro/viewport"
	"gopkg.in/yaml.v3"
)

type placementOutput struct {
	Device    data.Device        `yaml:"device"`
	Frame     string             `yaml:"frame,omitempty"`
	Ready     bool               `yaml:"ready"`
	Params    data.Params        `yaml:"params"`
	Placement viewport.Placement `yaml:"placement"`
}

func runPlacement(cfg config.Config, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("placement", flag.ContinueOnError)

	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: %s placement [options]\n\n", os.Args[0])
		fmt.Fprintln(fs.Output(), "Options:")
		fs.PrintDefaults()
	}

	width := fs.Float64("width", 0, "frame width in px")
	height := fs.Float64("height", 0, "frame height in px")
	naturalW := fs.Float64("natural-width", 0, "image width in px")
	naturalH := fs.Float64("natural-height", 0, "image height in px")
	frameName := fs.String("frame", "", "frame preset from the config")
	deviceName := fs.String("device", string(data.DeviceDesktop), "desktop or mobile")
	var p data.Params
	fs.Float64Var(&p.Zoom, "zoom", viewport.DefaultZoom, "zoom percent")
	fs.Float64Var(&p.PanX, "pan-x", 0, "horizontal pan, -100..100")
	fs.Float64Var(&p.PanY, "pan-y", 0, "vertical pan, -100..100")
	fs.Float64Var(&p.Overlay, "overlay", 0, "overlay opacity percent")

	if err := fs.Parse(args); err != nil {
		return err
	}

	device, err := data.ParseDevice(*deviceName)
	if err != nil {
		return err
	}
	var ref float64
	if *frameName != "" {
		fc, ok := cfg.Frames.Lookup(*frameName)
		if !ok {
			return fmt.Errorf("unknown frame %q", *frameName)
		}
		if device == data.DeviceDesktop {
			ref = fc.ReferenceWidth
		}
	}

	p.Zoom = viewport.ClampZoom(p.Zoom, viewport.MinZoom(*width, *height, *naturalW, *naturalH, ref))
	p.Overlay = viewport.ClampOverlay(p.Overlay)
	pl := viewport.Compute(viewport.Input{
		ContainerW:     *width,
		ContainerH:     *height,
		NaturalW:       *naturalW,
		NaturalH:       *naturalH,
		Zoom:           p.Zoom,
		PanX:           p.PanX,
		PanY:           p.PanY,
		ReferenceWidth: ref,
	})
	if pl.Ready() {
		p.PanX, p.PanY = pl.PanX, pl.PanY
	}

	enc := yaml.NewEncoder(out)
	enc.SetIndent(2)
	if err := enc.Encode(placementOutput{Device: device, Frame: *frameName, Ready: pl.Ready(), Params: p, Placement: pl}); err != nil {
		return err
	}
	return enc.Close()
}
