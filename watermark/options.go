package watermark

import (
	"image"

	"file_tools/toolerr"
)

// Options is every user-facing watermark setting in one place. Handlers bind
// it from the request on top of the configured defaults, then Build turns it
// into an immutable Spec and Layout.
type Options struct {
	Kind     string  `form:"kind" yaml:"kind"`
	Text     string  `form:"text" yaml:"text"`
	Mode     string  `form:"mode" yaml:"mode"`
	X        float64 `form:"x" yaml:"x"`
	Y        float64 `form:"y" yaml:"y"`
	GapX     float64 `form:"gap_x" yaml:"gap_x"`
	GapY     float64 `form:"gap_y" yaml:"gap_y"`
	Opacity  float64 `form:"opacity" yaml:"opacity"`
	Scale    float64 `form:"scale" yaml:"scale"`
	Rotation float64 `form:"rotation" yaml:"rotation"`
	Color    string  `form:"color" yaml:"color"`
	FontSize float64 `form:"font_size" yaml:"font_size"`
	Font     string  `form:"font" yaml:"font"`
}

// DefaultOptions mirrors the tool's initial state.
func DefaultOptions() Options {
	return Options{
		Kind:     "text",
		Text:     "Confidential",
		Mode:     string(ModeSingle),
		X:        50,
		Y:        50,
		GapX:     200,
		GapY:     200,
		Opacity:  0.5,
		Scale:    1,
		Rotation: -45,
		Color:    "#000000",
		FontSize: 48,
		Font:     string(SansSerif),
	}
}

// Build validates o and returns the render inputs. logo is required for image
// watermarks and ignored otherwise. All failures are InputRejected.
func (o Options) Build(logo image.Image) (Spec, Layout, error) {
	const op = "watermark.Options"

	kind, err := ParseKind(o.Kind)
	if err != nil {
		return Spec{}, nil, toolerr.Rejected(op, "%v", err)
	}
	font, err := ParseFontFamily(o.Font)
	if err != nil {
		return Spec{}, nil, toolerr.Rejected(op, "%v", err)
	}
	color, err := ParseHexColor(o.Color)
	if err != nil {
		return Spec{}, nil, toolerr.Rejected(op, "%v", err)
	}

	spec := Spec{
		Kind:     kind,
		Text:     o.Text,
		Color:    color,
		Opacity:  o.Opacity,
		Scale:    o.Scale,
		Rotation: o.Rotation,
		FontSize: o.FontSize,
		Font:     font,
	}
	if kind == KindImage {
		spec.Image = logo
	}
	if err := spec.Validate(); err != nil {
		return Spec{}, nil, toolerr.Rejected(op, "%v", err)
	}

	var layout Layout
	switch Mode(o.Mode) {
	case ModeSingle, "":
		layout = Single{XPercent: o.X, YPercent: o.Y}
	case ModeTile:
		layout = Tile{GapX: o.GapX, GapY: o.GapY}
	default:
		return Spec{}, nil, toolerr.Rejected(op, "unknown layout mode %q", o.Mode)
	}
	if err := layout.Validate(); err != nil {
		return Spec{}, nil, toolerr.Rejected(op, "%v", err)
	}
	return spec, layout, nil
}
