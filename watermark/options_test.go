package watermark

import (
	"image"
	"testing"

	"file_tools/toolerr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultOptionsBuild(t *testing.T) {
	spec, layout, err := DefaultOptions().Build(nil)

	require.NoError(t, err)
	assert.Equal(t, KindText, spec.Kind)
	assert.Equal(t, "Confidential", spec.Text)
	assert.Equal(t, RGB{}, spec.Color)
	assert.Equal(t, -45.0, spec.Rotation)
	assert.Equal(t, SansSerif, spec.Font)
	assert.Equal(t, Single{XPercent: 50, YPercent: 50}, layout)
}

func TestOptionsBuildTile(t *testing.T) {
	o := DefaultOptions()
	o.Mode = "tile"
	o.GapX, o.GapY = 12, 0
	o.Font = "Courier"
	o.Color = "#f80"

	spec, layout, err := o.Build(nil)

	require.NoError(t, err)
	assert.Equal(t, Tile{GapX: 12, GapY: 0}, layout)
	assert.Equal(t, Monospace, spec.Font)
	assert.Equal(t, RGB{R: 0xff, G: 0x88, B: 0x00}, spec.Color)
}

func TestOptionsBuildImageNeedsLogo(t *testing.T) {
	o := DefaultOptions()
	o.Kind = "image-logo"

	_, _, err := o.Build(nil)
	assert.ErrorIs(t, err, toolerr.ErrInputRejected)

	logo := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	spec, _, err := o.Build(logo)
	require.NoError(t, err)
	assert.Equal(t, KindImage, spec.Kind)
	assert.Same(t, logo, spec.Image)
}

func TestOptionsBuildRejects(t *testing.T) {
	cases := map[string]func(*Options){
		"opacity":   func(o *Options) { o.Opacity = 1.5 },
		"scale":     func(o *Options) { o.Scale = 0 },
		"font size": func(o *Options) { o.FontSize = -1 },
		"color":     func(o *Options) { o.Color = "blue" },
		"font":      func(o *Options) { o.Font = "comic sans" },
		"kind":      func(o *Options) { o.Kind = "video" },
		"mode":      func(o *Options) { o.Mode = "spiral" },
		"x":         func(o *Options) { o.X = 101 },
		"gap":       func(o *Options) { o.Mode = "tile"; o.GapY = -3 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			o := DefaultOptions()
			mutate(&o)
			_, _, err := o.Build(nil)
			assert.ErrorIs(t, err, toolerr.ErrInputRejected)
		})
	}
}

func TestParseHexColor(t *testing.T) {
	c, err := ParseHexColor("#1A2b3C")
	require.NoError(t, err)
	assert.Equal(t, RGB{R: 0x1a, G: 0x2b, B: 0x3c}, c)
	assert.Equal(t, "#1a2b3c", c.Hex())

	_, err = ParseHexColor("#12345")
	assert.Error(t, err)
	_, err = ParseHexColor("#gggggg")
	assert.Error(t, err)
}
