package raster

import (
	"image"
	"image/color"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/require"
)

// solid returns a w x h image filled with c.
func solid(w, h int, c color.Color) *image.NRGBA {
	return imaging.New(w, h, c)
}

// encoded returns img encoded in f.
func encoded(t *testing.T, img image.Image, f imaging.Format) []byte {
	t.Helper()
	data, err := Encode(img, f, 90)
	require.NoError(t, err)
	return data
}

var (
	white = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	red   = color.NRGBA{R: 0xff, A: 0xff}
)
