package raster

import (
	"image"
	"image/color"

	"file_tools/toolerr"
	"file_tools/watermark"

	"github.com/disintegration/imaging"
)

// DefaultCropFraction is the share of the shorter side kept by the default
// square crop.
const DefaultCropFraction = 0.9

// CropSquare crops img to box, or to a centered square covering
// DefaultCropFraction of the shorter side when box is nil. The box is clamped
// to the image.
func CropSquare(img image.Image, box *image.Rectangle) (*image.NRGBA, error) {
	b := img.Bounds()
	var r image.Rectangle
	if box != nil {
		r = box.Add(b.Min).Intersect(b)
	} else {
		side := int(float64(min(b.Dx(), b.Dy())) * DefaultCropFraction)
		x := b.Min.X + (b.Dx()-side)/2
		y := b.Min.Y + (b.Dy()-side)/2
		r = image.Rect(x, y, x+side, y+side)
	}
	if r.Empty() {
		return nil, toolerr.Rejected("raster.CropSquare", "crop box %v is outside the %dx%d image", box, b.Dx(), b.Dy())
	}
	return imaging.Crop(img, r), nil
}

// OnBackground composites img over a solid background.
func OnBackground(img image.Image, bg watermark.RGB) *image.NRGBA {
	b := img.Bounds()
	base := imaging.New(b.Dx(), b.Dy(), color.NRGBA{R: bg.R, G: bg.G, B: bg.B, A: 0xff})
	return imaging.Overlay(base, img, image.Pt(0, 0), 1)
}
