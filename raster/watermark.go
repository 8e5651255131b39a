package raster

import (
	"image"

	"file_tools/toolerr"
	"file_tools/watermark"

	"github.com/disintegration/imaging"
)

// DecodeLogo decodes an uploaded watermark image.
func DecodeLogo(data []byte) (image.Image, error) {
	img, _, err := Decode(data)
	if err != nil {
		return nil, toolerr.Decode("raster.DecodeLogo", err)
	}
	return img, nil
}

// Stamp watermarks img and returns the stamped copy. An invalid spec or layout
// is InputRejected; a failure while drawing is ExportFailed.
func Stamp(img image.Image, layout watermark.Layout, spec watermark.Spec, fonts *FontSet) (*image.NRGBA, error) {
	const op = "raster.Stamp"
	if err := spec.Validate(); err != nil {
		return nil, toolerr.Rejected(op, "%v", err)
	}
	if err := layout.Validate(); err != nil {
		return nil, toolerr.Rejected(op, "%v", err)
	}
	c := NewCanvas(img, fonts)
	if _, err := watermark.Apply(c, layout, spec); err != nil {
		return nil, toolerr.Export(op, err)
	}
	return c.Image(), nil
}

// WatermarkImage decodes src, stamps it and encodes it back in its own format
// (PNG for formats without an encoder).
func WatermarkImage(src []byte, layout watermark.Layout, spec watermark.Spec, fonts *FontSet) ([]byte, imaging.Format, error) {
	img, format, err := Decode(src)
	if err != nil {
		return nil, 0, err
	}
	out, err := Stamp(img, layout, spec, fonts)
	if err != nil {
		return nil, 0, err
	}
	data, err := Encode(out, format, 100)
	if err != nil {
		return nil, 0, err
	}
	return data, format, nil
}

// Preview stamps img and returns it as PNG.
func Preview(img image.Image, layout watermark.Layout, spec watermark.Spec, fonts *FontSet) ([]byte, error) {
	out, err := Stamp(img, layout, spec, fonts)
	if err != nil {
		return nil, err
	}
	return Encode(out, imaging.PNG, 0)
}
