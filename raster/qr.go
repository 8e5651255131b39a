package raster

import (
	"image"
	"image/color"

	"file_tools/toolerr"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/qr"
	"github.com/disintegration/imaging"
)

const (
	// QRSize is the side of the QR symbol in pixels, quiet zone excluded.
	QRSize = 256
	// QRQuietModules is the margin around the symbol in modules.
	QRQuietModules = 4
	// MaxQRText bounds the encoded payload.
	MaxQRText = 2048
)

// QRCode encodes text with high error correction and returns a PNG with a
// quiet zone around the symbol.
func QRCode(text string) ([]byte, error) {
	const op = "raster.QRCode"
	if text == "" {
		return nil, toolerr.Rejected(op, "text is empty")
	}
	if len(text) > MaxQRText {
		return nil, toolerr.Rejected(op, "text longer than %d bytes", MaxQRText)
	}

	code, err := qr.Encode(text, qr.H, qr.Auto)
	if err != nil {
		return nil, toolerr.Rejected(op, "encode: %v", err)
	}
	modules := code.Bounds().Dx()
	size := QRSize
	if size < modules {
		size = modules
	}
	scaled, err := barcode.Scale(code, size, size)
	if err != nil {
		return nil, toolerr.Export(op, err)
	}

	margin := size * QRQuietModules / modules
	canvas := imaging.New(size+2*margin, size+2*margin, color.White)
	out := imaging.Paste(canvas, scaled, image.Pt(margin, margin))
	return Encode(out, imaging.PNG, 0)
}
