// Package raster holds the raster side of the file tools: decoding and
// encoding images, the top-left-origin watermark canvas and the single-image
// tools (compress, resize, profile photo, QR code).
package raster

import (
	"bytes"
	"fmt"
	"image"
	"strings"

	"file_tools/toolerr"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp" // register the webp decoder
)

// MaxPixels bounds decoded image size.
const MaxPixels = 64 * 1024 * 1024

// DefaultJPEGQuality is used whenever a JPEG is written without an explicit quality.
const DefaultJPEGQuality = 92

// Decode reads an image and reports the format it should be written back in.
// Formats without an encoder (webp) come back as PNG.
func Decode(data []byte) (image.Image, imaging.Format, error) {
	const op = "raster.Decode"

	cfg, name, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, 0, toolerr.Decode(op, err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, 0, toolerr.Decode(op, fmt.Errorf("empty image %dx%d", cfg.Width, cfg.Height))
	}
	if int64(cfg.Width)*int64(cfg.Height) > MaxPixels {
		return nil, 0, toolerr.Rejected(op, "image %dx%d exceeds %d pixels", cfg.Width, cfg.Height, MaxPixels)
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, 0, toolerr.Decode(op, err)
	}
	return img, outputFormat(name), nil
}

func outputFormat(name string) imaging.Format {
	f, err := imaging.FormatFromExtension(name)
	if err != nil {
		return imaging.PNG
	}
	return f
}

// Encode writes img in format f. quality applies to JPEG only; values outside
// 1..100 fall back to DefaultJPEGQuality.
func Encode(img image.Image, f imaging.Format, quality int) ([]byte, error) {
	if quality < 1 || quality > 100 {
		quality = DefaultJPEGQuality
	}
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, f, imaging.JPEGQuality(quality)); err != nil {
		return nil, toolerr.Export("raster.Encode", err)
	}
	return buf.Bytes(), nil
}

// ContentType returns the MIME type of f.
func ContentType(f imaging.Format) string {
	switch f {
	case imaging.JPEG:
		return "image/jpeg"
	case imaging.GIF:
		return "image/gif"
	case imaging.TIFF:
		return "image/tiff"
	case imaging.BMP:
		return "image/bmp"
	default:
		return "image/png"
	}
}

// Extension returns the file extension of f including the dot.
func Extension(f imaging.Format) string {
	if f == imaging.JPEG {
		return ".jpg"
	}
	return "." + strings.ToLower(f.String())
}
