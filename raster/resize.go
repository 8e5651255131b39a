package raster

import (
	"math"

	"file_tools/toolerr"

	"github.com/disintegration/imaging"
)

// MaxResizeSide bounds the requested output size.
const MaxResizeSide = 10000

// TargetSize resolves the output size. With keepAspect the width wins and
// the height follows the source ratio; a zero width is derived from height.
func TargetSize(srcW, srcH, width, height int, keepAspect bool) (int, int) {
	if srcW <= 0 || srcH <= 0 {
		return width, height
	}
	switch {
	case keepAspect && width > 0:
		height = int(math.Round(float64(width) / float64(srcW) * float64(srcH)))
	case keepAspect && height > 0:
		width = int(math.Round(float64(height) / float64(srcH) * float64(srcW)))
	case width <= 0 && height > 0:
		width = srcW
	case height <= 0 && width > 0:
		height = srcH
	}
	return width, height
}

// ResizeImage scales src to width x height and keeps its encoding.
func ResizeImage(src []byte, width, height int, keepAspect bool) ([]byte, imaging.Format, error) {
	const op = "raster.ResizeImage"

	img, format, err := Decode(src)
	if err != nil {
		return nil, 0, err
	}
	b := img.Bounds()
	w, h := TargetSize(b.Dx(), b.Dy(), width, height, keepAspect)
	if w <= 0 || h <= 0 {
		return nil, 0, toolerr.Rejected(op, "target size %dx%d must be positive", w, h)
	}
	if w > MaxResizeSide || h > MaxResizeSide {
		return nil, 0, toolerr.Rejected(op, "target size %dx%d exceeds %d pixels per side", w, h, MaxResizeSide)
	}

	out := imaging.Resize(img, w, h, imaging.Lanczos)
	data, err := Encode(out, format, 100)
	if err != nil {
		return nil, 0, err
	}
	return data, format, nil
}
