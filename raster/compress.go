package raster

import (
	"image"
	"image/color"

	"file_tools/toolerr"

	"github.com/disintegration/imaging"
)

const (
	// MaxCompressedSide caps the longest side of a compressed image.
	MaxCompressedSide = 1920

	minJPEGQuality  = 5
	minCompressSide = 64
	downscaleStep   = 0.85
)

// CompressResult describes a compressed image.
type CompressResult struct {
	Data         []byte
	OriginalSize int
	Quality      int
	Width        int
	Height       int
}

// Reduction is the saved size in percent of the original.
func (r CompressResult) Reduction() float64 {
	if r.OriginalSize == 0 {
		return 0
	}
	return float64(r.OriginalSize-len(r.Data)) / float64(r.OriginalSize) * 100
}

// CompressImage re-encodes src as JPEG no larger than targetKB when possible.
// It looks for the highest quality that fits and only shrinks the image once
// the lowest quality is still too large. When nothing fits, the smallest
// attempt is returned.
func CompressImage(src []byte, targetKB int) (CompressResult, error) {
	const op = "raster.CompressImage"
	if targetKB <= 0 {
		return CompressResult{}, toolerr.Rejected(op, "target size must be positive, got %d KB", targetKB)
	}
	img, _, err := Decode(src)
	if err != nil {
		return CompressResult{}, err
	}

	target := targetKB * 1024
	img = flatten(imaging.Fit(img, MaxCompressedSide, MaxCompressedSide, imaging.Lanczos))

	for {
		data, q, err := fitQuality(img, target)
		if err != nil {
			return CompressResult{}, err
		}
		b := img.Bounds()
		res := CompressResult{Data: data, OriginalSize: len(src), Quality: q, Width: b.Dx(), Height: b.Dy()}
		if len(data) <= target {
			return res, nil
		}
		nw := int(float64(b.Dx()) * downscaleStep)
		nh := int(float64(b.Dy()) * downscaleStep)
		if nw < minCompressSide || nh < minCompressSide {
			return res, nil
		}
		img = imaging.Resize(img, nw, nh, imaging.Lanczos)
	}
}

// fitQuality binary-searches the highest JPEG quality whose output fits
// target bytes. If none fits it returns the minimum-quality encoding.
func fitQuality(img image.Image, target int) ([]byte, int, error) {
	lo, hi := minJPEGQuality, 100
	var best []byte
	bestQ := 0
	for lo <= hi {
		q := (lo + hi) / 2
		data, err := Encode(img, imaging.JPEG, q)
		if err != nil {
			return nil, 0, err
		}
		if len(data) <= target {
			best, bestQ = data, q
			lo = q + 1
		} else {
			hi = q - 1
		}
	}
	if best != nil {
		return best, bestQ, nil
	}
	data, err := Encode(img, imaging.JPEG, minJPEGQuality)
	return data, minJPEGQuality, err
}

// flatten composites img over white so transparent areas do not turn black in
// JPEG output.
func flatten(img image.Image) *image.NRGBA {
	b := img.Bounds()
	bg := imaging.New(b.Dx(), b.Dy(), color.White)
	return imaging.Overlay(bg, img, image.Pt(0, 0), 1)
}
