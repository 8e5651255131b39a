package pdf

import (
	"fmt"
	"image"

	"file_tools/watermark"
)

// pageItem places one watermark instance in PDF user space: origin at the
// bottom left, y growing upwards, angles counter-clockwise in degrees.
type pageItem struct {
	Center        watermark.Point
	Angle         float64
	Opacity       float64
	Width, Height float64
}

// pageCanvas is the drawing surface of a single PDF page.
type pageCanvas interface {
	Size() watermark.Dims
	TextWidth(text string, family watermark.FontFamily, size float64) float64
	AddImage(img image.Image) (string, error)
	DrawText(it pageItem, text string, family watermark.FontFamily, size float64, c watermark.RGB) error
	DrawImage(it pageItem, name string) error
}

// pageSurface adapts a pageCanvas to watermark.Surface. Placements arrive in
// raster coordinates and are flipped before they reach the canvas.
type pageSurface struct {
	canvas pageCanvas
}

func (s *pageSurface) Dims() watermark.Dims {
	return s.canvas.Size()
}

func (s *pageSurface) Prepare(spec watermark.Spec) (watermark.Stamp, error) {
	st := &pageStamp{canvas: s.canvas, spec: spec, pageHeight: s.canvas.Size().Height}
	switch spec.Kind {
	case watermark.KindText:
		st.size = spec.FontSize * spec.Scale
		st.w = s.canvas.TextWidth(spec.Text, spec.Font, st.size)
		st.h = st.size
	case watermark.KindImage:
		b := spec.Image.Bounds()
		if b.Empty() {
			return nil, fmt.Errorf("logo is empty")
		}
		name, err := s.canvas.AddImage(spec.Image)
		if err != nil {
			return nil, fmt.Errorf("embed logo: %w", err)
		}
		st.image = name
		st.w = float64(b.Dx()) * spec.Scale
		st.h = float64(b.Dy()) * spec.Scale
	default:
		return nil, fmt.Errorf("unknown watermark kind %v", spec.Kind)
	}
	return st, nil
}

type pageStamp struct {
	canvas     pageCanvas
	spec       watermark.Spec
	pageHeight float64
	image      string
	size       float64
	w, h       float64
}

func (st *pageStamp) Size() (float64, float64) {
	return st.w, st.h
}

// DrawAt draws centered on p. Rotation is clockwise on screen and therefore
// negated for the counter-clockwise page primitives.
func (st *pageStamp) DrawAt(p watermark.Point) error {
	it := pageItem{
		Center:  watermark.ToPage(p, st.pageHeight),
		Angle:   -st.spec.Rotation,
		Opacity: st.spec.Opacity,
		Width:   st.w,
		Height:  st.h,
	}
	if st.spec.Kind == watermark.KindImage {
		return st.canvas.DrawImage(it, st.image)
	}
	if st.spec.Text == "" {
		return nil
	}
	return st.canvas.DrawText(it, st.spec.Text, st.spec.Font, st.size, st.spec.Color)
}
