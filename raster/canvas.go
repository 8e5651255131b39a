package raster

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"file_tools/watermark"

	"github.com/disintegration/imaging"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// Canvas is a watermark surface over a raster image. Its origin is the top
// left corner with y growing downwards, the same system placements use.
type Canvas struct {
	img   *image.NRGBA
	fonts *FontSet
}

// NewCanvas copies base into a new canvas; base itself is never modified.
func NewCanvas(base image.Image, fonts *FontSet) *Canvas {
	if fonts == nil {
		fonts = DefaultFontSet()
	}
	return &Canvas{img: imaging.Clone(base), fonts: fonts}
}

func (c *Canvas) Dims() watermark.Dims {
	b := c.img.Bounds()
	return watermark.Dims{Width: float64(b.Dx()), Height: float64(b.Dy())}
}

// Image returns the canvas contents.
func (c *Canvas) Image() *image.NRGBA {
	return c.img
}

// Prepare renders the content once, scaled and rotated, so every placement is
// a single masked composite.
func (c *Canvas) Prepare(spec watermark.Spec) (watermark.Stamp, error) {
	var (
		sprite *image.NRGBA
		w, h   float64
		err    error
	)
	switch spec.Kind {
	case watermark.KindText:
		sprite, w, h, err = c.textSprite(spec)
	case watermark.KindImage:
		sprite, w, h, err = imageSprite(spec)
	default:
		err = fmt.Errorf("unknown watermark kind %v", spec.Kind)
	}
	if err != nil {
		return nil, err
	}

	// imaging rotates counter-clockwise; spec rotation is clockwise on screen.
	if spec.Rotation != 0 && !sprite.Bounds().Empty() {
		sprite = imaging.Rotate(sprite, -spec.Rotation, color.Transparent)
	}
	alpha := uint8(math.Round(spec.Opacity * 255))
	return &canvasStamp{
		dst:    c.img,
		sprite: sprite,
		mask:   image.NewUniform(color.Alpha{A: alpha}),
		w:      w,
		h:      h,
	}, nil
}

// textSprite draws spec.Text at FontSize*Scale. The tiling size is the
// advance width by the scaled font size.
func (c *Canvas) textSprite(spec watermark.Spec) (*image.NRGBA, float64, float64, error) {
	size := spec.FontSize * spec.Scale
	face, err := c.fonts.Face(spec.Font, size)
	if err != nil {
		return nil, 0, 0, fmt.Errorf("load %s face: %w", spec.Font, err)
	}
	defer face.Close()

	advance := font.MeasureString(face, spec.Text)
	m := face.Metrics()
	width := advance.Ceil()
	height := (m.Ascent + m.Descent).Ceil()
	if width <= 0 || height <= 0 {
		return image.NewNRGBA(image.Rectangle{}), 0, size, nil
	}

	sprite := image.NewNRGBA(image.Rect(0, 0, width, height))
	d := &font.Drawer{
		Dst:  sprite,
		Src:  image.NewUniform(color.NRGBA{R: spec.Color.R, G: spec.Color.G, B: spec.Color.B, A: 0xff}),
		Face: face,
		Dot:  fixed.Point26_6{X: 0, Y: m.Ascent},
	}
	d.DrawString(spec.Text)
	return sprite, fixedToFloat(advance), size, nil
}

func imageSprite(spec watermark.Spec) (*image.NRGBA, float64, float64, error) {
	b := spec.Image.Bounds()
	if b.Empty() {
		return nil, 0, 0, fmt.Errorf("logo is empty")
	}
	w := float64(b.Dx()) * spec.Scale
	h := float64(b.Dy()) * spec.Scale
	pw := max(1, int(math.Round(w)))
	ph := max(1, int(math.Round(h)))
	if pw == b.Dx() && ph == b.Dy() {
		return imaging.Clone(spec.Image), w, h, nil
	}
	return imaging.Resize(spec.Image, pw, ph, imaging.Lanczos), w, h, nil
}

func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}

type canvasStamp struct {
	dst    *image.NRGBA
	sprite *image.NRGBA
	mask   image.Image
	w, h   float64
}

func (s *canvasStamp) Size() (float64, float64) {
	return s.w, s.h
}

// DrawAt composites the sprite centered on p. Parts outside the canvas are
// clipped.
func (s *canvasStamp) DrawAt(p watermark.Point) error {
	sb := s.sprite.Bounds()
	if sb.Empty() {
		return nil
	}
	at := image.Pt(
		int(math.Round(p.X-float64(sb.Dx())/2)),
		int(math.Round(p.Y-float64(sb.Dy())/2)),
	)
	r := image.Rectangle{Min: at, Max: at.Add(sb.Size())}
	draw.DrawMask(s.dst, r, s.sprite, sb.Min, s.mask, image.Point{}, draw.Over)
	return nil
}
