// Package watermark computes where a repeated or single watermark lands on a
// surface and drives renderers that draw it.
//
// Placement is a pure function of the layout, the surface size and the item
// size, so the raster preview and the page export always agree on positions.
// Renderers differ only in how a single stamp is drawn.
package watermark

import (
	"fmt"
	"image"
	"strconv"
	"strings"
)

// Kind selects the watermark content.
type Kind int

const (
	KindText Kind = iota
	KindImage
)

func (k Kind) String() string {
	if k == KindImage {
		return "image"
	}
	return "text"
}

// ParseKind accepts "text", "image" and "image-logo".
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "text":
		return KindText, nil
	case "image", "image-logo", "logo":
		return KindImage, nil
	}
	return KindText, fmt.Errorf("unknown watermark kind %q", s)
}

// FontFamily is a generic font family name.
type FontFamily string

const (
	SansSerif FontFamily = "sans-serif"
	Serif     FontFamily = "serif"
	Monospace FontFamily = "monospace"
)

// ParseFontFamily accepts the generic family names and the standard PDF font
// names they correspond to.
func ParseFontFamily(s string) (FontFamily, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "sans-serif", "sans", "helvetica":
		return SansSerif, nil
	case "serif", "times", "times roman", "times-roman":
		return Serif, nil
	case "monospace", "mono", "courier":
		return Monospace, nil
	}
	return SansSerif, fmt.Errorf("unknown font family %q", s)
}

// RGB is an opaque color.
type RGB struct {
	R, G, B uint8
}

// ParseHexColor parses "#rrggbb" or "#rgb".
func ParseHexColor(s string) (RGB, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	if len(h) != 6 {
		return RGB{}, fmt.Errorf("invalid color %q", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return RGB{}, fmt.Errorf("invalid color %q", s)
	}
	return RGB{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}, nil
}

// Hex formats the color as "#rrggbb".
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Spec describes what is stamped. It is passed by value and never modified
// during a render pass.
type Spec struct {
	Kind     Kind
	Text     string
	Image    image.Image // decoded logo, KindImage only
	Color    RGB
	Opacity  float64 // 0..1
	Scale    float64 // > 0
	Rotation float64 // degrees, clockwise on screen
	FontSize float64 // px, KindText only
	Font     FontFamily
}

// Validate checks the ranges every renderer relies on.
func (s Spec) Validate() error {
	if s.Opacity < 0 || s.Opacity > 1 {
		return fmt.Errorf("opacity %v out of range [0,1]", s.Opacity)
	}
	if !(s.Scale > 0) {
		return fmt.Errorf("scale must be positive, got %v", s.Scale)
	}
	switch s.Kind {
	case KindText:
		if !(s.FontSize > 0) {
			return fmt.Errorf("font size must be positive, got %v", s.FontSize)
		}
	case KindImage:
		if s.Image == nil {
			return fmt.Errorf("image watermark requires a logo")
		}
	default:
		return fmt.Errorf("unknown watermark kind %d", s.Kind)
	}
	return nil
}

// Dims is the size of a target canvas or page.
type Dims struct {
	Width, Height float64
}

// Point is a draw position in raster coordinates (top-left origin).
type Point struct {
	X, Y float64
}
