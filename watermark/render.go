package watermark

import "fmt"

// Surface is a drawing target: a raster canvas or one page of a document.
type Surface interface {
	Dims() Dims
	// Prepare binds spec to the surface, loading fonts or images once per pass.
	Prepare(spec Spec) (Stamp, error)
}

// Stamp draws one prepared watermark.
type Stamp interface {
	// Size is the item size used for tiling, already scaled.
	Size() (w, h float64)
	// DrawAt draws the content rotated, scaled and faded, centered on p.
	// p is in raster coordinates; page surfaces flip it themselves.
	DrawAt(p Point) error
}

// Apply stamps spec onto s at every placement of layout and returns how many
// instances were drawn. The first failing draw aborts the pass.
func Apply(s Surface, layout Layout, spec Spec) (int, error) {
	if err := spec.Validate(); err != nil {
		return 0, err
	}
	if err := layout.Validate(); err != nil {
		return 0, err
	}
	stamp, err := s.Prepare(spec)
	if err != nil {
		return 0, err
	}
	w, h := stamp.Size()
	pts := Placements(layout, s.Dims(), w, h)
	for i, p := range pts {
		if err := stamp.DrawAt(p); err != nil {
			return i, fmt.Errorf("draw at (%.1f, %.1f): %w", p.X, p.Y, err)
		}
	}
	return len(pts), nil
}

// FlipY converts a y coordinate between the raster system (origin top-left,
// y down) and the page system (origin bottom-left, y up). It is its own
// inverse.
func FlipY(height, y float64) float64 {
	return height - y
}

// ToPage maps a raster placement onto a page of the given height.
func ToPage(p Point, pageHeight float64) Point {
	return Point{X: p.X, Y: FlipY(pageHeight, p.Y)}
}
