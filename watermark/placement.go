package watermark

import (
	"fmt"
	"math"
)

// Mode names a layout.
type Mode string

const (
	ModeSingle Mode = "single"
	ModeTile   Mode = "tile"
)

// Layout decides where instances of the watermark go.
type Layout interface {
	Mode() Mode
	Validate() error
	placements(d Dims, itemW, itemH float64) []Point
}

// Single places one instance at a percentage of the surface size.
type Single struct {
	XPercent float64
	YPercent float64
}

func (Single) Mode() Mode { return ModeSingle }

func (l Single) Validate() error {
	if l.XPercent < 0 || l.XPercent > 100 || l.YPercent < 0 || l.YPercent > 100 {
		return fmt.Errorf("position (%v%%, %v%%) out of range [0,100]", l.XPercent, l.YPercent)
	}
	return nil
}

func (l Single) placements(d Dims, _, _ float64) []Point {
	return []Point{{X: d.Width * l.XPercent / 100, Y: d.Height * l.YPercent / 100}}
}

// Tile repeats the watermark in a staggered grid with one cell of overscan on
// every side.
type Tile struct {
	GapX float64
	GapY float64
}

func (Tile) Mode() Mode { return ModeTile }

func (l Tile) Validate() error {
	if l.GapX < 0 || l.GapY < 0 {
		return fmt.Errorf("gaps must not be negative, got %v x %v", l.GapX, l.GapY)
	}
	return nil
}

// minStep keeps the grid loops finite when the item and the gap are both empty.
const minStep = 1.0

func (l Tile) placements(d Dims, itemW, itemH float64) []Point {
	stepX := TileStep(itemW, l.GapX)
	stepY := TileStep(itemH, l.GapY)

	var pts []Point
	for x := -stepX; x < d.Width+stepX; x += stepX {
		for y := -stepY; y < d.Height+stepY; y += stepY {
			px := x
			if Staggered(y, stepY) {
				px += stepX / 2
			}
			pts = append(pts, Point{X: px, Y: y})
		}
	}
	return pts
}

// TileStep is the distance between neighbouring cells along one axis.
func TileStep(item, gap float64) float64 {
	step := item + gap
	if !(step >= minStep) || math.IsInf(step, 0) {
		return minStep
	}
	return step
}

// Staggered reports whether the row at y is shifted by half a step. The parity
// is taken on the floored row index with a truncating remainder, so row -1 is
// odd.
func Staggered(y, stepY float64) bool {
	return int64(math.Floor(y/stepY))%2 != 0
}

// Placements returns the draw positions for layout on a surface of size d
// holding items of itemW x itemH. The result depends only on the arguments.
func Placements(layout Layout, d Dims, itemW, itemH float64) []Point {
	return layout.placements(d, itemW, itemH)
}
