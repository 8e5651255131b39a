package watermark

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSinglePlacementIsExactPercentage(t *testing.T) {
	d := Dims{Width: 813, Height: 457}
	for _, pct := range [][2]float64{{0, 0}, {50, 50}, {100, 100}, {12.5, 87.5}, {33, 66}} {
		pts := Placements(Single{XPercent: pct[0], YPercent: pct[1]}, d, 10, 10)
		require.Len(t, pts, 1)
		assert.Equal(t, d.Width*pct[0]/100, pts[0].X)
		assert.Equal(t, d.Height*pct[1]/100, pts[0].Y)
	}
}

func TestTileEndToEndScenario(t *testing.T) {
	pts := Placements(Tile{GapX: 200, GapY: 200}, Dims{Width: 800, Height: 600}, 100, 40)

	// 5 columns (-300..900) x 5 rows (-240..720)
	require.Len(t, pts, 25)

	var firstRow []float64
	for _, p := range pts {
		if p.Y == -240 {
			firstRow = append(firstRow, p.X)
		}
	}
	// floor(-240/240) = -1 is odd, so the overscan row is shifted by 150.
	assert.Equal(t, []float64{-150, 150, 450, 750, 1050}, firstRow)

	var secondRow []float64
	for _, p := range pts {
		if p.Y == 0 {
			secondRow = append(secondRow, p.X)
		}
	}
	assert.Equal(t, []float64{-300, 0, 300, 600, 900}, secondRow)
}

func TestTileIsColumnMajor(t *testing.T) {
	pts := Placements(Tile{GapX: 200, GapY: 200}, Dims{Width: 800, Height: 600}, 100, 40)

	assert.Equal(t, Point{X: -150, Y: -240}, pts[0])
	assert.Equal(t, Point{X: -300, Y: 0}, pts[1])
	assert.Equal(t, Point{X: -150, Y: 240}, pts[2])
}

func TestTileCountCoversOverscannedSurface(t *testing.T) {
	cases := []struct {
		w, h, gx, gy, W, H float64
	}{
		{100, 40, 200, 200, 800, 600},
		{37, 11, 5, 9, 640, 480},
		{250, 60, 0, 0, 1024, 768},
		{10, 10, 300, 300, 100, 100},
	}
	for _, c := range cases {
		stepX, stepY := c.w+c.gx, c.h+c.gy
		cols := int(math.Ceil((c.W + 2*stepX) / stepX))
		rows := int(math.Ceil((c.H + 2*stepY) / stepY))

		first := Placements(Tile{GapX: c.gx, GapY: c.gy}, Dims{Width: c.W, Height: c.H}, c.w, c.h)
		second := Placements(Tile{GapX: c.gx, GapY: c.gy}, Dims{Width: c.W, Height: c.H}, c.w, c.h)

		assert.Len(t, first, cols*rows, "case %+v", c)
		assert.Equal(t, first, second, "placements must be deterministic")
	}
}

func TestTileStaggerAlternatesByRow(t *testing.T) {
	stepX, stepY := 130.0, 70.0
	pts := Placements(Tile{GapX: 30, GapY: 20}, Dims{Width: 500, Height: 500}, 100, 50)

	offsets := map[float64]float64{}
	for _, p := range pts {
		off := math.Mod(p.X+stepX, stepX)
		if prev, ok := offsets[p.Y]; ok {
			assert.InDelta(t, prev, off, 1e-9, "row %v mixes offsets", p.Y)
		}
		offsets[p.Y] = off
	}

	for y := -stepY; y+2*stepY < 500+stepY; y += stepY {
		assert.InDelta(t, offsets[y], offsets[y+2*stepY], 1e-9)
		assert.InDelta(t, stepX/2, math.Abs(offsets[y]-offsets[y+stepY]), 1e-9)
	}
}

func TestTileDegenerateItemTerminates(t *testing.T) {
	pts := Placements(Tile{}, Dims{Width: 20, Height: 10}, 0, 0)

	require.NotEmpty(t, pts)
	assert.Len(t, pts, 22*12)
}

func TestTileNegativeOrNaNSizesFallBackToMinimumStep(t *testing.T) {
	assert.Equal(t, 1.0, TileStep(-5, 0))
	assert.Equal(t, 1.0, TileStep(math.NaN(), 3))
	assert.Equal(t, 1.0, TileStep(math.Inf(1), 0))
	assert.Equal(t, 7.0, TileStep(4, 3))
}

func TestStaggeredParity(t *testing.T) {
	assert.True(t, Staggered(-240, 240))
	assert.False(t, Staggered(0, 240))
	assert.True(t, Staggered(240, 240))
	assert.False(t, Staggered(480, 240))
	assert.False(t, Staggered(-480, 240))
}

func TestLayoutValidate(t *testing.T) {
	assert.NoError(t, Single{XPercent: 0, YPercent: 100}.Validate())
	assert.Error(t, Single{XPercent: -1, YPercent: 50}.Validate())
	assert.Error(t, Single{XPercent: 50, YPercent: 100.5}.Validate())
	assert.NoError(t, Tile{}.Validate())
	assert.Error(t, Tile{GapX: -1}.Validate())
}
