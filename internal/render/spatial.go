package render

import (
	"fmt"
	"image"
	"image/color"

	"github.com/lox/crimereport/internal/analysis"
)

// Scatter renders a spatial sample, longitude along x and latitude along y.
func Scatter(sample analysis.SpatialSampleView, l Labels) ([]byte, error) {
	c := newCanvas(squareW, squareH, l)
	c.frame()

	if len(sample) == 0 {
		return c.encode()
	}

	latLo, latHi := sample[0].Lat, sample[0].Lat
	lngLo, lngHi := sample[0].Lng, sample[0].Lng
	for _, p := range sample {
		if p.Lat < latLo {
			latLo = p.Lat
		}
		if p.Lat > latHi {
			latHi = p.Lat
		}
		if p.Lng < lngLo {
			lngLo = p.Lng
		}
		if p.Lng > lngHi {
			lngHi = p.Lng
		}
	}

	for _, p := range sample {
		x := project(p.Lng, lngLo, lngHi, c.plot.Min.X, c.plot.Max.X)
		y := project(p.Lat, latLo, latHi, c.plot.Max.Y, c.plot.Min.Y)
		c.img.Set(x, y, dotBlue)
	}

	c.cornerLabels(latLo, latHi, lngLo, lngHi)
	return c.encode()
}

// Heatmap renders a density grid, darker-to-brighter with count. A nil grid
// (no geocoded rows) yields an empty plot.
func Heatmap(grid *analysis.DensityGridView, l Labels) ([]byte, error) {
	c := newCanvas(squareW, squareH, l)
	c.frame()

	if grid == nil || len(grid.Cells) == 0 {
		return c.encode()
	}

	max := 0
	for _, n := range grid.Cells {
		if n > max {
			max = n
		}
	}

	cellW := float64(c.plot.Dx()) / float64(grid.Size)
	cellH := float64(c.plot.Dy()) / float64(grid.Size)
	for cell, n := range grid.Cells {
		x0 := c.plot.Min.X + int(float64(cell.X)*cellW)
		x1 := c.plot.Min.X + int(float64(cell.X+1)*cellW)
		// Grid Y grows northward; pixel Y grows downward.
		y1 := c.plot.Max.Y - int(float64(cell.Y)*cellH)
		y0 := c.plot.Max.Y - int(float64(cell.Y+1)*cellH)
		if x1 <= x0 {
			x1 = x0 + 1
		}
		if y1 <= y0 {
			y1 = y0 + 1
		}
		c.fill(image.Rect(x0, y0, x1, y1), heatColor(float64(n)/float64(max)))
	}

	lo, hi := grid.Bounds.Lo(), grid.Bounds.Hi()
	c.cornerLabels(lo.Lat.Degrees(), hi.Lat.Degrees(), lo.Lng.Degrees(), hi.Lng.Degrees())
	return c.encode()
}

// frame draws the plot border for spatial charts, which have no y axis
// gridlines.
func (c *canvas) frame() {
	c.hline(c.plot.Min.X, c.plot.Max.X, c.plot.Min.Y, black)
	c.hline(c.plot.Min.X, c.plot.Max.X, c.plot.Max.Y, black)
	c.vline(c.plot.Min.X, c.plot.Min.Y, c.plot.Max.Y, black)
	c.vline(c.plot.Max.X, c.plot.Min.Y, c.plot.Max.Y, black)
}

func (c *canvas) cornerLabels(latLo, latHi, lngLo, lngHi float64) {
	c.text(fmt.Sprintf("%.3f", lngLo), c.plot.Min.X, c.plot.Max.Y+18, black)
	hiLabel := fmt.Sprintf("%.3f", lngHi)
	c.text(hiLabel, c.plot.Max.X-textWidth(hiLabel), c.plot.Max.Y+18, black)
	c.text(fmt.Sprintf("%.3f", latHi), 8, c.plot.Min.Y+10, black)
	c.text(fmt.Sprintf("%.3f", latLo), 8, c.plot.Max.Y, black)
}

func project(v, lo, hi float64, p0, p1 int) int {
	if hi <= lo {
		return (p0 + p1) / 2
	}
	p := p0 + int((v-lo)/(hi-lo)*float64(p1-p0))
	if p1 > p0 {
		if p < p0 {
			p = p0
		}
		if p > p1 {
			p = p1
		}
	} else {
		if p > p0 {
			p = p0
		}
		if p < p1 {
			p = p1
		}
	}
	return p
}

// heatColor maps a normalized count to a dark-blue-to-yellow ramp.
func heatColor(t float64) color.RGBA {
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	return color.RGBA{
		R: uint8(25 + 230*t),
		G: uint8(30 + 195*t),
		B: uint8(95 - 55*t),
		A: 255,
	}
}
