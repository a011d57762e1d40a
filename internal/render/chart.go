package render

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"
	"strconv"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/lox/crimereport/internal/metrics"
)

// Kind declares how a view is rendered. It travels with the figure so the
// report manifest can describe each artifact.
type Kind string

const (
	KindBar       Kind = "bar"
	KindLine      Kind = "line"
	KindHistogram Kind = "histogram"
	KindScatter   Kind = "scatter"
	KindDensity   Kind = "density"
	KindBox       Kind = "box"
)

// Labels carries the human-readable title and axis labels of a chart.
type Labels struct {
	Title string
	X     string
	Y     string
}

const (
	defaultW = 1000
	defaultH = 600
	squareW  = 800
	squareH  = 800

	marginLeft   = 80
	marginRight  = 30
	marginTop    = 50
	marginBottom = 70
)

var (
	white    = color.RGBA{255, 255, 255, 255}
	black    = color.RGBA{20, 20, 20, 255}
	gridGray = color.RGBA{220, 220, 220, 255}
	barBlue  = color.RGBA{66, 110, 180, 255}
	dotBlue  = color.RGBA{31, 119, 180, 255}
)

// canvas is a chart in progress: a white RGBA image with a reserved plot
// area inside the margins.
type canvas struct {
	img  *image.RGBA
	plot image.Rectangle
}

func newCanvas(w, h int, l Labels) *canvas {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), &image.Uniform{white}, image.Point{}, draw.Src)

	c := &canvas{
		img:  img,
		plot: image.Rect(marginLeft, marginTop, w-marginRight, h-marginBottom),
	}
	if l.Title != "" {
		c.text(l.Title, (w-textWidth(l.Title))/2, marginTop/2+5, black)
	}
	if l.X != "" {
		c.text(l.X, (w-textWidth(l.X))/2, h-14, black)
	}
	if l.Y != "" {
		c.text(l.Y, 10, marginTop-12, black)
	}
	return c
}

func (c *canvas) text(s string, x, y int, col color.Color) {
	d := &font.Drawer{
		Dst:  c.img,
		Src:  image.NewUniform(col),
		Face: basicfont.Face7x13,
		Dot:  fixed.Point26_6{X: fixed.I(x), Y: fixed.I(y)},
	}
	d.DrawString(s)
}

func textWidth(s string) int {
	return font.MeasureString(basicfont.Face7x13, s).Ceil()
}

func (c *canvas) hline(x0, x1, y int, col color.Color) {
	for x := x0; x <= x1; x++ {
		c.img.Set(x, y, col)
	}
}

func (c *canvas) vline(x, y0, y1 int, col color.Color) {
	for y := y0; y <= y1; y++ {
		c.img.Set(x, y, col)
	}
}

func (c *canvas) fill(r image.Rectangle, col color.Color) {
	draw.Draw(c.img, r, &image.Uniform{col}, image.Point{}, draw.Src)
}

// line draws a segment with the integer midpoint algorithm.
func (c *canvas) line(x0, y0, x1, y1 int, col color.Color) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy
	for {
		c.img.Set(x0, y0, col)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// yAxis draws the axes, gridlines and tick labels for a 0..max range and
// returns the value-to-pixel mapping.
func (c *canvas) yAxis(max float64) func(float64) int {
	if max <= 0 {
		max = 1
	}
	scale := func(v float64) int {
		return c.plot.Max.Y - int(v/max*float64(c.plot.Dy()))
	}

	step := niceStep(max, 5)
	for v := 0.0; v <= max+step/2; v += step {
		y := scale(v)
		if y < c.plot.Min.Y {
			break
		}
		c.hline(c.plot.Min.X, c.plot.Max.X, y, gridGray)
		label := formatTick(v)
		c.text(label, c.plot.Min.X-textWidth(label)-6, y+4, black)
	}

	c.hline(c.plot.Min.X, c.plot.Max.X, c.plot.Max.Y, black)
	c.vline(c.plot.Min.X, c.plot.Min.Y, c.plot.Max.Y, black)
	return scale
}

func niceStep(max float64, ticks int) float64 {
	raw := max / float64(ticks)
	mag := math.Pow(10, math.Floor(math.Log10(raw)))
	for _, m := range []float64{1, 2, 5, 10} {
		if raw <= m*mag {
			return m * mag
		}
	}
	return 10 * mag
}

func formatTick(v float64) string {
	if v == math.Trunc(v) && math.Abs(v) < 1e7 {
		return strconv.Itoa(int(v))
	}
	return strconv.FormatFloat(v, 'g', 3, 64)
}

func truncate(s string, maxChars int) string {
	if maxChars < 1 {
		maxChars = 1
	}
	if len(s) <= maxChars {
		return s
	}
	if maxChars <= 1 {
		return s[:1]
	}
	return s[:maxChars-1] + "…"
}

func (c *canvas) encode() ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, c.img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	metrics.FiguresRendered.Inc()
	return buf.Bytes(), nil
}
