package render

import (
	"image"
	"strconv"
	"time"
)

// Value is one labeled bar.
type Value struct {
	Label string
	V     float64
}

// Bar renders a labeled bar chart. An empty input yields an empty plot, not
// an error.
func Bar(values []Value, l Labels) ([]byte, error) {
	c := newCanvas(defaultW, defaultH, l)

	max := 0.0
	for _, v := range values {
		if v.V > max {
			max = v.V
		}
	}
	scale := c.yAxis(max)

	if len(values) == 0 {
		return c.encode()
	}

	slot := c.plot.Dx() / len(values)
	barW := slot * 7 / 10
	if barW < 1 {
		barW = 1
	}
	for i, v := range values {
		x0 := c.plot.Min.X + i*slot + (slot-barW)/2
		y := scale(v.V)
		c.fill(image.Rect(x0, y, x0+barW, c.plot.Max.Y), barBlue)

		label := truncate(v.Label, slot/7)
		lx := x0 + (barW-textWidth(label))/2
		if lx < x0-slot/4 {
			lx = x0 - slot/4
		}
		c.text(label, lx, c.plot.Max.Y+18, black)
	}
	return c.encode()
}

// TimePoint is one (period, value) pair of a time series.
type TimePoint struct {
	T time.Time
	V float64
}

// Line renders a time series as a connected line, periods spread evenly
// across the x axis in input order.
func Line(points []TimePoint, l Labels) ([]byte, error) {
	c := newCanvas(defaultW, defaultH, l)

	max := 0.0
	for _, p := range points {
		if p.V > max {
			max = p.V
		}
	}
	scale := c.yAxis(max)

	if len(points) == 0 {
		return c.encode()
	}

	xAt := func(i int) int {
		if len(points) == 1 {
			return (c.plot.Min.X + c.plot.Max.X) / 2
		}
		return c.plot.Min.X + i*c.plot.Dx()/(len(points)-1)
	}

	for i := 1; i < len(points); i++ {
		c.line(xAt(i-1), scale(points[i-1].V), xAt(i), scale(points[i].V), dotBlue)
	}
	for i, p := range points {
		x, y := xAt(i), scale(p.V)
		c.fill(image.Rect(x-1, y-1, x+2, y+2), dotBlue)
	}

	// Tick the first, middle and last periods.
	for _, i := range []int{0, len(points) / 2, len(points) - 1} {
		label := points[i].T.Format("2006-01")
		c.text(label, xAt(i)-textWidth(label)/2, c.plot.Max.Y+18, black)
	}
	return c.encode()
}

// Histogram renders fixed-domain bin counts (e.g. hour of day) as bars
// labeled by bin index.
func Histogram(counts []int, l Labels) ([]byte, error) {
	values := make([]Value, len(counts))
	for i, n := range counts {
		values[i] = Value{Label: strconv.Itoa(i), V: float64(n)}
	}
	return Bar(values, l)
}
