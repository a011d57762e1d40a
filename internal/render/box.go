package render

import (
	"image"

	"github.com/aclements/go-moremath/stats"
)

// Box renders box-and-whisker summaries for a sequence of groups. Empty
// groups get a label but no box.
func Box(groups [][]float64, groupLabels []string, l Labels) ([]byte, error) {
	c := newCanvas(defaultW, defaultH, l)

	max := 0.0
	for _, xs := range groups {
		for _, v := range xs {
			if v > max {
				max = v
			}
		}
	}
	scale := c.yAxis(max)

	if len(groups) == 0 {
		return c.encode()
	}

	slot := c.plot.Dx() / len(groups)
	boxW := slot / 2
	if boxW < 3 {
		boxW = 3
	}

	for i, xs := range groups {
		cx := c.plot.Min.X + i*slot + slot/2

		if i < len(groupLabels) {
			label := truncate(groupLabels[i], slot/7)
			c.text(label, cx-textWidth(label)/2, c.plot.Max.Y+18, black)
		}
		if len(xs) == 0 {
			continue
		}

		s := stats.Sample{Xs: xs}
		lo, hi := s.Bounds()
		q1 := s.Quantile(0.25)
		med := s.Quantile(0.5)
		q3 := s.Quantile(0.75)

		x0, x1 := cx-boxW/2, cx+boxW/2
		yLo, yHi := scale(lo), scale(hi)
		yQ1, yMed, yQ3 := scale(q1), scale(med), scale(q3)

		// Whiskers and caps.
		c.vline(cx, yHi, yQ3, black)
		c.vline(cx, yQ1, yLo, black)
		c.hline(cx-boxW/4, cx+boxW/4, yHi, black)
		c.hline(cx-boxW/4, cx+boxW/4, yLo, black)

		// Interquartile box with median line.
		c.fill(image.Rect(x0, yQ3, x1, yQ1), barBlue)
		c.hline(x0, x1, yQ3, black)
		c.hline(x0, x1, yQ1, black)
		c.vline(x0, yQ3, yQ1, black)
		c.vline(x1, yQ3, yQ1, black)
		c.hline(x0, x1, yMed, white)
	}
	return c.encode()
}
