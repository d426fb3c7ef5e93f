package viz

import "math"

// waterColumn draws the surface, the target depth and the vehicle on c.
// Depth grows downward; the visible range always includes the surface,
// the target and every depth in history.
func waterColumn(c *Canvas, depth, target float64, history []float64) {
	c.Clear()
	w, h := c.PixelSize()
	if w < 4 || h < 8 {
		return
	}

	top, bottom := math.Min(0, target), math.Max(0, target)
	top, bottom = math.Min(top, depth), math.Max(bottom, depth)
	for _, d := range history {
		top = math.Min(top, d)
		bottom = math.Max(bottom, d)
	}
	span := bottom - top
	if span < 1 {
		span = 1
	}
	top -= span * 0.1
	bottom += span * 0.15
	span = bottom - top

	toY := func(d float64) int {
		return int((d - top) / span * float64(h-1))
	}

	surface := toY(0)
	for x := 0; x < w; x++ {
		// small swell on the surface line
		if x%6 < 3 {
			c.Set(x, surface)
		} else {
			c.Set(x, surface-1)
		}
	}

	c.DashedHLine(0, w-1, toY(target), 2)

	cx := w / 2
	y := toY(depth)
	c.DrawLine(cx, surface, cx, y-2)
	c.FillRect(cx-4, y-1, cx+4, y+1)
	c.Set(cx-5, y)
	c.Set(cx+5, y)
}
