package gui

// Plot scaling in normalized device coordinates: x runs
// over the history capacity, y maps [-15, 15] onto the window height and
// the control trace is shifted half a unit down.
const (
	plotMin       = -15.0
	plotSpan      = 30.0
	controlOffset = -0.5
)

func ndcX(i, maxPoints int) float64 {
	return -1 + 2*float64(i)/float64(maxPoints)
}

func ndcY(v, offset float64) float64 {
	return -1 + 2*(v-plotMin)/plotSpan + offset
}

// toScreen converts normalized device coordinates to window pixels.
func toScreen(nx, ny float64, w, h int32) (float32, float32) {
	x := (nx + 1) / 2 * float64(w)
	y := (1 - ny) / 2 * float64(h)
	return float32(x), float32(y)
}

// tracePoints lays out values as a polyline in window pixels.
func tracePoints(values []float64, maxPoints int, offset float64, w, h int32) [][2]float32 {
	pts := make([][2]float32, len(values))
	for i, v := range values {
		x, y := toScreen(ndcX(i, maxPoints), ndcY(v, offset), w, h)
		pts[i] = [2]float32{x, y}
	}
	return pts
}
