package analysis

import (
	"strings"

	"github.com/san-kum/rovsim/internal/dynamo"
)

// PhasePortrait2D holds (error, error rate) points of a run
type PhasePortrait2D struct {
	Points []struct{ X, Y float64 }
}

// ErrorPhasePortrait plots the depth error against its backward
// difference, dt apart.
func ErrorPhasePortrait(res *dynamo.Result, dt float64) *PhasePortrait2D {
	portrait := &PhasePortrait2D{}
	if len(res.Samples) < 2 || dt <= 0 {
		return portrait
	}

	prev := res.Samples[0].Error()
	for _, s := range res.Samples[1:] {
		e := s.Error()
		portrait.Points = append(portrait.Points, struct{ X, Y float64 }{
			X: e,
			Y: (e - prev) / dt,
		})
		prev = e
	}

	return portrait
}

// PhasePortraitToASCII converts phase portrait to ASCII art
func PhasePortraitToASCII(portrait *PhasePortrait2D, width, height int) string {
	if portrait == nil || len(portrait.Points) == 0 || width < 2 || height < 2 {
		return ""
	}

	// Find bounds
	minX, maxX := portrait.Points[0].X, portrait.Points[0].X
	minY, maxY := portrait.Points[0].Y, portrait.Points[0].Y

	for _, p := range portrait.Points {
		if p.X < minX {
			minX = p.X
		}
		if p.X > maxX {
			maxX = p.X
		}
		if p.Y < minY {
			minY = p.Y
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	maxX += rangeX * 0.1
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeX = maxX - minX
	rangeY = maxY - minY

	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = []rune(strings.Repeat(" ", width))
	}

	// Axes through the origin when it is in view
	if minX < 0 && maxX > 0 {
		col := int(-minX / rangeX * float64(width-1))
		for row := range canvas {
			canvas[row][col] = '│'
		}
	}
	if minY < 0 && maxY > 0 {
		row := height - 1 - int(-minY/rangeY*float64(height-1))
		for col := range canvas[row] {
			if canvas[row][col] == '│' {
				canvas[row][col] = '┼'
			} else {
				canvas[row][col] = '─'
			}
		}
	}

	for _, p := range portrait.Points {
		col := int((p.X - minX) / rangeX * float64(width-1))
		row := height - 1 - int((p.Y-minY)/rangeY*float64(height-1))

		if row >= 0 && row < height && col >= 0 && col < width {
			canvas[row][col] = '•'
		}
	}

	var sb strings.Builder
	for i, line := range canvas {
		sb.WriteString(string(line))
		if i < height-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}
