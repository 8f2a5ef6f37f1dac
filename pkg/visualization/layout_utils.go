package visualization

import "math"

// bounds is the bounding box of a set of positions
type bounds struct {
	minX, minY, maxX, maxY float64
}

func boundsOf(positions map[uint64]Position) bounds {
	b := bounds{math.Inf(1), math.Inf(1), math.Inf(-1), math.Inf(-1)}
	for _, p := range positions {
		b.minX, b.maxX = math.Min(b.minX, p.X), math.Max(b.maxX, p.X)
		b.minY, b.maxY = math.Min(b.minY, p.Y), math.Max(b.maxY, p.Y)
	}
	return b
}

// span is the extent along one axis; degenerate axes count as 1 so a row of
// nodes still lands on the canvas
func span(lo, hi float64) float64 {
	if d := hi - lo; d >= 0.01 {
		return d
	}
	return 1
}

// fitToCanvas rescales positions in place into the canvas less padding
func fitToCanvas(positions map[uint64]Position, width, height, padding float64) map[uint64]Position {
	if len(positions) == 0 {
		return positions
	}
	b := boundsOf(positions)
	sx := (width - 2*padding) / span(b.minX, b.maxX)
	sy := (height - 2*padding) / span(b.minY, b.maxY)

	for id, p := range positions {
		positions[id] = Position{
			X: padding + (p.X-b.minX)*sx,
			Y: padding + (p.Y-b.minY)*sy,
		}
	}
	return positions
}
