package earcut

import "math"

const pi = math.Pi

// Area returns the signed area of the closed contour (shoelace formula).
// Positive means counter-clockwise in a Y-up frame.
func Area(coords []float64) float64 {
	n := len(coords) / 2
	if n < 3 {
		return 0
	}
	var sum float64
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		sum += coords[2*j]*coords[2*i+1] - coords[2*i]*coords[2*j+1]
	}
	return sum / 2
}

// TrianglesArea returns the total unsigned area of the triangles named by
// indices over coords.
func TrianglesArea(coords []float64, indices []int) float64 {
	var sum float64
	for i := 0; i+2 < len(indices); i += 3 {
		a, b, c := indices[i], indices[i+1], indices[i+2]
		sum += math.Abs(cross(
			coords[2*a], coords[2*a+1],
			coords[2*b], coords[2*b+1],
			coords[2*c], coords[2*c+1],
		)) / 2
	}
	return sum
}

// cross returns the z component of (b-a) x (c-b).
func cross(ax, ay, bx, by, cx, cy float64) float64 {
	return (bx-ax)*(cy-by) - (by-ay)*(cx-bx)
}

// angleBetween returns the signed turning angle from e1 to e2.
func angleBetween(e1x, e1y, e2x, e2y float64) float64 {
	return math.Atan2(e1x*e2y-e1y*e2x, e1x*e2x+e1y*e2y)
}

// negligibleArea reports whether area is zero relative to the contour's
// bounding box, which catches collinear input that rounds to a tiny area.
func negligibleArea(area float64, coords []float64) bool {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for i := 0; i+1 < len(coords); i += 2 {
		minX = math.Min(minX, coords[i])
		maxX = math.Max(maxX, coords[i])
		minY = math.Min(minY, coords[i+1])
		maxY = math.Max(maxY, coords[i+1])
	}
	extent := (maxX - minX) + (maxY - minY)
	return math.Abs(area) <= 1e-12*extent*extent
}
