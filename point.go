package shapebatch

// Point is a 2D position in logical pixels.
type Point struct {
	X, Y float64
}

// Pt returns the point (x, y).
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Flatten appends the coordinates of pts to dst as x0, y0, x1, y1, ...
// and returns the extended slice. This is the layout the triangulator
// consumes.
func Flatten(dst []float64, pts []Point) []float64 {
	for _, p := range pts {
		dst = append(dst, p.X, p.Y)
	}
	return dst
}
