package earcut

import (
	"errors"
	"fmt"

	mapbox "github.com/rclancey/earcut"
)

// ErrInvalidHoles is returned when hole start indices are out of order or
// out of range.
var ErrInvalidHoles = errors.New("earcut: invalid hole indices")

// TriangulateHoles triangulates a polygon with holes.
//
// coords holds the outer contour followed by each hole contour. holes lists
// the vertex index (not coordinate index) at which each hole starts, in
// increasing order. Holes are bridged into the outer contour and the result
// is ear clipped with z-order hashing for large inputs.
//
// Without holes this is equivalent to Triangulate.
func TriangulateHoles(coords []float64, holes []int) ([]int, error) {
	if len(holes) == 0 {
		return Triangulate(coords), nil
	}

	n := len(coords) / 2
	prev := 3 // the outer contour needs at least a triangle
	for k, h := range holes {
		if h < prev || h > n-3 {
			return nil, fmt.Errorf("%w: hole %d starts at vertex %d of %d", ErrInvalidHoles, k, h, n)
		}
		prev = h + 3
	}

	indices, err := mapbox.Earcut(coords[:2*n], holes, 2)
	if err != nil {
		return nil, fmt.Errorf("earcut: %w", err)
	}
	return indices, nil
}

// Deviation returns the relative difference between the polygon area
// (outer contour minus holes) and the area covered by the triangles.
// Zero means the triangulation is exact.
func Deviation(coords []float64, holes []int, indices []int) float64 {
	return mapbox.Deviation(coords, holes, 2, indices)
}
