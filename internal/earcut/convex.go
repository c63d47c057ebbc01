package earcut

// convexityEpsilon is the tolerance for cross product comparisons.
// Values below this threshold are treated as zero (collinear edges).
const convexityEpsilon = 1e-10

// Winding describes polygon orientation in a Y-up frame.
type Winding int

const (
	// WindingNone marks degenerate input (fewer than 3 non-collinear points).
	WindingNone Winding = 0
	// WindingCCW is counter-clockwise (positive signed area).
	WindingCCW Winding = 1
	// WindingCW is clockwise (negative signed area).
	WindingCW Winding = -1
)

// IsConvex reports whether the closed contour in coords is convex.
//
// The check walks all consecutive edge pairs and requires every non-zero
// cross product to have the same sign. Collinear edges are permitted.
// Fewer than 3 points, or all points collinear, is not convex.
//
// A star-shaped contour that winds around more than once passes the sign
// test, so the total turning is checked as well.
func IsConvex(coords []float64) bool {
	n := len(coords) / 2
	if n < 3 {
		return false
	}

	var positive, negative int
	var turns float64
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		k := (i + 2) % n
		e1x, e1y := coords[2*j]-coords[2*i], coords[2*j+1]-coords[2*i+1]
		e2x, e2y := coords[2*k]-coords[2*j], coords[2*k+1]-coords[2*j+1]

		cross := e1x*e2y - e1y*e2x
		if cross > convexityEpsilon {
			positive++
		} else if cross < -convexityEpsilon {
			negative++
		}
		turns += angleBetween(e1x, e1y, e2x, e2y)
	}

	if positive == 0 && negative == 0 {
		return false
	}
	if positive > 0 && negative > 0 {
		return false
	}
	// A simple convex contour turns exactly once.
	return turns < 2*pi+1e-6 && turns > -2*pi-1e-6
}

// Orientation returns the winding of the contour from its signed area.
func Orientation(coords []float64) Winding {
	a := Area(coords)
	switch {
	case a > 0:
		return WindingCCW
	case a < 0:
		return WindingCW
	default:
		return WindingNone
	}
}
