package earcut

import (
	"math"

	mapbox "github.com/rclancey/earcut"
)

// vertex is one node of the doubly linked contour ring.
type vertex struct {
	i          int
	x, y       float64
	prev, next *vertex
}

// Triangulate returns triangle indices covering the polygon in coords.
//
// The result has length 3*(n-2) for a simple polygon with n vertices. Each
// triangle is emitted counter-clockwise in a Y-up frame regardless of input
// winding. Degenerate input (fewer than 3 vertices, zero area) yields nil.
//
// Contours that touch themselves (a vertex repeated at a pinch or keyhole
// slit) and contours on which ear clipping stalls are handed to the
// z-order earcut used by TriangulateHoles, which splits them without
// overlapping triangles. Such results may hold fewer than n-2 triangles.
// Self-intersecting input terminates and returns a partial triangulation.
func Triangulate(coords []float64) []int {
	n := len(coords) / 2
	if n < 3 {
		return nil
	}
	coords = coords[:2*n]

	area := Area(coords)
	if negligibleArea(area, coords) {
		return nil
	}

	indices := make([]int, 0, (n-2)*3)
	if IsConvex(coords) {
		return fan(indices, n, area > 0)
	}
	if hasPinch(coords, n) {
		if tris, err := mapbox.Earcut(coords, nil, 2); err == nil {
			return tris
		}
	}

	ring := linkRing(coords, n, area > 0)
	tris, complete := clipEars(ring, n, indices)
	if !complete {
		if alt, err := mapbox.Earcut(coords, nil, 2); err == nil && len(alt) > len(tris) {
			return alt
		}
	}
	return tris
}

// hasPinch reports whether some vertex position occurs twice at
// non-adjacent places in the contour.
func hasPinch(coords []float64, n int) bool {
	seen := make(map[[2]float64]int, n)
	for i := 0; i < n; i++ {
		p := [2]float64{coords[2*i], coords[2*i+1]}
		if j, ok := seen[p]; ok && i-j > 1 && !(j == 0 && i == n-1) {
			return true
		}
		seen[p] = i
	}
	return false
}

// fan triangulates a convex contour from its first vertex.
func fan(dst []int, n int, ccw bool) []int {
	for i := 1; i < n-1; i++ {
		if ccw {
			dst = append(dst, 0, i, i+1)
		} else {
			dst = append(dst, 0, i+1, i)
		}
	}
	return dst
}

// linkRing builds the vertex ring in counter-clockwise order.
func linkRing(coords []float64, n int, ccw bool) *vertex {
	nodes := make([]vertex, n)
	for k := 0; k < n; k++ {
		i := k
		if !ccw {
			i = n - 1 - k
		}
		nodes[k] = vertex{i: i, x: coords[2*i], y: coords[2*i+1]}
	}
	for k := range nodes {
		nodes[k].next = &nodes[(k+1)%n]
		nodes[k].prev = &nodes[(k+n-1)%n]
	}
	return &nodes[0]
}

// clipEars removes ears from the ring until one triangle remains.
//
// When a full lap finds no valid ear, the pass is repeated accepting
// degenerate (zero-area) corners. A second unproductive lap stops and
// reports the triangulation as incomplete.
func clipEars(ear *vertex, count int, dst []int) ([]int, bool) {
	stop := ear
	degenerate := false

	for count > 3 {
		prev, next := ear.prev, ear.next

		if isEar(ear) || (degenerate && isDegenerate(ear)) {
			dst = append(dst, prev.i, ear.i, next.i)
			prev.next = next
			next.prev = prev
			count--

			degenerate = false
			ear = next
			stop = next
			continue
		}

		ear = next
		if ear == stop {
			if degenerate {
				return dst, false
			}
			degenerate = true
		}
	}

	return append(dst, ear.prev.i, ear.i, ear.next.i), true
}

// isEar reports whether the corner at ear is convex and no reflex vertex of
// the remaining ring lies inside or on its triangle.
func isEar(ear *vertex) bool {
	a, b, c := ear.prev, ear, ear.next
	if cross(a.x, a.y, b.x, b.y, c.x, c.y) <= 0 {
		return false
	}

	for p := c.next; p != a; p = p.next {
		if samePoint(p, a) || samePoint(p, b) || samePoint(p, c) {
			continue
		}
		if cross(p.prev.x, p.prev.y, p.x, p.y, p.next.x, p.next.y) > 0 {
			continue
		}
		if pointInTriangle(a, b, c, p) {
			return false
		}
	}
	return true
}

// isDegenerate reports whether the corner at v has (near) zero area.
func isDegenerate(v *vertex) bool {
	a, b, c := v.prev, v, v.next
	ab := math.Hypot(b.x-a.x, b.y-a.y)
	bc := math.Hypot(c.x-b.x, c.y-b.y)
	if ab == 0 || bc == 0 {
		return true
	}
	return math.Abs(cross(a.x, a.y, b.x, b.y, c.x, c.y)) <= convexityEpsilon*ab*bc
}

// pointInTriangle reports whether p lies inside or on the boundary of the
// counter-clockwise triangle abc.
func pointInTriangle(a, b, c, p *vertex) bool {
	return cross(a.x, a.y, b.x, b.y, p.x, p.y) >= 0 &&
		cross(b.x, b.y, c.x, c.y, p.x, p.y) >= 0 &&
		cross(c.x, c.y, a.x, a.y, p.x, p.y) >= 0
}

func samePoint(p, q *vertex) bool {
	return p.x == q.x && p.y == q.y
}
