// Package earcut triangulates simple polygons for the shape batch.
//
// Input is a flat coordinate list x0, y0, x1, y1, ... describing one closed
// contour; output is a list of vertex indices, three per triangle, that
// covers the polygon exactly using only the input vertices.
//
// Convex contours take an O(n) fan path. Everything else goes through ear
// clipping on a doubly linked ring, which is O(n²) in the common case and
// never loops on self-intersecting input: a full pass over the ring without
// progress ends triangulation and returns the triangles found so far.
//
// Polygons with holes are handled by TriangulateHoles.
package earcut
