// Package shapebatch provides the shared types of a GPU vertex-batching
// renderer for filled 2D shapes.
//
// # Overview
//
// shapebatch accumulates triangles for polygons and rectangles into one
// fixed-capacity vertex buffer and draws them with as few GPU draw calls as
// possible. Polygons are triangulated by ear clipping; every vertex is run
// through an affine transform before packing.
//
// # Quick Start
//
//	import "github.com/gogpu/shapebatch/render"
//
//	r, err := render.NewRenderer(handle, render.WithSize(800, 600, 1))
//	if err != nil {
//	    return err
//	}
//	defer r.Close()
//
//	g := render.NewGraphics()
//	g.FillStyle(shapebatch.Red, 1)
//	g.FillRect(10, 10, 100, 50)
//	err = r.Render(target, g)
//
// # Architecture
//
// The module is organized into:
//   - Public API: Point, Matrix, RGBA, Config, logging (this package)
//   - render: host-facing renderer and Graphics objects
//   - internal/earcut: polygon triangulation
//   - internal/vbuf: interleaved vertex storage
//   - internal/gpu: wgpu HAL pipeline, upload and draw
//
// # Coordinate System
//
//   - Origin (0,0) at top-left
//   - X increases right
//   - Y increases down
//   - Angles in radians, positive rotates clockwise on screen
//
// # Vertex Layout
//
// Each vertex is 16 bytes: x and y as float32, a packed RGBA color as
// uint32 (red in the low byte), and a float32 alpha multiplier.
package shapebatch
