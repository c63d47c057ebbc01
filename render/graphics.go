// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	"github.com/gogpu/shapebatch"
	"github.com/gogpu/shapebatch/internal/gpu"
)

// Graphics is a retained list of filled shapes with its own placement.
//
// Coordinates are logical pixels. The Renderer scales them by the
// configured resolution when drawing.
//
// Commands are recorded once and replayed on every Render, transformed by
// Position, Rotation and Scale. A Graphics is not modified by rendering
// and can be drawn any number of times.
//
// Example:
//
//	g := render.NewGraphics()
//	g.FillStyle(shapebatch.Hex("#ff8800"), 1).
//	    FillRect(0, 0, 40, 20).
//	    FillPath(shapebatch.Pt(0, 0), shapebatch.Pt(20, 30), shapebatch.Pt(-20, 30))
//	g.Position = shapebatch.Pt(100, 100)
//	g.Rotation = math.Pi / 4
//
//	renderer.Render(target, g)
type Graphics struct {
	// Position translates the shapes in logical pixels.
	Position shapebatch.Point

	// Scale multiplies shape coordinates before rotation.
	Scale shapebatch.Point

	// Rotation in radians, clockwise on screen.
	Rotation float64

	// Alpha multiplies the alpha of every command.
	Alpha float64

	// Visible objects are skipped by Render when false.
	Visible bool

	commands []shapeCommand

	fillColor uint32
	fillAlpha float64
}

// shapeCommand is a single recorded fill.
type shapeCommand struct {
	op    shapeOp
	color uint32
	alpha float64

	// x, y, w, h for opFillRect.
	x, y, w, h float64

	// path for opFillPath; owned by the command.
	path []shapebatch.Point
}

type shapeOp uint8

const (
	opFillRect shapeOp = iota
	opFillPath
)

// NewGraphics returns an empty, visible Graphics with unit scale and an
// opaque white fill style.
func NewGraphics() *Graphics {
	return &Graphics{
		Scale:     shapebatch.Pt(1, 1),
		Alpha:     1,
		Visible:   true,
		commands:  make([]shapeCommand, 0, 8),
		fillColor: shapebatch.RGB(1, 1, 1).Pack(),
		fillAlpha: 1,
	}
}

// FillStyle sets the color and alpha used by subsequent fill commands.
// The color's own alpha channel is packed with it; alpha is applied on top.
func (g *Graphics) FillStyle(c shapebatch.RGBA, alpha float64) *Graphics {
	g.fillColor = c.Pack()
	g.fillAlpha = alpha
	return g
}

// FillRect records a filled axis-aligned rectangle in local coordinates.
func (g *Graphics) FillRect(x, y, width, height float64) *Graphics {
	g.commands = append(g.commands, shapeCommand{
		op:    opFillRect,
		color: g.fillColor,
		alpha: g.fillAlpha,
		x:     x,
		y:     y,
		w:     width,
		h:     height,
	})
	return g
}

// FillPath records a filled simple polygon. The points are copied.
// Paths with fewer than three points draw nothing.
func (g *Graphics) FillPath(points ...shapebatch.Point) *Graphics {
	g.commands = append(g.commands, shapeCommand{
		op:    opFillPath,
		color: g.fillColor,
		alpha: g.fillAlpha,
		path:  append([]shapebatch.Point(nil), points...),
	})
	return g
}

// Clear removes all recorded commands. Placement and fill style are kept.
func (g *Graphics) Clear() *Graphics {
	g.commands = g.commands[:0]
	return g
}

// CommandCount returns the number of recorded commands.
func (g *Graphics) CommandCount() int {
	return len(g.commands)
}

// Transform returns the local-to-world matrix: scale first, then rotate,
// then translate to Position.
func (g *Graphics) Transform() shapebatch.Matrix {
	return shapebatch.Translate(g.Position.X, g.Position.Y).
		Multiply(shapebatch.Rotate(g.Rotation)).
		Multiply(shapebatch.Scale(g.Scale.X, g.Scale.Y))
}

// ToLocal maps a world position into the shape coordinates of g, for hit
// testing against recorded rectangles. It returns false when Scale has a
// zero component.
func (g *Graphics) ToLocal(p shapebatch.Point) (shapebatch.Point, bool) {
	inv, ok := g.Transform().Invert()
	if !ok {
		return shapebatch.Point{}, false
	}
	return inv.TransformPoint(p), true
}

// replay adds every recorded command to the batch. base maps world
// coordinates to device pixels.
func (g *Graphics) replay(batch *gpu.ShapeBatch, base shapebatch.Matrix) error {
	m := base.Multiply(g.Transform())
	for i := range g.commands {
		cmd := &g.commands[i]
		alpha := float32(cmd.alpha * g.Alpha)
		var err error
		switch cmd.op {
		case opFillRect:
			err = batch.AddFillRect(cmd.x, cmd.y, cmd.w, cmd.h, cmd.color, alpha, m)
		case opFillPath:
			err = batch.AddFillPath(cmd.path, cmd.color, alpha, m)
		}
		if err != nil {
			return err
		}
	}
	return nil
}
