package vbuf

import (
	"fmt"

	"golang.org/x/image/math/f32"
)

// Vertex is one decoded vertex.
type Vertex struct {
	Pos   f32.Vec2
	Color uint32
	Alpha float32
}

// Writer packs vertices into a reserved region of a Buffer.
//
// Writer is the only code that knows the interleaved layout:
// x, y as float32, color as uint32 (R in the low byte), alpha as float32.
type Writer struct {
	buf  *Buffer
	slot int
	end  int
}

// Reserve allocates room for the given number of vertices and returns a
// writer over it.
func (b *Buffer) Reserve(vertices int) (Writer, error) {
	slot, err := b.Allocate(vertices * FloatsPerVertex)
	if err != nil {
		return Writer{}, err
	}
	return Writer{buf: b, slot: slot, end: slot + vertices*FloatsPerVertex}, nil
}

// WriteVertex packs one vertex and advances the writer.
// It panics if more vertices are written than were reserved.
func (w *Writer) WriteVertex(pos f32.Vec2, color uint32, alpha float32) {
	if w.slot+FloatsPerVertex > w.end {
		panic(fmt.Sprintf("vbuf: write past reservation at slot %d", w.slot))
	}
	w.buf.PutFloat32(w.slot, pos[0])
	w.buf.PutFloat32(w.slot+1, pos[1])
	w.buf.PutUint32(w.slot+2, color)
	w.buf.PutFloat32(w.slot+3, alpha)
	w.slot += FloatsPerVertex
}

// Remaining returns the number of reserved vertices not yet written.
func (w *Writer) Remaining() int {
	return (w.end - w.slot) / FloatsPerVertex
}

// Vertex decodes vertex i.
func (b *Buffer) Vertex(i int) Vertex {
	slot := i * FloatsPerVertex
	return Vertex{
		Pos:   f32.Vec2{b.Float32(slot), b.Float32(slot + 1)},
		Color: b.Uint32(slot + 2),
		Alpha: b.Float32(slot + 3),
	}
}
