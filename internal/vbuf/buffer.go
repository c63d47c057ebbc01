// Package vbuf provides the fixed-capacity interleaved vertex buffer that
// backs a shape batch.
//
// The buffer is one owned byte slice addressed in 4-byte float slots. Each
// slot is written either as a float32 or as a uint32 through typed
// accessors, so position/alpha and packed color share storage without
// aliasing views.
package vbuf

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
)

const (
	// FloatsPerVertex is the number of 4-byte slots in one vertex.
	FloatsPerVertex = 4
	// Stride is the size of one vertex in bytes.
	Stride = FloatsPerVertex * 4

	// Byte offsets of each attribute within a vertex.
	OffsetPosition = 0
	OffsetColor    = 8
	OffsetAlpha    = 12
)

// ErrOverflow is returned when an allocation would exceed the buffer capacity.
var ErrOverflow = errors.New("vbuf: allocation exceeds capacity")

// Buffer is a fixed-capacity vertex store with an allocation cursor.
//
// Buffer never grows. Callers flush and Clear when IsFull reports that a
// pending allocation does not fit.
type Buffer struct {
	data   []byte
	cursor int // in float slots
}

// New creates a buffer holding up to maxVertices vertices.
func New(maxVertices int) *Buffer {
	if maxVertices < 0 {
		maxVertices = 0
	}
	return &Buffer{data: make([]byte, maxVertices*Stride)}
}

// Allocate reserves floats slots at the cursor and returns the first slot.
// The cursor is unchanged when the allocation does not fit.
func (b *Buffer) Allocate(floats int) (int, error) {
	if floats < 0 {
		return 0, fmt.Errorf("vbuf: negative allocation %d", floats)
	}
	if b.IsFull(floats) {
		return 0, fmt.Errorf("%w: %d bytes used, %d requested, %d capacity",
			ErrOverflow, b.UsedBytes(), floats*4, len(b.data))
	}
	offset := b.cursor
	b.cursor += floats
	return offset, nil
}

// IsFull reports whether allocating pendingFloats more slots would exceed
// the capacity.
func (b *Buffer) IsFull(pendingFloats int) bool {
	return b.UsedBytes()+pendingFloats*4 > len(b.data)
}

// UsedFloats returns the number of allocated float slots.
func (b *Buffer) UsedFloats() int { return b.cursor }

// UsedBytes returns the number of allocated bytes.
func (b *Buffer) UsedBytes() int { return b.cursor * 4 }

// CapacityBytes returns the fixed capacity in bytes.
func (b *Buffer) CapacityBytes() int { return len(b.data) }

// MaxVertices returns the capacity in vertices.
func (b *Buffer) MaxVertices() int { return len(b.data) / Stride }

// VertexCount returns the number of whole vertices allocated.
func (b *Buffer) VertexCount() int { return b.UsedBytes() / Stride }

// Bytes returns the used prefix of the buffer. The slice aliases the
// buffer and is only valid until the next Clear.
func (b *Buffer) Bytes() []byte { return b.data[:b.UsedBytes()] }

// Truncate moves the cursor back to floats, dropping later allocations.
// It never moves the cursor forward.
func (b *Buffer) Truncate(floats int) {
	if floats >= 0 && floats < b.cursor {
		b.cursor = floats
	}
}

// Clear resets the cursor. Memory is not zeroed.
func (b *Buffer) Clear() { b.cursor = 0 }

// PutFloat32 stores v in the given float slot.
func (b *Buffer) PutFloat32(slot int, v float32) {
	binary.LittleEndian.PutUint32(b.data[slot*4:], math.Float32bits(v))
}

// PutUint32 stores v in the given float slot.
func (b *Buffer) PutUint32(slot int, v uint32) {
	binary.LittleEndian.PutUint32(b.data[slot*4:], v)
}

// Float32 reads the float slot as a float32.
func (b *Buffer) Float32(slot int) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(b.data[slot*4:]))
}

// Uint32 reads the float slot as a uint32.
func (b *Buffer) Uint32(slot int) uint32 {
	return binary.LittleEndian.Uint32(b.data[slot*4:])
}
