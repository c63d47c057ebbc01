package vbuf

import (
	"errors"
	"math"
	"testing"

	"golang.org/x/image/math/f32"
)

func TestNew(t *testing.T) {
	b := New(100)
	if got := b.CapacityBytes(); got != 100*Stride {
		t.Errorf("CapacityBytes() = %d, want %d", got, 100*Stride)
	}
	if got := b.MaxVertices(); got != 100 {
		t.Errorf("MaxVertices() = %d, want 100", got)
	}
	if b.UsedBytes() != 0 || b.UsedFloats() != 0 || b.VertexCount() != 0 {
		t.Error("new buffer should be empty")
	}
	if len(b.Bytes()) != 0 {
		t.Errorf("len(Bytes()) = %d, want 0", len(b.Bytes()))
	}
}

func TestNewNegative(t *testing.T) {
	b := New(-5)
	if b.CapacityBytes() != 0 {
		t.Errorf("CapacityBytes() = %d, want 0", b.CapacityBytes())
	}
	if _, err := b.Allocate(1); !errors.Is(err, ErrOverflow) {
		t.Errorf("Allocate on empty buffer: err = %v, want ErrOverflow", err)
	}
}

func TestAllocate(t *testing.T) {
	b := New(3) // 12 float slots

	off, err := b.Allocate(4)
	if err != nil || off != 0 {
		t.Fatalf("Allocate(4) = %d, %v; want 0, nil", off, err)
	}
	off, err = b.Allocate(8)
	if err != nil || off != 4 {
		t.Fatalf("Allocate(8) = %d, %v; want 4, nil", off, err)
	}
	if b.UsedBytes() != 48 || b.UsedFloats() != 12 || b.VertexCount() != 3 {
		t.Errorf("used = %d bytes, %d floats, %d vertices", b.UsedBytes(), b.UsedFloats(), b.VertexCount())
	}

	_, err = b.Allocate(1)
	if !errors.Is(err, ErrOverflow) {
		t.Fatalf("Allocate past capacity: err = %v, want ErrOverflow", err)
	}
	if b.UsedBytes() != 48 {
		t.Errorf("cursor moved on failed allocation: %d", b.UsedBytes())
	}

	if _, err := b.Allocate(-1); err == nil {
		t.Error("Allocate(-1) should fail")
	}
}

func TestAllocateNeverExceedsCapacity(t *testing.T) {
	b := New(10)
	sizes := []int{3, 7, 12, 1, 4, 9, 2, 40, 5}
	for i := 0; i < 50; i++ {
		n := sizes[i%len(sizes)]
		full := b.IsFull(n)
		_, err := b.Allocate(n)
		if full != (err != nil) {
			t.Fatalf("IsFull(%d) = %v but Allocate err = %v", n, full, err)
		}
		if b.UsedBytes() > b.CapacityBytes() {
			t.Fatalf("UsedBytes %d > CapacityBytes %d", b.UsedBytes(), b.CapacityBytes())
		}
		if full {
			b.Clear()
		}
	}
}

func TestIsFull(t *testing.T) {
	b := New(2) // 32 bytes
	tests := []struct {
		used, pending int
		want          bool
	}{
		{0, 0, false},
		{0, 8, false},
		{0, 9, true},
		{4, 4, false},
		{4, 5, true},
		{8, 0, false},
		{8, 1, true},
	}
	for _, tt := range tests {
		b.Clear()
		if tt.used > 0 {
			if _, err := b.Allocate(tt.used); err != nil {
				t.Fatal(err)
			}
		}
		if got := b.IsFull(tt.pending); got != tt.want {
			t.Errorf("used=%d IsFull(%d) = %v, want %v", tt.used, tt.pending, got, tt.want)
		}
	}
}

func TestClearKeepsMemory(t *testing.T) {
	b := New(1)
	w, err := b.Reserve(1)
	if err != nil {
		t.Fatal(err)
	}
	w.WriteVertex(f32.Vec2{1, 2}, 0xAABBCCDD, 0.5)

	b.Clear()
	if b.UsedBytes() != 0 || b.VertexCount() != 0 {
		t.Errorf("after Clear: used = %d, count = %d", b.UsedBytes(), b.VertexCount())
	}
	if b.CapacityBytes() != Stride {
		t.Errorf("Clear changed capacity to %d", b.CapacityBytes())
	}
	// Clear does not zero; the old vertex is still readable.
	if got := b.Vertex(0).Color; got != 0xAABBCCDD {
		t.Errorf("Vertex(0).Color = %#x after Clear", got)
	}
}

func TestTruncate(t *testing.T) {
	b := New(4)
	if _, err := b.Reserve(1); err != nil {
		t.Fatal(err)
	}
	mark := b.UsedFloats()
	if _, err := b.Reserve(2); err != nil {
		t.Fatal(err)
	}

	b.Truncate(mark)
	if b.VertexCount() != 1 {
		t.Errorf("VertexCount() = %d after Truncate, want 1", b.VertexCount())
	}

	// Never grows and ignores negative marks.
	b.Truncate(mark + FloatsPerVertex)
	b.Truncate(-1)
	if b.VertexCount() != 1 {
		t.Errorf("VertexCount() = %d, want 1", b.VertexCount())
	}
}

func TestTypedSlots(t *testing.T) {
	b := New(1)
	b.PutFloat32(0, 1.5)
	b.PutUint32(1, 0x01020304)

	if got := b.Float32(0); got != 1.5 {
		t.Errorf("Float32(0) = %v", got)
	}
	if got := b.Uint32(1); got != 0x01020304 {
		t.Errorf("Uint32(1) = %#x", got)
	}
	// Both views address the same bytes.
	if got := b.Uint32(0); got != math.Float32bits(1.5) {
		t.Errorf("Uint32(0) = %#x, want float bits %#x", got, math.Float32bits(1.5))
	}
}
