// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"errors"
	"math"
	"testing"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/shapebatch"
	"github.com/gogpu/shapebatch/internal/gpu"
)

func TestNewRendererNoDevice(t *testing.T) {
	for _, handle := range []DeviceHandle{nil, NullDeviceHandle{}} {
		if _, err := NewRenderer(handle); !errors.Is(err, shapebatch.ErrNoDevice) {
			t.Errorf("NewRenderer(%T) error = %v, want ErrNoDevice", handle, err)
		}
	}
}

func TestNewRendererInvalidConfig(t *testing.T) {
	device, queue := createNoopDevice(t)
	handle := NewHALDeviceHandle(device, queue, gputypes.TextureFormatUndefined)

	if _, err := NewRenderer(handle, WithMaxVertices(3)); !errors.Is(err, shapebatch.ErrInvalidConfig) {
		t.Errorf("error = %v, want ErrInvalidConfig", err)
	}
	if _, err := NewRenderer(handle, WithSize(0, 10, 1)); !errors.Is(err, shapebatch.ErrInvalidConfig) {
		t.Errorf("error = %v, want ErrInvalidConfig", err)
	}
}

func TestNewRendererFormat(t *testing.T) {
	device, queue := createNoopDevice(t)

	tests := []struct {
		name    string
		surface gputypes.TextureFormat
		opts    []Option
		want    gputypes.TextureFormat
	}{
		{"fallback", gputypes.TextureFormatUndefined, nil, gputypes.TextureFormatBGRA8Unorm},
		{"surface format", gputypes.TextureFormatRGBA8Unorm, nil, gputypes.TextureFormatRGBA8Unorm},
		{"option wins", gputypes.TextureFormatRGBA8Unorm,
			[]Option{WithFormat(gputypes.TextureFormatBGRA8Unorm)}, gputypes.TextureFormatBGRA8Unorm},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := NewRenderer(NewHALDeviceHandle(device, queue, tt.surface), tt.opts...)
			if err != nil {
				t.Fatal(err)
			}
			defer r.Close()
			if got := r.batch.Format(); got != tt.want {
				t.Errorf("format = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRenderSmallSceneFlushesOnce(t *testing.T) {
	r, target := newTestRenderer(t)

	a := NewGraphics().FillRect(0, 0, 10, 10)
	b := NewGraphics().
		FillStyle(shapebatch.Hex("#00ff00"), 0.5).
		FillPath(shapebatch.Pt(0, 0), shapebatch.Pt(20, 0), shapebatch.Pt(20, 20), shapebatch.Pt(0, 20))
	b.Position = shapebatch.Pt(30, 30)

	if err := r.Render(target, a, b); err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	s := r.Stats()
	if s.Frames != 1 || s.Clears != 1 || s.Flushes != 1 || s.DrawCalls != 1 {
		t.Errorf("Stats() = %+v, want one clear and one flush", s)
	}
	if s.VerticesDrawn != 12 {
		t.Errorf("VerticesDrawn = %d, want 12", s.VerticesDrawn)
	}
	if r.batch.Bound() {
		t.Error("target still bound after Render")
	}
}

func TestRenderSplitsLargeScene(t *testing.T) {
	r, target := newTestRenderer(t, WithMaxVertices(12), WithClearBeforeRender(false))

	g := NewGraphics()
	for i := 0; i < 5; i++ {
		g.FillRect(float64(i), 0, 1, 1)
	}
	if err := r.Render(target, g); err != nil {
		t.Fatal(err)
	}

	s := r.Stats()
	if s.Clears != 0 {
		t.Errorf("Clears = %d, want 0", s.Clears)
	}
	// 30 vertices through a 12 vertex buffer: 12 + 12 + 6.
	if s.Flushes != 3 || s.VerticesDrawn != 30 {
		t.Errorf("Stats() = %+v, want 3 flushes of 30 vertices", s)
	}
}

func TestRenderSkipsInvisible(t *testing.T) {
	r, target := newTestRenderer(t)

	hidden := NewGraphics().FillRect(0, 0, 1, 1)
	hidden.Visible = false
	if err := r.Render(target, hidden, nil); err != nil {
		t.Fatal(err)
	}
	if s := r.Stats(); s.VerticesDrawn != 0 || s.Flushes != 0 {
		t.Errorf("Stats() = %+v, want nothing drawn", s)
	}
}

func TestRenderRepeatable(t *testing.T) {
	r, target := newTestRenderer(t)
	g := NewGraphics().FillRect(0, 0, 5, 5)

	for i := 0; i < 3; i++ {
		if err := r.Render(target, g); err != nil {
			t.Fatalf("frame %d: %v", i, err)
		}
	}
	if s := r.Stats(); s.Frames != 3 || s.VerticesDrawn != 18 {
		t.Errorf("Stats() = %+v", s)
	}
	if g.CommandCount() != 1 {
		t.Errorf("Render modified the Graphics: %d commands", g.CommandCount())
	}
}

func TestRenderNoTarget(t *testing.T) {
	r, _ := newTestRenderer(t)

	if err := r.Render(nil, NewGraphics()); !errors.Is(err, shapebatch.ErrNotBound) {
		t.Errorf("error = %v, want ErrNotBound", err)
	}
	if err := r.Render(NewViewTarget(nil, 1, 1)); !errors.Is(err, shapebatch.ErrNotBound) {
		t.Errorf("error = %v, want ErrNotBound", err)
	}
}

func TestRenderTargetSizeMismatch(t *testing.T) {
	r, _ := newTestRenderer(t)
	device, _ := createNoopDevice(t)
	small, err := NewTextureTarget(device, 32, 32, gputypes.TextureFormatBGRA8Unorm)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(small.Destroy)

	err = r.Render(small, NewGraphics().FillRect(0, 0, 1, 1))
	if !errors.Is(err, shapebatch.ErrInvalidConfig) {
		t.Errorf("error = %v, want ErrInvalidConfig", err)
	}
	if s := r.Stats(); s.Frames != 0 || s.VerticesDrawn != 0 {
		t.Errorf("Stats() = %+v, want nothing rendered", s)
	}
}

func TestRenderLogicalPixelsAtResolution(t *testing.T) {
	device, queue := createNoopDevice(t)
	handle := NewHALDeviceHandle(device, queue, gputypes.TextureFormatBGRA8Unorm)
	r, err := NewRenderer(handle, WithSize(800, 600, 2))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(r.Close)

	g := NewGraphics().FillRect(-1, -1, 2, 2)
	g.Position = shapebatch.Pt(400, 300)

	// The logical centre lands at the clip space origin.
	p := r.worldToDevice().Multiply(g.Transform()).TransformPoint(shapebatch.Pt(0, 0))
	proj := gpu.Projection(800, 600, 2)
	x := float64(proj[0])*p.X + float64(proj[1])*p.Y + float64(proj[3])
	y := float64(proj[4])*p.X + float64(proj[5])*p.Y + float64(proj[7])
	if math.Abs(x) > 1e-6 || math.Abs(y) > 1e-6 {
		t.Errorf("clip position = (%v, %v), want (0, 0)", x, y)
	}

	target, err := NewTextureTarget(device, 1600, 1200, gputypes.TextureFormatBGRA8Unorm)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(target.Destroy)
	if err := r.Render(target, g); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if s := r.Stats(); s.VerticesDrawn != 6 {
		t.Errorf("VerticesDrawn = %d, want 6", s.VerticesDrawn)
	}
}

func TestRendererResize(t *testing.T) {
	r, _ := newTestRenderer(t)

	if err := r.Resize(320, 240, 2); err != nil {
		t.Fatalf("Resize failed: %v", err)
	}
	if w, h := r.batch.Size(); w != 640 || h != 480 {
		t.Errorf("device size = %dx%d, want 640x480", w, h)
	}
	if c := r.Config(); c.Width != 320 || c.Height != 240 || c.Resolution != 2 {
		t.Errorf("Config() = %+v", c)
	}

	if err := r.Resize(0, 240, 1); !errors.Is(err, shapebatch.ErrInvalidConfig) {
		t.Errorf("error = %v, want ErrInvalidConfig", err)
	}
	if c := r.Config(); c.Width != 320 {
		t.Errorf("failed Resize changed config: %+v", c)
	}
}

func TestRendererClose(t *testing.T) {
	r, target := newTestRenderer(t)

	r.Close()
	r.Close()

	if !r.batch.Destroyed() {
		t.Error("batch not destroyed")
	}
	if err := r.Render(target, NewGraphics()); !errors.Is(err, shapebatch.ErrDestroyed) {
		t.Errorf("Render error = %v, want ErrDestroyed", err)
	}
	if err := r.Resize(10, 10, 1); !errors.Is(err, shapebatch.ErrDestroyed) {
		t.Errorf("Resize error = %v, want ErrDestroyed", err)
	}
}
