// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"fmt"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/shapebatch"
	"github.com/gogpu/shapebatch/internal/gpu"
)

// Renderer draws Graphics objects to render targets with one ShapeBatch.
//
// The renderer borrows the device from its DeviceHandle and owns only the
// pipeline and buffers it creates. All shapes of a frame are packed into
// one vertex buffer and drawn in as few draw calls as its capacity allows.
//
// Thread Safety: Renderer is NOT thread-safe.
//
// Example:
//
//	r, err := render.NewRenderer(handle, render.WithSize(800, 600, 1))
//	if err != nil {
//	    return err
//	}
//	defer r.Close()
//
//	if err := r.Render(target, background, player); err != nil {
//	    log.Printf("render failed: %v", err)
//	}
type Renderer struct {
	handle DeviceHandle
	batch  *gpu.ShapeBatch
	cfg    shapebatch.Config
	clear  gputypes.Color
	frames uint64
	closed bool
}

// Stats counts the work done by a Renderer since creation.
type Stats struct {
	// Frames is the number of successful Render calls.
	Frames uint64

	// Flushes is the number of vertex buffer flushes. More than one per
	// frame means the scene outgrew MaxVertices.
	Flushes uint64

	DrawCalls     uint64
	VerticesDrawn uint64
	Clears        uint64
}

// NewRenderer creates a renderer on the device provided by handle.
//
// Returns ErrNoDevice if the handle does not carry a HAL device and queue,
// and ErrInvalidConfig if the resolved configuration is unusable.
func NewRenderer(handle DeviceHandle, opts ...Option) (*Renderer, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if err := o.cfg.Validate(); err != nil {
		return nil, err
	}

	device, queue, err := halFromHandle(handle)
	if err != nil {
		return nil, err
	}

	format := o.format
	if format == gputypes.TextureFormatUndefined {
		format = handle.SurfaceFormat()
	}
	if format == gputypes.TextureFormatUndefined {
		format = gputypes.TextureFormatBGRA8Unorm
	}

	batch, err := gpu.NewShapeBatch(device, queue, gpu.BatchConfig{
		MaxVertices: o.cfg.MaxVertices,
		Width:       o.cfg.Width,
		Height:      o.cfg.Height,
		Resolution:  o.cfg.Resolution,
		Format:      format,
		SPIRV:       o.cfg.SPIRV,
	})
	if err != nil {
		return nil, fmt.Errorf("create renderer: %w", err)
	}

	c := o.clearColor()
	r := &Renderer{
		handle: handle,
		batch:  batch,
		cfg:    o.cfg,
		clear:  gputypes.Color{R: c.R, G: c.G, B: c.B, A: c.A},
	}

	info := handle.AdapterInfo()
	slogger().Info("shape renderer created",
		"adapter", info.Name,
		"format", format,
		"size", fmt.Sprintf("%dx%d@%g", o.cfg.Width, o.cfg.Height, o.cfg.Resolution),
		"max_vertices", o.cfg.MaxVertices)
	return r, nil
}

// Render draws the objects to target in order.
//
// The target must match the configured size times the resolution; call
// Resize when it changes. The target is cleared first when
// ClearBeforeRender is set. Invisible
// objects are skipped. Objects are not modified and can be rendered again.
// If rendering fails, geometry not yet drawn is discarded so the next frame
// starts empty.
func (r *Renderer) Render(target Target, objects ...*Graphics) error {
	if r.closed {
		return shapebatch.ErrDestroyed
	}
	if target == nil || target.View() == nil {
		return shapebatch.ErrNotBound
	}
	if w, h := r.batch.Size(); target.Width() != w || target.Height() != h {
		return fmt.Errorf("%w: target is %dx%d, renderer is sized for %dx%d device pixels",
			shapebatch.ErrInvalidConfig, target.Width(), target.Height(), w, h)
	}

	r.batch.Bind(target.View())
	defer r.batch.Unbind()

	if err := r.render(objects); err != nil {
		r.batch.Discard()
		return fmt.Errorf("render: %w", err)
	}
	r.frames++
	return nil
}

func (r *Renderer) render(objects []*Graphics) error {
	if r.cfg.ClearBeforeRender {
		if err := r.batch.Clear(r.clear); err != nil {
			return err
		}
	}
	world := r.worldToDevice()
	for _, g := range objects {
		if g == nil || !g.Visible {
			continue
		}
		if err := g.replay(r.batch, world); err != nil {
			return err
		}
	}
	return r.batch.Flush()
}

// worldToDevice maps logical pixels to the device pixels the projection
// expects.
func (r *Renderer) worldToDevice() shapebatch.Matrix {
	return shapebatch.Scale(r.cfg.Resolution, r.cfg.Resolution)
}

// Resize changes the logical viewport size and resolution.
func (r *Renderer) Resize(width, height int, resolution float64) error {
	if r.closed {
		return shapebatch.ErrDestroyed
	}
	if err := r.batch.Resize(width, height, resolution); err != nil {
		return err
	}
	r.cfg.Width = width
	r.cfg.Height = height
	r.cfg.Resolution = resolution
	return nil
}

// Config returns the configuration the renderer runs with.
func (r *Renderer) Config() shapebatch.Config { return r.cfg }

// Stats returns counters since creation.
func (r *Renderer) Stats() Stats {
	s := r.batch.Stats()
	return Stats{
		Frames:        r.frames,
		Flushes:       s.Flushes,
		DrawCalls:     s.DrawCalls,
		VerticesDrawn: s.VerticesDrawn,
		Clears:        s.Clears,
	}
}

// Close releases the renderer's GPU resources. The device itself belongs
// to the handle and is left open. Safe to call multiple times.
func (r *Renderer) Close() {
	if r.closed {
		return
	}
	r.closed = true
	r.batch.Destroy()
	slogger().Debug("shape renderer closed")
}
