// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"github.com/gogpu/gputypes"

	"github.com/gogpu/shapebatch"
)

// Option configures a Renderer during creation.
//
// Example:
//
//	r, err := render.NewRenderer(handle,
//	    render.WithSize(1280, 720, 2),
//	    render.WithMaxVertices(65536),
//	    render.WithClearColor(shapebatch.Hex("#202030")),
//	)
type Option func(*options)

// options holds optional configuration for Renderer creation.
type options struct {
	cfg    shapebatch.Config
	clear  *shapebatch.RGBA
	format gputypes.TextureFormat
}

// defaultOptions returns the default renderer options.
func defaultOptions() options {
	return options{
		cfg:    shapebatch.DefaultConfig(),
		format: gputypes.TextureFormatUndefined, // Will use the handle's SurfaceFormat
	}
}

// WithConfig replaces the whole configuration, typically one returned by
// shapebatch.LoadConfig. Options after it override individual fields.
func WithConfig(cfg shapebatch.Config) Option {
	return func(o *options) {
		o.cfg = cfg
	}
}

// WithMaxVertices sets the vertex buffer capacity.
func WithMaxVertices(n int) Option {
	return func(o *options) {
		o.cfg.MaxVertices = n
	}
}

// WithSize sets the logical viewport size and device pixel resolution.
func WithSize(width, height int, resolution float64) Option {
	return func(o *options) {
		o.cfg.Width = width
		o.cfg.Height = height
		o.cfg.Resolution = resolution
	}
}

// WithSPIRV selects SPIR-V shader compilation with naga.
func WithSPIRV(enabled bool) Option {
	return func(o *options) {
		o.cfg.SPIRV = enabled
	}
}

// WithClearColor clears every rendered frame to c.
func WithClearColor(c shapebatch.RGBA) Option {
	return func(o *options) {
		o.clear = &c
		o.cfg.ClearBeforeRender = true
	}
}

// WithClearBeforeRender enables or disables clearing at the start of Render.
func WithClearBeforeRender(enabled bool) Option {
	return func(o *options) {
		o.cfg.ClearBeforeRender = enabled
	}
}

// WithFormat sets the color format of the targets passed to Render.
// By default the handle's SurfaceFormat is used, falling back to BGRA8Unorm.
func WithFormat(format gputypes.TextureFormat) Option {
	return func(o *options) {
		o.format = format
	}
}

// clearColor returns the resolved clear color.
func (o *options) clearColor() shapebatch.RGBA {
	if o.clear != nil {
		return *o.clear
	}
	return shapebatch.Hex(o.cfg.ClearColor)
}
