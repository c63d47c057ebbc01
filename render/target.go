// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	"errors"
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// Target is a GPU render destination.
//
// The Renderer draws into View; Width and Height are in device pixels.
type Target interface {
	// View returns the texture view rendered into.
	View() hal.TextureView

	// Width returns the target width in pixels.
	Width() int

	// Height returns the target height in pixels.
	Height() int
}

// ViewTarget wraps a texture view owned by someone else, for example an
// acquired surface texture.
type ViewTarget struct {
	view          hal.TextureView
	width, height int
}

// NewViewTarget wraps view as a Target. The view is not destroyed by the
// target.
func NewViewTarget(view hal.TextureView, width, height int) *ViewTarget {
	return &ViewTarget{view: view, width: width, height: height}
}

// View returns the wrapped view.
func (t *ViewTarget) View() hal.TextureView { return t.view }

// Width returns the target width in pixels.
func (t *ViewTarget) Width() int { return t.width }

// Height returns the target height in pixels.
func (t *ViewTarget) Height() int { return t.height }

// TextureTarget is an offscreen texture the target owns.
//
// Example:
//
//	target, err := render.NewTextureTarget(device, 800, 600, gputypes.TextureFormatBGRA8Unorm)
//	if err != nil {
//	    return err
//	}
//	defer target.Destroy()
//	renderer.Render(target, objects...)
type TextureTarget struct {
	device  hal.Device
	texture hal.Texture
	view    hal.TextureView
	width   int
	height  int
	format  gputypes.TextureFormat
}

// NewTextureTarget creates a width×height render attachment texture and
// its view. The texture can also be copied from for readback.
func NewTextureTarget(device hal.Device, width, height int, format gputypes.TextureFormat) (*TextureTarget, error) {
	if device == nil {
		return nil, errors.New("render: nil device")
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("render: invalid target size %dx%d", width, height)
	}
	if format == gputypes.TextureFormatUndefined {
		format = gputypes.TextureFormatBGRA8Unorm
	}

	texture, err := device.CreateTexture(&hal.TextureDescriptor{
		Label:         "shape_target",
		Size:          hal.Extent3D{Width: uint32(width), Height: uint32(height), DepthOrArrayLayers: 1}, //nolint:gosec // checked positive
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        format,
		Usage:         gputypes.TextureUsageRenderAttachment | gputypes.TextureUsageCopySrc,
	})
	if err != nil {
		return nil, fmt.Errorf("create target texture: %w", err)
	}

	view, err := device.CreateTextureView(texture, &hal.TextureViewDescriptor{
		Label: "shape_target_view",
	})
	if err != nil {
		device.DestroyTexture(texture)
		return nil, fmt.Errorf("create target texture view: %w", err)
	}

	return &TextureTarget{
		device:  device,
		texture: texture,
		view:    view,
		width:   width,
		height:  height,
		format:  format,
	}, nil
}

// View returns the texture view.
func (t *TextureTarget) View() hal.TextureView { return t.view }

// Texture returns the underlying texture.
func (t *TextureTarget) Texture() hal.Texture { return t.texture }

// Width returns the target width in pixels.
func (t *TextureTarget) Width() int { return t.width }

// Height returns the target height in pixels.
func (t *TextureTarget) Height() int { return t.height }

// Format returns the texture format.
func (t *TextureTarget) Format() gputypes.TextureFormat { return t.format }

// Destroy releases the view and texture. Safe to call multiple times.
func (t *TextureTarget) Destroy() {
	if t.view != nil {
		t.device.DestroyTextureView(t.view)
		t.view = nil
	}
	if t.texture != nil {
		t.device.DestroyTexture(t.texture)
		t.texture = nil
	}
}

var (
	_ Target = (*ViewTarget)(nil)
	_ Target = (*TextureTarget)(nil)
)
