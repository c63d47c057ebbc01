// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"testing"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
	"github.com/gogpu/wgpu/hal/noop"
)

// createNoopDevice creates a noop HAL device and queue for testing.
func createNoopDevice(t *testing.T) (hal.Device, hal.Queue) {
	t.Helper()
	api := noop.API{}
	instance, err := api.CreateInstance(nil)
	if err != nil {
		t.Fatalf("CreateInstance failed: %v", err)
	}
	adapters := instance.EnumerateAdapters(nil)
	openDev, err := adapters[0].Adapter.Open(0, gputypes.DefaultLimits())
	if err != nil {
		instance.Destroy()
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() {
		openDev.Device.Destroy()
		instance.Destroy()
	})
	return openDev.Device, openDev.Queue
}

// newTestRenderer creates a renderer and a 64x64 texture target on a noop device.
func newTestRenderer(t *testing.T, opts ...Option) (*Renderer, *TextureTarget) {
	t.Helper()
	device, queue := createNoopDevice(t)
	handle := NewHALDeviceHandle(device, queue, gputypes.TextureFormatBGRA8Unorm)

	opts = append([]Option{WithSize(64, 64, 1)}, opts...)
	r, err := NewRenderer(handle, opts...)
	if err != nil {
		t.Fatalf("NewRenderer failed: %v", err)
	}
	t.Cleanup(r.Close)

	target, err := NewTextureTarget(device, 64, 64, gputypes.TextureFormatBGRA8Unorm)
	if err != nil {
		t.Fatalf("NewTextureTarget failed: %v", err)
	}
	t.Cleanup(target.Destroy)
	return r, target
}
