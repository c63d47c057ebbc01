// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package render draws batches of filled shapes on a GPU device supplied by
// the host application.
//
// # Key Principle
//
// The renderer RECEIVES a GPU device from the host, it does NOT create its
// own. Any gpucontext.DeviceProvider whose Device and Queue are a
// hal.Device and hal.Queue can be passed as a DeviceHandle. Headless tools
// wrap a device they opened themselves with NewHALDeviceHandle.
//
// # Core Types
//
//   - DeviceHandle: GPU device access from the host application
//   - Target: the texture view a frame is drawn into (ViewTarget, TextureTarget)
//   - Graphics: a retained list of filled rectangles and polygons with its
//     own position, scale and rotation
//   - Renderer: replays Graphics objects into one vertex batch and draws it
//
// # Usage
//
//	handle := render.NewHALDeviceHandle(device, queue, gputypes.TextureFormatBGRA8Unorm)
//	r, err := render.NewRenderer(handle,
//	    render.WithSize(800, 600, 1),
//	    render.WithClearColor(shapebatch.Hex("#101018")),
//	)
//	if err != nil {
//	    return err
//	}
//	defer r.Close()
//
//	ship := render.NewGraphics()
//	ship.FillStyle(shapebatch.RGB(0.9, 0.9, 1), 1).
//	    FillPath(shapebatch.Pt(0, -20), shapebatch.Pt(14, 16), shapebatch.Pt(-14, 16))
//	ship.Position = shapebatch.Pt(400, 300)
//
//	target, err := render.NewTextureTarget(device, 800, 600, gputypes.TextureFormatBGRA8Unorm)
//	if err != nil {
//	    return err
//	}
//	defer target.Destroy()
//
//	if err := r.Render(target, ship); err != nil {
//	    return err
//	}
//
// # Batching
//
// All shapes of a frame share one vertex buffer of Config.MaxVertices
// vertices. When the next triangle does not fit, the buffer is drawn and
// reused, so a frame costs one draw call per buffer load. Stats reports
// flushes and draw calls.
package render
