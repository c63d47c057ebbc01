// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"fmt"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/shapebatch"
)

// DeviceHandle provides GPU device access from the host application.
//
// The renderer RECEIVES the device from the host, it does NOT create one.
// Device() and Queue() must return a hal.Device and hal.Queue.
//
// DeviceHandle is an alias for gpucontext.DeviceProvider so that any host
// in the gpucontext ecosystem can pass its provider directly.
type DeviceHandle = gpucontext.DeviceProvider

// HALDeviceHandle adapts a raw HAL device and queue to DeviceHandle.
// Used by headless tools and tests that open a device themselves.
type HALDeviceHandle struct {
	device hal.Device
	queue  hal.Queue
	format gputypes.TextureFormat
	info   gpucontext.AdapterInfo
}

// NewHALDeviceHandle wraps device and queue. format is the preferred render
// target format; pass gputypes.TextureFormatUndefined when headless.
func NewHALDeviceHandle(device hal.Device, queue hal.Queue, format gputypes.TextureFormat) *HALDeviceHandle {
	return &HALDeviceHandle{
		device: device,
		queue:  queue,
		format: format,
		info:   gpucontext.AdapterInfo{Type: gpucontext.AdapterTypeUnknown},
	}
}

// SetAdapterInfo records adapter metadata reported by AdapterInfo.
func (h *HALDeviceHandle) SetAdapterInfo(info gpucontext.AdapterInfo) {
	h.info = info
}

// Device returns the HAL device.
func (h *HALDeviceHandle) Device() gpucontext.Device {
	if h.device == nil {
		return nil
	}
	return h.device
}

// Queue returns the HAL queue.
func (h *HALDeviceHandle) Queue() gpucontext.Queue {
	if h.queue == nil {
		return nil
	}
	return h.queue
}

// SurfaceFormat returns the preferred target format.
func (h *HALDeviceHandle) SurfaceFormat() gputypes.TextureFormat { return h.format }

// Adapter returns nil; the adapter is not retained.
func (h *HALDeviceHandle) Adapter() gpucontext.Adapter { return nil }

// AdapterInfo returns the recorded adapter metadata.
func (h *HALDeviceHandle) AdapterInfo() gpucontext.AdapterInfo { return h.info }

// NullDeviceHandle is a DeviceHandle that provides nil implementations.
// NewRenderer rejects it with shapebatch.ErrNoDevice.
type NullDeviceHandle struct{}

// Device returns nil for the null device.
func (NullDeviceHandle) Device() gpucontext.Device { return nil }

// Queue returns nil for the null device.
func (NullDeviceHandle) Queue() gpucontext.Queue { return nil }

// Adapter returns nil for the null device.
func (NullDeviceHandle) Adapter() gpucontext.Adapter { return nil }

// SurfaceFormat returns undefined format for the null device.
func (NullDeviceHandle) SurfaceFormat() gputypes.TextureFormat {
	return gputypes.TextureFormatUndefined
}

// AdapterInfo returns unknown adapter info for the null device.
func (NullDeviceHandle) AdapterInfo() gpucontext.AdapterInfo {
	return gpucontext.AdapterInfo{Type: gpucontext.AdapterTypeUnknown}
}

// Ensure both handles implement DeviceHandle.
var (
	_ DeviceHandle = (*HALDeviceHandle)(nil)
	_ DeviceHandle = NullDeviceHandle{}
)

// halFromHandle extracts the HAL device and queue from handle.
func halFromHandle(handle DeviceHandle) (hal.Device, hal.Queue, error) {
	if handle == nil {
		return nil, nil, fmt.Errorf("%w: nil device handle", shapebatch.ErrNoDevice)
	}

	d, q := handle.Device(), handle.Queue()
	if d == nil || q == nil {
		return nil, nil, shapebatch.ErrNoDevice
	}

	device, ok := d.(hal.Device)
	if !ok {
		return nil, nil, fmt.Errorf("%w: device %T is not a hal.Device", shapebatch.ErrNoDevice, d)
	}
	queue, ok := q.(hal.Queue)
	if !ok {
		return nil, nil, fmt.Errorf("%w: queue %T is not a hal.Queue", shapebatch.ErrNoDevice, q)
	}
	return device, queue, nil
}
