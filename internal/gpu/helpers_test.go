package gpu

import (
	"errors"
	"testing"
	"unsafe"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
	"github.com/gogpu/wgpu/hal/noop"
)

// createNoopDevice creates a noop HAL device and queue for testing.
func createNoopDevice(t *testing.T) (hal.Device, hal.Queue, func()) {
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
	cleanup := func() {
		openDev.Device.Destroy()
		instance.Destroy()
	}
	return openDev.Device, openDev.Queue, cleanup
}

// createTarget creates a render target view on device.
func createTarget(t *testing.T, device hal.Device, w, h uint32) hal.TextureView {
	t.Helper()
	tex, err := device.CreateTexture(&hal.TextureDescriptor{
		Label:         "test_target",
		Size:          hal.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        gputypes.TextureFormatBGRA8Unorm,
		Usage:         gputypes.TextureUsageRenderAttachment,
	})
	if err != nil {
		t.Fatalf("CreateTexture failed: %v", err)
	}
	view, err := device.CreateTextureView(tex, &hal.TextureViewDescriptor{Label: "test_target_view"})
	if err != nil {
		t.Fatalf("CreateTextureView failed: %v", err)
	}
	t.Cleanup(func() {
		device.DestroyTextureView(view)
		device.DestroyTexture(tex)
	})
	return view
}

// readBuffer maps buf and copies n bytes from its start.
func readBuffer(t *testing.T, device hal.Device, buf hal.Buffer, n int) []byte {
	t.Helper()
	m, err := device.MapBuffer(buf, 0, uint64(n))
	if err != nil {
		t.Fatalf("MapBuffer failed: %v", err)
	}
	defer func() { _ = device.UnmapBuffer(buf) }()
	out := make([]byte, n)
	copy(out, unsafe.Slice((*byte)(m.Ptr), n))
	return out
}

// gpuLog records the commands that reach the device.
type gpuLog struct {
	passes  []passRecord
	uploads []upload
	submits int

	// failWait makes submissions look unfinished and WaitIdle fail.
	failWait         bool
	freedCmdBufs     int
	destroyedEncoder int
}

var errWaitFailed = errors.New("device lost")

type passRecord struct {
	load  gputypes.LoadOp
	clear gputypes.Color
	view  hal.TextureView
	draws []uint32
}

type upload struct {
	buffer hal.Buffer
	offset uint64
	data   []byte
}

// draws returns the vertex count of every draw call in order.
func (l *gpuLog) draws() []uint32 {
	var out []uint32
	for _, p := range l.passes {
		out = append(out, p.draws...)
	}
	return out
}

// uploadsTo returns the uploads made to buf.
func (l *gpuLog) uploadsTo(buf hal.Buffer) []upload {
	var out []upload
	for _, u := range l.uploads {
		if u.buffer == buf {
			out = append(out, u)
		}
	}
	return out
}

type recordingDevice struct {
	hal.Device
	log *gpuLog
}

func (d *recordingDevice) CreateCommandEncoder(desc *hal.CommandEncoderDescriptor) (hal.CommandEncoder, error) {
	enc, err := d.Device.CreateCommandEncoder(desc)
	if err != nil {
		return nil, err
	}
	return &recordingEncoder{CommandEncoder: enc, log: d.log}, nil
}

func (d *recordingDevice) WaitIdle() error {
	if d.log.failWait {
		return errWaitFailed
	}
	return d.Device.WaitIdle()
}

func (d *recordingDevice) FreeCommandBuffer(cmdBuf hal.CommandBuffer) {
	d.log.freedCmdBufs++
	d.Device.FreeCommandBuffer(cmdBuf)
}

type recordingEncoder struct {
	hal.CommandEncoder
	log *gpuLog
}

func (e *recordingEncoder) BeginRenderPass(desc *hal.RenderPassDescriptor) hal.RenderPassEncoder {
	ca := desc.ColorAttachments[0]
	e.log.passes = append(e.log.passes, passRecord{load: ca.LoadOp, clear: ca.ClearValue, view: ca.View})
	return &recordingPass{
		RenderPassEncoder: e.CommandEncoder.BeginRenderPass(desc),
		log:               e.log,
		index:             len(e.log.passes) - 1,
	}
}

func (e *recordingEncoder) Destroy() {
	e.log.destroyedEncoder++
	e.CommandEncoder.Destroy()
}

type recordingPass struct {
	hal.RenderPassEncoder
	log   *gpuLog
	index int
}

func (p *recordingPass) Draw(vertexCount, instanceCount, firstVertex, firstInstance uint32) {
	p.log.passes[p.index].draws = append(p.log.passes[p.index].draws, vertexCount)
	p.RenderPassEncoder.Draw(vertexCount, instanceCount, firstVertex, firstInstance)
}

type recordingQueue struct {
	hal.Queue
	log *gpuLog
}

func (q *recordingQueue) WriteBuffer(buffer hal.Buffer, offset uint64, data []byte) error {
	q.log.uploads = append(q.log.uploads, upload{buffer: buffer, offset: offset, data: append([]byte(nil), data...)})
	return q.Queue.WriteBuffer(buffer, offset, data)
}

func (q *recordingQueue) Submit(commandBuffers []hal.CommandBuffer) (uint64, error) {
	q.log.submits++
	return q.Queue.Submit(commandBuffers)
}

func (q *recordingQueue) PollCompleted() uint64 {
	if q.log.failWait {
		return 0
	}
	return q.Queue.PollCompleted()
}

// newRecordingBatch creates a ShapeBatch on a recording noop device with a
// bound target.
func newRecordingBatch(t *testing.T, cfg BatchConfig) (*ShapeBatch, *gpuLog) {
	t.Helper()
	device, queue, cleanup := createNoopDevice(t)
	t.Cleanup(cleanup)

	log := &gpuLog{}
	rdev := &recordingDevice{Device: device, log: log}
	b, err := NewShapeBatch(rdev, &recordingQueue{Queue: queue, log: log}, cfg)
	if err != nil {
		t.Fatalf("NewShapeBatch failed: %v", err)
	}
	t.Cleanup(b.Destroy)
	b.Bind(createTarget(t, device, 64, 64))
	return b, log
}

func testBatchConfig(maxVertices int) BatchConfig {
	cfg := DefaultBatchConfig()
	cfg.MaxVertices = maxVertices
	return cfg
}
