package gpu

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
	"golang.org/x/image/math/f32"

	"github.com/gogpu/shapebatch"
	"github.com/gogpu/shapebatch/internal/earcut"
	"github.com/gogpu/shapebatch/internal/vbuf"
)

// BatchConfig configures a ShapeBatch.
type BatchConfig struct {
	// MaxVertices is the vertex buffer capacity. Geometry beyond it is
	// drawn in additional flushes.
	MaxVertices int

	// Width and Height are the logical target size; Resolution multiplies
	// them into device pixels.
	Width, Height int
	Resolution    float64

	// Format is the color format of the render targets passed to Bind.
	Format gputypes.TextureFormat

	// SPIRV compiles the shader to SPIR-V with naga instead of passing WGSL
	// to the backend.
	SPIRV bool
}

// DefaultBatchConfig returns the configuration matching shapebatch.DefaultConfig.
func DefaultBatchConfig() BatchConfig {
	c := shapebatch.DefaultConfig()
	return BatchConfig{
		MaxVertices: c.MaxVertices,
		Width:       c.Width,
		Height:      c.Height,
		Resolution:  c.Resolution,
		Format:      gputypes.TextureFormatBGRA8Unorm,
		SPIRV:       c.SPIRV,
	}
}

// Stats counts the work done by a ShapeBatch since creation.
type Stats struct {
	Flushes       uint64
	DrawCalls     uint64
	VerticesDrawn uint64
	Clears        uint64
}

// ShapeBatch accumulates filled polygons and rectangles into one vertex
// buffer and draws them with a single pipeline.
//
// Geometry is transformed on the CPU and packed as
// (x, y, color, alpha) per vertex. When the buffer cannot hold the next
// triangle or rectangle, the pending vertices are drawn first and packing
// continues into the emptied buffer.
//
// ShapeBatch is not safe for concurrent use. The device and queue are
// borrowed and must outlive it.
type ShapeBatch struct {
	device hal.Device
	queue  hal.Queue
	format gputypes.TextureFormat

	vertices *vbuf.Buffer
	polygon  []float64
	res      *pipelineResources

	target hal.TextureView

	width, height int // device pixels
	resolution    float64

	inflight  submission
	stats     Stats
	destroyed bool
}

// NewShapeBatch allocates the vertex buffer, compiles the shader and creates
// the pipeline and buffers, then uploads the initial projection.
func NewShapeBatch(device hal.Device, queue hal.Queue, cfg BatchConfig) (*ShapeBatch, error) {
	if device == nil || queue == nil {
		return nil, shapebatch.ErrNoDevice
	}
	if cfg.MaxVertices < shapebatch.MinVertices {
		return nil, fmt.Errorf("%w: max vertices %d below %d",
			shapebatch.ErrInvalidConfig, cfg.MaxVertices, shapebatch.MinVertices)
	}
	if cfg.Format == gputypes.TextureFormatUndefined {
		cfg.Format = gputypes.TextureFormatBGRA8Unorm
	}

	vertices := vbuf.New(cfg.MaxVertices)
	res, err := createPipelineResources(device, cfg.Format, uint64(vertices.CapacityBytes()), cfg.SPIRV)
	if err != nil {
		return nil, fmt.Errorf("create shape batch: %w", err)
	}

	b := &ShapeBatch{
		device:   device,
		queue:    queue,
		format:   cfg.Format,
		vertices: vertices,
		res:      res,
	}
	if err := b.Resize(cfg.Width, cfg.Height, cfg.Resolution); err != nil {
		res.destroy(device)
		return nil, fmt.Errorf("create shape batch: %w", err)
	}

	slogger().Debug("shape batch created",
		"max_vertices", cfg.MaxVertices,
		"buffer_bytes", vertices.CapacityBytes(),
		"format", cfg.Format,
		"spirv", cfg.SPIRV)
	return b, nil
}

// Bind selects the render target for subsequent flushes.
func (b *ShapeBatch) Bind(target hal.TextureView) {
	b.target = target
}

// Unbind releases the render target. Pending geometry is kept.
func (b *ShapeBatch) Unbind() {
	b.target = nil
}

// Bound reports whether a render target is bound.
func (b *ShapeBatch) Bound() bool { return b.target != nil }

// AddFillPath triangulates the closed path and appends its triangles
// transformed by m. m must map path coordinates to device pixels. On error
// none of the path's vertices stay pending. Paths with fewer than 3 points or zero area add nothing.
func (b *ShapeBatch) AddFillPath(path []shapebatch.Point, color uint32, alpha float32, m shapebatch.Matrix) error {
	if b.destroyed {
		return shapebatch.ErrDestroyed
	}

	b.polygon = shapebatch.Flatten(b.polygon[:0], path)
	defer func() { b.polygon = b.polygon[:0] }()

	// A failed reserve must not leave part of the path pending.
	start, flushes := b.vertices.UsedFloats(), b.stats.Flushes

	indices := earcut.Triangulate(b.polygon)
	if len(indices) == 0 && len(path) >= 3 {
		slogger().Debug("shape batch: degenerate path skipped",
			"points", len(path),
			"area", earcut.Area(b.polygon))
	}
	for i := 0; i+2 < len(indices); i += 3 {
		w, err := b.reserve(3)
		if err != nil {
			if b.stats.Flushes == flushes {
				b.vertices.Truncate(start)
			} else {
				b.vertices.Clear()
			}
			return err
		}
		for _, idx := range indices[i : i+3] {
			x, y := m.Apply32(b.polygon[2*idx], b.polygon[2*idx+1])
			w.WriteVertex(f32.Vec2{x, y}, color, alpha)
		}
	}
	return nil
}

// AddFillRect appends the rectangle (x, y, w, h) as two triangles
// transformed by m. Corners are numbered 0:(x,y) 1:(x,y+h) 2:(x+w,y+h)
// 3:(x+w,y) and split along the 0-2 diagonal.
func (b *ShapeBatch) AddFillRect(x, y, w, h float64, color uint32, alpha float32, m shapebatch.Matrix) error {
	if b.destroyed {
		return shapebatch.ErrDestroyed
	}

	wr, err := b.reserve(6)
	if err != nil {
		return err
	}

	xw, yh := x+w, y+h
	var c [4]f32.Vec2
	c[0][0], c[0][1] = m.Apply32(x, y)
	c[1][0], c[1][1] = m.Apply32(x, yh)
	c[2][0], c[2][1] = m.Apply32(xw, yh)
	c[3][0], c[3][1] = m.Apply32(xw, y)

	for _, i := range [6]int{0, 1, 2, 0, 2, 3} {
		wr.WriteVertex(c[i], color, alpha)
	}
	return nil
}

// reserve returns a writer for n vertices, flushing pending geometry first
// when they do not fit.
func (b *ShapeBatch) reserve(n int) (vbuf.Writer, error) {
	if n > b.vertices.MaxVertices() {
		return vbuf.Writer{}, fmt.Errorf("%w: %d vertices, capacity %d",
			shapebatch.ErrShapeTooLarge, n, b.vertices.MaxVertices())
	}
	if b.vertices.IsFull(n * vbuf.FloatsPerVertex) {
		if err := b.Flush(); err != nil {
			return vbuf.Writer{}, err
		}
	}
	return b.vertices.Reserve(n)
}

// VertexCount returns the number of pending vertices.
func (b *ShapeBatch) VertexCount() int { return b.vertices.VertexCount() }

// MaxVertices returns the vertex buffer capacity.
func (b *ShapeBatch) MaxVertices() int { return b.vertices.MaxVertices() }

// Flush draws all pending vertices to the bound target in one draw call and
// empties the buffer. It is a no-op when nothing is pending.
//
// Pending vertices are kept when no target is bound. Once upload starts
// they are discarded whether or not submission succeeds.
func (b *ShapeBatch) Flush() error {
	count := b.vertices.VertexCount()
	if count == 0 {
		return nil
	}
	if b.destroyed {
		return shapebatch.ErrDestroyed
	}
	if b.target == nil {
		return shapebatch.ErrNotBound
	}
	defer b.vertices.Clear()

	if err := b.waitPrevious(); err != nil {
		return err
	}
	if err := b.queue.WriteBuffer(b.res.vertexBuf, 0, b.vertices.Bytes()); err != nil {
		return fmt.Errorf("upload vertices: %w", err)
	}

	err := b.submitPass("shape_flush", gputypes.LoadOpLoad, gputypes.Color{}, func(rp hal.RenderPassEncoder) {
		rp.SetPipeline(b.res.pipeline)
		rp.SetBindGroup(0, b.res.bindGroup, nil)
		rp.SetVertexBuffer(0, b.res.vertexBuf, 0)
		rp.Draw(uint32(count), 1, 0, 0) //nolint:gosec // count <= MaxVertices
	})
	if err != nil {
		return err
	}

	b.stats.Flushes++
	b.stats.DrawCalls++
	b.stats.VerticesDrawn += uint64(count)
	slogger().Debug("shape batch flush",
		"vertices", count,
		"bytes", b.vertices.UsedBytes())
	return nil
}

// Discard drops pending vertices without drawing them.
func (b *ShapeBatch) Discard() {
	if n := b.vertices.VertexCount(); n > 0 {
		slogger().Debug("shape batch discard", "vertices", n)
	}
	b.vertices.Clear()
}

// Clear fills the bound target with c. Pending geometry is not drawn.
func (b *ShapeBatch) Clear(c gputypes.Color) error {
	if b.destroyed {
		return shapebatch.ErrDestroyed
	}
	if b.target == nil {
		return shapebatch.ErrNotBound
	}
	if err := b.submitPass("shape_clear", gputypes.LoadOpClear, c, nil); err != nil {
		return err
	}
	b.stats.Clears++
	return nil
}

// submission is the last command buffer handed to the queue. Its encoder
// and command buffer are released once the GPU has finished with them.
type submission struct {
	index   uint64
	encoder hal.CommandEncoder
	cmdBuf  hal.CommandBuffer
}

// submitPass encodes one render pass on the bound target, records draws
// into it and submits it.
func (b *ShapeBatch) submitPass(label string, load gputypes.LoadOp, clear gputypes.Color, record func(hal.RenderPassEncoder)) error {
	if err := b.waitPrevious(); err != nil {
		return err
	}

	encoder, err := b.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{
		Label: label + "_encoder",
	})
	if err != nil {
		return fmt.Errorf("create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding(label); err != nil {
		encoder.Destroy()
		return fmt.Errorf("begin encoding: %w", err)
	}

	rp := encoder.BeginRenderPass(&hal.RenderPassDescriptor{
		Label: label + "_pass",
		ColorAttachments: []hal.RenderPassColorAttachment{{
			View:       b.target,
			LoadOp:     load,
			StoreOp:    gputypes.StoreOpStore,
			ClearValue: clear,
		}},
	})
	if record != nil {
		record(rp)
	}
	rp.End()

	cmdBuf, err := encoder.EndEncoding()
	if err != nil {
		encoder.Destroy()
		return fmt.Errorf("end encoding: %w", err)
	}

	idx, err := b.queue.Submit([]hal.CommandBuffer{cmdBuf})
	if err != nil {
		b.device.FreeCommandBuffer(cmdBuf)
		encoder.Destroy()
		return fmt.Errorf("submit: %w", err)
	}
	b.inflight = submission{index: idx, encoder: encoder, cmdBuf: cmdBuf}
	return nil
}

// waitPrevious blocks until the last submission has completed, then
// releases its command buffer. Buffers it read may be overwritten after.
func (b *ShapeBatch) waitPrevious() error {
	s := b.inflight
	if s.cmdBuf == nil {
		return nil
	}
	if b.queue.PollCompleted() < s.index {
		if err := b.device.WaitIdle(); err != nil {
			return fmt.Errorf("wait for GPU: %w", err)
		}
	}
	b.releaseInflight()
	return nil
}

// releaseInflight frees the last submission's command buffer and encoder.
func (b *ShapeBatch) releaseInflight() {
	s := b.inflight
	if s.cmdBuf != nil {
		b.device.FreeCommandBuffer(s.cmdBuf)
	}
	if s.encoder != nil {
		s.encoder.Destroy()
	}
	b.inflight = submission{}
}

// Resize recomputes the device pixel size and uploads a new projection.
// Pending geometry is kept and drawn with the new projection.
func (b *ShapeBatch) Resize(width, height int, resolution float64) error {
	if b.destroyed {
		return shapebatch.ErrDestroyed
	}
	if width <= 0 || height <= 0 || resolution <= 0 {
		return fmt.Errorf("%w: size %dx%d at resolution %v",
			shapebatch.ErrInvalidConfig, width, height, resolution)
	}

	if err := b.waitPrevious(); err != nil {
		return err
	}
	proj := Projection(width, height, resolution)
	if err := b.queue.WriteBuffer(b.res.uniformBuf, 0, projectionBytes(proj)); err != nil {
		return fmt.Errorf("upload projection: %w", err)
	}

	b.width = int(float64(width) * resolution)
	b.height = int(float64(height) * resolution)
	b.resolution = resolution
	slogger().Debug("shape batch resized",
		"width", b.width,
		"height", b.height,
		"resolution", resolution)
	return nil
}

// Size returns the device pixel size of the last Resize.
func (b *ShapeBatch) Size() (width, height int) {
	return b.width, b.height
}

// Format returns the color format the pipeline renders to.
func (b *ShapeBatch) Format() gputypes.TextureFormat { return b.format }

// Resolution returns the resolution of the last Resize.
func (b *ShapeBatch) Resolution() float64 { return b.resolution }

// Stats returns counters since creation.
func (b *ShapeBatch) Stats() Stats { return b.stats }

// Destroy releases all GPU resources. Pending geometry is discarded.
// Safe to call multiple times.
func (b *ShapeBatch) Destroy() {
	if b == nil || b.destroyed {
		return
	}
	b.destroyed = true
	b.target = nil
	if b.vertices != nil {
		b.vertices.Clear()
	}

	if b.device == nil {
		return
	}
	if err := b.waitPrevious(); err != nil {
		slogger().Warn("shape batch: wait before destroy failed", "error", err)
	}
	b.releaseInflight()
	b.res.destroy(b.device)
	b.res = nil
}

// Destroyed reports whether Destroy has been called.
func (b *ShapeBatch) Destroyed() bool { return b.destroyed }
