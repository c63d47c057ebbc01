// Package gpu draws batched filled shapes with the gogpu/wgpu HAL.
//
// ShapeBatch is the only renderer here. It packs transformed triangles into
// one CPU vertex buffer and draws the whole buffer with a single pipeline
// and a single draw call per flush.
//
// # Vertex Format
//
// Each vertex is 16 bytes:
//
//	offset 0   x      float32
//	offset 4   y      float32
//	offset 8   color  uint32, R in the low byte (Unorm8x4)
//	offset 12  alpha  float32
//
// Vertex positions are device pixels after the caller's transform. The
// vertex shader maps them to clip space with the projection from
// Projection and emits premultiplied color, so the pipeline blends
// with BlendStatePremultiplied.
//
// # Flushing
//
// Before each triangle (paths) or each rectangle, ShapeBatch checks whether
// the vertices fit. If they do not, pending vertices are uploaded with
// Queue.WriteBuffer and drawn, and the buffer is reused from the start.
// Only one submission is in flight; the next flush waits for it.
//
// # Shaders
//
// The WGSL source is embedded. With BatchConfig.SPIRV set it is compiled
// to SPIR-V by naga before the module is created.
package gpu
