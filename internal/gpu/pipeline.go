package gpu

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/shapebatch/internal/vbuf"
)

// shapeVertexLayout returns the vertex buffer layout for the shape pipeline.
// It must match vbuf.Writer byte for byte.
func shapeVertexLayout() []gputypes.VertexBufferLayout {
	return []gputypes.VertexBufferLayout{
		{
			ArrayStride: vbuf.Stride,
			StepMode:    gputypes.VertexStepModeVertex,
			Attributes: []gputypes.VertexAttribute{
				{Format: gputypes.VertexFormatFloat32x2, Offset: vbuf.OffsetPosition, ShaderLocation: 0}, // position
				{Format: gputypes.VertexFormatUnorm8x4, Offset: vbuf.OffsetColor, ShaderLocation: 1},     // color
				{Format: gputypes.VertexFormatFloat32, Offset: vbuf.OffsetAlpha, ShaderLocation: 2},      // alpha
			},
		},
	}
}

// pipelineResources holds the GPU objects owned by a ShapeBatch.
type pipelineResources struct {
	shader        hal.ShaderModule
	uniformLayout hal.BindGroupLayout
	pipeLayout    hal.PipelineLayout
	pipeline      hal.RenderPipeline
	vertexBuf     hal.Buffer
	uniformBuf    hal.Buffer
	bindGroup     hal.BindGroup
}

// createPipelineResources compiles the shape shader and creates the render
// pipeline, vertex buffer, uniform buffer and bind group. On failure every
// object created so far is destroyed.
func createPipelineResources(device hal.Device, format gputypes.TextureFormat, vertexBytes uint64, useSPIRV bool) (res *pipelineResources, err error) {
	res = &pipelineResources{}
	defer func() {
		if err != nil {
			res.destroy(device)
			res = nil
		}
	}()

	res.shader, err = createShaderModule(device, useSPIRV)
	if err != nil {
		return res, err
	}

	res.uniformLayout, err = device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: "shape_uniform_layout",
		Entries: []gputypes.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: gputypes.ShaderStageVertex,
				Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform},
			},
		},
	})
	if err != nil {
		return res, fmt.Errorf("create shape uniform layout: %w", err)
	}

	res.pipeLayout, err = device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            "shape_pipe_layout",
		BindGroupLayouts: []hal.BindGroupLayout{res.uniformLayout},
	})
	if err != nil {
		return res, fmt.Errorf("create shape pipeline layout: %w", err)
	}

	premulBlend := gputypes.BlendStatePremultiplied()
	res.pipeline, err = device.CreateRenderPipeline(&hal.RenderPipelineDescriptor{
		Label:  "shape_pipeline",
		Layout: res.pipeLayout,
		Vertex: hal.VertexState{
			Module:     res.shader,
			EntryPoint: vertexEntryPoint,
			Buffers:    shapeVertexLayout(),
		},
		Fragment: &hal.FragmentState{
			Module:     res.shader,
			EntryPoint: fragmentEntryPoint,
			Targets: []gputypes.ColorTargetState{
				{
					Format:    format,
					Blend:     &premulBlend,
					WriteMask: gputypes.ColorWriteMaskAll,
				},
			},
		},
		Primitive: gputypes.PrimitiveState{
			Topology: gputypes.PrimitiveTopologyTriangleList,
			CullMode: gputypes.CullModeNone,
		},
		Multisample: gputypes.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		return res, fmt.Errorf("create shape pipeline: %w", err)
	}

	res.vertexBuf, err = device.CreateBuffer(&hal.BufferDescriptor{
		Label: "shape_vertices",
		Size:  vertexBytes,
		Usage: gputypes.BufferUsageVertex | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return res, fmt.Errorf("create shape vertex buffer: %w", err)
	}

	res.uniformBuf, err = device.CreateBuffer(&hal.BufferDescriptor{
		Label: "shape_uniforms",
		Size:  projectionSize,
		Usage: gputypes.BufferUsageUniform | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return res, fmt.Errorf("create shape uniform buffer: %w", err)
	}

	res.bindGroup, err = device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:  "shape_bind_group",
		Layout: res.uniformLayout,
		Entries: []gputypes.BindGroupEntry{
			{Binding: 0, Resource: gputypes.BufferBinding{
				Buffer: res.uniformBuf.NativeHandle(),
				Offset: 0,
				Size:   projectionSize,
			}},
		},
	})
	if err != nil {
		return res, fmt.Errorf("create shape bind group: %w", err)
	}

	return res, nil
}

// destroy releases all resources in reverse creation order.
// Safe to call on a partially created set.
func (r *pipelineResources) destroy(device hal.Device) {
	if r == nil || device == nil {
		return
	}
	if r.bindGroup != nil {
		device.DestroyBindGroup(r.bindGroup)
		r.bindGroup = nil
	}
	if r.uniformBuf != nil {
		device.DestroyBuffer(r.uniformBuf)
		r.uniformBuf = nil
	}
	if r.vertexBuf != nil {
		device.DestroyBuffer(r.vertexBuf)
		r.vertexBuf = nil
	}
	if r.pipeline != nil {
		device.DestroyRenderPipeline(r.pipeline)
		r.pipeline = nil
	}
	if r.pipeLayout != nil {
		device.DestroyPipelineLayout(r.pipeLayout)
		r.pipeLayout = nil
	}
	if r.uniformLayout != nil {
		device.DestroyBindGroupLayout(r.uniformLayout)
		r.uniformLayout = nil
	}
	if r.shader != nil {
		device.DestroyShaderModule(r.shader)
		r.shader = nil
	}
}
