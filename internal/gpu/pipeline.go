package gpu

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// FilterMode selects how the shared sampler interpolates texels.
type FilterMode uint8

const (
	// FilterLinear blends the four nearest texels.
	FilterLinear FilterMode = iota
	// FilterNearest snaps to the closest texel.
	FilterNearest
)

// hal converts the mode to the descriptor enum.
func (f FilterMode) hal() gputypes.FilterMode {
	if f == FilterNearest {
		return gputypes.FilterModeNearest
	}
	return gputypes.FilterModeLinear
}

func (f FilterMode) String() string {
	if f == FilterNearest {
		return "nearest"
	}
	return "linear"
}

// spritePipeline holds the GPU objects for the sprite shader: the
// shader module, bind group layout, sampler, render pipeline, and the
// persistent uniform buffer carrying the world-view-projection matrix.
//
// The bind group layout matches sprite.wgsl:
//
//	Binding 0: Uniforms (vertex)
//	Binding 1: Texture (fragment)
//	Binding 2: Sampler (fragment)
//
// Bind groups themselves are built per texture (see textureStore); the
// uniform buffer and sampler are shared by all of them, so a frame
// only rebinds when the texture changes.
type spritePipeline struct {
	device hal.Device
	queue  hal.Queue

	shader     hal.ShaderModule
	bindLayout hal.BindGroupLayout
	pipeLayout hal.PipelineLayout
	pipeline   hal.RenderPipeline
	sampler    hal.Sampler
	uniformBuf hal.Buffer

	sampleCount uint32
	filter      FilterMode
	ready       bool
}

// ensure lazily creates the pipeline objects. Safe to call every
// frame; it is a no-op once initialized.
func (p *spritePipeline) ensure(device hal.Device, queue hal.Queue, sampleCount uint32, filter FilterMode) error {
	if p.ready {
		return nil
	}
	if err := validateShaderSources(); err != nil {
		return err
	}

	p.device = device
	p.queue = queue
	p.sampleCount = sampleCount
	p.filter = filter

	shader, err := device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  "sprite_shader",
		Source: hal.ShaderSource{WGSL: spriteShaderSource},
	})
	if err != nil {
		return fmt.Errorf("create sprite shader: %w", err)
	}
	p.shader = shader

	bindLayout, err := device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: "sprite_bind_layout",
		Entries: []gputypes.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: gputypes.ShaderStageVertex,
				Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform},
			},
			{
				Binding:    1,
				Visibility: gputypes.ShaderStageFragment,
				Texture: &gputypes.TextureBindingLayout{
					SampleType:    gputypes.TextureSampleTypeFloat,
					ViewDimension: gputypes.TextureViewDimension2D,
				},
			},
			{
				Binding:    2,
				Visibility: gputypes.ShaderStageFragment,
				Sampler:    &gputypes.SamplerBindingLayout{Type: gputypes.SamplerBindingTypeFiltering},
			},
		},
	})
	if err != nil {
		p.destroy()
		return fmt.Errorf("create sprite bind group layout: %w", err)
	}
	p.bindLayout = bindLayout

	pipeLayout, err := device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            "sprite_pipe_layout",
		BindGroupLayouts: []hal.BindGroupLayout{p.bindLayout},
	})
	if err != nil {
		p.destroy()
		return fmt.Errorf("create sprite pipeline layout: %w", err)
	}
	p.pipeLayout = pipeLayout

	sampler, err := device.CreateSampler(&hal.SamplerDescriptor{
		Label:        "sprite_sampler",
		AddressModeU: gputypes.AddressModeClampToEdge,
		AddressModeV: gputypes.AddressModeClampToEdge,
		AddressModeW: gputypes.AddressModeClampToEdge,
		MagFilter:    filter.hal(),
		MinFilter:    filter.hal(),
		MipmapFilter: filter.hal(),
	})
	if err != nil {
		p.destroy()
		return fmt.Errorf("create sprite sampler: %w", err)
	}
	p.sampler = sampler

	uniformBuf, err := device.CreateBuffer(&hal.BufferDescriptor{
		Label: "sprite_uniform",
		Size:  spriteUniformSize,
		Usage: gputypes.BufferUsageUniform | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		p.destroy()
		return fmt.Errorf("create sprite uniform buffer: %w", err)
	}
	p.uniformBuf = uniformBuf

	premulBlend := gputypes.BlendStatePremultiplied()
	pipeline, err := device.CreateRenderPipeline(&hal.RenderPipelineDescriptor{
		Label:  "sprite_pipeline",
		Layout: p.pipeLayout,
		Vertex: hal.VertexState{
			Module:     p.shader,
			EntryPoint: "vs_main",
			Buffers:    spriteVertexLayout(),
		},
		Fragment: &hal.FragmentState{
			Module:     p.shader,
			EntryPoint: "fs_main",
			Targets: []gputypes.ColorTargetState{
				{
					Format:    gputypes.TextureFormatBGRA8Unorm,
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
			Count: sampleCount,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		p.destroy()
		return fmt.Errorf("create sprite pipeline: %w", err)
	}
	p.pipeline = pipeline

	p.ready = true
	slogger().Debug("sprite pipeline created", "sampleCount", sampleCount, "filter", filter)
	return nil
}

// writeUniform uploads the world-view-projection matrix into the
// persistent uniform buffer. Column-major, little-endian, matching the
// Uniforms struct in sprite.wgsl.
func (p *spritePipeline) writeUniform(wvp [16]float32) {
	buf := make([]byte, spriteUniformSize)
	for i, f := range wvp {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	p.queue.WriteBuffer(p.uniformBuf, 0, buf)
}

// destroy releases pipeline objects in reverse creation order.
func (p *spritePipeline) destroy() {
	if p.device == nil {
		return
	}
	if p.pipeline != nil {
		p.device.DestroyRenderPipeline(p.pipeline)
		p.pipeline = nil
	}
	if p.uniformBuf != nil {
		p.device.DestroyBuffer(p.uniformBuf)
		p.uniformBuf = nil
	}
	if p.sampler != nil {
		p.device.DestroySampler(p.sampler)
		p.sampler = nil
	}
	if p.pipeLayout != nil {
		p.device.DestroyPipelineLayout(p.pipeLayout)
		p.pipeLayout = nil
	}
	if p.bindLayout != nil {
		p.device.DestroyBindGroupLayout(p.bindLayout)
		p.bindLayout = nil
	}
	if p.shader != nil {
		p.device.DestroyShaderModule(p.shader)
		p.shader = nil
	}
	p.ready = false
}

// spriteVertexLayout returns the vertex buffer layout for the sprite
// pipeline. Matches VertexInput in sprite.wgsl:
//
//	location 0: position (vec2<f32>)
//	location 1: uv       (vec2<f32>)
//	location 2: color    (vec4<f32>)
func spriteVertexLayout() []gputypes.VertexBufferLayout {
	return []gputypes.VertexBufferLayout{
		{
			ArrayStride: spriteVertexStride,
			StepMode:    gputypes.VertexStepModeVertex,
			Attributes: []gputypes.VertexAttribute{
				{Format: gputypes.VertexFormatFloat32x2, Offset: 0, ShaderLocation: 0},  // position
				{Format: gputypes.VertexFormatFloat32x2, Offset: 8, ShaderLocation: 1},  // uv
				{Format: gputypes.VertexFormatFloat32x4, Offset: 16, ShaderLocation: 2}, // color
			},
		},
	}
}
