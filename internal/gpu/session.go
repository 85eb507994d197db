package gpu

import (
	"fmt"
	"time"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	// Import Vulkan backend so it registers via init().
	_ "github.com/gogpu/wgpu/hal/vulkan"
)

// maxTextureDimension is the WebGPU default limit for 2D texture extents.
// DefaultLimits() guarantees at least this much on every opened device.
const maxTextureDimension = 8192

// Draw is one contiguous run of indices drawn with a single texture binding.
type Draw struct {
	Texture     TextureID
	IndexOffset uint32
	IndexCount  uint32
}

// Frame is a fully packed frame: the projection uniform, interleaved vertex
// bytes, uint16 index bytes, and the per-texture draw runs that consume them.
type Frame struct {
	WVP        [16]float32
	VertexData []byte
	IndexData  []byte
	Draws      []Draw
}

// RenderSession owns the GPU resources behind sprite rendering: the render
// pipeline, the texture store, and the offscreen color targets. Each
// RenderToPixels/RenderToView call encodes one command buffer, submits it,
// and waits on a fence before returning, so callers never observe a frame
// in flight.
//
// A session is not safe for concurrent use.
type RenderSession struct {
	instance hal.Instance
	device   hal.Device
	queue    hal.Queue

	pipeline spritePipeline
	textures *textureStore
	targets  targetSet

	sampleCount uint32
	filter      FilterMode
	ownsDevice  bool
	deviceName  string
}

// NewRenderSession wraps an externally owned device and queue, e.g. the pair
// a windowing host exposes. Close releases the pipeline and textures but
// leaves the device and queue untouched.
func NewRenderSession(device hal.Device, queue hal.Queue, sampleCount uint32, filter FilterMode) (*RenderSession, error) {
	if device == nil || queue == nil {
		return nil, fmt.Errorf("gpu: nil device or queue")
	}
	s := &RenderSession{
		device:      device,
		queue:       queue,
		sampleCount: sampleCount,
		filter:      filter,
	}
	if err := s.init(); err != nil {
		s.Close()
		return nil, err
	}
	return s, nil
}

// NewSharedRenderSession builds a session on a host application's GPU device.
// The provider must implement HalDevice() any and HalQueue() any returning
// hal.Device and hal.Queue, as gogpu's context provider does.
func NewSharedRenderSession(provider any, sampleCount uint32, filter FilterMode) (*RenderSession, error) {
	type halProvider interface {
		HalDevice() any
		HalQueue() any
	}
	hp, ok := provider.(halProvider)
	if !ok {
		return nil, fmt.Errorf("gpu: provider does not expose HAL types")
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return nil, fmt.Errorf("gpu: provider HalDevice is not hal.Device")
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return nil, fmt.Errorf("gpu: provider HalQueue is not hal.Queue")
	}
	return NewRenderSession(device, queue, sampleCount, filter)
}

// NewOwnedRenderSession creates its own instance, adapter, and device through
// the registered HAL backend. Close destroys everything it created.
func NewOwnedRenderSession(sampleCount uint32, filter FilterMode) (*RenderSession, error) {
	backend, ok := hal.GetBackend(gputypes.BackendVulkan)
	if !ok {
		return nil, fmt.Errorf("gpu: vulkan backend not available")
	}
	instance, err := backend.CreateInstance(&hal.InstanceDescriptor{Flags: 0})
	if err != nil {
		return nil, fmt.Errorf("gpu: create instance: %w", err)
	}
	adapters := instance.EnumerateAdapters(nil)
	if len(adapters) == 0 {
		instance.Destroy()
		return nil, fmt.Errorf("gpu: no GPU adapters found")
	}
	var selected *hal.ExposedAdapter
	for i := range adapters {
		if adapters[i].Info.DeviceType == gputypes.DeviceTypeDiscreteGPU ||
			adapters[i].Info.DeviceType == gputypes.DeviceTypeIntegratedGPU {
			selected = &adapters[i]
			break
		}
	}
	if selected == nil {
		selected = &adapters[0]
	}
	openDev, err := selected.Adapter.Open(gputypes.Features(0), gputypes.DefaultLimits())
	if err != nil {
		instance.Destroy()
		return nil, fmt.Errorf("gpu: open device: %w", err)
	}
	s := &RenderSession{
		instance:    instance,
		device:      openDev.Device,
		queue:       openDev.Queue,
		sampleCount: sampleCount,
		filter:      filter,
		ownsDevice:  true,
		deviceName:  selected.Info.Name,
	}
	if err := s.init(); err != nil {
		s.Close()
		return nil, err
	}
	slogger().Info("render session initialized", "adapter", s.deviceName, "sampleCount", sampleCount)
	return s, nil
}

func (s *RenderSession) init() error {
	if s.sampleCount != 1 && s.sampleCount != 4 {
		return fmt.Errorf("gpu: unsupported sample count %d", s.sampleCount)
	}
	if err := s.pipeline.ensure(s.device, s.queue, s.sampleCount, s.filter); err != nil {
		return err
	}
	s.textures = newTextureStore(s.device, s.queue)
	return s.textures.ensureWhite()
}

// OwnsDevice reports whether Close will destroy the underlying device.
func (s *RenderSession) OwnsDevice() bool { return s.ownsDevice }

// DeviceName returns the adapter name for owned devices, "" for shared ones.
func (s *RenderSession) DeviceName() string { return s.deviceName }

// SampleCount returns the MSAA sample count the pipeline was built with.
func (s *RenderSession) SampleCount() uint32 { return s.sampleCount }

// MaxTextureSize returns the largest supported texture extent in pixels.
func (s *RenderSession) MaxTextureSize() uint32 { return maxTextureDimension }

// CreateTexture uploads premultiplied RGBA8 pixels and returns a new ID.
func (s *RenderSession) CreateTexture(width, height uint32, rgba []byte) (TextureID, error) {
	if width == 0 || height == 0 || width > maxTextureDimension || height > maxTextureDimension {
		return 0, fmt.Errorf("gpu: invalid texture size %dx%d", width, height)
	}
	return s.textures.create(width, height, rgba)
}

// UpdateTexture re-uploads pixel data for an existing texture. The data must
// match the texture's original dimensions.
func (s *RenderSession) UpdateTexture(id TextureID, rgba []byte) error {
	return s.textures.update(id, rgba)
}

// DestroyTexture releases a texture and its cached bind group. The built-in
// white texture cannot be destroyed.
func (s *RenderSession) DestroyTexture(id TextureID) error {
	return s.textures.destroy(id)
}

// TextureSize reports the pixel dimensions of a stored texture.
func (s *RenderSession) TextureSize(id TextureID) (width, height uint32, ok bool) {
	return s.textures.size(id)
}

// prepareFrame uploads the frame's uniform and geometry and resolves every
// draw's bind group before any encoding starts, so a resource failure can
// never abort a render pass halfway through.
func (s *RenderSession) prepareFrame(frame *Frame) ([]hal.BindGroup, *frameResources, error) {
	s.pipeline.writeUniform(frame.WVP)

	binds := make([]hal.BindGroup, len(frame.Draws))
	for i, d := range frame.Draws {
		bg, err := s.textures.bindGroup(d.Texture, &s.pipeline)
		if err != nil {
			return nil, nil, err
		}
		binds[i] = bg
	}

	res := &frameResources{}
	if len(frame.Draws) > 0 {
		built, err := buildFrameResources(s.device, s.queue, frame.VertexData, frame.IndexData)
		if err != nil {
			return nil, nil, err
		}
		res = built
	}
	return binds, res, nil
}

// recordDraws records the full pass body: pipeline, shared vertex/index
// buffers bound once, then one DrawIndexed per texture run.
func (s *RenderSession) recordDraws(rp hal.RenderPassEncoder, frame *Frame, binds []hal.BindGroup, res *frameResources) {
	if len(frame.Draws) == 0 {
		return
	}
	rp.SetPipeline(s.pipeline.pipeline)
	rp.SetVertexBuffer(0, res.vertBuf, 0)
	rp.SetIndexBuffer(res.idxBuf, gputypes.IndexFormatUint16, 0)
	for i, d := range frame.Draws {
		rp.SetBindGroup(0, binds[i], nil)
		rp.DrawIndexed(d.IndexCount, 1, d.IndexOffset, 0, 0)
	}
}

// clearColor converts a straight [r,g,b,a] float quad into the HAL clear
// value. Components arrive premultiplied already; only the width changes.
func clearColor(clear [4]float32) gputypes.Color {
	return gputypes.Color{
		R: float64(clear[0]),
		G: float64(clear[1]),
		B: float64(clear[2]),
		A: float64(clear[3]),
	}
}

// RenderToPixels renders the frame into the offscreen target and reads the
// result back as tightly packed RGBA8 with premultiplied alpha, w*h*4 bytes.
// An empty frame still clears the target.
func (s *RenderSession) RenderToPixels(w, h uint32, clear [4]float32, frame *Frame) ([]byte, error) {
	if w == 0 || h == 0 || w > maxTextureDimension || h > maxTextureDimension {
		return nil, fmt.Errorf("gpu: invalid render size %dx%d", w, h)
	}
	if err := s.targets.ensure(s.device, w, h, s.sampleCount); err != nil {
		return nil, err
	}
	binds, res, err := s.prepareFrame(frame)
	if err != nil {
		return nil, err
	}
	defer res.destroy(s.device)

	encoder, err := s.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{
		Label: "sprite_encoder",
	})
	if err != nil {
		return nil, fmt.Errorf("create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding("sprite_frame"); err != nil {
		return nil, fmt.Errorf("begin encoding: %w", err)
	}

	rpDesc := &hal.RenderPassDescriptor{
		Label:            "sprite_pass",
		ColorAttachments: []hal.RenderPassColorAttachment{s.targets.colorAttachment(clearColor(clear))},
	}
	rp := encoder.BeginRenderPass(rpDesc)
	s.recordDraws(rp, frame, binds, res)
	rp.End()

	// After the pass the resolve texture is in COLOR_ATTACHMENT layout.
	// CopyTextureToBuffer needs TRANSFER_SRC, so transition explicitly.
	// No-op on backends without layout tracking.
	encoder.TransitionTextures([]hal.TextureBarrier{{
		Texture: s.targets.resolveTex,
		Usage: hal.TextureUsageTransition{
			OldUsage: gputypes.TextureUsageRenderAttachment,
			NewUsage: gputypes.TextureUsageCopySrc,
		},
	}})

	bytesPerRow := w * 4
	alignedBytesPerRow := alignRowBytes(bytesPerRow)
	stagingBufSize := uint64(alignedBytesPerRow) * uint64(h)

	stagingBuf, err := s.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "sprite_staging",
		Size:  stagingBufSize,
		Usage: gputypes.BufferUsageMapRead | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		encoder.DiscardEncoding()
		return nil, fmt.Errorf("create staging buffer: %w", err)
	}
	defer s.device.DestroyBuffer(stagingBuf)

	encoder.CopyTextureToBuffer(s.targets.resolveTex, stagingBuf, []hal.BufferTextureCopy{{
		BufferLayout: hal.ImageDataLayout{Offset: 0, BytesPerRow: alignedBytesPerRow, RowsPerImage: h},
		TextureBase:  hal.ImageCopyTexture{Texture: s.targets.resolveTex, MipLevel: 0},
		Size:         hal.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1},
	}})

	// Transition back so the next frame's resolve sees RENDER_TARGET.
	encoder.TransitionTextures([]hal.TextureBarrier{{
		Texture: s.targets.resolveTex,
		Usage: hal.TextureUsageTransition{
			OldUsage: gputypes.TextureUsageCopySrc,
			NewUsage: gputypes.TextureUsageRenderAttachment,
		},
	}})

	cmdBuf, err := encoder.EndEncoding()
	if err != nil {
		return nil, fmt.Errorf("end encoding: %w", err)
	}
	defer s.device.FreeCommandBuffer(cmdBuf)

	fence, err := s.device.CreateFence()
	if err != nil {
		return nil, fmt.Errorf("create fence: %w", err)
	}
	defer s.device.DestroyFence(fence)

	if err := s.queue.Submit([]hal.CommandBuffer{cmdBuf}, fence, 1); err != nil {
		return nil, fmt.Errorf("submit: %w", err)
	}
	fenceOK, err := s.device.Wait(fence, 1, 5*time.Second)
	if err != nil || !fenceOK {
		return nil, fmt.Errorf("wait for GPU: ok=%v err=%w", fenceOK, err)
	}

	readback := make([]byte, stagingBufSize)
	if err := s.queue.ReadBuffer(stagingBuf, 0, readback); err != nil {
		return nil, fmt.Errorf("readback: %w", err)
	}

	// Strip row padding (if any) and convert BGRA to RGBA.
	out := make([]byte, uint64(bytesPerRow)*uint64(h))
	if alignedBytesPerRow == bytesPerRow {
		convertBGRAToRGBA(readback, out, int(w)*int(h))
	} else {
		tight := make([]byte, uint64(bytesPerRow)*uint64(h))
		for row := uint32(0); row < h; row++ {
			srcOff := int(row) * int(alignedBytesPerRow)
			dstOff := int(row) * int(bytesPerRow)
			copy(tight[dstOff:dstOff+int(bytesPerRow)], readback[srcOff:srcOff+int(bytesPerRow)])
		}
		convertBGRAToRGBA(tight, out, int(w)*int(h))
	}
	return out, nil
}

// RenderToTarget renders into a host-provided texture view, typically the
// acquired surface frame of a window. The view is duck-typed so callers
// outside this package never import HAL.
func (s *RenderSession) RenderToTarget(view any, w, h uint32, clear [4]float32, frame *Frame) error {
	tv, ok := view.(hal.TextureView)
	if !ok || tv == nil {
		return fmt.Errorf("gpu: target is not a hal.TextureView")
	}
	return s.RenderToView(tv, w, h, clear, frame)
}

// RenderToView renders the frame with the caller's texture view as the output.
// With MSAA the internal multisampled color buffer resolves into the view;
// single-sampled frames draw into it directly. There is no copy or readback.
// The fence wait ensures the pass is complete before the caller presents.
func (s *RenderSession) RenderToView(view hal.TextureView, w, h uint32, clear [4]float32, frame *Frame) error {
	if view == nil {
		return fmt.Errorf("gpu: nil target view")
	}
	if w == 0 || h == 0 {
		return fmt.Errorf("gpu: invalid render size %dx%d", w, h)
	}
	if s.sampleCount > 1 {
		if err := s.targets.ensure(s.device, w, h, s.sampleCount); err != nil {
			return err
		}
	}
	binds, res, err := s.prepareFrame(frame)
	if err != nil {
		return err
	}
	defer res.destroy(s.device)

	encoder, err := s.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{
		Label: "sprite_surface_encoder",
	})
	if err != nil {
		return fmt.Errorf("create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding("sprite_surface_frame"); err != nil {
		return fmt.Errorf("begin encoding: %w", err)
	}

	attachment := hal.RenderPassColorAttachment{
		View:       view,
		LoadOp:     gputypes.LoadOpClear,
		StoreOp:    gputypes.StoreOpStore,
		ClearValue: clearColor(clear),
	}
	if s.sampleCount > 1 {
		attachment.View = s.targets.msaaView
		attachment.ResolveTarget = view
	}
	rpDesc := &hal.RenderPassDescriptor{
		Label:            "sprite_surface_pass",
		ColorAttachments: []hal.RenderPassColorAttachment{attachment},
	}
	rp := encoder.BeginRenderPass(rpDesc)
	s.recordDraws(rp, frame, binds, res)
	rp.End()

	cmdBuf, err := encoder.EndEncoding()
	if err != nil {
		return fmt.Errorf("end encoding: %w", err)
	}
	defer s.device.FreeCommandBuffer(cmdBuf)

	fence, err := s.device.CreateFence()
	if err != nil {
		return fmt.Errorf("create fence: %w", err)
	}
	defer s.device.DestroyFence(fence)

	if err := s.queue.Submit([]hal.CommandBuffer{cmdBuf}, fence, 1); err != nil {
		return fmt.Errorf("submit: %w", err)
	}

	// Wait before returning so the pass completes before Present().
	fenceOK, err := s.device.Wait(fence, 1, 5*time.Second)
	if err != nil || !fenceOK {
		return fmt.Errorf("wait for GPU: ok=%v err=%w", fenceOK, err)
	}
	return nil
}

// Close releases all session resources. The device and instance are destroyed
// only when the session created them. Close is idempotent.
func (s *RenderSession) Close() {
	if s.textures != nil {
		s.textures.close()
		s.textures = nil
	}
	s.targets.destroy(s.device)
	s.pipeline.destroy()
	if s.ownsDevice {
		if s.device != nil {
			s.device.Destroy()
		}
		if s.instance != nil {
			s.instance.Destroy()
		}
	}
	s.device = nil
	s.queue = nil
	s.instance = nil
	s.ownsDevice = false
}

// alignRowBytes rounds a tight row size up to the 256-byte pitch
// WebGPU (and DX12) requires for texture-to-buffer copies.
func alignRowBytes(bytesPerRow uint32) uint32 {
	const copyPitchAlignment = 256
	return (bytesPerRow + copyPitchAlignment - 1) &^ (copyPitchAlignment - 1)
}

// convertBGRAToRGBA swizzles pixelCount pixels from BGRA byte order to RGBA.
// The render targets are BGRA8; CPU-side consumers expect RGBA8.
func convertBGRAToRGBA(src, dst []byte, pixelCount int) {
	for i := 0; i < pixelCount*4; i += 4 {
		dst[i+0] = src[i+2]
		dst[i+1] = src[i+1]
		dst[i+2] = src[i+0]
		dst[i+3] = src[i+3]
	}
}
