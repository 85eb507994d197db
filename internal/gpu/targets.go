package gpu

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// targetSet holds the offscreen render targets for a session: an
// optional multisampled color texture and the single-sample resolve
// texture that readback copies from. With a sample count of 1 the
// resolve texture is the direct color target and no MSAA texture is
// created.
type targetSet struct {
	msaaTex     hal.Texture
	msaaView    hal.TextureView
	resolveTex  hal.Texture
	resolveView hal.TextureView

	width       uint32
	height      uint32
	sampleCount uint32
}

// ensure creates or recreates the targets for the given size. No-op
// when the size matches the existing targets.
func (t *targetSet) ensure(device hal.Device, width, height, sampleCount uint32) error {
	if t.resolveTex != nil && t.width == width && t.height == height && t.sampleCount == sampleCount {
		return nil
	}
	t.destroy(device)

	if sampleCount > 1 {
		msaaTex, err := device.CreateTexture(&hal.TextureDescriptor{
			Label:         "sprite_msaa_color",
			Size:          hal.Extent3D{Width: width, Height: height, DepthOrArrayLayers: 1},
			MipLevelCount: 1,
			SampleCount:   sampleCount,
			Dimension:     gputypes.TextureDimension2D,
			Format:        gputypes.TextureFormatBGRA8Unorm,
			Usage:         gputypes.TextureUsageRenderAttachment,
		})
		if err != nil {
			return fmt.Errorf("create msaa color texture: %w", err)
		}
		t.msaaTex = msaaTex

		msaaView, err := device.CreateTextureView(msaaTex, &hal.TextureViewDescriptor{
			Label: "sprite_msaa_color_view",
		})
		if err != nil {
			t.destroy(device)
			return fmt.Errorf("create msaa color view: %w", err)
		}
		t.msaaView = msaaView
	}

	resolveTex, err := device.CreateTexture(&hal.TextureDescriptor{
		Label:         "sprite_resolve",
		Size:          hal.Extent3D{Width: width, Height: height, DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        gputypes.TextureFormatBGRA8Unorm,
		Usage:         gputypes.TextureUsageRenderAttachment | gputypes.TextureUsageCopySrc,
	})
	if err != nil {
		t.destroy(device)
		return fmt.Errorf("create resolve texture: %w", err)
	}
	t.resolveTex = resolveTex

	resolveView, err := device.CreateTextureView(resolveTex, &hal.TextureViewDescriptor{
		Label: "sprite_resolve_view",
	})
	if err != nil {
		t.destroy(device)
		return fmt.Errorf("create resolve view: %w", err)
	}
	t.resolveView = resolveView

	t.width = width
	t.height = height
	t.sampleCount = sampleCount
	return nil
}

// colorAttachment returns the render pass color attachment for the
// current targets: MSAA view resolving into the resolve texture, or
// the resolve texture directly when multisampling is off.
func (t *targetSet) colorAttachment(clear gputypes.Color) hal.RenderPassColorAttachment {
	if t.sampleCount > 1 {
		return hal.RenderPassColorAttachment{
			View:          t.msaaView,
			ResolveTarget: t.resolveView,
			LoadOp:        gputypes.LoadOpClear,
			StoreOp:       gputypes.StoreOpStore,
			ClearValue:    clear,
		}
	}
	return hal.RenderPassColorAttachment{
		View:       t.resolveView,
		LoadOp:     gputypes.LoadOpClear,
		StoreOp:    gputypes.StoreOpStore,
		ClearValue: clear,
	}
}

// destroy releases the targets in reverse creation order.
func (t *targetSet) destroy(device hal.Device) {
	if t.resolveView != nil {
		device.DestroyTextureView(t.resolveView)
		t.resolveView = nil
	}
	if t.resolveTex != nil {
		device.DestroyTexture(t.resolveTex)
		t.resolveTex = nil
	}
	if t.msaaView != nil {
		device.DestroyTextureView(t.msaaView)
		t.msaaView = nil
	}
	if t.msaaTex != nil {
		device.DestroyTexture(t.msaaTex)
		t.msaaTex = nil
	}
	t.width = 0
	t.height = 0
}
