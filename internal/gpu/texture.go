package gpu

import (
	"errors"
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// TextureID identifies a texture registered with a render session.
// ID 0 is the built-in 1x1 white texture.
type TextureID uint32

// WhiteTextureID is the built-in white texture every session provides.
const WhiteTextureID TextureID = 0

// ErrTextureNotFound is returned when a draw or destroy names an
// unregistered texture.
var ErrTextureNotFound = errors.New("gpu: texture not found")

// textureEntry is one registered sampled texture plus its cached bind
// group. The bind group ties the shared uniform buffer and sampler to
// this texture's view, so replaying a frame only swaps bind groups.
type textureEntry struct {
	tex    hal.Texture
	view   hal.TextureView
	bind   hal.BindGroup
	width  uint32
	height uint32
}

// textureStore owns the sampled textures of a session and hands out
// TextureIDs. Bind groups are built lazily on first draw because they
// need the pipeline's uniform buffer and sampler.
type textureStore struct {
	device  hal.Device
	queue   hal.Queue
	entries map[TextureID]*textureEntry
	nextID  TextureID
}

func newTextureStore(device hal.Device, queue hal.Queue) *textureStore {
	return &textureStore{
		device:  device,
		queue:   queue,
		entries: make(map[TextureID]*textureEntry),
		nextID:  WhiteTextureID + 1,
	}
}

// ensureWhite registers the built-in 1x1 opaque white texture under
// WhiteTextureID. No-op when already present.
func (ts *textureStore) ensureWhite() error {
	if _, ok := ts.entries[WhiteTextureID]; ok {
		return nil
	}
	ent, err := ts.createEntry("sprite_white", 1, 1, []byte{0xFF, 0xFF, 0xFF, 0xFF})
	if err != nil {
		return fmt.Errorf("create white texture: %w", err)
	}
	ts.entries[WhiteTextureID] = ent
	return nil
}

// create registers a new RGBA8 texture with the given pixel data and
// returns its ID. Pixel data is tightly packed rows, 4 bytes per
// pixel, premultiplied alpha.
func (ts *textureStore) create(width, height uint32, rgba []byte) (TextureID, error) {
	if uint64(len(rgba)) != uint64(width)*uint64(height)*4 {
		return 0, fmt.Errorf("gpu: texture data size %d does not match %dx%d", len(rgba), width, height)
	}
	id := ts.nextID
	ent, err := ts.createEntry(fmt.Sprintf("sprite_texture_%d", id), width, height, rgba)
	if err != nil {
		return 0, err
	}
	ts.entries[id] = ent
	ts.nextID++
	return id, nil
}

func (ts *textureStore) createEntry(label string, width, height uint32, rgba []byte) (*textureEntry, error) {
	tex, err := ts.device.CreateTexture(&hal.TextureDescriptor{
		Label:         label,
		Size:          hal.Extent3D{Width: width, Height: height, DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        gputypes.TextureFormatRGBA8Unorm,
		Usage:         gputypes.TextureUsageTextureBinding | gputypes.TextureUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("create texture: %w", err)
	}

	view, err := ts.device.CreateTextureView(tex, &hal.TextureViewDescriptor{
		Label:         label + "_view",
		Format:        gputypes.TextureFormatRGBA8Unorm,
		Dimension:     gputypes.TextureViewDimension2D,
		Aspect:        gputypes.TextureAspectAll,
		MipLevelCount: 1,
	})
	if err != nil {
		ts.device.DestroyTexture(tex)
		return nil, fmt.Errorf("create texture view: %w", err)
	}

	ts.queue.WriteTexture(
		&hal.ImageCopyTexture{
			Texture:  tex,
			MipLevel: 0,
		},
		rgba,
		&hal.ImageDataLayout{
			Offset:       0,
			BytesPerRow:  width * 4,
			RowsPerImage: height,
		},
		&hal.Extent3D{Width: width, Height: height, DepthOrArrayLayers: 1},
	)

	return &textureEntry{tex: tex, view: view, width: width, height: height}, nil
}

// update re-uploads pixel data into an existing texture. The data must
// match the texture's dimensions.
func (ts *textureStore) update(id TextureID, rgba []byte) error {
	ent, ok := ts.entries[id]
	if !ok {
		return fmt.Errorf("%w: %d", ErrTextureNotFound, id)
	}
	if uint64(len(rgba)) != uint64(ent.width)*uint64(ent.height)*4 {
		return fmt.Errorf("gpu: texture data size %d does not match %dx%d", len(rgba), ent.width, ent.height)
	}
	ts.queue.WriteTexture(
		&hal.ImageCopyTexture{
			Texture:  ent.tex,
			MipLevel: 0,
		},
		rgba,
		&hal.ImageDataLayout{
			Offset:       0,
			BytesPerRow:  ent.width * 4,
			RowsPerImage: ent.height,
		},
		&hal.Extent3D{Width: ent.width, Height: ent.height, DepthOrArrayLayers: 1},
	)
	return nil
}

// bindGroup returns the cached bind group for a texture, creating it
// on first use from the pipeline's shared uniform buffer and sampler.
func (ts *textureStore) bindGroup(id TextureID, p *spritePipeline) (hal.BindGroup, error) {
	ent, ok := ts.entries[id]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrTextureNotFound, id)
	}
	if ent.bind != nil {
		return ent.bind, nil
	}

	bind, err := ts.device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:  fmt.Sprintf("sprite_bind_%d", id),
		Layout: p.bindLayout,
		Entries: []gputypes.BindGroupEntry{
			{Binding: 0, Resource: gputypes.BufferBinding{
				Buffer: p.uniformBuf.NativeHandle(), Offset: 0, Size: spriteUniformSize,
			}},
			{Binding: 1, Resource: gputypes.TextureViewBinding{
				TextureView: ent.view.NativeHandle(),
			}},
			{Binding: 2, Resource: gputypes.SamplerBinding{
				Sampler: p.sampler.NativeHandle(),
			}},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create bind group for texture %d: %w", id, err)
	}
	ent.bind = bind
	return bind, nil
}

// size reports a texture's dimensions.
func (ts *textureStore) size(id TextureID) (width, height uint32, ok bool) {
	ent, found := ts.entries[id]
	if !found {
		return 0, 0, false
	}
	return ent.width, ent.height, true
}

// destroy releases one texture. The built-in white texture cannot be
// destroyed individually; it lives until the store closes.
func (ts *textureStore) destroy(id TextureID) error {
	if id == WhiteTextureID {
		return fmt.Errorf("gpu: white texture cannot be destroyed")
	}
	ent, ok := ts.entries[id]
	if !ok {
		return fmt.Errorf("%w: %d", ErrTextureNotFound, id)
	}
	ts.destroyEntry(ent)
	delete(ts.entries, id)
	return nil
}

// close releases every texture in the store.
func (ts *textureStore) close() {
	for id, ent := range ts.entries {
		ts.destroyEntry(ent)
		delete(ts.entries, id)
	}
}

func (ts *textureStore) destroyEntry(ent *textureEntry) {
	if ent.bind != nil {
		ts.device.DestroyBindGroup(ent.bind)
		ent.bind = nil
	}
	if ent.view != nil {
		ts.device.DestroyTextureView(ent.view)
		ent.view = nil
	}
	if ent.tex != nil {
		ts.device.DestroyTexture(ent.tex)
		ent.tex = nil
	}
}
