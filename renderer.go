package sprite

import (
	"encoding/binary"
	"errors"
	"fmt"
	"image"

	"github.com/gogpu/sprite/internal/gpu"
	"github.com/gogpu/sprite/render"
)

// Renderer draws sprite batches with the GPU. It owns one render pipeline,
// a texture store, and an offscreen color target sized by Resize.
//
// A Renderer is NOT safe for concurrent use. Create one per goroutine, or
// use external synchronization.
type Renderer struct {
	session *gpu.RenderSession

	width      int
	height     int
	projection Mat4
	transform  Mat4
	clearColor RGBA
	closed     bool
}

// NewRenderer creates a renderer with an offscreen target of the given size.
//
// The handle decides device ownership: nil or render.NullDeviceHandle makes
// the renderer create and own its GPU device, anything else is treated as a
// host-provided device (e.g. gogpu.App.GPUContextProvider()) that the
// renderer borrows and never destroys.
func NewRenderer(handle render.DeviceHandle, width, height int, opts ...RendererOption) (*Renderer, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: width=%d, height=%d", ErrInvalidDimensions, width, height)
	}
	o := defaultRendererOptions()
	for _, opt := range opts {
		opt(&o)
	}
	session, err := openSession(handle, uint32(o.sampleCount), o.filter)
	if err != nil {
		return nil, err
	}
	r := &Renderer{
		session:    session,
		width:      width,
		height:     height,
		projection: Ortho2D(float32(width), float32(height)),
		transform:  Identity(),
		clearColor: o.clearColor,
	}
	Logger().Debug("renderer created",
		"width", width, "height", height,
		"sampleCount", o.sampleCount, "ownsDevice", session.OwnsDevice())
	return r, nil
}

// openSession resolves the device handle into a render session. A nil or
// null handle means the renderer creates and owns its device.
func openSession(handle render.DeviceHandle, sampleCount uint32, filter FilterMode) (*gpu.RenderSession, error) {
	gpuFilter := gpu.FilterLinear
	if filter == FilterNearest {
		gpuFilter = gpu.FilterNearest
	}
	if handle == nil {
		return gpu.NewOwnedRenderSession(sampleCount, gpuFilter)
	}
	if _, isNull := handle.(render.NullDeviceHandle); isNull {
		return gpu.NewOwnedRenderSession(sampleCount, gpuFilter)
	}
	s, err := gpu.NewSharedRenderSession(handle, sampleCount, gpuFilter)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDeviceUnavailable, err)
	}
	return s, nil
}

// Width returns the offscreen target width in pixels.
func (r *Renderer) Width() int { return r.width }

// Height returns the offscreen target height in pixels.
func (r *Renderer) Height() int { return r.height }

// Size returns width and height as a convenience.
func (r *Renderer) Size() (width, height int) { return r.width, r.height }

// Resize changes the offscreen target size. The projection is rebuilt so one
// sprite unit stays one pixel. The GPU target is recreated lazily on the
// next Render call.
func (r *Renderer) Resize(width, height int) error {
	if r.closed {
		return ErrRendererClosed
	}
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: width=%d, height=%d", ErrInvalidDimensions, width, height)
	}
	r.width = width
	r.height = height
	r.projection = Ortho2D(float32(width), float32(height))
	return nil
}

// SetTransform replaces the view transform applied to every vertex in
// pixel space, before the projection. Use it for cameras: pan, zoom,
// rotation.
func (r *Renderer) SetTransform(m Mat4) { r.transform = m }

// Transform returns the current view transform.
func (r *Renderer) Transform() Mat4 { return r.transform }

// ResetTransform restores the identity view transform.
func (r *Renderer) ResetTransform() { r.transform = Identity() }

// SetClearColor changes the color the target is cleared to before drawing.
func (r *Renderer) SetClearColor(c RGBA) { r.clearColor = c }

// ClearColor returns the current clear color.
func (r *Renderer) ClearColor() RGBA { return r.clearColor }

// CreateTexture uploads an image and returns its texture ID for use in
// batches. Pixels are converted to premultiplied RGBA8.
func (r *Renderer) CreateTexture(img image.Image) (TextureID, error) {
	if r.closed {
		return 0, ErrRendererClosed
	}
	if img == nil {
		return 0, ErrNilImage
	}
	w, h, data := imageToPremulRGBA(img)
	if w == 0 || h == 0 {
		return 0, fmt.Errorf("%w: width=%d, height=%d", ErrInvalidDimensions, w, h)
	}
	id, err := r.session.CreateTexture(uint32(w), uint32(h), data)
	if err != nil {
		return 0, err
	}
	return TextureID(id), nil
}

// UpdateTexture replaces the pixels of an existing texture. The image must
// match the texture's original dimensions.
func (r *Renderer) UpdateTexture(id TextureID, img image.Image) error {
	if r.closed {
		return ErrRendererClosed
	}
	if img == nil {
		return ErrNilImage
	}
	_, _, data := imageToPremulRGBA(img)
	return mapTextureErr(r.session.UpdateTexture(gpu.TextureID(id), data))
}

// DestroyTexture releases a texture. The built-in white texture used by
// FillRect cannot be destroyed.
func (r *Renderer) DestroyTexture(id TextureID) error {
	if r.closed {
		return ErrRendererClosed
	}
	return mapTextureErr(r.session.DestroyTexture(gpu.TextureID(id)))
}

// TextureSize reports the pixel dimensions of a stored texture.
func (r *Renderer) TextureSize(id TextureID) (width, height int, err error) {
	if r.closed {
		return 0, 0, ErrRendererClosed
	}
	w, h, ok := r.session.TextureSize(gpu.TextureID(id))
	if !ok {
		return 0, 0, ErrTextureNotFound
	}
	return int(w), int(h), nil
}

// Render draws the batch into the offscreen target and reads the result
// back. The returned pixmap holds premultiplied RGBA; use
// Pixmap.Unpremultiplied or Pixmap.ToImage depending on the consumer.
// A nil or empty batch produces a cleared target.
func (r *Renderer) Render(batch *Batch) (*Pixmap, error) {
	if r.closed {
		return nil, ErrRendererClosed
	}
	frame := r.buildFrame(batch, r.projection)
	clear := r.clearColor.Premultiply()
	pixels, err := r.session.RenderToPixels(
		uint32(r.width), uint32(r.height),
		[4]float32{clear.R, clear.G, clear.B, clear.A},
		frame,
	)
	if err != nil {
		return nil, err
	}
	pm := NewPixmap(r.width, r.height)
	copy(pm.Data(), pixels)
	return pm, nil
}

// RenderTo draws the batch into a host-provided texture view, typically the
// acquired frame of a gogpu surface. The projection maps one sprite unit to
// one pixel of the given viewport, independent of the offscreen target size.
// The pass is complete when RenderTo returns, so the host may present
// immediately.
func (r *Renderer) RenderTo(view any, width, height int, batch *Batch) error {
	if r.closed {
		return ErrRendererClosed
	}
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: width=%d, height=%d", ErrInvalidDimensions, width, height)
	}
	projection := Ortho2D(float32(width), float32(height))
	frame := r.buildFrame(batch, projection)
	clear := r.clearColor.Premultiply()
	return r.session.RenderToTarget(
		view,
		uint32(width), uint32(height),
		[4]float32{clear.R, clear.G, clear.B, clear.A},
		frame,
	)
}

// Capabilities reports the limits and device facts of this renderer.
func (r *Renderer) Capabilities() render.Capabilities {
	if r.closed {
		return render.Capabilities{}
	}
	return render.Capabilities{
		MaxTextureSize:   r.session.MaxTextureSize(),
		MaxQuadsPerBatch: MaxQuadsPerBatch,
		SampleCount:      int(r.session.SampleCount()),
		OwnsDevice:       r.session.OwnsDevice(),
		DeviceName:       r.session.DeviceName(),
	}
}

// Close releases all GPU resources. A device received from a host handle is
// left untouched; an owned device is destroyed. Close is idempotent.
func (r *Renderer) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true
	r.session.Close()
	return nil
}

// buildFrame packs the batch into the wire layout the pipeline consumes:
// premultiplied interleaved vertices, uint16 indices, and per-texture draws.
func (r *Renderer) buildFrame(batch *Batch, projection Mat4) *gpu.Frame {
	wvp := projection.Mul(r.transform)
	frame := &gpu.Frame{WVP: [16]float32(wvp)}
	if batch == nil || batch.IsEmpty() {
		return frame
	}

	verts := batch.Vertices()
	vertexData := make([]byte, 0, len(verts)*VertexStride)
	for _, v := range verts {
		v.Color = v.Color.Premultiply()
		vertexData = AppendVertex(vertexData, v)
	}

	indices := batch.Indices()
	indexData := make([]byte, 0, len(indices)*2)
	for _, idx := range indices {
		indexData = binary.LittleEndian.AppendUint16(indexData, idx)
	}

	cmds := batch.Commands()
	draws := make([]gpu.Draw, len(cmds))
	for i, c := range cmds {
		draws[i] = gpu.Draw{
			Texture:     gpu.TextureID(c.Texture),
			IndexOffset: c.IndexOffset,
			IndexCount:  c.IndexCount,
		}
	}

	frame.VertexData = vertexData
	frame.IndexData = indexData
	frame.Draws = draws
	return frame
}

// mapTextureErr translates internal texture lookup failures into the public
// sentinel so callers can errors.Is against this package alone.
func mapTextureErr(err error) error {
	if errors.Is(err, gpu.ErrTextureNotFound) {
		return ErrTextureNotFound
	}
	return err
}

// imageToPremulRGBA converts any image into tightly packed premultiplied
// RGBA8 bytes. *image.RGBA uploads row-by-row without per-pixel conversion
// since it is already premultiplied.
func imageToPremulRGBA(img image.Image) (width, height int, data []byte) {
	b := img.Bounds()
	width, height = b.Dx(), b.Dy()
	if width <= 0 || height <= 0 {
		return 0, 0, nil
	}
	data = make([]byte, width*height*4)

	if rgba, ok := img.(*image.RGBA); ok {
		rowLen := width * 4
		for y := 0; y < height; y++ {
			srcOff := rgba.PixOffset(b.Min.X, b.Min.Y+y)
			copy(data[y*rowLen:(y+1)*rowLen], rgba.Pix[srcOff:srcOff+rowLen])
		}
		return width, height, data
	}

	i := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			// RGBA() returns premultiplied 16-bit components.
			cr, cg, cb, ca := img.At(x, y).RGBA()
			data[i+0] = uint8(cr >> 8)
			data[i+1] = uint8(cg >> 8)
			data[i+2] = uint8(cb >> 8)
			data[i+3] = uint8(ca >> 8)
			i += 4
		}
	}
	return width, height, data
}
