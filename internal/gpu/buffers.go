package gpu

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// frameResources holds the per-frame GPU buffers for one batch
// submission. Built before encoding, destroyed after the fence
// signals.
type frameResources struct {
	vertBuf hal.Buffer
	idxBuf  hal.Buffer
}

// destroy releases the frame buffers. Safe on partially built
// resources.
func (r *frameResources) destroy(device hal.Device) {
	if r == nil {
		return
	}
	if r.idxBuf != nil {
		device.DestroyBuffer(r.idxBuf)
		r.idxBuf = nil
	}
	if r.vertBuf != nil {
		device.DestroyBuffer(r.vertBuf)
		r.vertBuf = nil
	}
}

// createAndUploadBuffer creates a GPU buffer and uploads data into it
// via the queue.
func createAndUploadBuffer(device hal.Device, queue hal.Queue, label string, data []byte, usage gputypes.BufferUsage) (hal.Buffer, error) {
	buf, err := device.CreateBuffer(&hal.BufferDescriptor{
		Label: label,
		Size:  uint64(len(data)),
		Usage: usage,
	})
	if err != nil {
		return nil, fmt.Errorf("create buffer %s: %w", label, err)
	}
	queue.WriteBuffer(buf, 0, data)
	return buf, nil
}

// buildFrameResources uploads the batch's vertex and index data.
func buildFrameResources(device hal.Device, queue hal.Queue, vertexData, indexData []byte) (*frameResources, error) {
	vertBuf, err := createAndUploadBuffer(device, queue, "sprite_verts", vertexData,
		gputypes.BufferUsageVertex|gputypes.BufferUsageCopyDst)
	if err != nil {
		return nil, fmt.Errorf("create vertex buffer: %w", err)
	}

	idxBuf, err := createAndUploadBuffer(device, queue, "sprite_indices", indexData,
		gputypes.BufferUsageIndex|gputypes.BufferUsageCopyDst)
	if err != nil {
		device.DestroyBuffer(vertBuf)
		return nil, fmt.Errorf("create index buffer: %w", err)
	}

	return &frameResources{vertBuf: vertBuf, idxBuf: idxBuf}, nil
}
