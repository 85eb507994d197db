// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

// Capabilities describes the limits of a sprite renderer and the
// device behind it.
type Capabilities struct {
	// MaxTextureSize is the maximum texture dimension in pixels.
	MaxTextureSize uint32

	// MaxQuadsPerBatch is the quad capacity of one batch submission.
	MaxQuadsPerBatch int

	// SampleCount is the multisample count of the render targets.
	SampleCount int

	// OwnsDevice reports whether the renderer created its own GPU
	// device rather than borrowing one from a host application.
	OwnsDevice bool

	// DeviceName is the reported name of the GPU device, when known.
	DeviceName string
}
