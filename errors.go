package sprite

import "errors"

// Common errors returned by Renderer operations.
var (
	// ErrRendererClosed is returned when operations are attempted on a closed renderer.
	ErrRendererClosed = errors.New("sprite: renderer is closed")

	// ErrInvalidDimensions is returned when a width or height is not positive.
	ErrInvalidDimensions = errors.New("sprite: invalid dimensions")

	// ErrTextureNotFound is returned when a texture ID has no stored texture.
	ErrTextureNotFound = errors.New("sprite: texture not found")

	// ErrDeviceUnavailable is returned when the device handle cannot supply
	// a usable GPU device and queue.
	ErrDeviceUnavailable = errors.New("sprite: GPU device unavailable")

	// ErrNilImage is returned when a nil image is passed to CreateTexture
	// or UpdateTexture.
	ErrNilImage = errors.New("sprite: nil image")
)
