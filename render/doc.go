// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package render provides the integration layer between sprite and GPU
// frameworks.
//
// This package defines the device abstractions that let sprite draw with a
// GPU device provided by a host application (like gogpu.App) instead of
// creating its own.
//
// # Key Principle
//
// When a DeviceHandle is supplied, sprite RECEIVES the GPU device from the
// host application. This follows the Vello/femtovg/Skia pattern where the
// rendering library is injected with GPU resources rather than managing
// them itself. Passing a nil handle (or NullDeviceHandle) flips the
// ownership: sprite opens its own device and destroys it on Close.
//
// # Core Types
//
//   - DeviceHandle: Provides GPU device access from the host application
//   - NullDeviceHandle: Explicit "no host device" marker
//   - Capabilities: Limits of a renderer and the device behind it
//
// # Usage
//
// Integration with gogpu:
//
//	app := gogpu.NewApp(gogpu.DefaultConfig())
//	var r *sprite.Renderer
//
//	app.OnDraw(func(dc *gogpu.Context) {
//	    if r == nil {
//	        // sprite receives the GPU device from gogpu (zero overhead)
//	        r, _ = sprite.NewRenderer(app.GPUContextProvider(), dc.Width(), dc.Height())
//	    }
//	    // ... batch and r.RenderTo(dc.SurfaceView(), ...)
//	})
//
// Self-owned device for offscreen rendering:
//
//	r, _ := sprite.NewRenderer(nil, 800, 600)
//	defer r.Close()
//
// # Thread Safety
//
// Renderers are NOT thread-safe. Each renderer should be used from a single
// goroutine, or external synchronization must be used.
//
// # References
//
//   - Vello DeviceProvider pattern: https://github.com/AhornGraphics/vello
//   - femtovg Renderer trait: https://github.com/AhornGraphics/femtovg
//   - Skia GrDirectContext: https://skia.org/docs/user/api/
package render
