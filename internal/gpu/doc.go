// Package gpu drives the sprite pipeline through gogpu/wgpu HAL.
//
// This is an internal package used by the sprite library. It owns every
// HAL-facing object: the device and queue, the render pipeline compiled
// from the embedded WGSL shader, the texture registry and its bind
// groups, MSAA targets, and per-frame vertex and index buffers. The root
// package hands it plain slices and arrays; nothing above this package
// imports wgpu types.
//
// # Device ownership
//
// A RenderSession either owns its device (NewOwnedRenderSession opens
// one through the Vulkan backend) or borrows one from a host application
// (NewSharedRenderSession). Close destroys only what the session
// created.
//
// # Frame flow
//
//	Frame (vertices, indices, draws)
//	  -> prepareFrame: upload geometry, resolve bind groups
//	  -> one render pass: clear, then DrawIndexed per draw
//	  -> readback (RenderToPixels) or resolve to a host view (RenderToView)
//
// Render targets are BGRA8; RenderToPixels converts the readback to
// RGBA8. All color math is premultiplied alpha.
//
// # Thread safety
//
// Sessions are NOT safe for concurrent use. The owning renderer
// serializes access.
package gpu
