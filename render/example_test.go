// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render_test

import (
	"fmt"

	"github.com/gogpu/sprite/render"
)

// ExampleNullDeviceHandle shows the explicit "no host device" marker.
// Passing it to sprite.NewRenderer makes the renderer create and own its
// GPU device, exactly like passing nil.
func ExampleNullDeviceHandle() {
	var handle render.DeviceHandle = render.NullDeviceHandle{}

	fmt.Println(handle.Device() == nil)
	fmt.Println(handle.Queue() == nil)
	// Output:
	// true
	// true
}
