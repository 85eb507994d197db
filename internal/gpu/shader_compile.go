package gpu

import (
	"fmt"

	"github.com/gogpu/naga"
)

// CompileToSPIRV compiles WGSL source to a SPIR-V uint32 word slice.
// The HAL backends accept WGSL directly, so the render path does not
// need this; it exists so shader changes are validated by tests
// without a GPU, and for backends that want precompiled SPIR-V.
func CompileToSPIRV(wgslSource string) ([]uint32, error) {
	spirvBytes, err := naga.Compile(wgslSource)
	if err != nil {
		return nil, fmt.Errorf("failed to compile shader: %w", err)
	}

	// SPIR-V is little-endian 32-bit words.
	spirvCode := make([]uint32, len(spirvBytes)/4)
	for i := range spirvCode {
		spirvCode[i] = uint32(spirvBytes[i*4]) |
			uint32(spirvBytes[i*4+1])<<8 |
			uint32(spirvBytes[i*4+2])<<16 |
			uint32(spirvBytes[i*4+3])<<24
	}

	return spirvCode, nil
}
