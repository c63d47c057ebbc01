package gpu

import (
	_ "embed"
	"errors"
	"fmt"

	"github.com/gogpu/naga"
	"github.com/gogpu/wgpu/hal"
)

//go:embed shaders/shape.wgsl
var shapeShaderSource string

// Shader entry points.
const (
	vertexEntryPoint   = "vs_main"
	fragmentEntryPoint = "fs_main"
)

// ShapeShaderSource returns the WGSL source of the shape batch shader.
func ShapeShaderSource() string {
	return shapeShaderSource
}

// compileSPIRV compiles WGSL source to SPIR-V words.
// SPIR-V is little-endian 32-bit words.
func compileSPIRV(source string) ([]uint32, error) {
	spirvBytes, err := naga.Compile(source)
	if err != nil {
		return nil, fmt.Errorf("compile shader: %w", err)
	}
	if len(spirvBytes)%4 != 0 {
		return nil, fmt.Errorf("compile shader: SPIR-V length %d not word aligned", len(spirvBytes))
	}

	words := make([]uint32, len(spirvBytes)/4)
	for i := range words {
		words[i] = uint32(spirvBytes[i*4]) |
			uint32(spirvBytes[i*4+1])<<8 |
			uint32(spirvBytes[i*4+2])<<16 |
			uint32(spirvBytes[i*4+3])<<24
	}
	return words, nil
}

// createShaderModule creates the shape shader module. With useSPIRV the
// source is compiled by naga first; otherwise the backend receives WGSL.
func createShaderModule(device hal.Device, useSPIRV bool) (hal.ShaderModule, error) {
	if shapeShaderSource == "" {
		return nil, errors.New("shape shader source is empty")
	}

	source := hal.ShaderSource{WGSL: shapeShaderSource}
	if useSPIRV {
		words, err := compileSPIRV(shapeShaderSource)
		if err != nil {
			return nil, err
		}
		source = hal.ShaderSource{SPIRV: words}
	}

	module, err := device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  "shape_shader",
		Source: source,
	})
	if err != nil {
		return nil, fmt.Errorf("create shape shader module: %w", err)
	}
	return module, nil
}
