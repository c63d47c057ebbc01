package gpu

import (
	"encoding/binary"
	"math"

	"golang.org/x/image/math/f32"
)

// projectionSize is the byte size of the view matrix uniform.
const projectionSize = 64

// Projection returns the orthographic view matrix for a target of
// width×height logical pixels at the given resolution.
//
// The matrix maps [0,w·res]×[0,h·res] device pixels, origin top-left, to clip space
// with Y pointing up. It is row-major like every f32.Mat4; see
// projectionBytes for the uploaded layout.
func Projection(width, height int, resolution float64) f32.Mat4 {
	w := float32(float64(width) * resolution)
	h := float32(float64(height) * resolution)
	return f32.Mat4{
		2 / w, 0, 0, -1,
		0, -2 / h, 0, 1,
		0, 0, 1, 0,
		0, 0, 1, 0,
	}
}

// projectionBytes encodes m column-major, as WGSL mat4x4 expects.
func projectionBytes(m f32.Mat4) []byte {
	buf := make([]byte, projectionSize)
	for c := 0; c < 4; c++ {
		for r := 0; r < 4; r++ {
			binary.LittleEndian.PutUint32(buf[(c*4+r)*4:], math.Float32bits(m[4*r+c]))
		}
	}
	return buf
}
