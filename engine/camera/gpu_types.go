package camera

import (
	"github.com/Carmen-Shannon/orbit-go/common"
	"github.com/go-gl/mathgl/mgl32"
)

// GPUCameraUniform is the std140-aligned camera uniform consumed by the
// rendering collaborator. Field order and padding match the shader-side
// struct layout.
type GPUCameraUniform struct {
	ViewProj       mgl32.Mat4 // 64 bytes
	CameraPosition [3]float32 // 12 bytes
	_pad           float32    // 4 bytes, vec3 alignment
}

// GPUCameraUniformSize is the byte size of GPUCameraUniform on the GPU.
const GPUCameraUniformSize = 80

// Bytes returns the uniform as a byte slice suitable for a buffer write.
//
// Returns:
//   - []byte: the raw uniform bytes
func (u *GPUCameraUniform) Bytes() []byte {
	return common.StructToBytes(u)
}
