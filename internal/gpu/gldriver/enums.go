package gldriver

import (
	"github.com/GurayOrg/voxigen/internal/gpu"

	"github.com/go-gl/gl/v4.1-core/gl"
)

func uniformType(glType uint32) gpu.UniformType {
	switch glType {
	case gl.BOOL:
		return gpu.TypeBool
	case gl.INT:
		return gpu.TypeInt
	case gl.UNSIGNED_INT:
		return gpu.TypeUInt
	case gl.FLOAT:
		return gpu.TypeFloat
	case gl.DOUBLE:
		return gpu.TypeDouble
	case gl.FLOAT_VEC2:
		return gpu.TypeVec2
	case gl.FLOAT_VEC3:
		return gpu.TypeVec3
	case gl.FLOAT_VEC4:
		return gpu.TypeVec4
	case gl.INT_VEC2:
		return gpu.TypeIVec2
	case gl.INT_VEC3:
		return gpu.TypeIVec3
	case gl.INT_VEC4:
		return gpu.TypeIVec4
	case gl.FLOAT_MAT4:
		return gpu.TypeMat4
	case gl.SAMPLER_1D:
		return gpu.TypeSampler1D
	case gl.SAMPLER_1D_SHADOW:
		return gpu.TypeSampler1DShadow
	case gl.SAMPLER_2D:
		return gpu.TypeSampler2D
	case gl.SAMPLER_2D_SHADOW:
		return gpu.TypeSampler2DShadow
	case gl.SAMPLER_3D:
		return gpu.TypeSampler3D
	case gl.SAMPLER_CUBE:
		return gpu.TypeSamplerCube
	case gl.UNSIGNED_INT_SAMPLER_1D:
		return gpu.TypeUSampler1D
	case gl.UNSIGNED_INT_SAMPLER_2D:
		return gpu.TypeUSampler2D
	case gl.UNSIGNED_INT_SAMPLER_3D:
		return gpu.TypeUSampler3D
	case gl.UNSIGNED_INT_SAMPLER_CUBE:
		return gpu.TypeUSamplerCube
	}
	return gpu.TypeUnknown
}

func capability(c gpu.Capability) uint32 {
	switch c {
	case gpu.CullFace:
		return gl.CULL_FACE
	case gpu.Blend:
		return gl.BLEND
	}
	return gl.DEPTH_TEST
}

func blendFactor(f gpu.BlendFactor) uint32 {
	switch f {
	case gpu.BlendSrcAlpha:
		return gl.SRC_ALPHA
	case gpu.BlendOneMinusSrcAlpha:
		return gl.ONE_MINUS_SRC_ALPHA
	}
	return gl.ONE
}

func bufferTarget(t gpu.BufferTarget) uint32 {
	if t == gpu.UniformBuffer {
		return gl.UNIFORM_BUFFER
	}
	return gl.ARRAY_BUFFER
}

func bufferUsage(u gpu.BufferUsage) uint32 {
	if u == gpu.DynamicDraw {
		return gl.DYNAMIC_DRAW
	}
	return gl.STATIC_DRAW
}

func drawMode(m gpu.DrawMode) uint32 {
	if m == gpu.Lines {
		return gl.LINES
	}
	return gl.TRIANGLES
}
