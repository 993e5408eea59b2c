package gpu

import "unsafe"

// ShaderStage identifies a programmable pipeline stage.
type ShaderStage int

const (
	StageInvalid ShaderStage = iota
	StageVertex
	StageGeometry
	StageFragment
)

func (s ShaderStage) String() string {
	switch s {
	case StageVertex:
		return "vertex"
	case StageGeometry:
		return "geometry"
	case StageFragment:
		return "fragment"
	}
	return "invalid"
}

// Valid reports whether s is one of the supported stages.
func (s ShaderStage) Valid() bool {
	return s == StageVertex || s == StageGeometry || s == StageFragment
}

// UniformType is the reflected type of an attribute or uniform.
type UniformType int

const (
	TypeUnknown UniformType = iota
	TypeBool
	TypeInt
	TypeUInt
	TypeFloat
	TypeDouble
	TypeVec2
	TypeVec3
	TypeVec4
	TypeIVec2
	TypeIVec3
	TypeIVec4
	TypeMat4

	// Opaque sampler types. Bound through texture units, never through typed handles.
	TypeSampler1D
	TypeSampler1DShadow
	TypeSampler2D
	TypeSampler2DShadow
	TypeSampler3D
	TypeSamplerCube
	TypeUSampler1D
	TypeUSampler2D
	TypeUSampler3D
	TypeUSamplerCube
)

var uniformTypeNames = map[UniformType]string{
	TypeBool:            "bool",
	TypeInt:             "int",
	TypeUInt:            "uint",
	TypeFloat:           "float",
	TypeDouble:          "double",
	TypeVec2:            "vec2",
	TypeVec3:            "vec3",
	TypeVec4:            "vec4",
	TypeIVec2:           "ivec2",
	TypeIVec3:           "ivec3",
	TypeIVec4:           "ivec4",
	TypeMat4:            "mat4",
	TypeSampler1D:       "sampler1D",
	TypeSampler1DShadow: "sampler1DShadow",
	TypeSampler2D:       "sampler2D",
	TypeSampler2DShadow: "sampler2DShadow",
	TypeSampler3D:       "sampler3D",
	TypeSamplerCube:     "samplerCube",
	TypeUSampler1D:      "usampler1D",
	TypeUSampler2D:      "usampler2D",
	TypeUSampler3D:      "usampler3D",
	TypeUSamplerCube:    "usamplerCube",
}

func (t UniformType) String() string {
	if s, ok := uniformTypeNames[t]; ok {
		return s
	}
	return "unknown"
}

// ParseUniformType maps a GLSL type keyword to a UniformType.
func ParseUniformType(glsl string) UniformType {
	for t, s := range uniformTypeNames {
		if s == glsl {
			return t
		}
	}
	return TypeUnknown
}

// Writable reports whether values of this type can be written through a typed handle.
func (t UniformType) Writable() bool {
	return t >= TypeBool && t <= TypeMat4
}

// Std140 returns the base alignment and size in bytes of t inside a std140 block.
func (t UniformType) Std140() (align, size int) {
	switch t {
	case TypeBool, TypeInt, TypeUInt, TypeFloat:
		return 4, 4
	case TypeDouble:
		return 8, 8
	case TypeVec2, TypeIVec2:
		return 8, 8
	case TypeVec3, TypeIVec3:
		return 16, 12
	case TypeVec4, TypeIVec4:
		return 16, 16
	case TypeMat4:
		return 16, 64
	}
	return 4, 4
}

type Capability int

const (
	DepthTest Capability = iota
	CullFace
	Blend
)

type BlendFactor int

const (
	BlendOne BlendFactor = iota
	BlendSrcAlpha
	BlendOneMinusSrcAlpha
)

type BufferTarget int

const (
	ArrayBuffer BufferTarget = iota
	UniformBuffer
)

type BufferUsage int

const (
	StaticDraw BufferUsage = iota
	DynamicDraw
)

type DrawMode int

const (
	Triangles DrawMode = iota
	Lines
)

// Float32Bytes reinterprets a float32 slice as its underlying bytes without copying.
func Float32Bytes(f []float32) []byte {
	if len(f) == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(&f[0])), len(f)*4)
}
