package graphics

import (
	"github.com/GurayOrg/voxigen/internal/gpu"

	"github.com/go-gl/mathgl/mgl32"
)

// UniformValue is a value that can be written to a uniform. The set of
// implementations is closed: one type per gpu.UniformType a handle can carry.
type UniformValue interface {
	UniformType() gpu.UniformType
}

type (
	Bool   bool
	Int    int32
	UInt   uint32
	Float  float32
	Double float64
	Vec2   mgl32.Vec2
	Vec3   mgl32.Vec3
	Vec4   mgl32.Vec4
	IVec2  [2]int32
	IVec3  [3]int32
	IVec4  [4]int32
	Mat4   mgl32.Mat4
)

func (Bool) UniformType() gpu.UniformType   { return gpu.TypeBool }
func (Int) UniformType() gpu.UniformType    { return gpu.TypeInt }
func (UInt) UniformType() gpu.UniformType   { return gpu.TypeUInt }
func (Float) UniformType() gpu.UniformType  { return gpu.TypeFloat }
func (Double) UniformType() gpu.UniformType { return gpu.TypeDouble }
func (Vec2) UniformType() gpu.UniformType   { return gpu.TypeVec2 }
func (Vec3) UniformType() gpu.UniformType   { return gpu.TypeVec3 }
func (Vec4) UniformType() gpu.UniformType   { return gpu.TypeVec4 }
func (IVec2) UniformType() gpu.UniformType  { return gpu.TypeIVec2 }
func (IVec3) UniformType() gpu.UniformType  { return gpu.TypeIVec3 }
func (IVec4) UniformType() gpu.UniformType  { return gpu.TypeIVec4 }
func (Mat4) UniformType() gpu.UniformType   { return gpu.TypeMat4 }

// writeUniform issues the driver call matching the value's type.
func writeUniform(d gpu.Driver, location int32, v UniformValue) {
	switch v := v.(type) {
	case Bool:
		var i int32
		if v {
			i = 1
		}
		d.Uniform1i(location, i)
	case Int:
		d.Uniform1i(location, int32(v))
	case UInt:
		d.Uniform1ui(location, uint32(v))
	case Float:
		d.Uniform1f(location, float32(v))
	case Double:
		d.Uniform1d(location, float64(v))
	case Vec2:
		d.Uniform2f(location, v[0], v[1])
	case Vec3:
		d.Uniform3f(location, v[0], v[1], v[2])
	case Vec4:
		d.Uniform4f(location, v[0], v[1], v[2], v[3])
	case IVec2:
		d.Uniform2i(location, v[0], v[1])
	case IVec3:
		d.Uniform3i(location, v[0], v[1], v[2])
	case IVec4:
		d.Uniform4i(location, v[0], v[1], v[2], v[3])
	case Mat4:
		m := [16]float32(v)
		d.UniformMatrix4fv(location, &m)
	}
}

// UniformHandle indexes a program's reflected uniforms. It stays valid until
// the program is linked again.
type UniformHandle int

// DummyUniform is returned for names the program does not have. Writes through
// it are dropped.
const DummyUniform UniformHandle = -1

// Uniform is a reflected, typed uniform of a linked program.
type Uniform struct {
	program  *Program
	name     string
	typ      gpu.UniformType
	location int32
	value    UniformValue
}

var dummyUniform = &Uniform{name: "<dummy>"}

func (u *Uniform) Name() string                { return u.name }
func (u *Uniform) Type() gpu.UniformType       { return u.typ }
func (u *Uniform) Location() int32             { return u.location }
func (u *Uniform) IsDummy() bool               { return u.program == nil }
func (u *Uniform) Value() (UniformValue, bool) { return u.value, u.value != nil }

// Set writes v to the uniform. The owning program must be current and v must
// match the reflected type; violations assert in debug builds and are dropped
// otherwise.
func (u *Uniform) Set(v UniformValue) {
	if u.program == nil || v == nil {
		return
	}
	dev := u.program.dev
	if !assertf(dev.CurrentProgram() == u.program.id && u.program.id != 0,
		"uniform %q written while program %d is not in use (current %d)", u.name, u.program.id, dev.CurrentProgram()) {
		return
	}
	if !assertf(v.UniformType() == u.typ, "uniform %q is %s, got %s", u.name, u.typ, v.UniformType()) {
		return
	}
	writeUniform(dev, u.location, v)
	u.value = v
}
