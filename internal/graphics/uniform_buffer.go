package graphics

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/GurayOrg/voxigen/internal/gpu"
)

// UniformBuffer is a CPU shadow of a uniform block plus the GPU buffer backing
// it. Values are packed with the offsets the program reflected for the block.
type UniformBuffer struct {
	program *Program
	detail  UniformBufferDetail
	buffer  uint32
	data    []byte
	dirty   bool
}

func newUniformBuffer(p *Program, detail UniformBufferDetail) *UniformBuffer {
	b := &UniformBuffer{
		program: p,
		detail:  detail,
		data:    make([]byte, detail.DataSize),
	}
	b.buffer = p.dev.CreateBuffer()
	p.dev.BufferData(gpu.UniformBuffer, b.buffer, b.data, gpu.DynamicDraw)
	return b
}

func (b *UniformBuffer) Program() *Program           { return b.program }
func (b *UniformBuffer) Name() string                { return b.detail.Name }
func (b *UniformBuffer) Binding() uint32             { return b.detail.Binding }
func (b *UniformBuffer) Detail() UniformBufferDetail { return b.detail }
func (b *UniformBuffer) Buffer() uint32              { return b.buffer }

// Set packs v into the member's slot. The change reaches the GPU on Upload.
func (b *UniformBuffer) Set(member string, v UniformValue) error {
	m, ok := b.detail.Member(member)
	if !ok {
		return fmt.Errorf("%w: %q in block %q", ErrUnknownBlockMember, member, b.detail.Name)
	}
	if v == nil || v.UniformType() != m.Type {
		return fmt.Errorf("%w: %q in block %q is %s", ErrUniformTypeMismatch, member, b.detail.Name, m.Type)
	}
	_, size := m.Type.Std140()
	end := int(m.Offset) + size
	if end > len(b.data) {
		return fmt.Errorf("member %q overruns block %q (%d > %d bytes)", member, b.detail.Name, end, len(b.data))
	}
	putStd140(b.data[m.Offset:end], v)
	b.dirty = true
	return nil
}

// Upload pushes pending changes to the GPU buffer.
func (b *UniformBuffer) Upload() {
	if !b.dirty || b.buffer == 0 {
		return
	}
	b.program.dev.BufferSubData(gpu.UniformBuffer, b.buffer, 0, b.data)
	b.dirty = false
}

// Bind uploads pending changes and binds the buffer to the block's binding point.
func (b *UniformBuffer) Bind() {
	if b.buffer == 0 {
		return
	}
	b.Upload()
	b.program.dev.BindBufferBase(gpu.UniformBuffer, b.detail.Binding, b.buffer)
}

// Delete releases the GPU buffer.
func (b *UniformBuffer) Delete() {
	if b.buffer != 0 {
		b.program.dev.DeleteBuffer(b.buffer)
		b.buffer = 0
	}
}

func putStd140(dst []byte, v UniformValue) {
	le := binary.LittleEndian
	f32 := func(i int, f float32) { le.PutUint32(dst[i*4:], math.Float32bits(f)) }
	i32 := func(i int, n int32) { le.PutUint32(dst[i*4:], uint32(n)) }

	switch v := v.(type) {
	case Bool:
		var n int32
		if v {
			n = 1
		}
		i32(0, n)
	case Int:
		i32(0, int32(v))
	case UInt:
		le.PutUint32(dst, uint32(v))
	case Float:
		f32(0, float32(v))
	case Double:
		le.PutUint64(dst, math.Float64bits(float64(v)))
	case Vec2:
		for i, f := range v {
			f32(i, f)
		}
	case Vec3:
		for i, f := range v {
			f32(i, f)
		}
	case Vec4:
		for i, f := range v {
			f32(i, f)
		}
	case IVec2:
		for i, n := range v {
			i32(i, n)
		}
	case IVec3:
		for i, n := range v {
			i32(i, n)
		}
	case IVec4:
		for i, n := range v {
			i32(i, n)
		}
	case Mat4:
		// column-major, each column is a vec4 so no std140 padding is needed
		for i, f := range v {
			f32(i, f)
		}
	}
}
