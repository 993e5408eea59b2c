// Package gldriver implements gpu.Driver on top of OpenGL 4.1 core.
package gldriver

import (
	"fmt"
	"strings"

	"github.com/GurayOrg/voxigen/internal/gpu"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// Driver issues gpu.Driver calls straight to the current GL context.
type Driver struct{}

var _ gpu.Driver = (*Driver)(nil)

// New loads the GL function pointers for the current context.
// A context must already be current on the calling thread.
func New() (*Driver, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("could not initialize OpenGL: %w", err)
	}
	return &Driver{}, nil
}

// Version returns the GL_VERSION string of the current context.
func (d *Driver) Version() string {
	return gl.GoStr(gl.GetString(gl.VERSION))
}

func (d *Driver) Enable(c gpu.Capability)  { gl.Enable(capability(c)) }
func (d *Driver) Disable(c gpu.Capability) { gl.Disable(capability(c)) }

func (d *Driver) BlendFunc(src, dst gpu.BlendFactor) {
	gl.BlendFunc(blendFactor(src), blendFactor(dst))
}

func (d *Driver) Viewport(x, y, width, height int32) { gl.Viewport(x, y, width, height) }

func (d *Driver) Clear(r, g, b, a float32) {
	gl.ClearColor(r, g, b, a)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

func (d *Driver) CreateShader(stage gpu.ShaderStage) uint32 {
	switch stage {
	case gpu.StageVertex:
		return gl.CreateShader(gl.VERTEX_SHADER)
	case gpu.StageGeometry:
		return gl.CreateShader(gl.GEOMETRY_SHADER)
	case gpu.StageFragment:
		return gl.CreateShader(gl.FRAGMENT_SHADER)
	}
	return 0
}

func (d *Driver) CompileShader(shader uint32, source string) (string, bool) {
	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)

		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(log))
		return strings.TrimRight(log, "\x00"), false
	}
	return "", true
}

func (d *Driver) DeleteShader(shader uint32) { gl.DeleteShader(shader) }

func (d *Driver) CreateProgram() uint32 { return gl.CreateProgram() }

func (d *Driver) AttachShader(program, shader uint32) { gl.AttachShader(program, shader) }
func (d *Driver) DetachShader(program, shader uint32) { gl.DetachShader(program, shader) }

func (d *Driver) BindAttribLocation(program, index uint32, name string) {
	gl.BindAttribLocation(program, index, gl.Str(name+"\x00"))
}

func (d *Driver) LinkProgram(program uint32) (string, bool) {
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)

		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(log))
		return strings.TrimRight(log, "\x00"), false
	}
	return "", true
}

func (d *Driver) UseProgram(program uint32)    { gl.UseProgram(program) }
func (d *Driver) DeleteProgram(program uint32) { gl.DeleteProgram(program) }

func (d *Driver) ActiveAttributes(program uint32) []gpu.ActiveAttribute {
	var count, maxLength int32
	gl.GetProgramiv(program, gl.ACTIVE_ATTRIBUTES, &count)
	gl.GetProgramiv(program, gl.ACTIVE_ATTRIBUTE_MAX_LENGTH, &maxLength)

	name := make([]uint8, maxLength+1)
	attributes := make([]gpu.ActiveAttribute, 0, count)
	for i := int32(0); i < count; i++ {
		var length, size int32
		var xtype uint32
		gl.GetActiveAttrib(program, uint32(i), int32(len(name)), &length, &size, &xtype, &name[0])

		attributes = append(attributes, gpu.ActiveAttribute{
			Name:     string(name[:length]),
			Type:     uniformType(xtype),
			Location: gl.GetAttribLocation(program, &name[0]),
		})
	}
	return attributes
}

func (d *Driver) ActiveUniformBlocks(program uint32) []gpu.ActiveBlock {
	var count, maxBlockName, maxUniformName int32
	gl.GetProgramiv(program, gl.ACTIVE_UNIFORM_BLOCKS, &count)
	gl.GetProgramiv(program, gl.ACTIVE_UNIFORM_BLOCK_MAX_NAME_LENGTH, &maxBlockName)
	gl.GetProgramiv(program, gl.ACTIVE_UNIFORM_MAX_LENGTH, &maxUniformName)

	blockName := make([]uint8, maxBlockName+1)
	uniformName := make([]uint8, maxUniformName+1)
	blocks := make([]gpu.ActiveBlock, 0, count)

	for i := int32(0); i < count; i++ {
		var length, binding, dataSize, memberCount int32
		gl.GetActiveUniformBlockName(program, uint32(i), int32(len(blockName)), &length, &blockName[0])
		index := gl.GetUniformBlockIndex(program, &blockName[0])
		gl.GetActiveUniformBlockiv(program, index, gl.UNIFORM_BLOCK_BINDING, &binding)
		gl.GetActiveUniformBlockiv(program, index, gl.UNIFORM_BLOCK_DATA_SIZE, &dataSize)
		gl.GetActiveUniformBlockiv(program, index, gl.UNIFORM_BLOCK_ACTIVE_UNIFORMS, &memberCount)

		block := gpu.ActiveBlock{
			Name:     string(blockName[:length]),
			Index:    index,
			Binding:  uint32(binding),
			DataSize: dataSize,
		}
		if memberCount > 0 {
			indices := make([]int32, memberCount)
			gl.GetActiveUniformBlockiv(program, index, gl.UNIFORM_BLOCK_ACTIVE_UNIFORM_INDICES, &indices[0])

			uindices := make([]uint32, memberCount)
			for j, idx := range indices {
				uindices[j] = uint32(idx)
			}
			types := make([]int32, memberCount)
			offsets := make([]int32, memberCount)
			gl.GetActiveUniformsiv(program, memberCount, &uindices[0], gl.UNIFORM_TYPE, &types[0])
			gl.GetActiveUniformsiv(program, memberCount, &uindices[0], gl.UNIFORM_OFFSET, &offsets[0])

			for j := range uindices {
				var nameLength int32
				gl.GetActiveUniformName(program, uindices[j], int32(len(uniformName)), &nameLength, &uniformName[0])
				block.Members = append(block.Members, gpu.BlockMember{
					Name:   string(uniformName[:nameLength]),
					Type:   uniformType(uint32(types[j])),
					Offset: offsets[j],
				})
			}
		}
		blocks = append(blocks, block)
	}
	return blocks
}

func (d *Driver) ActiveUniforms(program uint32) []gpu.ActiveUniform {
	var count, maxLength int32
	gl.GetProgramiv(program, gl.ACTIVE_UNIFORMS, &count)
	gl.GetProgramiv(program, gl.ACTIVE_UNIFORM_MAX_LENGTH, &maxLength)

	name := make([]uint8, maxLength+1)
	uniforms := make([]gpu.ActiveUniform, 0, count)
	for i := int32(0); i < count; i++ {
		var length, size int32
		var xtype uint32
		gl.GetActiveUniform(program, uint32(i), int32(len(name)), &length, &size, &xtype, &name[0])

		uniforms = append(uniforms, gpu.ActiveUniform{
			Name:     string(name[:length]),
			Type:     uniformType(xtype),
			Size:     size,
			Location: gl.GetUniformLocation(program, &name[0]),
		})
	}
	return uniforms
}

func (d *Driver) UniformBlockBinding(program, blockIndex, binding uint32) {
	gl.UniformBlockBinding(program, blockIndex, binding)
}

func (d *Driver) Uniform1i(location int32, v int32)   { gl.Uniform1i(location, v) }
func (d *Driver) Uniform1ui(location int32, v uint32) { gl.Uniform1ui(location, v) }
func (d *Driver) Uniform1f(location int32, v float32) { gl.Uniform1f(location, v) }
func (d *Driver) Uniform1d(location int32, v float64) { gl.Uniform1d(location, v) }

func (d *Driver) Uniform2f(location int32, x, y float32)       { gl.Uniform2f(location, x, y) }
func (d *Driver) Uniform3f(location int32, x, y, z float32)    { gl.Uniform3f(location, x, y, z) }
func (d *Driver) Uniform4f(location int32, x, y, z, w float32) { gl.Uniform4f(location, x, y, z, w) }
func (d *Driver) Uniform2i(location int32, x, y int32)         { gl.Uniform2i(location, x, y) }
func (d *Driver) Uniform3i(location int32, x, y, z int32)      { gl.Uniform3i(location, x, y, z) }
func (d *Driver) Uniform4i(location int32, x, y, z, w int32)   { gl.Uniform4i(location, x, y, z, w) }

func (d *Driver) UniformMatrix4fv(location int32, m *[16]float32) {
	gl.UniformMatrix4fv(location, 1, false, &m[0])
}

func (d *Driver) CreateBuffer() uint32 {
	var buffer uint32
	gl.GenBuffers(1, &buffer)
	return buffer
}

func (d *Driver) BindBuffer(target gpu.BufferTarget, buffer uint32) {
	gl.BindBuffer(bufferTarget(target), buffer)
}

func (d *Driver) BufferData(target gpu.BufferTarget, buffer uint32, data []byte, usage gpu.BufferUsage) {
	t := bufferTarget(target)
	gl.BindBuffer(t, buffer)
	if len(data) == 0 {
		gl.BufferData(t, 0, nil, bufferUsage(usage))
		return
	}
	gl.BufferData(t, len(data), gl.Ptr(data), bufferUsage(usage))
}

func (d *Driver) BufferSubData(target gpu.BufferTarget, buffer uint32, offset int, data []byte) {
	if len(data) == 0 {
		return
	}
	t := bufferTarget(target)
	gl.BindBuffer(t, buffer)
	gl.BufferSubData(t, offset, len(data), gl.Ptr(data))
}

func (d *Driver) BindBufferBase(target gpu.BufferTarget, index, buffer uint32) {
	gl.BindBufferBase(bufferTarget(target), index, buffer)
}

func (d *Driver) DeleteBuffer(buffer uint32) { gl.DeleteBuffers(1, &buffer) }

func (d *Driver) CreateVertexArray() uint32 {
	var vao uint32
	gl.GenVertexArrays(1, &vao)
	return vao
}

func (d *Driver) BindVertexArray(vao uint32) { gl.BindVertexArray(vao) }

func (d *Driver) VertexAttribPointer(index uint32, size int32, stride int32, offset int) {
	gl.EnableVertexAttribArray(index)
	gl.VertexAttribPointerWithOffset(index, size, gl.FLOAT, false, stride, uintptr(offset))
}

func (d *Driver) VertexAttribDivisor(index, divisor uint32) { gl.VertexAttribDivisor(index, divisor) }

func (d *Driver) DeleteVertexArray(vao uint32) { gl.DeleteVertexArrays(1, &vao) }

func (d *Driver) DrawArraysInstanced(mode gpu.DrawMode, first, count, instances int32) {
	gl.DrawArraysInstanced(drawMode(mode), first, count, instances)
}
