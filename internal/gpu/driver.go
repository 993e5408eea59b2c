// Package gpu is the thin driver layer between the renderer and the graphics API.
// Everything above it talks to a Driver; gldriver implements it on OpenGL 4.1 core
// and gputest records calls for tests.
package gpu

// Driver is the set of GPU calls the rendering core issues.
// All methods must be called from the thread that owns the context.
type Driver interface {
	// Frame state
	Enable(c Capability)
	Disable(c Capability)
	BlendFunc(src, dst BlendFactor)
	Viewport(x, y, width, height int32)
	Clear(r, g, b, a float32)

	// Shaders and programs
	CreateShader(stage ShaderStage) uint32
	CompileShader(shader uint32, source string) (log string, ok bool)
	DeleteShader(shader uint32)
	CreateProgram() uint32
	AttachShader(program, shader uint32)
	DetachShader(program, shader uint32)
	BindAttribLocation(program, index uint32, name string)
	LinkProgram(program uint32) (log string, ok bool)
	UseProgram(program uint32)
	DeleteProgram(program uint32)

	// Reflection, valid after a successful link
	ActiveAttributes(program uint32) []ActiveAttribute
	ActiveUniformBlocks(program uint32) []ActiveBlock
	ActiveUniforms(program uint32) []ActiveUniform
	UniformBlockBinding(program, blockIndex, binding uint32)

	// Uniform writes target the current program
	Uniform1i(location int32, v int32)
	Uniform1ui(location int32, v uint32)
	Uniform1f(location int32, v float32)
	Uniform1d(location int32, v float64)
	Uniform2f(location int32, x, y float32)
	Uniform3f(location int32, x, y, z float32)
	Uniform4f(location int32, x, y, z, w float32)
	Uniform2i(location int32, x, y int32)
	Uniform3i(location int32, x, y, z int32)
	Uniform4i(location int32, x, y, z, w int32)
	UniformMatrix4fv(location int32, m *[16]float32)

	// Buffers
	CreateBuffer() uint32
	BindBuffer(target BufferTarget, buffer uint32)
	BufferData(target BufferTarget, buffer uint32, data []byte, usage BufferUsage)
	BufferSubData(target BufferTarget, buffer uint32, offset int, data []byte)
	BindBufferBase(target BufferTarget, index, buffer uint32)
	DeleteBuffer(buffer uint32)

	// Vertex arrays
	CreateVertexArray() uint32
	BindVertexArray(vao uint32)
	// VertexAttribPointer describes a float attribute sourced from the bound array buffer
	// and enables it on the bound vertex array.
	VertexAttribPointer(index uint32, size int32, stride int32, offset int)
	VertexAttribDivisor(index, divisor uint32)
	DeleteVertexArray(vao uint32)

	DrawArraysInstanced(mode DrawMode, first, count, instances int32)
}

// ActiveAttribute is a vertex input reported by the driver after linking.
type ActiveAttribute struct {
	Name     string
	Type     UniformType
	Location int32
}

// ActiveUniform is a default-block or block-member uniform reported after linking.
type ActiveUniform struct {
	Name     string
	Type     UniformType
	Size     int32
	Location int32
}

// BlockMember is one member of a uniform block with its std140 byte offset.
type BlockMember struct {
	Name   string
	Type   UniformType
	Offset int32
}

// ActiveBlock is a uniform block reported after linking. Binding is 0 when
// the shader did not declare one.
type ActiveBlock struct {
	Name     string
	Index    uint32
	Binding  uint32
	DataSize int32
	Members  []BlockMember
}
