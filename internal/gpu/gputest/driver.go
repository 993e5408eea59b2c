// Package gputest provides a recording gpu.Driver for tests.
//
// Compilation and linking are simulated: a stage compiles when its source declares
// main and carries no #error directive, a program links when it has compiled vertex
// and fragment stages. Reflection data is scanned from the GLSL declarations of the
// attached stages, so programs built from real shader sources reflect realistically.
package gputest

import (
	"fmt"
	"slices"
	"strings"

	"github.com/GurayOrg/voxigen/internal/gpu"
)

// DrawCall is one recorded DrawArraysInstanced call.
type DrawCall struct {
	Program   uint32
	VAO       uint32
	Mode      gpu.DrawMode
	First     int32
	Count     int32
	Instances int32
}

// UniformWrite is one recorded uniform upload.
type UniformWrite struct {
	Program  uint32
	Location int32
	Value    any
}

type shader struct {
	stage    gpu.ShaderStage
	source   string
	compiled bool
}

type program struct {
	attached   map[gpu.ShaderStage]uint32
	bound      map[string]uint32
	linked     bool
	reflection reflection
	bindings   map[uint32]uint32
}

// Driver records every call in memory. The zero value is not usable; call New.
type Driver struct {
	next uint32

	shaders  map[uint32]*shader
	programs map[uint32]*program
	buffers  map[uint32][]byte
	vaos     map[uint32]struct{}

	// LinkLog, when set, makes every link fail with this diagnostic.
	LinkLog string

	Current     uint32
	BoundVAO    uint32
	Enabled     map[gpu.Capability]bool
	Draws       []DrawCall
	Uniforms    []UniformWrite
	BufferBinds map[uint32]uint32 // binding index -> buffer, for uniform buffers
	Uploads     int
	UploadBytes int
	Clears      int
}

var _ gpu.Driver = (*Driver)(nil)

func New() *Driver {
	return &Driver{
		shaders:     make(map[uint32]*shader),
		programs:    make(map[uint32]*program),
		buffers:     make(map[uint32][]byte),
		vaos:        make(map[uint32]struct{}),
		Enabled:     make(map[gpu.Capability]bool),
		BufferBinds: make(map[uint32]uint32),
	}
}

func (d *Driver) id() uint32 {
	d.next++
	return d.next
}

// ResetFrame clears the per-frame recordings (draws, uniform writes, upload counters).
func (d *Driver) ResetFrame() {
	d.Draws = d.Draws[:0]
	d.Uniforms = d.Uniforms[:0]
	d.Uploads = 0
	d.UploadBytes = 0
}

// LiveShaders, LivePrograms, LiveBuffers and LiveVertexArrays report objects not yet deleted.
func (d *Driver) LiveShaders() int      { return len(d.shaders) }
func (d *Driver) LivePrograms() int     { return len(d.programs) }
func (d *Driver) LiveBuffers() int      { return len(d.buffers) }
func (d *Driver) LiveVertexArrays() int { return len(d.vaos) }

// Buffer returns the current contents of a buffer.
func (d *Driver) Buffer(id uint32) []byte { return d.buffers[id] }

// DrawsFor returns the draws issued while the given program was current.
func (d *Driver) DrawsFor(program uint32) []DrawCall {
	var out []DrawCall
	for _, dc := range d.Draws {
		if dc.Program == program {
			out = append(out, dc)
		}
	}
	return out
}

// Attached returns the shader attached to program at stage, or 0.
func (d *Driver) Attached(program uint32, stage gpu.ShaderStage) uint32 {
	if p, ok := d.programs[program]; ok {
		return p.attached[stage]
	}
	return 0
}

// BlockBinding returns the binding point assigned to a block index of program.
func (d *Driver) BlockBinding(program, blockIndex uint32) (uint32, bool) {
	p, ok := d.programs[program]
	if !ok {
		return 0, false
	}
	b, ok := p.bindings[blockIndex]
	return b, ok
}

func (d *Driver) Enable(c gpu.Capability)            { d.Enabled[c] = true }
func (d *Driver) Disable(c gpu.Capability)           { d.Enabled[c] = false }
func (d *Driver) BlendFunc(src, dst gpu.BlendFactor) {}
func (d *Driver) Viewport(x, y, width, height int32) {}
func (d *Driver) Clear(r, g, b, a float32)           { d.Clears++ }

func (d *Driver) CreateShader(stage gpu.ShaderStage) uint32 {
	if !stage.Valid() {
		return 0
	}
	id := d.id()
	d.shaders[id] = &shader{stage: stage}
	return id
}

func (d *Driver) CompileShader(id uint32, source string) (string, bool) {
	s, ok := d.shaders[id]
	if !ok {
		return fmt.Sprintf("invalid shader %d", id), false
	}
	s.source = source
	s.compiled = false
	if strings.TrimSpace(source) == "" {
		return "ERROR: 0:0: empty shader source", false
	}
	if i := strings.Index(source, "#error"); i >= 0 {
		line := strings.Count(source[:i], "\n") + 1
		return fmt.Sprintf("ERROR: 0:%d: '#error' : user-defined error", line), false
	}
	if !strings.Contains(source, "void main") {
		return "ERROR: 0:1: missing entry point main", false
	}
	s.compiled = true
	return "", true
}

func (d *Driver) DeleteShader(id uint32) { delete(d.shaders, id) }

func (d *Driver) CreateProgram() uint32 {
	id := d.id()
	d.programs[id] = &program{
		attached: make(map[gpu.ShaderStage]uint32),
		bound:    make(map[string]uint32),
		bindings: make(map[uint32]uint32),
	}
	return id
}

func (d *Driver) AttachShader(programID, shaderID uint32) {
	p, ok := d.programs[programID]
	s, sok := d.shaders[shaderID]
	if !ok || !sok {
		return
	}
	p.attached[s.stage] = shaderID
}

func (d *Driver) DetachShader(programID, shaderID uint32) {
	p, ok := d.programs[programID]
	if !ok {
		return
	}
	for stage, id := range p.attached {
		if id == shaderID {
			delete(p.attached, stage)
		}
	}
}

func (d *Driver) BindAttribLocation(programID, index uint32, name string) {
	if p, ok := d.programs[programID]; ok {
		p.bound[name] = index
	}
}

func (d *Driver) LinkProgram(programID uint32) (string, bool) {
	p, ok := d.programs[programID]
	if !ok {
		return fmt.Sprintf("invalid program %d", programID), false
	}
	p.linked = false
	if d.LinkLog != "" {
		return d.LinkLog, false
	}
	var sources []string
	for _, stage := range []gpu.ShaderStage{gpu.StageVertex, gpu.StageFragment} {
		id, attached := p.attached[stage]
		if !attached {
			return fmt.Sprintf("error: program has no %s shader attached", stage), false
		}
		if s := d.shaders[id]; s == nil || !s.compiled {
			return fmt.Sprintf("error: %s shader is not compiled", stage), false
		}
	}
	for _, stage := range []gpu.ShaderStage{gpu.StageVertex, gpu.StageGeometry, gpu.StageFragment} {
		if id, attached := p.attached[stage]; attached {
			if s := d.shaders[id]; s != nil {
				sources = append(sources, s.source)
			}
		}
	}
	p.reflection = scan(d.shaders[p.attached[gpu.StageVertex]].source, sources, p.bound)
	p.bindings = make(map[uint32]uint32)
	p.linked = true
	return "", true
}

func (d *Driver) UseProgram(programID uint32) { d.Current = programID }

func (d *Driver) DeleteProgram(programID uint32) {
	delete(d.programs, programID)
	if d.Current == programID {
		d.Current = 0
	}
}

func (d *Driver) linked(programID uint32) *program {
	p, ok := d.programs[programID]
	if !ok || !p.linked {
		return nil
	}
	return p
}

func (d *Driver) ActiveAttributes(programID uint32) []gpu.ActiveAttribute {
	if p := d.linked(programID); p != nil {
		return slices.Clone(p.reflection.attributes)
	}
	return nil
}

func (d *Driver) ActiveUniformBlocks(programID uint32) []gpu.ActiveBlock {
	p := d.linked(programID)
	if p == nil {
		return nil
	}
	blocks := make([]gpu.ActiveBlock, len(p.reflection.blocks))
	for i, b := range p.reflection.blocks {
		b.Members = slices.Clone(b.Members)
		blocks[i] = b
	}
	return blocks
}

func (d *Driver) ActiveUniforms(programID uint32) []gpu.ActiveUniform {
	if p := d.linked(programID); p != nil {
		return slices.Clone(p.reflection.uniforms)
	}
	return nil
}

func (d *Driver) UniformBlockBinding(programID, blockIndex, binding uint32) {
	if p, ok := d.programs[programID]; ok {
		p.bindings[blockIndex] = binding
	}
}

func (d *Driver) record(location int32, v any) {
	d.Uniforms = append(d.Uniforms, UniformWrite{Program: d.Current, Location: location, Value: v})
}

func (d *Driver) Uniform1i(location int32, v int32)   { d.record(location, v) }
func (d *Driver) Uniform1ui(location int32, v uint32) { d.record(location, v) }
func (d *Driver) Uniform1f(location int32, v float32) { d.record(location, v) }
func (d *Driver) Uniform1d(location int32, v float64) { d.record(location, v) }

func (d *Driver) Uniform2f(location int32, x, y float32) { d.record(location, [2]float32{x, y}) }
func (d *Driver) Uniform3f(location int32, x, y, z float32) {
	d.record(location, [3]float32{x, y, z})
}
func (d *Driver) Uniform4f(location int32, x, y, z, w float32) {
	d.record(location, [4]float32{x, y, z, w})
}
func (d *Driver) Uniform2i(location int32, x, y int32)    { d.record(location, [2]int32{x, y}) }
func (d *Driver) Uniform3i(location int32, x, y, z int32) { d.record(location, [3]int32{x, y, z}) }
func (d *Driver) Uniform4i(location int32, x, y, z, w int32) {
	d.record(location, [4]int32{x, y, z, w})
}
func (d *Driver) UniformMatrix4fv(location int32, m *[16]float32) { d.record(location, *m) }

// WritesTo returns the values written to location while program was current.
func (d *Driver) WritesTo(program uint32, location int32) []any {
	var out []any
	for _, w := range d.Uniforms {
		if w.Program == program && w.Location == location {
			out = append(out, w.Value)
		}
	}
	return out
}

func (d *Driver) CreateBuffer() uint32 {
	id := d.id()
	d.buffers[id] = nil
	return id
}

func (d *Driver) BindBuffer(target gpu.BufferTarget, buffer uint32) {}

func (d *Driver) BufferData(target gpu.BufferTarget, buffer uint32, data []byte, usage gpu.BufferUsage) {
	if _, ok := d.buffers[buffer]; !ok {
		return
	}
	d.buffers[buffer] = slices.Clone(data)
	d.Uploads++
	d.UploadBytes += len(data)
}

func (d *Driver) BufferSubData(target gpu.BufferTarget, buffer uint32, offset int, data []byte) {
	b, ok := d.buffers[buffer]
	if !ok || offset+len(data) > len(b) {
		return
	}
	copy(b[offset:], data)
	d.Uploads++
	d.UploadBytes += len(data)
}

func (d *Driver) BindBufferBase(target gpu.BufferTarget, index, buffer uint32) {
	if target == gpu.UniformBuffer {
		d.BufferBinds[index] = buffer
	}
}

func (d *Driver) DeleteBuffer(buffer uint32) { delete(d.buffers, buffer) }

func (d *Driver) CreateVertexArray() uint32 {
	id := d.id()
	d.vaos[id] = struct{}{}
	return id
}

func (d *Driver) BindVertexArray(vao uint32)                                       { d.BoundVAO = vao }
func (d *Driver) VertexAttribPointer(index uint32, size, stride int32, offset int) {}
func (d *Driver) VertexAttribDivisor(index, divisor uint32)                        {}

func (d *Driver) DeleteVertexArray(vao uint32) {
	delete(d.vaos, vao)
	if d.BoundVAO == vao {
		d.BoundVAO = 0
	}
}

func (d *Driver) DrawArraysInstanced(mode gpu.DrawMode, first, count, instances int32) {
	d.Draws = append(d.Draws, DrawCall{
		Program:   d.Current,
		VAO:       d.BoundVAO,
		Mode:      mode,
		First:     first,
		Count:     count,
		Instances: instances,
	})
}
