package graphics

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/GurayOrg/voxigen/internal/buildflags"
	"github.com/GurayOrg/voxigen/internal/gpu"
)

// ShaderSources is the source table a program is built from. Geometry is optional.
type ShaderSources struct {
	Vertex   string
	Geometry string
	Fragment string
}

// AttributeDetail is a reflected vertex input.
type AttributeDetail struct {
	Name     string
	Type     gpu.UniformType
	Location uint32
}

// UniformBufferDetail is the reflected layout of a uniform block.
type UniformBufferDetail struct {
	Name       string
	BlockIndex uint32
	Binding    uint32
	DataSize   int32
	Members    []gpu.BlockMember
}

// Member returns the named block member.
func (d UniformBufferDetail) Member(name string) (gpu.BlockMember, bool) {
	for _, m := range d.Members {
		if m.Name == name {
			return m, true
		}
	}
	return gpu.BlockMember{}, false
}

// Program owns a GPU program object and the shader stages attached to it.
// After a successful Link it exposes the program's attributes, uniforms and
// uniform blocks.
type Program struct {
	dev     *Device
	sources ShaderSources

	id     uint32
	linked bool
	stages map[gpu.ShaderStage]uint32

	uniforms    []*Uniform
	uniformIDs  map[string]UniformHandle
	attributes  map[string]AttributeDetail
	blocks      map[string]UniformBufferDetail
	lastBinding uint32
}

// NewProgram creates an empty program for dev. No GPU objects are created
// until the first shader is attached.
func NewProgram(dev *Device, sources ShaderSources) *Program {
	p := &Program{
		dev:     dev,
		sources: sources,
		stages:  make(map[gpu.ShaderStage]uint32, 3),
	}
	p.clear()
	return p
}

func (p *Program) clear() {
	p.uniforms = nil
	p.uniformIDs = make(map[string]UniformHandle)
	p.attributes = make(map[string]AttributeDetail)
	p.blocks = make(map[string]UniformBufferDetail)
	p.lastBinding = 1
}

func (p *Program) generate() {
	if p.id == 0 {
		p.id = p.dev.CreateProgram()
	}
}

// ID returns the GPU program id, 0 before anything was attached.
func (p *Program) ID() uint32 { return p.id }

// Linked reports whether the last Link succeeded.
func (p *Program) Linked() bool { return p.linked }

// Build compiles every stage of the program's source table and links it.
func (p *Program) Build() error {
	if err := p.AttachShader(gpu.StageVertex, p.sources.Vertex); err != nil {
		return fmt.Errorf("build program: %w", err)
	}
	if p.sources.Geometry != "" {
		if err := p.AttachShader(gpu.StageGeometry, p.sources.Geometry); err != nil {
			return fmt.Errorf("build program: %w", err)
		}
	}
	if err := p.AttachShader(gpu.StageFragment, p.sources.Fragment); err != nil {
		return fmt.Errorf("build program: %w", err)
	}
	if err := p.Link(); err != nil {
		return fmt.Errorf("build program: %w", err)
	}
	return nil
}

// AttachShader compiles source as the given stage and attaches it, replacing
// any shader already attached for that stage. A stage that fails to compile is
// discarded and the previously attached stages are left as they were.
func (p *Program) AttachShader(stage gpu.ShaderStage, source string) error {
	if !assertf(stage.Valid(), "unsupported shader stage %d", stage) {
		return nil
	}
	if !assertf(source != "", "empty %s shader source", stage) {
		return nil
	}

	shader := p.dev.CreateShader(stage)
	if log, ok := p.dev.CompileShader(shader, source); !ok {
		p.dev.DeleteShader(shader)
		return &CompileError{Stage: stage, Log: strings.TrimSpace(log)}
	}

	p.generate()
	if old, ok := p.stages[stage]; ok {
		p.dev.DetachShader(p.id, old)
		p.dev.DeleteShader(old)
	}
	p.dev.AttachShader(p.id, shader)
	p.stages[stage] = shader
	return nil
}

// Link links the attached stages and reflects the result. On failure the
// previously reflected attributes, uniforms and blocks are kept untouched.
func (p *Program) Link() error {
	if len(p.stages) == 0 {
		return ErrNoShaderAttached
	}
	p.generate()

	// keep attribute locations stable across re-links
	for _, a := range p.attributes {
		p.dev.BindAttribLocation(p.id, a.Location, a.Name)
	}

	if log, ok := p.dev.LinkProgram(p.id); !ok {
		p.linked = false
		return &LinkError{Log: strings.TrimSpace(log)}
	}
	p.linked = true

	p.clear()
	p.reflectAttributes()
	p.reflectBlocks()
	p.reflectUniforms()
	return nil
}

func (p *Program) reflectAttributes() {
	for _, a := range p.dev.ActiveAttributes(p.id) {
		if a.Location < 0 {
			continue
		}
		p.attributes[a.Name] = AttributeDetail{Name: a.Name, Type: a.Type, Location: uint32(a.Location)}
	}
}

func (p *Program) reflectBlocks() {
	for _, b := range p.dev.ActiveUniformBlocks(p.id) {
		binding := b.Binding
		if binding == 0 {
			binding = p.lastBinding
			p.lastBinding++
		}
		p.blocks[b.Name] = UniformBufferDetail{
			Name:       b.Name,
			BlockIndex: b.Index,
			Binding:    binding,
			DataSize:   b.DataSize,
			Members:    b.Members,
		}
		p.dev.UniformBlockBinding(p.id, b.Index, binding)
	}
}

func (p *Program) reflectUniforms() {
	for _, u := range p.dev.ActiveUniforms(p.id) {
		// struct and block members are reached through their block
		if strings.Contains(u.Name, ".") || u.Location < 0 {
			continue
		}
		// samplers are bound to texture units, not through typed handles
		if !u.Type.Writable() {
			continue
		}
		h := UniformHandle(len(p.uniforms))
		p.uniforms = append(p.uniforms, &Uniform{
			program:  p,
			name:     u.Name,
			typ:      u.Type,
			location: u.Location,
		})
		p.uniformIDs[u.Name] = h
	}
}

// Use makes the program current. The program must have linked.
func (p *Program) Use() {
	if !assertf(p.linked && p.id != 0, "use of unlinked program %d", p.id) {
		return
	}
	p.dev.UseProgram(p.id)
}

// LookupUniform returns the handle for name without reporting a miss.
func (p *Program) LookupUniform(name string) (UniformHandle, bool) {
	h, ok := p.uniformIDs[name]
	if !ok {
		return DummyUniform, false
	}
	return h, true
}

// UniformHandle returns the handle for name. Unknown names return DummyUniform
// so a shader/uniform mismatch degrades to a missing effect instead of a crash;
// debug builds log the miss.
func (p *Program) UniformHandle(name string) UniformHandle {
	h, ok := p.LookupUniform(name)
	if !ok && buildflags.Debug {
		slog.Error("request for unknown uniform", "uniform", name, "program", p.id)
	}
	return h
}

// Uniform returns the uniform for h, or an inert uniform when h is not valid.
func (p *Program) Uniform(h UniformHandle) *Uniform {
	if h < 0 || int(h) >= len(p.uniforms) {
		return dummyUniform
	}
	return p.uniforms[h]
}

// SetUniform writes v through h.
func (p *Program) SetUniform(h UniformHandle, v UniformValue) {
	p.Uniform(h).Set(v)
}

// Uniforms returns the names of the reflected uniforms in handle order.
func (p *Program) Uniforms() []string {
	names := make([]string, len(p.uniforms))
	for i, u := range p.uniforms {
		names[i] = u.name
	}
	return names
}

// AttributeLocation returns the location of a reflected vertex input.
func (p *Program) AttributeLocation(name string) (uint32, bool) {
	a, ok := p.attributes[name]
	if !assertf(ok, "unknown attribute %q", name) {
		return 0, false
	}
	return a.Location, true
}

// UniformBlock returns the reflected layout of a uniform block.
func (p *Program) UniformBlock(name string) (UniformBufferDetail, bool) {
	d, ok := p.blocks[name]
	return d, ok
}

// CreateUniformBuffer builds a buffer laid out for the named block. The caller
// owns the buffer and must Delete it.
func (p *Program) CreateUniformBuffer(name string) (*UniformBuffer, error) {
	p.generate()

	detail, ok := p.blocks[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownUniformBlock, name)
	}
	return newUniformBuffer(p, detail), nil
}

// UseUniformBuffer binds buf, which must have been created by this program.
func (p *Program) UseUniformBuffer(buf *UniformBuffer) {
	if !assertf(buf != nil && buf.program == p, "uniform buffer was not created for program %d", p.id) {
		return
	}
	buf.Bind()
}

// Delete releases the program and every attached stage.
func (p *Program) Delete() {
	for stage, shader := range p.stages {
		if p.id != 0 {
			p.dev.DetachShader(p.id, shader)
		}
		p.dev.DeleteShader(shader)
		delete(p.stages, stage)
	}
	if p.id != 0 {
		p.dev.DeleteProgram(p.id)
		p.id = 0
	}
	p.linked = false
	p.clear()
}
