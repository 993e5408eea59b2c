package graphics

import (
	"errors"
	"testing"

	"github.com/GurayOrg/voxigen/internal/gpu"
	"github.com/GurayOrg/voxigen/internal/gpu/gputest"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testVertex = `#version 410 core
layout (location = 0) in vec3 position;
in vec2 uv;

uniform mat4 model;

layout (std140) uniform Camera {
	mat4 projection;
	vec3 eye;
	float time;
};

out vec2 fragUV;

void main()
{
	fragUV = uv;
	gl_Position = projection * model * vec4(position, 1.0);
}
`

const testFragment = `#version 410 core
in vec2 fragUV;
out vec4 color;

uniform vec4 tint;
uniform sampler2D albedo;
uniform float weights[4];

uniform Light {
	vec3 direction;
	int count;
} light;

void main()
{
	color = tint * texture(albedo, fragUV);
}
`

var testSources = ShaderSources{Vertex: testVertex, Fragment: testFragment}

func newTestProgram(t *testing.T) (*gputest.Driver, *Program) {
	t.Helper()
	drv := gputest.New()
	p := NewProgram(NewDevice(drv), testSources)
	require.NoError(t, p.Build())
	return drv, p
}

func TestBuildReflectsProgram(t *testing.T) {
	drv, p := newTestProgram(t)

	assert.True(t, p.Linked())
	assert.NotZero(t, p.ID())

	loc, ok := p.AttributeLocation("position")
	require.True(t, ok)
	assert.Equal(t, uint32(0), loc)
	loc, ok = p.AttributeLocation("uv")
	require.True(t, ok)
	assert.Equal(t, uint32(1), loc)

	// samplers, block members and struct fields have no typed handle
	assert.Equal(t, []string{"model", "tint", "weights[0]"}, p.Uniforms())

	h := p.UniformHandle("tint")
	u := p.Uniform(h)
	assert.False(t, u.IsDummy())
	assert.Equal(t, "tint", u.Name())
	assert.Equal(t, gpu.TypeVec4, u.Type())

	camera, ok := p.UniformBlock("Camera")
	require.True(t, ok)
	assert.Equal(t, uint32(1), camera.Binding)
	assert.Equal(t, int32(80), camera.DataSize)
	require.Len(t, camera.Members, 3)
	assert.Equal(t, gpu.BlockMember{Name: "eye", Type: gpu.TypeVec3, Offset: 64}, camera.Members[1])

	light, ok := p.UniformBlock("Light")
	require.True(t, ok)
	assert.Equal(t, uint32(2), light.Binding)
	_, ok = light.Member("Light.count")
	assert.True(t, ok)

	binding, ok := drv.BlockBinding(p.ID(), camera.BlockIndex)
	require.True(t, ok)
	assert.Equal(t, uint32(1), binding)
}

func TestUnknownUniformIsDummy(t *testing.T) {
	drv, p := newTestProgram(t)

	h := p.UniformHandle("doesNotExist")
	assert.Equal(t, DummyUniform, h)
	_, ok := p.LookupUniform("doesNotExist")
	assert.False(t, ok)

	p.Use()
	assert.NotPanics(t, func() { p.SetUniform(h, Float(1)) })
	assert.True(t, p.Uniform(h).IsDummy())
	assert.Empty(t, drv.Uniforms)
}

func TestSetUniformWritesThroughDriver(t *testing.T) {
	drv, p := newTestProgram(t)

	p.Use()
	model := mgl32.Translate3D(1, 2, 3)
	h := p.UniformHandle("model")
	p.SetUniform(h, Mat4(model))

	u := p.Uniform(h)
	writes := drv.WritesTo(p.ID(), u.Location())
	require.Len(t, writes, 1)
	assert.Equal(t, [16]float32(model), writes[0])

	v, ok := u.Value()
	require.True(t, ok)
	assert.Equal(t, Mat4(model), v)
}

func TestLinkVertexOnlyFails(t *testing.T) {
	drv := gputest.New()
	p := NewProgram(NewDevice(drv), testSources)

	require.NoError(t, p.AttachShader(gpu.StageVertex, testVertex))
	err := p.Link()

	var linkErr *LinkError
	require.ErrorAs(t, err, &linkErr)
	assert.Contains(t, linkErr.Log, "fragment")
	assert.False(t, p.Linked())
	assert.Empty(t, p.Uniforms())
	assert.Equal(t, DummyUniform, p.UniformHandle("model"))
}

func TestRelinkFailureKeepsReflection(t *testing.T) {
	drv, p := newTestProgram(t)
	before := p.Uniforms()
	h := p.UniformHandle("tint")

	drv.LinkLog = "error: out of resources"
	err := p.Link()

	var linkErr *LinkError
	require.ErrorAs(t, err, &linkErr)
	assert.Equal(t, "error: out of resources", linkErr.Log)
	assert.Equal(t, before, p.Uniforms())
	assert.Equal(t, h, p.UniformHandle("tint"))
	_, ok := p.UniformBlock("Camera")
	assert.True(t, ok)
}

func TestLinkWithoutShaders(t *testing.T) {
	p := NewProgram(NewDevice(gputest.New()), testSources)
	assert.ErrorIs(t, p.Link(), ErrNoShaderAttached)
}

func TestCompileErrorKeepsPreviousStage(t *testing.T) {
	drv, p := newTestProgram(t)
	vertex := drv.Attached(p.ID(), gpu.StageVertex)

	err := p.AttachShader(gpu.StageVertex, "#version 410 core\n#error broken\nvoid main() {}\n")

	var compileErr *CompileError
	require.ErrorAs(t, err, &compileErr)
	assert.Equal(t, gpu.StageVertex, compileErr.Stage)
	assert.Contains(t, compileErr.Error(), "failed to compile vertex shader")
	assert.Equal(t, vertex, drv.Attached(p.ID(), gpu.StageVertex))
	assert.Equal(t, 2, drv.LiveShaders())
}

func TestAttachShaderReplacesStage(t *testing.T) {
	drv, p := newTestProgram(t)
	old := drv.Attached(p.ID(), gpu.StageVertex)

	require.NoError(t, p.AttachShader(gpu.StageVertex, testVertex))
	assert.NotEqual(t, old, drv.Attached(p.ID(), gpu.StageVertex))
	assert.Equal(t, 2, drv.LiveShaders())
}

func TestRelinkKeepsAttributeLocations(t *testing.T) {
	_, p := newTestProgram(t)

	// uv without a layout would take location 0 on a fresh program
	swapped := `#version 410 core
in vec2 uv;
layout (location = 0) in vec3 position;
uniform mat4 model;
void main() { gl_Position = model * vec4(position, uv.x); }
`
	require.NoError(t, p.AttachShader(gpu.StageVertex, swapped))
	require.NoError(t, p.Link())

	loc, ok := p.AttributeLocation("uv")
	require.True(t, ok)
	assert.Equal(t, uint32(1), loc)
}

func TestBuildWrapsErrors(t *testing.T) {
	p := NewProgram(NewDevice(gputest.New()), ShaderSources{
		Vertex:   testVertex,
		Fragment: "#version 410 core\nout vec4 color;\n",
	})
	err := p.Build()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "build program:")

	var compileErr *CompileError
	require.True(t, errors.As(err, &compileErr))
	assert.Equal(t, gpu.StageFragment, compileErr.Stage)
	assert.False(t, p.Linked())
}

func TestBuildWithGeometryStage(t *testing.T) {
	drv := gputest.New()
	p := NewProgram(NewDevice(drv), ShaderSources{
		Vertex:   testVertex,
		Geometry: "#version 410 core\nlayout (points) in;\nvoid main() {}\n",
		Fragment: testFragment,
	})
	require.NoError(t, p.Build())
	assert.NotZero(t, drv.Attached(p.ID(), gpu.StageGeometry))
}

func TestCreateUnknownUniformBuffer(t *testing.T) {
	_, p := newTestProgram(t)
	_, err := p.CreateUniformBuffer("Missing")
	assert.ErrorIs(t, err, ErrUnknownUniformBlock)
	assert.Contains(t, err.Error(), "Missing")
}

func TestDeleteReleasesProgram(t *testing.T) {
	drv, p := newTestProgram(t)
	p.Use()

	p.Delete()
	assert.Zero(t, drv.LivePrograms())
	assert.Zero(t, drv.LiveShaders())
	assert.False(t, p.Linked())
	assert.Zero(t, p.ID())
	assert.Empty(t, p.Uniforms())
	assert.Zero(t, p.dev.CurrentProgram())
}
