package renderer

import (
	"errors"
	"testing"

	"github.com/GurayOrg/voxigen/internal/gpu"
	"github.com/GurayOrg/voxigen/internal/gpu/gputest"
	"github.com/GurayOrg/voxigen/internal/graphics"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	name    string
	log     *[]string
	initErr error

	frames   []RenderContext
	dirty    []bool
	viewport [2]int
}

func (r *recorder) Init() error {
	*r.log = append(*r.log, "init "+r.name)
	return r.initErr
}

func (r *recorder) Render(ctx RenderContext) {
	*r.log = append(*r.log, "render "+r.name)
	r.frames = append(r.frames, ctx)
	r.dirty = append(r.dirty, ctx.Camera.IsViewDirty())
}

func (r *recorder) Dispose() { *r.log = append(*r.log, "dispose "+r.name) }

func (r *recorder) SetViewport(width, height int) { r.viewport = [2]int{width, height} }

func TestRendererLifecycle(t *testing.T) {
	var log []string
	a := &recorder{name: "a", log: &log}
	b := &recorder{name: "b", log: &log}

	drv := gputest.New()
	cam := graphics.NewCamera(800, 600)
	r, err := NewRenderer(graphics.NewDevice(drv), cam, a, b)
	require.NoError(t, err)
	assert.True(t, drv.Enabled[gpu.DepthTest])
	assert.True(t, drv.Enabled[gpu.CullFace])
	assert.True(t, drv.Enabled[gpu.Blend])

	r.Render(0.5)
	r.Render(0.25)
	assert.Equal(t, 2, drv.Clears)
	require.Len(t, b.frames, 2)
	assert.Equal(t, uint64(1), b.frames[1].Frame)
	assert.Equal(t, 0.25, b.frames[1].DT)
	assert.Same(t, cam, b.frames[0].Camera)
	assert.False(t, cam.IsViewDirty())

	r.UpdateViewport(1024, 512)
	assert.Equal(t, [2]int{1024, 512}, a.viewport)
	assert.Equal(t, float32(2), cam.AspectRatio)

	r.Dispose()
	assert.Equal(t, []string{
		"init a", "init b",
		"render a", "render b",
		"render a", "render b",
		"dispose b", "dispose a",
	}, log)
}

func TestRendererInitFailure(t *testing.T) {
	var log []string
	boom := errors.New("boom")
	a := &recorder{name: "a", log: &log}
	b := &recorder{name: "b", log: &log, initErr: boom}
	c := &recorder{name: "c", log: &log}

	_, err := NewRenderer(graphics.NewDevice(gputest.New()), graphics.NewCamera(800, 600), a, b, c)
	require.ErrorIs(t, err, boom)
	assert.Equal(t, []string{"init a", "init b", "dispose a"}, log)
}

func TestRenderablesSeeDirtyCamera(t *testing.T) {
	var log []string
	a := &recorder{name: "a", log: &log}
	b := &recorder{name: "b", log: &log}
	cam := graphics.NewCamera(800, 600)
	r, err := NewRenderer(graphics.NewDevice(gputest.New()), cam, a, b)
	require.NoError(t, err)

	r.Render(0)
	r.Render(0)
	cam.Rotate(10, 0)
	r.Render(0)

	assert.Equal(t, []bool{true, false, true}, a.dirty)
	assert.Equal(t, a.dirty, b.dirty)
	assert.False(t, cam.IsViewDirty())
}
