//go:build !debug

package graphics

import (
	"testing"

	"github.com/GurayOrg/voxigen/internal/gpu"
	"github.com/GurayOrg/voxigen/internal/gpu/gputest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMisuseIsDroppedInRelease(t *testing.T) {
	t.Run("invalid stage", func(t *testing.T) {
		drv := gputest.New()
		p := NewProgram(NewDevice(drv), testSources)
		assert.NoError(t, p.AttachShader(gpu.StageInvalid, testVertex))
		assert.NoError(t, p.AttachShader(gpu.StageVertex, ""))
		assert.Zero(t, drv.LiveShaders())
	})

	t.Run("use before link", func(t *testing.T) {
		drv := gputest.New()
		p := NewProgram(NewDevice(drv), testSources)
		p.Use()
		assert.Zero(t, drv.Current)
	})

	t.Run("write while not current", func(t *testing.T) {
		drv, p := newTestProgram(t)
		p.SetUniform(p.UniformHandle("tint"), Vec4{1, 0, 0, 1})
		assert.Empty(t, drv.Uniforms)
	})

	t.Run("type mismatch", func(t *testing.T) {
		drv, p := newTestProgram(t)
		p.Use()
		p.SetUniform(p.UniformHandle("tint"), Float(1))
		assert.Empty(t, drv.Uniforms)
		_, ok := p.Uniform(p.UniformHandle("tint")).Value()
		assert.False(t, ok)
	})

	t.Run("foreign uniform buffer", func(t *testing.T) {
		drv, p := newTestProgram(t)
		other := NewProgram(p.dev, testSources)
		require.NoError(t, other.Build())

		buf, err := other.CreateUniformBuffer("Camera")
		require.NoError(t, err)
		p.UseUniformBuffer(buf)
		assert.Empty(t, drv.BufferBinds)
	})

	t.Run("unknown attribute", func(t *testing.T) {
		_, p := newTestProgram(t)
		_, ok := p.AttributeLocation("missing")
		assert.False(t, ok)
	})
}
