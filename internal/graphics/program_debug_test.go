//go:build debug

package graphics

import (
	"testing"

	"github.com/GurayOrg/voxigen/internal/gpu"
	"github.com/GurayOrg/voxigen/internal/gpu/gputest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMisusePanicsInDebug(t *testing.T) {
	t.Run("invalid stage", func(t *testing.T) {
		p := NewProgram(NewDevice(gputest.New()), testSources)
		assert.PanicsWithValue(t, "graphics: unsupported shader stage 0", func() {
			_ = p.AttachShader(gpu.StageInvalid, testVertex)
		})
	})

	t.Run("use before link", func(t *testing.T) {
		p := NewProgram(NewDevice(gputest.New()), testSources)
		assert.Panics(t, p.Use)
	})

	t.Run("write while not current", func(t *testing.T) {
		_, p := newTestProgram(t)
		h := p.UniformHandle("tint")
		assert.Panics(t, func() { p.SetUniform(h, Vec4{1, 0, 0, 1}) })
	})

	t.Run("type mismatch", func(t *testing.T) {
		_, p := newTestProgram(t)
		p.Use()
		h := p.UniformHandle("tint")
		assert.Panics(t, func() { p.SetUniform(h, Float(1)) })
	})

	t.Run("foreign uniform buffer", func(t *testing.T) {
		_, p := newTestProgram(t)
		other := NewProgram(p.dev, testSources)
		require.NoError(t, other.Build())
		buf, err := other.CreateUniformBuffer("Camera")
		require.NoError(t, err)
		assert.Panics(t, func() { p.UseUniformBuffer(buf) })
	})

	t.Run("dummy writes stay silent", func(t *testing.T) {
		_, p := newTestProgram(t)
		p.Use()
		assert.NotPanics(t, func() { p.SetUniform(DummyUniform, Float(1)) })
	})
}
