package graphics

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func float32At(b []byte, offset int) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(b[offset:]))
}

func TestUniformBufferPacksStd140(t *testing.T) {
	drv, p := newTestProgram(t)

	buf, err := p.CreateUniformBuffer("Camera")
	require.NoError(t, err)
	t.Cleanup(buf.Delete)

	assert.Equal(t, "Camera", buf.Name())
	assert.Equal(t, uint32(1), buf.Binding())
	assert.Same(t, p, buf.Program())
	require.Len(t, drv.Buffer(buf.Buffer()), 80)

	proj := mgl32.Perspective(1, 1.5, 0.1, 100)
	require.NoError(t, buf.Set("projection", Mat4(proj)))
	require.NoError(t, buf.Set("eye", Vec3{1, 2, 3}))
	require.NoError(t, buf.Set("time", Float(0.5)))

	drv.ResetFrame()
	buf.Upload()
	assert.Equal(t, 1, drv.Uploads)
	buf.Upload()
	assert.Equal(t, 1, drv.Uploads, "clean buffer is not uploaded again")

	data := drv.Buffer(buf.Buffer())
	for i, f := range proj {
		assert.Equal(t, f, float32At(data, i*4))
	}
	assert.Equal(t, float32(1), float32At(data, 64))
	assert.Equal(t, float32(2), float32At(data, 68))
	assert.Equal(t, float32(3), float32At(data, 72))
	assert.Equal(t, float32(0.5), float32At(data, 76))
}

func TestUniformBufferInstanceBlock(t *testing.T) {
	drv, p := newTestProgram(t)

	buf, err := p.CreateUniformBuffer("Light")
	require.NoError(t, err)
	require.NoError(t, buf.Set("Light.count", Int(-3)))
	buf.Upload()

	data := drv.Buffer(buf.Buffer())
	require.Len(t, data, 16)
	assert.Equal(t, int32(-3), int32(binary.LittleEndian.Uint32(data[12:])))
}

func TestUniformBufferSetErrors(t *testing.T) {
	_, p := newTestProgram(t)
	buf, err := p.CreateUniformBuffer("Camera")
	require.NoError(t, err)

	assert.ErrorIs(t, buf.Set("missing", Float(1)), ErrUnknownBlockMember)
	assert.ErrorIs(t, buf.Set("eye", Vec4{}), ErrUniformTypeMismatch)
	assert.ErrorIs(t, buf.Set("eye", nil), ErrUniformTypeMismatch)
}

func TestUseUniformBufferBinds(t *testing.T) {
	drv, p := newTestProgram(t)
	buf, err := p.CreateUniformBuffer("Light")
	require.NoError(t, err)
	require.NoError(t, buf.Set("Light.direction", Vec3{0, -1, 0}))

	drv.ResetFrame()
	p.UseUniformBuffer(buf)
	assert.Equal(t, buf.Buffer(), drv.BufferBinds[buf.Binding()])
	assert.Equal(t, 1, drv.Uploads, "bind flushes pending writes")

	buf.Delete()
	assert.Zero(t, buf.Buffer())
	assert.NotPanics(t, buf.Bind)
}
