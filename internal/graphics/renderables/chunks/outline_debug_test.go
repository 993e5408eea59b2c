//go:build debug

package chunks

import (
	"testing"

	"github.com/GurayOrg/voxigen/internal/graphics"
	"github.com/GurayOrg/voxigen/internal/world"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutlinePassDrawsBoundChunks(t *testing.T) {
	w := newFakeWorld()
	w.missing[world.Hash(world.Coord{X: -1, Y: -1, Z: -1})] = true
	drv, c := newTestChunks(t, w, 30)
	cam := graphics.NewCamera(800, 600)

	c.Frame(cam)
	assert.Empty(t, drv.DrawsFor(c.outline.program.ID()), "outline toggle is off")

	c.SetOutlineChunks(true)
	drv.ResetFrame()
	c.Frame(cam)

	outlines := drv.DrawsFor(c.outline.program.ID())
	// pending chunks still get their bounds drawn
	require.Len(t, outlines, 32)
	pv := c.outline.program.Uniform(c.outline.uProjectionView).Location()
	assert.NotEmpty(t, drv.WritesTo(c.outline.program.ID(), pv))
}

func TestOutlineOriginFollowsChunk(t *testing.T) {
	w := newFakeWorld()
	drv, c := newTestChunks(t, w, 0)
	cam := graphics.NewCamera(800, 600)
	cam.SetPosition([3]float32{20, -1, 0})

	c.Frame(cam)
	s := c.Pool().Slots()[0]
	origin := bytesToFloats(drv.Buffer(s.outlineInstances))
	assert.Equal(t, []float32{16, -16, 0, 0}, origin)
}
