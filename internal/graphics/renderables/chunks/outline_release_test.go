//go:build !debug

package chunks

import (
	"testing"

	"github.com/GurayOrg/voxigen/internal/graphics"

	"github.com/stretchr/testify/assert"
)

func TestOutlinePassCompiledOut(t *testing.T) {
	drv, c := newTestChunks(t, newFakeWorld(), 30)
	c.SetOutlineChunks(true)

	c.Frame(graphics.NewCamera(800, 600))

	assert.Equal(t, 1, drv.LivePrograms())
	assert.Len(t, drv.Draws, len(drv.DrawsFor(c.program.ID())))
	for _, s := range c.Pool().Slots() {
		assert.Zero(t, s.outlineVAO)
	}
}
