// Package chunks renders the voxel world as instanced cubes, one render slot
// per chunk in view.
package chunks

import (
	"fmt"
	"log/slog"

	"github.com/GurayOrg/voxigen/internal/buildflags"
	"github.com/GurayOrg/voxigen/internal/graphics"
	"github.com/GurayOrg/voxigen/internal/graphics/renderer"
	"github.com/GurayOrg/voxigen/internal/profiling"
	"github.com/GurayOrg/voxigen/internal/world"

	"github.com/go-gl/mathgl/mgl32"
)

// DefaultUpdateBatchSize is how many chunk refreshes are applied per frame.
const DefaultUpdateBatchSize = 10

// LightColor is the colour of the camera light.
var LightColor = mgl32.Vec3{1, 1, 1}

// Camera is what a frame needs to know about the viewer.
type Camera interface {
	Position() mgl32.Vec3
	IsViewDirty() bool
	ProjectionView() mgl32.Mat4
}

// FrameStats reports what one frame did.
type FrameStats struct {
	Reconcile ReconcileStats
	Consumed  int // change notifications taken from the queue
	Refreshed int // slots whose instance data was rebuilt
	Draws     int
}

// Chunks implements the renderer.Renderable interface for the voxel world.
type Chunks struct {
	dev   *graphics.Device
	world World

	program         *graphics.Program
	uProjectionView graphics.UniformHandle
	uLightPos       graphics.UniformHandle
	uLightColor     graphics.UniformHandle

	outline outlinePass

	pool      *Pool
	pending   []world.ChunkID
	batchSize int
	radius    float32
	last      FrameStats
}

// NewChunks creates the chunk renderable. GPU resources are created by Init.
func NewChunks(dev *graphics.Device, w World, viewRadius float32) *Chunks {
	return &Chunks{
		dev:       dev,
		world:     w,
		batchSize: DefaultUpdateBatchSize,
		radius:    viewRadius,
	}
}

// Init builds the shader programs and the slot pool.
func (c *Chunks) Init() error {
	c.program = graphics.NewProgram(c.dev, MainShaders)
	if err := c.program.Build(); err != nil {
		return fmt.Errorf("chunk shader: %w", err)
	}
	c.uProjectionView = c.program.UniformHandle("projectionView")
	c.uLightPos = c.program.UniformHandle("lightPos")
	c.uLightColor = c.program.UniformHandle("lightColor")

	c.program.Use()
	c.program.SetUniform(c.uLightColor, graphics.Vec3(LightColor))

	if err := c.outline.init(c.dev); err != nil {
		c.program.Delete()
		return err
	}

	c.pool = NewPool(c.dev, c.world, buildflags.Debug)
	c.pool.SetViewRadius(c.radius)
	slog.Debug("chunk renderer ready",
		"radius", c.radius,
		"offsets", len(c.pool.Offsets()),
		"outlines", buildflags.Debug)
	return nil
}

// Render implements renderer.Renderable.
func (c *Chunks) Render(ctx renderer.RenderContext) {
	c.Frame(ctx.Camera)
}

// Frame reconciles the slot pool against the camera, applies queued chunk
// refreshes and draws every slot that has data.
func (c *Chunks) Frame(cam Camera) FrameStats {
	defer profiling.Track("chunks.Frame")()

	var stats FrameStats
	cameraChunk := world.ChunkCoordAt(cam.Position(), c.pool.ChunkSize())
	stats.Reconcile = c.pool.Reconcile(cameraChunk)

	c.program.Use()
	dirty := cam.IsViewDirty()
	if dirty {
		c.program.SetUniform(c.uProjectionView, graphics.Mat4(cam.ProjectionView()))
		c.program.SetUniform(c.uLightPos, graphics.Vec3(cam.Position()))
	}

	stats.Consumed, stats.Refreshed = c.applyUpdates()

	for _, s := range c.pool.Slots() {
		if s.state == SlotInvalid || s.count == 0 {
			continue
		}
		s.draw()
		stats.Draws++
	}
	c.dev.BindVertexArray(0)

	c.outline.draw(c.pool, cam, dirty)

	c.last = stats
	return stats
}

// applyUpdates queues the world's change notifications behind any left over
// from earlier frames and applies at most batchSize of them.
func (c *Chunks) applyUpdates() (consumed, refreshed int) {
	c.pending = append(c.pending, c.world.UpdatedChunks()...)

	n := min(c.batchSize, len(c.pending))
	for _, id := range c.pending[:n] {
		if c.pool.refresh(id) {
			refreshed++
		}
	}
	c.pending = c.pending[:copy(c.pending, c.pending[n:])]
	return n, refreshed
}

// SetViewRadius changes the radius; slots follow on the next frame.
func (c *Chunks) SetViewRadius(r float32) {
	c.radius = r
	if c.pool != nil {
		c.pool.SetViewRadius(r)
	}
}

// SetUpdateBatchSize changes how many refreshes are applied per frame.
func (c *Chunks) SetUpdateBatchSize(n int) {
	if n < 1 {
		n = 1
	}
	c.batchSize = n
}

// SetOutlineChunks toggles the chunk bounds overlay. It has no effect unless
// built with the debug tag.
func (c *Chunks) SetOutlineChunks(on bool) { c.outline.enabled = on }

func (c *Chunks) OutlineChunks() bool   { return c.outline.enabled }
func (c *Chunks) PendingUpdates() int   { return len(c.pending) }
func (c *Chunks) Pool() *Pool           { return c.pool }
func (c *Chunks) LastFrame() FrameStats { return c.last }
func (c *Chunks) UpdateBatchSize() int  { return c.batchSize }

// SetViewport implements renderer.Renderable; the camera carries the projection.
func (c *Chunks) SetViewport(width, height int) {}

// Dispose releases the programs and every slot.
func (c *Chunks) Dispose() {
	if c.pool != nil {
		c.pool.Dispose()
		c.pool = nil
	}
	c.outline.dispose()
	if c.program != nil {
		c.program.Delete()
		c.program = nil
	}
	c.pending = nil
}
