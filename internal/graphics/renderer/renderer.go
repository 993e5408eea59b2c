package renderer

import (
	"fmt"

	"github.com/GurayOrg/voxigen/internal/gpu"
	"github.com/GurayOrg/voxigen/internal/graphics"
	"github.com/GurayOrg/voxigen/internal/profiling"
)

// ClearColor is the sky colour the frame is cleared to.
var ClearColor = [4]float32{0.53, 0.81, 0.92, 1.0}

// Renderer orchestrates rendering via renderable features
type Renderer struct {
	dev         *graphics.Device
	renderables []Renderable
	camera      *graphics.Camera
	frame       uint64
}

// NewRenderer configures the pipeline state and initializes the renderables in order.
func NewRenderer(dev *graphics.Device, camera *graphics.Camera, rs ...Renderable) (*Renderer, error) {
	dev.Enable(gpu.DepthTest)
	dev.Enable(gpu.CullFace)
	dev.Enable(gpu.Blend)
	dev.BlendFunc(gpu.BlendSrcAlpha, gpu.BlendOneMinusSrcAlpha)

	r := &Renderer{
		dev:         dev,
		renderables: rs,
		camera:      camera,
	}

	for i, rb := range rs {
		if err := rb.Init(); err != nil {
			// release what was already initialized
			for j := i - 1; j >= 0; j-- {
				rs[j].Dispose()
			}
			return nil, fmt.Errorf("init renderable %d (%T): %w", i, rb, err)
		}
	}
	return r, nil
}

// Render executes the main render loop
func (r *Renderer) Render(dt float64) {
	defer profiling.Track("renderer.Render")()

	c := ClearColor
	r.dev.Clear(c[0], c[1], c[2], c[3])

	ctx := RenderContext{
		Camera: r.camera,
		DT:     dt,
		Frame:  r.frame,
	}
	for _, renderable := range r.renderables {
		renderable.Render(ctx)
	}

	// every renderable has seen the new matrices
	r.camera.ClearViewDirty()
	r.frame++
}

// Dispose cleans up all renderables in reverse order
func (r *Renderer) Dispose() {
	for i := len(r.renderables) - 1; i >= 0; i-- {
		r.renderables[i].Dispose()
	}
}

// Camera returns the camera instance
func (r *Renderer) Camera() *graphics.Camera {
	return r.camera
}

// Frame returns the number of frames rendered so far.
func (r *Renderer) Frame() uint64 { return r.frame }

// UpdateViewport updates the viewport and every renderable for a new framebuffer size
func (r *Renderer) UpdateViewport(width, height int) {
	r.dev.Viewport(0, 0, int32(width), int32(height))
	r.camera.SetViewport(width, height)
	for _, renderable := range r.renderables {
		renderable.SetViewport(width, height)
	}
}
