//go:build debug

package chunks

import (
	"fmt"

	"github.com/GurayOrg/voxigen/internal/graphics"
)

// outlinePass draws the bounds of every bound chunk on top of the scene.
type outlinePass struct {
	enabled bool
	stale   bool // camera changed while the pass was off

	program         *graphics.Program
	uProjectionView graphics.UniformHandle
	uLightPos       graphics.UniformHandle
}

func (o *outlinePass) init(dev *graphics.Device) error {
	o.program = graphics.NewProgram(dev, OutlineShaders)
	if err := o.program.Build(); err != nil {
		return fmt.Errorf("outline shader: %w", err)
	}
	o.uProjectionView = o.program.UniformHandle("projectionView")
	o.uLightPos = o.program.UniformHandle("lightPos")
	return nil
}

func (o *outlinePass) draw(p *Pool, cam Camera, dirty bool) {
	o.stale = o.stale || dirty
	if !o.enabled || o.program == nil {
		return
	}
	o.program.Use()
	if o.stale {
		o.stale = false
		o.program.SetUniform(o.uProjectionView, graphics.Mat4(cam.ProjectionView()))
		o.program.SetUniform(o.uLightPos, graphics.Vec3(cam.Position()))
	}
	for _, s := range p.Slots() {
		s.drawOutline()
	}
	p.dev.BindVertexArray(0)
}

func (o *outlinePass) dispose() {
	if o.program != nil {
		o.program.Delete()
		o.program = nil
	}
}
