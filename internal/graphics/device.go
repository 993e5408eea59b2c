package graphics

import "github.com/GurayOrg/voxigen/internal/gpu"

// Device wraps a gpu.Driver with the little state the graphics layer needs to
// validate calls, such as which program is current.
type Device struct {
	gpu.Driver
	current uint32
}

// NewDevice creates a Device issuing calls through d.
func NewDevice(d gpu.Driver) *Device {
	return &Device{Driver: d}
}

// UseProgram binds a program and remembers it as current.
func (d *Device) UseProgram(program uint32) {
	d.Driver.UseProgram(program)
	d.current = program
}

// CurrentProgram returns the program bound by the last UseProgram call.
func (d *Device) CurrentProgram() uint32 {
	return d.current
}

// DeleteProgram deletes a program, clearing the current binding if it was bound.
func (d *Device) DeleteProgram(program uint32) {
	d.Driver.DeleteProgram(program)
	if d.current == program {
		d.current = 0
	}
}
