//go:build !debug

package chunks

import "github.com/GurayOrg/voxigen/internal/graphics"

// outlinePass is compiled out of release builds; only the toggle remains.
type outlinePass struct {
	enabled bool
}

func (o *outlinePass) init(*graphics.Device) error { return nil }
func (o *outlinePass) draw(*Pool, Camera, bool)    {}
func (o *outlinePass) dispose()                    {}
