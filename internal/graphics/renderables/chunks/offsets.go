package chunks

import (
	"github.com/GurayOrg/voxigen/internal/world"

	"github.com/chewxy/math32"
)

// ComputeOffsets returns the chunk offsets, relative to the camera's chunk,
// whose centre lies within radius of the camera chunk's origin. The scan runs
// z outermost and x innermost over [-n, n) per axis so the order is stable for
// a given radius. The zero offset is always present.
func ComputeOffsets(radius float32, size world.Coord) []world.Coord {
	if radius < 0 {
		radius = 0
	}
	dim := [3]float32{float32(size.X), float32(size.Y), float32(size.Z)}
	var n [3]int
	for i, d := range dim {
		n[i] = int(math32.Ceil(radius / d))
	}

	var offsets []world.Coord
	for z := -n[2]; z < n[2]; z++ {
		cz := float32(z)*dim[2] + dim[2]/2
		for y := -n[1]; y < n[1]; y++ {
			cy := float32(y)*dim[1] + dim[1]/2
			for x := -n[0]; x < n[0]; x++ {
				cx := float32(x)*dim[0] + dim[0]/2
				if math32.Sqrt(cx*cx+cy*cy+cz*cz) <= radius {
					offsets = append(offsets, world.Coord{X: x, Y: y, Z: z})
				}
			}
		}
	}
	if len(offsets) == 0 {
		offsets = append(offsets, world.Coord{})
	}
	return offsets
}
