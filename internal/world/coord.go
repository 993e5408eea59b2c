package world

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Coord is an integer chunk coordinate, or an offset between two of them.
type Coord struct {
	X, Y, Z int
}

func (c Coord) Add(o Coord) Coord { return Coord{c.X + o.X, c.Y + o.Y, c.Z + o.Z} }
func (c Coord) Sub(o Coord) Coord { return Coord{c.X - o.X, c.Y - o.Y, c.Z - o.Z} }

// Vec3 returns c as a float vector.
func (c Coord) Vec3() mgl32.Vec3 {
	return mgl32.Vec3{float32(c.X), float32(c.Y), float32(c.Z)}
}

// ChunkID identifies a chunk. It is a reversible packing of the chunk
// coordinate, so it is unique per chunk and never changes.
type ChunkID uint64

const (
	hashBits = 21
	hashMask = 1<<hashBits - 1
)

// Hash packs a chunk coordinate into a ChunkID. Each axis keeps 21 bits, which
// covers ±1,048,575 chunks.
func Hash(c Coord) ChunkID {
	return ChunkID(uint64(c.X)&hashMask |
		(uint64(c.Y)&hashMask)<<hashBits |
		(uint64(c.Z)&hashMask)<<(2*hashBits))
}

// Coord unpacks the chunk coordinate of id.
func (id ChunkID) Coord() Coord {
	unpack := func(v uint64) int {
		v &= hashMask
		if v&(1<<(hashBits-1)) != 0 {
			return int(v) - 1<<hashBits
		}
		return int(v)
	}
	return Coord{
		X: unpack(uint64(id)),
		Y: unpack(uint64(id) >> hashBits),
		Z: unpack(uint64(id) >> (2 * hashBits)),
	}
}

// ChunkCoordAt returns the coordinate of the chunk containing world position pos.
func ChunkCoordAt(pos mgl32.Vec3, size Coord) Coord {
	return Coord{
		X: int(math32.Floor(pos.X() / float32(size.X))),
		Y: int(math32.Floor(pos.Y() / float32(size.Y))),
		Z: int(math32.Floor(pos.Z() / float32(size.Z))),
	}
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func mod(a, b int) int {
	m := a % b
	if m < 0 {
		m += b
	}
	return m
}
