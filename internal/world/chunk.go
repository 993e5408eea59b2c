package world

import "github.com/go-gl/mathgl/mgl32"

// Cell is the content of one voxel. The zero value is empty.
type Cell uint8

const (
	CellAir Cell = iota
	CellBedrock
	CellStone
	CellDirt
	CellGrass
	CellSand
	CellWater
)

// Chunk is a dense block of cells addressed by local coordinates.
type Chunk struct {
	coord Coord
	size  Coord
	cells []Cell
	solid int
}

// NewChunk creates an empty chunk at the given chunk coordinate.
func NewChunk(coord, size Coord) *Chunk {
	return &Chunk{
		coord: coord,
		size:  size,
		cells: make([]Cell, size.X*size.Y*size.Z),
	}
}

func (c *Chunk) Coord() Coord    { return c.coord }
func (c *Chunk) Size() Coord     { return c.size }
func (c *Chunk) ID() ChunkID     { return Hash(c.coord) }
func (c *Chunk) SolidCount() int { return c.solid }

// Origin returns the world position of the chunk's minimum corner.
func (c *Chunk) Origin() mgl32.Vec3 {
	return mgl32.Vec3{
		float32(c.coord.X * c.size.X),
		float32(c.coord.Y * c.size.Y),
		float32(c.coord.Z * c.size.Z),
	}
}

func (c *Chunk) index(x, y, z int) (int, bool) {
	if x < 0 || x >= c.size.X || y < 0 || y >= c.size.Y || z < 0 || z >= c.size.Z {
		return 0, false
	}
	return (z*c.size.Y+y)*c.size.X + x, true
}

// Cell returns the cell at local coordinates; out of range reads are empty.
func (c *Chunk) Cell(x, y, z int) Cell {
	i, ok := c.index(x, y, z)
	if !ok {
		return CellAir
	}
	return c.cells[i]
}

// SetCell stores a cell and reports whether the chunk changed.
func (c *Chunk) SetCell(x, y, z int, cell Cell) bool {
	i, ok := c.index(x, y, z)
	if !ok || c.cells[i] == cell {
		return false
	}
	switch {
	case c.cells[i] == CellAir:
		c.solid++
	case cell == CellAir:
		c.solid--
	}
	c.cells[i] = cell
	return true
}

// ForEachSolid calls fn for every non-empty cell in x-fastest order.
func (c *Chunk) ForEachSolid(fn func(x, y, z int, cell Cell)) {
	if c.solid == 0 {
		return
	}
	i := 0
	for z := 0; z < c.size.Z; z++ {
		for y := 0; y < c.size.Y; y++ {
			for x := 0; x < c.size.X; x++ {
				if cell := c.cells[i]; cell != CellAir {
					fn(x, y, z, cell)
				}
				i++
			}
		}
	}
}
