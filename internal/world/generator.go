package world

import (
	"math"
)

// Generator fills chunks from a value-noise heightmap.
type Generator struct {
	seed        int64
	scale       float64
	baseHeight  int
	amp         float64
	octaves     int
	persistence float64
	lacunarity  float64
	seaLevel    int
}

// NewGenerator creates a new generator with default settings.
func NewGenerator(seed int64) *Generator {
	return &Generator{
		seed:        seed,
		scale:       1.0 / 96.0,
		baseHeight:  8,
		amp:         40,
		octaves:     4,
		persistence: 0.5,
		lacunarity:  2.0,
		seaLevel:    14,
	}
}

// HeightAt computes the surface height (cell Y) at world X,Z.
func (g *Generator) HeightAt(worldX, worldZ int) int {
	x := float64(worldX) * g.scale
	z := float64(worldZ) * g.scale
	n := octaveNoise2D(x, z, g.seed, g.octaves, g.persistence, g.lacunarity)
	height := float64(g.baseHeight) + n*g.amp
	if height < 0 {
		height = 0
	}
	return int(math.Floor(height))
}

func (g *Generator) cellAt(worldY, height int) Cell {
	switch {
	case worldY == 0:
		return CellBedrock
	case worldY > height:
		if worldY <= g.seaLevel {
			return CellWater
		}
		return CellAir
	case worldY == height:
		if height <= g.seaLevel+1 {
			return CellSand
		}
		return CellGrass
	case worldY >= height-3:
		return CellDirt
	}
	return CellStone
}

// PopulateChunk fills a chunk using the heightmap. Nothing is generated below y=0.
func (g *Generator) PopulateChunk(c *Chunk) {
	size := c.Size()
	base := c.Coord()
	baseY := base.Y * size.Y
	if baseY+size.Y <= 0 {
		return
	}
	for lx := range size.X {
		for lz := range size.Z {
			height := g.HeightAt(base.X*size.X+lx, base.Z*size.Z+lz)
			top := max(height, g.seaLevel) - baseY
			if top < 0 {
				continue
			}
			top = min(top, size.Y-1)
			for ly := max(0, -baseY); ly <= top; ly++ {
				c.SetCell(lx, ly, lz, g.cellAt(baseY+ly, height))
			}
		}
	}
}
