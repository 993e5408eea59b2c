package world

import (
	"slices"
	"testing"
)

var testSize = Coord{8, 8, 8}

func TestStoreChunkIsLazy(t *testing.T) {
	s := NewStore(testSize, nil)
	id := Hash(Coord{1, 0, -1})

	if c := s.Chunk(id); c != nil {
		t.Fatalf("Chunk before generation = %v, want nil", c)
	}
	// asking again does not queue twice
	s.Chunk(id)
	if got := s.Pending(); got != 1 {
		t.Fatalf("Pending() = %d, want 1", got)
	}

	if n := s.GeneratePending(10); n != 1 {
		t.Fatalf("GeneratePending() = %d, want 1", n)
	}
	c := s.Chunk(id)
	if c == nil {
		t.Fatal("Chunk after generation is nil")
	}
	if c.Coord() != (Coord{1, 0, -1}) {
		t.Errorf("Coord() = %v", c.Coord())
	}
	if s.Pending() != 0 || s.Len() != 1 {
		t.Errorf("Pending() = %d, Len() = %d", s.Pending(), s.Len())
	}
}

func TestStoreGeneratePendingBudget(t *testing.T) {
	s := NewStore(testSize, nil)
	var ids []ChunkID
	for x := range 5 {
		id := Hash(Coord{x, 0, 0})
		ids = append(ids, id)
		s.Chunk(id)
	}

	if n := s.GeneratePending(2); n != 2 {
		t.Fatalf("GeneratePending(2) = %d", n)
	}
	if got := s.UpdatedChunks(); !slices.Equal(got, ids[:2]) {
		t.Errorf("UpdatedChunks() = %v, want %v", got, ids[:2])
	}
	s.GeneratePending(10)
	if got := s.UpdatedChunks(); !slices.Equal(got, ids[2:]) {
		t.Errorf("UpdatedChunks() = %v, want %v", got, ids[2:])
	}
	if got := s.UpdatedChunks(); got != nil {
		t.Errorf("second drain = %v, want nil", got)
	}
}

func TestStoreSetCell(t *testing.T) {
	s := NewStore(testSize, nil)
	s.Generate(Coord{-1, 0, 0})
	s.UpdatedChunks()

	if !s.SetCell(-1, 2, 3, CellStone) {
		t.Fatal("SetCell on generated chunk returned false")
	}
	if got := s.Cell(-1, 2, 3); got != CellStone {
		t.Errorf("Cell() = %v, want stone", got)
	}
	c := s.Chunk(Hash(Coord{-1, 0, 0}))
	if got := c.Cell(7, 2, 3); got != CellStone {
		t.Errorf("local Cell(7,2,3) = %v, want stone", got)
	}

	// same value again is not a change
	if s.SetCell(-1, 2, 3, CellStone) {
		t.Error("SetCell with unchanged value returned true")
	}
	s.SetCell(-2, 2, 3, CellDirt)
	if got := s.UpdatedChunks(); len(got) != 1 || got[0] != c.ID() {
		t.Errorf("UpdatedChunks() = %v, want one entry for %v", got, c.Coord())
	}

	if s.SetCell(100, 0, 0, CellStone) {
		t.Error("SetCell on missing chunk returned true")
	}
}

func TestStoreUpdatedChunksDedup(t *testing.T) {
	s := NewStore(testSize, nil)
	a := s.Generate(Coord{0, 0, 0})
	b := s.Generate(Coord{1, 0, 0})
	s.SetCell(0, 0, 0, CellSand)
	s.SetCell(1, 1, 1, CellSand)

	got := s.UpdatedChunks()
	want := []ChunkID{a.ID(), b.ID()}
	if !slices.Equal(got, want) {
		t.Errorf("UpdatedChunks() = %v, want %v", got, want)
	}

	// after a drain the same chunk is reported again
	s.SetCell(2, 2, 2, CellSand)
	if got := s.UpdatedChunks(); !slices.Equal(got, []ChunkID{a.ID()}) {
		t.Errorf("UpdatedChunks() = %v", got)
	}
}

func TestStoreEvict(t *testing.T) {
	s := NewStore(testSize, nil)
	s.Generate(Coord{0, 0, 0})
	s.Generate(Coord{2, 0, 0})
	s.Generate(Coord{0, -3, 0})
	s.Chunk(Hash(Coord{5, 5, 5}))

	if n := s.Evict(Coord{}, 2); n != 1 {
		t.Fatalf("Evict() = %d, want 1", n)
	}
	if s.Len() != 2 {
		t.Errorf("Len() = %d, want 2", s.Len())
	}
	if s.Pending() != 0 {
		t.Errorf("Pending() = %d, want 0", s.Pending())
	}
	if s.Chunk(Hash(Coord{0, -3, 0})) != nil {
		t.Error("evicted chunk still present")
	}
}

func TestChunkSolidCount(t *testing.T) {
	c := NewChunk(Coord{}, testSize)
	c.SetCell(0, 0, 0, CellStone)
	c.SetCell(1, 0, 0, CellDirt)
	c.SetCell(1, 0, 0, CellGrass)
	c.SetCell(9, 0, 0, CellGrass)

	if c.SolidCount() != 2 {
		t.Errorf("SolidCount() = %d, want 2", c.SolidCount())
	}
	var seen []Cell
	c.ForEachSolid(func(x, y, z int, cell Cell) { seen = append(seen, cell) })
	if !slices.Equal(seen, []Cell{CellStone, CellGrass}) {
		t.Errorf("ForEachSolid visited %v", seen)
	}

	c.SetCell(0, 0, 0, CellAir)
	if c.SolidCount() != 1 {
		t.Errorf("SolidCount() = %d, want 1", c.SolidCount())
	}
}

func TestGeneratorDeterministic(t *testing.T) {
	a, b := NewGenerator(7), NewGenerator(7)
	for x := -20; x < 20; x += 3 {
		for z := -20; z < 20; z += 5 {
			if a.HeightAt(x, z) != b.HeightAt(x, z) {
				t.Fatalf("HeightAt(%d, %d) differs between generators", x, z)
			}
		}
	}
}

func TestGeneratorPopulatesColumn(t *testing.T) {
	g := NewGenerator(3)
	size := Coord{4, 128, 4}
	c := NewChunk(Coord{}, size)
	g.PopulateChunk(c)

	if got := c.Cell(0, 0, 0); got != CellBedrock {
		t.Errorf("Cell(0,0,0) = %v, want bedrock", got)
	}
	h := g.HeightAt(0, 0)
	if h < size.Y-1 {
		if got := c.Cell(0, h+1, 0); got != CellAir && got != CellWater {
			t.Errorf("above surface = %v", got)
		}
	}
	if c.SolidCount() == 0 {
		t.Error("populated chunk is empty")
	}

	below := NewChunk(Coord{0, -1, 0}, size)
	g.PopulateChunk(below)
	if below.SolidCount() != 0 {
		t.Errorf("chunk below y=0 has %d solid cells", below.SolidCount())
	}
}
