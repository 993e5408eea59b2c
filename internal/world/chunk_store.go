package world

import (
	"sync"

	"github.com/GurayOrg/voxigen/internal/profiling"
)

// Store owns every generated chunk. Chunks are generated lazily: asking for a
// chunk that does not exist yet queues it and returns nil, and GeneratePending
// fills queued chunks in request order. Each generated or edited chunk is
// reported once through UpdatedChunks.
type Store struct {
	size Coord
	gen  *Generator

	mu        sync.RWMutex
	chunks    map[ChunkID]*Chunk
	requested map[ChunkID]struct{}
	queue     []ChunkID
	updated   []ChunkID
	queued    map[ChunkID]struct{}
}

// NewStore creates an empty store of chunks of the given size.
func NewStore(size Coord, gen *Generator) *Store {
	return &Store{
		size:      size,
		gen:       gen,
		chunks:    make(map[ChunkID]*Chunk),
		requested: make(map[ChunkID]struct{}),
		queued:    make(map[ChunkID]struct{}),
	}
}

func (s *Store) Hash(c Coord) ChunkID { return Hash(c) }
func (s *Store) ChunkSize() Coord     { return s.size }

// Len returns the number of generated chunks.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.chunks)
}

// Chunk returns the chunk for id. A chunk that has not been generated yet is
// queued for generation and nil is returned.
func (s *Store) Chunk(id ChunkID) *Chunk {
	s.mu.RLock()
	ch, ok := s.chunks[id]
	s.mu.RUnlock()
	if ok {
		return ch
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if ch, ok := s.chunks[id]; ok {
		return ch
	}
	if _, ok := s.requested[id]; !ok {
		s.requested[id] = struct{}{}
		s.queue = append(s.queue, id)
	}
	return nil
}

// Pending returns the number of chunks waiting for generation.
func (s *Store) Pending() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.queue)
}

// GeneratePending generates up to budget queued chunks, oldest request first,
// and returns how many were generated.
func (s *Store) GeneratePending(budget int) int {
	defer profiling.Track("world.GeneratePending")()
	s.mu.Lock()
	n := min(budget, len(s.queue))
	ids := append([]ChunkID(nil), s.queue[:n]...)
	s.queue = s.queue[n:]
	s.mu.Unlock()

	for _, id := range ids {
		s.Generate(id.Coord())
	}
	return n
}

// Generate synchronously generates the chunk at c if it does not exist yet.
func (s *Store) Generate(c Coord) *Chunk {
	id := Hash(c)
	s.mu.RLock()
	ch, ok := s.chunks[id]
	s.mu.RUnlock()
	if ok {
		return ch
	}

	ch = NewChunk(c, s.size)
	if s.gen != nil {
		s.gen.PopulateChunk(ch)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	// Double-check: another caller may have generated it meanwhile
	if existing, ok := s.chunks[id]; ok {
		return existing
	}
	s.chunks[id] = ch
	delete(s.requested, id)
	s.markUpdatedLocked(id)
	return ch
}

// SetCell edits the cell at world cell coordinates. Edits to chunks that are
// not generated are ignored.
func (s *Store) SetCell(x, y, z int, cell Cell) bool {
	c := Coord{floorDiv(x, s.size.X), floorDiv(y, s.size.Y), floorDiv(z, s.size.Z)}
	id := Hash(c)

	s.mu.Lock()
	defer s.mu.Unlock()
	ch, ok := s.chunks[id]
	if !ok {
		return false
	}
	if !ch.SetCell(mod(x, s.size.X), mod(y, s.size.Y), mod(z, s.size.Z), cell) {
		return false
	}
	s.markUpdatedLocked(id)
	return true
}

// Cell returns the cell at world cell coordinates.
func (s *Store) Cell(x, y, z int) Cell {
	c := Coord{floorDiv(x, s.size.X), floorDiv(y, s.size.Y), floorDiv(z, s.size.Z)}
	s.mu.RLock()
	ch, ok := s.chunks[Hash(c)]
	s.mu.RUnlock()
	if !ok {
		return CellAir
	}
	return ch.Cell(mod(x, s.size.X), mod(y, s.size.Y), mod(z, s.size.Z))
}

func (s *Store) markUpdatedLocked(id ChunkID) {
	if _, ok := s.queued[id]; ok {
		return
	}
	s.queued[id] = struct{}{}
	s.updated = append(s.updated, id)
}

// UpdatedChunks drains the queue of chunks generated or edited since the last
// call, in the order they changed.
func (s *Store) UpdatedChunks() []ChunkID {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.updated) == 0 {
		return nil
	}
	out := s.updated
	s.updated = nil
	clear(s.queued)
	return out
}

// Evict removes chunks further than radius chunks (per axis) from center, and
// drops generation requests for them. Returns the number of chunks removed.
func (s *Store) Evict(center Coord, radius int) int {
	defer profiling.Track("world.Evict")()
	far := func(c Coord) bool {
		d := c.Sub(center)
		return abs(d.X) > radius || abs(d.Y) > radius || abs(d.Z) > radius
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for id := range s.chunks {
		if far(id.Coord()) {
			delete(s.chunks, id)
			removed++
		}
	}
	kept := s.queue[:0]
	for _, id := range s.queue {
		if far(id.Coord()) {
			delete(s.requested, id)
			continue
		}
		kept = append(kept, id)
	}
	s.queue = kept
	return removed
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
