package chunks

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/GurayOrg/voxigen/internal/gpu/gputest"
	"github.com/GurayOrg/voxigen/internal/graphics"
	"github.com/GurayOrg/voxigen/internal/world"

	"github.com/stretchr/testify/require"
)

var testChunkSize = world.Coord{X: 16, Y: 16, Z: 16}

// fakeWorld hands out a chunk with a single stone cell for every id unless
// the id is marked missing.
type fakeWorld struct {
	size     world.Coord
	chunks   map[world.ChunkID]*world.Chunk
	missing  map[world.ChunkID]bool
	updates  []world.ChunkID
	requests map[world.ChunkID]int
}

func newFakeWorld() *fakeWorld {
	return &fakeWorld{
		size:     testChunkSize,
		chunks:   make(map[world.ChunkID]*world.Chunk),
		missing:  make(map[world.ChunkID]bool),
		requests: make(map[world.ChunkID]int),
	}
}

func (w *fakeWorld) Hash(c world.Coord) world.ChunkID { return world.Hash(c) }
func (w *fakeWorld) ChunkSize() world.Coord           { return w.size }

func (w *fakeWorld) Chunk(id world.ChunkID) *world.Chunk {
	w.requests[id]++
	if w.missing[id] {
		return nil
	}
	c, ok := w.chunks[id]
	if !ok {
		c = world.NewChunk(id.Coord(), w.size)
		c.SetCell(0, 0, 0, world.CellStone)
		w.chunks[id] = c
	}
	return c
}

func (w *fakeWorld) UpdatedChunks() []world.ChunkID {
	out := w.updates
	w.updates = nil
	return out
}

func newTestPool(t *testing.T, w World, radius float32) (*gputest.Driver, *Pool) {
	t.Helper()
	drv := gputest.New()
	p := NewPool(graphics.NewDevice(drv), w, false)
	p.SetViewRadius(radius)
	t.Cleanup(p.Dispose)
	return drv, p
}

// requiredIDs returns the chunk ids the pool must cover around cam.
func requiredIDs(p *Pool, cam world.Coord) map[world.ChunkID]bool {
	ids := make(map[world.ChunkID]bool, len(p.Offsets()))
	for _, off := range p.Offsets() {
		ids[world.Hash(cam.Add(off))] = true
	}
	return ids
}

// requireConsistent checks that every required id has its own bound slot and
// nothing else is assigned.
func requireConsistent(t *testing.T, p *Pool, cam world.Coord) {
	t.Helper()
	required := requiredIDs(p, cam)
	require.Equal(t, len(required), p.Assigned())

	used := make(map[*Slot]world.ChunkID)
	for id := range required {
		s, ok := p.SlotFor(id)
		require.True(t, ok, "no slot for %v", id.Coord())
		require.NotEqual(t, SlotInvalid, s.State())
		got, bound := s.ID()
		require.True(t, bound)
		require.Equal(t, id, got)
		prev, dup := used[s]
		require.False(t, dup, "slot shared by %v and %v", prev.Coord(), id.Coord())
		used[s] = id
	}
	for _, s := range p.Slots() {
		if _, ok := used[s]; !ok {
			require.Equal(t, SlotInvalid, s.State())
		}
	}
}

func bytesToFloats(b []byte) []float32 {
	out := make([]float32, len(b)/4)
	for i := range out {
		out[i] = math.Float32frombits(binary.LittleEndian.Uint32(b[i*4:]))
	}
	return out
}
