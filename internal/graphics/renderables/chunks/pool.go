package chunks

import (
	"log/slog"

	"github.com/GurayOrg/voxigen/internal/gpu"
	"github.com/GurayOrg/voxigen/internal/graphics"
	"github.com/GurayOrg/voxigen/internal/profiling"
	"github.com/GurayOrg/voxigen/internal/world"

	"github.com/dustin/go-humanize"
)

// World is the chunk storage the pool renders from.
type World interface {
	Hash(c world.Coord) world.ChunkID
	// Chunk returns nil while the chunk's data is not available yet.
	Chunk(id world.ChunkID) *world.Chunk
	// UpdatedChunks drains the ids whose content changed since the last call.
	UpdatedChunks() []world.ChunkID
	ChunkSize() world.Coord
}

// ReconcileStats summarises one Reconcile pass.
type ReconcileStats struct {
	Slots       int
	Grown       int
	Invalidated int
	Assigned    int
	Pending     int
}

// Pool keeps one render slot bound to every chunk inside the view radius of
// the camera. Slots are reused as the camera moves and the pool only grows.
type Pool struct {
	dev    *graphics.Device
	world  World
	size   world.Coord
	meshes meshes

	radius     float32
	offsets    []world.Coord
	slots      []*Slot
	assignment map[world.ChunkID]int

	required  []world.ChunkID
	satisfied []bool
	keep      []bool

	uploaded int
	stats    ReconcileStats
}

// NewPool uploads the shared cube mesh and returns an empty pool. With
// outlines set, every slot also gets the geometry for its chunk bounds.
func NewPool(dev *graphics.Device, w World, outlines bool) *Pool {
	size := w.ChunkSize()
	p := &Pool{
		dev:        dev,
		world:      w,
		size:       size,
		assignment: make(map[world.ChunkID]int),
	}
	p.meshes.cube = p.uploadMesh(cubeMesh(1, 1, 1))
	if outlines {
		p.meshes.outline = p.uploadMesh(cubeMesh(float32(size.X), float32(size.Y), float32(size.Z)))
	}
	p.SetViewRadius(0)
	return p
}

func (p *Pool) uploadMesh(vertices []float32) uint32 {
	buf := p.dev.CreateBuffer()
	p.dev.BufferData(gpu.ArrayBuffer, buf, gpu.Float32Bytes(vertices), gpu.StaticDraw)
	return buf
}

// SetViewRadius recomputes the offset set. Slots follow on the next Reconcile.
func (p *Pool) SetViewRadius(r float32) {
	p.radius = r
	p.offsets = ComputeOffsets(r, p.size)
}

func (p *Pool) ViewRadius() float32    { return p.radius }
func (p *Pool) Offsets() []world.Coord { return p.offsets }
func (p *Pool) Slots() []*Slot         { return p.slots }
func (p *Pool) Assigned() int          { return len(p.assignment) }
func (p *Pool) Stats() ReconcileStats  { return p.stats }
func (p *Pool) UploadedBytes() int     { return p.uploaded }
func (p *Pool) ChunkSize() world.Coord { return p.size }

func (p *Pool) slotAt(i int) (*Slot, bool) {
	if i < 0 || i >= len(p.slots) {
		return nil, false
	}
	return p.slots[i], true
}

// SlotFor returns the slot bound to id.
func (p *Pool) SlotFor(id world.ChunkID) (*Slot, bool) {
	i, ok := p.assignment[id]
	if !ok {
		return nil, false
	}
	return p.slotAt(i)
}

// Reconcile binds a slot to every chunk in the view set around cameraChunk.
// Slots already bound to a required chunk are left alone, every other slot
// is invalidated and handed out again first-fit in offset order.
func (p *Pool) Reconcile(cameraChunk world.Coord) ReconcileStats {
	defer profiling.Track("chunks.Reconcile")()

	stats := ReconcileStats{}

	if grow := len(p.offsets) - len(p.slots); grow > 0 {
		for range grow {
			p.slots = append(p.slots, newSlot(p.dev, p.meshes, p.size))
		}
		stats.Grown = grow
		slog.Debug("chunk slot pool grew",
			"slots", len(p.slots),
			"radius", p.radius,
			"uploaded", humanize.Bytes(uint64(p.uploaded)))
	}

	n := len(p.offsets)
	p.required = p.required[:0]
	for _, off := range p.offsets {
		p.required = append(p.required, p.world.Hash(cameraChunk.Add(off)))
	}
	p.satisfied = resetBools(p.satisfied, n)
	p.keep = resetBools(p.keep, len(p.slots))

	for i, id := range p.required {
		idx, ok := p.assignment[id]
		if !ok || p.slots[idx].state == SlotInvalid {
			continue
		}
		p.keep[idx] = true
		p.satisfied[i] = true
	}

	for i, s := range p.slots {
		if p.keep[i] {
			continue
		}
		if s.bound {
			if idx, ok := p.assignment[s.id]; ok && idx == i {
				delete(p.assignment, s.id)
			}
			stats.Invalidated++
		}
		s.invalidate()
	}

	next := 0
	for i, id := range p.required {
		if p.satisfied[i] {
			// retry kept slots still waiting for data
			s := p.slots[p.assignment[id]]
			if s.chunk == nil {
				if c := p.world.Chunk(id); c != nil {
					s.setChunk(c)
					p.uploaded += s.update()
				}
			}
			continue
		}
		for next < len(p.slots) && p.keep[next] {
			next++
		}
		if next == len(p.slots) {
			break
		}
		s := p.slots[next]
		p.keep[next] = true
		p.assignment[id] = next
		next++

		s.bind(id, p.world.Chunk(id))
		p.uploaded += s.update()
		stats.Assigned++
	}

	for _, s := range p.slots {
		if s.state == SlotBuilding {
			stats.Pending++
		}
	}
	stats.Slots = len(p.slots)
	p.stats = stats
	return stats
}

// refresh pushes the current chunk data for id into its slot. It reports
// false when no slot is bound to id.
func (p *Pool) refresh(id world.ChunkID) bool {
	s, ok := p.SlotFor(id)
	if !ok {
		return false
	}
	s.setChunk(p.world.Chunk(id))
	p.uploaded += s.update()
	return true
}

// Dispose releases every slot and the shared meshes.
func (p *Pool) Dispose() {
	for _, s := range p.slots {
		s.dispose()
	}
	p.slots = nil
	clear(p.assignment)
	for _, buf := range []uint32{p.meshes.cube, p.meshes.outline} {
		if buf != 0 {
			p.dev.DeleteBuffer(buf)
		}
	}
	p.meshes = meshes{}
}

func resetBools(b []bool, n int) []bool {
	if cap(b) < n {
		return make([]bool, n)
	}
	b = b[:n]
	clear(b)
	return b
}
