package chunks

import (
	"github.com/GurayOrg/voxigen/internal/gpu"
	"github.com/GurayOrg/voxigen/internal/graphics"
	"github.com/GurayOrg/voxigen/internal/world"
)

// SlotState is the lifecycle of a render slot.
type SlotState int

const (
	// SlotInvalid slots hold no chunk and are free for reuse.
	SlotInvalid SlotState = iota
	// SlotBuilding slots are bound to a chunk whose data is not available yet.
	SlotBuilding
	// SlotReady slots hold uploaded instance data for their chunk.
	SlotReady
)

func (s SlotState) String() string {
	switch s {
	case SlotInvalid:
		return "invalid"
	case SlotBuilding:
		return "building"
	case SlotReady:
		return "ready"
	}
	return "unknown"
}

const instanceStride = 4 // vec4: world position + cell type

// meshes are the GPU vertex buffers shared by every slot of a pool.
type meshes struct {
	cube    uint32
	outline uint32 // 0 when outlines are compiled out
}

// Slot is one reusable set of GPU buffers that renders a single chunk. It
// holds a non-owning reference to the chunk; the world store owns it.
type Slot struct {
	dev  *graphics.Device
	size world.Coord

	id    world.ChunkID
	bound bool
	chunk *world.Chunk
	state SlotState

	vao       uint32
	instances uint32
	count     int32
	scratch   []float32

	outlineVAO       uint32
	outlineInstances uint32
}

func newSlot(dev *graphics.Device, m meshes, size world.Coord) *Slot {
	s := &Slot{dev: dev, size: size}
	s.vao, s.instances = s.buildVertexArray(m.cube)
	if m.outline != 0 {
		s.outlineVAO, s.outlineInstances = s.buildVertexArray(m.outline)
	}
	return s
}

// buildVertexArray wires mesh to attributes 0-2 and a fresh per-instance
// buffer to attribute 3.
func (s *Slot) buildVertexArray(mesh uint32) (vao, instances uint32) {
	d := s.dev
	vao = d.CreateVertexArray()
	d.BindVertexArray(vao)

	d.BindBuffer(gpu.ArrayBuffer, mesh)
	d.VertexAttribPointer(attribVertex, 3, meshStride*4, 0)
	d.VertexAttribPointer(attribNormal, 3, meshStride*4, 3*4)
	d.VertexAttribPointer(attribTexCoord, 2, meshStride*4, 6*4)

	instances = d.CreateBuffer()
	d.BindBuffer(gpu.ArrayBuffer, instances)
	d.VertexAttribPointer(attribOffset, instanceStride, instanceStride*4, 0)
	d.VertexAttribDivisor(attribOffset, 1)

	d.BindVertexArray(0)
	return vao, instances
}

// ID returns the chunk the slot is bound to.
func (s *Slot) ID() (world.ChunkID, bool) { return s.id, s.bound }
func (s *Slot) State() SlotState          { return s.state }
func (s *Slot) InstanceCount() int        { return int(s.count) }

// Chunk returns the chunk data the slot last received, nil while pending.
func (s *Slot) Chunk() *world.Chunk { return s.chunk }

func (s *Slot) bind(id world.ChunkID, chunk *world.Chunk) {
	s.id = id
	s.bound = true
	s.chunk = chunk
	s.state = SlotBuilding
	s.count = 0
	if s.outlineVAO != 0 {
		o := id.Coord()
		origin := []float32{
			float32(o.X * s.size.X), float32(o.Y * s.size.Y), float32(o.Z * s.size.Z), 0,
		}
		s.dev.BufferData(gpu.ArrayBuffer, s.outlineInstances, gpu.Float32Bytes(origin), gpu.DynamicDraw)
	}
}

func (s *Slot) invalidate() {
	s.id = 0
	s.bound = false
	s.chunk = nil
	s.state = SlotInvalid
	s.count = 0
}

func (s *Slot) setChunk(chunk *world.Chunk) { s.chunk = chunk }

// update rebuilds the instance buffer from the chunk's solid cells and
// returns the number of bytes uploaded. A bound slot without chunk data stays
// Building with nothing to draw.
func (s *Slot) update() int {
	if !s.bound {
		return 0
	}
	if s.chunk == nil {
		s.state = SlotBuilding
		s.count = 0
		return 0
	}

	origin := s.chunk.Origin()
	s.scratch = s.scratch[:0]
	s.chunk.ForEachSolid(func(x, y, z int, cell world.Cell) {
		s.scratch = append(s.scratch,
			origin[0]+float32(x),
			origin[1]+float32(y),
			origin[2]+float32(z),
			float32(cell),
		)
	})
	data := gpu.Float32Bytes(s.scratch)
	s.dev.BufferData(gpu.ArrayBuffer, s.instances, data, gpu.DynamicDraw)
	s.count = int32(len(s.scratch) / instanceStride)
	s.state = SlotReady
	return len(data)
}

func (s *Slot) draw() {
	if s.state == SlotInvalid || s.count == 0 {
		return
	}
	s.dev.BindVertexArray(s.vao)
	s.dev.DrawArraysInstanced(gpu.Triangles, 0, cubeVertexCount, s.count)
}

func (s *Slot) drawOutline() {
	if !s.bound || s.outlineVAO == 0 {
		return
	}
	s.dev.BindVertexArray(s.outlineVAO)
	s.dev.DrawArraysInstanced(gpu.Triangles, 0, cubeVertexCount, 1)
}

func (s *Slot) dispose() {
	d := s.dev
	for _, vao := range []uint32{s.vao, s.outlineVAO} {
		if vao != 0 {
			d.DeleteVertexArray(vao)
		}
	}
	for _, buf := range []uint32{s.instances, s.outlineInstances} {
		if buf != 0 {
			d.DeleteBuffer(buf)
		}
	}
	s.vao, s.outlineVAO, s.instances, s.outlineInstances = 0, 0, 0, 0
	s.invalidate()
}
