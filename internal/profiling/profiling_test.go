package profiling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func record(name string, d time.Duration) {
	mu.Lock()
	frameTotals[name] += d
	frameCalls[name]++
	mu.Unlock()
}

func TestTrackAccumulates(t *testing.T) {
	ResetFrame()
	t.Cleanup(ResetFrame)

	for range 3 {
		Track("test.op")()
	}
	assert.Equal(t, 3, Calls("test.op"))
	assert.Contains(t, Snapshot(), "test.op")

	ResetFrame()
	assert.Empty(t, Snapshot())
	assert.Zero(t, Calls("test.op"))
}

func TestTopN(t *testing.T) {
	ResetFrame()
	t.Cleanup(ResetFrame)

	record("chunks.Reconcile", 2100*time.Microsecond)
	record("renderer.Render", 4200*time.Microsecond)
	record("world.GeneratePending", 3*time.Millisecond)

	assert.Equal(t, "renderer.Render:4.2ms, world.GeneratePending:3ms", TopN(2))
	assert.Equal(t, "renderer.Render:4.2ms, world.GeneratePending:3ms, chunks.Reconcile:2.1ms", TopN(10))
	assert.Equal(t, "", TopN(0))
}

func TestSumWithPrefix(t *testing.T) {
	ResetFrame()
	t.Cleanup(ResetFrame)

	record("chunks.Reconcile", time.Millisecond)
	record("chunks.Frame", 2*time.Millisecond)
	record("renderer.Render", 5*time.Millisecond)

	assert.Equal(t, 3*time.Millisecond, SumWithPrefix("chunks."))
	assert.Zero(t, SumWithPrefix("world."))
}
