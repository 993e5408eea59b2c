package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/GurayOrg/voxigen/internal/config"
	"github.com/GurayOrg/voxigen/internal/graphics/renderables/chunks"
	"github.com/GurayOrg/voxigen/internal/graphics/renderer"
	"github.com/GurayOrg/voxigen/internal/input"
	"github.com/GurayOrg/voxigen/internal/profiling"
	"github.com/GurayOrg/voxigen/internal/world"

	"github.com/dustin/go-humanize"
	"github.com/go-gl/glfw/v3.3/glfw"
)

const (
	moveSpeed     = 20.0 // world units per second
	fastFactor    = 5.0
	radiusStep    = 16.0
	evictInterval = 2 * time.Second
)

// viewLoop owns the per-frame update of camera, world and renderer.
type viewLoop struct {
	window   *glfw.Window
	renderer *renderer.Renderer
	chunks   *chunks.Chunks
	store    *world.Store
	input    *input.Manager
	settings <-chan config.Settings
	startup  config.Settings

	captured bool

	frames           int
	lastFPSCheckTime time.Time
	lastTime         time.Time
	lastEvict        time.Time
}

func newViewLoop(window *glfw.Window, r *renderer.Renderer, c *chunks.Chunks, store *world.Store, im *input.Manager, settings <-chan config.Settings) *viewLoop {
	now := time.Now()
	return &viewLoop{
		window:           window,
		renderer:         r,
		chunks:           c,
		store:            store,
		input:            im,
		settings:         settings,
		startup:          config.Current(),
		captured:         true,
		lastFPSCheckTime: now,
		lastTime:         now,
		lastEvict:        now,
	}
}

// Run renders until the window is closed.
func (l *viewLoop) Run() {
	for !l.window.ShouldClose() {
		l.tick()
	}
}

func (l *viewLoop) tick() {
	profiling.ResetFrame()
	now := time.Now()
	dt := now.Sub(l.lastTime).Seconds()
	l.lastTime = now

	func() { defer profiling.Track("glfw.PollEvents")(); glfw.PollEvents() }()

	l.applySettings()
	l.handleInput(float32(dt))

	l.store.GeneratePending(config.GetGenerateBudget())
	if now.Sub(l.lastEvict) > evictInterval {
		l.evict()
		l.lastEvict = now
	}

	l.renderer.Render(dt)

	func() { defer profiling.Track("glfw.SwapBuffers")(); l.window.SwapBuffers() }()
	l.input.PostUpdate()

	l.updateTitle(now)
}

// evict drops chunks well outside the view radius.
func (l *viewLoop) evict() {
	size := l.store.ChunkSize()
	center := world.ChunkCoordAt(l.renderer.Camera().Position(), size)
	keep := int(config.GetViewRadius())/min(size.X, size.Y, size.Z) + 2
	if n := l.store.Evict(center, keep*2); n > 0 {
		slog.Debug("evicted chunks", "count", n, "kept", l.store.Len())
	}
}

func (l *viewLoop) applySettings() {
	select {
	case s := <-l.settings:
		l.chunks.SetViewRadius(s.ViewRadius)
		l.chunks.SetUpdateBatchSize(s.UpdateBatchSize)
		l.chunks.SetOutlineChunks(s.OutlineChunks)
		if fields := config.RestartFields(l.startup, s); len(fields) > 0 {
			slog.Warn("config change needs a restart to take effect", "fields", fields)
		}
	default:
	}
}

func (l *viewLoop) handleInput(dt float32) {
	im := l.input
	cam := l.renderer.Camera()

	if im.JustPressed(input.ActionReleaseCursor) {
		l.captured = !l.captured
		mode := glfw.CursorDisabled
		if !l.captured {
			mode = glfw.CursorNormal
		}
		l.window.SetInputMode(glfw.CursorMode, mode)
		im.SetCursorCaptured(l.captured)
	}
	if im.JustPressed(input.ActionToggleOutline) {
		config.SetOutlineChunks(!config.GetOutlineChunks())
		l.chunks.SetOutlineChunks(config.GetOutlineChunks())
	}
	if im.JustPressed(input.ActionGrowRadius) {
		l.setRadius(config.GetViewRadius() + radiusStep)
	}
	if im.JustPressed(input.ActionShrinkRadius) {
		l.setRadius(config.GetViewRadius() - radiusStep)
	}

	yaw, pitch := im.Look()
	cam.Rotate(yaw, pitch)

	speed := float32(moveSpeed)
	if im.IsActive(input.ActionFast) {
		speed *= fastFactor
	}
	step := speed * dt
	cam.Move(
		im.Axis(input.ActionMoveForward, input.ActionMoveBackward)*step,
		im.Axis(input.ActionMoveRight, input.ActionMoveLeft)*step,
		im.Axis(input.ActionMoveUp, input.ActionMoveDown)*step,
	)
}

func (l *viewLoop) setRadius(r float32) {
	config.SetViewRadius(r)
	l.chunks.SetViewRadius(config.GetViewRadius())
	slog.Info("view radius", "radius", config.GetViewRadius(), "offsets", len(l.chunks.Pool().Offsets()))
}

func (l *viewLoop) updateTitle(now time.Time) {
	l.frames++
	if now.Sub(l.lastFPSCheckTime) < time.Second {
		return
	}
	fps := float64(l.frames) / now.Sub(l.lastFPSCheckTime).Seconds()
	l.frames = 0
	l.lastFPSCheckTime = now

	pool := l.chunks.Pool()
	stats := pool.Stats()
	title := fmt.Sprintf("%s | %.0f FPS | slots %d/%d pending %d | uploaded %s | %s",
		config.GetWindow().Title, fps,
		pool.Assigned(), stats.Slots, stats.Pending,
		humanize.Bytes(uint64(pool.UploadedBytes())),
		profiling.TopN(3))
	l.window.SetTitle(title)
}
