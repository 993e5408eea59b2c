// Package config holds the process-wide render settings. Values can come from
// a YAML or TOML file and are re-applied when that file changes.
package config

import (
	"sync"

	"github.com/GurayOrg/voxigen/internal/buildflags"

	"github.com/chewxy/math32"
)

// WindowSettings describes the application window.
type WindowSettings struct {
	Width  int    `yaml:"width" toml:"width"`
	Height int    `yaml:"height" toml:"height"`
	Title  string `yaml:"title" toml:"title"`
}

// Settings is the file representation of the render configuration.
type Settings struct {
	ViewRadius      float32        `yaml:"view_radius" toml:"view_radius"`
	UpdateBatchSize int            `yaml:"update_batch_size" toml:"update_batch_size"`
	OutlineChunks   bool           `yaml:"outline_chunks" toml:"outline_chunks"`
	Window          WindowSettings `yaml:"window" toml:"window"`
	ChunkSize       [3]int         `yaml:"chunk_size" toml:"chunk_size"`
	Seed            int64          `yaml:"seed" toml:"seed"`
	GenerateBudget  int            `yaml:"generate_budget" toml:"generate_budget"`
}

// Bounds for the clamping setters.
const (
	MaxViewRadius      = 1024
	MinUpdateBatchSize = 1
	MaxUpdateBatchSize = 256
	MinChunkDim        = 4
	MaxChunkDim        = 256
	MaxGenerateBudget  = 64
)

// Defaults returns the built-in settings. Debug builds start with chunk
// outlines on.
func Defaults() Settings {
	return Settings{
		ViewRadius:      60,
		UpdateBatchSize: 10,
		OutlineChunks:   buildflags.Debug,
		Window:          WindowSettings{Width: 1280, Height: 720, Title: "voxview"},
		ChunkSize:       [3]int{64, 64, 16},
		Seed:            1,
		GenerateBudget:  4,
	}
}

// RenderSettings holds render configuration
type RenderSettings struct {
	mu sync.RWMutex
	s  Settings
}

var globalRenderSettings = &RenderSettings{s: Defaults()}

// Current returns a copy of the active settings.
func Current() Settings {
	globalRenderSettings.mu.RLock()
	defer globalRenderSettings.mu.RUnlock()
	return globalRenderSettings.s
}

// Apply replaces the active settings, clamping every value. Readers see
// either the old or the new settings, never a mix.
func Apply(s Settings) {
	s = s.clamped()
	globalRenderSettings.mu.Lock()
	globalRenderSettings.s = s
	globalRenderSettings.mu.Unlock()
}

func (s Settings) clamped() Settings {
	s.ViewRadius = clampViewRadius(s.ViewRadius)
	s.UpdateBatchSize = clamp(s.UpdateBatchSize, MinUpdateBatchSize, MaxUpdateBatchSize)
	s.Window = clampWindow(s.Window)
	s.ChunkSize = clampChunkSize(s.ChunkSize)
	s.GenerateBudget = clamp(s.GenerateBudget, 1, MaxGenerateBudget)
	return s
}

// RestartFields lists the settings that differ between old and next but are
// only read at startup.
func RestartFields(old, next Settings) []string {
	var fields []string
	if old.Window != next.Window {
		fields = append(fields, "window")
	}
	if old.ChunkSize != next.ChunkSize {
		fields = append(fields, "chunk_size")
	}
	if old.Seed != next.Seed {
		fields = append(fields, "seed")
	}
	return fields
}

// Reset restores the built-in settings.
func Reset() {
	globalRenderSettings.mu.Lock()
	globalRenderSettings.s = Defaults()
	globalRenderSettings.mu.Unlock()
}

// GetViewRadius returns the view radius in world units
func GetViewRadius() float32 {
	globalRenderSettings.mu.RLock()
	defer globalRenderSettings.mu.RUnlock()
	return globalRenderSettings.s.ViewRadius
}

// SetViewRadius sets the view radius in world units
func SetViewRadius(r float32) {
	globalRenderSettings.mu.Lock()
	defer globalRenderSettings.mu.Unlock()
	globalRenderSettings.s.ViewRadius = clampViewRadius(r)
}

func clampViewRadius(r float32) float32 {
	// Clamp to reasonable values
	if r < 0 || math32.IsNaN(r) {
		return 0
	}
	return min(r, MaxViewRadius)
}

// GetUpdateBatchSize returns how many chunk refreshes are applied per frame
func GetUpdateBatchSize() int {
	globalRenderSettings.mu.RLock()
	defer globalRenderSettings.mu.RUnlock()
	return globalRenderSettings.s.UpdateBatchSize
}

// SetUpdateBatchSize sets how many chunk refreshes are applied per frame
func SetUpdateBatchSize(n int) {
	globalRenderSettings.mu.Lock()
	defer globalRenderSettings.mu.Unlock()
	globalRenderSettings.s.UpdateBatchSize = clamp(n, MinUpdateBatchSize, MaxUpdateBatchSize)
}

// GetOutlineChunks reports whether chunk bounds are drawn (debug builds only)
func GetOutlineChunks() bool {
	globalRenderSettings.mu.RLock()
	defer globalRenderSettings.mu.RUnlock()
	return globalRenderSettings.s.OutlineChunks
}

func SetOutlineChunks(on bool) {
	globalRenderSettings.mu.Lock()
	defer globalRenderSettings.mu.Unlock()
	globalRenderSettings.s.OutlineChunks = on
}

// GetWindow returns the window settings
func GetWindow() WindowSettings {
	globalRenderSettings.mu.RLock()
	defer globalRenderSettings.mu.RUnlock()
	return globalRenderSettings.s.Window
}

// SetWindow sets the window settings; the size is at least 1x1
func SetWindow(w WindowSettings) {
	globalRenderSettings.mu.Lock()
	defer globalRenderSettings.mu.Unlock()
	globalRenderSettings.s.Window = clampWindow(w)
}

func clampWindow(w WindowSettings) WindowSettings {
	w.Width = max(w.Width, 1)
	w.Height = max(w.Height, 1)
	if w.Title == "" {
		w.Title = "voxview"
	}
	return w
}

// GetChunkSize returns the chunk dimensions in cells
func GetChunkSize() [3]int {
	globalRenderSettings.mu.RLock()
	defer globalRenderSettings.mu.RUnlock()
	return globalRenderSettings.s.ChunkSize
}

func SetChunkSize(size [3]int) {
	globalRenderSettings.mu.Lock()
	defer globalRenderSettings.mu.Unlock()
	globalRenderSettings.s.ChunkSize = clampChunkSize(size)
}

func clampChunkSize(size [3]int) [3]int {
	for i := range size {
		size[i] = clamp(size[i], MinChunkDim, MaxChunkDim)
	}
	return size
}

// GetSeed returns the world generation seed
func GetSeed() int64 {
	globalRenderSettings.mu.RLock()
	defer globalRenderSettings.mu.RUnlock()
	return globalRenderSettings.s.Seed
}

func SetSeed(seed int64) {
	globalRenderSettings.mu.Lock()
	defer globalRenderSettings.mu.Unlock()
	globalRenderSettings.s.Seed = seed
}

// GetGenerateBudget returns how many chunks the main loop generates per frame
func GetGenerateBudget() int {
	globalRenderSettings.mu.RLock()
	defer globalRenderSettings.mu.RUnlock()
	return globalRenderSettings.s.GenerateBudget
}

func SetGenerateBudget(n int) {
	globalRenderSettings.mu.Lock()
	defer globalRenderSettings.mu.Unlock()
	globalRenderSettings.s.GenerateBudget = clamp(n, 1, MaxGenerateBudget)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
