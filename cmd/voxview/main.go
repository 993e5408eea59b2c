// Command voxview flies a camera over a generated voxel world rendered with
// the chunk slot pool.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"runtime"

	"github.com/GurayOrg/voxigen/internal/buildflags"
	"github.com/GurayOrg/voxigen/internal/config"
	"github.com/GurayOrg/voxigen/internal/gpu/gldriver"
	"github.com/GurayOrg/voxigen/internal/graphics"
	"github.com/GurayOrg/voxigen/internal/graphics/renderables/chunks"
	"github.com/GurayOrg/voxigen/internal/graphics/renderer"
	"github.com/GurayOrg/voxigen/internal/input"
	"github.com/GurayOrg/voxigen/internal/world"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
)

func init() {
	// GL calls must stay on the thread that owns the context
	runtime.LockOSThread()
}

func main() {
	configPath := flag.String("config", "voxview.yaml", "settings file (.yaml or .toml)")
	flag.Parse()

	setupLogging()
	if err := run(*configPath); err != nil {
		slog.Error("voxview failed", "err", err)
		os.Exit(1)
	}
}

func setupLogging() {
	level := slog.LevelInfo
	if buildflags.Debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

func run(configPath string) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	settingsChanged := make(chan config.Settings, 1)
	switch err := config.LoadAndApply(configPath); {
	case err == nil:
		if err := config.Watch(ctx, configPath, func(s config.Settings) {
			// keep only the newest settings for the render loop
			select {
			case <-settingsChanged:
			default:
			}
			settingsChanged <- s
		}); err != nil {
			slog.Warn("config hot reload disabled", "err", err)
		}
	case errors.Is(err, fs.ErrNotExist):
		slog.Info("no config file, using defaults", "path", configPath)
	default:
		return err
	}

	if err := glfw.Init(); err != nil {
		return fmt.Errorf("glfw init: %w", err)
	}
	defer glfw.Terminate()

	win := config.GetWindow()
	window, err := setupWindow(win)
	if err != nil {
		return err
	}

	drv, err := gldriver.New()
	if err != nil {
		return err
	}
	slog.Info("OpenGL ready", "version", drv.Version(), "debug", buildflags.Debug)
	dev := graphics.NewDevice(drv)

	size := config.GetChunkSize()
	gen := world.NewGenerator(config.GetSeed())
	store := world.NewStore(world.Coord{X: size[0], Y: size[1], Z: size[2]}, gen)

	fbW, fbH := window.GetFramebufferSize()
	camera := graphics.NewCamera(fbW, fbH)
	// start just above the terrain at the origin
	camera.SetPosition(mgl32.Vec3{0, float32(gen.HeightAt(0, 0)) + 8, 0})

	chunkRenderer := chunks.NewChunks(dev, store, config.GetViewRadius())
	chunkRenderer.SetUpdateBatchSize(config.GetUpdateBatchSize())
	chunkRenderer.SetOutlineChunks(config.GetOutlineChunks())

	r, err := renderer.NewRenderer(dev, camera, chunkRenderer)
	if err != nil {
		return err
	}
	defer r.Dispose()
	r.UpdateViewport(fbW, fbH)

	im := input.NewManager()
	im.Attach(window)
	window.SetFramebufferSizeCallback(func(w *glfw.Window, width, height int) {
		r.UpdateViewport(width, height)
	})

	loop := newViewLoop(window, r, chunkRenderer, store, im, settingsChanged)
	loop.Run()
	return nil
}

func setupWindow(win config.WindowSettings) (*glfw.Window, error) {
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)

	window, err := glfw.CreateWindow(win.Width, win.Height, win.Title, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("create window: %w", err)
	}
	window.MakeContextCurrent()

	glfw.SwapInterval(1)
	window.SetInputMode(glfw.CursorMode, glfw.CursorDisabled)

	return window, nil
}
