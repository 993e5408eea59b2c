package config

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Load reads settings from a .yaml/.yml or .toml file. Keys missing from the
// file keep their default values.
func Load(path string) (Settings, error) {
	s := Defaults()
	raw, err := os.ReadFile(path)
	if err != nil {
		return s, err
	}
	if err := decode(path, raw, &s); err != nil {
		return s, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// LoadAndApply loads path and makes it the active configuration.
func LoadAndApply(path string) error {
	s, err := Load(path)
	if err != nil {
		return err
	}
	Apply(s)
	return nil
}

func decode(path string, raw []byte, s *Settings) error {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		return yaml.Unmarshal(raw, s)
	case ".toml":
		return toml.Unmarshal(raw, s)
	default:
		return fmt.Errorf("unsupported config format %q", ext)
	}
}

// Watch re-applies path whenever it is written and then calls onChange with
// the new settings. A file that fails to parse is logged and the previous
// settings stay active. Window, chunk size and seed are only read at startup;
// a reload that changes them is applied to the settings but needs a restart
// to take effect (see RestartFields). Watch returns once the watcher is
// running; it stops when ctx is done.
func Watch(ctx context.Context, path string, onChange func(Settings)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("config watcher: %w", err)
	}
	// editors often replace the file, so watch its directory
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		watcher.Close()
		return fmt.Errorf("config watcher: %w", err)
	}

	target := filepath.Clean(path)
	go func() {
		defer watcher.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != target || !event.Has(fsnotify.Write|fsnotify.Create) {
					continue
				}
				if err := LoadAndApply(path); err != nil {
					slog.Warn("config reload failed", "path", path, "err", err)
					continue
				}
				slog.Info("config reloaded", "path", path)
				if onChange != nil {
					onChange(Current())
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				slog.Warn("config watcher error", "err", err)
			}
		}
	}()
	return nil
}
