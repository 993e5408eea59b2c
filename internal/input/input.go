// Package input maps GLFW key and mouse events to viewer actions.
package input

import (
	"sync"

	"github.com/go-gl/glfw/v3.3/glfw"
)

// Action is a logical viewer action, not a physical key.
type Action int

const (
	ActionMoveForward Action = iota
	ActionMoveBackward
	ActionMoveLeft
	ActionMoveRight
	ActionMoveUp
	ActionMoveDown
	ActionFast
	ActionToggleOutline
	ActionGrowRadius
	ActionShrinkRadius
	ActionReleaseCursor
	ActionCount // sentinel for array sizing
)

// MouseSensitivity is degrees of rotation per pixel of cursor movement.
const MouseSensitivity = 0.1

// Manager tracks held actions, per-frame press edges and accumulated mouse
// movement. GLFW delivers events on the main thread, but state is guarded so
// it can be read from anywhere.
type Manager struct {
	mu sync.RWMutex

	bindings map[glfw.Key][]Action

	held        [ActionCount]bool
	justPressed [ActionCount]bool

	haveCursor       bool
	lastX, lastY     float64
	deltaX, deltaY   float64
	cursorSuppressed bool
}

// NewManager creates a Manager with the default WASD bindings.
func NewManager() *Manager {
	m := &Manager{bindings: make(map[glfw.Key][]Action)}

	m.Bind(glfw.KeyW, ActionMoveForward)
	m.Bind(glfw.KeyS, ActionMoveBackward)
	m.Bind(glfw.KeyA, ActionMoveLeft)
	m.Bind(glfw.KeyD, ActionMoveRight)
	m.Bind(glfw.KeySpace, ActionMoveUp)
	m.Bind(glfw.KeyLeftShift, ActionMoveDown)
	m.Bind(glfw.KeyLeftControl, ActionFast)
	m.Bind(glfw.KeyO, ActionToggleOutline)
	m.Bind(glfw.KeyEqual, ActionGrowRadius)
	m.Bind(glfw.KeyKPAdd, ActionGrowRadius)
	m.Bind(glfw.KeyMinus, ActionShrinkRadius)
	m.Bind(glfw.KeyKPSubtract, ActionShrinkRadius)
	m.Bind(glfw.KeyEscape, ActionReleaseCursor)
	return m
}

// Bind adds action to the actions triggered by key.
func (m *Manager) Bind(key glfw.Key, action Action) {
	if action < 0 || action >= ActionCount {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.bindings[key] = append(m.bindings[key], action)
}

// HandleKeyEvent updates the action state for a key event.
func (m *Manager) HandleKeyEvent(key glfw.Key, action glfw.Action) {
	m.mu.Lock()
	defer m.mu.Unlock()

	pressed := action == glfw.Press || action == glfw.Repeat
	for _, act := range m.bindings[key] {
		if pressed && !m.held[act] {
			m.justPressed[act] = true
		}
		m.held[act] = pressed
	}
}

// HandleCursor accumulates cursor movement since the last frame. The first
// position after a reset only establishes the reference point.
func (m *Manager) HandleCursor(x, y float64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.haveCursor {
		m.lastX, m.lastY = x, y
		m.haveCursor = true
		return
	}
	if !m.cursorSuppressed {
		m.deltaX += x - m.lastX
		m.deltaY += m.lastY - y
	}
	m.lastX, m.lastY = x, y
}

// SetCursorCaptured enables or disables mouse look.
func (m *Manager) SetCursorCaptured(captured bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cursorSuppressed = !captured
	m.haveCursor = false
	m.deltaX, m.deltaY = 0, 0
}

// Look returns the yaw and pitch change in degrees accumulated this frame.
func (m *Manager) Look() (yaw, pitch float32) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return float32(m.deltaX * MouseSensitivity), float32(m.deltaY * MouseSensitivity)
}

// IsActive reports whether the action is held down.
func (m *Manager) IsActive(action Action) bool {
	if action < 0 || action >= ActionCount {
		return false
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.held[action]
}

// JustPressed reports whether the action was pressed this frame.
func (m *Manager) JustPressed(action Action) bool {
	if action < 0 || action >= ActionCount {
		return false
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.justPressed[action]
}

// Axis returns +1, -1 or 0 for a pair of opposing actions.
func (m *Manager) Axis(positive, negative Action) float32 {
	var v float32
	if m.IsActive(positive) {
		v++
	}
	if m.IsActive(negative) {
		v--
	}
	return v
}

// PostUpdate clears the per-frame edges and mouse movement. Call once at the
// end of every frame.
func (m *Manager) PostUpdate() {
	m.mu.Lock()
	defer m.mu.Unlock()
	clear(m.justPressed[:])
	m.deltaX, m.deltaY = 0, 0
}

// Attach installs the manager's key and cursor callbacks on window.
func (m *Manager) Attach(window *glfw.Window) {
	window.SetKeyCallback(func(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		m.HandleKeyEvent(key, action)
	})
	window.SetCursorPosCallback(func(w *glfw.Window, xpos, ypos float64) {
		m.HandleCursor(xpos, ypos)
	})
}
