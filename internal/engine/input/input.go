// Package input handles SDL2 input events and maps keys to viewer actions.
package input

import (
	"github.com/veandco/go-sdl2/sdl"
)

// Event types for game use
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventWindowResize
	EventKeyDown
	EventKeyUp
)

// Event represents a processed input event.
type Event struct {
	Type   EventType
	Key    sdl.Scancode
	Width  int
	Height int
}

// Action is a logical viewer action, not a physical key.
type Action int

const (
	ActionForward Action = iota
	ActionBackward
	ActionLeft
	ActionRight
	ActionUp
	ActionDown
	ActionFast
	ActionReset
	ActionPause
	ActionQuit
	ActionScreenshot
	ActionMute
	ActionCount // Sentinel value for array sizing
)

// Input handles all input processing.
type Input struct {
	events []Event

	keyToActions map[sdl.Scancode][]Action

	held        [ActionCount]bool
	justPressed [ActionCount]bool

	dragging      bool
	dragX, dragY  float32
	wheel         float32
	quitRequested bool
}

// New creates a new input handler with the default bindings.
func New() *Input {
	i := &Input{
		events:       make([]Event, 0, 16),
		keyToActions: make(map[sdl.Scancode][]Action),
	}

	i.BindKey(sdl.SCANCODE_W, ActionForward)
	i.BindKey(sdl.SCANCODE_UP, ActionForward)
	i.BindKey(sdl.SCANCODE_S, ActionBackward)
	i.BindKey(sdl.SCANCODE_DOWN, ActionBackward)
	i.BindKey(sdl.SCANCODE_A, ActionLeft)
	i.BindKey(sdl.SCANCODE_LEFT, ActionLeft)
	i.BindKey(sdl.SCANCODE_D, ActionRight)
	i.BindKey(sdl.SCANCODE_RIGHT, ActionRight)
	i.BindKey(sdl.SCANCODE_SPACE, ActionUp)
	i.BindKey(sdl.SCANCODE_LCTRL, ActionDown)
	i.BindKey(sdl.SCANCODE_LSHIFT, ActionFast)
	i.BindKey(sdl.SCANCODE_R, ActionReset)
	i.BindKey(sdl.SCANCODE_P, ActionPause)
	i.BindKey(sdl.SCANCODE_ESCAPE, ActionQuit)
	i.BindKey(sdl.SCANCODE_F12, ActionScreenshot)
	i.BindKey(sdl.SCANCODE_M, ActionMute)

	return i
}

// BindKey adds a binding from a key to an action.
func (i *Input) BindKey(key sdl.Scancode, action Action) {
	i.keyToActions[key] = append(i.keyToActions[key], action)
}

// Update polls SDL events and converts them to game events.
// Returns true if the game should quit.
func (i *Input) Update() bool {
	i.beginFrame()
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		i.Process(event)
	}
	return i.quitRequested
}

func (i *Input) beginFrame() {
	i.events = i.events[:0]
	i.justPressed = [ActionCount]bool{}
	i.dragX, i.dragY = 0, 0
	i.wheel = 0
}

// Process applies one SDL event to the input state.
func (i *Input) Process(event sdl.Event) {
	switch e := event.(type) {
	case *sdl.QuitEvent:
		i.events = append(i.events, Event{Type: EventQuit})
		i.quitRequested = true

	case *sdl.WindowEvent:
		if e.Event == sdl.WINDOWEVENT_RESIZED || e.Event == sdl.WINDOWEVENT_SIZE_CHANGED {
			i.events = append(i.events, Event{
				Type:   EventWindowResize,
				Width:  int(e.Data1),
				Height: int(e.Data2),
			})
		}

	case *sdl.KeyboardEvent:
		code := e.Keysym.Scancode
		if e.Type == sdl.KEYDOWN {
			i.events = append(i.events, Event{Type: EventKeyDown, Key: code})
			for _, a := range i.keyToActions[code] {
				if !i.held[a] && e.Repeat == 0 {
					i.justPressed[a] = true
				}
				i.held[a] = true
			}
			if i.justPressed[ActionQuit] {
				i.quitRequested = true
			}
		} else if e.Type == sdl.KEYUP {
			i.events = append(i.events, Event{Type: EventKeyUp, Key: code})
			for _, a := range i.keyToActions[code] {
				i.held[a] = false
			}
		}

	case *sdl.MouseButtonEvent:
		if e.Button == sdl.BUTTON_LEFT {
			i.dragging = e.Type == sdl.MOUSEBUTTONDOWN
		}

	case *sdl.MouseMotionEvent:
		if i.dragging {
			i.dragX += float32(e.XRel)
			i.dragY += float32(e.YRel)
		}

	case *sdl.MouseWheelEvent:
		i.wheel += float32(e.Y)
	}
}

// Events returns the events from the last Update.
func (i *Input) Events() []Event {
	return i.events
}

// Held reports whether an action's key is down.
func (i *Input) Held(a Action) bool {
	return i.held[a]
}

// Pressed reports whether an action was triggered this frame.
func (i *Input) Pressed(a Action) bool {
	return i.justPressed[a]
}

// Axis returns +1, -1 or 0 for a pair of opposing actions.
func (i *Input) Axis(positive, negative Action) float32 {
	var v float32
	if i.held[positive] {
		v++
	}
	if i.held[negative] {
		v--
	}
	return v
}

// Drag returns the mouse movement accumulated this frame while the left
// button was held.
func (i *Input) Drag() (float32, float32) {
	return i.dragX, i.dragY
}

// Wheel returns the scroll accumulated this frame.
func (i *Input) Wheel() float32 {
	return i.wheel
}

// QuitRequested reports whether the window was closed or Escape pressed.
func (i *Input) QuitRequested() bool {
	return i.quitRequested
}
