package input

import (
	"testing"

	"github.com/veandco/go-sdl2/sdl"
)

func key(t uint32, code sdl.Scancode, repeat uint8) *sdl.KeyboardEvent {
	return &sdl.KeyboardEvent{Type: t, Repeat: repeat, Keysym: sdl.Keysym{Scancode: code}}
}

func TestHeldAndPressed(t *testing.T) {
	in := New()
	in.beginFrame()
	in.Process(key(sdl.KEYDOWN, sdl.SCANCODE_W, 0))

	if !in.Held(ActionForward) || !in.Pressed(ActionForward) {
		t.Fatal("W should hold and press forward")
	}
	if got := in.Axis(ActionForward, ActionBackward); got != 1 {
		t.Errorf("axis = %v, want 1", got)
	}

	// Next frame: still held, no longer just pressed.
	in.beginFrame()
	in.Process(key(sdl.KEYDOWN, sdl.SCANCODE_W, 1))
	if !in.Held(ActionForward) || in.Pressed(ActionForward) {
		t.Error("key repeat must not re-trigger the action")
	}

	in.Process(key(sdl.KEYUP, sdl.SCANCODE_W, 0))
	if in.Held(ActionForward) {
		t.Error("released key still held")
	}
}

func TestAxisCancels(t *testing.T) {
	in := New()
	in.Process(key(sdl.KEYDOWN, sdl.SCANCODE_A, 0))
	in.Process(key(sdl.KEYDOWN, sdl.SCANCODE_D, 0))
	if got := in.Axis(ActionRight, ActionLeft); got != 0 {
		t.Errorf("axis = %v, want 0", got)
	}
}

func TestEscapeQuits(t *testing.T) {
	in := New()
	in.Process(key(sdl.KEYDOWN, sdl.SCANCODE_ESCAPE, 0))
	if !in.QuitRequested() {
		t.Error("escape should request quit")
	}
}

func TestQuitEvent(t *testing.T) {
	in := New()
	in.Process(&sdl.QuitEvent{Type: sdl.QUIT})
	if !in.QuitRequested() || len(in.Events()) != 1 || in.Events()[0].Type != EventQuit {
		t.Errorf("events %+v", in.Events())
	}
}

func TestDragOnlyWhileButtonHeld(t *testing.T) {
	in := New()
	in.beginFrame()
	in.Process(&sdl.MouseMotionEvent{Type: sdl.MOUSEMOTION, XRel: 5, YRel: 5})
	if dx, dy := in.Drag(); dx != 0 || dy != 0 {
		t.Errorf("drag without button = %v, %v", dx, dy)
	}

	in.Process(&sdl.MouseButtonEvent{Type: sdl.MOUSEBUTTONDOWN, Button: sdl.BUTTON_LEFT})
	in.Process(&sdl.MouseMotionEvent{Type: sdl.MOUSEMOTION, XRel: 3, YRel: -2})
	in.Process(&sdl.MouseMotionEvent{Type: sdl.MOUSEMOTION, XRel: 1, YRel: -1})
	if dx, dy := in.Drag(); dx != 4 || dy != -3 {
		t.Errorf("drag = %v, %v, want 4, -3", dx, dy)
	}

	in.beginFrame()
	if dx, dy := in.Drag(); dx != 0 || dy != 0 {
		t.Error("drag must reset each frame")
	}
}

func TestWheelAndResize(t *testing.T) {
	in := New()
	in.Process(&sdl.MouseWheelEvent{Type: sdl.MOUSEWHEEL, Y: 2})
	in.Process(&sdl.WindowEvent{Type: sdl.WINDOWEVENT, Event: sdl.WINDOWEVENT_RESIZED, Data1: 800, Data2: 600})

	if in.Wheel() != 2 {
		t.Errorf("wheel = %v", in.Wheel())
	}
	evs := in.Events()
	if len(evs) != 1 || evs[0].Type != EventWindowResize || evs[0].Width != 800 || evs[0].Height != 600 {
		t.Errorf("events %+v", evs)
	}
}
