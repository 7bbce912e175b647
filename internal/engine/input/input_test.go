package input

import (
	"testing"

	"github.com/veandco/go-sdl2/sdl"
)

func feed(in *Input, events ...sdl.Event) {
	in.events = in.events[:0]
	for _, ev := range events {
		if e, ok := translate(ev); ok {
			in.apply(e)
		}
	}
}

func TestHeldKeys(t *testing.T) {
	in := New()

	feed(in, &sdl.KeyboardEvent{Type: sdl.KEYDOWN, Keysym: sdl.Keysym{Scancode: sdl.SCANCODE_W}})
	if !in.IsKeyPressed(sdl.SCANCODE_W) || !in.IsKeyHeld(sdl.SCANCODE_W) {
		t.Fatal("W should be pressed and held")
	}

	feed(in)
	if in.IsKeyPressed(sdl.SCANCODE_W) {
		t.Error("W should not be pressed on a later frame")
	}
	if !in.IsKeyHeld(sdl.SCANCODE_W) {
		t.Error("W should still be held")
	}

	feed(in, &sdl.KeyboardEvent{Type: sdl.KEYUP, Keysym: sdl.Keysym{Scancode: sdl.SCANCODE_W}})
	if in.IsKeyHeld(sdl.SCANCODE_W) {
		t.Error("W should be released")
	}
}

func TestKeyRepeatIgnored(t *testing.T) {
	in := New()
	feed(in, &sdl.KeyboardEvent{Type: sdl.KEYDOWN, Repeat: 1, Keysym: sdl.Keysym{Scancode: sdl.SCANCODE_F1}})
	if in.IsKeyPressed(sdl.SCANCODE_F1) {
		t.Error("auto-repeat should not count as a press")
	}
}

func TestAxis(t *testing.T) {
	in := New()
	feed(in, &sdl.KeyboardEvent{Type: sdl.KEYDOWN, Keysym: sdl.Keysym{Scancode: sdl.SCANCODE_D}})
	if got := in.Axis(sdl.SCANCODE_A, sdl.SCANCODE_D); got != 1 {
		t.Errorf("axis = %f, want 1", got)
	}

	feed(in, &sdl.KeyboardEvent{Type: sdl.KEYDOWN, Keysym: sdl.Keysym{Scancode: sdl.SCANCODE_A}})
	if got := in.Axis(sdl.SCANCODE_A, sdl.SCANCODE_D); got != 0 {
		t.Errorf("axis = %f, want 0", got)
	}
}

func TestMouseEvents(t *testing.T) {
	in := New()
	feed(in,
		&sdl.MouseButtonEvent{Type: sdl.MOUSEBUTTONDOWN, Button: sdl.BUTTON_LEFT, X: 5, Y: 6},
		&sdl.MouseMotionEvent{X: 8, Y: 4, XRel: 3, YRel: -2},
		&sdl.MouseWheelEvent{Y: 1, Direction: sdl.MOUSEWHEEL_FLIPPED},
	)

	if !in.IsButtonHeld(sdl.BUTTON_LEFT) {
		t.Error("left button should be held")
	}

	events := in.Events()
	if len(events) != 3 {
		t.Fatalf("events = %d, want 3", len(events))
	}
	if events[1].DeltaX != 3 || events[1].DeltaY != -2 {
		t.Errorf("motion delta = (%d, %d)", events[1].DeltaX, events[1].DeltaY)
	}
	if events[2].Type != EventMouseWheel || events[2].Wheel != -1 {
		t.Errorf("wheel event = %+v", events[2])
	}
}

func TestResizeAndQuit(t *testing.T) {
	in := New()
	feed(in,
		&sdl.WindowEvent{Event: sdl.WINDOWEVENT_SIZE_CHANGED, Data1: 800, Data2: 600},
		&sdl.WindowEvent{Event: sdl.WINDOWEVENT_MOVED},
		&sdl.QuitEvent{},
	)

	events := in.Events()
	if len(events) != 2 {
		t.Fatalf("events = %+v", events)
	}
	if events[0].Type != EventWindowResize || events[0].Width != 800 || events[0].Height != 600 {
		t.Errorf("resize = %+v", events[0])
	}
	if events[1].Type != EventQuit {
		t.Errorf("expected quit, got %+v", events[1])
	}
}
