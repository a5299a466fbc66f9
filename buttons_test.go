package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func newTestButton(level *bool) *Button {
	return NewButton(func() bool { return *level }, BUTTON_DEBOUNCE, BUTTON_LONG_PRESS)
}

func TestButton_PressAfterDebounce(t *testing.T) {
	level := false
	b := newTestButton(&level)

	level = true
	b.Update(10 * time.Millisecond)
	assert.False(t, b.WasPressed(), "still bouncing")
	b.Update(30 * time.Millisecond)
	assert.False(t, b.WasPressed(), "exactly at the debounce window")
	b.Update(31 * time.Millisecond)
	assert.True(t, b.Held())
	assert.True(t, b.WasPressed())
	assert.False(t, b.WasPressed(), "events latch once")

	level = false
	b.Update(40 * time.Millisecond)
	b.Update(61 * time.Millisecond)
	assert.False(t, b.Held())
	assert.False(t, b.WasPressed())
}

func TestButton_BounceIsIgnored(t *testing.T) {
	level := false
	b := newTestButton(&level)
	for ms := 0; ms < 200; ms += 5 {
		level = !level
		b.Update(time.Duration(ms) * time.Millisecond)
	}
	assert.False(t, b.WasPressed())
	assert.False(t, b.Held())
}

func TestButton_LongPress(t *testing.T) {
	level := false
	b := newTestButton(&level)

	level = true
	b.Update(0)
	b.Update(21 * time.Millisecond)
	b.Update(400 * time.Millisecond)
	assert.False(t, b.WasLongPressed())

	b.Update(522 * time.Millisecond)
	assert.True(t, b.WasLongPressed())
	assert.False(t, b.WasPressed(), "a hold is not also a tap")

	b.Update(2 * time.Second)
	assert.False(t, b.WasLongPressed(), "long press fires once per hold")
}

func TestButton_Consume(t *testing.T) {
	level := false
	b := newTestButton(&level)
	level = true
	b.Update(0)
	b.Update(25 * time.Millisecond)
	b.Consume()
	assert.False(t, b.WasPressed())
	assert.True(t, b.Held())
}

func TestButtonPad_Tap(t *testing.T) {
	pad := NewButtonPad()
	pad.Tap(BTN_NEXT, 2)

	assert.True(t, pad.Level(BTN_NEXT))
	assert.True(t, pad.Level(BTN_NEXT))
	assert.False(t, pad.Level(BTN_NEXT))
	assert.False(t, pad.Level(BTN_CONFIRM))

	pad.Press(BTN_MENU)
	assert.True(t, pad.Level(BTN_MENU))
	pad.Release(BTN_MENU)
	assert.False(t, pad.Level(BTN_MENU))

	pad.Press(BTN_COUNT)
	pad.Tap(-1, 5)
}

func TestButtonPad_TapBecomesPress(t *testing.T) {
	pad := NewButtonPad()
	buttons := pad.Buttons(BUTTON_DEBOUNCE, BUTTON_LONG_PRESS)
	confirm := buttons[BTN_CONFIRM]

	pad.Tap(BTN_CONFIRM, TAP_SHORT)
	now := time.Duration(0)
	pressed := false
	for i := 0; i < 10; i++ {
		now += 10 * time.Millisecond
		confirm.Update(now)
		pressed = pressed || confirm.WasPressed()
	}
	assert.True(t, pressed)
	assert.False(t, confirm.Held())
}

func TestButtonPad_LongTapBecomesLongPress(t *testing.T) {
	pad := NewButtonPad()
	confirm := pad.Buttons(BUTTON_DEBOUNCE, BUTTON_LONG_PRESS)[BTN_CONFIRM]

	pad.Tap(BTN_CONFIRM, TAP_LONG)
	now := time.Duration(0)
	long := false
	for i := 0; i < 40; i++ {
		now += 20 * time.Millisecond
		confirm.Update(now)
		long = long || confirm.WasLongPressed()
	}
	assert.True(t, long)
}
