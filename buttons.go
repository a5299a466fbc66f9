// buttons.go - Debounced three-button input with long-press detection

/*
 ██▓ ███▄    █ ▄▄▄█████▓ █    ██  ██▓▄▄▄█████▓ ██▓ ▒█████   ███▄    █    ▓█████  ███▄    █   ▄████  ██▓ ███▄    █ ▓█████
▓██▒ ██ ▀█   █ ▓  ██▒ ▓▒ ██  ▓██▒▓██▒▓  ██▒ ▓▒▓██▒▒██▒  ██▒ ██ ▀█   █    ▓█   ▀  ██ ▀█   █  ██▒ ▀█▒▓██▒ ██ ▀█   █ ▓█   ▀
▒██▒▓██  ▀█ ██▒▒ ▓██░ ▒░▓██  ▒██░▒██▒▒ ▓██░ ▒░▒██▒▒██░  ██▒▓██  ▀█ ██▒   ▒███   ▓██  ▀█ ██▒▒██░▄▄▄░▒██▒▓██  ▀█ ██▒▒███
░██░▓██▒  ▐▌██▒░ ▓██▓ ░ ▓▓█  ░██░░██░░ ▓██▓ ░ ░██░▒██   ██░▓██▒  ▐▌██▒   ▒▓█  ▄ ▓██▒  ▐▌██▒░▓█  ██▓░██░▓██▒  ▐▌██▒▒▓█  ▄
░██░▒██░   ▓██░  ▒██▒ ░ ▒▒█████▓ ░██░  ▒██▒ ░ ░██░░ ████▓▒░▒██░   ▓██░   ░▒████▒▒██░   ▓██░░▒▓███▀▒░██░▒██░   ▓██░░▒████▒
░▓  ░ ▒░   ▒ ▒   ▒ ░░   ░▒▓▒ ▒ ▒ ░▓    ▒ ░░   ░▓  ░ ▒░▒░▒░ ░ ▒░   ▒ ▒    ░░ ▒░ ░░ ▒░   ▒ ▒  ░▒   ▒ ░▓  ░ ▒░   ▒ ▒ ░░ ▒░ ░
 ▒ ░░ ░░   ░ ▒░    ░    ░░▒░ ░ ░  ▒ ░    ░     ▒ ░  ░ ▒ ▒░ ░ ░░   ░ ▒░    ░ ░  ░░ ░░   ░ ▒░  ░   ░  ▒ ░░ ░░   ░ ▒░ ░ ░  ░
 ▒ ░   ░   ░ ░   ░       ░░░ ░ ░  ▒ ░  ░       ▒ ░░ ░ ░ ▒     ░   ░ ░       ░      ░   ░ ░ ░ ░   ░  ▒ ░   ░   ░ ░    ░
 ░           ░             ░      ░            ░      ░ ░           ░       ░  ░         ░       ░  ░           ░    ░  ░

(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/IntuitionEngine
License: GPLv3 or later
*/

package main

import (
	"sync/atomic"
	"time"
)

const (
	BUTTON_DEBOUNCE   = 20 * time.Millisecond
	BUTTON_LONG_PRESS = 500 * time.Millisecond
)

// Button indices on the pad
const (
	BTN_CONFIRM = iota
	BTN_NEXT
	BTN_MENU
	BTN_COUNT
)

// Button debounces a level input into press and long-press events. Both
// events latch until read. Update and the queries belong to the foreground
// loop.
type Button struct {
	level     func() bool
	debounce  time.Duration
	longPress time.Duration

	lastRaw     bool
	state       bool
	lastChange  time.Duration
	pressStart  time.Duration
	longFired   bool
	pressed     bool
	longPressed bool
}

func NewButton(level func() bool, debounce, longPress time.Duration) *Button {
	b := &Button{level: level, debounce: debounce, longPress: longPress}
	b.lastRaw = level()
	b.state = b.lastRaw
	return b
}

// Update samples the input at time now.
func (b *Button) Update(now time.Duration) {
	raw := b.level()
	if raw != b.lastRaw {
		b.lastChange = now
	}
	if now-b.lastChange > b.debounce && raw != b.state {
		b.state = raw
		if b.state {
			b.pressStart = now
			b.longFired = false
			b.pressed = true
		}
	}
	b.lastRaw = raw

	if b.state && !b.longFired && now-b.pressStart > b.longPress {
		b.longPressed = true
		b.longFired = true
		// A hold is not also a tap.
		b.pressed = false
	}
}

func (b *Button) WasPressed() bool {
	p := b.pressed
	b.pressed = false
	return p
}

func (b *Button) WasLongPressed() bool {
	p := b.longPressed
	b.longPressed = false
	return p
}

// Consume drops any latched events.
func (b *Button) Consume() {
	b.pressed = false
	b.longPressed = false
}

func (b *Button) Held() bool {
	return b.state
}

// ButtonPad holds the raw levels of the three buttons. Input backends write
// it from their own goroutines; Buttons read it on the foreground loop.
type ButtonPad struct {
	levels [BTN_COUNT]atomic.Bool
	holds  [BTN_COUNT]atomic.Int64
}

func NewButtonPad() *ButtonPad {
	return &ButtonPad{}
}

func (p *ButtonPad) Press(btn int) {
	if btn >= 0 && btn < BTN_COUNT {
		p.levels[btn].Store(true)
	}
}

func (p *ButtonPad) Release(btn int) {
	if btn >= 0 && btn < BTN_COUNT {
		p.levels[btn].Store(false)
	}
}

// Tap holds btn down for the given number of foreground samples. Terminal
// input has no key-up events, so a keypress becomes a timed hold.
func (p *ButtonPad) Tap(btn int, samples int) {
	if btn >= 0 && btn < BTN_COUNT {
		p.holds[btn].Store(int64(samples))
	}
}

// Level reads a button, counting down any pending tap.
func (p *ButtonPad) Level(btn int) bool {
	if p.levels[btn].Load() {
		return true
	}
	for {
		n := p.holds[btn].Load()
		if n <= 0 {
			return false
		}
		if p.holds[btn].CompareAndSwap(n, n-1) {
			return true
		}
	}
}

// Buttons builds debounced buttons reading this pad.
func (p *ButtonPad) Buttons(debounce, longPress time.Duration) [BTN_COUNT]*Button {
	var out [BTN_COUNT]*Button
	for i := range out {
		btn := i
		out[i] = NewButton(func() bool { return p.Level(btn) }, debounce, longPress)
	}
	return out
}
