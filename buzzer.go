// buzzer.go - PWM buzzer channels driven by the note sequencer

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

// PWMOutput is the pair of buzzer pins. Duty is in the 0-1023 range of a
// 10-bit PWM; note loudness only ever reaches the low quarter of it.
type PWMOutput interface {
	SetFrequency(channel int, hz int)
	SetDuty(channel int, duty int)
}

const PWM_DUTY_MAX = 1023

// EnvelopeDuty is the linear decay envelope: full loudness at note on,
// falling to zero at the end of the note. finished is set once elapsed
// reaches duration.
func EnvelopeDuty(durationUs, elapsedUs int64, loudness int) (duty int, finished bool) {
	if durationUs <= 0 || elapsedUs >= durationUs {
		return 0, true
	}
	if elapsedUs < 0 {
		elapsedUs = 0
	}
	remaining := durationUs - elapsedUs
	return int(int64(loudness) * remaining / durationUs), false
}

// Buzzer is one monophonic square channel. All fields are owned by the tick
// goroutine while the timer is armed.
type Buzzer struct {
	channel     int
	out         PWMOutput
	currentFreq int
	loudness    int
	startUs     int64
	durationUs  int64
}

func NewBuzzer(channel int, out PWMOutput) *Buzzer {
	return &Buzzer{channel: channel, out: out}
}

// StartNote retunes the pin if needed and restarts the envelope. A zero
// frequency is a rest: the channel stays silent for the note duration.
func (b *Buzzer) StartNote(freq, loudness int, durationUs, nowUs int64) {
	b.startUs = nowUs
	b.durationUs = durationUs
	b.loudness = loudness
	if freq > 0 {
		if freq != b.currentFreq {
			b.out.SetFrequency(b.channel, freq)
			b.currentFreq = freq
		}
	} else {
		b.loudness = 0
		b.out.SetDuty(b.channel, 0)
	}
}

func (b *Buzzer) Stop() {
	b.durationUs = 0
	b.out.SetDuty(b.channel, 0)
}

func (b *Buzzer) Active() bool {
	return b.durationUs != 0
}

// Update applies the envelope for the current time.
func (b *Buzzer) Update(nowUs int64) {
	if b.durationUs == 0 {
		return
	}
	duty, finished := EnvelopeDuty(b.durationUs, nowUs-b.startUs, b.loudness)
	if finished {
		b.Stop()
		return
	}
	b.out.SetDuty(b.channel, duty)
}
