// audio_chip.go - Square-wave buzzer mixer behind the audio backends

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
	"encoding/binary"
	"fmt"
	"math"
	"sync"
	"time"
)

const (
	SAMPLE_RATE     = 44100
	MIN_SAMPLE_RATE = 8000
	BUZZER_LATENCY  = 40 * time.Millisecond
)

const (
	BUZZER_MIX_LEVEL = 0.5 // 1/2 for 2 channels
	BUZZER_GAIN      = 2.0 // pulse minus its mean never exceeds 0.5
)

// Audio backends
const (
	AUDIO_BACKEND_OTO = iota
)

// AudioOutput is implemented by the audio backends that pull samples from
// the chip.
type AudioOutput interface {
	Start()
	Stop()
	Close()
	IsStarted() bool
}

// NewAudioOutput creates an audio output for the given backend, pulling
// from chip at the chip's sample rate.
func NewAudioOutput(backend int, chip *BuzzerChip) (AudioOutput, error) {
	switch backend {
	case AUDIO_BACKEND_OTO:
		player, err := NewOtoPlayer(chip)
		if err != nil {
			return nil, &AudioError{Operation: "backend creation", Details: "oto context", Err: err}
		}
		return player, nil
	}
	return nil, &AudioError{
		Operation: "backend creation",
		Details:   fmt.Sprintf("unknown backend type: %d", backend),
	}
}

type buzzerVoice struct {
	frequency int     // Pin frequency in Hz
	duty      int     // Raw 10-bit duty register
	phase     float32 // Position within the current period (0-1)
	width     float32 // Pulse width derived from duty (0-1)
}

// BuzzerChip renders the two PWM buzzer pins as audio. The sequencer writes
// the frequency and duty registers; the audio backend pulls blocks of
// samples.
type BuzzerChip struct {
	voices     [SEQ_CHANNELS]buzzerVoice
	sampleRate int
	enabled    bool
	scratch    []float32 // Render's block, reused across pulls
	mutex      sync.Mutex
	output     AudioOutput
}

// NewBuzzerChip creates the chip without an audio backend. Rates below
// MIN_SAMPLE_RATE fall back to SAMPLE_RATE.
func NewBuzzerChip(sampleRate int) *BuzzerChip {
	if sampleRate < MIN_SAMPLE_RATE {
		sampleRate = SAMPLE_RATE
	}
	return &BuzzerChip{
		sampleRate: sampleRate,
		scratch:    make([]float32, BlockSamples(sampleRate)),
	}
}

// BlockSamples is the number of samples covering BUZZER_LATENCY.
func BlockSamples(sampleRate int) int {
	return int(int64(sampleRate) * int64(BUZZER_LATENCY) / int64(time.Second))
}

func (chip *BuzzerChip) SampleRate() int {
	return chip.sampleRate
}

// MaxFrequency is the Nyquist limit of the chip.
func (chip *BuzzerChip) MaxFrequency() int {
	return chip.sampleRate / 2
}

// AttachOutput creates the audio backend for the chip.
func (chip *BuzzerChip) AttachOutput(backend int) error {
	output, err := NewAudioOutput(backend, chip)
	if err != nil {
		return err
	}
	chip.mutex.Lock()
	chip.output = output
	chip.mutex.Unlock()
	return nil
}

func (chip *BuzzerChip) SetFrequency(channel int, hz int) {
	if channel < 0 || channel >= SEQ_CHANNELS {
		return
	}
	chip.mutex.Lock()
	defer chip.mutex.Unlock()
	chip.voices[channel].frequency = min(max(hz, 0), chip.MaxFrequency())
}

func (chip *BuzzerChip) SetDuty(channel int, duty int) {
	if channel < 0 || channel >= SEQ_CHANNELS {
		return
	}
	chip.mutex.Lock()
	defer chip.mutex.Unlock()
	v := &chip.voices[channel]
	v.duty = min(max(duty, 0), PWM_DUTY_MAX)
	v.width = float32(v.duty) / float32(PWM_DUTY_MAX+1)
}

// Registers returns the current frequency and duty of a pin.
func (chip *BuzzerChip) Registers(channel int) (freq int, duty int) {
	chip.mutex.Lock()
	defer chip.mutex.Unlock()
	v := chip.voices[channel]
	return v.frequency, v.duty
}

func (v *buzzerVoice) generateSample(step float32) float32 {
	if v.frequency == 0 || v.duty == 0 {
		return 0
	}
	var pulse float32
	if v.phase < v.width {
		pulse = 1
	}
	v.phase += float32(v.frequency) * step
	if v.phase >= 1 {
		v.phase -= 1
	}
	// A piezo only hears the AC part of the pulse train
	return (pulse - v.width) * BUZZER_GAIN
}

// GenerateSamples fills dst with the mix of both pins. The registers are
// read once per block, so a note change lands on a block boundary.
func (chip *BuzzerChip) GenerateSamples(dst []float32) {
	chip.mutex.Lock()
	defer chip.mutex.Unlock()

	if !chip.enabled {
		clear(dst)
		return
	}
	step := 1 / float32(chip.sampleRate)
	for i := range dst {
		var sample float32
		for v := range chip.voices {
			sample += chip.voices[v].generateSample(step) * BUZZER_MIX_LEVEL
		}
		dst[i] = max(min(sample, 1.0), -1.0)
	}
}

func (chip *BuzzerChip) GenerateSample() float32 {
	var one [1]float32
	chip.GenerateSamples(one[:])
	return one[0]
}

// Render fills p with float32 little-endian mono samples, the format the
// oto context is opened with. A trailing partial sample is zeroed. Render
// belongs to the single audio pull goroutine.
func (chip *BuzzerChip) Render(p []byte) {
	n := len(p) / 4
	for off := 0; off < n; {
		block := chip.scratch[:min(n-off, len(chip.scratch))]
		chip.GenerateSamples(block)
		for i, s := range block {
			binary.LittleEndian.PutUint32(p[(off+i)*4:], math.Float32bits(s))
		}
		off += len(block)
	}
	clear(p[n*4:])
}

func (chip *BuzzerChip) Start() {
	chip.mutex.Lock()
	chip.enabled = true
	output := chip.output
	chip.mutex.Unlock()
	if output != nil {
		output.Start()
	}
}

func (chip *BuzzerChip) Stop() {
	chip.mutex.Lock()
	chip.enabled = false
	output := chip.output
	chip.mutex.Unlock()
	if output != nil {
		output.Stop()
		output.Close()
	}
}
