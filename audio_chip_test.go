package main

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuzzerChip_RegistersClamp(t *testing.T) {
	chip := NewBuzzerChip(SAMPLE_RATE)
	chip.SetFrequency(0, 1_000_000)
	chip.SetDuty(0, 5000)
	chip.SetFrequency(1, -5)
	chip.SetDuty(SEQ_CHANNELS, 100)

	freq, duty := chip.Registers(0)
	assert.Equal(t, SAMPLE_RATE/2, freq)
	assert.Equal(t, PWM_DUTY_MAX, duty)
	freq, _ = chip.Registers(1)
	assert.Equal(t, 0, freq)
}

func TestBuzzerChip_SampleRateFromConfig(t *testing.T) {
	chip := NewBuzzerChip(22050)
	assert.Equal(t, 22050, chip.SampleRate())
	assert.Equal(t, 11025, chip.MaxFrequency())
	chip.SetFrequency(0, 20000)
	freq, _ := chip.Registers(0)
	assert.Equal(t, 11025, freq)

	assert.Equal(t, SAMPLE_RATE, NewBuzzerChip(0).SampleRate())
	assert.Equal(t, SAMPLE_RATE, NewBuzzerChip(MIN_SAMPLE_RATE-1).SampleRate())
	assert.Equal(t, 882, BlockSamples(22050))
	assert.Equal(t, 1764, BlockSamples(SAMPLE_RATE))
}

func TestBuzzerChip_SilentUntilStarted(t *testing.T) {
	chip := NewBuzzerChip(SAMPLE_RATE)
	chip.SetFrequency(0, 440)
	chip.SetDuty(0, 512)
	assert.Equal(t, float32(0), chip.GenerateSample())

	chip.Start()
	defer chip.Stop()
	peak := float32(0)
	for i := 0; i < 200; i++ {
		peak = max(peak, chip.GenerateSample())
	}
	assert.InDelta(t, 0.5, peak, 1e-6)
}

func TestBuzzerChip_SquareWaveHasNoDCOffset(t *testing.T) {
	chip := NewBuzzerChip(SAMPLE_RATE)
	chip.Start()
	defer chip.Stop()
	chip.SetFrequency(0, 441)
	chip.SetDuty(0, 256)

	samples := make([]float32, SAMPLE_RATE)
	chip.GenerateSamples(samples)
	var sum float64
	for i, s := range samples {
		if s > 1 || s < -1 {
			t.Fatalf("sample %d out of range: %f", i, s)
		}
		sum += float64(s)
	}
	assert.Less(t, math.Abs(sum/SAMPLE_RATE), 0.01)
}

func TestBuzzerChip_ZeroDutyIsSilent(t *testing.T) {
	chip := NewBuzzerChip(SAMPLE_RATE)
	chip.Start()
	defer chip.Stop()
	chip.SetFrequency(0, 440)
	chip.SetDuty(0, 0)
	for i := 0; i < 100; i++ {
		assert.Equal(t, float32(0), chip.GenerateSample())
	}
}

func TestBuzzerChip_BlockMatchesSingleSamples(t *testing.T) {
	single := NewBuzzerChip(SAMPLE_RATE)
	block := NewBuzzerChip(SAMPLE_RATE)
	for _, c := range []*BuzzerChip{single, block} {
		c.Start()
		c.SetFrequency(0, 523)
		c.SetDuty(0, 400)
		c.SetFrequency(1, 659)
		c.SetDuty(1, 700)
	}
	defer single.Stop()
	defer block.Stop()

	got := make([]float32, 500)
	block.GenerateSamples(got)
	for i := range got {
		assert.Equal(t, single.GenerateSample(), got[i], "sample %d", i)
	}
}

func TestBuzzerChip_RenderFloat32LE(t *testing.T) {
	chip := NewBuzzerChip(8000)
	ref := NewBuzzerChip(8000)
	for _, c := range []*BuzzerChip{chip, ref} {
		c.Start()
		c.SetFrequency(0, 1000)
		c.SetDuty(0, 512)
	}
	defer chip.Stop()
	defer ref.Stop()

	// More than one scratch block plus a trailing partial sample.
	n := BlockSamples(8000) + 37
	p := make([]byte, n*4+3)
	for i := range p {
		p[i] = 0xAA
	}
	chip.Render(p)

	want := make([]float32, n)
	ref.GenerateSamples(want)
	for i := 0; i < n; i++ {
		got := math.Float32frombits(binary.LittleEndian.Uint32(p[i*4:]))
		require.Equal(t, want[i], got, "sample %d", i)
	}
	assert.Equal(t, []byte{0, 0, 0}, p[n*4:])
}
