// Package audio implements the XO-CHIP audio pattern generator: a
// 128-bit waveform table played back at a pitch-controlled rate and
// rendered to mono PCM samples on demand.
package audio

import "math"

// SampleRate is the output sample rate in Hz that Render always targets.
const SampleRate = 44100

// DefaultPattern is the pattern XO-CHIP programs see before any 0xF002
// pattern load: alternating 0xFF/0x00 bytes, producing a square wave at
// the default pitch.
var DefaultPattern = [16]byte{
	0x00, 0xFF, 0x00, 0xFF, 0x00, 0xFF, 0x00, 0xFF,
	0x00, 0xFF, 0x00, 0xFF, 0x00, 0xFF, 0x00, 0xFF,
}

// PitchToRate converts an XO-CHIP pitch register value (0-255, 64 is
// "middle C" at 4000 Hz) into a playback rate in pattern-bits per second.
func PitchToRate(pitch uint8) float64 {
	return 4000.0 * math.Pow(2, (float64(pitch)-64.0)/48.0)
}

// Generator is the persistent phase accumulator behind the pattern
// buzzer. It holds no pitch or pattern state of its own — those live on
// the interpreter's sound registers and are passed to Render — only the
// playback phase survives between renders, so a pitch or pattern change
// mid-tone does not click the waveform back to its start.
type Generator struct {
	counter float64
}

// NewGenerator returns a silent, phase-zeroed generator.
func NewGenerator() *Generator {
	return &Generator{}
}

// Reset zeros the playback phase. The interpreter calls this whenever
// the sound timer transitions from zero back to active, so every beep
// starts the pattern from its first bit.
func (g *Generator) Reset() {
	g.counter = 0
}

// Render produces the mono samples needed to cover a dt-second slice of
// audio at pitch and pattern, advancing the generator's phase by dt.
// Each sample is +1.0 or -1.0 depending on the pattern bit the phase
// lands on; dt slices that don't land on an exact sample boundary are
// rounded to the nearest sample count, matching how the interpreter's
// timer-driven cadence already produces approximate frame lengths.
func (g *Generator) Render(pitch uint8, pattern [16]byte, dt float64) []float32 {
	n := int(math.Round(dt * SampleRate))
	if n <= 0 {
		return nil
	}
	rate := PitchToRate(pitch)
	samples := make([]float32, n)
	for i := 0; i < n; i++ {
		g.counter += rate / SampleRate
		g.counter = math.Mod(g.counter, 128.0)
		index := uint8(math.Round(g.counter)) % 128
		if patternBit(pattern, index) {
			samples[i] = 1.0
		} else {
			samples[i] = -1.0
		}
	}
	return samples
}

func patternBit(pattern [16]byte, index uint8) bool {
	byteIdx := index / 8
	bitIdx := 7 - (index % 8)
	return pattern[byteIdx]&(1<<bitIdx) != 0
}
