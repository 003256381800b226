package audio

import "testing"

func TestPitchToRateMiddleIsFourKHz(t *testing.T) {
	if got := PitchToRate(64); got != 4000.0 {
		t.Errorf("PitchToRate(64) = %v, want 4000", got)
	}
}

func TestPitchToRateDoublesPerOctave(t *testing.T) {
	// Pitch 64+48 is one octave above middle, so the rate should double.
	base := PitchToRate(64)
	octaveUp := PitchToRate(64 + 48)
	if diff := octaveUp - 2*base; diff > 1e-6 || diff < -1e-6 {
		t.Errorf("PitchToRate(112) = %v, want %v (double of %v)", octaveUp, 2*base, base)
	}
}

func TestPatternBitMatchesByteOrder(t *testing.T) {
	pattern := DefaultPattern // 0x00, 0xFF, 0x00, 0xFF, ...
	if patternBit(pattern, 0) {
		t.Error("bit 0 should come from the first (0x00) byte and be clear")
	}
	if !patternBit(pattern, 8) {
		t.Error("bit 8 should come from the second (0xFF) byte and be set")
	}
	if !patternBit(pattern, 15) {
		t.Error("bit 15 (last bit of 0xFF) should be set")
	}
}

func TestRenderProducesExpectedSampleCount(t *testing.T) {
	g := NewGenerator()
	samples := g.Render(64, DefaultPattern, 0.1)
	want := SampleRate / 10
	if len(samples) != want {
		t.Fatalf("len(samples) = %d, want %d", len(samples), want)
	}
	for _, s := range samples {
		if s != 1.0 && s != -1.0 {
			t.Fatalf("sample %v is not a square wave extreme", s)
		}
	}
}

func TestRenderZeroDurationProducesNothing(t *testing.T) {
	g := NewGenerator()
	if samples := g.Render(64, DefaultPattern, 0); samples != nil {
		t.Errorf("Render with dt=0 should produce no samples, got %d", len(samples))
	}
}

func TestResetRestartsPhaseFromZero(t *testing.T) {
	g := NewGenerator()
	g.Render(64, DefaultPattern, 0.05) // advance the phase partway through
	g.Reset()

	fresh := NewGenerator()
	afterReset := g.Render(64, DefaultPattern, 0.01)
	fromFresh := fresh.Render(64, DefaultPattern, 0.01)
	for i := range afterReset {
		if afterReset[i] != fromFresh[i] {
			t.Fatalf("sample %d after Reset = %v, want %v (matching a fresh generator)", i, afterReset[i], fromFresh[i])
		}
	}
}
