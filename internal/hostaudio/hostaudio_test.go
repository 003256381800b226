package hostaudio

import "testing"

func TestStreamFallsBackToSilenceWhenEmpty(t *testing.T) {
	s := NewSink()
	buf := make([][2]float64, 4)
	n, ok := s.Stream(buf)
	if !ok || n != 4 {
		t.Fatalf("Stream() = (%d, %v), want (4, true)", n, ok)
	}
	for i, sample := range buf {
		if sample[0] != 0 || sample[1] != 0 {
			t.Errorf("sample %d = %v, want silence", i, sample)
		}
	}
}

func TestStreamPlaysPushedSamplesInterleavedToStereo(t *testing.T) {
	s := NewSink()
	s.Push([]float32{1, -1, 0.5})
	buf := make([][2]float64, 3)
	n, ok := s.Stream(buf)
	if !ok || n != 3 {
		t.Fatalf("Stream() = (%d, %v), want (3, true)", n, ok)
	}
	want := []float64{1, -1, 0.5}
	for i, w := range want {
		if buf[i][0] != w || buf[i][1] != w {
			t.Errorf("sample %d = %v, want (%v, %v)", i, buf[i], w, w)
		}
	}
}

func TestStreamFallsBackToSilenceAfterExhaustingQueue(t *testing.T) {
	s := NewSink()
	s.Push([]float32{1})
	buf := make([][2]float64, 3)
	s.Stream(buf)
	if buf[1][0] != 0 || buf[2][0] != 0 {
		t.Errorf("samples after exhausting the queue should be silent, got %v", buf[1:])
	}
}

func TestStreamAdvancesAcrossMultiplePushedChunks(t *testing.T) {
	s := NewSink()
	s.Push([]float32{1, 2})
	s.Push([]float32{3, 4})
	buf := make([][2]float64, 4)
	n, _ := s.Stream(buf)
	if n != 4 {
		t.Fatalf("n = %d, want 4", n)
	}
	want := []float64{1, 2, 3, 4}
	for i, w := range want {
		if buf[i][0] != w {
			t.Errorf("sample %d = %v, want %v", i, buf[i][0], w)
		}
	}
}

func TestPushIgnoresEmptySlices(t *testing.T) {
	s := NewSink()
	s.Push(nil)
	if len(s.pending) != 0 {
		t.Error("pushing an empty slice should not enqueue a chunk")
	}
}

func TestErrIsAlwaysNil(t *testing.T) {
	s := NewSink()
	if s.Err() != nil {
		t.Error("Sink.Err() should always be nil")
	}
}
