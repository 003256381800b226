// Package hostaudio drives a beep/speaker sink from chip8.Machine's
// rendered PCM, replacing the teacher's static beep.mp3 playback with a
// live streamer fed one rendered frame's worth of samples at a time.
package hostaudio

import (
	"fmt"
	"sync"

	"github.com/faiface/beep"
	"github.com/faiface/beep/speaker"

	"github.com/retrobit-labs/chippy/internal/audio"
)

// Sink is a beep.Streamer that plays whatever PCM chunks are pushed to
// it via Push, falling back to silence when the queue runs dry — this is
// the steady-state case between chip8 frames, not an error.
type Sink struct {
	mu      sync.Mutex
	pending [][]float32
	cursor  int
}

// NewSink returns an empty Sink ready to register with speaker.Init and
// speaker.Play.
func NewSink() *Sink {
	return &Sink{}
}

// Push enqueues one frame's worth of mono samples (as produced by
// chip8.Machine.RenderAudio) for playback.
func (s *Sink) Push(samples []float32) {
	if len(samples) == 0 {
		return
	}
	s.mu.Lock()
	s.pending = append(s.pending, samples)
	s.mu.Unlock()
}

// Stream implements beep.Streamer, interleaving the mono signal to
// stereo and filling any gap with silence.
func (s *Sink) Stream(samples [][2]float64) (n int, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for n < len(samples) {
		if len(s.pending) == 0 {
			samples[n][0], samples[n][1] = 0, 0
			n++
			continue
		}
		chunk := s.pending[0]
		v := float64(chunk[s.cursor])
		samples[n][0], samples[n][1] = v, v
		n++
		s.cursor++
		if s.cursor >= len(chunk) {
			s.pending = s.pending[1:]
			s.cursor = 0
		}
	}
	return n, true
}

// Err implements beep.Streamer; the sink never fails.
func (s *Sink) Err() error {
	return nil
}

// Manager owns the speaker connection and the Sink it plays.
type Manager struct {
	sink *Sink
}

// NewManager initializes the speaker at audio.SampleRate and starts
// playing sink in the background. bufferSize is the speaker's internal
// buffer length in samples.
func NewManager(bufferSize int) (*Manager, error) {
	sink := NewSink()
	rate := beep.SampleRate(audio.SampleRate)
	if err := speaker.Init(rate, bufferSize); err != nil {
		return nil, fmt.Errorf("hostaudio: error initializing speaker: %w", err)
	}
	speaker.Play(sink)
	return &Manager{sink: sink}, nil
}

// Push forwards samples to the underlying sink for playback.
func (m *Manager) Push(samples []float32) {
	m.sink.Push(samples)
}
