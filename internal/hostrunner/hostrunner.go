// Package hostrunner drives a chip8.Machine on a fixed-rate ticker in its
// own goroutine, translating a command queue (input, pause/resume, step,
// speed changes, reset, exit) into calls on the machine and publishing
// rendered frames on a bounded output channel. It generalizes the
// teacher's single-purpose Run/Shutdown/audioChan loop into the fuller
// command set a host window needs.
package hostrunner

import (
	"image"
	"time"

	"github.com/retrobit-labs/chippy/internal/chip8"
	"github.com/retrobit-labs/chippy/internal/model"
	"github.com/retrobit-labs/chippy/internal/screen"
)

// Frame is one rendered snapshot, delivered once per tick. Err is set
// (non-nil) when the machine's last tick failed; Image and Audio still
// carry whatever the machine produced before the error.
type Frame struct {
	Image *image.RGBA
	Audio []float32
	Err   error
}

// Command is a single instruction placed on the runner's queue.
type Command struct {
	Kind  CommandKind
	Key   uint8
	Event model.KeyEvent
	// IPF (instructions per frame) for SetIPF, Hz for SetFrequency.
	IPF int
	Hz  float64
}

// CommandKind selects which field of Command is meaningful.
type CommandKind int

const (
	// KeyEventCmd delivers a key press/release (Key, Event).
	KeyEventCmd CommandKind = iota
	// Pause stops ticking the machine, but the runner keeps running.
	Pause
	// Resume resumes ticking after Pause.
	Resume
	// Step ticks the machine exactly once, regardless of pause state.
	Step
	// SetIPF changes how many instructions run per timer tick (IPF).
	SetIPF
	// SetFrequency changes the host's timer/frame rate in Hz (Hz).
	SetFrequency
	// Reset reloads the machine to its freshly-constructed state.
	Reset
	// Exit stops the runner goroutine.
	Exit
)

// Runner owns a chip8.Machine and drives it from its own goroutine.
type Runner struct {
	machine *chip8.Machine
	model   model.Model
	rom     []byte
	palette screen.Palette

	commands chan Command
	frames   chan Frame
	done     chan struct{}

	ipf    int
	hz     float64
	ticker *time.Ticker
}

// New builds a Runner for model m with rom loaded, at the given host
// frequency (Hz) and instructions-per-frame. The frame channel is
// bounded at 2 so a slow consumer drops frames instead of blocking the
// runner indefinitely.
func New(m model.Model, rom []byte, hz float64, ipf int) (*Runner, error) {
	machine, err := chip8.New(m, rom)
	if err != nil {
		return nil, err
	}
	r := &Runner{
		machine:  machine,
		model:    m,
		rom:      rom,
		palette:  screen.DefaultPalette(),
		commands: make(chan Command, 64),
		frames:   make(chan Frame, 2),
		done:     make(chan struct{}),
		ipf:      ipf,
		hz:       hz,
		ticker:   time.NewTicker(time.Duration(float64(time.Second) / hz)),
	}
	return r, nil
}

// Commands returns the channel hosts send Command values on.
func (r *Runner) Commands() chan<- Command {
	return r.commands
}

// Frames returns the channel hosts receive rendered Frame values from.
func (r *Runner) Frames() <-chan Frame {
	return r.frames
}

// Run drives the machine until a Exit command arrives or Stop is called.
// It is meant to be launched with `go r.Run()`.
func (r *Runner) Run() {
	defer r.ticker.Stop()
	paused := false

	for {
		select {
		case <-r.done:
			return
		case cmd := <-r.commands:
			switch cmd.Kind {
			case KeyEventCmd:
				r.machine.Event(cmd.Key, cmd.Event)
			case Pause:
				paused = true
			case Resume:
				paused = false
			case Step:
				r.tickOnce()
			case SetIPF:
				if cmd.IPF > 0 {
					r.ipf = cmd.IPF
				}
			case SetFrequency:
				if cmd.Hz > 0 {
					r.hz = cmd.Hz
					r.ticker.Stop()
					r.ticker = time.NewTicker(time.Duration(float64(time.Second) / cmd.Hz))
				}
			case Reset:
				if machine, err := chip8.New(r.model, r.rom); err == nil {
					r.machine = machine
				}
			case Exit:
				return
			}
		case <-r.ticker.C:
			if paused {
				continue
			}
			r.tickOnce()
		}
	}
}

// Stop asks Run to return. Safe to call more than once.
func (r *Runner) Stop() {
	select {
	case <-r.done:
	default:
		close(r.done)
	}
}

func (r *Runner) tickOnce() {
	r.machine.TickTimers()
	err := r.machine.TickMany(r.ipf)

	frame := Frame{
		Image: r.machine.RenderFrame(r.palette),
		Audio: r.machine.RenderAudio(1.0 / r.hz),
		Err:   err,
	}
	select {
	case r.frames <- frame:
	default:
		// Drop the frame rather than block the tick loop on a slow
		// consumer; the host will just see the next one sooner.
	}
}
