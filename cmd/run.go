package cmd

import (
	"fmt"
	"os"

	"github.com/faiface/pixel/pixelgl"
	"github.com/spf13/cobra"

	"github.com/retrobit-labs/chippy/internal/hostaudio"
	"github.com/retrobit-labs/chippy/internal/hostrunner"
	"github.com/retrobit-labs/chippy/internal/hostwindow"
	"github.com/retrobit-labs/chippy/internal/model"
)

var (
	runModelFlag string
	runIPFFlag   int
	runHzFlag    float64
)

// runCmd runs the chippy emulator against a ROM file until the window closes.
var runCmd = &cobra.Command{
	Use:   "run path/to/rom",
	Short: "run a ROM in the chippy emulator",
	Args:  cobra.ExactArgs(1),
	Run:   runChippy,
}

func init() {
	runCmd.Flags().StringVar(&runModelFlag, "model", "schip-modern", "variant to emulate: vip, schip, schip-modern, xochip")
	runCmd.Flags().IntVar(&runIPFFlag, "ipf", 11, "instructions executed per timer tick")
	runCmd.Flags().Float64Var(&runHzFlag, "hz", 0, "host frame rate in Hz (0 uses the model's default)")
}

func runChippy(cmd *cobra.Command, args []string) {
	m, err := parseModel(runModelFlag)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	rom, err := os.ReadFile(args[0])
	if err != nil {
		fmt.Printf("error reading rom: %v\n", err)
		os.Exit(1)
	}
	hz := runHzFlag
	if hz <= 0 {
		hz = model.DefaultFrameRate(m)
	}

	runner, err := hostrunner.New(m, rom, hz, runIPFFlag)
	if err != nil {
		fmt.Printf("error creating chip8 machine: %v\n", err)
		os.Exit(1)
	}

	// pixelgl needs to run on the goroutine Execute was originally called
	// from; cobra's command dispatch doesn't hop goroutines, so this is
	// equivalent to calling pixelgl.Run from func main.
	pixelgl.Run(func() {
		runWindowed(runner)
	})
}

func runWindowed(runner *hostrunner.Runner) {
	win, err := hostwindow.New()
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	audioManager, err := hostaudio.NewManager(4096)
	if err != nil {
		fmt.Println(err)
	}

	go runner.Run()
	defer runner.Stop()

	for !win.Closed() {
		for _, t := range win.PollInput() {
			runner.Commands() <- hostrunner.Command{Kind: hostrunner.KeyEventCmd, Key: t.Key, Event: t.Event}
		}

		select {
		case frame := <-runner.Frames():
			if frame.Err != nil {
				fmt.Printf("chip8: %v\n", frame.Err)
			}
			if frame.Image != nil {
				win.DrawFrame(frame.Image)
			}
			if audioManager != nil {
				audioManager.Push(frame.Audio)
			}
		default:
			win.UpdateInput()
		}
	}
}
