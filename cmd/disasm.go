package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/retrobit-labs/chippy/internal/disasm"
	"github.com/retrobit-labs/chippy/internal/model"
)

var disasmModelFlag string

// disasmCmd disassembles a ROM to Octo assembly syntax, one instruction
// per line, without ever running it.
var disasmCmd = &cobra.Command{
	Use:   "disasm path/to/rom",
	Short: "disassemble a ROM to Octo assembly syntax",
	Args:  cobra.ExactArgs(1),
	Run:   runDisasm,
}

func init() {
	disasmCmd.Flags().StringVar(&disasmModelFlag, "model", "schip-modern", "variant to decode for: vip, schip, schip-modern, xochip")
}

func runDisasm(cmd *cobra.Command, args []string) {
	m, err := parseModel(disasmModelFlag)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	rom, err := os.ReadFile(args[0])
	if err != nil {
		fmt.Printf("error reading rom: %v\n", err)
		os.Exit(1)
	}

	tier := model.InstructionTier(m)
	for _, line := range disasm.Program(rom, 0x200, tier) {
		fmt.Println(line.String())
	}
}
