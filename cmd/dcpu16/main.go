package main

import (
	"fmt"
	"os"
	"time"

	"github.com/oisee/dcpu16/pkg/cpu"
	"github.com/oisee/dcpu16/pkg/hw"
	"github.com/oisee/dcpu16/pkg/inst"
	"github.com/oisee/dcpu16/pkg/program"
	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "dcpu16",
		Short: "DCPU-16 emulator — run word images on the virtual machine",
	}

	// run command
	var baseAddr uint16
	var batch int
	var maxCycles uint64
	var monitor bool

	runCmd := &cobra.Command{
		Use:   "run [image.bin]",
		Short: "Load a big-endian binary image and run it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read image: %w", err)
			}
			prog := program.FromBytes(data)

			machine := cpu.New()
			machine.Load(baseAddr, prog.Words())

			var screen *hw.Monitor
			if monitor {
				screen = hw.NewMonitor()
				machine.AttachDevice(screen)
				fmt.Print("\x1b[2J")
			}

			for maxCycles == 0 || machine.Cycle() < maxCycles {
				for i := 0; i < batch; i++ {
					if err := machine.Tick(); err != nil {
						return fmt.Errorf("program aborted at PC=%#04x: %w",
							machine.Register(inst.PC), err)
					}
				}
				if machine.OnFire() {
					return fmt.Errorf("processor is on fire: interrupt queue overflow")
				}
				if screen != nil {
					fmt.Print(screen.Render(machine))
					time.Sleep(50 * time.Millisecond)
				}
			}

			fmt.Println()
			dumpState(machine)
			return nil
		},
	}
	runCmd.Flags().Uint16Var(&baseAddr, "base", 0, "Load address for the image")
	runCmd.Flags().IntVar(&batch, "batch", 5000, "Ticks per render frame")
	runCmd.Flags().Uint64Var(&maxCycles, "cycles", 0, "Stop after this many cycles (0 = run forever)")
	runCmd.Flags().BoolVar(&monitor, "monitor", true, "Attach the monitor device and render it")

	rootCmd.AddCommand(runCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func dumpState(machine *cpu.Processor) {
	regs := []inst.Register{
		inst.A, inst.B, inst.C, inst.X, inst.Y, inst.Z, inst.I, inst.J,
		inst.SP, inst.PC, inst.EX, inst.IA,
	}
	for _, r := range regs {
		fmt.Printf("%-3s %#04x\n", r, machine.Register(r))
	}
	fmt.Printf("cycles %d\n", machine.Cycle())
}
