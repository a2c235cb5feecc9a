// Command rv32sim loads a flat RV32IMA binary image and runs it to
// completion or until an illegal instruction halts the machine.
package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:      "rv32sim",
		Usage:     "RISC-V 32-bit (RV32IMA) interpreter",
		UsageText: "rv32sim [options] <binary-file>",
		Flags: []cli.Flag{
			debugFlag,
			maxStepsFlag,
			disassembleFlag,
			cpuProfileFlag,
		},
		Action: Run,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "rv32sim: %v\n", err)
		os.Exit(1)
	}
}
