package main

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/pkg/profile"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/chn-dev/RISC-V/rv32"
)

// HexU32 lazy-formats an address for structured log fields, in the
// style of asterisc's own cmd.HexU32 helper.
type HexU32 uint32

func (v HexU32) String() string { return fmt.Sprintf("0x%08x", uint32(v)) }

var (
	debugFlag = &cli.BoolFlag{
		Name:  "debug",
		Usage: "log one line per retired instruction at debug level",
	}
	maxStepsFlag = &cli.Uint64Flag{
		Name:  "max-steps",
		Usage: "stop after this many steps (0 = unbounded)",
		Value: 0,
	}
	disassembleFlag = &cli.BoolFlag{
		Name:  "disassemble",
		Usage: "print the canonical disassembly of each retired instruction instead of only tracing",
	}
	cpuProfileFlag = &cli.BoolFlag{
		Name:  "cpuprofile",
		Usage: "write a CPU profile of the run to the current directory",
	}
)

// Run is the CLI entry point: <program> <binary-file> (spec §6), plus
// the ambient debug/step-limit/profiling flags layered on top.
func Run(c *cli.Context) error {
	if c.NArg() < 1 {
		return errors.New("missing required argument: <binary-file>")
	}
	path := c.Args().Get(0)

	if c.Bool(cpuProfileFlag.Name) {
		defer profile.Start(profile.NoShutdownHook, profile.ProfilePath("."), profile.CPUProfile).Stop()
	}

	log := logrus.New()
	log.SetOutput(os.Stderr)
	if c.Bool(debugFlag.Name) {
		log.SetLevel(logrus.DebugLevel)
	}

	image, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, "failed to read binary image %q", path)
	}

	mem := rv32.NewConsoleMemory(os.Stdout)
	if err := mem.LoadImage(image); err != nil {
		return errors.Wrap(err, "failed to load image into RAM")
	}

	log.WithFields(logrus.Fields{
		"path":  path,
		"bytes": len(image),
		"entry": HexU32(rv32.ResetPC),
	}).Info("loaded image")

	cpu := rv32.NewCPU(mem)

	var sink rv32.Sink
	if c.Bool(disassembleFlag.Name) {
		sink = rv32.SinkFunc(func(instr rv32.Instruction) {
			os.Stdout.WriteString(fmt.Sprintf("%s  %s\n", HexU32(instr.Address), instr.String()))
		})
	}

	maxSteps := c.Uint64(maxStepsFlag.Name)
	debug := c.Bool(debugFlag.Name)

	var step uint64
	for !cpu.EmulationStopped() {
		if maxSteps != 0 && step >= maxSteps {
			break
		}
		if debug {
			log.WithFields(logrus.Fields{
				"step": step,
				"pc":   HexU32(cpu.PC()),
			}).Debug("step")
		}
		cpu.Step(sink)
		step++
	}

	if cpu.EmulationStopped() {
		log.WithFields(logrus.Fields{
			"pc":   HexU32(cpu.StoppedPC()),
			"step": step,
		}).Error("illegal instruction, machine halted")
		return errors.Errorf("illegal instruction at pc=%s", HexU32(cpu.StoppedPC()))
	}

	return nil
}

