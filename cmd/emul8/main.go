/*
 * Copyright 2026 Joshua Jones <joshua.jones.software@gmail.com>
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *      www.apache.org
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/retroenv/retrogolib/log"
	"github.com/senojj/emul8"
	"github.com/senojj/emul8/chip8"
)

type optionFlags struct {
	input    string
	clock    int
	headless bool
	cycles   int
	disasm   bool
}

func main() {
	options, cfg := readArguments()
	logger := emul8.NewLogger(cfg)

	if err := run(logger, options, cfg); err != nil {
		logger.Error("Emulation failed", err)
		os.Exit(1)
	}
}

func readArguments() (optionFlags, emul8.Config) {
	flags := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	options := optionFlags{}
	cfg := emul8.DefaultConfig()

	flags.IntVar(&options.clock, "clock", 700, "instruction clock in hz")
	flags.Uint64Var(&cfg.Seed, "seed", 0, "seed for the random number instruction, 0 picks one")
	flags.IntVar(&cfg.Scale, "scale", cfg.Scale, "window pixels per display pixel")
	flags.BoolVar(&cfg.Debug, "debug", false, "trace every executed instruction")
	flags.BoolVar(&cfg.Quiet, "q", false, "only log errors")
	flags.BoolVar(&options.headless, "headless", false, "run without a window and print the display on exit")
	flags.IntVar(&options.cycles, "cycles", 1000, "instruction cycles to run in headless mode")
	flags.BoolVar(&options.disasm, "disasm", false, "print a listing of the program and exit")

	err := flags.Parse(os.Args[1:])
	args := flags.Args()

	if err != nil || len(args) == 0 || options.clock <= 0 {
		fmt.Printf("usage: emul8 [options] <program file>\n\n")
		flags.PrintDefaults()
		os.Exit(1)
	}
	options.input = args[0]
	cfg.ClockRate = time.Second / time.Duration(options.clock)

	return options, cfg
}

func run(logger *log.Logger, options optionFlags, cfg emul8.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	image, err := os.ReadFile(options.input)
	if err != nil {
		return fmt.Errorf("reading file '%s': %w", options.input, err)
	}

	if options.disasm {
		return emul8.Disassemble(os.Stdout, image)
	}

	machine := emul8.NewMachine(chip8.New(cfg.VMOptions()...), cfg, logger)
	if err := machine.Load(image); err != nil {
		return err
	}

	if options.headless {
		if err := machine.RunCycles(options.cycles); err != nil {
			return err
		}
		snap := machine.Snapshot()
		return emul8.RenderText(os.Stdout, snap.Display[:])
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	return emul8.NewEmulator(machine, cfg, logger).Run(ctx)
}
