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

package emul8

import (
	"errors"
	"fmt"
	"time"

	"github.com/retroenv/retrogolib/log"
	"github.com/senojj/emul8/chip8"
)

// Config holds the driver settings. The instruction clock is not part of the
// CHIP-8 definition and is chosen here.
type Config struct {
	ClockRate time.Duration // time between instruction cycles
	TimerRate time.Duration // time between timer ticks
	Seed      uint64        // RND seed, zero picks a random seed
	Scale     int           // window pixels per CHIP-8 pixel

	Debug bool
	Quiet bool
}

func DefaultConfig() Config {
	return Config{
		ClockRate: chip8.ClockRate,
		TimerRate: chip8.TimerRate,
		Scale:     10,
	}
}

// Validate checks that the clocks and scale are usable.
func (c Config) Validate() error {
	if c.ClockRate <= 0 {
		return fmt.Errorf("invalid clock rate %v", c.ClockRate)
	}
	if c.TimerRate <= 0 {
		return fmt.Errorf("invalid timer rate %v", c.TimerRate)
	}
	if c.Scale < 1 {
		return errors.New("scale must be at least 1")
	}
	return nil
}

// VMOptions returns the options for a VM matching this configuration.
func (c Config) VMOptions() []chip8.Option {
	if c.Seed == 0 {
		return nil
	}
	return []chip8.Option{chip8.WithSeed(c.Seed)}
}

// cyclesPerTick is the number of instruction cycles that make up one timer
// tick, rounded to the nearest cycle. It is never less than one.
func (c Config) cyclesPerTick() int {
	return max(int((c.TimerRate+c.ClockRate/2)/c.ClockRate), 1)
}

// NewLogger creates a logger with the level selected by the debug and quiet
// settings.
func NewLogger(c Config) *log.Logger {
	cfg := log.DefaultConfig()
	if c.Debug {
		cfg.Level = log.DebugLevel
	} else if c.Quiet {
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}
