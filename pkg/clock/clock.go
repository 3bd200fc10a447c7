// Package clock is the time base a core charges its cycles to. The machine
// runs from a 28 MHz master clock and the CPU from a divided copy of it, so
// one CPU cycle is between one and eight master ticks depending on the
// selected speed.
package clock

import (
	"fmt"
	"strings"
	"time"
)

// MasterHz is the master clock frequency.
const MasterHz = 28_000_000

// Speed selects the CPU clock.
type Speed int

const (
	Speed3MHz Speed = iota // 3.5 MHz
	Speed7MHz
	Speed14MHz
	Speed28MHz
)

var speedNames = [...]string{"3.5", "7", "14", "28"}

func (s Speed) String() string {
	if s < 0 || int(s) >= len(speedNames) {
		return fmt.Sprintf("Speed(%d)", int(s))
	}
	return speedNames[s] + "MHz"
}

// Divider is the number of master ticks per CPU cycle.
func (s Speed) Divider() uint64 {
	return 8 >> uint(s)
}

// Hz is the CPU clock frequency.
func (s Speed) Hz() int {
	return MasterHz / int(s.Divider())
}

// Set parses a speed given in MHz, with or without the unit. It makes Speed
// usable as a command line flag value.
func (s *Speed) Set(v string) error {
	v = strings.TrimSuffix(strings.ToLower(strings.TrimSpace(v)), "mhz")
	for i, name := range speedNames {
		if v == name {
			*s = Speed(i)
			return nil
		}
	}
	if v == "3" {
		*s = Speed3MHz
		return nil
	}
	return fmt.Errorf("clock: unknown speed %q (want 3.5, 7, 14 or 28)", v)
}

// Type names the flag value type.
func (s *Speed) Type() string {
	return "speed"
}

// Clock counts elapsed time in CPU cycles and master ticks. The zero value is
// a 3.5 MHz clock at time zero.
type Clock struct {
	speed  Speed
	cycles uint64
	ticks  uint64
}

// New returns a clock running the CPU at speed.
func New(speed Speed) *Clock {
	return &Clock{speed: speed}
}

// Run advances the clock by a number of CPU cycles.
func (c *Clock) Run(cycles int) {
	c.cycles += uint64(cycles)
	c.ticks += uint64(cycles) * c.speed.Divider()
}

// Speed returns the current CPU speed.
func (c *Clock) Speed() Speed {
	return c.speed
}

// SetSpeed changes the CPU speed. Time already elapsed is unaffected.
func (c *Clock) SetSpeed(speed Speed) {
	c.speed = speed
}

// Cycles returns the CPU cycles run so far.
func (c *Clock) Cycles() uint64 {
	return c.cycles
}

// Ticks returns the master ticks elapsed so far.
func (c *Clock) Ticks() uint64 {
	return c.ticks
}

// Elapsed converts master ticks to emulated time. Whole seconds are split
// off first so the nanosecond product cannot overflow.
func (c *Clock) Elapsed() time.Duration {
	secs := c.ticks / MasterHz
	rem := c.ticks % MasterHz
	return time.Duration(secs)*time.Second + time.Duration(rem*uint64(time.Second)/MasterHz)
}
