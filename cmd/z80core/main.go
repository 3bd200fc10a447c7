package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/oisee/z80core/pkg/clock"
	"github.com/oisee/z80core/pkg/debugger"
	"github.com/oisee/z80core/pkg/logger"
	"github.com/oisee/z80core/pkg/machine"
	"github.com/oisee/z80core/pkg/script"
	"github.com/oisee/z80core/pkg/trace"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "z80core",
		Short:        "Cycle-accurate Z80/Z80N core: run, debug, trace and script programs",
		SilenceUsage: true,
	}

	rootCmd.AddCommand(runCmd(), debugCmd(), scriptCmd(), disasmCmd(), benchCmd(), tablesCmd(), dumpCmd())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

// machineOptions are the flags shared by every command that builds a machine.
type machineOptions struct {
	org, start uint16
	speed      clock.Speed
	frame      bool
	log        bool
}

func (o *machineOptions) flags() *pflag.FlagSet {
	fs := pflag.NewFlagSet("machine", pflag.ContinueOnError)
	fs.Uint16Var(&o.org, "org", 0, "Load address of the image")
	fs.Uint16Var(&o.start, "start", 0, "Initial PC (default: --org)")
	fs.Var(&o.speed, "speed", "CPU speed in MHz: 3.5, 7, 14 or 28")
	fs.BoolVar(&o.frame, "frame", false, "Raise the 50 Hz frame interrupt")
	fs.BoolVar(&o.log, "log", false, "Echo the core log to stderr")
	return fs
}

// build creates a machine and loads the image file, if one is given.
func (o *machineOptions) build(cmd *cobra.Command, image string) (*machine.Machine, error) {
	if o.log {
		logger.SetEcho(os.Stderr)
	}
	if image == "" {
		return machine.New(machine.Config{Speed: o.speed, Frame: o.frame}), nil
	}

	data, err := os.ReadFile(image)
	if err != nil {
		return nil, err
	}
	if len(data) > 0x10000 {
		return nil, fmt.Errorf("%s: %d bytes does not fit in 64K", image, len(data))
	}

	start := o.org
	if cmd.Flags().Changed("start") {
		start = o.start
	}
	m := machine.New(machine.Config{Speed: o.speed, Frame: o.frame, Start: start})
	m.Load(o.org, data)
	return m, nil
}

func runCmd() *cobra.Command {
	var opts machineOptions
	var steps int
	var traceOn, stats bool

	cmd := &cobra.Command{
		Use:   "run [image]",
		Short: "Run a binary image until it faults, halts for good or runs out of steps",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := opts.build(cmd, args[0])
			if err != nil {
				return err
			}
			if stats {
				stop := launchStatsview(cmd.ErrOrStderr())
				defer stop()
			}

			step := m.Step
			if traceOn {
				tr := trace.New(cmd.OutOrStdout())
				step = func() error { return tr.Step(m) }
			}

			n, err := run(cmd.Context(), m, step, steps)
			c := m.CPU()
			fmt.Fprintf(cmd.OutOrStdout(), "%d steps, %d cycles, %v at %v, PC=%04Xh\n",
				n, c.Cycles(), m.Clock().Elapsed(), m.Clock().Speed(), c.PC())
			if opts.log {
				logger.Tail(cmd.ErrOrStderr(), 10)
			}
			return err
		},
	}
	cmd.Flags().AddFlagSet(opts.flags())
	cmd.Flags().IntVar(&steps, "steps", 0, "Maximum steps (0 = no limit)")
	cmd.Flags().BoolVar(&traceOn, "trace", false, "Trace every instruction")
	cmd.Flags().BoolVar(&stats, "statsview", false, "Serve runtime statistics while running")
	return cmd
}

// run steps until the budget is used, the core faults or halts with nothing
// left to wake it. A halt is not reported as an error.
func run(ctx context.Context, m *machine.Machine, step func() error, steps int) (int, error) {
	n := 0
	for ; steps <= 0 || n < steps; n++ {
		if n&0xFFF == 0 {
			if err := ctx.Err(); err != nil {
				return n, err
			}
		}
		c := m.CPU()
		if c.Halted() && !c.Registers().IFF1 && c.Pending().Empty() {
			return n, nil
		}
		if err := step(); err != nil {
			return n, err
		}
	}
	return n, nil
}

func debugCmd() *cobra.Command {
	var opts machineOptions

	cmd := &cobra.Command{
		Use:   "debug [image]",
		Short: "Start the line monitor on a binary image",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			image := ""
			if len(args) > 0 {
				image = args[0]
			}
			m, err := opts.build(cmd, image)
			if err != nil {
				return err
			}
			rw := struct {
				io.Reader
				io.Writer
			}{os.Stdin, os.Stdout}
			d := debugger.New(m, os.Stdout)
			err = d.Run(cmd.Context(), debugger.NewTerminal(int(os.Stdin.Fd()), rw))
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	}
	cmd.Flags().AddFlagSet(opts.flags())
	return cmd
}

func scriptCmd() *cobra.Command {
	var opts machineOptions
	var image string

	cmd := &cobra.Command{
		Use:   "script [file.lua]",
		Short: "Run a Lua scenario against a fresh machine",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := opts.build(cmd, image)
			if err != nil {
				return err
			}
			return script.RunFile(cmd.Context(), m, args[0], cmd.OutOrStdout())
		},
	}
	cmd.Flags().AddFlagSet(opts.flags())
	cmd.Flags().StringVar(&image, "image", "", "Binary image to load before the scenario starts")
	return cmd
}
