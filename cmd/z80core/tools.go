package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bradleyjkemp/memviz"
	"github.com/go-echarts/statsview"
	"github.com/go-echarts/statsview/viewer"
	"github.com/oisee/z80core/pkg/cpu"
	"github.com/oisee/z80core/pkg/inst"
	"github.com/oisee/z80core/pkg/result"
	"github.com/oisee/z80core/pkg/runner"
	"github.com/spf13/cobra"
)

const statsviewAddr = "localhost:12600"

// launchStatsview serves the runtime dashboard until the returned stop is
// called.
func launchStatsview(out io.Writer) (stop func()) {
	viewer.SetConfiguration(viewer.WithAddr(statsviewAddr))
	mgr := statsview.New()
	go mgr.Start()
	fmt.Fprintf(out, "stats server available at http://%s/debug/statsview\n", statsviewAddr)
	return mgr.Stop
}

func disasmCmd() *cobra.Command {
	var org uint16
	var count int

	cmd := &cobra.Command{
		Use:   "disasm [image]",
		Short: "Disassemble a binary image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			read := func(addr uint16) uint8 {
				if off := int(addr - org); off < len(data) {
					return data[off]
				}
				return 0
			}

			out := cmd.OutOrStdout()
			addr := org
			for off, n := 0, 0; off < len(data) && (count <= 0 || n < count); n++ {
				in := inst.Decode(read, addr)
				var hex strings.Builder
				for _, b := range in.Bytes {
					fmt.Fprintf(&hex, "%02X ", b)
				}
				fmt.Fprintf(out, "%04X  %-12s%s\n", addr, hex.String(), in.Text)
				addr += uint16(in.Len())
				off += in.Len()
			}
			return nil
		},
	}
	cmd.Flags().Uint16Var(&org, "org", 0, "Load address of the image")
	cmd.Flags().IntVar(&count, "count", 0, "Instructions to list (0 = whole image)")
	return cmd
}

func benchCmd() *cobra.Command {
	var cfg runner.Config
	var org uint16
	var steps int
	var asJSON bool
	var output string

	cmd := &cobra.Command{
		Use:   "bench [images...]",
		Short: "Run several images concurrently, one core each, and tabulate the results",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var jobs []runner.Job
			for _, path := range args {
				data, err := os.ReadFile(path)
				if err != nil {
					return err
				}
				jobs = append(jobs, runner.Job{
					Name:  filepath.Base(path),
					Image: data,
					Org:   org,
					Start: org,
					Steps: steps,
				})
			}

			pool := runner.NewPool(cfg)
			rows, err := pool.Run(cmd.Context(), jobs)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if output != "" {
				f, err := os.Create(output)
				if err != nil {
					return err
				}
				defer f.Close()
				out = f
			}
			if asJSON {
				err = result.WriteJSON(out, rows)
			} else {
				err = result.WriteText(out, rows)
			}
			if err != nil {
				return err
			}

			total, faults := pool.Stats()
			fmt.Fprintf(cmd.ErrOrStderr(), "%d jobs, %d steps, %d faults\n", len(rows), total, faults)
			return nil
		},
	}
	cmd.Flags().IntVar(&cfg.Workers, "workers", 0, "Number of workers (0 = NumCPU)")
	cmd.Flags().Var(&cfg.Speed, "speed", "CPU speed in MHz: 3.5, 7, 14 or 28")
	cmd.Flags().BoolVar(&cfg.Frame, "frame", false, "Raise the 50 Hz frame interrupt")
	cmd.Flags().Uint16Var(&org, "org", 0, "Load and start address of every image")
	cmd.Flags().IntVar(&steps, "steps", 1_000_000, "Step budget per image")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Write JSON instead of a table")
	cmd.Flags().StringVar(&output, "output", "", "Output file path")
	return cmd
}

func tablesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tables",
		Short: "Print the precomputed flag tables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, t := range []struct {
				name  string
				table *[256]uint8
			}{
				{"sz53", &cpu.Sz53Table},
				{"sz53p", &cpu.Sz53pTable},
				{"parity", &cpu.ParityTable},
			} {
				fmt.Fprintf(out, "%s:\n", t.name)
				for row := 0; row < 256; row += 16 {
					fmt.Fprintf(out, "  %02X:", row)
					for _, v := range t.table[row : row+16] {
						fmt.Fprintf(out, " %02X", v)
					}
					fmt.Fprintln(out)
				}
			}
			fmt.Fprintf(out, "halfcarry add %v sub %v\n", cpu.HalfcarryAddTable, cpu.HalfcarrySubTable)
			fmt.Fprintf(out, "overflow  add %v sub %v\n", cpu.OverflowAddTable, cpu.OverflowSubTable)
			return nil
		},
	}
}

func dumpCmd() *cobra.Command {
	var opts machineOptions
	var steps int
	var dot string

	cmd := &cobra.Command{
		Use:   "dump [image]",
		Short: "Run an image and write the register file as a Graphviz graph",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := opts.build(cmd, args[0])
			if err != nil {
				return err
			}
			if _, err := run(cmd.Context(), m, m.Step, steps); err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), err)
			}

			out := cmd.OutOrStdout()
			if dot != "" {
				f, err := os.Create(dot)
				if err != nil {
					return err
				}
				defer f.Close()
				out = f
			}
			regs := m.CPU().Registers()
			memviz.Map(out, &regs)
			return nil
		},
	}
	cmd.Flags().AddFlagSet(opts.flags())
	cmd.Flags().IntVar(&steps, "steps", 1000, "Steps to run before dumping")
	cmd.Flags().StringVar(&dot, "dot", "", "Write the graph to this file instead of stdout")
	return cmd
}
