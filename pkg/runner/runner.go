// Package runner runs many independent programs, each on its own machine and
// core, across a bounded pool of goroutines.
package runner

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync/atomic"

	"github.com/oisee/z80core/pkg/clock"
	"github.com/oisee/z80core/pkg/cpu"
	"github.com/oisee/z80core/pkg/machine"
	"github.com/oisee/z80core/pkg/result"
	"golang.org/x/sync/errgroup"
)

// Config controls a batch.
type Config struct {
	Workers int // 0 = NumCPU
	Speed   clock.Speed
	Frame   bool
}

// Job is one program to run.
type Job struct {
	Name  string
	Image []byte
	Org   uint16 // load address
	Start uint16 // initial PC
	Steps int    // step budget, must be positive
}

// Result is the outcome of one job.
type Result = result.Row

// Pool runs jobs and counts progress.
type Pool struct {
	cfg    Config
	steps  atomic.Int64
	faults atomic.Int64
}

// NewPool creates a pool.
func NewPool(cfg Config) *Pool {
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.NumCPU()
	}
	return &Pool{cfg: cfg}
}

// Stats returns steps run and faults hit so far, across all jobs.
func (p *Pool) Stats() (steps, faults int64) {
	return p.steps.Load(), p.faults.Load()
}

// Run executes every job and returns their results sorted by name. A decode
// fault ends its job and is recorded in the result; only cancellation of ctx
// fails the batch.
func (p *Pool) Run(ctx context.Context, jobs []Job) ([]Result, error) {
	for _, j := range jobs {
		if j.Steps <= 0 {
			return nil, fmt.Errorf("runner: job %q: step budget %d", j.Name, j.Steps)
		}
	}

	table := result.NewTable()
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(p.cfg.Workers)
	for _, j := range jobs {
		g.Go(func() error {
			r, err := p.runJob(ctx, j)
			if err != nil {
				return err
			}
			table.Add(r)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return table.Rows(), nil
}

func (p *Pool) runJob(ctx context.Context, j Job) (Result, error) {
	m := machine.New(machine.Config{
		Speed: p.cfg.Speed,
		Frame: p.cfg.Frame,
		Quiet: true,
		Start: j.Start,
	})
	m.Load(j.Org, j.Image)

	n, err := m.Run(ctx, j.Steps)
	p.steps.Add(int64(n))

	r := Result{Name: j.Name, Steps: n, Cycles: m.CPU().Cycles(), PC: m.CPU().PC()}
	switch {
	case errors.Is(err, cpu.ErrDecodeFault):
		p.faults.Add(1)
		r.Fault = err.Error()
	case err != nil:
		return r, fmt.Errorf("runner: job %q: %w", j.Name, err)
	}
	return r, nil
}

// Run is a convenience wrapper running jobs on a fresh pool.
func Run(ctx context.Context, cfg Config, jobs []Job) ([]Result, error) {
	return NewPool(cfg).Run(ctx, jobs)
}
