package cli

import (
	"context"
	"fmt"
	"io"
	mrand "math/rand"
	"sync/atomic"
	"time"

	"github.com/briandowns/spinner"
	"golang.org/x/sync/errgroup"

	"github.com/agbru/bitcalc/bits"
	"github.com/agbru/bitcalc/internal/logging"
	"github.com/agbru/bitcalc/internal/metrics"
	"github.com/agbru/bitcalc/internal/sysmon"
	"github.com/agbru/bitcalc/internal/ui"
)

// StressConfig holds configuration for a stress run.
type StressConfig struct {
	// Width is the bitwidth of the operands used in each round.
	Width uint
	// Rounds is the total number of self-check rounds to execute.
	Rounds int
	// Workers is the number of concurrent workers.
	Workers int
	// Quiet suppresses the spinner and summary output.
	Quiet bool
	// Seed seeds the per-worker random generators. Zero means use the
	// current time.
	Seed int64
}

// RunStress executes randomized arithmetic self-checks concurrently and
// reports throughput and memory usage. Each round generates random operands
// at the configured width and verifies algebraic identities that must hold
// for any input. A single failure cancels the whole run.
func RunStress(ctx context.Context, cfg StressConfig, log logging.Logger, out io.Writer) error {
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	log.Info("stress run starting",
		logging.Uint64("width", uint64(cfg.Width)),
		logging.Int("rounds", cfg.Rounds),
		logging.Int("workers", cfg.Workers))

	collector := metrics.NewMemoryCollector()
	sysmon.Prime()

	var sp Spinner
	if !cfg.Quiet {
		sp = newSpinner(spinner.WithWriter(out))
		sp.UpdateSuffix(fmt.Sprintf(" stressing %d-bit operands...", cfg.Width))
		sp.Start()
	}

	var completed atomic.Int64
	start := time.Now()

	g, gctx := errgroup.WithContext(ctx)

	// Progress updater. Stops when the workers are done or the run is
	// canceled.
	done := make(chan struct{})
	if sp != nil {
		go func() {
			ticker := time.NewTicker(ProgressRefreshRate)
			defer ticker.Stop()
			for {
				select {
				case <-done:
					return
				case <-ticker.C:
					progress := float64(completed.Load()) / float64(cfg.Rounds)
					sp.UpdateSuffix(fmt.Sprintf(" [%s] %.1f%% (%d/%d rounds)",
						progressBar(progress, ProgressBarWidth), progress*100,
						completed.Load(), cfg.Rounds))
				}
			}
		}()
	}

	// Workers claim round indices from a shared counter until the budget
	// is exhausted.
	var next atomic.Int64
	for w := 0; w < cfg.Workers; w++ {
		rng := mrand.New(mrand.NewSource(seed + int64(w)))
		g.Go(func() error {
			s := newStressState(cfg.Width)
			for {
				round := next.Add(1)
				if round > int64(cfg.Rounds) {
					return nil
				}
				if err := gctx.Err(); err != nil {
					return err
				}
				if err := s.check(rng); err != nil {
					return fmt.Errorf("round %d: %w", round, err)
				}
				completed.Add(1)
			}
		})
	}

	err := g.Wait()
	close(done)
	duration := time.Since(start)

	if sp != nil {
		sp.Stop()
	}

	if err != nil {
		log.Error("stress run failed", err,
			logging.Int64("completed", completed.Load()))
		return err
	}

	delta := collector.Delta()
	sys := sysmon.Sample()

	log.Info("stress run complete",
		logging.Int64("rounds", completed.Load()),
		logging.String("duration", FormatExecutionDuration(duration)),
		logging.Uint64("heap_alloc", delta.HeapAlloc),
		logging.Uint64("gc_cycles", uint64(delta.GCCycles)),
		logging.Float64("cpu_percent", sys.CPUPercent),
		logging.Float64("mem_percent", sys.MemPercent))

	if !cfg.Quiet {
		rate := float64(completed.Load()) / duration.Seconds()
		fmt.Fprintf(out, "\n%s✓ %d rounds at %d bits in %s%s (%.0f rounds/s)\n",
			ui.ColorSuccess(), completed.Load(), cfg.Width,
			FormatExecutionDuration(duration), ui.ColorReset(), rate)
		fmt.Fprintf(out, "  heap %s, %d GC cycles, system CPU %.1f%%, memory %.1f%%\n",
			formatBytes(delta.HeapAlloc), delta.GCCycles,
			sys.CPUPercent, sys.MemPercent)
	}

	return nil
}

// stressState holds the preallocated operands for one worker. Reusing the
// buffers keeps the rounds allocation-free after warmup.
type stressState struct {
	a, b, c, d *bits.Ext
	quo, rem   *bits.Ext
}

func newStressState(width uint) *stressState {
	return &stressState{
		a:   bits.NewExt(width),
		b:   bits.NewExt(width),
		c:   bits.NewExt(width),
		d:   bits.NewExt(width),
		quo: bits.NewExt(width),
		rem: bits.NewExt(width),
	}
}

// check runs one round of identity checks on fresh random operands.
func (s *stressState) check(rng *mrand.Rand) error {
	a, b, c, d := s.a.Bits(), s.b.Bits(), s.c.Bits(), s.d.Bits()
	if err := a.RandAssign(rng); err != nil {
		return err
	}
	if err := b.RandAssign(rng); err != nil {
		return err
	}
	bw := a.Bw()

	// (a + b) - b == a
	if err := c.CopyAssign(a); err != nil {
		return err
	}
	if err := c.AddAssign(b); err != nil {
		return err
	}
	if err := c.SubAssign(b); err != nil {
		return err
	}
	if eq, err := c.Eq(a); err != nil {
		return err
	} else if !eq {
		return fmt.Errorf("additive inverse failed: (%v + %v) - rhs = %v", a, b, c)
	}

	// not(not(a)) == a
	c.NotAssign()
	c.NotAssign()
	if eq, _ := c.Eq(a); !eq {
		return fmt.Errorf("double complement failed for %v", a)
	}

	// rotl by s then rotr by s restores
	shift := uint(rng.Uint64()) % bw
	if err := c.RotlAssign(shift); err != nil {
		return err
	}
	if err := c.RotrAssign(shift); err != nil {
		return err
	}
	if eq, _ := c.Eq(a); !eq {
		return fmt.Errorf("rotation round trip failed for %v at shift %d", a, shift)
	}

	// quo*div + rem == duo, rem < div
	if !b.IsZero() {
		if err := bits.UDivide(s.quo.Bits(), s.rem.Bits(), a, b); err != nil {
			return err
		}
		if lt, _ := s.rem.Bits().Ult(b); !lt {
			return fmt.Errorf("remainder %v not below divisor %v", s.rem.Bits(), b)
		}
		if err := d.CopyAssign(s.rem.Bits()); err != nil {
			return err
		}
		if err := d.MulAdd(s.quo.Bits(), b); err != nil {
			return err
		}
		if eq, _ := d.Eq(a); !eq {
			return fmt.Errorf("division identity failed: %v / %v", a, b)
		}
	}

	return nil
}

// formatBytes renders a byte count in a compact human unit.
func formatBytes(b uint64) string {
	const unit = 1024
	if b < unit {
		return fmt.Sprintf("%d B", b)
	}
	div, exp := uint64(unit), 0
	for n := b / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(b)/float64(div), "KMGTPE"[exp])
}
