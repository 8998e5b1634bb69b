package main

import (
	"errors"
	"fmt"
	"math/rand"
	"os"

	"github.com/spf13/cobra"

	"github.com/joshuapare/heapkit/heap/alloc"
	"github.com/joshuapare/heapkit/heap/verify"
)

var (
	stressOps        int
	stressSeed       int64
	stressMaxSize    int
	stressCheckEvery int
	stressFreeRatio  float64
)

func init() {
	cmd := newStressCmd()
	cmd.Flags().IntVar(&stressOps, "ops", 10000, "Number of alloc/free operations")
	cmd.Flags().Int64Var(&stressSeed, "seed", 1, "Random seed")
	cmd.Flags().IntVar(&stressMaxSize, "max-size", 1024, "Largest request in bytes")
	cmd.Flags().IntVar(&stressCheckEvery, "check-every", 100, "Validate the heap every N operations (0 = only at the end)")
	cmd.Flags().Float64Var(&stressFreeRatio, "free-ratio", 0.4, "Probability that an operation is a free")
	rootCmd.AddCommand(cmd)
}

func newStressCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stress",
		Short: "Run a seeded random allocation workload",
		Long: `The stress command runs a random mix of allocations and releases against
a fresh allocator, validating the free list periodically and printing a
fragmentation report at the end. Out-of-memory results release a live block
and continue.

Example:
  heapctl stress --ops 100000 --seed 7
  heapctl stress --provider mmap --limit 16MiB --max-size 8192 --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStress()
		},
	}
	return cmd
}

type stressOutput struct {
	Seed        int64        `json:"seed"`
	Ops         int          `json:"ops"`
	Live        int          `json:"live"`
	OutOfMemory int          `json:"out_of_memory"`
	Checks      int          `json:"checks"`
	Report      alloc.Report `json:"report"`
}

func runStress() error {
	if stressOps < 0 || stressMaxSize < 0 || stressCheckEvery < 0 {
		return errors.New("--ops, --max-size and --check-every must not be negative")
	}

	a, cleanup, err := openAllocator()
	if err != nil {
		return err
	}
	defer cleanup()

	out := stressOutput{Seed: stressSeed, Ops: stressOps}
	rng := rand.New(rand.NewSource(stressSeed))
	var live []alloc.Ptr

	check := func(step int) error {
		out.Checks++
		if err := a.Verify(); err != nil {
			return fmt.Errorf("heap check failed after %d ops (code %d): %w", step, verify.Code(err), err)
		}
		return nil
	}

	for i := range stressOps {
		if len(live) > 0 && rng.Float64() < stressFreeRatio {
			k := rng.Intn(len(live))
			if err := a.Free(live[k]); err != nil {
				return fmt.Errorf("op %d: %w", i, err)
			}
			live[k] = live[len(live)-1]
			live = live[:len(live)-1]
		} else {
			p, _, err := a.Alloc(rng.Intn(stressMaxSize + 1))
			switch {
			case errors.Is(err, alloc.ErrOutOfMemory):
				out.OutOfMemory++
				if len(live) > 0 {
					if err := a.Free(live[0]); err != nil {
						return fmt.Errorf("op %d: %w", i, err)
					}
					live = live[1:]
				}
			case err != nil:
				return fmt.Errorf("op %d: %w", i, err)
			default:
				live = append(live, p)
			}
		}

		if stressCheckEvery > 0 && (i+1)%stressCheckEvery == 0 {
			if err := check(i + 1); err != nil {
				return err
			}
		}
	}
	if err := check(stressOps); err != nil {
		return err
	}

	out.Live = len(live)
	out.Report = a.Report()

	if jsonOut {
		return printJSON(out)
	}
	printInfo("Stress: %d ops, seed %d, %d live blocks, %d out-of-memory, %d checks passed\n",
		out.Ops, out.Seed, out.Live, out.OutOfMemory, out.Checks)
	if !quiet {
		return out.Report.Fprint(os.Stdout)
	}
	return nil
}
