package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/joshuapare/heapkit/heap/alloc"
	"github.com/joshuapare/heapkit/internal/trace"
)

var replayReport bool

func init() {
	cmd := newReplayCmd()
	cmd.Flags().BoolVar(&replayReport, "report", false, "Print a heap report after each script")
	rootCmd.AddCommand(cmd)
}

func newReplayCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "replay <script.yaml>...",
		Short: "Replay workload scripts",
		Long: `The replay command runs YAML workload scripts against a fresh allocator
per script and fails on the first op whose outcome does not match its
expectation. Each script's heap section selects its provider and limit;
the global --provider, --limit and --pages flags are not used.

Example:
  heapctl replay testdata/coalesce.yaml
  heapctl replay --report --json scripts/*.yaml`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReplay(args)
		},
	}
	return cmd
}

type replayOutput struct {
	Script  string         `json:"script"`
	Name    string         `json:"name"`
	Results []trace.Result `json:"results"`
	Report  *alloc.Report  `json:"report,omitempty"`
}

func runReplay(args []string) error {
	var outputs []replayOutput

	for _, path := range args {
		out, err := replayOne(path)
		if err != nil {
			return err
		}
		outputs = append(outputs, out)
	}

	if jsonOut {
		return printJSON(outputs)
	}
	return nil
}

func replayOne(path string) (replayOutput, error) {
	out := replayOutput{Script: path}

	s, err := trace.Load(path)
	if err != nil {
		return out, err
	}
	out.Name = s.Name

	a, cleanup, err := s.Open(newLogger())
	if err != nil {
		return out, fmt.Errorf("%s: %w", path, err)
	}
	defer cleanup()

	results, runErr := trace.Run(a, s)
	out.Results = results
	if !jsonOut {
		for _, r := range results {
			printVerbose("  [%3d] %-5s %-12s ptr=%-8d size=%-6d %s\n", r.Index, r.Kind, r.Name, r.Ptr, r.Size, r.Err)
		}
	}
	if runErr != nil {
		return out, fmt.Errorf("%s: %w", path, runErr)
	}

	if replayReport {
		r := a.Report()
		out.Report = &r
	}
	if !jsonOut {
		printInfo("PASS %s (%d ops)\n", displayName(s, path), len(results))
		if out.Report != nil && !quiet {
			if err := out.Report.Fprint(os.Stdout); err != nil {
				return out, err
			}
		}
	}
	return out, nil
}

func displayName(s *trace.Script, path string) string {
	if s.Name != "" {
		return s.Name
	}
	return path
}
