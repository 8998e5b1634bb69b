package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/joshuapare/heapkit/heap"
	"github.com/joshuapare/heapkit/heap/alloc"
)

var (
	// Global flags
	verbose  bool
	quiet    bool
	jsonOut  bool
	provider string
	limit    string
	pages    int
)

var rootCmd = &cobra.Command{
	Use:   "heapctl",
	Short: "Exercise and inspect the heapkit free-list allocator",
	Long: `heapctl drives the first-fit allocator against a page provider.
It replays scripted workloads, runs seeded random stress tests with
periodic heap validation, and reports fragmentation statistics.`,
	Version:       "0.1.0",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output and allocator debug logging")
	rootCmd.PersistentFlags().
		BoolVarP(&quiet, "quiet", "q", false, "Suppress all output except errors")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().StringVar(&provider, "provider", heap.KindArena, "Page provider: arena or mmap")
	rootCmd.PersistentFlags().StringVar(&limit, "limit", "64MiB", "Maximum heap size (e.g. 1MiB, 512KiB)")
	rootCmd.PersistentFlags().IntVar(&pages, "pages", alloc.DefaultInitialPages, "Pages requested by Init")
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Helper functions for output

// printInfo prints an info message if not in quiet mode
func printInfo(format string, args ...interface{}) {
	if !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printVerbose prints a verbose message if verbose mode is enabled
func printVerbose(format string, args ...interface{}) {
	if verbose && !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printJSON outputs data as JSON
func printJSON(v interface{}) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// newLogger returns a development logger in verbose mode. Otherwise it
// returns nil and the allocator falls back to its own default.
func newLogger() *zap.Logger {
	if !verbose {
		return nil
	}
	l, err := zap.NewDevelopment()
	if err != nil {
		return nil
	}
	return l
}

// limitBytes parses the --limit flag.
func limitBytes() (int, error) {
	n, err := humanize.ParseBytes(limit)
	if err != nil {
		return 0, fmt.Errorf("invalid --limit %q: %w", limit, err)
	}
	return int(n), nil
}

// openAllocator creates and initializes an allocator from the global flags.
func openAllocator() (*alloc.Allocator, func() error, error) {
	n, err := limitBytes()
	if err != nil {
		return nil, nil, err
	}
	p, cleanup, err := heap.Open(provider, n)
	if err != nil {
		return nil, nil, err
	}
	a, err := alloc.New(p, &alloc.Config{InitialPages: pages, Logger: newLogger()})
	if err != nil {
		_ = cleanup()
		return nil, nil, err
	}
	if err := a.Init(); err != nil {
		_ = cleanup()
		return nil, nil, fmt.Errorf("failed to initialize heap: %w", err)
	}
	printVerbose("Heap: %s provider, limit %s, %d initial pages\n", provider, humanize.IBytes(uint64(n)), pages)
	return a, cleanup, nil
}
