package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/hopgraph/cyclefind/internal/cmdutil"
	"github.com/hopgraph/cyclefind/internal/cycle"
	"github.com/hopgraph/cyclefind/internal/engine"
	"github.com/hopgraph/cyclefind/internal/errtax"
	"github.com/hopgraph/cyclefind/internal/ingest"
	"github.com/hopgraph/cyclefind/internal/obslog"
	"github.com/hopgraph/cyclefind/internal/partition"
)

var (
	flagBuckets   int
	flagVerbose   bool
	flagSCCBudget int
	flagTimeout   time.Duration
)

var findCmd = &cobra.Command{
	Use:   "find <input>",
	Short: "Find the longest simple directed cycle per claim/status group",
	Args:  cmdutil.ExactlyOneInputArg(),
	RunE:  runFind,
}

func init() {
	findCmd.Flags().IntVarP(&flagBuckets, "buckets", "b", partition.DefaultBuckets, "number of on-disk partition buckets")
	findCmd.Flags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable per-run diagnostics on stderr")
	findCmd.Flags().IntVar(&flagSCCBudget, "scc-budget", cycle.DefaultNodeBudget, "per-SCC DFS node-expansion ceiling")
	findCmd.Flags().DurationVar(&flagTimeout, "timeout", 0, "overall wall-clock budget (0 = none)")
}

func runFind(cmd *cobra.Command, args []string) error {
	input := args[0]
	log := obslog.New(flagVerbose)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if flagTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, flagTimeout)
		defer cancel()
	}

	acquired, err := ingest.Open(ctx, input)
	if err != nil {
		return die(err)
	}
	defer acquired.Close()

	report, err := engine.Run(ctx, acquired.Path, engine.Options{
		Buckets:   flagBuckets,
		SCCBudget: flagSCCBudget,
		Log:       log,
	})
	if err != nil {
		// die exits the process without running deferred calls, so the
		// downloaded temp file (if any) is released here first.
		acquired.Close()
		return die(err)
	}

	log.Summary(report.Buckets, report.Groups, report.Skipped, bestString(report))

	if report.Found && report.Best.Length > 0 {
		fmt.Println(formatResult(report))
	}
	return nil
}

func formatResult(report engine.Report) string {
	return fmt.Sprintf("%s,%s,%d", report.Best.ClaimID, report.Best.StatusCode, report.Best.Length)
}

func bestString(report engine.Report) string {
	if !report.Found || report.Best.Length == 0 {
		return "none"
	}
	return formatResult(report)
}

// die maps err to its documented exit code and terminates the process.
// Usage errors never reach this path (cobra validates args before RunE
// runs); every error here comes from the taxonomy's acquisition, I/O, or
// resource-exhaustion categories.
func die(err error) error {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(errtax.ExitCode(err))
	return nil
}
