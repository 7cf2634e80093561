// Package engine drives the two-phase pipeline: partition the input into
// bucket files, then process each bucket's groups (graph build, SCC find,
// cycle search) and fold the results into a single global best.
package engine

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/hopgraph/cyclefind/internal/cycle"
	"github.com/hopgraph/cyclefind/internal/errtax"
	"github.com/hopgraph/cyclefind/internal/graphbuild"
	"github.com/hopgraph/cyclefind/internal/group"
	"github.com/hopgraph/cyclefind/internal/obslog"
	"github.com/hopgraph/cyclefind/internal/partition"
	"github.com/hopgraph/cyclefind/internal/reduce"
	"github.com/hopgraph/cyclefind/internal/sccfind"
)

// Options configures one run of the pipeline.
type Options struct {
	Buckets   int
	SCCBudget int
	Log       *obslog.Logger
}

// Report is the run's final outcome: the best candidate (if any) and the
// diagnostic tallies for the summary line.
type Report struct {
	Best    reduce.Candidate
	Found   bool
	Buckets int
	Groups  int
	Skipped int
}

// Run executes both phases against the input file at path. ctx cancellation
// (e.g. from --timeout) stops phase 2 from starting new bucket workers; the
// worker already in flight is allowed to finish so its result is still
// folded into the report.
func Run(ctx context.Context, path string, opts Options) (Report, error) {
	buckets := opts.Buckets
	if buckets <= 0 {
		buckets = partition.DefaultBuckets
	}

	f, err := os.Open(path)
	if err != nil {
		return Report{}, errtax.Acquire.Wrap(fmt.Errorf("open %s: %w", path, err))
	}
	defer f.Close()

	dir, err := os.MkdirTemp("", "hopcycle-buckets-*")
	if err != nil {
		return Report{}, errtax.IO.Wrap(fmt.Errorf("create bucket dir: %w", err))
	}
	defer os.RemoveAll(dir)

	partResult, err := partition.Run(f, dir, buckets, nil)
	if err != nil {
		return Report{}, err
	}
	if partResult.Stats.Skipped > 0 && opts.Log != nil {
		opts.Log.Debug("skipped malformed lines", "count", partResult.Stats.Skipped)
	}

	best := &reduce.Best{}
	var totalGroups atomic.Int64
	var seq atomic.Int64

	workers := runtime.GOMAXPROCS(0)
	if workers < 1 {
		workers = 1
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for bucketIdx, bucketPath := range partResult.Buckets {
		bucketIdx, bucketPath := bucketIdx, bucketPath
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return nil
			default:
			}

			groups, err := group.ReadBucket(bucketPath)
			if err != nil {
				return err
			}
			totalGroups.Add(int64(len(groups)))

			for _, grp := range groups {
				candidate := evaluateGroup(grp, opts, bucketIdx, &seq)
				best.Report(candidate)

				if opts.Log != nil && opts.Log.Verbose() {
					opts.Log.Debug("processed group",
						"claim_id", grp.Key.ClaimID,
						"status_code", grp.Key.StatusCode,
						"length", candidate.Length,
						"exact", candidate.Exact)
				}
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return Report{}, err
	}

	result, found := best.Result()
	return Report{
		Best:    result,
		Found:   found,
		Buckets: len(partResult.Buckets),
		Groups:  int(totalGroups.Load()),
		Skipped: partResult.Stats.Skipped,
	}, nil
}

// evaluateGroup runs the graph-build -> SCC-find -> cycle-search chain for
// one group and returns its best candidate (length 0 if it has no cycle at
// all).
func evaluateGroup(grp group.Group, opts Options, bucketIdx int, seq *atomic.Int64) reduce.Candidate {
	g := graphbuild.Build(grp.Edges)

	best := reduce.Candidate{ClaimID: grp.Key.ClaimID, StatusCode: grp.Key.StatusCode, Length: 0, Exact: true}

	sccs := sccfind.Find(g)
	for _, scc := range sccs {
		var res cycle.Result
		if len(scc.Vertices) == 1 {
			// A single self-looped vertex: length 1, no DFS needed.
			res = cycle.Result{Length: 1, Exact: true}
		} else {
			res = cycle.Search(g, scc.Vertices, opts.SCCBudget)
			if !res.Exact && opts.Log != nil {
				opts.Log.Warn("scc budget exceeded, reporting upper bound",
					"claim_id", grp.Key.ClaimID,
					"status_code", grp.Key.StatusCode,
					"scc_size", len(scc.Vertices))
			}
		}

		if res.Length > best.Length || (res.Length == best.Length && !best.Exact && res.Exact) {
			best.Length = res.Length
			best.Exact = res.Exact
		}
	}

	best.Seq = bucketIdx*1_000_000 + int(seq.Add(1))
	return best
}
