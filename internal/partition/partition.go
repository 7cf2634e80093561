// Package partition implements the streaming hash-partitioner: it shards
// parsed edge lines across a fixed number of on-disk bucket files so that
// the second phase never has to hold the whole input in memory at once.
package partition

import (
	"bufio"
	"fmt"
	"hash/fnv"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/hopgraph/cyclefind/internal/errtax"
	"github.com/hopgraph/cyclefind/internal/parse"
)

// DefaultBuckets is the default number of hash-partition buckets.
const DefaultBuckets = 128

// Stats reports what happened during a partitioning pass.
type Stats struct {
	LinesRead    int
	EdgesWritten int
	Skipped      int
}

// Result is the outcome of partitioning: the directory holding the bucket
// files and the paths of the buckets that received at least one edge, in
// ascending bucket index order (empty buckets have no file and no entry).
type Result struct {
	Dir     string
	Buckets []string
	Stats   Stats
}

// Run streams r line by line, hashing each valid edge's (claim id, status
// code) key to a bucket in [0, buckets) and appending the original line to
// that bucket's file. dir must already exist; Run creates the bucket files
// within it lazily, on first write. onSkip, if non-nil, is called once per
// malformed line (the caller tallies these; Run itself never aborts on a
// malformed line).
func Run(r io.Reader, dir string, buckets int, onSkip func(line string)) (Result, error) {
	if buckets <= 0 {
		buckets = DefaultBuckets
	}

	writers := make([]*bufio.Writer, buckets)
	files := make([]*os.File, buckets)
	paths := make([]string, buckets)

	closeAll := func() {
		for i, w := range writers {
			if w != nil {
				_ = w.Flush()
			}
			if files[i] != nil {
				_ = files[i].Close()
			}
		}
	}
	defer closeAll()

	bucketWriter := func(idx int) (*bufio.Writer, error) {
		if writers[idx] != nil {
			return writers[idx], nil
		}
		path := filepath.Join(dir, fmt.Sprintf("bucket-%05d", idx))
		f, err := os.Create(path)
		if err != nil {
			return nil, errtax.IO.Wrap(fmt.Errorf("create bucket %d: %w", idx, err))
		}
		files[idx] = f
		paths[idx] = path
		writers[idx] = bufio.NewWriterSize(f, 64*1024)
		return writers[idx], nil
	}

	var stats Stats
	scanner := newLineScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		stats.LinesRead++

		if strings.TrimSpace(line) == "" {
			// Blank (or whitespace-only) lines are ignored wherever they
			// occur rather than counted as malformed, so they don't inflate
			// the skipped tally.
			continue
		}

		edge, ok := parse.Line(line)
		if !ok {
			stats.Skipped++
			if onSkip != nil {
				onSkip(line)
			}
			continue
		}

		idx := int(BucketIndex(edge.ClaimID, edge.StatusCode, buckets))
		w, err := bucketWriter(idx)
		if err != nil {
			return Result{}, err
		}
		if _, err := w.WriteString(line); err != nil {
			return Result{}, errtax.IO.Wrap(fmt.Errorf("write bucket %d: %w", idx, err))
		}
		if err := w.WriteByte('\n'); err != nil {
			return Result{}, errtax.IO.Wrap(fmt.Errorf("write bucket %d: %w", idx, err))
		}
		stats.EdgesWritten++
	}
	if err := scanner.Err(); err != nil {
		return Result{}, errtax.IO.Wrap(fmt.Errorf("read input: %w", err))
	}

	for i, w := range writers {
		if w == nil {
			continue
		}
		if err := w.Flush(); err != nil {
			return Result{}, errtax.IO.Wrap(fmt.Errorf("flush bucket %d: %w", i, err))
		}
	}

	var nonEmpty []string
	for _, p := range paths {
		if p != "" {
			nonEmpty = append(nonEmpty, p)
		}
	}

	return Result{Dir: dir, Buckets: nonEmpty, Stats: stats}, nil
}

// BucketIndex computes the deterministic-within-a-run bucket assignment for
// a group key: hash the concatenation of the key fields with FNV-1a, then
// reduce mod the bucket count.
func BucketIndex(claimID, statusCode string, buckets int) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(claimID))
	_, _ = h.Write([]byte{0})
	_, _ = h.Write([]byte(statusCode))
	return h.Sum64() % uint64(buckets)
}
