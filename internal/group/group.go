// Package group reads one bucket file and replays its edges grouped by
// (claim_id, status_code), one group at a time, so a caller can process and
// release each group's memory before moving to the next.
package group

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/hopgraph/cyclefind/internal/errtax"
	"github.com/hopgraph/cyclefind/internal/parse"
)

// Pair is a (source, destination) edge stripped of its now-redundant group
// key (the group key is carried once, at the Group level).
type Pair struct {
	Source      string
	Destination string
}

// Group is all edges sharing one (claim_id, status_code) key, in the order
// they were first appended to the bucket file.
type Group struct {
	Key   parse.GroupKey
	Edges []Pair
}

// ReadBucket loads one bucket file fully into memory and partitions its
// lines into groups. Groups are returned in the order their key first
// appears in the file; edges within a group retain input order.
func ReadBucket(path string) ([]Group, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errtax.IO.Wrap(fmt.Errorf("open bucket %s: %w", path, err))
	}
	defer f.Close()

	return readAll(f, path)
}

func readAll(r io.Reader, path string) ([]Group, error) {
	index := make(map[parse.GroupKey]int)
	var groups []Group

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for scanner.Scan() {
		edge, ok := parse.Line(scanner.Text())
		if !ok {
			// The partitioner already filtered malformed lines; a bucket
			// file should only ever contain well-formed ones. Treat a
			// surprise as a non-fatal skip rather than aborting the run.
			continue
		}

		key := edge.Key()
		idx, seen := index[key]
		if !seen {
			idx = len(groups)
			index[key] = idx
			groups = append(groups, Group{Key: key})
		}
		groups[idx].Edges = append(groups[idx].Edges, Pair{Source: edge.Source, Destination: edge.Destination})
	}
	if err := scanner.Err(); err != nil {
		return nil, errtax.IO.Wrap(fmt.Errorf("read bucket %s: %w", path, err))
	}

	return groups, nil
}
