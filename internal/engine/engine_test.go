package engine

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/hopgraph/cyclefind/internal/obslog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeInput(t *testing.T, lines ...string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "input.log")
	content := ""
	for _, l := range lines {
		content += l + "\n"
	}
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRunFindsLongestCycle(t *testing.T) {
	path := writeInput(t,
		"Epic|Availity|c1|500",
		"Availity|Optum|c1|500",
		"Optum|Epic|c1|500",
		"A|B|c2|500",
		"B|A|c2|500",
	)

	report, err := Run(context.Background(), path, Options{Buckets: 4, SCCBudget: 1000})
	require.NoError(t, err)
	require.True(t, report.Found)
	assert.Equal(t, 3, report.Best.Length)
	assert.Equal(t, "c1", report.Best.ClaimID)
	assert.Equal(t, "500", report.Best.StatusCode)
}

func TestRunIsolatesGroupsByKey(t *testing.T) {
	path := writeInput(t,
		"A|B|c1|200",
		"B|A|c1|200",
		"A|B|c1|404", // different status code: must not merge with c1/200
	)

	report, err := Run(context.Background(), path, Options{Buckets: 4, SCCBudget: 1000})
	require.NoError(t, err)
	require.True(t, report.Found)
	assert.Equal(t, 2, report.Best.Length)
	assert.Equal(t, "200", report.Best.StatusCode)
}

func TestRunNoCycleReportsZeroLength(t *testing.T) {
	path := writeInput(t,
		"A|B|c1|200",
		"B|C|c1|200",
	)

	report, err := Run(context.Background(), path, Options{Buckets: 4, SCCBudget: 1000})
	require.NoError(t, err)
	require.True(t, report.Found)
	assert.Equal(t, 0, report.Best.Length)
}

func TestRunSelfLoopIsLengthOne(t *testing.T) {
	path := writeInput(t, "A|A|c1|200")

	report, err := Run(context.Background(), path, Options{Buckets: 4, SCCBudget: 1000})
	require.NoError(t, err)
	require.True(t, report.Found)
	assert.Equal(t, 1, report.Best.Length)
}

func TestRunSkipsMalformedLinesAndTalliesThem(t *testing.T) {
	path := writeInput(t,
		"A|B|c1|200",
		"B|A|c1|200",
		"this is not a valid line",
		"missing|fields|only3",
	)

	report, err := Run(context.Background(), path, Options{Buckets: 4, SCCBudget: 1000, Log: obslog.New(true)})
	require.NoError(t, err)
	assert.Equal(t, 2, report.Skipped)
	assert.Equal(t, 2, report.Best.Length)
}

func TestRunResultStableAcrossBucketCounts(t *testing.T) {
	lines := []string{
		"Epic|Availity|c1|500",
		"Availity|Optum|c1|500",
		"Optum|Epic|c1|500",
		"A|B|c2|500",
		"B|C|c2|500",
		"C|D|c2|500",
		"D|A|c2|500",
	}

	for _, buckets := range []int{1, 4, 64} {
		path := writeInput(t, lines...)
		report, err := Run(context.Background(), path, Options{Buckets: buckets, SCCBudget: 1000})
		require.NoError(t, err)
		assert.Equal(t, 4, report.Best.Length, "buckets=%d", buckets)
	}
}
