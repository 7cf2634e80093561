package reduce

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBestEmptyHasNoResult(t *testing.T) {
	var b Best
	_, ok := b.Result()
	assert.False(t, ok)
}

func TestBestStrictlyGreaterWins(t *testing.T) {
	var b Best
	b.Report(Candidate{ClaimID: "c1", StatusCode: "500", Length: 3, Exact: true, Seq: 0})
	b.Report(Candidate{ClaimID: "c2", StatusCode: "500", Length: 5, Exact: true, Seq: 1})
	b.Report(Candidate{ClaimID: "c3", StatusCode: "500", Length: 4, Exact: true, Seq: 2})

	got, ok := b.Result()
	require.True(t, ok)
	assert.Equal(t, "c2", got.ClaimID)
	assert.Equal(t, 5, got.Length)
}

func TestBestTieKeepsFirstSeen(t *testing.T) {
	var b Best
	b.Report(Candidate{ClaimID: "first", Length: 4, Seq: 0})
	b.Report(Candidate{ClaimID: "second", Length: 4, Seq: 1})

	got, ok := b.Result()
	require.True(t, ok)
	assert.Equal(t, "first", got.ClaimID)
}

func TestBestTieBreaksBySeqNotReportOrder(t *testing.T) {
	var b Best
	// Reported out of Seq order: the higher-Seq candidate arrives first, but
	// the lower-Seq one should still win the tie once it's reported.
	b.Report(Candidate{ClaimID: "later", Length: 4, Seq: 5})
	b.Report(Candidate{ClaimID: "earlier", Length: 4, Seq: 1})

	got, ok := b.Result()
	require.True(t, ok)
	assert.Equal(t, "earlier", got.ClaimID)
}

func TestBestConcurrentReportsConverge(t *testing.T) {
	var b Best
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(length int) {
			defer wg.Done()
			b.Report(Candidate{ClaimID: "x", Length: length, Seq: length})
		}(i)
	}
	wg.Wait()

	got, ok := b.Result()
	require.True(t, ok)
	assert.Equal(t, 99, got.Length)
}
