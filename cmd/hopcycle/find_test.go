package main

import (
	"bufio"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runFindCapturingStdout writes lines to a temp input file, runs the find
// command against it through the root command tree, and returns whatever it
// printed to stdout. Only success-path scenarios are exercised this way:
// runFind calls os.Exit on any taxonomy error, which would kill the test
// binary.
func runFindCapturingStdout(t *testing.T, lines string) string {
	t.Helper()

	dir := t.TempDir()
	path := filepath.Join(dir, "input.log")
	require.NoError(t, os.WriteFile(path, []byte(lines), 0o644))

	oldStdout := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w

	rootCmd.SetArgs([]string{"find", path, "--buckets", "4", "--scc-budget", "1000"})
	runErr := rootCmd.Execute()

	w.Close()
	os.Stdout = oldStdout
	require.NoError(t, runErr)

	scanner := bufio.NewScanner(r)
	var out string
	if scanner.Scan() {
		out = scanner.Text()
	}
	return out
}

func TestE1Triangle(t *testing.T) {
	out := runFindCapturingStdout(t, `Epic|Availity|123|197
Availity|Optum|123|197
Optum|Epic|123|197
Epic|Availity|891|45
Availity|Epic|891|45
`)
	assert.Equal(t, "123,197,3", out)
}

func TestE2CompetingCyclesLongerWins(t *testing.T) {
	out := runFindCapturingStdout(t, `A|B|1|1
B|C|1|1
C|A|1|1
X|Y|1|1
Y|Z|1|1
Z|W|1|1
W|X|1|1
`)
	assert.Equal(t, "1,1,4", out)
}

func TestE3KeyIsolation(t *testing.T) {
	out := runFindCapturingStdout(t, `A|B|7|9
B|A|7|9
A|B|7|10
`)
	assert.Equal(t, "7,9,2", out)
}

func TestE4SelfLoopOnly(t *testing.T) {
	out := runFindCapturingStdout(t, "A|A|k|s\n")
	assert.Equal(t, "k,s,1", out)
}

func TestE5DenseFourClique(t *testing.T) {
	out := runFindCapturingStdout(t, `A|B|5|5
A|C|5|5
A|D|5|5
B|A|5|5
B|C|5|5
B|D|5|5
C|A|5|5
C|B|5|5
C|D|5|5
D|A|5|5
D|B|5|5
D|C|5|5
`)
	assert.Equal(t, "5,5,4", out)
}

func TestE6NoCycle(t *testing.T) {
	out := runFindCapturingStdout(t, `A|B|1|1
B|C|1|1
C|D|1|1
`)
	assert.Equal(t, "", out)
}

func TestEmptyInputProducesNoOutput(t *testing.T) {
	out := runFindCapturingStdout(t, "")
	assert.Equal(t, "", out)
}
