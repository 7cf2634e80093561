package partition

import (
	"bufio"
	"io"
)

// maxLineSize bounds an individual input line; routing hop lines are short,
// but a generous ceiling avoids surprising failures on wide system names.
const maxLineSize = 1 << 20

// newLineScanner wraps r in a bufio.Scanner configured for line-oriented
// input with a larger-than-default token buffer.
func newLineScanner(r io.Reader) *bufio.Scanner {
	s := bufio.NewScanner(r)
	buf := make([]byte, 0, 64*1024)
	s.Buffer(buf, maxLineSize)
	return s
}
