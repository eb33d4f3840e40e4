package stacktrace

import (
	"bufio"
	"bytes"
	"strings"
)

// InternalPaths picks the file:line locations of frames that live under an
// internal/ directory out of a debug.Stack dump. Each location is trimmed to
// start at internal/ and the stack order is kept.
func InternalPaths(stack []byte) []string {
	var paths []string

	sc := bufio.NewScanner(bytes.NewReader(stack))
	for sc.Scan() {
		loc, _, _ := strings.Cut(strings.TrimSpace(sc.Text()), " ")
		if !strings.Contains(loc, ".go:") {
			continue
		}

		_, rest, ok := strings.Cut(loc, "/internal/")
		if !ok {
			continue
		}

		paths = append(paths, "internal/"+rest)
	}

	return paths
}
