package util

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strings"
)

// AsInt32 clamps i into the int32 range.
func AsInt32(i int) int32 {
	if i > math.MaxInt32 {
		return math.MaxInt32
	}
	if i < math.MinInt32 {
		return math.MinInt32
	}
	// #nosec G115 - bounded by explicit check
	return int32(i)
}

// ExpandArgs replaces a "-" argument with the non-empty lines read from in,
// keeping the input order. Lines starting with '#' are skipped.
func ExpandArgs(args []string, in io.Reader) ([]string, error) {
	out := make([]string, 0, len(args))
	stdinUsed := false

	for _, arg := range args {
		if arg != "-" {
			out = append(out, arg)
			continue
		}

		if stdinUsed {
			return nil, fmt.Errorf("stdin can only be read once")
		}
		stdinUsed = true

		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line == "" || strings.HasPrefix(line, "#") {
				continue
			}
			out = append(out, line)
		}
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("failed to read identifiers from stdin: %w", err)
		}
	}

	return out, nil
}
