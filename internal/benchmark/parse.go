package benchmark

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
)

// ParseCustom reads the custom JSON input format: an array of benches.
func ParseCustom(r io.Reader) ([]Bench, error) {
	var benches []Bench
	if err := json.NewDecoder(r).Decode(&benches); err != nil {
		return nil, fmt.Errorf("failed to decode benches: %w", err)
	}
	if len(benches) == 0 {
		return nil, ErrNoBenches
	}
	if err := checkBenches(benches); err != nil {
		return nil, err
	}
	return benches, nil
}

// BenchmarkName-8   1000000   1000 ns/op   100 B/op   10 allocs/op
var goBenchRegex = regexp.MustCompile(`^(Benchmark\S*?)(?:-(\d+))?\s+(\d+)\s+([\d.]+)\s+ns/op(?:\s+([\d.]+)\s+MB/s)?(?:\s+(\d+)\s+B/op)?(?:\s+(\d+)\s+allocs/op)?`)

// ParseGoBench parses `go test -bench` output. Each benchmark becomes one
// bench valued in ns/op; iterations and memory stats go into Extra.
func ParseGoBench(r io.Reader) ([]Bench, error) {
	var benches []Bench
	seen := make(map[string]int)
	scanner := bufio.NewScanner(r)

	for scanner.Scan() {
		matches := goBenchRegex.FindStringSubmatch(strings.TrimSpace(scanner.Text()))
		if matches == nil {
			continue
		}

		name := matches[1]
		if matches[2] != "" {
			name += " - " + matches[2]
		}
		value, err := strconv.ParseFloat(matches[4], 64)
		if err != nil {
			continue
		}

		extra := []string{matches[3] + " times"}
		if matches[5] != "" {
			extra = append(extra, matches[5]+" MB/s")
		}
		if matches[6] != "" {
			extra = append(extra, matches[6]+" B/op")
		}
		if matches[7] != "" {
			extra = append(extra, matches[7]+" allocs/op")
		}

		b := Bench{
			Name:  name,
			Value: value,
			Unit:  "ns/op",
			Extra: strings.Join(extra, "\n"),
		}
		// Repeated runs (-count) keep the last value.
		if i, ok := seen[name]; ok {
			benches[i] = b
			continue
		}
		seen[name] = len(benches)
		benches = append(benches, b)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(benches) == 0 {
		return nil, ErrNoBenches
	}
	return benches, nil
}
