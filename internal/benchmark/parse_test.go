package benchmark

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCustom(t *testing.T) {
	input := `[
  {"name": "Binary Size (bytes)", "value": 3409752, "unit": "bytes"},
  {"name": "Build Time", "value": 55.21, "unit": "seconds", "range": "+-0.5", "extra": "release profile"}
]`
	benches, err := ParseCustom(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, []Bench{
		{Name: "Binary Size (bytes)", Value: 3409752, Unit: "bytes"},
		{Name: "Build Time", Value: 55.21, Unit: "seconds", Range: "+-0.5", Extra: "release profile"},
	}, benches)
}

func TestParseCustom_Errors(t *testing.T) {
	_, err := ParseCustom(strings.NewReader(`[]`))
	assert.ErrorIs(t, err, ErrNoBenches)

	_, err = ParseCustom(strings.NewReader(`[{"name":"a","value":1},{"name":"a","value":2}]`))
	assert.ErrorIs(t, err, ErrDuplicateBench)

	_, err = ParseCustom(strings.NewReader(`{"name":"a"}`))
	assert.Error(t, err)
}

func TestParseGoBench(t *testing.T) {
	output := `goos: linux
goarch: amd64
pkg: example.com/foo
BenchmarkEncode-8        	  500000	      2534 ns/op	     512 B/op	       4 allocs/op
BenchmarkDecode/small-8  	 1000000	      1043.5 ns/op	  98.12 MB/s
BenchmarkPlain           	     100	  10000000 ns/op
PASS
ok  	example.com/foo	3.012s
`
	benches, err := ParseGoBench(strings.NewReader(output))
	require.NoError(t, err)
	require.Len(t, benches, 3)

	assert.Equal(t, "BenchmarkEncode - 8", benches[0].Name)
	assert.Equal(t, 2534.0, benches[0].Value)
	assert.Equal(t, "ns/op", benches[0].Unit)
	assert.Equal(t, "500000 times\n512 B/op\n4 allocs/op", benches[0].Extra)

	assert.Equal(t, "BenchmarkDecode/small - 8", benches[1].Name)
	assert.Equal(t, 1043.5, benches[1].Value)
	assert.Equal(t, "1000000 times\n98.12 MB/s", benches[1].Extra)

	assert.Equal(t, "BenchmarkPlain", benches[2].Name)
	assert.Equal(t, "100 times", benches[2].Extra)
}

func TestParseGoBench_RepeatedRunsKeepLast(t *testing.T) {
	output := "BenchmarkA-4 10 100 ns/op\nBenchmarkA-4 10 90 ns/op\n"
	benches, err := ParseGoBench(strings.NewReader(output))
	require.NoError(t, err)
	require.Len(t, benches, 1)
	assert.Equal(t, 90.0, benches[0].Value)
}

func TestParseGoBench_NoResults(t *testing.T) {
	_, err := ParseGoBench(strings.NewReader("PASS\nok\n"))
	assert.ErrorIs(t, err, ErrNoBenches)
}
