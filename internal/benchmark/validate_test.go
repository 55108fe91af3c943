package benchmark

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_Testdata(t *testing.T) {
	_, d := loadTestdata(t)
	assert.NoError(t, Validate(d))
}

func TestValidate_ReportsEveryProblem(t *testing.T) {
	input := `{
  "lastUpdate": 5,
  "repoUrl": "",
  "entries": {
    "s": [
      {"commit": {"id": "a"}, "date": 10, "tool": "customSmallerIsBetter", "benches": [{"name": "x", "value": 1, "unit": "u"}]},
      {"commit": {"id": "a"}, "date": 9, "tool": "bogus", "benches": [{"name": "x", "value": 1, "unit": "u"}, {"name": "x", "value": 2, "unit": "u"}]},
      {"commit": {"id": ""}, "date": 11, "tool": "go", "benches": []}
    ]
  }
}`
	d, err := Decode(strings.NewReader(input))
	require.NoError(t, err)

	err = Validate(d)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDuplicateCommit)
	assert.ErrorIs(t, err, ErrOutOfOrder)
	assert.ErrorIs(t, err, ErrUnknownTool)
	assert.ErrorIs(t, err, ErrDuplicateBench)
	assert.ErrorIs(t, err, ErrMissingCommit)
	assert.ErrorIs(t, err, ErrNoBenches)
	assert.Contains(t, err.Error(), "lastUpdate 5 is older than newest entry date 11")
}

func TestValidate_NonFiniteValue(t *testing.T) {
	d := New("")
	require.NoError(t, d.Append("s", entry("a", 1), AppendOptions{}))
	entries, _ := d.Suite("s")
	entries[0].Benches[0].Value = math.NaN()

	err := Validate(d)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "non-finite")
}

func TestValidate_Empty(t *testing.T) {
	assert.NoError(t, Validate(New("")))
}
