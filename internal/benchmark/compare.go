package benchmark

import (
	"fmt"
	"math"
)

// DefaultAlertThreshold flags a bench that got twice as bad.
const DefaultAlertThreshold = 2.0

// Comparison pairs the same bench across two entries.
type Comparison struct {
	Name string
	Prev Bench
	Curr Bench
	// Ratio is above 1 when Curr is worse than Prev for the entry's tool.
	Ratio float64
	// DiffPercent is the raw change of the value in percent.
	DiffPercent float64
	Tool        Tool
}

// Compare returns comparisons for benches present in both entries, in the
// order of curr.
func Compare(prev, curr Entry) []Comparison {
	prevMap := make(map[string]Bench, len(prev.Benches))
	for _, b := range prev.Benches {
		prevMap[b.Name] = b
	}

	var comparisons []Comparison
	for _, c := range curr.Benches {
		p, ok := prevMap[c.Name]
		if !ok {
			continue
		}
		comp := Comparison{
			Name:  c.Name,
			Prev:  p,
			Curr:  c,
			Tool:  curr.Tool,
			Ratio: ratio(curr.Tool, p.Value, c.Value),
		}
		if p.Value != 0 {
			comp.DiffPercent = (c.Value - p.Value) / p.Value * 100
		}
		comparisons = append(comparisons, comp)
	}
	return comparisons
}

func ratio(tool Tool, prev, curr float64) float64 {
	num, den := curr, prev
	if tool.BiggerIsBetter() {
		num, den = prev, curr
	}
	if den == 0 {
		if num == 0 {
			return 1
		}
		return math.Inf(1)
	}
	return num / den
}

// Alerts returns the comparisons whose ratio exceeds threshold.
func Alerts(comparisons []Comparison, threshold float64) []Comparison {
	var alerts []Comparison
	for _, c := range comparisons {
		if c.Ratio > threshold {
			alerts = append(alerts, c)
		}
	}
	return alerts
}

// Regressed reports whether the current value is worse than the previous one.
func (c Comparison) Regressed() bool {
	return c.Ratio > 1
}

// Improved reports whether the current value is better than the previous one.
func (c Comparison) Improved() bool {
	return c.Ratio < 1
}

func (c Comparison) String() string {
	return fmt.Sprintf("%s: %g -> %g %s (%+.2f%%, ratio %.2f)", c.Name, c.Prev.Value, c.Curr.Value, c.Curr.Unit, c.DiffPercent, c.Ratio)
}
