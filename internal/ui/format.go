package ui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

// FormatValue renders a bench value with its unit for humans. Byte counts use
// binary prefixes and seconds become durations; anything else is printed as is.
func FormatValue(value float64, unit string) string {
	switch strings.ToLower(unit) {
	case "bytes", "byte", "b":
		if value >= 0 {
			return humanize.IBytes(uint64(value))
		}
	case "seconds", "second", "s", "sec":
		return formatDuration(time.Duration(value * float64(time.Second)))
	case "ms", "milliseconds":
		return formatDuration(time.Duration(value * float64(time.Millisecond)))
	case "ns/op", "ns":
		return formatDuration(time.Duration(value)) + strings.TrimPrefix(unit, "ns")
	}
	if unit == "" {
		return strconv.FormatFloat(value, 'g', -1, 64)
	}
	return fmt.Sprintf("%s %s", strconv.FormatFloat(value, 'g', -1, 64), unit)
}

func formatDuration(d time.Duration) string {
	switch {
	case d >= time.Second:
		return d.Round(10 * time.Millisecond).String()
	case d >= time.Millisecond:
		return d.Round(10 * time.Microsecond).String()
	default:
		return d.String()
	}
}

// FormatDate renders a dataset timestamp in milliseconds like "2026-02-04 20:23 (3 days ago)".
func FormatDate(ms int64, now time.Time) string {
	t := time.UnixMilli(ms).UTC()
	return fmt.Sprintf("%s (%s)", t.Format("2006-01-02 15:04"), humanize.RelTime(t, now, "ago", "from now"))
}

// FormatPercent renders a signed change like "+12.50%".
func FormatPercent(p float64) string {
	return fmt.Sprintf("%+.2f%%", p)
}
