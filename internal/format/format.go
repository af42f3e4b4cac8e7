package format

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
)

// Display precision, fixed per field class: prices carry up to 2 decimals,
// volumes up to 8, computed percentages exactly 4.
const (
	priceDecimals  = 2
	volumeDecimals = 8
)

// Float parses an upstream decimal string. A non-numeric field yields NaN,
// which flows through the output unformatted; that degenerate rendering is
// accepted rather than corrected.
func Float(s string) float64 {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN()
	}
	return f
}

// Price renders a price value as a dollar string with comma grouping,
// e.g. 50000 -> "$50,000", 50000.5 -> "$50,000.5".
func Price(v float64) string {
	return "$" + humanize.CommafWithDigits(v, priceDecimals)
}

// Volume renders a base-asset quantity with up to 8 decimals.
func Volume(v float64) string {
	return humanize.CommafWithDigits(v, volumeDecimals)
}

// Percent renders a computed percentage with fixed 4-decimal precision,
// e.g. 0.02 -> "0.0200%".
func Percent(v float64) string {
	return fmt.Sprintf("%.4f%%", v)
}

// RawPercent passes an upstream percent string through verbatim, only
// appending the sign: "2.0" -> "2.0%".
func RawPercent(s string) string {
	return s + "%"
}

// Millis renders a milliseconds-since-epoch timestamp as ISO-8601 UTC.
func Millis(ms int64) string {
	return time.UnixMilli(ms).UTC().Format(time.RFC3339)
}
