package weights

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// partialNumber matches any prefix of a non-negative decimal, including the
// empty string, "12." and ".5".
var partialNumber = regexp.MustCompile(`^\d*\.?\d*$`)

// AcceptsDraft reports whether s is an acceptable in-progress entry.
func AcceptsDraft(s string) bool {
	return partialNumber.MatchString(s)
}

// CommitPercent interprets a draft entry. Unparsable or too small values
// become min, too large values become max; fractional values are kept at
// two decimals.
func CommitPercent(draft string, min, max float64) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(draft), 64)
	if err != nil || math.IsNaN(v) || v < min {
		return min
	}
	if v > max {
		return max
	}
	if v == math.Trunc(v) {
		return v
	}
	return Round2(v)
}

// Round2 rounds v to two decimals.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// FormatPercent renders a committed weight in its shortest form:
// "50", "33.5", "12.25".
func FormatPercent(v float64) string {
	return strconv.FormatFloat(Round2(v), 'f', -1, 64)
}
