package command

import (
	"math"
	"strconv"
)

// FormatScore renders a sorted-set score the way RESP/Redis clients
// expect it on the wire: integral scores print without a decimal
// point, and the three non-finite sentinels print as Redis spells
// them.
func FormatScore(f float64) string {
	switch {
	case math.IsInf(f, 1):
		return "+inf"
	case math.IsInf(f, -1):
		return "-inf"
	case math.IsNaN(f):
		return "nan"
	}
	if f == math.Trunc(f) && math.Abs(f) < 1e15 {
		return strconv.FormatInt(int64(f), 10)
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

func formatInt64(v int64) string {
	return strconv.FormatInt(v, 10)
}
