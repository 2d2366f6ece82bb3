package clock

import (
	"math"
	"strconv"
	"strings"
)

// ParseSeconds converts displayed clock text to seconds remaining in the period.
// It accepts "M:SS", "M:SS.d" and the bare decimal "SS.d" shown near the end of
// a period. ok is false for anything else.
func ParseSeconds(text string) (float64, bool) {
	t := strings.TrimSpace(text)
	if t == "" {
		return 0, false
	}
	if m, s, found := strings.Cut(t, ":"); found {
		mins, err := strconv.Atoi(m)
		if err != nil || mins < 0 {
			return 0, false
		}
		secs, ok := parseDecimal(s)
		if !ok || secs >= 60 {
			return 0, false
		}
		return float64(mins)*60 + secs, true
	}
	return parseDecimal(t)
}

func parseDecimal(s string) (float64, bool) {
	if s == "" || strings.ContainsAny(s, "+-eEpPxX_") {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0, false
	}
	return v, true
}

// FormatSeconds renders whole seconds remaining as "M:SS".
func FormatSeconds(sec float64) string {
	if sec < 0 {
		sec = 0
	}
	whole := int(math.Floor(sec + 1e-9))
	return strconv.Itoa(whole/60) + ":" + pad2(whole%60)
}

func pad2(n int) string {
	if n < 10 {
		return "0" + strconv.Itoa(n)
	}
	return strconv.Itoa(n)
}
