package clock

import (
	"regexp"
	"strings"
)

var (
	reMinSecTenth = regexp.MustCompile(`^(\d{1,2}):(\d{1,2})\.(\d)$`)
	reTenth       = regexp.MustCompile(`^\d{1,2}\.\d$`)
	reMinSec      = regexp.MustCompile(`^\d{1,2}:\d{2}$`)
	reDigitRun    = regexp.MustCompile(`^\d{3,4}$`)
	reShort       = regexp.MustCompile(`^\d{1,2}$`)
)

var ocrNoise = strings.NewReplacer(" ", "", "•", "", "-", "", ";", ":")

// NormalizeOCR turns one raw OCR reading of the scoreboard clock into clock
// text ParseSeconds understands. ok is false when the reading has no clock shape.
func NormalizeOCR(raw string) (string, bool) {
	s := ocrNoise.Replace(strings.TrimSpace(raw))
	s = strings.TrimPrefix(s, ":")
	if s == "" {
		return "", false
	}

	// Some boards keep the minute digit while showing tenths: "0:35.3" is "35.3".
	if m := reMinSecTenth.FindStringSubmatch(s); m != nil {
		secs := strings.TrimLeft(m[2], "0")
		if secs == "" {
			secs = "0"
		}
		return secs + "." + m[3], true
	}
	if reTenth.MatchString(s) {
		return s, true
	}

	s = strings.NewReplacer(",", ":", ".", ":", "O", "0", "o", "0").Replace(s)
	switch {
	case reMinSec.MatchString(s):
		return s, true
	case reDigitRun.MatchString(s):
		return s[:len(s)-2] + ":" + s[len(s)-2:], true
	case reShort.MatchString(s):
		return s + ":00", true
	}
	return "", false
}
