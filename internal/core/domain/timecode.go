package domain

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// timeCodePattern accepts minutes:seconds with an optional single decimal
// digit of tenths, e.g. "2:05.4" or "12:30".
var timeCodePattern = regexp.MustCompile(`^\d+:\d+(\.\d)?$`)

// ParseTimeCode converts a "minutes:seconds.tenths" string to milliseconds.
// It returns a *FormatError for anything that does not match M:SS.S.
func ParseTimeCode(s string) (int, error) {
	if !timeCodePattern.MatchString(s) {
		return 0, &FormatError{Input: s}
	}

	parts := strings.SplitN(s, ":", 2)
	minutes, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, &FormatError{Input: s}
	}
	seconds, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return 0, &FormatError{Input: s}
	}

	return int(math.Round((float64(minutes)*60 + seconds) * 1000)), nil
}

// FormatTimeCode converts milliseconds to "M:SS.S", rounding to the nearest
// tenth of a second. The seconds component is zero-padded to two digits and
// always carries exactly one decimal digit, so FormatTimeCode(125350) is
// "2:05.4".
func FormatTimeCode(ms int) string {
	tenths := int(math.Round(float64(ms) / 100))
	minutes := tenths / 600
	tenths -= minutes * 600
	return fmt.Sprintf("%d:%04.1f", minutes, float64(tenths)/10)
}
