package domain

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Upstream durations arrive in three encodings. The day pattern is matched
// first so a string like "20 days 04:40 hrs" is never mis-parsed by the
// plain hour:minute pattern.
var (
	dayHourPattern  = regexp.MustCompile(`^(\d+)\s*days?\s+(\d+):(\d+)(?:\s*hrs?)?$`)
	hourMinPattern  = regexp.MustCompile(`^(\d+):(\d+)(?:\s*hrs?)?$`)
	bareHourPattern = regexp.MustCompile(`^(\d+(?:\.\d+)?)(?:\s*hrs?)?$`)
)

// ParseDurationHours converts an upstream duration string to hours with
// minute precision. Unparsable or empty input returns 0, never an error;
// callers that need to distinguish "no data" from "zero duration" must use
// DurationMinutes instead.
func ParseDurationHours(text string) float64 {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0
	}

	if m := dayHourPattern.FindStringSubmatch(text); m != nil {
		days, _ := strconv.Atoi(m[1])
		hours, _ := strconv.Atoi(m[2])
		mins, _ := strconv.Atoi(m[3])
		return float64(days)*24 + float64(hours) + float64(mins)/60
	}

	if m := hourMinPattern.FindStringSubmatch(text); m != nil {
		hours, _ := strconv.Atoi(m[1])
		mins, _ := strconv.Atoi(m[2])
		return float64(hours) + float64(mins)/60
	}

	if m := bareHourPattern.FindStringSubmatch(text); m != nil {
		hours, _ := strconv.ParseFloat(m[1], 64)
		return hours
	}

	return 0
}

// DurationMinutes converts an upstream duration string to whole minutes.
// The second return value is false when the input is absent or unparsable,
// so averages can exclude unknown values instead of counting them as zero.
func DurationMinutes(text string) (int, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0, false
	}

	if m := dayHourPattern.FindStringSubmatch(text); m != nil {
		days, _ := strconv.Atoi(m[1])
		hours, _ := strconv.Atoi(m[2])
		mins, _ := strconv.Atoi(m[3])
		return days*24*60 + hours*60 + mins, true
	}

	if m := hourMinPattern.FindStringSubmatch(text); m != nil {
		hours, _ := strconv.Atoi(m[1])
		mins, _ := strconv.Atoi(m[2])
		return hours*60 + mins, true
	}

	if m := bareHourPattern.FindStringSubmatch(text); m != nil {
		hours, _ := strconv.ParseFloat(m[1], 64)
		return int(hours * 60), true
	}

	return 0, false
}

// FormatMinutes renders whole minutes as "H:MM" with zero-padded minutes.
// A measured zero renders as "0:00"; the "-" sentinel for absent averages
// is the caller's responsibility (it knows whether a value was measured).
func FormatMinutes(minutes int) string {
	if minutes < 0 {
		minutes = 0
	}
	return fmt.Sprintf("%d:%02d", minutes/60, minutes%60)
}
