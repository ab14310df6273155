package scoputil

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// Lease duration applied when a declaration omits the field.
const DefaultLeaseDuration = 8 * 24 * time.Hour

// Matches the day.hh:mm:ss[.fraction] timespan form, with the day and
// fraction parts optional.
var timeSpanPattern = regexp.MustCompile(`^(?:(\d+)\.)?(\d{1,2}):(\d{2}):(\d{2})(?:\.(\d{1,7}))?$`)

// Parses a lease duration. Three forms are accepted: Go duration
// strings (e.g., 192h), plain integer seconds (e.g., 691200) and the
// day.hh:mm:ss timespan form (e.g., 8.00:00:00) produced by some
// declaration exports. Negative durations are rejected in all forms.
func ParseLeaseDuration(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, errors.New("lease duration must not be empty")
	}

	if seconds, err := strconv.ParseInt(s, 10, 64); err == nil {
		if seconds < 0 {
			return 0, errors.Errorf("lease duration %s must not be negative", s)
		}
		return time.Duration(seconds) * time.Second, nil
	}

	if duration, err := time.ParseDuration(s); err == nil {
		if duration < 0 {
			return 0, errors.Errorf("lease duration %s must not be negative", s)
		}
		return duration, nil
	}

	if duration, ok := parseTimeSpan(s); ok {
		return duration, nil
	}

	return 0, errors.Errorf("cannot parse lease duration %s", s)
}

// Parses the day.hh:mm:ss[.fraction] timespan form. The hour part must
// be lower than 24 and the minute and second parts lower than 60.
func parseTimeSpan(s string) (time.Duration, bool) {
	m := timeSpanPattern.FindStringSubmatch(s)
	if m == nil {
		return 0, false
	}
	var days int64
	if m[1] != "" {
		days, _ = strconv.ParseInt(m[1], 10, 32)
	}
	hours, _ := strconv.ParseInt(m[2], 10, 32)
	minutes, _ := strconv.ParseInt(m[3], 10, 32)
	seconds, _ := strconv.ParseInt(m[4], 10, 32)
	if hours > 23 || minutes > 59 || seconds > 59 {
		return 0, false
	}
	duration := time.Duration(days)*24*time.Hour +
		time.Duration(hours)*time.Hour +
		time.Duration(minutes)*time.Minute +
		time.Duration(seconds)*time.Second
	if m[5] != "" {
		// The fraction part holds up to seven digits, i.e., the
		// 100-nanosecond resolution.
		ticks, _ := strconv.ParseInt(m[5]+strings.Repeat("0", 7-len(m[5])), 10, 64)
		duration += time.Duration(ticks) * 100 * time.Nanosecond
	}
	return duration, true
}
