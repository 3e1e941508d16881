package tags

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Timestamp is a calendar timestamp following the ID3v2.4 convention: the year
// is required and every following component is optional, but a component is
// only meaningful when all the preceding ones are present.
type Timestamp struct {
	Year   int
	Month  *int
	Day    *int
	Hour   *int
	Minute *int
	Second *int
}

var timestampRE = regexp.MustCompile(
	`^(\d{4})(?:-(\d{2})(?:-(\d{2})(?:T(\d{2})(?::(\d{2})(?::(\d{2}))?)?)?)?)?$`,
)

// ParseTimestamp parses YYYY, YYYY-MM or YYYY-MM-DD, optionally followed by
// THH, THH:MM or THH:MM:SS. Values are not range checked.
func ParseTimestamp(s string) (Timestamp, error) {
	m := timestampRE.FindStringSubmatch(s)
	if m == nil {
		return Timestamp{}, fmt.Errorf("%w: %q", ErrTimestampParse, s)
	}

	year, _ := strconv.Atoi(m[1])
	ts := Timestamp{Year: year}
	parts := []**int{&ts.Month, &ts.Day, &ts.Hour, &ts.Minute, &ts.Second}
	for i, dst := range parts {
		v := m[i+2]
		if v == "" {
			break
		}
		n, _ := strconv.Atoi(v)
		*dst = &n
	}
	return ts, nil
}

// NewYear returns a timestamp holding only a year.
func NewYear(year int) Timestamp {
	return Timestamp{Year: year}
}

// NewDate returns a timestamp holding a calendar date.
func NewDate(year, month, day int) Timestamp {
	return Timestamp{Year: year, Month: &month, Day: &day}
}

// DateString formats the date part as YYYY-MM-DD. A missing month or day is
// written as 00 and the time of day is dropped.
func (ts Timestamp) DateString() string {
	return fmt.Sprintf("%04d-%02d-%02d", ts.Year, deref(ts.Month), deref(ts.Day))
}

// String formats every present component in the ID3v2.4 form, so that
// ParseTimestamp(ts.String()) gives back ts.
func (ts Timestamp) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%04d", ts.Year)
	seps := []string{"-", "-", "T", ":", ":"}
	for i, p := range []*int{ts.Month, ts.Day, ts.Hour, ts.Minute, ts.Second} {
		if p == nil {
			break
		}
		fmt.Fprintf(&b, "%s%02d", seps[i], *p)
	}
	return b.String()
}

func deref(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}

// parseDateText parses a date stored as text. Unparseable values are
// reported as absent.
func parseDateText(s string) (Timestamp, bool) {
	if s == "" {
		return Timestamp{}, false
	}
	ts, err := ParseTimestamp(strings.TrimSpace(s))
	if err != nil {
		logger().Debug("ignoring unparseable date", "value", s)
		return Timestamp{}, false
	}
	return ts, true
}
