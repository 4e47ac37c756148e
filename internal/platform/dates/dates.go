// Package dates normalizes the timestamp formats used across billing records.
// Upstream clients send creation dates either as RFC3339 strings or as unix
// epoch milliseconds, and receipt views render absent dates as "--".
package dates

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Placeholder is rendered wherever a date is absent.
const Placeholder = "--"

// Mode selects an output layout for Format.
type Mode int

const (
	ModeStandard Mode = iota // 2006-01-02
	ModeWide                 // 02 January 2006
	ModeStandardWithTime     // 2006-01-02 15:04
	ModeWideWithTime         // 02 January 2006, 15:04
)

var layouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.000-0700", // legacy OpenMRS REST format
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Parse accepts the timestamp formats seen on the wire and returns a UTC time.
func Parse(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty date string")
	}
	// Epoch milliseconds arrive as bare integers.
	if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.UnixMilli(ms).UTC(), nil
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date format: %q", s)
}

// Format renders t in the requested mode.
func Format(t time.Time, mode Mode) string {
	switch mode {
	case ModeWide:
		return t.Format("02 January 2006")
	case ModeStandardWithTime:
		return t.Format("2006-01-02 15:04")
	case ModeWideWithTime:
		return t.Format("02 January 2006, 15:04")
	default:
		return t.Format("2006-01-02")
	}
}

// FormatOrPlaceholder renders t in the requested mode, or the "--" placeholder
// when t is nil.
func FormatOrPlaceholder(t *time.Time, mode Mode) string {
	if t == nil {
		return Placeholder
	}
	return Format(*t, mode)
}

// FlexTime is a time.Time that unmarshals from either an epoch-milliseconds
// JSON number or a timestamp string. Payment records historically carried
// both encodings.
type FlexTime struct {
	time.Time
}

func (f *FlexTime) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" || s == `""` {
		f.Time = time.Time{}
		return nil
	}
	s = strings.Trim(s, `"`)
	t, err := Parse(s)
	if err != nil {
		return err
	}
	f.Time = t
	return nil
}

func (f FlexTime) MarshalJSON() ([]byte, error) {
	if f.Time.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + f.Time.Format(time.RFC3339) + `"`), nil
}
