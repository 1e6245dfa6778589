package finboard

import (
	"encoding/json"
	"fmt"
	"time"
)

// TimeFormat is the format used to persist timestamps, a RFC3339 local time
// without sub-second digits.
const TimeFormat = "2006-01-02T15:04:05"

// DateFormat is the short form used when only the day matters (reports,
// manual transactions).
const DateFormat = "2006-01-02"

// Time represents a wall-clock instant with second granularity.
//
// The accrual logic only ever needs whole elapsed minutes, but transactions
// keep the full second so that several events in the same minute stay in
// order.
type Time struct {
	t time.Time
}

// NewTime returns a Time for the given instant, truncated to the second.
func NewTime(t time.Time) Time { return Time{t: t.Truncate(time.Second)} }

// Now returns the current instant.
func Now() Time { return NewTime(time.Now()) }

// IsZero returns true if the time is the zero value.
func (t Time) IsZero() bool { return t.t.IsZero() }

// Before reports whether t is before x.
func (t Time) Before(x Time) bool { return t.t.Before(x.t) }

// After reports whether t is after x.
func (t Time) After(x Time) bool { return t.t.After(x.t) }

// Add returns a new Time shifted by d.
func (t Time) Add(d time.Duration) Time { return NewTime(t.t.Add(d)) }

// Sub returns the duration t-x.
func (t Time) Sub(x Time) time.Duration { return t.t.Sub(x.t) }

// Equal reports whether t and x represent the same instant.
func (t Time) Equal(x Time) bool { return t.t.Equal(x.t) }

// String formats the time in the persisted format.
func (t Time) String() string { return t.t.Format(TimeFormat) }

// Date formats only the day part.
func (t Time) Date() string { return t.t.Format(DateFormat) }

// MinutesSince returns the number of whole minutes elapsed from x to t.
// It is negative when t is before x.
func (t Time) MinutesSince(x Time) int {
	return int(t.t.Sub(x.t) / time.Minute)
}

// ParseTime parses a Time from a string. It is lenient and accepts the
// persisted format, RFC3339 (the state files written by earlier versions used
// isoformat timestamps, with or without offset), and a bare date.
func ParseTime(str string) (Time, error) {
	for _, layout := range []string{TimeFormat, time.RFC3339, DateFormat} {
		if on, err := time.Parse(layout, str); err == nil {
			return NewTime(on), nil
		}
	}
	return Time{}, fmt.Errorf("invalid time %q want format %q", str, TimeFormat)
}

// MustParseTime is like ParseTime but panics on error. Test helper.
func MustParseTime(str string) Time {
	t, err := ParseTime(str)
	if err != nil {
		panic(err.Error())
	}
	return t
}

// UnmarshalJSON implements the json specific way to unmarshal a time from a json string.
func (t *Time) UnmarshalJSON(bytes []byte) error {
	var str string
	if err := json.Unmarshal(bytes, &str); err != nil {
		return err
	}
	on, err := ParseTime(str)
	if err != nil {
		return fmt.Errorf("invalid time %q in data file: %w", str, err)
	}
	*t = on
	return nil
}

func (t Time) MarshalJSON() ([]byte, error) {
	str := t.String()
	return json.Marshal(&str)
}

// check that a Time pointer is a valid json marshal/unmarshal type.
var _ json.Marshaler = (*Time)(nil)
var _ json.Unmarshaler = (*Time)(nil)
