package collection

import (
	"encoding/json"
	"fmt"
	"time"
)

const readDateFormat = "2006-1-2" // permissive read format (allows single-digit month/day)

// DateFormat is the format used to represent dates as strings in ISO-8601 format.
const DateFormat = "2006-01-02"

// Date represents a date with day-level granularity.
type Date struct {
	y int
	m time.Month
	d int
}

// NewDate returns a normalized Date for the given year, month, and day.
func NewDate(year int, month time.Month, day int) Date {
	d := Date{year, month, day}
	d.y, d.m, d.d = d.time().Date()
	return d
}

// Today returns the current date.
func Today() Date { return NewDate(time.Now().Date()) }

// Year returns the year of the date.
func (d Date) Year() int { return d.y }

// Month returns the month of the date.
func (d Date) Month() time.Month { return d.m }

// Day returns the day of the month.
func (d Date) Day() int { return d.d }

// String formats the date in ISO-8601.
func (d Date) String() string { return d.time().Format(DateFormat) }

// IsZero returns true if the date is the zero value.
func (d Date) IsZero() bool { return d.y == 0 && d.m == 0 && d.d == 0 }

// time returns a time.Time that is a canonical representation of that day (at midnight UTC).
func (d Date) time() time.Time { return time.Date(d.y, d.m, d.d, 0, 0, 0, 0, time.UTC) }

// Before reports whether the day d is before x.
func (d Date) Before(x Date) bool { return d.time().Before(x.time()) }

// After reports whether the day d is after x.
func (d Date) After(x Date) bool { return d.time().After(x.time()) }

// Add returns a new Date with the given number of days added.
func (d Date) Add(i int) Date { return NewDate(d.y, d.m, d.d+i) }

// Compare returns -1, 0 or +1 depending on whether d is before, equal to or
// after x. It makes Date usable with slices.SortFunc and friends.
func (d Date) Compare(x Date) int {
	switch {
	case d.Before(x):
		return -1
	case d.After(x):
		return 1
	default:
		return 0
	}
}

// ParseDate parses a Date from an ISO-8601 string. It is lenient and accepts
// formats like "2025-7-1".
func ParseDate(str string) (Date, error) {
	on, err := time.Parse(readDateFormat, str)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q want format %q: %w", str, DateFormat, err)
	}
	return NewDate(on.Date()), nil
}

// MustParse is like ParseDate but panics on error. Meant for tests and constants.
func MustParse(str string) Date {
	d, err := ParseDate(str)
	if err != nil {
		panic(err.Error())
	}
	return d
}

// UnmarshalJSON implements json.Unmarshaler for a date encoded as a string.
func (d *Date) UnmarshalJSON(bytes []byte) error {
	var str string
	if err := json.Unmarshal(bytes, &str); err != nil {
		return err
	}
	on, err := time.Parse(readDateFormat, str)
	if err != nil {
		return fmt.Errorf("invalid date %q in data file, want format %q: %w", str, DateFormat, err)
	}
	*d = NewDate(on.Date())
	return nil
}

// MarshalJSON implements json.Marshaler.
func (d Date) MarshalJSON() ([]byte, error) {
	str := d.String()
	return json.Marshal(&str)
}

var _ json.Marshaler = (*Date)(nil)
var _ json.Unmarshaler = (*Date)(nil)
