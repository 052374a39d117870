package types

import (
	"fmt"
	"time"
)

const dateFormat = "2006-01-02"

// Date is a calendar date without a time zone, e.g. "2026-03-14". Schedule
// conflict checks only ever compare dates for equality, so the normalized
// string form is the whole representation.
type Date string

func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateFormat, s)
	if err != nil {
		return "", fmt.Errorf("parse date %q: %w", s, err)
	}
	return Date(t.Format(dateFormat)), nil
}

func DateOf(t time.Time) Date {
	return Date(t.Format(dateFormat))
}

func (d Date) String() string { return string(d) }

func (d Date) MarshalText() ([]byte, error) {
	return []byte(d), nil
}

func (d *Date) UnmarshalText(b []byte) error {
	v, err := ParseDate(string(b))
	if err != nil {
		return err
	}
	*d = v
	return nil
}
