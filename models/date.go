package models

import (
	"encoding/json"
	"time"
)

const DateLayout = "2006-01-02"

// Date is a calendar day. The zero value is a missing date.
type Date struct {
	Year  int
	Month time.Month
	Day   int
	Valid bool
}

// DateOf truncates t to its calendar day in t's own location.
func DateOf(t *time.Time) Date {
	if t == nil {
		return Date{}
	}
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d, Valid: true}
}

func (d Date) Before(o Date) bool {
	if d.Year != o.Year {
		return d.Year < o.Year
	}
	if d.Month != o.Month {
		return d.Month < o.Month
	}
	return d.Day < o.Day
}

func (d Date) String() string {
	if !d.Valid {
		return ""
	}
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC).Format(DateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	if !d.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(d.String())
}

// ParseDate parses YYYY-MM-DD. An empty string is a missing date.
func ParseDate(s string) (Date, error) {
	if s == "" {
		return Date{}, nil
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, err
	}
	return DateOf(&t), nil
}
