package models

import (
	"bytes"
	"fmt"
	"time"

	"github.com/goccy/go-json"
)

// DateLayout is the canonical wire and storage form of calendar dates.
const DateLayout = "2006-01-02"

// Date is a calendar date. It accepts "YYYY-MM-DD" and RFC 3339 timestamps on
// input (the time of day is dropped) and always renders as "YYYY-MM-DD".
type Date struct {
	time.Time
}

// ParseDate parses s into a Date.
func ParseDate(s string) (Date, error) {
	if t, err := time.Parse(DateLayout, s); err == nil {
		return Date{t}, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q, use YYYY-MM-DD", s)
	}
	y, m, d := t.Date()
	return Date{time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}, nil
}

func (d Date) String() string {
	return d.Format(DateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("date must be a string: %w", err)
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// optionalDate renders a nullable date for a store row.
func optionalDate(d *Date) any {
	if d == nil {
		return nil
	}
	return d.String()
}

// optionalString renders a nullable string for a store row.
func optionalString(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}
