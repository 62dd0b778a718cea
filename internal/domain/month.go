package domain

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// MonthLayout is the canonical wire format of a month key.
const MonthLayout = "2006-01"

var monthPattern = regexp.MustCompile(`^\d{4}-\d{2}$`)

// Month identifies a calendar month. Its wire form is "YYYY-MM".
type Month struct {
	Year  int
	Month time.Month
}

// ParseMonth validates a "YYYY-MM" key. The year is not range checked.
func ParseMonth(s string) (Month, error) {
	if !monthPattern.MatchString(s) {
		return Month{}, ErrInvalidMonth
	}
	year, _ := strconv.Atoi(s[:4])
	num, _ := strconv.Atoi(s[5:])
	if num < 1 || num > 12 {
		return Month{}, ErrInvalidMonth
	}
	return Month{Year: year, Month: time.Month(num)}, nil
}

// MonthOf returns the month containing t, in t's location.
func MonthOf(t time.Time) Month {
	return Month{Year: t.Year(), Month: t.Month()}
}

func (m Month) String() string {
	return fmt.Sprintf("%04d-%02d", m.Year, int(m.Month))
}

// IsZero reports whether m is the zero value.
func (m Month) IsZero() bool {
	return m.Year == 0 && m.Month == 0
}

// Start is the first instant of the month in UTC.
func (m Month) Start() time.Time {
	return time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, time.UTC)
}

// End is the last second of the month: the next month's start minus one second.
func (m Month) End() time.Time {
	return m.AddMonths(1).Start().Add(-time.Second)
}

// Window returns the inclusive [Start, End] range used for date filtering.
func (m Month) Window() (time.Time, time.Time) {
	return m.Start(), m.End()
}

// Contains reports whether t falls inside the month window.
func (m Month) Contains(t time.Time) bool {
	start, end := m.Window()
	return !t.Before(start) && !t.After(end)
}

// AddMonths shifts m by n months, n may be negative.
func (m Month) AddMonths(n int) Month {
	t := time.Date(m.Year, m.Month+time.Month(n), 1, 0, 0, 0, 0, time.UTC)
	return MonthOf(t)
}

func (m Month) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

func (m *Month) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return ErrInvalidMonth
	}
	parsed, err := ParseMonth(s)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
