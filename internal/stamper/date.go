package stamper

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Accepted input layouts. The separator must be used uniformly.
var dateLayouts = []string{"2006-01-02", "2006.01.02"}

var errDateFormat = errors.New("invalid date, use YYYY-MM-DD or YYYY.MM.DD")

// Date is a calendar day without time-of-day or location.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// ParseDate parses s as YYYY-MM-DD or YYYY.MM.DD. Values that are not real
// calendar days, such as 2025-02-30, are rejected.
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	err := errDateFormat
	for _, layout := range dateLayouts {
		t, perr := time.Parse(layout, s)
		if perr == nil {
			return DateOf(t), nil
		}
		// time.Parse reports range problems (": month out of range",
		// ": day out of range") in Message, layout mismatches leave it empty.
		var pe *time.ParseError
		if errors.As(perr, &pe) && strings.Contains(pe.Message, "out of range") {
			err = fmt.Errorf("invalid calendar date%s", pe.Message)
		}
	}
	return Date{}, &Error{Op: "parse date", Kind: KindInput, Value: s, Err: err}
}

// ParseRange turns one or two positional arguments into a from/to pair.
// With a single argument the same date is used for both ends.
func ParseRange(args []string) (from, to Date, err error) {
	if len(args) < 1 || len(args) > 2 {
		return Date{}, Date{}, &Error{
			Op:   "parse arguments",
			Kind: KindInput,
			Err:  fmt.Errorf("expected 1 or 2 dates, got %d", len(args)),
		}
	}

	from, err = ParseDate(args[0])
	if err != nil {
		return Date{}, Date{}, err
	}
	to = from
	if len(args) == 2 && strings.TrimSpace(args[1]) != "" {
		to, err = ParseDate(args[1])
		if err != nil {
			return Date{}, Date{}, err
		}
	}
	return from, to, nil
}

// DateOf returns the calendar day of t in t's location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// Short formats d as YY.MM.DD.
func (d Date) Short() string {
	return fmt.Sprintf("%02d.%02d.%02d", d.Year%100, int(d.Month), d.Day)
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}
