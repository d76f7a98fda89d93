package core

import (
	"errors"
	"time"
)

// DateLayout is the wire format for fiscal-year boundaries.
const DateLayout = "2006-01-02"

var (
	ErrZeroBound     = errors.New("fiscal year bound cannot be zero")
	ErrInvertedRange = errors.New("fiscal year end before start")
)

// FiscalYear is an explicit [Start, End] date window in UTC. It is not
// necessarily calendar-aligned.
type FiscalYear struct {
	Start time.Time
	End   time.Time
}

// CalendarYear returns the Jan 1 .. Dec 31 window for the given year.
func CalendarYear(year int) FiscalYear {
	return FiscalYear{
		Start: time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC),
	}
}

// NewFiscalYear builds a window from explicit bounds.
func NewFiscalYear(start, end time.Time) (FiscalYear, error) {
	fy := FiscalYear{Start: start.UTC(), End: end.UTC()}
	return fy, fy.Validate()
}

func (fy FiscalYear) Validate() error {
	if fy.Start.IsZero() || fy.End.IsZero() {
		return ErrZeroBound
	}
	if fy.End.Before(fy.Start) {
		return ErrInvertedRange
	}
	return nil
}

// Year returns the label for the window, the year its end date falls in.
func (fy FiscalYear) Year() int {
	return fy.End.Year()
}

// Previous returns the window exactly one calendar year earlier: same
// month and day for both bounds, never a 365-day subtraction. A Feb 29
// bound maps to Feb 28 when the prior year is not a leap year.
func (fy FiscalYear) Previous() FiscalYear {
	return FiscalYear{
		Start: shiftYear(fy.Start, -1),
		End:   shiftYear(fy.End, -1),
	}
}

// Contains reports whether t falls inside the window, inclusive on both
// bounds.
func (fy FiscalYear) Contains(t time.Time) bool {
	return !t.Before(fy.Start) && !t.After(fy.End)
}

func shiftYear(t time.Time, years int) time.Time {
	year, month, day := t.Date()
	year += years
	if month == time.February && day == 29 && !isLeapYear(year) {
		day = 28
	}
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func isLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}
