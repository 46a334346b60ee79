package ledger

import (
	"fmt"
	"time"

	"github.com/bricknote/ledger/internal/errs"
)

// Granularity selects which calendar window a Period describes.
type Granularity string

const (
	GranularityMonth Granularity = "month"
	GranularityDay   Granularity = "day"
	GranularityYear  Granularity = "year"
)

// Period is a reporting window: exactly one of a calendar month, a single
// day, or a whole year. Together Contains and Before partition a customer's
// transactions into past, in-range and future.
type Period struct {
	Kind  Granularity
	Year  int
	Month time.Month
	Day   int
}

// MonthPeriod reports over one calendar month.
func MonthPeriod(year int, month time.Month) Period {
	return Period{Kind: GranularityMonth, Year: year, Month: month}
}

// DayPeriod reports over a single calendar date.
func DayPeriod(year int, month time.Month, day int) Period {
	return Period{Kind: GranularityDay, Year: year, Month: month, Day: day}
}

// YearPeriod reports over a whole calendar year.
func YearPeriod(year int) Period {
	return Period{Kind: GranularityYear, Year: year}
}

// Validate rejects incomplete specifications. Callers are expected to pass a
// complete period; the calculator does not re-validate beyond this.
func (p Period) Validate() error {
	switch p.Kind {
	case GranularityMonth:
		if p.Year == 0 || p.Month < time.January || p.Month > time.December {
			return fmt.Errorf("%w: month period needs year and month", errs.ErrInvalidPeriod)
		}
	case GranularityDay:
		if p.Year == 0 || p.Month < time.January || p.Month > time.December || p.Day < 1 || p.Day > 31 {
			return fmt.Errorf("%w: day period needs year, month and day", errs.ErrInvalidPeriod)
		}
	case GranularityYear:
		if p.Year == 0 {
			return fmt.Errorf("%w: year period needs a year", errs.ErrInvalidPeriod)
		}
	default:
		return fmt.Errorf("%w: unknown granularity %q", errs.ErrInvalidPeriod, p.Kind)
	}
	return nil
}

// Contains reports whether the date falls inside the reporting window.
func (p Period) Contains(d time.Time) bool {
	y, m, day := d.UTC().Date()
	switch p.Kind {
	case GranularityDay:
		return y == p.Year && m == p.Month && day == p.Day
	case GranularityYear:
		return y == p.Year
	default:
		return y == p.Year && m == p.Month
	}
}

// Before reports whether the date falls strictly before the reporting
// window. Dates that are neither Before nor Contained are in the future.
func (p Period) Before(d time.Time) bool {
	y, m, _ := d.UTC().Date()
	switch p.Kind {
	case GranularityDay:
		start := time.Date(p.Year, p.Month, p.Day, 0, 0, 0, 0, time.UTC)
		return DateOnly(d).Before(start)
	case GranularityYear:
		return y < p.Year
	default:
		return y < p.Year || (y == p.Year && m < p.Month)
	}
}

// String renders the period the way report titles show it.
func (p Period) String() string {
	switch p.Kind {
	case GranularityDay:
		return fmt.Sprintf("%04d-%02d-%02d", p.Year, p.Month, p.Day)
	case GranularityYear:
		return fmt.Sprintf("%04d", p.Year)
	default:
		return fmt.Sprintf("%04d-%02d", p.Year, p.Month)
	}
}
