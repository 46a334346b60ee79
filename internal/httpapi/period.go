package httpapi

import (
	"fmt"
	"time"

	"github.com/bricknote/ledger/internal/errs"
	"github.com/bricknote/ledger/internal/ledger"
)

// parsePeriod turns the month/day/year query params into a period.
// Exactly one selector must be present.
func parsePeriod(month, day, year string) (ledger.Period, error) {
	given := 0
	for _, v := range []string{month, day, year} {
		if v != "" {
			given++
		}
	}
	if given != 1 {
		return ledger.Period{}, fmt.Errorf("%w: exactly one of month, day or year is required", errs.ErrInvalidPeriod)
	}
	var p ledger.Period
	switch {
	case month != "":
		t, err := time.Parse("2006-01", month)
		if err != nil {
			return ledger.Period{}, fmt.Errorf("%w: invalid month, want YYYY-MM", errs.ErrInvalidPeriod)
		}
		p = ledger.MonthPeriod(t.Year(), t.Month())
	case day != "":
		t, err := time.Parse(time.DateOnly, day)
		if err != nil {
			return ledger.Period{}, fmt.Errorf("%w: invalid day, want YYYY-MM-DD", errs.ErrInvalidPeriod)
		}
		p = ledger.DayPeriod(t.Year(), t.Month(), t.Day())
	default:
		t, err := time.Parse("2006", year)
		if err != nil {
			return ledger.Period{}, fmt.Errorf("%w: invalid year, want YYYY", errs.ErrInvalidPeriod)
		}
		p = ledger.YearPeriod(t.Year())
	}
	if err := p.Validate(); err != nil {
		return ledger.Period{}, err
	}
	return p, nil
}
