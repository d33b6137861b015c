package domain

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-SpaceBookingService/pkg/types"
)

// DateWindow is an inclusive range of calendar days
type DateWindow struct {
	Start types.Date
	End   types.Date
}

// MonthWindow returns the window from the first to the last day of the month
func MonthWindow(year int, month time.Month) (DateWindow, error) {
	if year < MinYear || year > MaxYear {
		return DateWindow{}, fmt.Errorf("domain: year must be in %d..%d, got %d", MinYear, MaxYear, year)
	}
	if month < time.January || month > time.December {
		return DateWindow{}, fmt.Errorf("domain: month must be in 1..12, got %d", month)
	}

	start := types.NewDate(year, month, 1)
	// нулевой день следующего месяца - последний день текущего
	end := types.NewDate(year, month+1, 0)

	return DateWindow{Start: start, End: end}, nil
}

// SingleDay returns a window covering only d
func SingleDay(d types.Date) DateWindow {
	return DateWindow{Start: d, End: d}
}

// Len returns the number of days in the window
func (w DateWindow) Len() int {
	if w.End.Before(w.Start) {
		return 0
	}
	return int(w.End.In(time.UTC).Sub(w.Start.In(time.UTC)).Hours()/24) + 1
}

// Days returns every day of the window in ascending order
func (w DateWindow) Days() []types.Date {
	days := make([]types.Date, 0, w.Len())
	for d := w.Start; !d.After(w.End); d = d.AddDays(1) {
		days = append(days, d)
	}
	return days
}

// Contains reports whether d falls inside the window
func (w DateWindow) Contains(d types.Date) bool {
	return !d.Before(w.Start) && !d.After(w.End)
}

// IsSingleDay reports whether the window covers exactly one day
func (w DateWindow) IsSingleDay() bool {
	return w.Start.Equal(w.End)
}
