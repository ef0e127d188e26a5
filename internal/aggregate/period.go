package aggregate

import (
	"time"

	"github.com/carson-networks/spendwise/internal/ledger"
)

// PeriodStart returns the inclusive lower bound of the window containing
// ref. Weeks start on Monday. Calendar math uses ref's location.
func PeriodStart(period ledger.Period, ref time.Time) time.Time {
	day := StartOfDay(ref, ref.Location())
	switch period {
	case ledger.PeriodWeek:
		sinceMonday := (int(day.Weekday()) + 6) % 7
		return day.AddDate(0, 0, -sinceMonday)
	case ledger.PeriodMonth:
		return time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, day.Location())
	default:
		return day
	}
}

// InPeriod reports whether t falls in the period window around ref. A day
// window is the calendar day of ref; week and month windows have no upper
// bound.
func InPeriod(t time.Time, period ledger.Period, ref time.Time) bool {
	if period == ledger.PeriodDay {
		loc := ref.Location()
		return keyOf(t, loc) == keyOf(ref, loc)
	}
	return !t.Before(PeriodStart(period, ref))
}

// FilterPeriod keeps the transactions inside the period window around ref.
// An unknown period keeps everything.
func FilterPeriod(txs []ledger.Transaction, period ledger.Period, ref time.Time) []ledger.Transaction {
	out := []ledger.Transaction{}
	for _, tx := range txs {
		if !period.Valid() || InPeriod(tx.Date, period, ref) {
			out = append(out, tx)
		}
	}
	return out
}

// Window is a closed time range.
type Window struct {
	Start time.Time
	End   time.Time
}

func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}

// FilterWindow keeps the transactions dated inside w, bounds included.
func FilterWindow(txs []ledger.Transaction, w Window) []ledger.Transaction {
	out := []ledger.Transaction{}
	for _, tx := range txs {
		if w.Contains(tx.Date) {
			out = append(out, tx)
		}
	}
	return out
}

// ReportWindow returns the reporting window ending at now and the window of
// the same length right before it.
func ReportWindow(period ledger.ReportPeriod, now time.Time) (current, previous Window) {
	back := func(t time.Time) time.Time {
		switch period {
		case ledger.ReportMonth:
			return t.AddDate(0, -1, 0)
		case ledger.ReportYear:
			return t.AddDate(-1, 0, 0)
		default:
			return t.AddDate(0, 0, -7)
		}
	}

	start := back(now)
	current = Window{Start: start, End: now}
	previous = Window{Start: back(start), End: start}
	return current, previous
}
