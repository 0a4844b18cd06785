package leaderboard

import "time"

// WindowFor computes the interval and key fields for the period instance
// containing now. Weekly windows trail 7 days and are keyed by ISO week;
// the others align to calendar month/quarter/year. Month is 0 unless
// monthly, week is 0 unless weekly.
func WindowFor(period Period, now time.Time) Window {
	switch period {
	case PeriodWeekly:
		isoYear, isoWeek := now.ISOWeek()
		return Window{
			Start: now.AddDate(0, 0, -7),
			End:   now,
			Year:  isoYear,
			Week:  isoWeek,
		}
	case PeriodMonthly:
		start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		return Window{
			Start: start,
			End:   start.AddDate(0, 1, 0),
			Year:  now.Year(),
			Month: int(now.Month()),
		}
	case PeriodQuarterly:
		quarterMonth := time.Month(((int(now.Month())-1)/3)*3 + 1)
		start := time.Date(now.Year(), quarterMonth, 1, 0, 0, 0, 0, now.Location())
		return Window{
			Start: start,
			End:   start.AddDate(0, 3, 0),
			Year:  now.Year(),
		}
	default: // annual
		start := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())
		return Window{
			Start: start,
			End:   start.AddDate(1, 0, 0),
			Year:  now.Year(),
		}
	}
}
