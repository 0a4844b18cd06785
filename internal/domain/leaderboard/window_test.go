package leaderboard

import (
	"testing"
	"time"
)

func TestWeeklyWindowTrailsSevenDays(t *testing.T) {
	now := time.Date(2025, time.March, 12, 10, 0, 0, 0, time.UTC)
	window := WindowFor(PeriodWeekly, now)

	if !window.Start.Equal(now.AddDate(0, 0, -7)) || !window.End.Equal(now) {
		t.Fatalf("unexpected interval: %v .. %v", window.Start, window.End)
	}
	isoYear, isoWeek := now.ISOWeek()
	if window.Year != isoYear || window.Week != isoWeek {
		t.Fatalf("expected ISO key %d/%d, got %d/%d", isoYear, isoWeek, window.Year, window.Week)
	}
	if window.Month != 0 {
		t.Fatalf("weekly window must carry month 0, got %d", window.Month)
	}
}

func TestMonthlyWindowAlignsToCalendarMonth(t *testing.T) {
	now := time.Date(2025, time.March, 12, 10, 0, 0, 0, time.UTC)
	window := WindowFor(PeriodMonthly, now)

	wantStart := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)
	if !window.Start.Equal(wantStart) || !window.End.Equal(wantStart.AddDate(0, 1, 0)) {
		t.Fatalf("unexpected interval: %v .. %v", window.Start, window.End)
	}
	if window.Year != 2025 || window.Month != 3 || window.Week != 0 {
		t.Fatalf("unexpected key fields: %d/%d/%d", window.Year, window.Month, window.Week)
	}
}

func TestQuarterlyWindow(t *testing.T) {
	now := time.Date(2025, time.November, 20, 0, 0, 0, 0, time.UTC)
	window := WindowFor(PeriodQuarterly, now)

	wantStart := time.Date(2025, time.October, 1, 0, 0, 0, 0, time.UTC)
	if !window.Start.Equal(wantStart) {
		t.Fatalf("expected Q4 start, got %v", window.Start)
	}
	if !window.End.Equal(time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("expected Q4 end, got %v", window.End)
	}
	if window.Month != 0 || window.Week != 0 {
		t.Fatalf("quarterly key must zero month and week, got %d/%d", window.Month, window.Week)
	}
}

func TestAnnualWindow(t *testing.T) {
	now := time.Date(2025, time.June, 15, 0, 0, 0, 0, time.UTC)
	window := WindowFor(PeriodAnnual, now)

	if window.Start.Month() != time.January || window.Start.Day() != 1 {
		t.Fatalf("expected January 1 start, got %v", window.Start)
	}
	if window.Year != 2025 || window.Month != 0 || window.Week != 0 {
		t.Fatalf("unexpected key fields: %d/%d/%d", window.Year, window.Month, window.Week)
	}
}

func TestPeriodValid(t *testing.T) {
	for _, period := range []Period{PeriodWeekly, PeriodMonthly, PeriodQuarterly, PeriodAnnual} {
		if !period.Valid() {
			t.Fatalf("expected %s to be valid", period)
		}
	}
	if Period("daily").Valid() {
		t.Fatal("expected daily to be invalid")
	}
}
