package leaderboard

import "time"

type Period string

const (
	PeriodWeekly    Period = "weekly"
	PeriodMonthly   Period = "monthly"
	PeriodQuarterly Period = "quarterly"
	PeriodAnnual    Period = "annual"
)

var AllPeriods = []Period{PeriodWeekly, PeriodMonthly, PeriodQuarterly, PeriodAnnual}

func (p Period) Valid() bool {
	switch p {
	case PeriodWeekly, PeriodMonthly, PeriodQuarterly, PeriodAnnual:
		return true
	}
	return false
}

// Entry is a derived, fully-recomputable snapshot: one row per employee per
// period instance, uniquely keyed by (employee, period, year, month, week).
type Entry struct {
	ID                string  `json:"id,omitempty"`
	TenantID          string  `json:"-"`
	EmployeeID        string  `json:"employeeId"`
	Period            Period  `json:"period"`
	Year              int     `json:"year"`
	Month             int     `json:"month"`
	Week              int     `json:"week"`
	TotalPoints       int     `json:"totalPoints"`
	AttendancePoints  int     `json:"attendancePoints"`
	WorklogPoints     int     `json:"worklogPoints"`
	AchievementPoints int     `json:"achievementPoints"`
	AttendanceRate    float64 `json:"attendanceRate"`
	AvgWorkHours      float64 `json:"avgWorkHours"`
	AchievementCount  int     `json:"achievementCount"`
	OverallRank       int     `json:"overallRank"`
}

// Window is the concrete [Start, End) interval plus the composite key
// fields for one instance of a period.
type Window struct {
	Start time.Time
	End   time.Time
	Year  int
	Month int
	Week  int
}
