package rewards

import "time"

// PointTransaction is one immutable ledger row. Rows are only ever
// appended; an employee's lifetime balance is the sum of their rows.
type PointTransaction struct {
	ID          string    `json:"id"`
	TenantID    string    `json:"-"`
	EmployeeID  string    `json:"employeeId"`
	Points      int       `json:"points"`
	PointType   string    `json:"pointType"`
	Reason      string    `json:"reason"`
	RelatedType string    `json:"relatedType,omitempty"`
	RelatedID   string    `json:"relatedId,omitempty"`
	EarnedAt    time.Time `json:"earnedAt"`
}

// AttendanceEvent is the already-validated attendance input the awarder
// consumes. Produced by the attendance ingestion side of the portal.
type AttendanceEvent struct {
	RecordID      string
	Status        string
	CheckInAt     *time.Time
	OvertimeHours float64
}

// WorkLogEntry carries the only field the awarder needs per log line.
type WorkLogEntry struct {
	TotalMinutes int
}

type WindowSums struct {
	Total       int
	Attendance  int
	Worklog     int
	Achievement int
}
