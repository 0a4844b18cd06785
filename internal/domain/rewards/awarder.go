package rewards

import (
	"fmt"
	"math"
	"time"
)

// AttendanceAwards computes the ledger entries an attendance event earns.
// now is only used for EarnedAt; every qualifying rule reads the event itself.
func AttendanceAwards(tenantID, employeeID string, ev AttendanceEvent, now time.Time) []PointTransaction {
	var entries []PointTransaction

	if ev.Status == StatusPresent || ev.Status == StatusWFHApproved {
		entries = append(entries, PointTransaction{
			TenantID:    tenantID,
			EmployeeID:  employeeID,
			Points:      AttendancePresentPoints,
			PointType:   PointTypeAttendance,
			Reason:      "daily attendance",
			RelatedType: RelatedTypeAttendance,
			RelatedID:   ev.RecordID,
			EarnedAt:    now,
		})
	}

	if ev.CheckInAt != nil && minuteOfDay(*ev.CheckInAt) <= punctualCutoffMinutes {
		entries = append(entries, PointTransaction{
			TenantID:    tenantID,
			EmployeeID:  employeeID,
			Points:      PunctualityPoints,
			PointType:   PointTypePunctuality,
			Reason:      fmt.Sprintf("checked in at %s", ev.CheckInAt.Format("15:04")),
			RelatedType: RelatedTypeAttendance,
			RelatedID:   ev.RecordID,
			EarnedAt:    now,
		})
	}

	if hours := int(math.Floor(ev.OvertimeHours)); hours > 0 {
		entries = append(entries, PointTransaction{
			TenantID:    tenantID,
			EmployeeID:  employeeID,
			Points:      hours * OvertimePointsPerHour,
			PointType:   PointTypeOvertime,
			Reason:      fmt.Sprintf("%d full overtime hour(s)", hours),
			RelatedType: RelatedTypeAttendance,
			RelatedID:   ev.RecordID,
			EarnedAt:    now,
		})
	}

	return entries
}

// WorkLogAwards computes the entries for one work-log submission. All logs
// collapse into a single completion entry. The consistency bonus is decided
// by the submission's own timestamp, never by evaluation wall clock, so
// backfilled or delayed processing stays correct.
func WorkLogAwards(tenantID, employeeID, submissionID string, logs []WorkLogEntry, submittedAt time.Time) []PointTransaction {
	var entries []PointTransaction

	totalMinutes := 0
	points := 0
	for _, log := range logs {
		if log.TotalMinutes <= 0 {
			continue
		}
		totalMinutes += log.TotalMinutes
		points += (log.TotalMinutes / 30) * WorklogPointsPerHalfHour
	}

	if points > 0 {
		entries = append(entries, PointTransaction{
			TenantID:    tenantID,
			EmployeeID:  employeeID,
			Points:      points,
			PointType:   PointTypeWorklog,
			Reason:      fmt.Sprintf("%d work log(s), %d minutes", len(logs), totalMinutes),
			RelatedType: RelatedTypeWorklog,
			RelatedID:   submissionID,
			EarnedAt:    submittedAt,
		})
	}

	if len(logs) > 0 && submittedAt.Hour() < consistencyCutoffHour {
		entries = append(entries, PointTransaction{
			TenantID:    tenantID,
			EmployeeID:  employeeID,
			Points:      ConsistencyPoints,
			PointType:   PointTypeConsistency,
			Reason:      "logs submitted before 18:00",
			RelatedType: RelatedTypeWorklog,
			RelatedID:   submissionID,
			EarnedAt:    submittedAt,
		})
	}

	return entries
}

func minuteOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}
