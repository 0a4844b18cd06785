package rewards

import (
	"testing"
	"time"
)

func at(hour, minute int) *time.Time {
	t := time.Date(2025, time.March, 10, hour, minute, 0, 0, time.UTC)
	return &t
}

func TestAttendanceAwardsPresentAndPunctual(t *testing.T) {
	entries := AttendanceAwards("t1", "e1", AttendanceEvent{
		RecordID:  "rec-1",
		Status:    StatusPresent,
		CheckInAt: at(9, 15),
	}, time.Now())

	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	total := entries[0].Points + entries[1].Points
	if total != 15 {
		t.Fatalf("expected 15 points total, got %d", total)
	}
	if entries[0].PointType != PointTypeAttendance || entries[1].PointType != PointTypePunctuality {
		t.Fatalf("unexpected point types: %s, %s", entries[0].PointType, entries[1].PointType)
	}
}

func TestAttendanceAwardsLateCheckIn(t *testing.T) {
	entries := AttendanceAwards("t1", "e1", AttendanceEvent{
		RecordID:  "rec-1",
		Status:    StatusPresent,
		CheckInAt: at(9, 45),
	}, time.Now())

	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if entries[0].Points != 10 || entries[0].PointType != PointTypeAttendance {
		t.Fatalf("expected 10-point attendance bonus, got %+v", entries[0])
	}
}

func TestAttendanceAwardsCutoffBoundary(t *testing.T) {
	entries := AttendanceAwards("t1", "e1", AttendanceEvent{
		RecordID:  "rec-1",
		Status:    StatusWFHApproved,
		CheckInAt: at(9, 30),
	}, time.Now())

	if len(entries) != 2 {
		t.Fatalf("expected punctuality at 09:30 exactly, got %d entries", len(entries))
	}
}

func TestAttendanceAwardsCutoffIgnoresSeconds(t *testing.T) {
	within := time.Date(2025, time.March, 10, 9, 30, 59, 0, time.UTC)
	entries := AttendanceAwards("t1", "e1", AttendanceEvent{
		RecordID:  "rec-1",
		Status:    StatusPresent,
		CheckInAt: &within,
	}, time.Now())
	if len(entries) != 2 {
		t.Fatalf("expected punctuality within the 09:30 minute, got %d entries", len(entries))
	}

	past := time.Date(2025, time.March, 10, 9, 31, 0, 0, time.UTC)
	entries = AttendanceAwards("t1", "e1", AttendanceEvent{
		RecordID:  "rec-1",
		Status:    StatusPresent,
		CheckInAt: &past,
	}, time.Now())
	if len(entries) != 1 {
		t.Fatalf("expected no punctuality at 09:31, got %d entries", len(entries))
	}
}

func TestAttendanceAwardsOvertimeFloors(t *testing.T) {
	entries := AttendanceAwards("t1", "e1", AttendanceEvent{
		RecordID:      "rec-1",
		Status:        "absent",
		OvertimeHours: 2.5,
	}, time.Now())

	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if entries[0].Points != 30 || entries[0].PointType != PointTypeOvertime {
		t.Fatalf("expected 30-point overtime bonus, got %+v", entries[0])
	}
}

func TestAttendanceAwardsFractionalOvertimeEarnsNothing(t *testing.T) {
	entries := AttendanceAwards("t1", "e1", AttendanceEvent{
		RecordID:      "rec-1",
		Status:        "absent",
		OvertimeHours: 0.9,
	}, time.Now())

	if len(entries) != 0 {
		t.Fatalf("expected no entries, got %d", len(entries))
	}
}

func TestWorkLogAwardsSingleCompletionEntry(t *testing.T) {
	submitted := time.Date(2025, time.March, 10, 14, 0, 0, 0, time.UTC)
	logs := []WorkLogEntry{{TotalMinutes: 65}, {TotalMinutes: 30}, {TotalMinutes: 29}}

	entries := WorkLogAwards("t1", "e1", "sub-1", logs, submitted)

	if len(entries) != 2 {
		t.Fatalf("expected completion + consistency, got %d entries", len(entries))
	}
	// floor(65/30)*8 + floor(30/30)*8 + floor(29/30)*8 = 16 + 8 + 0
	if entries[0].Points != 24 || entries[0].PointType != PointTypeWorklog {
		t.Fatalf("expected 24-point completion entry, got %+v", entries[0])
	}
	if entries[1].Points != ConsistencyPoints || entries[1].PointType != PointTypeConsistency {
		t.Fatalf("expected consistency bonus, got %+v", entries[1])
	}
}

func TestWorkLogAwardsUsesSubmissionClockNotWallClock(t *testing.T) {
	// A backfilled submission from 19:30 must not earn the consistency
	// bonus no matter when it is processed.
	submitted := time.Date(2025, time.March, 10, 19, 30, 0, 0, time.UTC)

	entries := WorkLogAwards("t1", "e1", "sub-1", []WorkLogEntry{{TotalMinutes: 60}}, submitted)

	if len(entries) != 1 {
		t.Fatalf("expected only the completion entry, got %d", len(entries))
	}
	if entries[0].PointType != PointTypeWorklog {
		t.Fatalf("unexpected entry: %+v", entries[0])
	}
}

func TestWorkLogAwardsNothingForShortLogs(t *testing.T) {
	submitted := time.Date(2025, time.March, 10, 19, 0, 0, 0, time.UTC)

	entries := WorkLogAwards("t1", "e1", "sub-1", []WorkLogEntry{{TotalMinutes: 20}}, submitted)

	if len(entries) != 0 {
		t.Fatalf("expected no entries, got %d", len(entries))
	}
}
