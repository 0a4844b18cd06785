package rewards

const (
	PointTypeAttendance  = "attendance_bonus"
	PointTypePunctuality = "punctuality_bonus"
	PointTypeOvertime    = "overtime_bonus"
	PointTypeWorklog     = "worklog_completion"
	PointTypeConsistency = "consistency_bonus"
	PointTypeAchievement = "achievement_unlock"
	PointTypeManual      = "manual"

	RelatedTypeAttendance  = "attendance_record"
	RelatedTypeWorklog     = "worklog_submission"
	RelatedTypeAchievement = "achievement"

	AttendancePresentPoints  = 10
	PunctualityPoints        = 5
	OvertimePointsPerHour    = 15
	WorklogPointsPerHalfHour = 8
	ConsistencyPoints        = 25

	// Check-ins at or before this minute of the day earn the punctuality bonus.
	punctualCutoffMinutes = 9*60 + 30
	// Work-log submissions before this hour earn the consistency bonus.
	consistencyCutoffHour = 18

	StatusPresent     = "present"
	StatusWFHApproved = "wfh_approved"
)
