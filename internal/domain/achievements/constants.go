package achievements

const (
	CodePerfectWeek     = "PERFECT_WEEK"
	CodePerfectMonth    = "PERFECT_MONTH"
	CodeEarlyBird       = "EARLY_BIRD"
	CodeWorkLogger      = "WORK_LOGGER"
	CodePointsCollector = "POINTS_COLLECTOR"

	CategoryAttendance = "attendance"
	CategoryWorklog    = "worklog"
	CategoryPoints     = "points"

	defaultWeekWorkingDays  = 6
	defaultMonthWorkingDays = 24
	defaultTargetDays       = 5
	defaultTargetPoints     = 500
)
