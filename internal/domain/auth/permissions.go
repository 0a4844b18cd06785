package auth

const (
	RoleEmployee = "Employee"
	RoleManager  = "Manager"
	RoleHR       = "HR"
)

const (
	PermEmployeesRead        = "core.employees.read"
	PermEmployeesWrite       = "core.employees.write"
	PermAttendanceRead       = "attendance.read"
	PermAttendanceWrite      = "attendance.write"
	PermWorklogsRead         = "worklogs.read"
	PermWorklogsWrite        = "worklogs.write"
	PermRewardsRead          = "rewards.read"
	PermRewardsAdjust        = "rewards.adjust"
	PermAchievementsRead     = "achievements.read"
	PermAchievementsManage   = "achievements.manage"
	PermLeaderboardRead      = "leaderboard.read"
	PermLeaderboardRecompute = "leaderboard.recompute"
	PermAuditRead            = "audit.read"
)

var DefaultPermissions = []string{
	PermEmployeesRead,
	PermEmployeesWrite,
	PermAttendanceRead,
	PermAttendanceWrite,
	PermWorklogsRead,
	PermWorklogsWrite,
	PermRewardsRead,
	PermRewardsAdjust,
	PermAchievementsRead,
	PermAchievementsManage,
	PermLeaderboardRead,
	PermLeaderboardRecompute,
	PermAuditRead,
}

var RolePermissions = map[string][]string{
	RoleEmployee: {
		PermEmployeesRead,
		PermAttendanceRead,
		PermAttendanceWrite,
		PermWorklogsRead,
		PermWorklogsWrite,
		PermRewardsRead,
		PermAchievementsRead,
		PermLeaderboardRead,
	},
	RoleManager: {
		PermEmployeesRead,
		PermAttendanceRead,
		PermAttendanceWrite,
		PermWorklogsRead,
		PermWorklogsWrite,
		PermRewardsRead,
		PermAchievementsRead,
		PermLeaderboardRead,
		PermLeaderboardRecompute,
	},
	RoleHR: {
		PermEmployeesRead,
		PermEmployeesWrite,
		PermAttendanceRead,
		PermAttendanceWrite,
		PermWorklogsRead,
		PermWorklogsWrite,
		PermRewardsRead,
		PermRewardsAdjust,
		PermAchievementsRead,
		PermAchievementsManage,
		PermLeaderboardRead,
		PermLeaderboardRecompute,
		PermAuditRead,
	},
}
