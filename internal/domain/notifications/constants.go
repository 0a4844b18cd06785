package notifications

const (
	TypePointsAwarded       = "points_awarded"
	TypePointsAdjusted      = "points_adjusted"
	TypeAchievementUnlocked = "achievement_unlocked"
	TypeLeaderboardUpdated  = "leaderboard_updated"
)
