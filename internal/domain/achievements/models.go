package achievements

import (
	"encoding/json"
	"time"
)

// Definition is administrator-owned configuration; the engine only reads it.
// Code is the stable dispatch key for the progress calculator registry —
// renaming an achievement never changes its behavior.
type Definition struct {
	ID           string          `json:"id"`
	TenantID     string          `json:"-"`
	Code         string          `json:"code"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	Category     string          `json:"category"`
	PointValue   int             `json:"pointValue"`
	Requirements json.RawMessage `json:"requirements"`
	IsActive     bool            `json:"isActive"`
}

// Progress is one row per (employee, achievement). Completion is a one-way
// transition: once IsCompleted is set it never clears and UnlockedAt never
// changes.
type Progress struct {
	EmployeeID    string     `json:"employeeId"`
	AchievementID string     `json:"achievementId"`
	Progress      int        `json:"progress"`
	IsCompleted   bool       `json:"isCompleted"`
	UnlockedAt    *time.Time `json:"unlockedAt,omitempty"`
}

// ProgressInput carries the per-employee history snapshot every calculator
// reads from. Gathered once per evaluation.
type ProgressInput struct {
	DaysPresentLast7  int
	DaysPresentLast30 int
	DaysPunctualLast7 int
	DistinctLogDays7  int
	LifetimePoints    int
}

type progressUpdate struct {
	AchievementID string
	Progress      int
	PointValue    int
	Name          string
}
