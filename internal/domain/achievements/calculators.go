package achievements

import "encoding/json"

// CalculatorFunc turns an employee's history into a 0-100 progress value.
type CalculatorFunc func(req requirements, in ProgressInput) int

// requirements is the parsed shape of Definition.Requirements. Zero fields
// fall back to the built-in defaults, so `{}` is a valid configuration.
type requirements struct {
	ExpectedDays int `json:"expectedDays"`
	TargetDays   int `json:"targetDays"`
	TargetPoints int `json:"targetPoints"`
}

var calculators = map[string]CalculatorFunc{
	CodePerfectWeek:     perfectWeekProgress,
	CodePerfectMonth:    perfectMonthProgress,
	CodeEarlyBird:       earlyBirdProgress,
	CodeWorkLogger:      workLoggerProgress,
	CodePointsCollector: pointsCollectorProgress,
}

// ComputeProgress dispatches by the definition's stable code. Unknown codes
// and malformed requirements yield progress 0, never an error.
func ComputeProgress(code string, rawRequirements json.RawMessage, in ProgressInput) int {
	calc, ok := calculators[code]
	if !ok {
		return 0
	}
	req, ok := parseRequirements(rawRequirements)
	if !ok {
		return 0
	}
	return clampProgress(calc(req, in))
}

func parseRequirements(raw json.RawMessage) (requirements, bool) {
	var req requirements
	if len(raw) == 0 {
		return req, false
	}
	if err := json.Unmarshal(raw, &req); err != nil {
		return req, false
	}
	return req, true
}

func perfectWeekProgress(req requirements, in ProgressInput) int {
	expected := req.ExpectedDays
	if expected <= 0 {
		expected = defaultWeekWorkingDays
	}
	return in.DaysPresentLast7 * 100 / expected
}

func perfectMonthProgress(req requirements, in ProgressInput) int {
	expected := req.ExpectedDays
	if expected <= 0 {
		expected = defaultMonthWorkingDays
	}
	return in.DaysPresentLast30 * 100 / expected
}

func earlyBirdProgress(req requirements, in ProgressInput) int {
	target := req.TargetDays
	if target <= 0 {
		target = defaultTargetDays
	}
	return in.DaysPunctualLast7 * 100 / target
}

func workLoggerProgress(req requirements, in ProgressInput) int {
	target := req.TargetDays
	if target <= 0 {
		target = defaultTargetDays
	}
	return in.DistinctLogDays7 * 100 / target
}

func pointsCollectorProgress(req requirements, in ProgressInput) int {
	target := req.TargetPoints
	if target <= 0 {
		target = defaultTargetPoints
	}
	if in.LifetimePoints <= 0 {
		return 0
	}
	return in.LifetimePoints * 100 / target
}

func clampProgress(value int) int {
	if value < 0 {
		return 0
	}
	if value > 100 {
		return 100
	}
	return value
}
