package achievements

import "encoding/json"

// BuiltinDefinitions returns the definitions the seed provisions for a new
// tenant. Administrators may rename or retire them later; the Code is what
// the evaluator dispatches on.
func BuiltinDefinitions() []Definition {
	return []Definition{
		{
			Code:         CodePerfectWeek,
			Name:         "Perfect Week",
			Description:  "Present or approved WFH on every working day of the last 7 days",
			Category:     CategoryAttendance,
			PointValue:   50,
			Requirements: json.RawMessage(`{"expectedDays":6}`),
		},
		{
			Code:         CodePerfectMonth,
			Name:         "Perfect Month",
			Description:  "Present or approved WFH on every working day of the last 30 days",
			Category:     CategoryAttendance,
			PointValue:   200,
			Requirements: json.RawMessage(`{"expectedDays":24}`),
		},
		{
			Code:         CodeEarlyBird,
			Name:         "Early Bird",
			Description:  "Checked in by 09:30 on 5 days in the last 7 days",
			Category:     CategoryAttendance,
			PointValue:   75,
			Requirements: json.RawMessage(`{"targetDays":5}`),
		},
		{
			Code:         CodeWorkLogger,
			Name:         "Work Logger",
			Description:  "Logged work on 5 distinct days in the last 7 days",
			Category:     CategoryWorklog,
			PointValue:   60,
			Requirements: json.RawMessage(`{"targetDays":5}`),
		},
		{
			Code:         CodePointsCollector,
			Name:         "Points Collector",
			Description:  "Earned 500 lifetime points",
			Category:     CategoryPoints,
			PointValue:   100,
			Requirements: json.RawMessage(`{"targetPoints":500}`),
		},
	}
}
