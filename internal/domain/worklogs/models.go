package worklogs

import "time"

type Entry struct {
	ID           string    `json:"id"`
	TenantID     string    `json:"-"`
	EmployeeID   string    `json:"employeeId"`
	SubmissionID string    `json:"submissionId"`
	Tag          string    `json:"tag"`
	Description  string    `json:"description,omitempty"`
	Minutes      int       `json:"minutes"`
	LogDate      time.Time `json:"logDate"`
	SubmittedAt  time.Time `json:"submittedAt"`
}
