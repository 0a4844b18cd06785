package attendance

import "time"

type Record struct {
	ID            string     `json:"id"`
	TenantID      string     `json:"-"`
	EmployeeID    string     `json:"employeeId"`
	WorkDate      time.Time  `json:"workDate"`
	Status        string     `json:"status"`
	CheckInAt     *time.Time `json:"checkInAt,omitempty"`
	CheckOutAt    *time.Time `json:"checkOutAt,omitempty"`
	OvertimeHours float64    `json:"overtimeHours"`
	Notes         string     `json:"notes,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
}
