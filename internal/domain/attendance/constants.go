package attendance

const (
	StatusPresent     = "present"
	StatusWFHApproved = "wfh_approved"
	StatusAbsent      = "absent"
	StatusOnLeave     = "on_leave"

	// Punctual means the check-in minute is 09:30 or earlier; seconds
	// within the 09:30 minute still qualify, matching the award rule.
	punctualCutoffExclusive = "09:31:00"
)

var ValidStatuses = map[string]bool{
	StatusPresent:     true,
	StatusWFHApproved: true,
	StatusAbsent:      true,
	StatusOnLeave:     true,
}
