package rewards

import "errors"

var (
	ErrEmptyBatch         = errors.New("transaction batch is empty")
	ErrInvalidAdjustment  = errors.New("manual adjustment must have non-zero points and a reason")
	ErrCertificateMissing = errors.New("achievement is not completed for this employee")
)
