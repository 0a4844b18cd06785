package achievements

import "errors"

var (
	ErrDefinitionNotFound = errors.New("achievement definition not found")
	ErrDuplicateCode      = errors.New("achievement code already exists for tenant")
)
