package followup

import "errors"

var (
	ErrFollowupNotFound = errors.New("monthly followup not found")
	ErrInvalidCaseType  = errors.New("invalid case type")
	ErrInvalidMonth     = errors.New("month must be between 1 and 12")
)
