package attempt

import "errors"

var (
	ErrAttemptNotFound     = errors.New("suicide attempt case not found")
	ErrInvalidAdmissionVia = errors.New("invalid admission via")
)
