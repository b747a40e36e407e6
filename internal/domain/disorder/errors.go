package disorder

import "errors"

var (
	ErrDisorderNotFound     = errors.New("mental disorder case not found")
	ErrInvalidAdmissionType = errors.New("invalid admission type")
	ErrInvalidAdmissionVia  = errors.New("invalid admission via")
)
