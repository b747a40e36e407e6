package consumption

import "errors"

var (
	ErrConsumptionNotFound = errors.New("substance consumption case not found")
	ErrInvalidAdmissionVia = errors.New("invalid admission via")
	ErrInvalidLevel        = errors.New("invalid consumption level")
)
