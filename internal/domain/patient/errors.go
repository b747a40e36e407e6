package patient

import "errors"

var (
	ErrPatientNotFound      = errors.New("patient not found")
	ErrPatientAlreadyExists = errors.New("patient with this document already exists")
	ErrInvalidDocumentType  = errors.New("invalid document type")
	ErrInvalidGender        = errors.New("invalid gender value")
	ErrInvalidBirthDate     = errors.New("birth date cannot be in the future")
	ErrDocumentRequired     = errors.New("document number is required")
)
