package patients

import "errors"

var (
	ErrPatientNotFound = errors.New("patient not found")
	ErrDuplicateID     = errors.New("unique id already in use")
)
