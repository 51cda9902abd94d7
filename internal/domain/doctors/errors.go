package doctors

import "errors"

var (
	ErrDoctorExists       = errors.New("doctor already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
)
