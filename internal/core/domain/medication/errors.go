package medication

import "errors"

var (
	ErrMedicationDoesNotExist = errors.New("medication not found")
	ErrNameRequired           = errors.New("medication name is required")
	ErrInvalidDate            = errors.New("date must be in YYYY-MM-DD format")
	ErrEndBeforeStart         = errors.New("end date must not be before start date")
	ErrDuplicateTime          = errors.New("reminder times must be unique")
	ErrTooManyTimes           = errors.New("too many reminder times")
)
