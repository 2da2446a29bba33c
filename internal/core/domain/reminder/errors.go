package reminder

import "errors"

var (
	ErrReminderDoesNotExist = errors.New("reminder not found")
	ErrInvalidClockTime     = errors.New("time must be in HH:MM format")
	ErrInvalidNotifyType    = errors.New("notify type must be one of: email, phone, both")
)
