package workrecord

import "errors"

var (
	ErrWorkRecordNotFound = errors.New("work record not found")
	ErrAlreadyClockedIn   = errors.New("employee already has a work record for this date")
	ErrMissingClockIn     = errors.New("work record has no clock-in")
	ErrAlreadyClockedOut  = errors.New("work record already clocked out")
	ErrAlreadyDecided     = errors.New("approval decision already recorded")
	ErrInvalidDecision    = errors.New("approval decision must be 'approved' or 'rejected'")
)
