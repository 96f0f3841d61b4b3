package domain

import "errors"

// Domain errors for timezones.
var (
	ErrInvalidOffset = errors.New("offset must look like +5, -03:30 or UTC+9")
	ErrOffsetRange   = errors.New("offset must be between UTC-12:00 and UTC+14:00")
	ErrUnknownRegion = errors.New("unknown daylight saving region")
)
