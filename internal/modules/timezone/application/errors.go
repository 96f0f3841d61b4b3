package application

import "errors"

// ErrNoTimezone is returned when a user has not registered a timezone.
var ErrNoTimezone = errors.New("no timezone registered")
