package slots

import "errors"

var (
	ErrSlotNotFound    = errors.New("slots.service: slot not found")
	ErrAccessDenied    = errors.New("slots.service: access denied")
	ErrInvalidCapacity = errors.New("slots.service: invalid capacity")
	ErrInvalidTimes    = errors.New("slots.service: invalid time range")
	ErrInternal        = errors.New("slots.service: internal error")
)
