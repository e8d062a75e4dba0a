package booking

import "errors"

var (
	ErrUserNotFound    = errors.New("user not found")
	ErrUserDisabled    = errors.New("user account is not enabled")
	ErrRoomNotFound    = errors.New("room not found")
	ErrRoomInactive    = errors.New("room is deactivated")
	ErrBookingNotFound = errors.New("booking not found")

	ErrVIPOnly   = errors.New("vip room requires vip access")
	ErrForbidden = errors.New("forbidden")

	ErrValidation       = errors.New("validation error")
	ErrInvalidRange     = errors.New("invalid booking time range")
	ErrCapacityExceeded = errors.New("participants exceed room capacity")

	ErrConflict         = errors.New("overlapping active booking exists")
	ErrTooLateToCancel  = errors.New("too late to cancel booking")
	ErrAlreadyFinalized = errors.New("booking is already finalized")
)
