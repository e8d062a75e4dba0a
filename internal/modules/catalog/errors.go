package catalog

import "errors"

var (
	ErrRoomNotFound          = errors.New("room not found")
	ErrNameTaken             = errors.New("room name already exists")
	ErrRoomHasActiveBookings = errors.New("room has active bookings")
	ErrValidation            = errors.New("validation error")
)
