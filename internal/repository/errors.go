package repository

import "errors"

var (
	// ErrRoomTimeConflict means an active booking for the same room overlaps
	// the requested interval.
	ErrRoomTimeConflict = errors.New("room already booked for this time")

	// ErrUserTimeConflict means the user already holds an active booking
	// overlapping the requested interval, in any room.
	ErrUserTimeConflict = errors.New("user already has a booking for this time")
)
