package booking

import "time"

type CreateBookingRequest struct {
	RoomID            int64     `json:"room_id" binding:"required"`
	StartTime         time.Time `json:"start_time" binding:"required"`
	EndTime           time.Time `json:"end_time" binding:"required"`
	ParticipantsCount int       `json:"participants_count" binding:"required,gte=1"`
}
