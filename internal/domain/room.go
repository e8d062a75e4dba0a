package domain

import "time"

type RoomType string

const (
	RoomRegular RoomType = "regular"
	RoomVIP     RoomType = "vip"
)

type Room struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Capacity  int       `json:"capacity"`
	Equipment []string  `json:"equipment,omitempty"`
	RoomType  RoomType  `json:"room_type"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (r *Room) IsVIP() bool { return r.RoomType == RoomVIP }

type RoomStats struct {
	Total   int64 `json:"total"`
	Active  int64 `json:"active"`
	Regular int64 `json:"regular"`
	VIP     int64 `json:"vip"`
}
