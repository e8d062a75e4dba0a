package catalog

type CreateRoomRequest struct {
	Name      string   `json:"name" binding:"required"`
	Capacity  int      `json:"capacity" binding:"required,gte=1"`
	Equipment []string `json:"equipment"`
	RoomType  string   `json:"room_type" binding:"required,oneof=regular vip"`
}

type UpdateRoomRequest struct {
	Name      string   `json:"name" binding:"required"`
	Capacity  int      `json:"capacity" binding:"required,gte=1"`
	Equipment []string `json:"equipment"`
	RoomType  string   `json:"room_type" binding:"required,oneof=regular vip"`
}
