package catalog

import (
	"context"
	"time"

	"meetingbooking/internal/domain"
)

type RoomRepository interface {
	Create(ctx context.Context, room *domain.Room) error
	Update(ctx context.Context, room *domain.Room) error
	GetByID(ctx context.Context, id int64) (*domain.Room, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
	ListActive(ctx context.Context) ([]domain.Room, error)
	ListActiveByType(ctx context.Context, roomType domain.RoomType) ([]domain.Room, error)
	SetActive(ctx context.Context, id int64, active bool) error
	FindAvailable(ctx context.Context, start, end time.Time, roomType *domain.RoomType, minCapacity *int, includeVIP bool) ([]domain.Room, error)
	SearchByName(ctx context.Context, term string) ([]domain.Room, error)
	SearchByEquipment(ctx context.Context, tag string) ([]domain.Room, error)
	Stats(ctx context.Context) (*domain.RoomStats, error)
}

// BookingGuard answers whether a room is still referenced by active bookings;
// soft-deletion is refused while it is.
type BookingGuard interface {
	HasActiveForRoom(ctx context.Context, roomID int64) (bool, error)
}
