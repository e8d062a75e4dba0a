package booking

import (
	"context"
	"time"

	"meetingbooking/internal/domain"
)

// BookingRepository is the persistence contract the service is written
// against. CreateIfFree owns the transaction around the availability and
// self-conflict checks.
type BookingRepository interface {
	CreateIfFree(ctx context.Context, b *domain.Booking) error
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.Booking, error)
	ListByUserAndStatus(ctx context.Context, userID int64, status domain.BookingStatus) ([]domain.Booking, error)
	ListAll(ctx context.Context) ([]domain.Booking, error)
	ListByStatus(ctx context.Context, status domain.BookingStatus) ([]domain.Booking, error)
	FindActiveOverlappingForRoom(ctx context.Context, roomID int64, start, end time.Time) ([]domain.Booking, error)
	FindActiveOverlappingForUser(ctx context.Context, userID int64, start, end time.Time) ([]domain.Booking, error)
	CancelIfActive(ctx context.Context, id int64, now time.Time) (bool, error)
	CompleteExpired(ctx context.Context, now time.Time) (int64, error)
	Stats(ctx context.Context) (*domain.BookingStats, error)
}

type RoomRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Room, error)
	IsAvailable(ctx context.Context, roomID int64, start, end time.Time) (bool, error)
}

type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

// NotificationSender delivers booking emails. Calls are fire-and-forget:
// errors are logged by the implementation and never surface to the caller.
type NotificationSender interface {
	NotifyBookingCreated(ctx context.Context, user *domain.User, room *domain.Room, start, end time.Time) error
	NotifyBookingCancelled(ctx context.Context, user *domain.User, room *domain.Room, start, end time.Time) error
}
