package booking

import (
	"context"
	"errors"
	"log"
	"time"

	"meetingbooking/internal/domain"
	"meetingbooking/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Service struct {
	bookings     BookingRepository
	rooms        RoomRepository
	users        UserRepository
	notifs       NotificationSender
	cancelWindow time.Duration

	// now is swapped in tests to pin the clock.
	now func() time.Time
}

func NewService(
	bookings BookingRepository,
	rooms RoomRepository,
	users UserRepository,
	notifs NotificationSender,
	cancelWindow time.Duration,
) *Service {
	if cancelWindow <= 0 {
		cancelWindow = domain.DefaultCancellationWindow
	}
	return &Service{
		bookings:     bookings,
		rooms:        rooms,
		users:        users,
		notifs:       notifs,
		cancelWindow: cancelWindow,
		now:          time.Now,
	}
}

// CreateBooking runs the validation chain for a new reservation. Cheap local
// checks come first; the availability and self-conflict checks execute inside
// the repository transaction together with the insert, so two concurrent
// requests for the same room or user cannot both succeed.
func (s *Service) CreateBooking(ctx context.Context, userID int64, req CreateBookingRequest) (*domain.Booking, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if !user.Enabled() {
		return nil, ErrUserDisabled
	}

	room, err := s.rooms.GetByID(ctx, req.RoomID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}
	if !room.IsActive {
		return nil, ErrRoomInactive
	}
	if room.IsVIP() && !user.VIPEligible() {
		return nil, ErrVIPOnly
	}

	now := s.now()
	if !req.EndTime.After(req.StartTime) || !req.StartTime.After(now) {
		return nil, ErrInvalidRange
	}

	if req.ParticipantsCount < 1 {
		return nil, ErrValidation
	}
	if req.ParticipantsCount > room.Capacity {
		return nil, ErrCapacityExceeded
	}

	b := &domain.Booking{
		Reference:         uuid.NewString(),
		UserID:            user.ID,
		RoomID:            room.ID,
		StartTime:         req.StartTime,
		EndTime:           req.EndTime,
		ParticipantsCount: req.ParticipantsCount,
		Status:            domain.BookingActive,
		CreatedAt:         now,
	}

	if err := s.bookings.CreateIfFree(ctx, b); err != nil {
		if errors.Is(err, repository.ErrRoomTimeConflict) || errors.Is(err, repository.ErrUserTimeConflict) {
			return nil, ErrConflict
		}
		return nil, err
	}

	if s.notifs != nil {
		go func(u domain.User, r domain.Room, start, end time.Time) {
			_ = s.notifs.NotifyBookingCreated(context.WithoutCancel(ctx), &u, &r, start, end)
		}(*user, *room, b.StartTime, b.EndTime)
	}

	return b, nil
}

// CancelBooking cancels an active booking on behalf of its owner or an admin.
// The status flip is a conditional update, so a race with the sweeper can
// never cancel a booking that just completed.
func (s *Service) CancelBooking(ctx context.Context, bookingID, actorID int64, actorRole domain.UserRole) (*domain.Booking, error) {
	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}

	if b.UserID != actorID && actorRole != domain.RoleAdmin {
		return nil, ErrForbidden
	}
	if b.IsFinalized() {
		return nil, ErrAlreadyFinalized
	}

	now := s.now()
	if !b.CanBeCancelledAt(now, s.cancelWindow) {
		return nil, ErrTooLateToCancel
	}

	ok, err := s.bookings.CancelIfActive(ctx, b.ID, now)
	if err != nil {
		return nil, err
	}
	if !ok {
		// Lost the race: the sweeper finalized it between the read and the update.
		return nil, ErrAlreadyFinalized
	}
	b.Cancel(now)

	if s.notifs != nil {
		go s.notifyCancelled(context.WithoutCancel(ctx), b)
	}

	return b, nil
}

func (s *Service) notifyCancelled(ctx context.Context, b *domain.Booking) {
	user, err := s.users.GetByID(ctx, b.UserID)
	if err != nil {
		log.Printf("booking: cancel notification skipped user_id=%d err=%v", b.UserID, err)
		return
	}
	room, err := s.rooms.GetByID(ctx, b.RoomID)
	if err != nil {
		log.Printf("booking: cancel notification skipped room_id=%d err=%v", b.RoomID, err)
		return
	}
	_ = s.notifs.NotifyBookingCancelled(ctx, user, room, b.StartTime, b.EndTime)
}

// GetBooking returns a booking visible to its owner or an admin.
func (s *Service) GetBooking(ctx context.Context, bookingID, actorID int64, actorRole domain.UserRole) (*domain.Booking, error) {
	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	if b.UserID != actorID && actorRole != domain.RoleAdmin {
		return nil, ErrForbidden
	}
	return b, nil
}

func (s *Service) ListUserBookings(ctx context.Context, userID int64) ([]domain.Booking, error) {
	return s.bookings.ListByUser(ctx, userID)
}

func (s *Service) ListActiveUserBookings(ctx context.Context, userID int64) ([]domain.Booking, error) {
	return s.bookings.ListByUserAndStatus(ctx, userID, domain.BookingActive)
}

func (s *Service) ListAllBookings(ctx context.Context) ([]domain.Booking, error) {
	return s.bookings.ListAll(ctx)
}

func (s *Service) ListBookingsByStatus(ctx context.Context, status domain.BookingStatus) ([]domain.Booking, error) {
	return s.bookings.ListByStatus(ctx, status)
}

// IsRoomAvailable answers the point query "is room R free for [start, end)".
func (s *Service) IsRoomAvailable(ctx context.Context, roomID int64, start, end time.Time) (bool, error) {
	if _, err := s.rooms.GetByID(ctx, roomID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, ErrRoomNotFound
		}
		return false, err
	}
	return s.rooms.IsAvailable(ctx, roomID, start, end)
}

// GetOverlappingBookings lists the active bookings colliding with a window on
// one room; an admin inspection endpoint.
func (s *Service) GetOverlappingBookings(ctx context.Context, roomID int64, start, end time.Time) ([]domain.Booking, error) {
	if _, err := s.rooms.GetByID(ctx, roomID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}
	return s.bookings.FindActiveOverlappingForRoom(ctx, roomID, start, end)
}

// GetUserOverlappingBookings is the per-user counterpart: it lists the active
// bookings one user holds that collide with a window, across all rooms.
func (s *Service) GetUserOverlappingBookings(ctx context.Context, userID int64, start, end time.Time) ([]domain.Booking, error) {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return s.bookings.FindActiveOverlappingForUser(ctx, userID, start, end)
}

// SweepExpiredBookings finalizes every active booking whose end time has
// passed and reports the number of transitions. Safe to call repeatedly.
func (s *Service) SweepExpiredBookings(ctx context.Context, now time.Time) (int64, error) {
	return s.bookings.CompleteExpired(ctx, now)
}

func (s *Service) Stats(ctx context.Context) (*domain.BookingStats, error) {
	return s.bookings.Stats(ctx)
}
