package catalog

import (
	"context"
	"errors"
	"time"

	"meetingbooking/internal/domain"

	"gorm.io/gorm"
)

type Service struct {
	rooms    RoomRepository
	bookings BookingGuard
}

func NewService(rooms RoomRepository, bookings BookingGuard) *Service {
	return &Service{rooms: rooms, bookings: bookings}
}

// ListRooms returns the active rooms visible to the requester. VIP rooms are
// hidden from users who cannot book them.
func (s *Service) ListRooms(ctx context.Context, vipEligible bool) ([]domain.Room, error) {
	rooms, err := s.rooms.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	return filterVIP(rooms, vipEligible), nil
}

func (s *Service) ListRoomsByType(ctx context.Context, roomType domain.RoomType, vipEligible bool) ([]domain.Room, error) {
	if roomType == domain.RoomVIP && !vipEligible {
		return []domain.Room{}, nil
	}
	return s.rooms.ListActiveByType(ctx, roomType)
}

// GetRoom returns an active room; deactivated rooms are invisible here.
func (s *Service) GetRoom(ctx context.Context, id int64) (*domain.Room, error) {
	room, err := s.rooms.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}
	if !room.IsActive {
		return nil, ErrRoomNotFound
	}
	return room, nil
}

func (s *Service) CreateRoom(ctx context.Context, req CreateRoomRequest) (*domain.Room, error) {
	taken, err := s.rooms.ExistsByName(ctx, req.Name)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrNameTaken
	}

	room := &domain.Room{
		Name:      req.Name,
		Capacity:  req.Capacity,
		Equipment: req.Equipment,
		RoomType:  domain.RoomType(req.RoomType),
		IsActive:  true,
	}
	if err := s.rooms.Create(ctx, room); err != nil {
		return nil, err
	}
	return room, nil
}

func (s *Service) UpdateRoom(ctx context.Context, id int64, req UpdateRoomRequest) (*domain.Room, error) {
	room, err := s.rooms.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}

	if room.Name != req.Name {
		taken, err := s.rooms.ExistsByName(ctx, req.Name)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, ErrNameTaken
		}
	}

	room.Name = req.Name
	room.Capacity = req.Capacity
	room.Equipment = req.Equipment
	room.RoomType = domain.RoomType(req.RoomType)

	if err := s.rooms.Update(ctx, room); err != nil {
		return nil, err
	}
	return room, nil
}

// DeleteRoom soft-deletes: the room keeps its booking history and may be
// restored later. Refused while any active booking references it.
func (s *Service) DeleteRoom(ctx context.Context, id int64) error {
	if _, err := s.rooms.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRoomNotFound
		}
		return err
	}

	busy, err := s.bookings.HasActiveForRoom(ctx, id)
	if err != nil {
		return err
	}
	if busy {
		return ErrRoomHasActiveBookings
	}

	return s.rooms.SetActive(ctx, id, false)
}

func (s *Service) RestoreRoom(ctx context.Context, id int64) error {
	err := s.rooms.SetActive(ctx, id, true)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrRoomNotFound
	}
	return err
}

// FindAvailable lists rooms free for [start, end) after the optional type and
// capacity filters. A non-eligible requester asking for VIP rooms gets an
// empty result rather than an error.
func (s *Service) FindAvailable(ctx context.Context, start, end time.Time, roomType *domain.RoomType, minCapacity *int, vipEligible bool) ([]domain.Room, error) {
	if !end.After(start) {
		return nil, ErrValidation
	}
	if roomType != nil && *roomType == domain.RoomVIP && !vipEligible {
		return []domain.Room{}, nil
	}
	return s.rooms.FindAvailable(ctx, start, end, roomType, minCapacity, vipEligible)
}

func (s *Service) SearchRooms(ctx context.Context, term string, vipEligible bool) ([]domain.Room, error) {
	if term == "" {
		return s.ListRooms(ctx, vipEligible)
	}
	rooms, err := s.rooms.SearchByName(ctx, term)
	if err != nil {
		return nil, err
	}
	return filterVIP(rooms, vipEligible), nil
}

func (s *Service) FindRoomsByEquipment(ctx context.Context, tag string, vipEligible bool) ([]domain.Room, error) {
	rooms, err := s.rooms.SearchByEquipment(ctx, tag)
	if err != nil {
		return nil, err
	}
	return filterVIP(rooms, vipEligible), nil
}

func (s *Service) Stats(ctx context.Context) (*domain.RoomStats, error) {
	return s.rooms.Stats(ctx)
}

func filterVIP(rooms []domain.Room, vipEligible bool) []domain.Room {
	if vipEligible {
		return rooms
	}
	out := make([]domain.Room, 0, len(rooms))
	for _, r := range rooms {
		if !r.IsVIP() {
			out = append(out, r)
		}
	}
	return out
}
