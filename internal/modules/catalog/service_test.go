package catalog

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"meetingbooking/internal/domain"
)

type mockRoomRepo struct {
	mock.Mock
}

func (m *mockRoomRepo) Create(ctx context.Context, room *domain.Room) error {
	args := m.Called(ctx, room)
	return args.Error(0)
}

func (m *mockRoomRepo) Update(ctx context.Context, room *domain.Room) error {
	args := m.Called(ctx, room)
	return args.Error(0)
}

func (m *mockRoomRepo) GetByID(ctx context.Context, id int64) (*domain.Room, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Room), args.Error(1)
}

func (m *mockRoomRepo) ExistsByName(ctx context.Context, name string) (bool, error) {
	args := m.Called(ctx, name)
	return args.Bool(0), args.Error(1)
}

func (m *mockRoomRepo) ListActive(ctx context.Context) ([]domain.Room, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Room), args.Error(1)
}

func (m *mockRoomRepo) ListActiveByType(ctx context.Context, roomType domain.RoomType) ([]domain.Room, error) {
	args := m.Called(ctx, roomType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Room), args.Error(1)
}

func (m *mockRoomRepo) SetActive(ctx context.Context, id int64, active bool) error {
	args := m.Called(ctx, id, active)
	return args.Error(0)
}

func (m *mockRoomRepo) FindAvailable(ctx context.Context, start, end time.Time, roomType *domain.RoomType, minCapacity *int, includeVIP bool) ([]domain.Room, error) {
	args := m.Called(ctx, start, end, roomType, minCapacity, includeVIP)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Room), args.Error(1)
}

func (m *mockRoomRepo) SearchByName(ctx context.Context, term string) ([]domain.Room, error) {
	args := m.Called(ctx, term)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Room), args.Error(1)
}

func (m *mockRoomRepo) SearchByEquipment(ctx context.Context, tag string) ([]domain.Room, error) {
	args := m.Called(ctx, tag)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Room), args.Error(1)
}

func (m *mockRoomRepo) Stats(ctx context.Context) (*domain.RoomStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RoomStats), args.Error(1)
}

type mockBookingGuard struct {
	mock.Mock
}

func (m *mockBookingGuard) HasActiveForRoom(ctx context.Context, roomID int64) (bool, error) {
	args := m.Called(ctx, roomID)
	return args.Bool(0), args.Error(1)
}

func sampleRooms() []domain.Room {
	return []domain.Room{
		{ID: 1, Name: "Team Room", Capacity: 8, RoomType: domain.RoomRegular, IsActive: true},
		{ID: 2, Name: "Boardroom", Capacity: 12, RoomType: domain.RoomVIP, IsActive: true},
	}
}

func TestService_ListRooms_HidesVIPFromRegularUsers(t *testing.T) {
	rooms := new(mockRoomRepo)
	guard := new(mockBookingGuard)
	rooms.On("ListActive", mock.Anything).Return(sampleRooms(), nil)

	svc := NewService(rooms, guard)

	visible, err := svc.ListRooms(context.Background(), false)
	assert.NoError(t, err)
	if assert.Len(t, visible, 1) {
		assert.Equal(t, "Team Room", visible[0].Name)
	}

	all, err := svc.ListRooms(context.Background(), true)
	assert.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestService_ListRoomsByType_VIPRequiresEligibility(t *testing.T) {
	rooms := new(mockRoomRepo)
	guard := new(mockBookingGuard)

	svc := NewService(rooms, guard)

	visible, err := svc.ListRoomsByType(context.Background(), domain.RoomVIP, false)
	assert.NoError(t, err)
	assert.Empty(t, visible)
	rooms.AssertNotCalled(t, "ListActiveByType", mock.Anything, mock.Anything)
}

func TestService_GetRoom_InactiveIsInvisible(t *testing.T) {
	rooms := new(mockRoomRepo)
	guard := new(mockBookingGuard)

	closed := &domain.Room{ID: 3, Name: "Old Room", IsActive: false}
	rooms.On("GetByID", mock.Anything, int64(3)).Return(closed, nil)

	svc := NewService(rooms, guard)

	_, err := svc.GetRoom(context.Background(), 3)
	assert.ErrorIs(t, err, ErrRoomNotFound)
}

func TestService_CreateRoom_DuplicateName(t *testing.T) {
	rooms := new(mockRoomRepo)
	guard := new(mockBookingGuard)
	rooms.On("ExistsByName", mock.Anything, "Team Room").Return(true, nil)

	svc := NewService(rooms, guard)

	_, err := svc.CreateRoom(context.Background(), CreateRoomRequest{
		Name:     "Team Room",
		Capacity: 8,
		RoomType: "regular",
	})

	assert.ErrorIs(t, err, ErrNameTaken)
	rooms.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestService_CreateRoom_Success(t *testing.T) {
	rooms := new(mockRoomRepo)
	guard := new(mockBookingGuard)
	rooms.On("ExistsByName", mock.Anything, "Quiet Room").Return(false, nil)
	rooms.On("Create", mock.Anything, mock.Anything).Return(nil)

	svc := NewService(rooms, guard)

	room, err := svc.CreateRoom(context.Background(), CreateRoomRequest{
		Name:      "Quiet Room",
		Capacity:  2,
		Equipment: []string{"whiteboard"},
		RoomType:  "regular",
	})

	assert.NoError(t, err)
	assert.True(t, room.IsActive)
	assert.Equal(t, domain.RoomRegular, room.RoomType)
}

func TestService_DeleteRoom_BlockedByActiveBookings(t *testing.T) {
	rooms := new(mockRoomRepo)
	guard := new(mockBookingGuard)

	rooms.On("GetByID", mock.Anything, int64(1)).Return(&domain.Room{ID: 1, IsActive: true}, nil)
	guard.On("HasActiveForRoom", mock.Anything, int64(1)).Return(true, nil)

	svc := NewService(rooms, guard)

	err := svc.DeleteRoom(context.Background(), 1)

	assert.ErrorIs(t, err, ErrRoomHasActiveBookings)
	rooms.AssertNotCalled(t, "SetActive", mock.Anything, mock.Anything, mock.Anything)
}

func TestService_DeleteRoom_Success(t *testing.T) {
	rooms := new(mockRoomRepo)
	guard := new(mockBookingGuard)

	rooms.On("GetByID", mock.Anything, int64(1)).Return(&domain.Room{ID: 1, IsActive: true}, nil)
	guard.On("HasActiveForRoom", mock.Anything, int64(1)).Return(false, nil)
	rooms.On("SetActive", mock.Anything, int64(1), false).Return(nil)

	svc := NewService(rooms, guard)

	assert.NoError(t, svc.DeleteRoom(context.Background(), 1))
	rooms.AssertExpectations(t)
}

func TestService_RestoreRoom_NotFound(t *testing.T) {
	rooms := new(mockRoomRepo)
	guard := new(mockBookingGuard)
	rooms.On("SetActive", mock.Anything, int64(9), true).Return(gorm.ErrRecordNotFound)

	svc := NewService(rooms, guard)

	assert.ErrorIs(t, svc.RestoreRoom(context.Background(), 9), ErrRoomNotFound)
}

func TestService_FindAvailable_RejectsInvalidWindow(t *testing.T) {
	rooms := new(mockRoomRepo)
	guard := new(mockBookingGuard)

	svc := NewService(rooms, guard)

	now := time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)
	_, err := svc.FindAvailable(context.Background(), now, now, nil, nil, false)

	assert.ErrorIs(t, err, ErrValidation)
}

func TestService_FindAvailable_VIPFilterForIneligibleUser(t *testing.T) {
	rooms := new(mockRoomRepo)
	guard := new(mockBookingGuard)

	svc := NewService(rooms, guard)

	vip := domain.RoomVIP
	now := time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)
	out, err := svc.FindAvailable(context.Background(), now, now.Add(time.Hour), &vip, nil, false)

	assert.NoError(t, err)
	assert.Empty(t, out)
	rooms.AssertNotCalled(t, "FindAvailable", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestService_SearchRooms_EmptyTermListsAll(t *testing.T) {
	rooms := new(mockRoomRepo)
	guard := new(mockBookingGuard)
	rooms.On("ListActive", mock.Anything).Return(sampleRooms(), nil)

	svc := NewService(rooms, guard)

	out, err := svc.SearchRooms(context.Background(), "", true)

	assert.NoError(t, err)
	assert.Len(t, out, 2)
	rooms.AssertNotCalled(t, "SearchByName", mock.Anything, mock.Anything)
}
