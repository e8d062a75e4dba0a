package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"meetingbooking/internal/domain"
)

func TestRoomRepository_IsAvailable(t *testing.T) {
	db := newTestDB(t)
	rooms := NewRoomRepository(db)
	bookings := NewBookingRepository(db)
	ctx := context.Background()

	alice := seedUser(t, db, "alice@test.local")
	room := seedRoom(t, db, "Room One")

	base := time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC)
	require.NoError(t, bookings.CreateIfFree(ctx, booking(alice.ID, room.ID, base, base.Add(time.Hour))))

	t.Run("overlapping window is busy", func(t *testing.T) {
		free, err := rooms.IsAvailable(ctx, room.ID, base.Add(30*time.Minute), base.Add(90*time.Minute))
		require.NoError(t, err)
		assert.False(t, free)
	})

	t.Run("touching window is free", func(t *testing.T) {
		free, err := rooms.IsAvailable(ctx, room.ID, base.Add(time.Hour), base.Add(2*time.Hour))
		require.NoError(t, err)
		assert.True(t, free)
	})

	t.Run("cancelled booking does not block", func(t *testing.T) {
		b := booking(alice.ID, room.ID, base.Add(3*time.Hour), base.Add(4*time.Hour))
		require.NoError(t, bookings.CreateIfFree(ctx, b))
		ok, err := bookings.CancelIfActive(ctx, b.ID, base)
		require.NoError(t, err)
		require.True(t, ok)

		free, err := rooms.IsAvailable(ctx, room.ID, base.Add(3*time.Hour), base.Add(4*time.Hour))
		require.NoError(t, err)
		assert.True(t, free)
	})
}

func TestRoomRepository_FindAvailable(t *testing.T) {
	db := newTestDB(t)
	rooms := NewRoomRepository(db)
	bookings := NewBookingRepository(db)
	ctx := context.Background()

	alice := seedUser(t, db, "alice@test.local")
	small := seedRoom(t, db, "Small Room")
	big := &domain.Room{Name: "Big Room", Capacity: 20, RoomType: domain.RoomRegular, IsActive: true}
	require.NoError(t, rooms.Create(ctx, big))
	vip := &domain.Room{Name: "Boardroom", Capacity: 12, RoomType: domain.RoomVIP, IsActive: true}
	require.NoError(t, rooms.Create(ctx, vip))

	base := time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC)
	require.NoError(t, bookings.CreateIfFree(ctx, booking(alice.ID, small.ID, base, base.Add(time.Hour))))

	t.Run("busy room is excluded for an overlapping window", func(t *testing.T) {
		got, err := rooms.FindAvailable(ctx, base.Add(30*time.Minute), base.Add(90*time.Minute), nil, nil, true)
		require.NoError(t, err)
		ids := roomIDs(got)
		assert.NotContains(t, ids, small.ID)
		assert.Contains(t, ids, big.ID)
		assert.Contains(t, ids, vip.ID)
	})

	t.Run("touching window includes the busy room", func(t *testing.T) {
		got, err := rooms.FindAvailable(ctx, base.Add(time.Hour), base.Add(2*time.Hour), nil, nil, true)
		require.NoError(t, err)
		assert.Contains(t, roomIDs(got), small.ID)
	})

	t.Run("vip rooms hidden from ineligible requesters", func(t *testing.T) {
		got, err := rooms.FindAvailable(ctx, base.Add(2*time.Hour), base.Add(3*time.Hour), nil, nil, false)
		require.NoError(t, err)
		assert.NotContains(t, roomIDs(got), vip.ID)
	})

	t.Run("minimum capacity filter", func(t *testing.T) {
		minCap := 10
		got, err := rooms.FindAvailable(ctx, base.Add(2*time.Hour), base.Add(3*time.Hour), nil, &minCap, true)
		require.NoError(t, err)
		ids := roomIDs(got)
		assert.NotContains(t, ids, small.ID)
		assert.Contains(t, ids, big.ID)
	})

	t.Run("inactive rooms never appear", func(t *testing.T) {
		require.NoError(t, rooms.SetActive(ctx, big.ID, false))
		got, err := rooms.FindAvailable(ctx, base.Add(2*time.Hour), base.Add(3*time.Hour), nil, nil, true)
		require.NoError(t, err)
		assert.NotContains(t, roomIDs(got), big.ID)
	})
}

func roomIDs(rooms []domain.Room) []int64 {
	ids := make([]int64, 0, len(rooms))
	for _, r := range rooms {
		ids = append(ids, r.ID)
	}
	return ids
}
