package repository

import (
	"context"
	"errors"
	"time"

	"meetingbooking/internal/domain"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

type bookingModel struct {
	ID                int64      `gorm:"column:id;primaryKey"`
	Reference         string     `gorm:"column:reference"`
	UserID            int64      `gorm:"column:user_id"`
	RoomID            int64      `gorm:"column:room_id"`
	StartTime         time.Time  `gorm:"column:start_time"`
	EndTime           time.Time  `gorm:"column:end_time"`
	ParticipantsCount int        `gorm:"column:participants_count"`
	Status            string     `gorm:"column:status"`
	CreatedAt         time.Time  `gorm:"column:created_at"`
	CancelledAt       *time.Time `gorm:"column:cancelled_at"`
}

func (bookingModel) TableName() string { return "bookings" }

func toDomainBooking(m bookingModel) *domain.Booking {
	return &domain.Booking{
		ID:                m.ID,
		Reference:         m.Reference,
		UserID:            m.UserID,
		RoomID:            m.RoomID,
		StartTime:         m.StartTime,
		EndTime:           m.EndTime,
		ParticipantsCount: m.ParticipantsCount,
		Status:            domain.BookingStatus(m.Status),
		CreatedAt:         m.CreatedAt,
		CancelledAt:       m.CancelledAt,
	}
}

func toBookingModel(b *domain.Booking) bookingModel {
	return bookingModel{
		ID:                b.ID,
		Reference:         b.Reference,
		UserID:            b.UserID,
		RoomID:            b.RoomID,
		StartTime:         b.StartTime,
		EndTime:           b.EndTime,
		ParticipantsCount: b.ParticipantsCount,
		Status:            string(b.Status),
		CreatedAt:         b.CreatedAt,
		CancelledAt:       b.CancelledAt,
	}
}

// CreateIfFree inserts the booking only if neither the room nor the user has
// an overlapping active booking. The whole check-then-insert runs in one
// transaction that first takes row locks on the room and the user (always in
// that order), so two concurrent requests for the same room or the same user
// serialize and the loser sees the winner's committed row.
func (r *BookingRepository) CreateIfFree(ctx context.Context, b *domain.Booking) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var lockedID int64
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Table("rooms").
			Select("id").
			Where("id = ?", b.RoomID).
			Scan(&lockedID).Error; err != nil {
			return err
		}
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Table("users").
			Select("id").
			Where("id = ?", b.UserID).
			Scan(&lockedID).Error; err != nil {
			return err
		}

		// Half-open overlap: existing.start < new.end AND new.start < existing.end.
		var cnt int64
		if err := tx.Table("bookings").
			Where("room_id = ? AND status = ? AND start_time < ? AND ? < end_time",
				b.RoomID, domain.BookingActive, b.EndTime, b.StartTime).
			Count(&cnt).Error; err != nil {
			return err
		}
		if cnt > 0 {
			return ErrRoomTimeConflict
		}

		if err := tx.Table("bookings").
			Where("user_id = ? AND status = ? AND start_time < ? AND ? < end_time",
				b.UserID, domain.BookingActive, b.EndTime, b.StartTime).
			Count(&cnt).Error; err != nil {
			return err
		}
		if cnt > 0 {
			return ErrUserTimeConflict
		}

		m := toBookingModel(b)
		if err := tx.Create(&m).Error; err != nil {
			return err
		}
		*b = *toDomainBooking(m)
		return nil
	})
	if err != nil {
		// Backstop: the Postgres exclusion constraint on active bookings fires
		// if another transaction slipped an overlapping row past the checks.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23P01" {
			return ErrRoomTimeConflict
		}
		return err
	}
	return nil
}

func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	var m bookingModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainBooking(m), nil
}

func (r *BookingRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Booking, error) {
	var models []bookingModel
	tx := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("start_time").
		Find(&models)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainBookings(models), nil
}

func (r *BookingRepository) ListByUserAndStatus(ctx context.Context, userID int64, status domain.BookingStatus) ([]domain.Booking, error) {
	var models []bookingModel
	tx := r.db.WithContext(ctx).
		Where("user_id = ? AND status = ?", userID, status).
		Order("start_time").
		Find(&models)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainBookings(models), nil
}

func (r *BookingRepository) ListAll(ctx context.Context) ([]domain.Booking, error) {
	var models []bookingModel
	tx := r.db.WithContext(ctx).Order("start_time").Find(&models)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainBookings(models), nil
}

func (r *BookingRepository) ListByStatus(ctx context.Context, status domain.BookingStatus) ([]domain.Booking, error) {
	var models []bookingModel
	tx := r.db.WithContext(ctx).
		Where("status = ?", status).
		Order("start_time").
		Find(&models)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainBookings(models), nil
}

// FindActiveOverlappingForRoom returns the active bookings for the room whose
// intervals overlap [start, end), ordered by id for deterministic results.
func (r *BookingRepository) FindActiveOverlappingForRoom(ctx context.Context, roomID int64, start, end time.Time) ([]domain.Booking, error) {
	var models []bookingModel
	tx := r.db.WithContext(ctx).
		Where("room_id = ? AND status = ? AND start_time < ? AND ? < end_time",
			roomID, domain.BookingActive, end, start).
		Order("id").
		Find(&models)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainBookings(models), nil
}

// FindActiveOverlappingForUser is the cross-room self-conflict query.
func (r *BookingRepository) FindActiveOverlappingForUser(ctx context.Context, userID int64, start, end time.Time) ([]domain.Booking, error) {
	var models []bookingModel
	tx := r.db.WithContext(ctx).
		Where("user_id = ? AND status = ? AND start_time < ? AND ? < end_time",
			userID, domain.BookingActive, end, start).
		Order("id").
		Find(&models)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainBookings(models), nil
}

// CancelIfActive flips the booking to cancelled only if it is still active.
// The conditional UPDATE is the compare-and-set guarding against a race with
// the sweeper; callers inspect the bool to tell a lost race from success.
func (r *BookingRepository) CancelIfActive(ctx context.Context, id int64, now time.Time) (bool, error) {
	tx := r.db.WithContext(ctx).
		Model(&bookingModel{}).
		Where("id = ? AND status = ?", id, domain.BookingActive).
		Updates(map[string]any{
			"status":       string(domain.BookingCancelled),
			"cancelled_at": now,
		})
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected > 0, nil
}

// CompleteExpired transitions every active booking whose end time has passed
// to completed and reports how many rows changed. Running it again with no
// new bookings is a no-op.
func (r *BookingRepository) CompleteExpired(ctx context.Context, now time.Time) (int64, error) {
	tx := r.db.WithContext(ctx).
		Model(&bookingModel{}).
		Where("status = ? AND end_time <= ?", domain.BookingActive, now).
		Update("status", string(domain.BookingCompleted))
	if tx.Error != nil {
		return 0, tx.Error
	}
	return tx.RowsAffected, nil
}

// HasActiveForRoom reports whether the room still has any active booking.
// The catalog uses it to refuse soft-deleting a room that is in use.
func (r *BookingRepository) HasActiveForRoom(ctx context.Context, roomID int64) (bool, error) {
	var cnt int64
	tx := r.db.WithContext(ctx).
		Table("bookings").
		Where("room_id = ? AND status = ?", roomID, domain.BookingActive).
		Count(&cnt)
	if tx.Error != nil {
		return false, tx.Error
	}
	return cnt > 0, nil
}

func (r *BookingRepository) Stats(ctx context.Context) (*domain.BookingStats, error) {
	var stats domain.BookingStats
	q := `
SELECT
  COUNT(1) AS total,
  COUNT(CASE WHEN status = 'active' THEN 1 END) AS active,
  COUNT(CASE WHEN status = 'cancelled' THEN 1 END) AS cancelled,
  COUNT(CASE WHEN status = 'completed' THEN 1 END) AS completed
FROM bookings
`
	tx := r.db.WithContext(ctx).Raw(q).Scan(&stats)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return &stats, nil
}

func toDomainBookings(models []bookingModel) []domain.Booking {
	out := make([]domain.Booking, 0, len(models))
	for _, m := range models {
		out = append(out, *toDomainBooking(m))
	}
	return out
}
