package repository

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"meetingbooking/internal/domain"

	"gorm.io/gorm"
)

type RoomRepository struct {
	db *gorm.DB
}

func NewRoomRepository(db *gorm.DB) *RoomRepository {
	return &RoomRepository{db: db}
}

type roomModel struct {
	ID        int64     `gorm:"column:id;primaryKey"`
	Name      string    `gorm:"column:name"`
	Capacity  int       `gorm:"column:capacity"`
	Equipment string    `gorm:"column:equipment"`
	RoomType  string    `gorm:"column:room_type"`
	IsActive  bool      `gorm:"column:is_active"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (roomModel) TableName() string { return "rooms" }

func toDomainRoom(m roomModel) *domain.Room {
	var equipment []string
	if m.Equipment != "" {
		_ = json.Unmarshal([]byte(m.Equipment), &equipment)
	}

	return &domain.Room{
		ID:        m.ID,
		Name:      m.Name,
		Capacity:  m.Capacity,
		Equipment: equipment,
		RoomType:  domain.RoomType(m.RoomType),
		IsActive:  m.IsActive,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func toRoomModel(r *domain.Room) roomModel {
	var equipment string
	if len(r.Equipment) > 0 {
		raw, _ := json.Marshal(r.Equipment)
		equipment = string(raw)
	}

	return roomModel{
		ID:        r.ID,
		Name:      strings.TrimSpace(r.Name),
		Capacity:  r.Capacity,
		Equipment: equipment,
		RoomType:  string(r.RoomType),
		IsActive:  r.IsActive,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

func (r *RoomRepository) Create(ctx context.Context, room *domain.Room) error {
	m := toRoomModel(room)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*room = *toDomainRoom(m)
	return nil
}

func (r *RoomRepository) Update(ctx context.Context, room *domain.Room) error {
	m := toRoomModel(room)
	tx := r.db.WithContext(ctx).Save(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*room = *toDomainRoom(m)
	return nil
}

func (r *RoomRepository) GetByID(ctx context.Context, id int64) (*domain.Room, error) {
	var m roomModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainRoom(m), nil
}

func (r *RoomRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	var cnt int64
	tx := r.db.WithContext(ctx).
		Table("rooms").
		Where("LOWER(name) = ?", strings.ToLower(strings.TrimSpace(name))).
		Count(&cnt)
	if tx.Error != nil {
		return false, tx.Error
	}
	return cnt > 0, nil
}

func (r *RoomRepository) ListActive(ctx context.Context) ([]domain.Room, error) {
	var models []roomModel
	tx := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("id").
		Find(&models)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainRooms(models), nil
}

func (r *RoomRepository) ListActiveByType(ctx context.Context, roomType domain.RoomType) ([]domain.Room, error) {
	var models []roomModel
	tx := r.db.WithContext(ctx).
		Where("is_active = ? AND room_type = ?", true, roomType).
		Order("id").
		Find(&models)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainRooms(models), nil
}

// SetActive toggles the soft-delete flag. Rooms with booking history are
// never removed, only deactivated.
func (r *RoomRepository) SetActive(ctx context.Context, id int64, active bool) error {
	tx := r.db.WithContext(ctx).
		Model(&roomModel{}).
		Where("id = ?", id).
		Update("is_active", active)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// IsAvailable reports whether the room has no active booking overlapping
// [start, end). Comparisons are strict so touching bookings do not collide.
func (r *RoomRepository) IsAvailable(ctx context.Context, roomID int64, start, end time.Time) (bool, error) {
	var cnt int64
	q := `
SELECT COUNT(1)
FROM bookings
WHERE room_id = ?
  AND status = 'active'
  AND start_time < ?
  AND ? < end_time
`
	tx := r.db.WithContext(ctx).Raw(q, roomID, end, start).Scan(&cnt)
	if tx.Error != nil {
		return false, tx.Error
	}
	return cnt == 0, nil
}

// FindAvailable returns the active rooms free for [start, end), optionally
// narrowed by type and minimum capacity. VIP rooms are excluded unless the
// requester is VIP-eligible. Ordered by id so results are deterministic.
func (r *RoomRepository) FindAvailable(ctx context.Context, start, end time.Time, roomType *domain.RoomType, minCapacity *int, includeVIP bool) ([]domain.Room, error) {
	q := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Where(`id NOT IN (
			SELECT room_id FROM bookings
			WHERE status = 'active' AND start_time < ? AND ? < end_time
		)`, end, start)

	if roomType != nil {
		q = q.Where("room_type = ?", *roomType)
	}
	if minCapacity != nil {
		q = q.Where("capacity >= ?", *minCapacity)
	}
	if !includeVIP {
		q = q.Where("room_type <> ?", domain.RoomVIP)
	}

	var models []roomModel
	tx := q.Order("id").Find(&models)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainRooms(models), nil
}

func (r *RoomRepository) SearchByName(ctx context.Context, term string) ([]domain.Room, error) {
	var models []roomModel
	tx := r.db.WithContext(ctx).
		Where("is_active = ? AND LOWER(name) LIKE ?", true, "%"+strings.ToLower(strings.TrimSpace(term))+"%").
		Order("id").
		Find(&models)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainRooms(models), nil
}

// SearchByEquipment matches rooms whose equipment list contains the tag.
// Equipment is stored as a JSON array, so a LIKE over the serialized form is
// enough for tag lookup on both Postgres and SQLite.
func (r *RoomRepository) SearchByEquipment(ctx context.Context, tag string) ([]domain.Room, error) {
	var models []roomModel
	tx := r.db.WithContext(ctx).
		Where("is_active = ? AND LOWER(equipment) LIKE ?", true, "%"+strings.ToLower(strings.TrimSpace(tag))+"%").
		Order("id").
		Find(&models)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainRooms(models), nil
}

func (r *RoomRepository) Stats(ctx context.Context) (*domain.RoomStats, error) {
	var stats domain.RoomStats
	q := `
SELECT
  COUNT(1) AS total,
  COUNT(CASE WHEN is_active THEN 1 END) AS active,
  COUNT(CASE WHEN is_active AND room_type = 'regular' THEN 1 END) AS regular,
  COUNT(CASE WHEN is_active AND room_type = 'vip' THEN 1 END) AS vip
FROM rooms
`
	tx := r.db.WithContext(ctx).Raw(q).Scan(&stats)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return &stats, nil
}

func toDomainRooms(models []roomModel) []domain.Room {
	out := make([]domain.Room, 0, len(models))
	for _, m := range models {
		out = append(out, *toDomainRoom(m))
	}
	return out
}
