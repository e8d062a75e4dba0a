package domain

import "time"

type BookingStatus string

const (
	BookingActive    BookingStatus = "active"
	BookingCancelled BookingStatus = "cancelled"
	BookingCompleted BookingStatus = "completed"
)

// DefaultCancellationWindow is the trailing period before a booking's start
// during which cancellation is no longer allowed.
const DefaultCancellationWindow = time.Hour

type Booking struct {
	ID                int64         `json:"id"`
	Reference         string        `json:"reference"`
	UserID            int64         `json:"user_id"`
	RoomID            int64         `json:"room_id"`
	StartTime         time.Time     `json:"start_time"`
	EndTime           time.Time     `json:"end_time"`
	ParticipantsCount int           `json:"participants_count"`
	Status            BookingStatus `json:"status"`
	CreatedAt         time.Time     `json:"created_at"`
	CancelledAt       *time.Time    `json:"cancelled_at,omitempty"`

	User *User `json:"user,omitempty"`
	Room *Room `json:"room,omitempty"`
}

func (b *Booking) IsActive() bool    { return b.Status == BookingActive }
func (b *Booking) IsFinalized() bool { return b.Status != BookingActive }

// OverlapsWith reports whether the booking's interval overlaps [start, end).
func (b *Booking) OverlapsWith(start, end time.Time) bool {
	return Overlaps(b.StartTime, b.EndTime, start, end)
}

// CanBeCancelledAt reports whether the booking may still be cancelled at the
// given instant: it must be active and the cancellation window before its
// start must not have begun.
func (b *Booking) CanBeCancelledAt(now time.Time, window time.Duration) bool {
	if !b.IsActive() {
		return false
	}
	return now.Before(b.StartTime.Add(-window))
}

// Cancel moves an active booking to cancelled and records the instant.
func (b *Booking) Cancel(now time.Time) {
	b.Status = BookingCancelled
	b.CancelledAt = &now
}

// Complete moves an active booking to completed.
func (b *Booking) Complete() {
	b.Status = BookingCompleted
}

type BookingStats struct {
	Total     int64 `json:"total"`
	Active    int64 `json:"active"`
	Cancelled int64 `json:"cancelled"`
	Completed int64 `json:"completed"`
}
