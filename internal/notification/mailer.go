package notification

import (
	"context"
	"log"
	"time"

	"meetingbooking/internal/domain"
)

// ConsoleMailer writes every email to the process log. It stands in for a
// real delivery provider in development and in tests.
type ConsoleMailer struct {
	enabled bool
}

func NewConsoleMailer(enabled bool) *ConsoleMailer {
	return &ConsoleMailer{enabled: enabled}
}

func (m *ConsoleMailer) SendVerificationEmail(_ context.Context, email, token string) error {
	if m.enabled {
		log.Printf("[DEV-EMAIL] verification email=%s token=%s", email, token)
	}
	return nil
}

func (m *ConsoleMailer) NotifyBookingCreated(_ context.Context, user *domain.User, room *domain.Room, start, end time.Time) error {
	if m.enabled {
		log.Printf("[DEV-EMAIL] booking confirmed email=%s room=%q start=%s end=%s",
			user.Email, room.Name, start.Format(time.RFC3339), end.Format(time.RFC3339))
	}
	return nil
}

func (m *ConsoleMailer) NotifyBookingCancelled(_ context.Context, user *domain.User, room *domain.Room, start, end time.Time) error {
	if m.enabled {
		log.Printf("[DEV-EMAIL] booking cancelled email=%s room=%q start=%s end=%s",
			user.Email, room.Name, start.Format(time.RFC3339), end.Format(time.RFC3339))
	}
	return nil
}
