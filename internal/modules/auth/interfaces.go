package auth

import (
	"context"
	"time"

	"meetingbooking/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, u *domain.User) error
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	MarkEmailVerified(ctx context.Context, userID int64) error
}

type VerificationTokenRepository interface {
	Save(ctx context.Context, userID int64, token string, expiresAt time.Time) error
	Consume(ctx context.Context, token string, now time.Time) (int64, error)
}

type TokenIssuer interface {
	GenerateToken(userID int64, role string) (string, error)
}

type Mailer interface {
	SendVerificationEmail(ctx context.Context, email, token string) error
}
