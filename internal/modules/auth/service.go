package auth

import (
	"context"
	"errors"
	"time"

	"meetingbooking/internal/domain"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const verificationTokenTTL = 24 * time.Hour

type Service struct {
	users  UserRepository
	tokens VerificationTokenRepository
	issuer TokenIssuer
	mailer Mailer
	now    func() time.Time
}

func NewService(users UserRepository, tokens VerificationTokenRepository, issuer TokenIssuer, mailer Mailer) *Service {
	return &Service{
		users:  users,
		tokens: tokens,
		issuer: issuer,
		mailer: mailer,
		now:    time.Now,
	}
}

// Register creates a disabled account and sends a verification token by mail.
// The account cannot log in until the token is redeemed.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*domain.User, error) {
	exists, err := s.users.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Email:        req.Email,
		PasswordHash: string(hash),
		Name:         req.Name,
		Role:         domain.RoleUser,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	token := uuid.NewString()
	if err := s.tokens.Save(ctx, user.ID, token, s.now().Add(verificationTokenTTL)); err != nil {
		return nil, err
	}
	if err := s.mailer.SendVerificationEmail(ctx, user.Email, token); err != nil {
		return nil, err
	}

	return user, nil
}

// VerifyEmail redeems a verification token. Tokens are single use.
func (s *Service) VerifyEmail(ctx context.Context, token string) error {
	userID, err := s.tokens.Consume(ctx, token, s.now())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInvalidToken
		}
		return err
	}
	return s.users.MarkEmailVerified(ctx, userID)
}

// Login checks credentials and returns a signed access token.
func (s *Service) Login(ctx context.Context, req LoginRequest) (string, *domain.User, error) {
	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}
	if user.IsBlocked {
		return "", nil, ErrAccountBlocked
	}
	if !user.EmailVerified {
		return "", nil, ErrEmailNotVerified
	}

	token, err := s.issuer.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

func (s *Service) GetCurrentUser(ctx context.Context, userID int64) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	return user, nil
}
