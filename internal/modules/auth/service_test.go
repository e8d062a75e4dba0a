package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"meetingbooking/internal/domain"
)

// Mock User Repository implementing the interface
type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) Create(ctx context.Context, u *domain.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *mockUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *mockUserRepo) MarkEmailVerified(ctx context.Context, userID int64) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

// Mock Verification Token Repository
type mockTokenRepo struct {
	mock.Mock
}

func (m *mockTokenRepo) Save(ctx context.Context, userID int64, token string, expiresAt time.Time) error {
	args := m.Called(ctx, userID, token, expiresAt)
	return args.Error(0)
}

func (m *mockTokenRepo) Consume(ctx context.Context, token string, now time.Time) (int64, error) {
	args := m.Called(ctx, token, now)
	return args.Get(0).(int64), args.Error(1)
}

// Mock JWT issuer
type mockIssuer struct {
	mock.Mock
}

func (m *mockIssuer) GenerateToken(userID int64, role string) (string, error) {
	args := m.Called(userID, role)
	return args.String(0), args.Error(1)
}

// Mock Mailer
type mockMailer struct {
	mock.Mock
}

func (m *mockMailer) SendVerificationEmail(ctx context.Context, email, token string) error {
	args := m.Called(ctx, email, token)
	return args.Error(0)
}

func hashOf(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	return string(hash)
}

func TestService_Register_Success(t *testing.T) {
	users := new(mockUserRepo)
	tokens := new(mockTokenRepo)
	issuer := new(mockIssuer)
	mailer := new(mockMailer)

	users.On("ExistsByEmail", mock.Anything, "new@example.com").Return(false, nil)
	users.On("Create", mock.Anything, mock.Anything).Return(nil)
	tokens.On("Save", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
	mailer.On("SendVerificationEmail", mock.Anything, "new@example.com", mock.Anything).Return(nil)

	svc := NewService(users, tokens, issuer, mailer)

	user, err := svc.Register(context.Background(), RegisterRequest{
		Email:    "new@example.com",
		Password: "secret-password",
		Name:     "New User",
	})

	assert.NoError(t, err)
	assert.Equal(t, domain.RoleUser, user.Role)
	assert.False(t, user.EmailVerified)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("secret-password")))
	mailer.AssertExpectations(t)
	tokens.AssertExpectations(t)
}

func TestService_Register_DuplicateEmail(t *testing.T) {
	users := new(mockUserRepo)
	tokens := new(mockTokenRepo)
	issuer := new(mockIssuer)
	mailer := new(mockMailer)

	users.On("ExistsByEmail", mock.Anything, "taken@example.com").Return(true, nil)

	svc := NewService(users, tokens, issuer, mailer)

	_, err := svc.Register(context.Background(), RegisterRequest{
		Email:    "taken@example.com",
		Password: "secret-password",
		Name:     "Dup",
	})

	assert.ErrorIs(t, err, ErrEmailAlreadyExists)
	users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestService_VerifyEmail_Success(t *testing.T) {
	users := new(mockUserRepo)
	tokens := new(mockTokenRepo)

	tokens.On("Consume", mock.Anything, "tok-1", mock.Anything).Return(int64(7), nil)
	users.On("MarkEmailVerified", mock.Anything, int64(7)).Return(nil)

	svc := NewService(users, tokens, new(mockIssuer), new(mockMailer))

	assert.NoError(t, svc.VerifyEmail(context.Background(), "tok-1"))
	users.AssertExpectations(t)
}

func TestService_VerifyEmail_InvalidToken(t *testing.T) {
	users := new(mockUserRepo)
	tokens := new(mockTokenRepo)

	tokens.On("Consume", mock.Anything, "bogus", mock.Anything).Return(int64(0), gorm.ErrRecordNotFound)

	svc := NewService(users, tokens, new(mockIssuer), new(mockMailer))

	assert.ErrorIs(t, svc.VerifyEmail(context.Background(), "bogus"), ErrInvalidToken)
	users.AssertNotCalled(t, "MarkEmailVerified", mock.Anything, mock.Anything)
}

func TestService_Login_Success(t *testing.T) {
	users := new(mockUserRepo)
	issuer := new(mockIssuer)

	user := &domain.User{
		ID:            1,
		Email:         "alice@example.com",
		PasswordHash:  hashOf(t, "alice123"),
		Role:          domain.RoleUser,
		EmailVerified: true,
	}
	users.On("GetByEmail", mock.Anything, "alice@example.com").Return(user, nil)
	issuer.On("GenerateToken", int64(1), "user").Return("signed-token", nil)

	svc := NewService(users, new(mockTokenRepo), issuer, new(mockMailer))

	token, got, err := svc.Login(context.Background(), LoginRequest{
		Email:    "alice@example.com",
		Password: "alice123",
	})

	assert.NoError(t, err)
	assert.Equal(t, "signed-token", token)
	assert.Equal(t, int64(1), got.ID)
}

func TestService_Login_WrongPassword(t *testing.T) {
	users := new(mockUserRepo)

	user := &domain.User{
		ID:            1,
		Email:         "alice@example.com",
		PasswordHash:  hashOf(t, "alice123"),
		EmailVerified: true,
	}
	users.On("GetByEmail", mock.Anything, "alice@example.com").Return(user, nil)

	svc := NewService(users, new(mockTokenRepo), new(mockIssuer), new(mockMailer))

	_, _, err := svc.Login(context.Background(), LoginRequest{
		Email:    "alice@example.com",
		Password: "wrong",
	})

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestService_Login_UnknownEmail(t *testing.T) {
	users := new(mockUserRepo)
	users.On("GetByEmail", mock.Anything, "nobody@example.com").Return(nil, gorm.ErrRecordNotFound)

	svc := NewService(users, new(mockTokenRepo), new(mockIssuer), new(mockMailer))

	_, _, err := svc.Login(context.Background(), LoginRequest{
		Email:    "nobody@example.com",
		Password: "whatever",
	})

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestService_Login_UnverifiedEmail(t *testing.T) {
	users := new(mockUserRepo)

	user := &domain.User{
		ID:           1,
		Email:        "fresh@example.com",
		PasswordHash: hashOf(t, "fresh123"),
	}
	users.On("GetByEmail", mock.Anything, "fresh@example.com").Return(user, nil)

	svc := NewService(users, new(mockTokenRepo), new(mockIssuer), new(mockMailer))

	_, _, err := svc.Login(context.Background(), LoginRequest{
		Email:    "fresh@example.com",
		Password: "fresh123",
	})

	assert.ErrorIs(t, err, ErrEmailNotVerified)
}

func TestService_Login_BlockedAccount(t *testing.T) {
	users := new(mockUserRepo)

	user := &domain.User{
		ID:            1,
		Email:         "blocked@example.com",
		PasswordHash:  hashOf(t, "blocked1"),
		EmailVerified: true,
		IsBlocked:     true,
	}
	users.On("GetByEmail", mock.Anything, "blocked@example.com").Return(user, nil)

	svc := NewService(users, new(mockTokenRepo), new(mockIssuer), new(mockMailer))

	_, _, err := svc.Login(context.Background(), LoginRequest{
		Email:    "blocked@example.com",
		Password: "blocked1",
	})

	assert.ErrorIs(t, err, ErrAccountBlocked)
}
