package domain

import "time"

type UserRole string

const (
	RoleUser  UserRole = "user"
	RoleVIP   UserRole = "vip_user"
	RoleAdmin UserRole = "admin"
)

type User struct {
	ID            int64     `json:"id"`
	Email         string    `json:"email"`
	PasswordHash  string    `json:"-"`
	Name          string    `json:"name"`
	Role          UserRole  `json:"role"`
	EmailVerified bool      `json:"email_verified"`
	IsBlocked     bool      `json:"is_blocked"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Enabled reports whether the account may hold active bookings:
// email verified and not blocked by an admin.
func (u *User) Enabled() bool {
	return u.EmailVerified && !u.IsBlocked
}

// VIPEligible reports whether the user may see and book VIP rooms.
func (u *User) VIPEligible() bool {
	return u.Role == RoleVIP || u.Role == RoleAdmin
}

func (u *User) IsAdmin() bool { return u.Role == RoleAdmin }
