package domain

import (
	"context"
	"time"
)

// AdminUser is an operator account allowed to manage coupons, mark
// deliveries, and export data.
type AdminUser struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Salt         string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// AdminUserRepository defines storage operations for admin accounts.
type AdminUserRepository interface {
	Create(ctx context.Context, u *AdminUser) error
	GetByEmail(ctx context.Context, email string) (*AdminUser, error)
}

// PasswordHasher hashes and verifies passwords (infrastructure port).
type PasswordHasher interface {
	GenerateSalt() (string, error)
	Hash(salt, password string) (string, error)
	Compare(hash, salt, password string) error
}

// TokenIssuer issues signed access tokens for authenticated admins.
type TokenIssuer interface {
	Issue(userID, email string, expiry time.Duration) (string, error)
}

// TokenVerifier validates an access token and returns the admin user ID.
type TokenVerifier interface {
	Verify(token string) (string, error)
}

// AuthService defines admin signup and login.
type AuthService interface {
	SignUp(ctx context.Context, email, password string) (*AdminUser, error)
	Login(ctx context.Context, email, password string) (token string, err error)
}
