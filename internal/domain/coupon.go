package domain

import (
	"context"
	"time"
)

// Coupon bounds how many registrations may be created against it.
// swagger:model Coupon
type Coupon struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Code      string    `json:"code"`
	Limit     int       `json:"limit"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewCoupon returns a new Coupon. ID is set by the repository on create.
func NewCoupon(name, code string, limit int, createdAt, updatedAt time.Time) *Coupon {
	return &Coupon{
		Name:      name,
		Code:      code,
		Limit:     limit,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}
}

// CouponRepository defines storage operations for coupons.
// Create and Update return ErrConflict when the code collides with another coupon.
type CouponRepository interface {
	Create(ctx context.Context, c *Coupon) error
	GetByID(ctx context.Context, id string) (*Coupon, error)
	GetByCode(ctx context.Context, code string) (*Coupon, error)
	List(ctx context.Context) ([]*Coupon, error)
	Update(ctx context.Context, id string, name, code *string, limit *int) (*Coupon, error)
	Delete(ctx context.Context, id string) error
}

// CouponService defines admin-facing coupon operations.
type CouponService interface {
	Create(ctx context.Context, name, code string, limit int) (*Coupon, error)
	List(ctx context.Context) ([]*Coupon, error)
	GetByID(ctx context.Context, id string) (*Coupon, error)
	Update(ctx context.Context, id string, name, code *string, limit *int) (*Coupon, error)
	Delete(ctx context.Context, id string) error
}
